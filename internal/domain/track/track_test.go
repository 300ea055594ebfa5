package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrack_DisplayName(t *testing.T) {
	tests := []struct {
		name     string
		track    Track
		expected string
	}{
		{
			name:     "artist and title",
			track:    Track{Title: "Cirrus", Artist: "Bonobo"},
			expected: "Bonobo - Cirrus",
		},
		{
			name:     "title only",
			track:    Track{Title: "Untitled"},
			expected: "Untitled",
		},
		{
			name:     "empty track",
			track:    Track{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.track.DisplayName())
		})
	}
}

func TestTrack_FormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{
			name:     "typical track",
			duration: 3*time.Minute + 42*time.Second,
			expected: "3:42",
		},
		{
			name:     "leading zero seconds",
			duration: 2*time.Minute + 5*time.Second,
			expected: "2:05",
		},
		{
			name:     "over an hour",
			duration: 61 * time.Minute,
			expected: "61:00",
		},
		{
			name:     "zero",
			duration: 0,
			expected: "0:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := Track{Duration: tt.duration}
			assert.Equal(t, tt.expected, tr.FormatDuration())
		})
	}
}

func TestTotalDuration(t *testing.T) {
	tracks := []Track{
		{Duration: 3 * time.Minute},
		{Duration: 90 * time.Second},
		{Duration: 30 * time.Second},
	}
	assert.Equal(t, 5*time.Minute, TotalDuration(tracks))
	assert.Equal(t, time.Duration(0), TotalDuration(nil))
}
