// Package scenario provides the scripted driver for the UI-state
// engines. A scenario is a YAML list of named actions; each action
// validates its settings before the run starts.
package scenario

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Step represents one scripted step.
type Step struct {
	Action   string         `yaml:"action"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// Script represents a parsed scenario file.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Action is the interface for scripted actions.
type Action interface {
	// Name returns the action name (used in scripts).
	Name() string
	// Description returns a human-readable description.
	Description() string
	// ValidateSettings validates and captures the step settings.
	ValidateSettings(settings map[string]any) error
	// Apply performs the action against the runner's engines.
	Apply(ctx context.Context, r *Runner) error
}

// registry holds registered action factories.
var registry = make(map[string]func() Action)

// Register registers an action factory.
func Register(name string, factory func() Action) {
	registry[name] = factory
}

// GetRegistered returns all registered action factories.
func GetRegistered() map[string]func() Action {
	return registry
}

// Load loads a scenario script from a YAML file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read scenario file")
	}

	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "failed to parse scenario file")
	}

	if len(s.Steps) == 0 {
		return nil, errors.New("scenario has no steps")
	}
	return &s, nil
}

// decodeSettings decodes a settings map into out, applies defaults and
// validates the result.
func decodeSettings(settings map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	if err := validator.New().Struct(out); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
