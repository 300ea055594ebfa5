package scenario

import (
	"context"
	"time"

	"github.com/purr/campband-sub002/internal/app/popup"
)

// openPopupSettings represents the settings for the open_popup action.
type openPopupSettings struct {
	Kind    string `mapstructure:"kind" validate:"required,oneof=track album artist playlist liked"`
	X       int    `mapstructure:"x" validate:"gte=0"`
	Y       int    `mapstructure:"y" validate:"gte=0"`
	Payload string `mapstructure:"payload"`
}

// OpenPopupAction opens a contextual popup.
type OpenPopupAction struct {
	settings openPopupSettings
}

func (a *OpenPopupAction) Name() string { return "open_popup" }

func (a *OpenPopupAction) Description() string {
	return "Opens a contextual popup of the given kind at the given position"
}

func (a *OpenPopupAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *OpenPopupAction) Apply(ctx context.Context, r *Runner) error {
	kind, _ := popup.ParseKind(a.settings.Kind) // validated by oneof
	var payload any
	if a.settings.Payload != "" {
		payload = a.settings.Payload
	}
	r.Coordinator.Open(kind, popup.Position{X: a.settings.X, Y: a.settings.Y}, payload)
	return nil
}

// ClosePopupAction closes the current popup.
type ClosePopupAction struct{}

func (a *ClosePopupAction) Name() string { return "close_popup" }

func (a *ClosePopupAction) Description() string {
	return "Closes the current popup, if any"
}

func (a *ClosePopupAction) ValidateSettings(settings map[string]any) error { return nil }

func (a *ClosePopupAction) Apply(ctx context.Context, r *Runner) error {
	r.Coordinator.Close()
	return nil
}

// OutsideClickAction simulates a dismissal gesture, which defers the
// close by the grace window.
type OutsideClickAction struct{}

func (a *OutsideClickAction) Name() string { return "outside_click" }

func (a *OutsideClickAction) Description() string {
	return "Simulates an outside click, scheduling a deferred close"
}

func (a *OutsideClickAction) ValidateSettings(settings map[string]any) error { return nil }

func (a *OutsideClickAction) Apply(ctx context.Context, r *Runner) error {
	r.Coordinator.ScheduleDeferredClose()
	return nil
}

// CancelCloseAction cancels a pending deferred close.
type CancelCloseAction struct{}

func (a *CancelCloseAction) Name() string { return "cancel_close" }

func (a *CancelCloseAction) Description() string {
	return "Cancels a deferred close scheduled by outside_click"
}

func (a *CancelCloseAction) ValidateSettings(settings map[string]any) error { return nil }

func (a *CancelCloseAction) Apply(ctx context.Context, r *Runner) error {
	r.Coordinator.CancelPendingClose()
	return nil
}

// waitSettings represents the settings for the wait action.
type waitSettings struct {
	Ms int `mapstructure:"ms" default:"50" validate:"gte=0,lte=10000"`
}

// WaitAction pauses the script, letting scheduled transitions fire.
type WaitAction struct {
	settings waitSettings
}

func (a *WaitAction) Name() string { return "wait" }

func (a *WaitAction) Description() string {
	return "Waits for the given number of milliseconds"
}

func (a *WaitAction) ValidateSettings(settings map[string]any) error {
	return decodeSettings(settings, &a.settings)
}

func (a *WaitAction) Apply(ctx context.Context, r *Runner) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(a.settings.Ms) * time.Millisecond):
		return nil
	}
}

func init() {
	Register("open_popup", func() Action { return &OpenPopupAction{} })
	Register("close_popup", func() Action { return &ClosePopupAction{} })
	Register("outside_click", func() Action { return &OutsideClickAction{} })
	Register("cancel_close", func() Action { return &CancelCloseAction{} })
	Register("wait", func() Action { return &WaitAction{} })
}
