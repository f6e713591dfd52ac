package config

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/tapfield/internal/logging"
)

// ValidationError is a single invalid setting.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// ValidKeyboardModes lists the accepted keyboard.mode values.
func ValidKeyboardModes() []string {
	return []string{"default", "email", "url"}
}

func (c *Config) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, c.validateField()...)
	errs = append(errs, c.validateGesture()...)
	errs = append(errs, c.validatePopup()...)
	errs = append(errs, c.validateKeyboard()...)
	errs = append(errs, c.validateLogging()...)
	return errs
}

func (c *Config) validateField() []ValidationError {
	var errs []ValidationError
	if c.Field.Width < 4 {
		errs = append(errs, ValidationError{Field: "field.width", Value: c.Field.Width, Message: "must be at least 4"})
	}
	if c.Field.Height < 1 {
		errs = append(errs, ValidationError{Field: "field.height", Value: c.Field.Height, Message: "must be at least 1"})
	}
	if c.Field.BlinkIntervalMs < 0 {
		errs = append(errs, ValidationError{Field: "field.blink_interval_ms", Value: c.Field.BlinkIntervalMs, Message: "must not be negative"})
	}
	return errs
}

func (c *Config) validateGesture() []ValidationError {
	var errs []ValidationError
	if c.Gesture.TapIntervalMs < 0 {
		errs = append(errs, ValidationError{Field: "gesture.tap_interval_ms", Value: c.Gesture.TapIntervalMs, Message: "must not be negative"})
	}
	if c.Gesture.LongPressDelayMs < 0 {
		errs = append(errs, ValidationError{Field: "gesture.long_press_delay_ms", Value: c.Gesture.LongPressDelayMs, Message: "must not be negative"})
	}
	if c.Gesture.TapSlop < 0 {
		errs = append(errs, ValidationError{Field: "gesture.tap_slop", Value: c.Gesture.TapSlop, Message: "must not be negative"})
	}
	return errs
}

func (c *Config) validatePopup() []ValidationError {
	var errs []ValidationError
	if c.Popup.AppearMs < 0 {
		errs = append(errs, ValidationError{Field: "popup.appear_ms", Value: c.Popup.AppearMs, Message: "must not be negative"})
	}
	if c.Popup.DisappearMs < 0 {
		errs = append(errs, ValidationError{Field: "popup.disappear_ms", Value: c.Popup.DisappearMs, Message: "must not be negative"})
	}
	if c.Popup.Damping < 0 || c.Popup.Damping > 1 {
		errs = append(errs, ValidationError{Field: "popup.damping", Value: c.Popup.Damping, Message: "must be between 0 and 1"})
	}
	return errs
}

func (c *Config) validateKeyboard() []ValidationError {
	mode := strings.ToLower(c.Keyboard.Mode)
	if mode == "" {
		return nil
	}
	for _, m := range ValidKeyboardModes() {
		if mode == m {
			return nil
		}
	}
	return []ValidationError{{
		Field:   "keyboard.mode",
		Value:   c.Keyboard.Mode,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidKeyboardModes(), ", ")),
	}}
}

func (c *Config) validateLogging() []ValidationError {
	if c.Logging.Level == "" || logging.IsValidLevel(c.Logging.Level) {
		return nil
	}
	return []ValidationError{{
		Field:   "logging.level",
		Value:   c.Logging.Level,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidLevels(), ", ")),
	}}
}
