package field

// KeyboardMode is the host keyboard layout family.
type KeyboardMode uint8

const (
	KeyboardDefault KeyboardMode = iota
	KeyboardEmail
	KeyboardURL
)

func (k KeyboardMode) String() string {
	switch k {
	case KeyboardEmail:
		return "email"
	case KeyboardURL:
		return "url"
	default:
		return "default"
	}
}

// ParseKeyboardMode maps a config string to a KeyboardMode. Unknown values
// fall back to KeyboardDefault.
func ParseKeyboardMode(s string) KeyboardMode {
	switch s {
	case "email":
		return KeyboardEmail
	case "url":
		return KeyboardURL
	default:
		return KeyboardDefault
	}
}

// InputTraits carries the hints the host received from the system for the
// current text target. The field stores them; the host decides whether a
// change requires rebuilding its key layout.
type InputTraits struct {
	Mode         KeyboardMode
	ReturnKey    int
	KeyboardType int
}

func (m Model) InputTraits() InputTraits { return m.traits }

// SetInputTraits replaces the traits and reports whether they changed.
func (m Model) SetInputTraits(t InputTraits) (Model, bool) {
	if t == m.traits {
		return m, false
	}
	m.log.Debug("input traits changed",
		"mode", t.Mode.String(),
		"return_key", t.ReturnKey,
		"keyboard_type", t.KeyboardType,
	)
	m.traits = t
	return m, true
}
