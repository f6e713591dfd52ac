package field

// Host is the keyboard runtime embedding the field.
//
// Pasteboard failures are the host's to surface; the field logs and
// ignores them.
type Host interface {
	// ChangeFocus is called when the user interacts with the field, so the
	// host can route keystrokes to it.
	ChangeFocus()
	AddToPasteBoard(text string) error
	FetchFromPasteBoard() (string, error)
}
