package main

import (
	"log/slog"

	"github.com/atotto/clipboard"
)

// clipboardHost bridges the field's pasteboard to the system clipboard.
type clipboardHost struct {
	log *slog.Logger
}

// ChangeFocus records the focus change. The demo hosts a single text
// target, so there is nothing to switch away from; examples/keyboard shows
// routing between two.
func (h clipboardHost) ChangeFocus() {
	if h.log != nil {
		h.log.Debug("field took focus")
	}
}

func (clipboardHost) AddToPasteBoard(text string) error { return clipboard.WriteAll(text) }

func (clipboardHost) FetchFromPasteBoard() (string, error) { return clipboard.ReadAll() }
