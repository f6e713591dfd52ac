package buffer

import "github.com/iw2rmb/tapfield/internal/grapheme"

type MoveUnit int

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveDoc
)

type MoveDir int

const (
	DirLeft MoveDir = iota
	DirRight
	DirHome
	DirEnd
)

type Move struct {
	Unit MoveUnit
	Dir  MoveDir
}

// Move moves the cursor and clears any selection.
func (b *Buffer) Move(m Move) {
	prevCursor := b.cursor
	prevSel := b.sel

	next := clampInt(b.moveCursor(prevCursor, m), 0, len(b.clusters))
	if next == prevCursor && !prevSel.active {
		return
	}
	b.cursor = next
	b.sel = selectionState{}
	b.version++
}

func (b *Buffer) moveCursor(p int, m Move) int {
	switch m.Dir {
	case DirHome:
		return 0
	case DirEnd:
		return len(b.clusters)
	}

	switch m.Unit {
	case MoveGrapheme:
		if m.Dir == DirLeft {
			return p - 1
		}
		return p + 1
	case MoveWord:
		if m.Dir == DirLeft {
			return prevWordBoundary(b.clusters, p)
		}
		return nextWordBoundary(b.clusters, p)
	case MoveDoc:
		if m.Dir == DirLeft {
			return 0
		}
		return len(b.clusters)
	default:
		return p
	}
}

// Word motion: skip whitespace, then skip non-whitespace.
func prevWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i > 0 && grapheme.IsSpace(line[i-1]) {
		i--
	}
	for i > 0 && !grapheme.IsSpace(line[i-1]) {
		i--
	}
	return i
}

func nextWordBoundary(line []string, col int) int {
	i := clampInt(col, 0, len(line))
	for i < len(line) && grapheme.IsSpace(line[i]) {
		i++
	}
	for i < len(line) && !grapheme.IsSpace(line[i]) {
		i++
	}
	return i
}
