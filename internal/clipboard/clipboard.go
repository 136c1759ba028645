// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
// (for example xclip, xsel or wl-copy on Linux).
var ErrUnsupported = errors.New("system clipboard is not available")

// System is the clipboard of the host machine
type System struct{}

func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Memory keeps the last written text. Useful when no system clipboard is
// present and in tests.
type Memory struct {
	Text   string
	Writes int
	Err    error
}

// WriteAll stores text unless Err is set. Writes counts every attempt.
func (m *Memory) WriteAll(text string) error {
	m.Writes++
	if m.Err != nil {
		return m.Err
	}
	m.Text = text
	return nil
}
