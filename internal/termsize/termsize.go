// Package termsize reports the size of the terminal glint draws into.
package termsize

import (
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// ErrNotTerminal is returned when the descriptor is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// Get returns the width and height in cells of the terminal on fd.
func Get(fd int) (int, int, error) {
	if !term.IsTerminal(fd) {
		return 0, 0, ErrNotTerminal
	}
	w, h, err := getSize(fd)
	if err != nil {
		return 0, 0, errors.Wrap(err, "terminal size")
	}
	return w, h, nil
}

// Fallback returns the terminal size on fd, or width and height when fd is
// not a terminal or cannot report a usable size.
func Fallback(fd, width, height int) (int, int) {
	w, h, err := Get(fd)
	if err != nil || w <= 0 || h <= 0 {
		return width, height
	}
	return w, h
}
