//go:build !unix

package termsize

import "golang.org/x/term"

func getSize(fd int) (int, int, error) {
	return term.GetSize(fd)
}
