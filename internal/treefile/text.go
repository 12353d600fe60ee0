package treefile

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/kungfusheep/glint"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// splitText breaks s into literal parts and compiled {{ expression }} parts,
// in order. Empty literals are dropped.
func splitText(s string, exprs *glint.Compiler) (glint.Expressions, error) {
	var parts glint.Expressions
	for s != "" {
		start := strings.Index(s, openDelim)
		if start < 0 {
			parts = append(parts, glint.TextExpr(s))
			break
		}
		if start > 0 {
			parts = append(parts, glint.TextExpr(s[:start]))
		}
		rest := s[start+len(openDelim):]
		end := strings.Index(rest, closeDelim)
		if end < 0 {
			return nil, errors.Errorf("unterminated %s in %q", openDelim, s)
		}
		source := strings.TrimSpace(rest[:end])
		if source == "" {
			return nil, errors.Errorf("empty expression in %q", s)
		}
		e, err := exprs.Compile(source)
		if err != nil {
			return nil, err
		}
		parts = append(parts, e)
		s = rest[end+len(closeDelim):]
	}
	return parts, nil
}
