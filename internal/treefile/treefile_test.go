package treefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kungfusheep/glint"
)

// render builds tpl against its own state and draws it into a w x h buffer.
func render(t *testing.T, tpl *Template, r glint.Resolver, w, h int) *glint.Buffer {
	t.Helper()
	var buf *glint.Buffer
	f := glint.NewFrame()
	err := f.Scope(func(f *glint.Frame) error {
		root, err := tpl.Build(f, r, nil)
		if err != nil {
			return err
		}
		buf, err = glint.NewEngine().Render(root, w, h)
		return err
	})
	require.NoError(t, err)
	return buf
}

func mustParse(t *testing.T, src string, opts ...Option) *Template {
	t.Helper()
	tpl, err := Parse([]byte(src), opts...)
	require.NoError(t, err)
	return tpl
}

func TestTextInterpolation(t *testing.T) {
	tpl := mustParse(t, `
state:
  title: Disk
  used: 3
root:
  text: "{{ title }}: {{ used * 2 }} GB"
`)
	buf := render(t, tpl, glint.NewImmediate(), 20, 1)
	assert.Equal(t, "Disk: 6 GB", buf.GetLine(0))
}

func TestBorderAroundStack(t *testing.T) {
	tpl := mustParse(t, `
state:
  items:
    - name: alpha
    - name: beta
root:
  border:
    style: ascii
    child:
      for:
        each: items
        as: item
        body:
          text: "{{ index }} {{ item.name }}"
`)
	buf := render(t, tpl, glint.NewImmediate(), 10, 4)
	assert.Equal(t, "+-------+", buf.GetLine(0))
	assert.Equal(t, "|0 alpha|", buf.GetLine(1))
	assert.Equal(t, "|1 beta |", buf.GetLine(2))
	assert.Equal(t, "+-------+", buf.GetLine(3))
}

func TestExpressionSizing(t *testing.T) {
	tpl := mustParse(t, `
state:
  cols: 9
root:
  border:
    width: "cols / 2"
    height: 3
    child:
      text: x
`)
	f := glint.NewFrame()
	f.Begin()
	defer f.End()
	root, err := tpl.Build(f, glint.NewImmediate(), nil)
	require.NoError(t, err)

	size, err := glint.NewEngine().Layout(root, glint.NewConstraints(20, 10))
	require.NoError(t, err)
	assert.Equal(t, glint.Size{Width: 4, Height: 3}, size)
}

func TestPaddingSides(t *testing.T) {
	tpl := mustParse(t, `
root:
  padding:
    all: 1
    left: 3
    child:
      text: hi
`)
	buf := render(t, tpl, glint.NewImmediate(), 8, 3)
	assert.Equal(t, "", buf.GetLine(0))
	assert.Equal(t, "   hi", buf.GetLine(1))
}

func TestHorizontalStackGap(t *testing.T) {
	tpl := mustParse(t, `
root:
  stack:
    axis: horizontal
    gap: 2
    children:
      - text: a
      - text: b
`)
	buf := render(t, tpl, glint.NewImmediate(), 10, 1)
	assert.Equal(t, "a  b", buf.GetLine(0))
}

func TestLiteralLoop(t *testing.T) {
	tpl := mustParse(t, `
root:
  for:
    each: [one, 2, true]
    as: v
    axis: horizontal
    gap: 1
    body:
      text: "{{ v }}"
`)
	buf := render(t, tpl, glint.NewImmediate(), 20, 1)
	assert.Equal(t, "one 2 true", buf.GetLine(0))
}

func TestConditional(t *testing.T) {
	src := `
root:
  if:
    cond: "count > 0"
    then:
      text: some
    else:
      text: none
`
	tpl := mustParse(t, src)

	tpl.State().Set("count", 2)
	assert.Equal(t, "some", render(t, tpl, glint.NewImmediate(), 10, 1).GetLine(0))

	tpl.State().Set("count", 0)
	assert.Equal(t, "none", render(t, tpl, glint.NewImmediate(), 10, 1).GetLine(0))
}

func TestSkeleton(t *testing.T) {
	tpl := mustParse(t, `
state:
  title: Disk
  ok: true
root:
  stack:
    children:
      - text: "name: {{ title }}"
      - if:
          cond: ok
          then:
            text: shown
`)
	buf := render(t, tpl, glint.NewDeferring(), 10, 2)
	assert.Equal(t, "name:", buf.GetLine(0))
	assert.Equal(t, "", buf.GetLine(1))
}

func TestBuildAgainstExternalState(t *testing.T) {
	tpl := mustParse(t, `
state:
  who: file
root:
  text: "{{ who }}"
`)
	st := glint.NewMap[any]().Set("who", "caller")

	f := glint.NewFrame()
	f.Begin()
	defer f.End()
	root, err := tpl.Build(f, glint.NewImmediate(), st)
	require.NoError(t, err)
	text, ok := root.Layout.(*glint.Text)
	require.True(t, ok)
	assert.Equal(t, "caller", text.Content)
}

func TestNamedNodes(t *testing.T) {
	tpl := mustParse(t, `
root:
  name: frame
  border:
    child:
      name: body
      text: x
`)
	f := glint.NewFrame()
	f.Begin()
	defer f.End()
	root, err := tpl.Build(f, glint.NewImmediate(), nil)
	require.NoError(t, err)
	assert.Equal(t, "frame", root.Name)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "body", root.Children[0].Name)
}

func TestLayoutFailureNamesNode(t *testing.T) {
	tpl := mustParse(t, `
root:
  name: box
  border:
    child:
      text: x
`)
	f := glint.NewFrame()
	f.Begin()
	defer f.End()
	root, err := tpl.Build(f, glint.NewImmediate(), nil)
	require.NoError(t, err)

	_, err = glint.NewEngine().Layout(root, glint.NewConstraints(1, 1))
	require.Error(t, err)
	assert.ErrorIs(t, err, glint.ErrInsufficientSpace)
	var layoutErr *glint.LayoutError
	require.ErrorAs(t, err, &layoutErr)
	assert.Equal(t, "box", layoutErr.Path)
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "negative size",
			src:  "root: {border: {width: -1, child: {text: x}}}",
			want: "must not be negative",
		},
		{
			name: "string size",
			src:  "root: {border: {width: \"'wide'\", child: {text: x}}}",
			want: "expected a number",
		},
		{
			name: "loop over scalar",
			src:  "root: {for: {each: \"3\", as: i, body: {text: x}}}",
			want: "expected a list",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := mustParse(t, tt.src)
			f := glint.NewFrame()
			f.Begin()
			defer f.End()
			_, err := tpl.Build(f, glint.NewImmediate(), nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "no root", src: "state: {}", want: "no root"},
		{name: "two kinds", src: "root: {text: a, stack: {}}", want: "exactly one"},
		{name: "no kind", src: "root: {name: x}", want: "exactly one"},
		{name: "bad style", src: "root: {border: {style: wavy, child: {text: a}}}", want: "unknown border style"},
		{name: "bad side", src: "root: {border: {sides: [up], child: {text: a}}}", want: "unknown border side"},
		{name: "missing child", src: "root: {padding: {all: 1}}", want: "missing child"},
		{name: "bad axis", src: "root: {stack: {axis: diagonal}}", want: "unknown axis"},
		{name: "unterminated", src: "root: {text: \"a {{ b\"}", want: "unterminated"},
		{name: "empty expression", src: "root: {text: \"a {{ }}\"}", want: "empty expression"},
		{name: "bad expression", src: "root: {text: \"{{ 1 + }}\"}", want: "1 +"},
		{name: "loop without as", src: "root: {for: {each: xs, body: {text: a}}}", want: "needs as"},
		{name: "if without cond", src: "root: {if: {then: {text: a}}}", want: "needs cond"},
		{name: "bad color", src: "root: {text: {content: a, color: notacolor}}", want: "notacolor"},
		{name: "bad yaml", src: "root: [", want: "parse tree file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSplitText(t *testing.T) {
	exprs := glint.NewCompiler()
	parts, err := splitText("a {{ x }} b {{x}}", exprs)
	require.NoError(t, err)
	require.Len(t, parts, 4)
	assert.Equal(t, `"a "`, parts[0].Source())
	assert.Equal(t, "x", parts[1].Source())
	assert.Equal(t, `" b "`, parts[2].Source())
	assert.Same(t, parts[1], parts[3])
	assert.Equal(t, 1, exprs.Len())

	parts, err = splitText("", exprs)
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestBorderStyleByName(t *testing.T) {
	chars, err := BorderStyleByName("Rounded")
	require.NoError(t, err)
	assert.Equal(t, glint.BorderRounded, chars)

	thick, err := BorderStyleByName("thick")
	require.NoError(t, err)
	assert.Equal(t, '┏', thick.TopLeft)

	_, err = BorderStyleByName("wavy")
	assert.Error(t, err)
}

func TestDefaultBorderOption(t *testing.T) {
	tpl := mustParse(t, "root: {border: {child: {text: x}}}", WithDefaultBorder(glint.BorderDouble))
	buf := render(t, tpl, glint.NewImmediate(), 3, 3)
	assert.Equal(t, "╔═╗", buf.GetLine(0))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: {text: loaded}"), 0o644))

	tpl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "loaded", render(t, tpl, glint.NewImmediate(), 10, 1).GetLine(0))

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoopOverMissingSourceLogs(t *testing.T) {
	var lines []string
	log := funcr.New(func(prefix, args string) {
		lines = append(lines, args)
	}, funcr.Options{Verbosity: 2})

	tpl := mustParse(t, "root: {for: {each: nothing, as: x, body: {text: a}}}", WithLogger(log))
	buf := render(t, tpl, glint.NewImmediate(), 5, 1)
	assert.Equal(t, "", buf.GetLine(0))

	found := false
	for _, l := range lines {
		if strings.Contains(l, "loop source has no items") {
			found = true
		}
	}
	assert.True(t, found, "logs: %v", lines)
}

func TestSpacer(t *testing.T) {
	tpl := mustParse(t, `
root:
  border:
    child:
      spacer: {fill: true}
`)
	buf := render(t, tpl, glint.NewImmediate(), 5, 3)
	assert.Equal(t, "┌───┐", buf.GetLine(0))
	assert.Equal(t, "│   │", buf.GetLine(1))
	assert.Equal(t, "└───┘", buf.GetLine(2))

	tpl = mustParse(t, `
root:
  stack:
    axis: horizontal
    children:
      - text: a
      - spacer: {width: "n + 1", height: 1}
      - text: b
state: {n: 2}
`)
	buf = render(t, tpl, glint.NewImmediate(), 12, 1)
	assert.Equal(t, "a   b", buf.GetLine(0))
}
