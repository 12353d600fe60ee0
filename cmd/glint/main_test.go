package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kungfusheep/glint"
)

// writeTree writes src to a tree file in a fresh working directory.
func writeTree(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	path := writeTree(t, "root: {border: {child: {text: hi}}}")
	out, err := runRoot(t, "render", "-f", path, "-W", "6", "-H", "3", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "┌──┐\n│hi│\n└──┘\n", out)
}

func TestRenderScreenSizeInState(t *testing.T) {
	path := writeTree(t, `root: {text: "{{ cols }}x{{ rows }}"}`)
	out, err := runRoot(t, "render", "-f", path, "-W", "7", "-H", "1", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "7x1\n", out)
}

func TestRenderSkeleton(t *testing.T) {
	path := writeTree(t, `
state: {name: disk}
root: {text: "name={{ name }}"}
`)
	out, err := runRoot(t, "render", "-f", path, "-W", "12", "-H", "1", "--color", "never", "--skeleton")
	require.NoError(t, err)
	assert.Equal(t, "name=\n", out)
}

func TestRenderBorderFromEnv(t *testing.T) {
	path := writeTree(t, "root: {border: {child: {text: x}}}")
	t.Setenv("GLINT_BORDER", "ascii")
	out, err := runRoot(t, "render", "-f", path, "-W", "3", "-H", "3", "--color", "never")
	require.NoError(t, err)
	assert.Equal(t, "+-+\n|x|\n+-+\n", out)
}

func TestRenderTooSmall(t *testing.T) {
	path := writeTree(t, "root: {name: box, border: {child: {text: x}}}")
	_, err := runRoot(t, "render", "-f", path, "-W", "1", "-H", "1", "--color", "never")
	require.Error(t, err)
	assert.ErrorIs(t, err, glint.ErrInsufficientSpace)

	var msg bytes.Buffer
	handleError(&msg, err)
	assert.Contains(t, msg.String(), "Error: ")
	assert.Contains(t, msg.String(), `too small for "box"`)
}

func TestRenderRequiresFile(t *testing.T) {
	t.Chdir(t.TempDir())
	_, err := runRoot(t, "render")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tree file")
}

func TestHandleErrorIgnoresHelp(t *testing.T) {
	var msg bytes.Buffer
	handleError(&msg, nil)
	handleError(&msg, errors.WithStack(pflag.ErrHelp))
	assert.Empty(t, msg.String())
}

func newTestApp(t *testing.T, args ...string) *app {
	t.Helper()
	saved := color.NoColor
	t.Cleanup(func() { color.NoColor = saved })

	a := newApp()
	fs := pflag.NewFlagSet("glint", pflag.ContinueOnError)
	a.opts.BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	require.NoError(t, a.setup(fs))
	return a
}

func TestViewModelResize(t *testing.T) {
	path := writeTree(t, `root: {text: "{{ cols }}"}`)
	a := newTestApp(t, "-f", path, "--color", "never")

	m := newViewModel(a, 10, 2)
	assert.Equal(t, "10\n", m.View())

	next, cmd := m.Update(tea.WindowSizeMsg{Width: 42, Height: 3})
	assert.Nil(t, cmd)
	assert.Equal(t, "42\n\n", next.View())
	assert.Equal(t, uint64(2), a.frame.Generation())
}

func TestViewModelReloadAndQuit(t *testing.T) {
	path := writeTree(t, "root: {text: before}")
	a := newTestApp(t, "-f", path, "--color", "never")
	m := newViewModel(a, 10, 1)
	assert.Equal(t, "before", m.View())

	require.NoError(t, os.WriteFile(path, []byte("root: {text: after}"), 0o644))
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Equal(t, "after", next.View())

	require.NoError(t, os.WriteFile(path, []byte("root: {"), 0o644))
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.Contains(t, next.View(), "parse tree file")

	_, cmd := next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
