// glint lays out and draws element tree files in the terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kungfusheep/glint"
)

func main() {
	root := newRootCommand()
	err := root.Execute()
	handleError(os.Stderr, err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := newApp()
	cmd := &cobra.Command{
		Use:           "glint",
		Short:         "Lay out and draw element tree files",
		Long:          "glint reads an element tree from a YAML file, lays it out for the screen and draws it.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Flags())
		},
	}
	a.opts.AddFlags(cmd)
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.AddCommand(newRenderCommand(a), newViewCommand(a))
	cmd.Example = `  # Draw a tree once at the terminal size
  glint render -f dashboard.yaml

  # Draw at a fixed size without colors
  glint render -f dashboard.yaml -W 40 -H 10 --color never

  # Show only what the tree lays out without state
  glint render -f dashboard.yaml --skeleton

  # Redraw on every resize until q is pressed
  glint view -f dashboard.yaml`
	return cmd
}

func handleError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	var layoutErr *glint.LayoutError
	switch {
	case errors.As(err, &layoutErr):
		message = fmt.Sprintf("%s\nHint: the screen is too small for %q; try a larger --width or --height.", err, layoutErr.Path)
	case errors.Is(err, glint.ErrFrameClosed):
		message = fmt.Sprintf("%s\nHint: a value was read after its frame ended.", err)
	}
	color.New(color.FgRed, color.Bold).Fprint(w, "Error: ")
	fmt.Fprintln(w, message)
}
