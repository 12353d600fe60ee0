package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRenderCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "render",
		Short: "Lay out and draw the tree once to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h := a.size()
			buf, err := a.draw(w, h)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), a.output(buf))
			return err
		},
	}
}
