package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newViewCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "Draw the tree full screen, redrawing on resize",
		Long:  "view draws the tree in the alternate screen and lays it out again whenever the terminal is resized. Press r to reload the tree file and q to quit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w, h := a.size()
			m := newViewModel(a, w, h)
			_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

type viewModel struct {
	a      *app
	width  int
	height int
	out    string
	err    error
}

func newViewModel(a *app, w, h int) viewModel {
	m := viewModel{a: a, width: w, height: h}
	return m.redraw()
}

func (m viewModel) redraw() viewModel {
	buf, err := m.a.draw(m.width, m.height)
	m.err = err
	if err == nil {
		m.out = m.a.output(buf)
	}
	return m
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m.redraw(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if err := m.a.load(); err != nil {
				m.err = err
				return m, nil
			}
			return m.redraw(), nil
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	if m.err != nil {
		return color.RedString("Error: ") + m.err.Error() + "\n\npress r to reload, q to quit"
	}
	return m.out
}
