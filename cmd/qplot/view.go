package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/qplot/internal/render"
	"github.com/ha1tch/qplot/pkg/canvas"
	"github.com/ha1tch/qplot/pkg/simulation"
)

// Virtual pixels per terminal cell.
const (
	viewCellWidth  = 8
	viewCellHeight = 16
)

// viewer shows one result on a tcell screen and redraws on resize.
type viewer struct {
	screen tcell.Screen
	res    simulation.Result
	opts   render.Options
	title  string
}

func cmdView(args []string) {
	if len(args) < 1 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: qplot view <input> [--top N] [--right N] [--bottom N] [--left N] [-t title]")
		os.Exit(1)
	}

	cfg := mustLoadConfig()
	rf, err := parseRenderFlags(args, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	res := mustLoadResult(rf.input)
	if err := res.Statevector.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}

	title := rf.title
	if title == "" {
		title = rf.input
	}
	v := &viewer{screen: screen, res: res, opts: rf.opts, title: title}
	err = v.run()
	screen.Fini()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func (v *viewer) run() error {
	for {
		if err := v.draw(); err != nil {
			return err
		}
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				return nil
			}
		case nil:
			// Screen finalized.
			return nil
		}
	}
}

// draw plots the state vector over the whole screen and writes a status
// line on the bottom row.
func (v *viewer) draw() error {
	v.screen.Clear()
	term := canvas.NewTerminal(v.screen, viewCellWidth, viewCellHeight)
	if _, err := render.Plot(term, v.res.Statevector, v.opts); err != nil {
		return err
	}

	sv := v.res.Statevector
	status := fmt.Sprintf(" %s  %d qubits  norm² %.4f  q: quit ", v.title, sv.QubitWidth, sv.NormSquared())
	cols, rows := v.screen.Size()
	st := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows-1, r, nil, st)
	}
	return nil
}
