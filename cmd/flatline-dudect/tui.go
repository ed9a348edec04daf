package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/stateless-ltd/flatline/dudect"
)

// TUI mode: a live results table that fills in as the suite runs. Layout
// follows the debugger-style two-pane arrangement: results on top, a status
// line underneath.

type suiteTUI struct {
	app    *tview.Application
	table  *tview.Table
	status *tview.TextView
}

func newSuiteTUI(opts dudect.Options, count int) *suiteTUI {
	t := &suiteTUI{
		app:    tview.NewApplication(),
		table:  tview.NewTable(),
		status: tview.NewTextView(),
	}

	t.table.SetBorder(true).SetTitle(" flatline-dudect ")
	t.table.SetFixed(1, 0)
	headers := []string{"Target", "Mean0 (ns)", "Mean1 (ns)", "t", "Verdict"}
	for col, h := range headers {
		cell := tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)
		t.table.SetCell(0, col, cell)
	}

	t.status.SetDynamicColors(true)
	t.status.SetText(fmt.Sprintf(" running 0/%d targets | samples=%d reps=%d | q to quit",
		count, opts.Samples, opts.Reps))

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.table, 0, 1, true).
		AddItem(t.status, 1, 0, false)

	t.app.SetRoot(layout, true)
	t.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Key() == tcell.KeyEscape || ev.Rune() == 'q' {
			t.app.Stop()
			return nil
		}
		return ev
	})
	return t
}

func (t *suiteTUI) addResult(row int, r dudect.Result, threshold float64, done, total int) {
	verdict := "OK"
	colr := tcell.ColorGreen
	switch {
	case r.Leak(threshold) && r.Leaky:
		verdict = "LEAK (control)"
	case r.Leak(threshold):
		verdict = "LEAK"
		colr = tcell.ColorRed
	case r.Leaky:
		verdict = "quiet control"
		colr = tcell.ColorYellow
	}

	t.table.SetCell(row, 0, tview.NewTableCell(r.Name))
	t.table.SetCell(row, 1, tview.NewTableCell(fmt.Sprintf("%.1f", r.Mean0)).SetAlign(tview.AlignRight))
	t.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%.1f", r.Mean1)).SetAlign(tview.AlignRight))
	t.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%.2f", r.T)).SetAlign(tview.AlignRight))
	t.table.SetCell(row, 4, tview.NewTableCell(verdict).SetTextColor(colr))

	if done == total {
		t.status.SetText(fmt.Sprintf(" done, %d targets | q to quit", total))
	} else {
		t.status.SetText(fmt.Sprintf(" running %d/%d targets | q to quit", done, total))
	}
}

func runTUI(opts dudect.Options, targets []dudect.Target, refreshMS int) error {
	_ = refreshMS // updates are pushed per result, not on a timer
	ui := newSuiteTUI(opts, len(targets))

	go func() {
		runner := dudect.NewRunner(opts)
		done := 0
		runner.RunAll(targets, func(r dudect.Result) {
			done++
			row := done
			res := r
			d := done
			ui.app.QueueUpdateDraw(func() {
				ui.addResult(row, res, opts.Threshold, d, len(targets))
			})
		})
	}()

	if err := ui.app.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
