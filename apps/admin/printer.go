package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/trezcool/agendai/core/due"
	"github.com/trezcool/agendai/core/homework"
	"github.com/trezcool/agendai/core/schedule"
)

var bold = color.New(color.Bold)

func tierColor(t due.Tier) *color.Color {
	switch t {
	case due.Overdue:
		return color.New(color.FgRed, color.Bold)
	case due.DueToday:
		return color.New(color.FgRed)
	case due.DueTomorrow:
		return color.New(color.FgYellow)
	case due.Warning:
		return color.New(color.FgCyan)
	case due.Normal:
		return color.New(color.Reset)
	default:
		panic(fmt.Sprintf("unknown tier %q", t))
	}
}

func stateColor(s schedule.State) *color.Color {
	switch s {
	case schedule.Upcoming:
		return color.New(color.FgGreen)
	case schedule.InProgress:
		return color.New(color.FgYellow, color.Bold)
	case schedule.Finished:
		return color.New(color.Faint)
	default:
		panic(fmt.Sprintf("unknown schedule state %q", s))
	}
}

func printTasks(w io.Writer, tasks []homework.TaskView) {
	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "no homework")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("DUE"), bold.Sprint("SUBJECT"), bold.Sprint("TITLE"), bold.Sprint("STATUS"))
	for _, t := range tasks {
		status := "done"
		if t.Status != nil {
			status = tierColor(t.Status.Tier).Sprint(t.Status.Label)
		}
		tbl.AddRow(t.DueAt.Format("Mon 02 Jan 15:04"), t.Subject, t.Title, status)
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func printWeek(w io.Writer, wk schedule.Week) {
	_, _ = fmt.Fprintf(w, "%s (%+d)\n", bold.Sprint(wk.Label), wk.Offset)

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, d := range wk.Days {
		if len(d.Entries) == 0 {
			continue
		}
		tbl.AddRow(bold.Sprint(d.Name), d.Date)
		for _, e := range d.Entries {
			state := stateColor(e.Status.State).Sprint(e.Status.State)
			if e.Status.State == schedule.Upcoming && wk.Offset == 0 {
				state = stateColor(e.Status.State).Sprintf("in %d min", e.Status.MinutesUntilStart)
			}
			tbl.AddRow("", e.Window.String(), e.Subject, e.Room, state)
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
}
