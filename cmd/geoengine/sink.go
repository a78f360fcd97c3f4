package main

import (
	"os"

	"github.com/fatih/color"

	"geoengine/progress"
)

// colorSink is the terminal progress.Sink the GUI's modal progress dialog
// would otherwise be: status lines in cyan, a green "done" or red "failed"
// line on completion.
type colorSink struct {
	status *color.Color
	ok     *color.Color
	fail   *color.Color
}

func newColorSink() progress.Sink {
	return &colorSink{
		status: color.New(color.FgCyan),
		ok:     color.New(color.FgGreen, color.Bold),
		fail:   color.New(color.FgRed, color.Bold),
	}
}

func (s *colorSink) Status(message string) {
	s.status.Fprintln(os.Stdout, "  "+message)
}

func (s *colorSink) Completed(success bool) {
	if success {
		s.ok.Fprintln(os.Stdout, "done")
		return
	}
	s.fail.Fprintln(os.Stdout, "failed")
}
