package main

import (
	"io"
	"time"

	"github.com/gigurra/ledger-cleaner/internal"
	"github.com/jedib0t/go-pretty/v6/progress"
)

// progressSteps is the resolution of the progress bar
const progressSteps = 1000

// trackProgress draws a progress bar for the run until it finishes
func trackProgress(r *internal.Run, w io.Writer) internal.Result {
	pw := progress.NewWriter()
	pw.SetOutputWriter(w)
	pw.SetAutoStop(true)
	pw.SetTrackerLength(30)
	pw.SetUpdateFrequency(50 * time.Millisecond)
	pw.Style().Visibility.ETA = false
	pw.Style().Visibility.Value = false

	tracker := &progress.Tracker{Message: "Scanning rows", Total: progressSteps, Units: progress.UnitsDefault}
	pw.AppendTracker(tracker)

	rendered := make(chan struct{})
	go func() {
		pw.Render()
		close(rendered)
	}()

	for fraction := range r.Progress() {
		tracker.SetValue(int64(fraction * progressSteps))
	}

	res := r.Wait()
	if res.Err != nil {
		tracker.MarkAsErrored()
	} else {
		tracker.MarkAsDone()
	}
	<-rendered

	return res
}
