// Package progress renders pipeline progress on stderr.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/ziadkadry99/codevec/internal/indexer"
)

// Reporter provides progress feedback for one stage of work at a time.
type Reporter interface {
	Start(description string, total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a TerminalReporter if running in an interactive terminal,
// or a CIReporter if the CI environment variable is set.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &CIReporter{}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(description string, total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
		r.bar = nil
	}
}

// CIReporter prints line-by-line progress suitable for CI logs.
type CIReporter struct {
	Out io.Writer // nil means stderr

	description string
	total       int
}

func (r *CIReporter) out() io.Writer {
	if r.Out == nil {
		return os.Stderr
	}
	return r.Out
}

func (r *CIReporter) Start(description string, total int) {
	r.description = description
	r.total = total
	fmt.Fprintf(r.out(), "%s: %d item(s)\n", description, total)
}

func (r *CIReporter) Update(current int, message string) {
	if message == "" {
		fmt.Fprintf(r.out(), "[%d/%d] %s\n", current, r.total, r.description)
		return
	}
	fmt.Fprintf(r.out(), "[%d/%d] %s\n", current, r.total, message)
}

func (r *CIReporter) Finish() {
	fmt.Fprintf(r.out(), "%s: done\n", r.description)
}

var stageDescriptions = map[indexer.Stage]string{
	indexer.StageParse: "Parsing files",
	indexer.StageEmbed: "Embedding",
	indexer.StageStore: "Storing vectors",
}

// Tracker feeds pipeline progress callbacks into a Reporter, starting a
// fresh bar whenever the stage changes.
type Tracker struct {
	r       Reporter
	stage   indexer.Stage
	started bool
}

// NewTracker returns a Tracker writing to r.
func NewTracker(r Reporter) *Tracker {
	return &Tracker{r: r}
}

// Func returns the callback to pass to indexer.Pipeline.SetProgressFunc.
func (t *Tracker) Func() indexer.ProgressFunc {
	return func(stage indexer.Stage, processed, total int, current string) {
		if !t.started || stage != t.stage {
			t.Finish()
			desc, ok := stageDescriptions[stage]
			if !ok {
				desc = string(stage)
			}
			t.r.Start(desc, total)
			t.stage = stage
			t.started = true
		}
		t.r.Update(processed, current)
	}
}

// Finish closes the current stage, if any.
func (t *Tracker) Finish() {
	if t.started {
		t.r.Finish()
		t.started = false
	}
}
