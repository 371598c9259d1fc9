package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ziadkadry99/codevec/internal/indexer"
)

func TestNewReporter_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.IsType(t, &CIReporter{}, NewReporter())
}

func TestNewReporter_Terminal(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("GITHUB_ACTIONS", "")
	assert.IsType(t, &TerminalReporter{}, NewReporter())
}

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Out: &buf}

	r.Start("Parsing files", 2)
	r.Update(1, "a.py")
	r.Update(2, "")
	r.Finish()

	assert.Equal(t, "Parsing files: 2 item(s)\n"+
		"[1/2] a.py\n"+
		"[2/2] Parsing files\n"+
		"Parsing files: done\n", buf.String())
}

func TestTracker_SwitchesStages(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracker(&CIReporter{Out: &buf})
	fn := tr.Func()

	fn(indexer.StageParse, 1, 2, "a.py")
	fn(indexer.StageParse, 2, 2, "b.md")
	fn(indexer.StageEmbed, 2, 2, "")
	fn(indexer.StageStore, 0, 2, "")
	fn(indexer.StageStore, 2, 2, "")
	tr.Finish()
	tr.Finish()

	assert.Equal(t, "Parsing files: 2 item(s)\n"+
		"[1/2] a.py\n"+
		"[2/2] b.md\n"+
		"Parsing files: done\n"+
		"Embedding: 2 item(s)\n"+
		"[2/2] Embedding\n"+
		"Embedding: done\n"+
		"Storing vectors: 2 item(s)\n"+
		"[0/2] Storing vectors\n"+
		"[2/2] Storing vectors\n"+
		"Storing vectors: done\n", buf.String())
}

func TestTerminalReporter_NoStart(t *testing.T) {
	r := &TerminalReporter{}
	assert.NotPanics(t, func() {
		r.Update(1, "x")
		r.Finish()
	})
}
