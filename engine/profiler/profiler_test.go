package profiler

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}

func newTestRecorder(capacity int) *Recorder {
	r := New(capacity)
	r.now = fakeClock(time.Millisecond)
	r.origin = time.Unix(0, 0)
	return r
}

func decode(t *testing.T, r *Recorder) ssFile {
	t.Helper()
	var buf bytes.Buffer
	if err := r.WriteSpeedscope(&buf); err != nil {
		t.Fatalf("WriteSpeedscope() error = %v", err)
	}
	var doc ssFile
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return doc
}

func TestScopeStats(t *testing.T) {
	r := newTestRecorder(64)
	for i := 0; i < 3; i++ {
		endFrame := r.Start("frame")
		endFlush := r.Start("flush")
		endFlush()
		endFrame()
	}

	stats := r.Stats()
	if len(stats) != 2 || stats[0].Name != "frame" || stats[1].Name != "flush" {
		t.Fatalf("stats = %+v", stats)
	}
	// each reading advances 1ms: flush spans 1ms, frame spans 3ms
	if stats[1].Count != 3 || stats[1].Last != time.Millisecond || stats[1].Mean() != time.Millisecond {
		t.Errorf("flush = %+v", stats[1])
	}
	if stats[0].Total != 9*time.Millisecond {
		t.Errorf("frame total = %v", stats[0].Total)
	}
	if (ScopeStat{}).Mean() != 0 {
		t.Errorf("empty mean should be zero")
	}
}

func TestSpeedscopeBalanced(t *testing.T) {
	r := newTestRecorder(64)
	end := r.Start("outer")
	r.Start("inner") // never closed
	end()

	doc := decode(t, r)
	if len(doc.Shared.Frames) != 2 || doc.Profiles[0].Type != "evented" {
		t.Fatalf("doc = %+v", doc)
	}
	depth := 0
	for _, e := range doc.Profiles[0].Events {
		switch e.Type {
		case "O":
			depth++
		case "C":
			depth--
		}
		if depth < 0 {
			t.Fatalf("close before open in %+v", doc.Profiles[0].Events)
		}
	}
	if depth != 0 {
		t.Errorf("unbalanced events: %+v", doc.Profiles[0].Events)
	}
}

func TestSpeedscopeRingDropsOrphans(t *testing.T) {
	r := newTestRecorder(3)
	end := r.Start("a") // overwritten
	r.Start("b")()      // open+close retained
	end()

	doc := decode(t, r)
	for _, e := range doc.Profiles[0].Events {
		if e.Frame == 0 {
			t.Errorf("close of evicted scope kept: %+v", e)
		}
	}
}

func TestSpeedscopeEmpty(t *testing.T) {
	if err := New(8).WriteSpeedscope(&bytes.Buffer{}); err == nil {
		t.Errorf("expected an error without events")
	}
}

func TestDumpSpeedscope(t *testing.T) {
	r := newTestRecorder(16)
	r.Start("x")()
	path := filepath.Join(t.TempDir(), "p.speedscope.json")
	if err := r.DumpSpeedscope(path); err != nil {
		t.Fatalf("DumpSpeedscope() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temporary file left behind")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("profile missing: %v", err)
	}
}
