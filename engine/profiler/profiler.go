// Package profiler records nested timing scopes for the frame loop and
// exports them in the speedscope evented format.
package profiler

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"
)

type event struct {
	at    time.Duration // since the recorder was created
	scope int
	open  bool
}

// ScopeStat aggregates every closed occurrence of one scope.
type ScopeStat struct {
	Name  string
	Count int
	Total time.Duration
	Last  time.Duration
}

func (s ScopeStat) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Recorder keeps the last capacity scope events in a ring plus running
// per-scope totals. It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	now    func() time.Time
	origin time.Time

	ring    []event
	written uint64

	names []string
	ids   map[string]int
	stats []ScopeStat
}

// New creates a recorder holding up to capacity events (1<<16 if <= 0).
func New(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 1 << 16
	}
	r := &Recorder{now: time.Now, ring: make([]event, capacity), ids: map[string]int{}}
	r.origin = r.now()
	return r
}

// Start opens a scope and returns the func that closes it.
func (r *Recorder) Start(name string) func() {
	r.mu.Lock()
	id := r.intern(name)
	begin := r.now().Sub(r.origin)
	r.push(event{at: begin, scope: id, open: true})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		end := r.now().Sub(r.origin)
		if end < begin {
			end = begin
		}
		r.push(event{at: end, scope: id})
		st := &r.stats[id]
		st.Count++
		st.Last = end - begin
		st.Total += st.Last
	}
}

// Stats returns the per-scope aggregates in first-seen order.
func (r *Recorder) Stats() []ScopeStat {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ScopeStat(nil), r.stats...)
}

func (r *Recorder) intern(name string) int {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := len(r.names)
	r.ids[name] = id
	r.names = append(r.names, name)
	r.stats = append(r.stats, ScopeStat{Name: name})
	return id
}

func (r *Recorder) push(e event) {
	r.ring[r.written%uint64(len(r.ring))] = e
	r.written++
}

// events returns the retained events in write order.
func (r *Recorder) events() []event {
	n := r.written
	size := uint64(len(r.ring))
	start := uint64(0)
	if n > size {
		start = n - size
	}
	out := make([]event, 0, n-start)
	for k := start; k < n; k++ {
		out = append(out, r.ring[k%size])
	}
	return out
}

// speedscope file format (evented profile)
type ssFile struct {
	Schema   string      `json:"$schema"`
	Shared   ssShared    `json:"shared"`
	Profiles []ssProfile `json:"profiles"`
	Exporter string      `json:"exporter,omitempty"`
	Name     string      `json:"name,omitempty"`
}

type ssShared struct {
	Frames []ssFrame `json:"frames"`
}

type ssFrame struct {
	Name string `json:"name"`
}

type ssProfile struct {
	Type       string    `json:"type"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	StartValue int64     `json:"startValue"`
	EndValue   int64     `json:"endValue"`
	Events     []ssEvent `json:"events"`
}

type ssEvent struct {
	Type  string `json:"type"` // "O" or "C"
	At    int64  `json:"at"`   // microseconds
	Frame int    `json:"frame"`
}

// WriteSpeedscope encodes the retained events. Closes whose open fell out
// of the ring are dropped and scopes still open are closed at the last
// timestamp, so the result is always balanced.
func (r *Recorder) WriteSpeedscope(w io.Writer) error {
	r.mu.Lock()
	evs := r.events()
	frames := make([]ssFrame, len(r.names))
	for i, name := range r.names {
		frames[i] = ssFrame{Name: name}
	}
	r.mu.Unlock()

	if len(evs) == 0 {
		return fmt.Errorf("profiler: no events")
	}

	base := evs[0].at.Microseconds()
	var (
		out   = make([]ssEvent, 0, len(evs))
		stack []int
		last  int64
	)
	for _, e := range evs {
		at := e.at.Microseconds() - base
		if at < last {
			at = last
		}
		if e.open {
			stack = append(stack, e.scope)
			out = append(out, ssEvent{Type: "O", At: at, Frame: e.scope})
		} else {
			if len(stack) == 0 || stack[len(stack)-1] != e.scope {
				continue
			}
			stack = stack[:len(stack)-1]
			out = append(out, ssEvent{Type: "C", At: at, Frame: e.scope})
		}
		last = at
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out = append(out, ssEvent{Type: "C", At: last, Frame: stack[i]})
	}

	doc := ssFile{
		Schema: "https://www.speedscope.app/file-format-schema.json",
		Shared: ssShared{Frames: frames},
		Profiles: []ssProfile{{
			Type:     "evented",
			Name:     "frame scopes",
			Unit:     "microseconds",
			EndValue: last,
			Events:   out,
		}},
		Exporter: "sprout-profiler",
		Name:     "sprout capture",
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// DumpSpeedscope writes the profile to path through a temporary file.
func (r *Recorder) DumpSpeedscope(path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := r.WriteSpeedscope(f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

func NumGoroutine() int { return runtime.NumGoroutine() }
