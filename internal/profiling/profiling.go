package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Timings accumulates wall time per pipeline stage for one generation run.
// The zero value is ready to use.
type Timings struct {
	mu     sync.Mutex
	totals map[string]time.Duration
	order  []string
}

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer timings.Track("noise.Build")()
func (t *Timings) Track(name string) func() {
	start := time.Now()
	return func() {
		t.add(name, time.Since(start))
	}
}

func (t *Timings) add(name string, d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.totals == nil {
		t.totals = make(map[string]time.Duration)
	}
	if _, ok := t.totals[name]; !ok {
		t.order = append(t.order, name)
	}
	t.totals[name] += d
}

// Snapshot returns a copy of the stage totals.
func (t *Timings) Snapshot() map[string]time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[string]time.Duration, len(t.totals))
	for k, v := range t.totals {
		out[k] = v
	}
	return out
}

// Total returns the sum of all stages.
func (t *Timings) Total() time.Duration {
	var sum time.Duration
	for _, d := range t.Snapshot() {
		sum += d
	}
	return sum
}

// Stages returns stage names in the order they were first tracked.
func (t *Timings) Stages() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.order...)
}

// TopN formats the n slowest stages.
// Example: "mesh.Render:4.2ms, noise.Build:2.1ms"
func (t *Timings) TopN(n int) string {
	ss := t.Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].dur != list[j].dur {
			return list[i].dur > list[j].dur
		}
		return list[i].name < list[j].name
	})
	if n > len(list) {
		n = len(list)
	}
	parts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		parts = append(parts, list[i].name+":"+formatMs(list[i].dur))
	}
	return strings.Join(parts, ", ")
}

// formatMs keeps one decimal and drops ".0".
func formatMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000.0
	s := strconv.FormatFloat(ms, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0") + "ms"
}
