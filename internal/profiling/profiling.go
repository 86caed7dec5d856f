package profiling

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Lightweight per-frame CPU profiler: named durations plus named counters.
// Safe for concurrent use from mesh workers.

var (
	mu       sync.Mutex
	totals   = make(map[string]time.Duration)
	counters = make(map[string]int64)
)

// Track returns a stop function that adds the elapsed time under name.
// Usage: defer profiling.Track("meshing.Mesh")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		totals[name] += d
		mu.Unlock()
	}
}

// Count adds n to the named counter.
func Count(name string, n int) {
	mu.Lock()
	counters[name] += int64(n)
	mu.Unlock()
}

// ResetFrame clears durations and counters. Call at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(totals)
	clear(counters)
	mu.Unlock()
}

// Snapshot returns a copy of the current durations.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(totals))
	for k, v := range totals {
		out[k] = v
	}
	return out
}

// Counter returns the current value of a counter.
func Counter(name string) int64 {
	mu.Lock()
	defer mu.Unlock()
	return counters[name]
}

// SumWithPrefix totals every duration whose name starts with prefix.
func SumWithPrefix(prefix string) time.Duration {
	mu.Lock()
	defer mu.Unlock()
	var sum time.Duration
	for k, v := range totals {
		if strings.HasPrefix(k, prefix) {
			sum += v
		}
	}
	return sum
}

// TopN formats the n largest durations, e.g.
// "meshing.Mesh:4.2ms, meshing.Project:2.1ms".
func TopN(n int) string {
	ss := Snapshot()
	type pair struct {
		name string
		dur  time.Duration
	}
	list := make([]pair, 0, len(ss))
	for k, v := range ss {
		list = append(list, pair{name: k, dur: v})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].dur > list[j].dur })
	n = min(n, len(list))
	parts := make([]string, 0, n)
	for _, p := range list[:n] {
		ms := float64(p.dur.Microseconds()) / 1000.0
		parts = append(parts, p.name+":"+strconv.FormatFloat(ms, 'f', 1, 64)+"ms")
	}
	return strings.Join(parts, ", ")
}
