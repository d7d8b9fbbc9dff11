package profiling

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/load"
	"github.com/shirou/gopsutil/mem"
)

// Per-frame wall-clock totals keyed by stage name.

var (
	mu          sync.Mutex
	frameTotals = make(map[string]time.Duration)
	frameCalls  = make(map[string]int)
)

// Track returns a stop function that adds the elapsed time to name.
// Usage: defer profiling.Track("raster.Draw")()
func Track(name string) func() {
	start := time.Now()
	return func() {
		d := time.Since(start)
		mu.Lock()
		frameTotals[name] += d
		frameCalls[name]++
		mu.Unlock()
	}
}

// ResetFrame clears the totals. Call once at the start of each frame.
func ResetFrame() {
	mu.Lock()
	clear(frameTotals)
	clear(frameCalls)
	mu.Unlock()
}

// Snapshot returns a copy of the current totals.
func Snapshot() map[string]time.Duration {
	mu.Lock()
	defer mu.Unlock()
	out := make(map[string]time.Duration, len(frameTotals))
	for k, v := range frameTotals {
		out[k] = v
	}
	return out
}

// Calls returns how many times name was tracked this frame.
func Calls(name string) int {
	mu.Lock()
	defer mu.Unlock()
	return frameCalls[name]
}

// TopN formats the n slowest stages, e.g. "raster.Draw:4.2ms, raster.Clear:0.3ms".
func TopN(n int) string {
	ss := Snapshot()
	names := make([]string, 0, len(ss))
	for k := range ss {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if ss[names[i]] == ss[names[j]] {
			return names[i] < names[j]
		}
		return ss[names[i]] > ss[names[j]]
	})
	n = min(n, len(names))
	parts := make([]string, 0, n)
	for _, name := range names[:n] {
		parts = append(parts, name+":"+formatMs(ss[name]))
	}
	return strings.Join(parts, ", ")
}

// formatMs renders d in milliseconds with one decimal, dropping ".0".
func formatMs(d time.Duration) string {
	s := fmt.Sprintf("%.1f", float64(d.Microseconds())/1000)
	return strings.TrimSuffix(s, ".0") + "ms"
}

// MemoryLine describes process heap and host memory use. Host figures are
// left out when the platform does not expose them.
func MemoryLine() string {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	line := fmt.Sprintf("heap %s (%d gc)", humanize.Bytes(ms.HeapAlloc), ms.NumGC)

	if vm, err := mem.VirtualMemory(); err == nil {
		line += fmt.Sprintf(", host %s/%s (%.1f%%)", humanize.Bytes(vm.Used), humanize.Bytes(vm.Total), vm.UsedPercent)
	}
	if avg, err := load.Avg(); err == nil {
		line += fmt.Sprintf(", load %.2f", avg.Load1)
	}
	return line
}
