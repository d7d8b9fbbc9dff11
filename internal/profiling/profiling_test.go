package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAndTopN(t *testing.T) {
	ResetFrame()
	frameTotals["slow"] = 5 * time.Millisecond
	frameTotals["fast"] = 1500 * time.Microsecond
	frameTotals["mid"] = 3 * time.Millisecond

	Track("fast")()
	if Calls("fast") != 1 {
		t.Fatalf("calls: got %d", Calls("fast"))
	}

	got := TopN(2)
	if !strings.HasPrefix(got, "slow:5ms, mid:3ms") {
		t.Fatalf("got %q", got)
	}

	ResetFrame()
	if len(Snapshot()) != 0 || TopN(3) != "" {
		t.Fatal("reset should clear totals")
	}
}

func TestFormatMs(t *testing.T) {
	cases := map[time.Duration]string{
		2 * time.Millisecond:    "2ms",
		4200 * time.Microsecond: "4.2ms",
		0:                       "0ms",
	}
	for d, want := range cases {
		if got := formatMs(d); got != want {
			t.Errorf("%v: got %q, want %q", d, got, want)
		}
	}
}

func TestMemoryLine(t *testing.T) {
	if line := MemoryLine(); !strings.HasPrefix(line, "heap ") {
		t.Fatalf("got %q", line)
	}
}
