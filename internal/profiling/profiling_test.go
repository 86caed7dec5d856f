package profiling

import (
	"strings"
	"testing"
	"time"
)

func TestTrackAndCount(t *testing.T) {
	ResetFrame()
	stop := Track("meshing.test")
	time.Sleep(time.Millisecond)
	stop()
	Track("world.test")()
	Count("faces", 3)
	Count("faces", 4)

	if got := Counter("faces"); got != 7 {
		t.Fatalf("Counter = %d, want 7", got)
	}
	if SumWithPrefix("meshing.") < time.Millisecond {
		t.Fatalf("SumWithPrefix(meshing.) = %v", SumWithPrefix("meshing."))
	}
	if top := TopN(1); !strings.HasPrefix(top, "meshing.test:") {
		t.Fatalf("TopN(1) = %q", top)
	}

	ResetFrame()
	if len(Snapshot()) != 0 || Counter("faces") != 0 {
		t.Fatal("ResetFrame left data behind")
	}
}
