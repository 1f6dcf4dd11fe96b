package native

import (
	"runtime"
	"testing"

	"github.com/tinyrange/minifb/internal/keys"
)

func TestLibraryKeyTable(t *testing.T) {
	table := (&Library{}).KeyTable()

	if runtime.GOOS == "darwin" {
		// kVK_Escape
		if got := table.Translate(0x35); got != keys.KeyEscape {
			t.Fatalf("Translate(0x35) = %v, want Escape", got)
		}
		return
	}

	if table != nil {
		t.Fatalf("KeyTable() on %s = %d entries, want nil", runtime.GOOS, len(table))
	}
	for _, raw := range []int32{0, 0x1b, 0x35, 'A', 255} {
		if got := table.Translate(raw); got != keys.KeyUnknown {
			t.Errorf("Translate(%d) = %v, want Unknown", raw, got)
		}
	}
}
