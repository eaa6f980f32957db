package telemetry

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestWriterHeaderOnce(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Write(Window{Index: 0, Score: 10}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Write(Window{Index: 1, Score: 20}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, expected 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "window,end_s,state,score") {
		t.Errorf("header = %q", lines[0])
	}
	if strings.Contains(lines[2], "window") {
		t.Errorf("header repeated: %q", lines[2])
	}
}

func TestRecorderWindowsAreDeltas(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(NewWriter(&buf), time.Second)

	r.Observe(500*time.Millisecond, Snapshot{State: "Playing", Counter: Counters{Spawns: 3}})
	if r.Windows() != 0 {
		t.Fatalf("Windows() = %d before the first boundary, expected 0", r.Windows())
	}
	r.Observe(time.Second, Snapshot{State: "Playing", Counter: Counters{Spawns: 5, Kills: 1}})
	r.Observe(2500*time.Millisecond, Snapshot{State: "Playing", Counter: Counters{Spawns: 9, Kills: 4}})
	if r.Windows() != 2 {
		t.Fatalf("Windows() = %d, expected 2", r.Windows())
	}

	if err := r.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if err := r.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if r.Windows() != 3 {
		t.Errorf("Windows() after flush = %d, expected 3", r.Windows())
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, expected 4:\n%s", len(lines), buf.String())
	}
	// header, window 0 (spawns 5), window 1 (spawns 4), partial window 2 (spawns 0)
	fields := strings.Split(lines[2], ",")
	if fields[0] != "1" || fields[10] != "4" || fields[11] != "3" {
		t.Errorf("second window = %q, expected index 1 with 4 spawns and 3 kills", lines[2])
	}
	fields = strings.Split(lines[3], ",")
	if fields[1] != "2.5" || fields[10] != "0" {
		t.Errorf("partial window = %q, expected end 2.5 with 0 spawns", lines[3])
	}
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "telemetry.csv")
	w, err := Create(path)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	w.Write(Window{Index: 0})
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "window,") {
		t.Errorf("file starts with %q", string(data))
	}
}
