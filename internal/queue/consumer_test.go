package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestHandleMessageAppendsLine(t *testing.T) {
	dir := t.TempDir()
	ev := NewBookingEvent(EventRoomAssigned, 7, "Sara Ali", 3, "A-102", time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	body, _ := json.Marshal(ev)

	for i := 0; i < 2; i++ {
		if err := HandleMessage(body, dir); err != nil {
			t.Fatalf("handle: %v", err)
		}
	}

	raw, err := os.ReadFile(filepath.Join(dir, "booking.log"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	want := `[2026-03-01T09:00:00Z] room.assigned | event_id=` + ev.EventID + ` | student_id=7 | student="Sara Ali" | room_id=3 | room="A-102"`
	if lines[0] != want {
		t.Fatalf("line = %q\nwant %q", lines[0], want)
	}
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	if err := HandleMessage([]byte("{"), t.TempDir()); err == nil {
		t.Fatal("expected unmarshal error")
	}
	if err := HandleMessage([]byte(`{"student_id":1}`), t.TempDir()); err == nil {
		t.Fatal("expected missing type error")
	}
}
