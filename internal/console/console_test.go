package console

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iliyamo/hostel-management/internal/service"
)

func newHostel(t *testing.T) *service.Hostel {
	t.Helper()
	h := service.New(service.MemoryStores(), service.Options{BcryptCost: 4})
	if err := h.EnsureDefaultAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatal(err)
	}
	return h
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestRunRejectsAfterThreeFailedLogins(t *testing.T) {
	h := newHostel(t)
	var out bytes.Buffer
	in := script("admin", "wrong", "admin", "nope", "root", "admin123")

	err := New(h, in, &out, t.TempDir()).Run(context.Background())
	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("Run = %v, want ErrLoginFailed", err)
	}
	if got := strings.Count(out.String(), "Invalid username or password!"); got != 3 {
		t.Fatalf("failed login messages = %d, want 3", got)
	}
}

func TestRunSession(t *testing.T) {
	h := newHostel(t)
	dir := t.TempDir()
	var out bytes.Buffer
	in := script(
		"admin", "admin123",
		"42",
		// register a student
		"2", "1", "Ali", "Khan", "REG-1", "", "", "", "", "", "", "CS", "0",
		// add a room
		"3", "1", "101", "1", "2", "2", "5000", "n", "y", "0",
		// assign, then cancel a details lookup
		"2", "6", "1", "1", "4", "0", "0",
		"11", "1", "0",
		// exit declined, then confirmed
		"0", "n",
		"0", "y",
	)

	if err := New(h, in, &out, dir).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	text := out.String()
	for _, want := range []string{
		"Welcome back",
		"Invalid option!",
		"Student registered with ID 1.",
		"Room 101 created",
		"Room assigned.",
		"1 records exported to",
		"GOODBYE!",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output lacks %q", want)
		}
	}

	ctx := context.Background()
	st, err := h.Students.Get(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if st.RoomNumber != "101" || st.Department != "CS" {
		t.Fatalf("student = %+v", st)
	}

	files, err := filepath.Glob(filepath.Join(dir, "students_*.csv"))
	if err != nil || len(files) != 1 {
		t.Fatalf("exported files = %v (%v)", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "REG-1") {
		t.Fatalf("csv lacks the student:\n%s", data)
	}

	logs, err := h.Audit.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[string]bool{}
	for _, l := range logs {
		seen[l.Module+"/"+l.Action] = true
		if l.Module != "Auth" && l.PerformedBy != "admin" {
			t.Errorf("%s/%s performed by %q", l.Module, l.Action, l.PerformedBy)
		}
	}
	for _, want := range []string{"Student/Register", "Room/Create", "Room/Assign", "Export/Students CSV", "Auth/Logout"} {
		if !seen[want] {
			t.Errorf("audit lacks %s, have %v", want, seen)
		}
	}
}

func TestRunEndsOnClosedInput(t *testing.T) {
	h := newHostel(t)
	var out bytes.Buffer
	if err := New(h, script("admin", "admin123", "2"), &out, t.TempDir()).Run(context.Background()); err != nil {
		t.Fatalf("Run = %v, want nil on end of input", err)
	}
}

func TestServiceErrorsAreReported(t *testing.T) {
	h := newHostel(t)
	var out bytes.Buffer
	in := script("admin", "admin123", "2", "6", "7", "1", "0", "0", "y")
	if err := New(h, in, &out, t.TempDir()).Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "[ERROR]") {
		t.Fatalf("missing error line:\n%s", out.String())
	}
}

func TestChoose(t *testing.T) {
	var out bytes.Buffer
	c := New(nil, script("2", "9"), &out, "")
	got, err := choose(c, "Day", weekdays)
	if err != nil || got != "Monday" {
		t.Fatalf("choose = %q, %v", got, err)
	}
	if _, err := choose(c, "Day", weekdays); !errors.Is(err, service.ErrValidation) {
		t.Fatalf("out of range = %v, want ErrValidation", err)
	}
}

func TestBar(t *testing.T) {
	if got := bar(50); strings.Count(got, "#") != 15 {
		t.Fatalf("bar(50) = %s", got)
	}
	if got := bar(250); strings.Count(got, "#") != 30 {
		t.Fatalf("bar(250) = %s", got)
	}
}
