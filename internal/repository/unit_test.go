package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iliyamo/hostel-management/internal/model"
)

type failingBackend[T any] struct{ fail bool }

func (f *failingBackend[T]) Load(context.Context) ([]T, error) { return nil, nil }
func (f *failingBackend[T]) Name() string                      { return "failing" }
func (f *failingBackend[T]) Save(context.Context, []T) error {
	if f.fail {
		return errors.New("disk full")
	}
	return nil
}

func TestUnitCommitFailureRestoresAll(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	rooms := openRooms(t, dir, true)
	room, _ := rooms.Add(ctx, model.Room{RoomNumber: "101", Capacity: 2})
	rooms.Persist(ctx)

	fb := &failingBackend[model.Student]{}
	students, _ := Open[model.Student](ctx, fb)
	st, _ := students.Add(ctx, model.Student{FirstName: "Ali"})

	fb.fail = true
	u := Begin(rooms, students)
	room.CurrentOccupancy = 1
	rooms.Update(ctx, room)
	st.RoomNumber = "101"
	students.Update(ctx, st)

	err := u.Commit(ctx)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("commit err = %v", err)
	}
	r, _ := rooms.Get(ctx, room.ID)
	s, _ := students.Get(ctx, st.ID)
	if r.CurrentOccupancy != 0 || s.RoomNumber != "" {
		t.Fatalf("state not restored: room=%+v student=%+v", r, s)
	}

	reloaded := openRooms(t, dir, true)
	rr, _ := reloaded.Get(ctx, room.ID)
	if rr.CurrentOccupancy != 0 {
		t.Fatalf("compensation write missing, occupancy on disk = %d", rr.CurrentOccupancy)
	}
}

// recordingBackend refuses to save on a finished context and remembers
// the last collection it saved.
type recordingBackend[T any] struct{ saved []T }

func (r *recordingBackend[T]) Load(context.Context) ([]T, error) { return nil, nil }
func (r *recordingBackend[T]) Name() string                      { return "recording" }
func (r *recordingBackend[T]) Save(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.saved = append([]T(nil), items...)
	return nil
}

// expiringBackend stands in for a write that runs past the caller deadline.
type expiringBackend[T any] struct{ cancel context.CancelFunc }

func (e *expiringBackend[T]) Load(context.Context) ([]T, error) { return nil, nil }
func (e *expiringBackend[T]) Name() string                      { return "expiring" }
func (e *expiringBackend[T]) Save(ctx context.Context, _ []T) error {
	e.cancel()
	return ctx.Err()
}

func TestUnitCompensatesAfterDeadline(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rb := &recordingBackend[model.Room]{}
	rooms, _ := Open[model.Room](ctx, rb)
	room, _ := rooms.Add(ctx, model.Room{RoomNumber: "101", Capacity: 2})
	if err := rooms.Persist(ctx); err != nil {
		t.Fatal(err)
	}
	students, _ := Open[model.Student](ctx, &expiringBackend[model.Student]{cancel: cancel})

	u := Begin(rooms, students)
	room.CurrentOccupancy = 1
	rooms.Update(ctx, room)
	students.Add(ctx, model.Student{FirstName: "Ali"})

	if err := u.Commit(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("commit err = %v, want context.Canceled", err)
	}
	if len(rb.saved) != 1 || rb.saved[0].CurrentOccupancy != 0 {
		t.Fatalf("rooms backend after compensation = %+v", rb.saved)
	}
}

func TestUnitRollback(t *testing.T) {
	ctx := context.Background()
	rooms := NewMemory[model.Room]()
	rooms.Add(ctx, model.Room{RoomNumber: "101"})

	u := Begin(rooms)
	rooms.Add(ctx, model.Room{RoomNumber: "102"})
	u.Rollback()
	if rooms.Len() != 1 {
		t.Fatalf("len = %d after rollback", rooms.Len())
	}
	if err := u.Commit(ctx); err == nil {
		t.Fatal("commit after rollback should fail")
	}
}
