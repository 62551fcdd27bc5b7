package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/queue"
	"github.com/iliyamo/hostel-management/internal/repository"
)

var testNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

type fixture struct {
	h      *Hostel
	events *queue.MemoryPublisher
	ctx    context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureWith(t, MemoryStores())
}

func newFixtureWith(t *testing.T, st Stores) *fixture {
	t.Helper()
	pub := &queue.MemoryPublisher{}
	h := New(st, Options{Events: pub, BcryptCost: 4, Now: func() time.Time { return testNow }})
	return &fixture{h: h, events: pub, ctx: WithActor(context.Background(), "tester")}
}

func (f *fixture) room(t *testing.T, number string, capacity int) model.Room {
	t.Helper()
	r, err := f.h.Rooms.Create(f.ctx, model.Room{RoomNumber: number, Capacity: capacity, RoomType: model.RoomDouble, MonthlyRent: 8000})
	if err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return r
}

func (f *fixture) student(t *testing.T, first, reg string) model.Student {
	t.Helper()
	st, err := f.h.Students.Register(f.ctx, model.Student{FirstName: first, LastName: "Test", RegistrationNumber: reg, Department: "CS"})
	if err != nil {
		t.Fatalf("register %s: %v", reg, err)
	}
	return st
}

func (f *fixture) occupancy(t *testing.T, roomID int) int {
	t.Helper()
	r, err := f.h.Rooms.Get(f.ctx, roomID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	return r.CurrentOccupancy
}

type failingBackend[T any] struct{ fail bool }

func (f *failingBackend[T]) Load(context.Context) ([]T, error) { return nil, nil }
func (f *failingBackend[T]) Name() string                      { return "failing" }
func (f *failingBackend[T]) Save(context.Context, []T) error {
	if f.fail {
		return errors.New("disk full")
	}
	return nil
}

func TestAuditCarriesActor(t *testing.T) {
	f := newFixture(t)
	f.room(t, "A-101", 2)
	logs, err := f.h.Audit.ByModule(f.ctx, "room")
	if err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 || logs[0].PerformedBy != "tester" || logs[0].Action != "Create" {
		t.Fatalf("audit = %+v", logs)
	}
	if !logs[0].Timestamp.Equal(testNow) {
		t.Fatalf("timestamp = %v", logs[0].Timestamp)
	}
}

func TestMissingRecordsMapToNotFound(t *testing.T) {
	f := newFixture(t)
	if _, err := f.h.Students.Get(f.ctx, 42); !errors.Is(err, ErrNotFound) || !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("student err = %v", err)
	}
	if err := f.h.Rooms.Delete(f.ctx, 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("room err = %v", err)
	}
	if _, err := f.h.Payments.GenerateReceipt(f.ctx, 1); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("receipt err = %v", err)
	}
}

func TestValidationErrors(t *testing.T) {
	f := newFixture(t)
	_, err := f.h.Rooms.Create(f.ctx, model.Room{RoomNumber: "", Capacity: 0, RoomType: "Penthouse"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v", err)
	}
	_, err = f.h.Students.Register(f.ctx, model.Student{FirstName: "A", LastName: "B", RegistrationNumber: "R1", Email: "not-an-email"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("email err = %v", err)
	}
}

func TestAssignRoomIsAtomicOnPersistFailure(t *testing.T) {
	ctx := context.Background()
	st := MemoryStores()
	fb := &failingBackend[model.Booking]{}
	bookings, err := repository.Open[model.Booking](ctx, fb)
	if err != nil {
		t.Fatal(err)
	}
	st.Bookings = bookings
	f := newFixtureWith(t, st)
	room := f.room(t, "A-101", 2)
	stu := f.student(t, "Ali", "R-1")

	fb.fail = true
	if err := f.h.Students.AssignRoom(f.ctx, stu.ID, room.ID); err == nil {
		t.Fatal("expected assignment to fail")
	}
	if got := f.occupancy(t, room.ID); got != 0 {
		t.Fatalf("occupancy after failed assignment = %d", got)
	}
	after, _ := f.h.Students.Get(f.ctx, stu.ID)
	if after.HasRoom() {
		t.Fatalf("student kept room %s", after.RoomNumber)
	}
	if len(f.events.Events()) != 0 {
		t.Fatal("event published for failed assignment")
	}
}
