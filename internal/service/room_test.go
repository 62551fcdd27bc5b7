package service

import (
	"errors"
	"testing"

	"github.com/iliyamo/hostel-management/internal/model"
)

func TestRoomDeleteRequiresEmptyRoom(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "A-101", 2)
	st := f.student(t, "Ali", "R-1")
	if err := f.h.Students.AssignRoom(f.ctx, st.ID, room.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.h.Rooms.Delete(f.ctx, room.ID); !errors.Is(err, ErrRoomOccupied) {
		t.Fatalf("delete occupied err = %v", err)
	}
	if err := f.h.Students.UnassignRoom(f.ctx, st.ID); err != nil {
		t.Fatal(err)
	}
	if err := f.h.Rooms.Delete(f.ctx, room.ID); err != nil {
		t.Fatalf("delete empty: %v", err)
	}
	if _, err := f.h.Rooms.Get(f.ctx, room.ID); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("get deleted err = %v", err)
	}
}

func TestRoomUpdateKeepsOccupancyAndRenamesOccupants(t *testing.T) {
	f := newFixture(t)
	room := f.room(t, "A-101", 2)
	f.room(t, "A-102", 2)
	a := f.student(t, "Ali", "R-1")
	b := f.student(t, "Sara", "R-2")
	for _, id := range []int{a.ID, b.ID} {
		if err := f.h.Students.AssignRoom(f.ctx, id, room.ID); err != nil {
			t.Fatal(err)
		}
	}

	shrink := room
	shrink.Capacity = 1
	if _, err := f.h.Rooms.Update(f.ctx, shrink); !errors.Is(err, ErrCapacityBelowOccupancy) {
		t.Fatalf("shrink err = %v", err)
	}

	dup := room
	dup.RoomNumber = "a-102"
	if _, err := f.h.Rooms.Update(f.ctx, dup); !errors.Is(err, ErrDuplicateRoomNumber) {
		t.Fatalf("duplicate err = %v", err)
	}

	renamed := room
	renamed.RoomNumber = "A-111"
	renamed.CurrentOccupancy = 0
	got, err := f.h.Rooms.Update(f.ctx, renamed)
	if err != nil {
		t.Fatal(err)
	}
	if got.CurrentOccupancy != 2 {
		t.Fatalf("occupancy overwritten: %d", got.CurrentOccupancy)
	}
	st, _ := f.h.Students.Get(f.ctx, a.ID)
	if st.RoomNumber != "A-111" {
		t.Fatalf("occupant room number = %q", st.RoomNumber)
	}
}

func TestRoomAggregates(t *testing.T) {
	f := newFixture(t)
	a := f.room(t, "A-101", 1)
	f.room(t, "A-102", 3)
	inactive := f.room(t, "A-103", 4)
	inactive.IsActive = false
	if _, err := f.h.Rooms.Update(f.ctx, inactive); err != nil {
		t.Fatal(err)
	}
	st := f.student(t, "Ali", "R-1")
	if err := f.h.Students.AssignRoom(f.ctx, st.ID, a.ID); err != nil {
		t.Fatal(err)
	}

	if capTotal, _ := f.h.Rooms.TotalCapacity(f.ctx); capTotal != 4 {
		t.Fatalf("capacity = %d", capTotal)
	}
	if occ, _ := f.h.Rooms.TotalOccupancy(f.ctx); occ != 1 {
		t.Fatalf("occupancy = %d", occ)
	}
	avail, _ := f.h.Rooms.ListAvailable(f.ctx)
	if len(avail) != 1 || avail[0].RoomNumber != "A-102" {
		t.Fatalf("available = %+v", avail)
	}
	if full, _ := f.h.Rooms.ListFull(f.ctx); len(full) != 1 {
		t.Fatalf("full = %d", len(full))
	}
	if ok, _ := f.h.Rooms.HasCapacity(f.ctx, a.ID); ok {
		t.Fatal("full room reports capacity")
	}
	if byType, _ := f.h.Rooms.CountByType(f.ctx); byType[model.RoomDouble] != 3 {
		t.Fatalf("by type = %v", byType)
	}
	if err := f.h.Students.AssignRoom(f.ctx, st.ID, inactive.ID); !errors.Is(err, ErrRoomInactive) {
		t.Fatalf("inactive room err = %v", err)
	}
}
