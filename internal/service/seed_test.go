package service

import (
	"testing"

	"github.com/iliyamo/hostel-management/internal/model"
)

func TestSeedDemoPopulatesOnce(t *testing.T) {
	f := newFixture(t)
	if err := f.h.SeedDemo(f.ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	students, _ := f.h.Students.List(f.ctx)
	rooms, _ := f.h.Rooms.List(f.ctx)
	staff, _ := f.h.Staff.List(f.ctx)
	menu, _ := f.h.Mess.Week(f.ctx)
	if len(students) != 10 || len(rooms) != 15 || len(staff) != 5 || len(menu) != 21 {
		t.Fatalf("seeded %d students, %d rooms, %d staff, %d menu items", len(students), len(rooms), len(staff), len(menu))
	}
	for _, st := range students {
		if !st.HasRoom() {
			t.Fatalf("%s has no room", st.FullName())
		}
	}

	if err := f.h.SeedDemo(f.ctx); err != nil {
		t.Fatal(err)
	}
	if again, _ := f.h.Students.List(f.ctx); len(again) != 10 {
		t.Fatalf("reseeded: %d students", len(again))
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	if err := f.h.SeedDemo(f.ctx); err != nil {
		t.Fatal(err)
	}
	stats, err := f.h.Dashboard(f.ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalStudents != 10 || stats.ActiveStudents != 10 {
		t.Fatalf("students = %d/%d", stats.ActiveStudents, stats.TotalStudents)
	}
	// 15 rooms with 41 beds; the first ten rooms take one student each.
	if stats.TotalRooms != 15 || stats.TotalCapacity != 41 || stats.CurrentOccupancy != 10 || stats.OccupiedRooms != 10 {
		t.Fatalf("rooms = %+v", stats)
	}
	// A-201 and B-101 are singles and now full.
	if stats.AvailableRooms != 13 {
		t.Fatalf("available = %d", stats.AvailableRooms)
	}
	if stats.RoomsByType[model.RoomQuad] != 4 {
		t.Fatalf("by type = %v", stats.RoomsByType)
	}
	if stats.TotalRevenue != 40000 || stats.MonthlyRevenue != 40000 || stats.PendingPayments != 0 {
		t.Fatalf("revenue = %d/%d", stats.MonthlyRevenue, stats.TotalRevenue)
	}
	if stats.ActiveStaff != 5 || stats.OpenComplaints != 0 {
		t.Fatalf("staff=%d complaints=%d", stats.ActiveStaff, stats.OpenComplaints)
	}
}
