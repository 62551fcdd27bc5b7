package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
)

func TestComplaintLifecycle(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Sara", "R-1")
	c, err := f.h.Complaints.Create(f.ctx, model.Complaint{StudentID: st.ID, Title: " Fan broken ", Description: "Ceiling fan stopped", Category: model.CategoryElectrical})
	if err != nil {
		t.Fatal(err)
	}
	if c.Status != model.ComplaintOpen || c.Priority != model.PriorityMedium || c.Title != "Fan broken" || c.StudentName != "Sara Test" {
		t.Fatalf("created = %+v", c)
	}

	tahir, err := f.h.Staff.Add(f.ctx, model.Staff{FullName: "Tahir Abbas", Role: model.RoleElectrician, Salary: 28000})
	if err != nil {
		t.Fatal(err)
	}
	c, err = f.h.Complaints.Assign(f.ctx, c.ID, tahir.ID)
	if err != nil {
		t.Fatal(err)
	}
	if c.Status != model.ComplaintInProgress || c.AssignedStaffName != "Tahir Abbas" {
		t.Fatalf("assigned = %+v", c)
	}

	c, err = f.h.Complaints.UpdateStatus(f.ctx, c.ID, model.ComplaintResolved, "Replaced capacitor")
	if err != nil {
		t.Fatal(err)
	}
	if c.ResolvedAt == nil || c.ResolutionNotes != "Replaced capacitor" {
		t.Fatalf("resolved = %+v", c)
	}
	if n, _ := f.h.Complaints.OpenCount(f.ctx); n != 0 {
		t.Fatalf("open count = %d", n)
	}

	c, err = f.h.Complaints.UpdateStatus(f.ctx, c.ID, model.ComplaintOpen, "")
	if err != nil {
		t.Fatal(err)
	}
	if c.ResolvedAt != nil || c.ResolutionNotes != "Replaced capacitor" {
		t.Fatalf("reopened = %+v", c)
	}
	if _, err := f.h.Complaints.UpdateStatus(f.ctx, c.ID, "Lost", ""); !errors.Is(err, ErrValidation) {
		t.Fatalf("bad status err = %v", err)
	}

	if err := f.h.Staff.Deactivate(f.ctx, tahir.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.h.Complaints.Assign(f.ctx, c.ID, tahir.ID); !errors.Is(err, ErrStaffInactive) {
		t.Fatalf("assign inactive err = %v", err)
	}
	if _, err := f.h.Complaints.Create(f.ctx, model.Complaint{StudentID: 99, Title: "x", Description: "y"}); !errors.Is(err, ErrStudentNotFound) {
		t.Fatalf("unknown student err = %v", err)
	}
}

func TestVisitorCheckOutOnce(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Usman", "R-7")
	v, err := f.h.Visitors.CheckIn(f.ctx, model.Visitor{VisitorName: "Tariq", StudentID: st.ID, Relationship: "Father"})
	if err != nil {
		t.Fatal(err)
	}
	if v.PassNumber != "VP-20260310-5001" || v.Status != model.VisitorCheckedIn {
		t.Fatalf("checked in = %+v", v)
	}
	if active, _ := f.h.Visitors.ListActive(f.ctx); len(active) != 1 {
		t.Fatalf("active = %d", len(active))
	}
	if v, err = f.h.Visitors.CheckOut(f.ctx, v.ID); err != nil || v.CheckOutTime == nil {
		t.Fatalf("check out: %+v %v", v, err)
	}
	_, err = f.h.Visitors.CheckOut(f.ctx, v.ID)
	if !errors.Is(err, ErrAlreadyCheckedOut) || !errors.Is(err, ErrInvalidState) {
		t.Fatalf("second check out err = %v", err)
	}
	if today, _ := f.h.Visitors.ListByDate(f.ctx, testNow); len(today) != 1 {
		t.Fatalf("by date = %d", len(today))
	}
}

func TestAttendanceStatsAndPercentage(t *testing.T) {
	f := newFixture(t)
	st := f.student(t, "Ali", "R-1")
	other := f.student(t, "Maryam", "R-2")
	yesterday := testNow.AddDate(0, 0, -1)
	marks := []model.Attendance{
		{StudentID: st.ID, Status: model.AttendancePresent},
		{StudentID: st.ID, Status: model.AttendanceAbsent, Date: yesterday},
		{StudentID: st.ID, Status: model.AttendancePresent, Date: yesterday.AddDate(0, 0, -1)},
		{StudentID: st.ID, Status: model.AttendanceLate, Date: yesterday.AddDate(0, 0, -2)},
		{StudentID: other.ID, Status: model.AttendanceLeave},
	}
	for _, m := range marks {
		if _, err := f.h.Attendance.Mark(f.ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	pct, err := f.h.Attendance.Percentage(f.ctx, st.ID)
	if err != nil || pct != 50 {
		t.Fatalf("percentage = %v, %v", pct, err)
	}
	stats, _ := f.h.Attendance.StatsForDate(f.ctx, testNow)
	if stats.Present != 1 || stats.Leave != 1 || stats.Absent != 0 {
		t.Fatalf("stats = %+v", stats)
	}
	if !stats.Date.Equal(model.Day(testNow)) {
		t.Fatalf("stats date = %v", stats.Date)
	}
	if pct, _ := f.h.Attendance.Percentage(f.ctx, 404); pct != 0 {
		t.Fatalf("no marks percentage = %v", pct)
	}
}

func TestActiveNoticesOrdering(t *testing.T) {
	clock := testNow
	h := New(MemoryStores(), Options{Now: func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}})
	ctx := context.Background()
	past := testNow.Add(-time.Hour)
	posts := []model.Notice{
		{Title: "Old medium", Content: "a", Priority: model.NoticeMedium},
		{Title: "Urgent", Content: "b", Priority: model.NoticeUrgent},
		{Title: "New medium", Content: "c", Priority: model.NoticeMedium},
		{Title: "Expired", Content: "d", Priority: model.NoticeUrgent, ExpiresAt: &past},
		{Title: "Low", Content: "e", Priority: model.NoticeLow},
	}
	for _, n := range posts {
		if _, err := h.Notices.Post(ctx, n); err != nil {
			t.Fatal(err)
		}
	}
	got, err := h.Notices.ListActive(ctx, testNow.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	var titles []string
	for _, n := range got {
		titles = append(titles, n.Title)
	}
	if want := "Urgent,New medium,Old medium,Low"; strings.Join(titles, ",") != want {
		t.Fatalf("order = %v", titles)
	}
	if got[0].PostedBy != "Admin" {
		t.Fatalf("posted by = %q", got[0].PostedBy)
	}
}

func TestMessWeekOrder(t *testing.T) {
	f := newFixture(t)
	items := []model.MessMenu{
		{Day: time.Monday, MealType: model.MealDinner, Items: "Daal"},
		{Day: time.Monday, MealType: model.MealBreakfast, Items: "Paratha"},
		{Day: time.Sunday, MealType: model.MealLunch, Items: "Biryani"},
	}
	for _, m := range items {
		if _, err := f.h.Mess.Add(f.ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	week, _ := f.h.Mess.Week(f.ctx)
	if len(week) != 3 || week[0].Items != "Biryani" || week[1].Items != "Paratha" || week[2].Items != "Daal" {
		t.Fatalf("week = %+v", week)
	}
	monday, _ := f.h.Mess.ByDay(f.ctx, time.Monday)
	if len(monday) != 2 || monday[0].MealType != model.MealBreakfast {
		t.Fatalf("monday = %+v", monday)
	}
	if err := f.h.Mess.Delete(f.ctx, week[0].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := f.h.Mess.Get(f.ctx, week[0].ID); !errors.Is(err, ErrMenuNotFound) {
		t.Fatalf("deleted menu err = %v", err)
	}
}

func TestStaffPayroll(t *testing.T) {
	f := newFixture(t)
	for _, m := range []model.Staff{
		{FullName: "Muhammad Aslam", Role: model.RoleWarden, Salary: 45000},
		{FullName: "Rashid Mehmood", Role: model.RoleGuard, Salary: 25000, Shift: "Night"},
	} {
		if _, err := f.h.Staff.Add(f.ctx, m); err != nil {
			t.Fatal(err)
		}
	}
	all, _ := f.h.Staff.List(f.ctx)
	if all[0].Shift != "Day" || all[1].Shift != "Night" {
		t.Fatalf("shifts = %q %q", all[0].Shift, all[1].Shift)
	}
	if err := f.h.Staff.Deactivate(f.ctx, all[1].ID); err != nil {
		t.Fatal(err)
	}
	if total, _ := f.h.Staff.MonthlyPayroll(f.ctx); total != 45000 {
		t.Fatalf("payroll = %d", total)
	}
	if guards, _ := f.h.Staff.ListByRole(f.ctx, model.RoleGuard); len(guards) != 0 {
		t.Fatalf("guards = %d", len(guards))
	}
}
