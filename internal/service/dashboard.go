package service

import (
	"context"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
)

// DashboardStats is the at-a-glance summary shown on the dashboard.
type DashboardStats struct {
	TotalStudents    int                    `json:"total_students"`
	ActiveStudents   int                    `json:"active_students"`
	TotalRooms       int                    `json:"total_rooms"`
	OccupiedRooms    int                    `json:"occupied_rooms"`
	AvailableRooms   int                    `json:"available_rooms"`
	TotalCapacity    int                    `json:"total_capacity"`
	CurrentOccupancy int                    `json:"current_occupancy"`
	OccupancyRate    float64                `json:"occupancy_rate"`
	RoomsByType      map[model.RoomType]int `json:"rooms_by_type"`
	OpenComplaints   int                    `json:"open_complaints"`
	ActiveStaff      int                    `json:"active_staff"`
	ActiveVisitors   int                    `json:"active_visitors"`
	TotalRevenue     int64                  `json:"total_revenue"`
	MonthlyRevenue   int64                  `json:"monthly_revenue"`
	PendingPayments  int                    `json:"pending_payments"`
	GeneratedAt      time.Time              `json:"generated_at"`
}

// Dashboard computes the summary as of now.
func (h *Hostel) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := h.now()
	st := DashboardStats{GeneratedAt: now, RoomsByType: map[model.RoomType]int{}}

	students, err := h.Students.List(ctx)
	if err != nil {
		return st, err
	}
	st.TotalStudents = len(students)
	for _, s := range students {
		if s.IsActive {
			st.ActiveStudents++
		}
	}

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return st, err
	}
	st.TotalRooms = len(rooms)
	for _, r := range rooms {
		st.RoomsByType[r.RoomType]++
		st.TotalCapacity += r.Capacity
		st.CurrentOccupancy += r.CurrentOccupancy
		if r.CurrentOccupancy > 0 {
			st.OccupiedRooms++
		}
		if r.Available() {
			st.AvailableRooms++
		}
	}
	if st.TotalCapacity > 0 {
		st.OccupancyRate = float64(st.CurrentOccupancy) / float64(st.TotalCapacity) * 100
	}

	if st.OpenComplaints, err = h.Complaints.OpenCount(ctx); err != nil {
		return st, err
	}
	if st.ActiveStaff, err = h.Staff.ActiveCount(ctx); err != nil {
		return st, err
	}
	visitors, err := h.Visitors.ListActive(ctx)
	if err != nil {
		return st, err
	}
	st.ActiveVisitors = len(visitors)
	if st.TotalRevenue, err = h.Payments.TotalRevenue(ctx); err != nil {
		return st, err
	}
	if st.MonthlyRevenue, err = h.Payments.RevenueByMonth(ctx, int(now.Month()), now.Year()); err != nil {
		return st, err
	}
	pending, err := h.Payments.ListPending(ctx)
	if err != nil {
		return st, err
	}
	st.PendingPayments = len(pending)
	return st, nil
}

// Snapshot is a consistent-enough copy of every collection, used by the
// exporters and the full report.
type Snapshot struct {
	Students   []model.Student
	Rooms      []model.Room
	Payments   []model.Payment
	Complaints []model.Complaint
	Staff      []model.Staff
	Visitors   []model.Visitor
	Revenue    int64
	MonthRev   int64
	TakenAt    time.Time
}

func (h *Hostel) Snapshot(ctx context.Context) (Snapshot, error) {
	now := h.now()
	snap := Snapshot{TakenAt: now}
	var err error
	if snap.Students, err = h.Students.List(ctx); err != nil {
		return snap, err
	}
	if snap.Rooms, err = h.Rooms.List(ctx); err != nil {
		return snap, err
	}
	if snap.Payments, err = h.Payments.List(ctx); err != nil {
		return snap, err
	}
	if snap.Complaints, err = h.Complaints.List(ctx); err != nil {
		return snap, err
	}
	if snap.Staff, err = h.Staff.List(ctx); err != nil {
		return snap, err
	}
	if snap.Visitors, err = h.Visitors.List(ctx); err != nil {
		return snap, err
	}
	if snap.Revenue, err = h.Payments.TotalRevenue(ctx); err != nil {
		return snap, err
	}
	snap.MonthRev, err = h.Payments.RevenueByMonth(ctx, int(now.Month()), now.Year())
	return snap, err
}

// LogExport records an export in the audit trail.
func (h *Hostel) LogExport(ctx context.Context, what, target string) {
	if err := h.Audit.Log(ctx, "Export", what, ActorFrom(ctx), target); err != nil {
		logf("audit: export %s not recorded: %v", what, err)
	}
}
