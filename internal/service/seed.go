package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
)

// EnsureDefaultAdmin creates the SuperAdmin account when no active account
// exists yet.
func (h *Hostel) EnsureDefaultAdmin(ctx context.Context, username, password string) error {
	created, err := h.Admins.EnsureDefault(ctx, username, password)
	if err != nil {
		return fmt.Errorf("default admin: %w", err)
	}
	if created {
		logf("seed: default admin %q created; change its password after first login", username)
	}
	return nil
}

// Seeded reports whether any student exists.
func (h *Hostel) Seeded(ctx context.Context) (bool, error) {
	all, err := h.Students.List(ctx)
	return len(all) > 0, err
}

type seedRoom struct {
	number   string
	floor    int
	capacity int
	kind     model.RoomType
	rent     int64
	ac, bath bool
}

var demoRooms = []seedRoom{
	{"A-101", 1, 2, model.RoomDouble, 8000, true, false},
	{"A-102", 1, 2, model.RoomDouble, 8000, true, false},
	{"A-103", 1, 4, model.RoomQuad, 5000, false, false},
	{"A-201", 2, 1, model.RoomSingle, 12000, true, true},
	{"A-202", 2, 2, model.RoomDouble, 8000, true, false},
	{"A-203", 2, 4, model.RoomQuad, 5000, false, false},
	{"B-101", 1, 1, model.RoomSingle, 15000, true, true},
	{"B-102", 1, 2, model.RoomDouble, 10000, true, true},
	{"B-103", 1, 4, model.RoomQuad, 6000, true, false},
	{"B-201", 2, 3, model.RoomTriple, 7000, true, false},
	{"B-202", 2, 2, model.RoomDouble, 9000, true, true},
	{"B-203", 2, 4, model.RoomQuad, 5500, false, false},
	{"C-101", 1, 1, model.RoomSingle, 14000, true, true},
	{"C-102", 1, 3, model.RoomTriple, 7500, true, false},
	{"C-103", 1, 6, model.RoomDormitory, 3500, false, false},
}

var demoStudents = [][7]string{
	// first, last, registration, CNIC, department, phone, email
	{"Ahmed", "Khan", "FA22-BSE-001", "35202-1234567-1", "CS", "0300-1234567", "ahmed@uni.edu"},
	{"Sara", "Ali", "FA22-BSE-002", "35202-2345678-2", "CS", "0301-2345678", "sara@uni.edu"},
	{"Hassan", "Raza", "FA22-BSE-003", "35202-3456789-3", "SE", "0302-3456789", "hassan@uni.edu"},
	{"Fatima", "Noor", "FA22-BSE-004", "35202-4567890-4", "SE", "0303-4567890", "fatima@uni.edu"},
	{"Bilal", "Ahmad", "FA23-BCS-001", "35202-5678901-5", "CS", "0304-5678901", "bilal@uni.edu"},
	{"Ayesha", "Malik", "FA23-BCS-002", "35202-6789012-6", "EE", "0305-6789012", "ayesha@uni.edu"},
	{"Usman", "Tariq", "FA23-BCS-003", "35202-7890123-7", "EE", "0306-7890123", "usman@uni.edu"},
	{"Zainab", "Shah", "FA22-BSE-005", "35202-8901234-8", "CS", "0307-8901234", "zainab@uni.edu"},
	{"Ali", "Hussain", "FA23-BCS-004", "35202-9012345-9", "ME", "0308-9012345", "ali@uni.edu"},
	{"Maryam", "Iqbal", "FA23-BCS-005", "35202-0123456-0", "ME", "0309-0123456", "maryam@uni.edu"},
}

var demoMenu = map[time.Weekday][3]string{
	time.Monday:    {"Paratha, Omelette, Tea", "Chicken Karahi, Rice, Raita", "Daal Makhni, Naan, Salad"},
	time.Tuesday:   {"Halwa Puri, Channay", "Biryani, Raita, Salad", "Mutton Qorma, Roti, Kheer"},
	time.Wednesday: {"Egg Sandwich, Juice", "Chana Pulao, Achaar", "Palak Paneer, Naan, Lassi"},
	time.Thursday:  {"Nihari, Naan, Tea", "Chicken Handi, Rice, Salad", "Mix Sabzi, Roti, Fruit"},
	time.Friday:    {"Paratha, Chai, Cereal", "Beef Pulao, Raita, Salad", "Chicken Tikka, Naan, Gulab Jamun"},
	time.Saturday:  {"French Toast, Milk", "Aloo Gosht, Roti, Chutney", "Daal Chawal, Papad, Pickle"},
	time.Sunday:    {"Halwa Puri, Cholay", "Special Biryani, Cold Drink", "BBQ Platter, Naan, Ice Cream"},
}

// SeedDemo fills an empty hostel with demonstration data: rooms, students
// with room assignments, staff, fee structures, a weekly menu, notices
// and a few payments. It does nothing when students already exist.
func (h *Hostel) SeedDemo(ctx context.Context) error {
	seeded, err := h.Seeded(ctx)
	if err != nil || seeded {
		return err
	}

	rooms := make([]model.Room, 0, len(demoRooms))
	for _, r := range demoRooms {
		room, err := h.Rooms.Create(ctx, model.Room{
			RoomNumber: r.number, Floor: r.floor, Capacity: r.capacity, RoomType: r.kind,
			MonthlyRent: r.rent, HasAC: r.ac, HasAttachedBath: r.bath,
		})
		if err != nil {
			return fmt.Errorf("seed room %s: %w", r.number, err)
		}
		rooms = append(rooms, room)
	}

	for i, d := range demoStudents {
		st, err := h.Students.Register(ctx, model.Student{
			FirstName: d[0], LastName: d[1], RegistrationNumber: d[2], CNIC: d[3],
			Department: d[4], Phone: d[5], Email: d[6], Address: "Lahore, Pakistan",
			GuardianName: d[0] + "'s Father", GuardianPhone: "0300-0000000",
		})
		if err != nil {
			return fmt.Errorf("seed student %s: %w", d[2], err)
		}
		if i < len(rooms) {
			if err := h.Students.AssignRoom(ctx, st.ID, rooms[i].ID); err != nil {
				return fmt.Errorf("seed assignment %s: %w", d[2], err)
			}
		}
	}

	staff := []struct {
		name   string
		role   model.StaffRole
		salary int64
		shift  string
	}{
		{"Muhammad Aslam", model.RoleWarden, 45000, "Day"},
		{"Rashid Mehmood", model.RoleGuard, 25000, "Night"},
		{"Nasreen Bibi", model.RoleCook, 30000, "Day"},
		{"Tahir Abbas", model.RoleElectrician, 28000, "Rotating"},
		{"Shabana Kousar", model.RoleCleaner, 22000, "Day"},
	}
	for _, m := range staff {
		first := strings.ToLower(strings.Fields(m.name)[0])
		if _, err := h.Staff.Add(ctx, model.Staff{
			FullName: m.name, Role: m.role, Salary: m.salary, Shift: m.shift,
			Phone: "0300-0000000", Email: first + "@hostel.pk", CNIC: "35202-0000000-0",
		}); err != nil {
			return fmt.Errorf("seed staff %s: %w", m.name, err)
		}
	}

	fees := []model.FeeStructure{
		{RoomType: model.RoomSingle, MonthlyRent: 12000, MessFee: 8000, UtilityCharges: 2000, SecurityDeposit: 10000, LaundryFee: 1000, Description: "Single Room (AC + Attached Bath)"},
		{RoomType: model.RoomDouble, MonthlyRent: 8000, MessFee: 8000, UtilityCharges: 1500, SecurityDeposit: 8000, LaundryFee: 1000, Description: "Double Sharing Room (AC)"},
		{RoomType: model.RoomQuad, MonthlyRent: 5000, MessFee: 8000, UtilityCharges: 1000, SecurityDeposit: 5000, LaundryFee: 500, Description: "Quad Sharing Room (Non-AC)"},
	}
	for _, f := range fees {
		if _, err := h.Fees.Create(ctx, f); err != nil {
			return fmt.Errorf("seed fee %s: %w", f.RoomType, err)
		}
	}

	for day := time.Sunday; day <= time.Saturday; day++ {
		for i, items := range demoMenu[day] {
			if _, err := h.Mess.Add(ctx, model.MessMenu{Day: day, MealType: model.MealTypes[i], Items: items}); err != nil {
				return fmt.Errorf("seed menu %s: %w", day, err)
			}
		}
	}

	notices := []model.Notice{
		{Title: "Welcome to Hostel!", Content: "All new students must complete registration and collect room keys from Warden's office.", PostedBy: "System Administrator", Priority: model.NoticeHigh},
		{Title: "Mess Timing Update", Content: "Breakfast: 7:00-9:00 AM | Lunch: 12:30-2:30 PM | Dinner: 7:30-9:30 PM", PostedBy: "System Administrator", Priority: model.NoticeMedium},
	}
	for _, n := range notices {
		if _, err := h.Notices.Post(ctx, n); err != nil {
			return fmt.Errorf("seed notice: %w", err)
		}
	}

	now := h.now()
	active, err := h.Students.ListActive(ctx)
	if err != nil {
		return err
	}
	for i, st := range active {
		if i == 5 {
			break
		}
		if _, err := h.Payments.Record(ctx, model.Payment{
			StudentID: st.ID, Amount: 8000, Month: int(now.Month()), Year: now.Year(),
			Method: model.MethodCash, Status: model.PaymentPaid,
		}); err != nil {
			return fmt.Errorf("seed payment: %w", err)
		}
	}

	return h.Audit.Log(ctx, "System", "Data Seed", "System",
		fmt.Sprintf("Demo data seeded: %d students, %d rooms, %d staff, %d fee structures, weekly mess menu, %d notices",
			len(demoStudents), len(demoRooms), len(staff), len(fees), len(notices)))
}
