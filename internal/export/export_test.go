package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/service"
)

var taken = time.Date(2026, time.March, 10, 9, 30, 5, 0, time.UTC)

func sampleSnapshot() service.Snapshot {
	room := 1
	resolved := taken.Add(-time.Hour)
	out := taken.Add(-30 * time.Minute)
	return service.Snapshot{
		TakenAt: taken,
		Students: []model.Student{
			{ID: 1, FirstName: "Ahmed", LastName: "Khan", RegistrationNumber: "FA22-BSE-001", RoomID: &room, RoomNumber: "A-101", JoinDate: taken, IsActive: true},
			{ID: 2, FirstName: "Sara", LastName: "Ali", RegistrationNumber: "FA22-BSE-002", Address: "House 4, Street 9", JoinDate: taken},
		},
		Rooms: []model.Room{
			{ID: 1, RoomNumber: "A-101", Floor: 1, Capacity: 1, CurrentOccupancy: 1, RoomType: model.RoomSingle, MonthlyRent: 12000, HasAC: true, IsActive: true},
			{ID: 2, RoomNumber: "A-102", Floor: 1, Capacity: 3, RoomType: model.RoomTriple, MonthlyRent: 7000, IsActive: true},
		},
		Payments: []model.Payment{
			{ID: 1, ReceiptNumber: "RCP-20260310-1001", StudentID: 1, StudentName: "Ahmed Khan", Amount: 8000, Month: 3, Year: 2026, Method: model.MethodCash, Status: model.PaymentPaid, PaymentDate: taken, Remarks: "March, advance"},
			{ID: 2, ReceiptNumber: "RCP-20260310-1002", StudentID: 1, StudentName: "Ahmed Khan", Amount: 500, Month: 3, Year: 2026, Method: model.MethodCash, Status: model.PaymentPending, PaymentDate: taken},
		},
		Complaints: []model.Complaint{
			{ID: 1, StudentName: "Ahmed Khan", Title: "Fan", Category: model.CategoryElectrical, Priority: model.PriorityHigh, Status: model.ComplaintResolved, CreatedAt: taken, ResolvedAt: &resolved, AssignedStaffName: "Tahir Abbas"},
			{ID: 2, StudentName: "Sara Ali", Title: "Tap", Category: model.CategoryPlumbing, Priority: model.PriorityLow, Status: model.ComplaintOpen, CreatedAt: taken},
		},
		Staff: []model.Staff{
			{ID: 1, FullName: "Muhammad Aslam", Role: model.RoleWarden, Salary: 45000, Shift: "Day", JoinDate: taken, IsActive: true},
			{ID: 2, FullName: "Rashid Mehmood", Role: model.RoleGuard, Salary: 25000, Shift: "Night", JoinDate: taken},
		},
		Visitors: []model.Visitor{
			{ID: 1, VisitorName: "Tariq", StudentName: "Ahmed Khan", CheckInTime: taken.Add(-time.Hour), CheckOutTime: &out, Status: model.VisitorCheckedOut, PassNumber: "VP-20260310-5001"},
		},
		Revenue:  8000,
		MonthRev: 8000,
	}
}

func readCSV(t *testing.T, kind Kind) [][]string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := WriteCSV(&buf, kind, sampleSnapshot()); err != nil {
		t.Fatalf("write %s: %v", kind, err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back %s: %v", kind, err)
	}
	return recs
}

func TestStudentsCSV(t *testing.T) {
	recs := readCSV(t, Students)
	if got := strings.Join(recs[0], ","); got != "ID,FirstName,LastName,RegNumber,CNIC,Phone,Email,Department,Room,Status,JoinDate" {
		t.Fatalf("header = %s", got)
	}
	if recs[1][8] != "A-101" || recs[1][9] != "Active" || recs[1][10] != "10-Mar-2026" {
		t.Fatalf("row 1 = %v", recs[1])
	}
	if recs[2][8] != "N/A" || recs[2][9] != "Inactive" {
		t.Fatalf("row 2 = %v", recs[2])
	}
}

func TestRoomsAndComplaintsCSV(t *testing.T) {
	rooms := readCSV(t, Rooms)
	if rooms[1][7] != "Yes" || rooms[1][8] != "No" || rooms[1][9] != "Full" || rooms[2][9] != "Available" {
		t.Fatalf("rooms = %v", rooms)
	}
	complaints := readCSV(t, Complaints)
	if complaints[1][7] != "Tahir Abbas" || complaints[1][8] != "10-Mar-2026" {
		t.Fatalf("resolved complaint = %v", complaints[1])
	}
	if complaints[2][7] != "N/A" || complaints[2][8] != "N/A" {
		t.Fatalf("open complaint = %v", complaints[2])
	}
}

func TestCSVQuotesCommas(t *testing.T) {
	payments := readCSV(t, Payments)
	if len(payments[1]) != 11 || payments[1][10] != "March, advance" {
		t.Fatalf("payment row = %v", payments[1])
	}
	visitors := readCSV(t, Visitors)
	if visitors[1][7] != "10-Mar-2026 08:30" || visitors[1][8] != "10-Mar-2026 09:00" {
		t.Fatalf("visitor row = %v", visitors[1])
	}
}

func TestWriteCSVFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, n, err := WriteCSVFile(dir, Staff, sampleSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "staff_20260310_093005.csv" || n != 2 {
		t.Fatalf("path=%s rows=%d", path, n)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "ID,Name,CNIC,Phone,Email,Role,Salary,Shift,JoinDate,Status\n") {
		t.Fatalf("file = %s", data)
	}
}

func TestUnknownKind(t *testing.T) {
	if _, err := WriteCSV(&bytes.Buffer{}, Kind("meals"), sampleSnapshot()); err == nil {
		t.Fatal("expected error")
	}
	if _, ok := ParseKind("rooms"); !ok {
		t.Fatal("rooms not parsed")
	}
	if Students.Label() != "Students CSV" {
		t.Fatalf("label = %q", Students.Label())
	}
}

func TestFullReport(t *testing.T) {
	out := FullReport(sampleSnapshot(), "admin")
	for _, want := range []string{
		"Generated By: admin",
		"Total Students    : 2",
		"Without Room      : 0",
		"Total Capacity    : 4 beds",
		"Occupancy Rate    : 25.0%",
		"Total Revenue     : Rs. 8,000",
		"Pending Payments  : 1",
		"Resolved          : 1",
		"Monthly Salary    : Rs. 45,000",
		"END OF REPORT",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
	for _, name := range []string{"STUDENTS", "ROOMS", "FINANCE", "COMPLAINTS", "STAFF"} {
		if !strings.Contains(out, "── "+name+" ") {
			t.Errorf("missing section %s", name)
		}
	}
}
