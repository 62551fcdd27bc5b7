// Package export renders hostel records as CSV files and the plain text
// full report.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/service"
)

const (
	dateLayout     = "02-Jan-2006"
	dateTimeLayout = "02-Jan-2006 15:04"
	stampLayout    = "20060102_150405"
)

// Kind names one CSV export.
type Kind string

const (
	Students   Kind = "students"
	Rooms      Kind = "rooms"
	Payments   Kind = "payments"
	Complaints Kind = "complaints"
	Staff      Kind = "staff"
	Visitors   Kind = "visitors"
)

// Kinds lists the CSV exports in menu order.
var Kinds = []Kind{Students, Rooms, Payments, Complaints, Staff, Visitors}

// Label is the name used in audit entries, e.g. "Students CSV".
func (k Kind) Label() string {
	s := string(k)
	if s == "" {
		return "CSV"
	}
	return string(s[0]-'a'+'A') + s[1:] + " CSV"
}

func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, true
		}
	}
	return "", false
}

type table struct {
	header []string
	rows   [][]string
}

// WriteCSV writes the records of kind taken from snap to w and returns
// the number of data rows.
func WriteCSV(w io.Writer, kind Kind, snap service.Snapshot) (int, error) {
	t, err := build(kind, snap)
	if err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return 0, err
	}
	if err := cw.WriteAll(t.rows); err != nil {
		return 0, err
	}
	return len(t.rows), nil
}

// WriteCSVFile writes a timestamped CSV file such as
// students_20260310_093000.csv into dir, creating dir when needed.
func WriteCSVFile(dir string, kind Kind, snap service.Snapshot) (string, int, error) {
	path, f, err := create(dir, string(kind), "csv", snap.TakenAt)
	if err != nil {
		return "", 0, err
	}
	n, err := WriteCSV(f, kind, snap)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", 0, fmt.Errorf("export %s: %w", kind, err)
	}
	return path, n, nil
}

func create(dir, name, ext string, at time.Time) (string, *os.File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", name, at.Format(stampLayout), ext))
	f, err := os.Create(path)
	if err != nil {
		return "", nil, err
	}
	return path, f, nil
}

func build(kind Kind, snap service.Snapshot) (table, error) {
	switch kind {
	case Students:
		return studentTable(snap.Students), nil
	case Rooms:
		return roomTable(snap.Rooms), nil
	case Payments:
		return paymentTable(snap.Payments), nil
	case Complaints:
		return complaintTable(snap.Complaints), nil
	case Staff:
		return staffTable(snap.Staff), nil
	case Visitors:
		return visitorTable(snap.Visitors), nil
	}
	return table{}, fmt.Errorf("unknown export %q", kind)
}

func studentTable(list []model.Student) table {
	t := table{header: []string{"ID", "FirstName", "LastName", "RegNumber", "CNIC", "Phone", "Email", "Department", "Room", "Status", "JoinDate"}}
	for _, s := range list {
		t.rows = append(t.rows, []string{
			strconv.Itoa(s.ID), s.FirstName, s.LastName, s.RegistrationNumber, s.CNIC, s.Phone, s.Email,
			s.Department, orNA(s.RoomNumber), activity(s.IsActive), s.JoinDate.Format(dateLayout),
		})
	}
	return t
}

func roomTable(list []model.Room) table {
	t := table{header: []string{"ID", "RoomNumber", "Floor", "Type", "Capacity", "Occupancy", "Rent", "AC", "AttBath", "Status"}}
	for _, r := range list {
		status := "Available"
		if r.IsFull() {
			status = "Full"
		}
		t.rows = append(t.rows, []string{
			strconv.Itoa(r.ID), r.RoomNumber, strconv.Itoa(r.Floor), string(r.RoomType), strconv.Itoa(r.Capacity),
			strconv.Itoa(r.CurrentOccupancy), strconv.FormatInt(r.MonthlyRent, 10), yesNo(r.HasAC), yesNo(r.HasAttachedBath), status,
		})
	}
	return t
}

func paymentTable(list []model.Payment) table {
	t := table{header: []string{"ID", "Receipt", "StudentID", "StudentName", "Amount", "Month", "Year", "Method", "Status", "Date", "Remarks"}}
	for _, p := range list {
		t.rows = append(t.rows, []string{
			strconv.Itoa(p.ID), p.ReceiptNumber, strconv.Itoa(p.StudentID), p.StudentName, strconv.FormatInt(p.Amount, 10),
			strconv.Itoa(p.Month), strconv.Itoa(p.Year), string(p.Method), string(p.Status), p.PaymentDate.Format(dateLayout), p.Remarks,
		})
	}
	return t
}

func complaintTable(list []model.Complaint) table {
	t := table{header: []string{"ID", "StudentName", "Title", "Category", "Priority", "Status", "CreatedAt", "AssignedTo", "ResolvedAt"}}
	for _, c := range list {
		resolved := "N/A"
		if c.ResolvedAt != nil {
			resolved = c.ResolvedAt.Format(dateLayout)
		}
		t.rows = append(t.rows, []string{
			strconv.Itoa(c.ID), c.StudentName, c.Title, string(c.Category), string(c.Priority), string(c.Status),
			c.CreatedAt.Format(dateLayout), orNA(c.AssignedStaffName), resolved,
		})
	}
	return t
}

func staffTable(list []model.Staff) table {
	t := table{header: []string{"ID", "Name", "CNIC", "Phone", "Email", "Role", "Salary", "Shift", "JoinDate", "Status"}}
	for _, s := range list {
		t.rows = append(t.rows, []string{
			strconv.Itoa(s.ID), s.FullName, s.CNIC, s.Phone, s.Email, string(s.Role), strconv.FormatInt(s.Salary, 10),
			s.Shift, s.JoinDate.Format(dateLayout), activity(s.IsActive),
		})
	}
	return t
}

func visitorTable(list []model.Visitor) table {
	t := table{header: []string{"ID", "VisitorName", "CNIC", "Phone", "Relationship", "StudentName", "Purpose", "CheckIn", "CheckOut", "Status", "Pass"}}
	for _, v := range list {
		out := "N/A"
		if v.CheckOutTime != nil {
			out = v.CheckOutTime.Format(dateTimeLayout)
		}
		t.rows = append(t.rows, []string{
			strconv.Itoa(v.ID), v.VisitorName, v.CNIC, v.Phone, v.Relationship, v.StudentName, v.Purpose,
			v.CheckInTime.Format(dateTimeLayout), out, string(v.Status), v.PassNumber,
		})
	}
	return t
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func activity(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}
