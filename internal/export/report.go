package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/service"
)

var rule = strings.Repeat("═", 63)

func section(name string) string {
	return "── " + name + " " + strings.Repeat("─", 59-len([]rune(name)))
}

// FullReport renders the complete hostel report generated by the given
// operator. Room totals cover every room, active or not.
func FullReport(snap service.Snapshot, by string) string {
	var b strings.Builder
	line := func(label, format string, args ...any) {
		fmt.Fprintf(&b, "  %-18s: %s\n", label, fmt.Sprintf(format, args...))
	}

	b.WriteString(rule + "\n")
	b.WriteString("          HOSTEL MANAGEMENT SYSTEM - COMPLETE REPORT\n")
	fmt.Fprintf(&b, "          Generated: %s\n", snap.TakenAt.Format("02-Jan-2006 15:04:05"))
	fmt.Fprintf(&b, "          Generated By: %s\n", by)
	b.WriteString(rule + "\n\n")

	active, withoutRoom := 0, 0
	for _, s := range snap.Students {
		if s.IsActive {
			active++
			if !s.HasRoom() {
				withoutRoom++
			}
		}
	}
	b.WriteString(section("STUDENTS") + "\n")
	line("Total Students", "%d", len(snap.Students))
	line("Active Students", "%d", active)
	line("Inactive Students", "%d", len(snap.Students)-active)
	line("Without Room", "%d", withoutRoom)
	b.WriteString("\n")

	capacity, occupancy := 0, 0
	for _, r := range snap.Rooms {
		capacity += r.Capacity
		occupancy += r.CurrentOccupancy
	}
	rate := 0.0
	if capacity > 0 {
		rate = float64(occupancy) / float64(capacity) * 100
	}
	b.WriteString(section("ROOMS") + "\n")
	line("Total Rooms", "%d", len(snap.Rooms))
	line("Total Capacity", "%d beds", capacity)
	line("Current Occupancy", "%d beds", occupancy)
	line("Available Beds", "%d", capacity-occupancy)
	line("Occupancy Rate", "%.1f%%", rate)
	b.WriteString("\n")

	pending := 0
	for _, p := range snap.Payments {
		if p.Status == model.PaymentPending {
			pending++
		}
	}
	b.WriteString(section("FINANCE") + "\n")
	line("Total Revenue", "Rs. %s", service.FormatAmount(snap.Revenue))
	line("This Month", "Rs. %s", service.FormatAmount(snap.MonthRev))
	line("Total Payments", "%d", len(snap.Payments))
	line("Pending Payments", "%d", pending)
	b.WriteString("\n")

	byStatus := map[model.ComplaintStatus]int{}
	for _, c := range snap.Complaints {
		byStatus[c.Status]++
	}
	b.WriteString(section("COMPLAINTS") + "\n")
	line("Total Complaints", "%d", len(snap.Complaints))
	line("Open", "%d", byStatus[model.ComplaintOpen])
	line("In Progress", "%d", byStatus[model.ComplaintInProgress])
	line("Resolved", "%d", byStatus[model.ComplaintResolved])
	line("Closed", "%d", byStatus[model.ComplaintClosed])
	b.WriteString("\n")

	activeStaff := 0
	var payroll int64
	for _, s := range snap.Staff {
		if s.IsActive {
			activeStaff++
			payroll += s.Salary
		}
	}
	b.WriteString(section("STAFF") + "\n")
	line("Total Staff", "%d", len(snap.Staff))
	line("Active Staff", "%d", activeStaff)
	line("Monthly Salary", "Rs. %s", service.FormatAmount(payroll))
	b.WriteString("\n")

	b.WriteString(rule + "\n")
	b.WriteString("                        END OF REPORT\n")
	b.WriteString(rule + "\n")
	return b.String()
}

// WriteReport writes FullReport to w.
func WriteReport(w io.Writer, snap service.Snapshot, by string) error {
	_, err := io.WriteString(w, FullReport(snap, by))
	return err
}

// WriteReportFile saves the report as full_report_<stamp>.txt in dir.
func WriteReportFile(dir string, snap service.Snapshot, by string) (string, error) {
	path, f, err := create(dir, "full_report", "txt", snap.TakenAt)
	if err != nil {
		return "", err
	}
	err = WriteReport(f, snap, by)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("export report: %w", err)
	}
	return path, nil
}
