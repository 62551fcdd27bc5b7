package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
)

func (c *Console) staffMenu(ctx context.Context) error {
	return c.menu(ctx, "STAFF MANAGEMENT", []item{
		{"1", "Add Staff Member", c.addStaff},
		{"2", "View All Staff", c.listStaff},
		{"3", "View Active Staff", c.activeStaff},
		{"4", "Staff By Role", c.staffByRole},
		{"5", "Update Staff", c.updateStaff},
		{"6", "Deactivate Staff", c.deactivateStaff},
		{"7", "Monthly Payroll", c.payroll},
	}, nil)
}

func (c *Console) staffTable(list []model.Staff) {
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, []string{
			strconv.Itoa(m.ID), m.FullName, string(m.Role), orDash(m.Phone),
			m.Shift, money(m.Salary), yesNo(m.IsActive),
		})
	}
	c.table([]string{"ID", "NAME", "ROLE", "PHONE", "SHIFT", "SALARY", "ACTIVE"}, rows)
}

func (c *Console) addStaff(ctx context.Context) error {
	c.header("ADD STAFF MEMBER")
	var m model.Staff
	var err error
	if m.FullName, err = c.required("Full name"); err != nil {
		return err
	}
	if m.Role, err = choose(c, "Role", model.StaffRoles); err != nil {
		return err
	}
	if m.Phone, err = c.read("Phone"); err != nil {
		return err
	}
	if m.Email, err = c.read("Email"); err != nil {
		return err
	}
	if m.CNIC, err = c.read("CNIC"); err != nil {
		return err
	}
	if m.Salary, err = c.readAmount("Monthly salary"); err != nil {
		return err
	}
	if m.Shift, err = c.keep("Shift", "Day"); err != nil {
		return err
	}
	m, err = c.h.Staff.Add(ctx, m)
	if err != nil {
		return err
	}
	c.successf("%s added with ID %d.", m.FullName, m.ID)
	return nil
}

func (c *Console) listStaff(ctx context.Context) error {
	c.header("ALL STAFF")
	list, err := c.h.Staff.List(ctx)
	if err != nil {
		return err
	}
	c.staffTable(list)
	return nil
}

func (c *Console) activeStaff(ctx context.Context) error {
	c.header("ACTIVE STAFF")
	list, err := c.h.Staff.ListActive(ctx)
	if err != nil {
		return err
	}
	c.staffTable(list)
	return nil
}

func (c *Console) staffByRole(ctx context.Context) error {
	role, err := choose(c, "Role", model.StaffRoles)
	if err != nil {
		return err
	}
	list, err := c.h.Staff.ListByRole(ctx, role)
	if err != nil {
		return err
	}
	c.staffTable(list)
	return nil
}

func (c *Console) updateStaff(ctx context.Context) error {
	id, err := c.readID("Staff ID")
	if err != nil {
		return err
	}
	m, err := c.h.Staff.Get(ctx, id)
	if err != nil {
		return err
	}
	c.infof("Press Enter to keep the current value.")
	if m.FullName, err = c.keep("Full name", m.FullName); err != nil {
		return err
	}
	if m.Phone, err = c.keep("Phone", m.Phone); err != nil {
		return err
	}
	if m.Shift, err = c.keep("Shift", m.Shift); err != nil {
		return err
	}
	salary, err := c.keep("Monthly salary", strconv.FormatInt(m.Salary, 10))
	if err != nil {
		return err
	}
	if m.Salary, err = strconv.ParseInt(salary, 10, 64); err != nil {
		return errInput("salary must be a whole amount")
	}
	if _, err := c.h.Staff.Update(ctx, m); err != nil {
		return err
	}
	c.successf("Staff member updated.")
	return nil
}

func (c *Console) deactivateStaff(ctx context.Context) error {
	id, err := c.readID("Staff ID")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Deactivate this staff member?")
	if err != nil || !ok {
		return err
	}
	if err := c.h.Staff.Deactivate(ctx, id); err != nil {
		return err
	}
	c.successf("Staff member deactivated.")
	return nil
}

func (c *Console) payroll(ctx context.Context) error {
	total, err := c.h.Staff.MonthlyPayroll(ctx)
	if err != nil {
		return err
	}
	n, err := c.h.Staff.ActiveCount(ctx)
	if err != nil {
		return err
	}
	c.header("MONTHLY PAYROLL")
	c.row("Active staff", strconv.Itoa(n))
	c.row("Total salaries", money(total))
	return nil
}

// ----- visitors -----

func (c *Console) visitorMenu(ctx context.Context) error {
	return c.menu(ctx, "VISITOR LOG", []item{
		{"1", "Check In Visitor", c.checkInVisitor},
		{"2", "Check Out Visitor", c.checkOutVisitor},
		{"3", "Visitors On Premises", c.activeVisitors},
		{"4", "Today's Visitors", c.todaysVisitors},
		{"5", "Visitors Of Student", c.studentVisitors},
		{"6", "Full Visitor Log", c.allVisitors},
	}, nil)
}

func (c *Console) visitorTable(list []model.Visitor) {
	rows := make([][]string, 0, len(list))
	for _, v := range list {
		out := "-"
		if v.CheckOutTime != nil {
			out = v.CheckOutTime.Format("15:04")
		}
		rows = append(rows, []string{
			strconv.Itoa(v.ID), v.PassNumber, v.VisitorName, v.StudentName,
			v.CheckInTime.Format("02-Jan 15:04"), out, string(v.Status),
		})
	}
	c.table([]string{"ID", "PASS", "VISITOR", "STUDENT", "IN", "OUT", "STATUS"}, rows)
}

func (c *Console) checkInVisitor(ctx context.Context) error {
	c.header("CHECK IN VISITOR")
	var v model.Visitor
	var err error
	if v.StudentID, err = c.readID("Visiting student ID"); err != nil {
		return err
	}
	if v.VisitorName, err = c.required("Visitor name"); err != nil {
		return err
	}
	if v.CNIC, err = c.read("CNIC"); err != nil {
		return err
	}
	if v.Phone, err = c.read("Phone"); err != nil {
		return err
	}
	if v.Relationship, err = c.read("Relationship"); err != nil {
		return err
	}
	if v.Purpose, err = c.read("Purpose"); err != nil {
		return err
	}
	v, err = c.h.Visitors.CheckIn(ctx, v)
	if err != nil {
		return err
	}
	c.successf("%s checked in. Pass %s.", v.VisitorName, v.PassNumber)
	return nil
}

func (c *Console) checkOutVisitor(ctx context.Context) error {
	active, err := c.h.Visitors.ListActive(ctx)
	if err != nil {
		return err
	}
	c.visitorTable(active)
	id, err := c.readID("Visitor ID")
	if err != nil {
		return err
	}
	v, err := c.h.Visitors.CheckOut(ctx, id)
	if err != nil {
		return err
	}
	c.successf("%s checked out.", v.VisitorName)
	return nil
}

func (c *Console) activeVisitors(ctx context.Context) error {
	c.header("VISITORS ON PREMISES")
	list, err := c.h.Visitors.ListActive(ctx)
	if err != nil {
		return err
	}
	c.visitorTable(list)
	return nil
}

func (c *Console) todaysVisitors(ctx context.Context) error {
	c.header("TODAY'S VISITORS")
	list, err := c.h.Visitors.ListByDate(ctx, c.now())
	if err != nil {
		return err
	}
	c.visitorTable(list)
	return nil
}

func (c *Console) studentVisitors(ctx context.Context) error {
	id, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	list, err := c.h.Visitors.ListByStudent(ctx, id)
	if err != nil {
		return err
	}
	c.visitorTable(list)
	return nil
}

func (c *Console) allVisitors(ctx context.Context) error {
	c.header("VISITOR LOG")
	list, err := c.h.Visitors.List(ctx)
	if err != nil {
		return err
	}
	c.visitorTable(list)
	return nil
}

// ----- attendance -----

func (c *Console) attendanceMenu(ctx context.Context) error {
	return c.menu(ctx, "ATTENDANCE TRACKING", []item{
		{"1", "Mark Attendance", c.markAttendance},
		{"2", "Mark Roll Call", c.rollCall},
		{"3", "Attendance By Date", c.attendanceByDate},
		{"4", "Student Attendance", c.studentAttendance},
		{"5", "Daily Summary", c.attendanceSummary},
	}, nil)
}

func (c *Console) markAttendance(ctx context.Context) error {
	var a model.Attendance
	var err error
	if a.StudentID, err = c.readID("Student ID"); err != nil {
		return err
	}
	if a.Date, err = c.readDate("Date", c.now()); err != nil {
		return err
	}
	if a.Status, err = choose(c, "Status", model.AttendanceStatuses); err != nil {
		return err
	}
	if a.Remarks, err = c.read("Remarks"); err != nil {
		return err
	}
	a, err = c.h.Attendance.Mark(ctx, a)
	if err != nil {
		return err
	}
	c.successf("%s marked %s for %s.", a.StudentName, a.Status, day(a.Date))
	return nil
}

// rollCall walks every active student for today. P, A, L and T stand for
// present, absent, leave and late; an empty answer skips the student.
func (c *Console) rollCall(ctx context.Context) error {
	students, err := c.h.Students.ListActive(ctx)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		c.infof("No active students.")
		return nil
	}
	codes := map[string]model.AttendanceStatus{
		"p": model.AttendancePresent,
		"a": model.AttendanceAbsent,
		"l": model.AttendanceLeave,
		"t": model.AttendanceLate,
	}
	today := c.now()
	c.header("ROLL CALL " + day(today))
	c.infof("P = Present, A = Absent, L = Leave, T = Late, Enter = skip")
	marked := 0
	for _, st := range students {
		ans, err := c.read(fmt.Sprintf("%s (%s)", st.FullName(), orDash(st.RoomNumber)))
		if err != nil {
			return err
		}
		if ans == "" {
			continue
		}
		status, ok := codes[strings.ToLower(ans)]
		if !ok {
			c.errorf("Unknown code %q, skipped.", ans)
			continue
		}
		if _, err := c.h.Attendance.Mark(ctx, model.Attendance{StudentID: st.ID, Date: today, Status: status}); err != nil {
			c.errorf("%s: %v", st.FullName(), err)
			continue
		}
		marked++
	}
	c.successf("%d students marked.", marked)
	return nil
}

func (c *Console) attendanceTable(list []model.Attendance) {
	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{strconv.Itoa(a.StudentID), a.StudentName, day(a.Date), string(a.Status), orDash(a.Remarks)})
	}
	c.table([]string{"STUDENT", "NAME", "DATE", "STATUS", "REMARKS"}, rows)
}

func (c *Console) attendanceByDate(ctx context.Context) error {
	d, err := c.readDate("Date", c.now())
	if err != nil {
		return err
	}
	list, err := c.h.Attendance.ListByDate(ctx, d)
	if err != nil {
		return err
	}
	c.header("ATTENDANCE " + day(d))
	c.attendanceTable(list)
	return nil
}

func (c *Console) studentAttendance(ctx context.Context) error {
	id, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	list, err := c.h.Attendance.ListByStudent(ctx, id)
	if err != nil {
		return err
	}
	pct, err := c.h.Attendance.Percentage(ctx, id)
	if err != nil {
		return err
	}
	c.attendanceTable(list)
	c.row("Attendance", fmt.Sprintf("%s %.1f%%", bar(pct), pct))
	return nil
}

func (c *Console) attendanceSummary(ctx context.Context) error {
	d, err := c.readDate("Date", c.now())
	if err != nil {
		return err
	}
	s, err := c.h.Attendance.StatsForDate(ctx, d)
	if err != nil {
		return err
	}
	c.header("ATTENDANCE SUMMARY " + day(d))
	c.row("Present", strconv.Itoa(s.Present))
	c.row("Absent", strconv.Itoa(s.Absent))
	c.row("Leave", strconv.Itoa(s.Leave))
	c.row("Late", strconv.Itoa(s.Late))
	return nil
}

// ----- mess -----

func (c *Console) messMenu(ctx context.Context) error {
	return c.menu(ctx, "MESS MENU MANAGEMENT", []item{
		{"1", "View Weekly Menu", c.weeklyMenu},
		{"2", "View Today's Menu", c.todaysMenu},
		{"3", "Add Menu Item", c.addMenu},
		{"4", "Update Menu Item", c.updateMenu},
		{"5", "Delete Menu Item", c.deleteMenu},
		{"6", "Menu For Day", c.menuForDay},
	}, nil)
}

var weekdays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

func (c *Console) readWeekday() (time.Weekday, error) {
	d, err := choose(c, "Day", weekdays)
	if err != nil {
		return 0, err
	}
	for i, w := range weekdays {
		if w == d {
			return time.Weekday(i), nil
		}
	}
	return 0, errInput("unknown day %q", d)
}

func (c *Console) menuTable(list []model.MessMenu) {
	rows := make([][]string, 0, len(list))
	for _, m := range list {
		rows = append(rows, []string{strconv.Itoa(m.ID), m.Day.String(), string(m.MealType), m.Items})
	}
	c.table([]string{"ID", "DAY", "MEAL", "ITEMS"}, rows)
}

func (c *Console) weeklyMenu(ctx context.Context) error {
	c.header("WEEKLY MESS MENU")
	list, err := c.h.Mess.Week(ctx)
	if err != nil {
		return err
	}
	c.menuTable(list)
	return nil
}

func (c *Console) todaysMenu(ctx context.Context) error {
	today := c.now().Weekday()
	c.header("MENU FOR " + strings.ToUpper(today.String()))
	list, err := c.h.Mess.ByDay(ctx, today)
	if err != nil {
		return err
	}
	c.menuTable(list)
	return nil
}

func (c *Console) menuForDay(ctx context.Context) error {
	d, err := c.readWeekday()
	if err != nil {
		return err
	}
	list, err := c.h.Mess.ByDay(ctx, d)
	if err != nil {
		return err
	}
	c.menuTable(list)
	return nil
}

func (c *Console) addMenu(ctx context.Context) error {
	var m model.MessMenu
	var err error
	if m.Day, err = c.readWeekday(); err != nil {
		return err
	}
	if m.MealType, err = choose(c, "Meal", model.MealTypes); err != nil {
		return err
	}
	if m.Items, err = c.required("Items"); err != nil {
		return err
	}
	if _, err := c.h.Mess.Add(ctx, m); err != nil {
		return err
	}
	c.successf("%s %s added.", m.Day, m.MealType)
	return nil
}

func (c *Console) updateMenu(ctx context.Context) error {
	id, err := c.readID("Menu item ID")
	if err != nil {
		return err
	}
	m, err := c.h.Mess.Get(ctx, id)
	if err != nil {
		return err
	}
	if m.Items, err = c.keep("Items", m.Items); err != nil {
		return err
	}
	if _, err := c.h.Mess.Update(ctx, m); err != nil {
		return err
	}
	c.successf("Menu item updated.")
	return nil
}

func (c *Console) deleteMenu(ctx context.Context) error {
	id, err := c.readID("Menu item ID")
	if err != nil {
		return err
	}
	if err := c.h.Mess.Delete(ctx, id); err != nil {
		return err
	}
	c.successf("Menu item deleted.")
	return nil
}

// ----- notices -----

func (c *Console) noticeMenu(ctx context.Context) error {
	return c.menu(ctx, "NOTICE BOARD", []item{
		{"1", "View Active Notices", c.activeNotices},
		{"2", "Post Notice", c.postNotice},
		{"3", "Update Notice", c.updateNotice},
		{"4", "Remove Notice", c.removeNotice},
		{"5", "View All Notices", c.allNotices},
	}, nil)
}

func (c *Console) printNotices(list []model.Notice) {
	if len(list) == 0 {
		c.infof("No notices.")
		return
	}
	for _, n := range list {
		c.infof("#%d [%s] %s", n.ID, strings.ToUpper(string(n.Priority)), n.Title)
		c.infof("    %s", n.Content)
		expiry := "never"
		if n.ExpiresAt != nil {
			expiry = day(*n.ExpiresAt)
		}
		c.infof("    posted by %s on %s, expires %s, active %s", n.PostedBy, day(n.PostedAt), expiry, yesNo(n.IsActive))
		c.infof("")
	}
}

func (c *Console) activeNotices(ctx context.Context) error {
	c.header("NOTICE BOARD")
	list, err := c.h.Notices.ListActive(ctx, c.now())
	if err != nil {
		return err
	}
	c.printNotices(list)
	return nil
}

func (c *Console) allNotices(ctx context.Context) error {
	c.header("ALL NOTICES")
	list, err := c.h.Notices.List(ctx)
	if err != nil {
		return err
	}
	c.printNotices(list)
	return nil
}

func (c *Console) postNotice(ctx context.Context) error {
	var n model.Notice
	var err error
	if n.Title, err = c.required("Title"); err != nil {
		return err
	}
	if n.Content, err = c.required("Content"); err != nil {
		return err
	}
	if n.Priority, err = choose(c, "Priority", model.NoticePriorities); err != nil {
		return err
	}
	days, err := c.read("Expires in days (empty for never)")
	if err != nil {
		return err
	}
	if days != "" {
		d, err := strconv.Atoi(days)
		if err != nil || d < 1 {
			return errInput("days must be a positive number")
		}
		exp := c.now().AddDate(0, 0, d)
		n.ExpiresAt = &exp
	}
	n.PostedBy = displayName(c.admin)
	n, err = c.h.Notices.Post(ctx, n)
	if err != nil {
		return err
	}
	c.successf("Notice #%d posted.", n.ID)
	return nil
}

func (c *Console) updateNotice(ctx context.Context) error {
	id, err := c.readID("Notice ID")
	if err != nil {
		return err
	}
	n, err := c.h.Notices.Get(ctx, id)
	if err != nil {
		return err
	}
	if n.Title, err = c.keep("Title", n.Title); err != nil {
		return err
	}
	if n.Content, err = c.keep("Content", n.Content); err != nil {
		return err
	}
	if _, err := c.h.Notices.Update(ctx, n); err != nil {
		return err
	}
	c.successf("Notice updated.")
	return nil
}

func (c *Console) removeNotice(ctx context.Context) error {
	id, err := c.readID("Notice ID")
	if err != nil {
		return err
	}
	if err := c.h.Notices.Deactivate(ctx, id); err != nil {
		return err
	}
	c.successf("Notice removed.")
	return nil
}
