package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iliyamo/hostel-management/internal/model"
)

func (c *Console) studentMenu(ctx context.Context) error {
	return c.menu(ctx, "STUDENT MANAGEMENT", []item{
		{"1", "Register New Student", c.registerStudent},
		{"2", "View All Students", c.listStudents},
		{"3", "Search Students", c.searchStudents},
		{"4", "View Student Details", c.studentDetails},
		{"5", "Update Student", c.updateStudent},
		{"6", "Assign Room", c.assignRoom},
		{"7", "Vacate Room", c.vacateRoom},
		{"8", "Swap Rooms", c.swapRooms},
		{"9", "Students Without Room", c.studentsWithoutRoom},
		{"10", "Deactivate Student", c.deactivateStudent},
	}, nil)
}

func (c *Console) registerStudent(ctx context.Context) error {
	c.header("REGISTER STUDENT")
	var st model.Student
	var err error
	if st.FirstName, err = c.required("First name"); err != nil {
		return err
	}
	if st.LastName, err = c.required("Last name"); err != nil {
		return err
	}
	if st.RegistrationNumber, err = c.required("Registration number"); err != nil {
		return err
	}
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"CNIC", &st.CNIC},
		{"Phone", &st.Phone},
		{"Email", &st.Email},
		{"Address", &st.Address},
		{"Guardian name", &st.GuardianName},
		{"Guardian phone", &st.GuardianPhone},
		{"Department", &st.Department},
	} {
		if *f.dst, err = c.read(f.label); err != nil {
			return err
		}
	}
	st, err = c.h.Students.Register(ctx, st)
	if err != nil {
		return err
	}
	c.successf("Student registered with ID %d.", st.ID)
	return nil
}

func (c *Console) studentTable(list []model.Student) {
	rows := make([][]string, 0, len(list))
	for _, st := range list {
		rows = append(rows, []string{
			strconv.Itoa(st.ID), st.FullName(), st.RegistrationNumber,
			orDash(st.RoomNumber), orDash(st.Department), yesNo(st.IsActive),
		})
	}
	c.table([]string{"ID", "NAME", "REG #", "ROOM", "DEPARTMENT", "ACTIVE"}, rows)
}

func (c *Console) listStudents(ctx context.Context) error {
	c.header("ALL STUDENTS")
	list, err := c.h.Students.List(ctx)
	if err != nil {
		return err
	}
	c.studentTable(list)
	return nil
}

func (c *Console) searchStudents(ctx context.Context) error {
	q, err := c.required("Name, registration number or CNIC")
	if err != nil {
		return err
	}
	list, err := c.h.Students.Search(ctx, q)
	if err != nil {
		return err
	}
	c.studentTable(list)
	return nil
}

func (c *Console) studentDetails(ctx context.Context) error {
	id, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	st, err := c.h.Students.Get(ctx, id)
	if err != nil {
		return err
	}
	c.header("STUDENT DETAILS")
	c.row("ID", strconv.Itoa(st.ID))
	c.row("Name", st.FullName())
	c.row("Registration #", st.RegistrationNumber)
	c.row("CNIC", orDash(st.CNIC))
	c.row("Phone", orDash(st.Phone))
	c.row("Email", orDash(st.Email))
	c.row("Address", orDash(st.Address))
	c.row("Guardian", fmt.Sprintf("%s %s", orDash(st.GuardianName), st.GuardianPhone))
	c.row("Department", orDash(st.Department))
	c.row("Room", orDash(st.RoomNumber))
	c.row("Joined", day(st.JoinDate))
	if st.LeaveDate != nil {
		c.row("Left", day(*st.LeaveDate))
	}
	c.row("Active", yesNo(st.IsActive))

	history, err := c.h.Students.History(ctx, id)
	if err != nil {
		return err
	}
	if len(history) > 0 {
		c.infof("")
		c.infof("Room history:")
		rows := make([][]string, 0, len(history))
		for _, b := range history {
			end := "current"
			if b.EndDate != nil {
				end = day(*b.EndDate)
			}
			rows = append(rows, []string{b.RoomNumber, day(b.StartDate), end})
		}
		c.table([]string{"ROOM", "FROM", "TO"}, rows)
	}
	return nil
}

func (c *Console) updateStudent(ctx context.Context) error {
	id, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	st, err := c.h.Students.Get(ctx, id)
	if err != nil {
		return err
	}
	c.infof("Press Enter to keep the current value.")
	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"First name", &st.FirstName},
		{"Last name", &st.LastName},
		{"Phone", &st.Phone},
		{"Email", &st.Email},
		{"Address", &st.Address},
		{"Guardian name", &st.GuardianName},
		{"Guardian phone", &st.GuardianPhone},
		{"Department", &st.Department},
	} {
		if *f.dst, err = c.keep(f.label, *f.dst); err != nil {
			return err
		}
	}
	if _, err := c.h.Students.Update(ctx, st); err != nil {
		return err
	}
	c.successf("Student updated.")
	return nil
}

func (c *Console) assignRoom(ctx context.Context) error {
	sid, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	rooms, err := c.h.Rooms.ListAvailable(ctx)
	if err != nil {
		return err
	}
	c.roomTable(rooms)
	rid, err := c.readID("Room ID")
	if err != nil {
		return err
	}
	if err := c.h.Students.AssignRoom(ctx, sid, rid); err != nil {
		return err
	}
	c.successf("Room assigned.")
	return nil
}

func (c *Console) vacateRoom(ctx context.Context) error {
	sid, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	if err := c.h.Students.UnassignRoom(ctx, sid); err != nil {
		return err
	}
	c.successf("Room vacated.")
	return nil
}

func (c *Console) swapRooms(ctx context.Context) error {
	a, err := c.readID("First student ID")
	if err != nil {
		return err
	}
	b, err := c.readID("Second student ID")
	if err != nil {
		return err
	}
	if err := c.h.Students.SwapRooms(ctx, a, b); err != nil {
		return err
	}
	c.successf("Rooms swapped.")
	return nil
}

func (c *Console) studentsWithoutRoom(ctx context.Context) error {
	c.header("STUDENTS WITHOUT ROOM")
	list, err := c.h.Students.ListWithoutRoom(ctx)
	if err != nil {
		return err
	}
	c.studentTable(list)
	return nil
}

func (c *Console) deactivateStudent(ctx context.Context) error {
	id, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Deactivate this student and release their room?")
	if err != nil || !ok {
		return err
	}
	if err := c.h.Students.Deactivate(ctx, id); err != nil {
		return err
	}
	c.successf("Student deactivated.")
	return nil
}

// ----- rooms -----

func (c *Console) roomMenu(ctx context.Context) error {
	return c.menu(ctx, "ROOM MANAGEMENT", []item{
		{"1", "Add New Room", c.addRoom},
		{"2", "View All Rooms", c.listRooms},
		{"3", "View Available Rooms", c.availableRooms},
		{"4", "View Full Rooms", c.fullRooms},
		{"5", "View Room Details", c.roomDetails},
		{"6", "Update Room", c.updateRoom},
		{"7", "Delete Room", c.deleteRoom},
		{"8", "Occupancy Summary", c.occupancySummary},
	}, nil)
}

func (c *Console) roomTable(list []model.Room) {
	rows := make([][]string, 0, len(list))
	for _, r := range list {
		rows = append(rows, []string{
			strconv.Itoa(r.ID), r.RoomNumber, strconv.Itoa(r.Floor), string(r.RoomType),
			fmt.Sprintf("%d/%d", r.CurrentOccupancy, r.Capacity), money(r.MonthlyRent),
			yesNo(r.HasAC), yesNo(r.IsActive),
		})
	}
	c.table([]string{"ID", "ROOM", "FLOOR", "TYPE", "BEDS", "RENT", "AC", "ACTIVE"}, rows)
}

func (c *Console) addRoom(ctx context.Context) error {
	c.header("ADD ROOM")
	var r model.Room
	var err error
	if r.RoomNumber, err = c.required("Room number"); err != nil {
		return err
	}
	if r.Floor, err = c.readInt("Floor"); err != nil {
		return err
	}
	if r.RoomType, err = choose(c, "Room type", model.RoomTypes); err != nil {
		return err
	}
	if r.Capacity, err = c.readInt("Capacity"); err != nil {
		return err
	}
	if r.MonthlyRent, err = c.readAmount("Monthly rent"); err != nil {
		return err
	}
	if r.HasAC, err = c.confirm("Air conditioned?"); err != nil {
		return err
	}
	if r.HasAttachedBath, err = c.confirm("Attached bath?"); err != nil {
		return err
	}
	r, err = c.h.Rooms.Create(ctx, r)
	if err != nil {
		return err
	}
	c.successf("Room %s created with ID %d.", r.RoomNumber, r.ID)
	return nil
}

func (c *Console) listRooms(ctx context.Context) error {
	c.header("ALL ROOMS")
	list, err := c.h.Rooms.List(ctx)
	if err != nil {
		return err
	}
	c.roomTable(list)
	return nil
}

func (c *Console) availableRooms(ctx context.Context) error {
	c.header("AVAILABLE ROOMS")
	list, err := c.h.Rooms.ListAvailable(ctx)
	if err != nil {
		return err
	}
	c.roomTable(list)
	return nil
}

func (c *Console) fullRooms(ctx context.Context) error {
	c.header("FULL ROOMS")
	list, err := c.h.Rooms.ListFull(ctx)
	if err != nil {
		return err
	}
	c.roomTable(list)
	return nil
}

func (c *Console) roomDetails(ctx context.Context) error {
	id, err := c.readID("Room ID")
	if err != nil {
		return err
	}
	r, err := c.h.Rooms.Get(ctx, id)
	if err != nil {
		return err
	}
	c.header("ROOM " + r.RoomNumber)
	c.row("Floor", strconv.Itoa(r.Floor))
	c.row("Type", string(r.RoomType))
	c.row("Occupancy", fmt.Sprintf("%d/%d (%d free)", r.CurrentOccupancy, r.Capacity, r.FreeBeds()))
	c.row("Monthly rent", money(r.MonthlyRent))
	c.row("AC", yesNo(r.HasAC))
	c.row("Attached bath", yesNo(r.HasAttachedBath))
	c.row("Active", yesNo(r.IsActive))
	occupants, err := c.h.Students.ListByRoom(ctx, id)
	if err != nil {
		return err
	}
	c.infof("")
	c.infof("Occupants:")
	c.studentTable(occupants)
	return nil
}

func (c *Console) updateRoom(ctx context.Context) error {
	id, err := c.readID("Room ID")
	if err != nil {
		return err
	}
	r, err := c.h.Rooms.Get(ctx, id)
	if err != nil {
		return err
	}
	c.infof("Press Enter to keep the current value.")
	if r.RoomNumber, err = c.keep("Room number", r.RoomNumber); err != nil {
		return err
	}
	capacity, err := c.keep("Capacity", strconv.Itoa(r.Capacity))
	if err != nil {
		return err
	}
	if r.Capacity, err = strconv.Atoi(capacity); err != nil {
		return errInput("capacity must be a number")
	}
	rent, err := c.keep("Monthly rent", strconv.FormatInt(r.MonthlyRent, 10))
	if err != nil {
		return err
	}
	if r.MonthlyRent, err = strconv.ParseInt(rent, 10, 64); err != nil {
		return errInput("monthly rent must be a whole amount")
	}
	if _, err := c.h.Rooms.Update(ctx, r); err != nil {
		return err
	}
	c.successf("Room updated.")
	return nil
}

func (c *Console) deleteRoom(ctx context.Context) error {
	id, err := c.readID("Room ID")
	if err != nil {
		return err
	}
	ok, err := c.confirm("Delete this room?")
	if err != nil || !ok {
		return err
	}
	if err := c.h.Rooms.Delete(ctx, id); err != nil {
		return err
	}
	c.successf("Room deleted.")
	return nil
}

func (c *Console) occupancySummary(ctx context.Context) error {
	c.header("OCCUPANCY SUMMARY")
	capacity, err := c.h.Rooms.TotalCapacity(ctx)
	if err != nil {
		return err
	}
	occupied, err := c.h.Rooms.TotalOccupancy(ctx)
	if err != nil {
		return err
	}
	var pct float64
	if capacity > 0 {
		pct = float64(occupied) / float64(capacity) * 100
	}
	c.row("Total beds", strconv.Itoa(capacity))
	c.row("Occupied beds", strconv.Itoa(occupied))
	c.row("Occupancy", fmt.Sprintf("%s %.1f%%", bar(pct), pct))
	byType, err := c.h.Rooms.CountByType(ctx)
	if err != nil {
		return err
	}
	for _, t := range model.RoomTypes {
		c.row(string(t)+" rooms", strconv.Itoa(byType[t]))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
