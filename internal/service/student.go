package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/hostel-management/internal/metrics"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/queue"
	"github.com/iliyamo/hostel-management/internal/repository"
)

// StudentService manages residents and their room assignments. Room
// occupancy counters, the student's room fields and the booking history
// always change together.
type StudentService struct {
	base
	students repository.Store[model.Student]
	rooms    repository.Store[model.Room]
	bookings repository.Store[model.Booking]
	events   queue.Publisher
}

// Register admits a new student. The student starts active and without a
// room; the join date defaults to now.
func (s *StudentService) Register(ctx context.Context, st model.Student) (model.Student, error) {
	normalizeStudent(&st)
	st.ID = 0
	st.RoomID, st.RoomNumber, st.LeaveDate = nil, "", nil
	st.IsActive = true
	if st.JoinDate.IsZero() {
		st.JoinDate = s.now()
	}
	if err := check(st); err != nil {
		return model.Student{}, err
	}
	err := s.write(ctx, func() error {
		if err := s.uniqueRegistration(ctx, st.RegistrationNumber, 0); err != nil {
			return err
		}
		var err error
		st, err = s.students.Add(ctx, st)
		return err
	}, s.students)
	if err != nil {
		return model.Student{}, err
	}
	s.record(ctx, "Student", "Register", fmt.Sprintf("Registered %s (%s)", st.FullName(), st.RegistrationNumber))
	return st, nil
}

func (s *StudentService) Get(ctx context.Context, id int) (model.Student, error) {
	st, err := s.students.Get(ctx, id)
	if err != nil {
		return model.Student{}, notFound(err, ErrStudentNotFound, id)
	}
	return st, nil
}

// Update replaces the personal details of a student. Residency fields
// (room, active flag, leave date) are owned by the room operations and
// Deactivate, so they are carried over from the stored record.
func (s *StudentService) Update(ctx context.Context, st model.Student) (model.Student, error) {
	normalizeStudent(&st)
	var out model.Student
	err := s.write(ctx, func() error {
		cur, err := s.Get(ctx, st.ID)
		if err != nil {
			return err
		}
		st.RoomID, st.RoomNumber = cur.RoomID, cur.RoomNumber
		st.IsActive, st.LeaveDate = cur.IsActive, cur.LeaveDate
		if st.JoinDate.IsZero() {
			st.JoinDate = cur.JoinDate
		}
		if err := check(st); err != nil {
			return err
		}
		if err := s.uniqueRegistration(ctx, st.RegistrationNumber, st.ID); err != nil {
			return err
		}
		out = st
		return s.students.Update(ctx, st)
	}, s.students)
	if err != nil {
		return model.Student{}, err
	}
	s.record(ctx, "Student", "Update", fmt.Sprintf("Updated %s (#%d)", out.FullName(), out.ID))
	return out, nil
}

// Deactivate marks the student as having left, stamps the leave date and
// releases the room. Deactivating an inactive student changes nothing.
func (s *StudentService) Deactivate(ctx context.Context, id int) error {
	var released *model.Room
	var st model.Student
	changed := false
	err := s.write(ctx, func() error {
		var err error
		st, err = s.Get(ctx, id)
		if err != nil || !st.IsActive {
			return err
		}
		now := s.now()
		if st.HasRoom() {
			if released, err = s.releaseRoom(ctx, &st, now); err != nil {
				return err
			}
		}
		st.IsActive = false
		st.LeaveDate = &now
		changed = true
		return s.students.Update(ctx, st)
	}, s.students, s.rooms, s.bookings)
	if err != nil || !changed {
		return err
	}
	s.record(ctx, "Student", "Deactivate", fmt.Sprintf("Deactivated %s (#%d)", st.FullName(), st.ID))
	if released != nil {
		metrics.RoomAssignments.WithLabelValues("release").Inc()
		s.publish(ctx, queue.EventRoomReleased, st, released.ID, released.RoomNumber)
	}
	return nil
}

// AssignRoom moves the student into roomID, vacating any previous room.
func (s *StudentService) AssignRoom(ctx context.Context, studentID, roomID int) error {
	var st model.Student
	var room model.Room
	err := s.write(ctx, func() error {
		var err error
		if st, err = s.Get(ctx, studentID); err != nil {
			return err
		}
		if room, err = s.rooms.Get(ctx, roomID); err != nil {
			return notFound(err, ErrRoomNotFound, roomID)
		}
		switch {
		case !st.IsActive:
			return ErrStudentInactive
		case st.InRoom(roomID):
			return ErrAlreadyInRoom
		case !room.IsActive:
			return fmt.Errorf("%w (room %s)", ErrRoomInactive, room.RoomNumber)
		case room.IsFull():
			return fmt.Errorf("%w (room %s, %d/%d)", ErrRoomFull, room.RoomNumber, room.CurrentOccupancy, room.Capacity)
		}

		now := s.now()
		if st.HasRoom() {
			if _, err := s.releaseRoom(ctx, &st, now); err != nil {
				return err
			}
		}
		room.CurrentOccupancy++
		if err := s.rooms.Update(ctx, room); err != nil {
			return err
		}
		id := room.ID
		st.RoomID, st.RoomNumber = &id, room.RoomNumber
		if err := s.students.Update(ctx, st); err != nil {
			return err
		}
		return s.openBooking(ctx, st, now)
	}, s.students, s.rooms, s.bookings)
	if err != nil {
		return err
	}
	metrics.RoomAssignments.WithLabelValues("assign").Inc()
	s.record(ctx, "Room", "Assign", fmt.Sprintf("Assigned %s to room %s", st.FullName(), room.RoomNumber))
	s.publish(ctx, queue.EventRoomAssigned, st, room.ID, room.RoomNumber)
	return nil
}

// UnassignRoom vacates the student's room.
func (s *StudentService) UnassignRoom(ctx context.Context, studentID int) error {
	var st model.Student
	var released *model.Room
	err := s.write(ctx, func() error {
		var err error
		if st, err = s.Get(ctx, studentID); err != nil {
			return err
		}
		if !st.HasRoom() {
			return ErrNoRoomAssigned
		}
		if released, err = s.releaseRoom(ctx, &st, s.now()); err != nil {
			return err
		}
		return s.students.Update(ctx, st)
	}, s.students, s.rooms, s.bookings)
	if err != nil {
		return err
	}
	metrics.RoomAssignments.WithLabelValues("unassign").Inc()
	s.record(ctx, "Room", "Unassign", fmt.Sprintf("Removed %s from room %s", st.FullName(), released.RoomNumber))
	s.publish(ctx, queue.EventRoomReleased, st, released.ID, released.RoomNumber)
	return nil
}

// SwapRooms exchanges the rooms of two active students. Each room loses
// one occupant and gains one, so occupancy counters are left alone; this
// also holds when only one of the two has a room.
func (s *StudentService) SwapRooms(ctx context.Context, firstID, secondID int) error {
	var a, b model.Student
	swapped := false
	err := s.write(ctx, func() error {
		var err error
		if a, err = s.Get(ctx, firstID); err != nil {
			return err
		}
		if b, err = s.Get(ctx, secondID); err != nil {
			return err
		}
		if !a.IsActive || !b.IsActive {
			return ErrStudentInactive
		}
		if sameRoom(a.RoomID, b.RoomID) {
			return nil
		}
		now := s.now()
		a.RoomID, b.RoomID = b.RoomID, a.RoomID
		a.RoomNumber, b.RoomNumber = b.RoomNumber, a.RoomNumber
		for _, st := range []model.Student{a, b} {
			if err := s.students.Update(ctx, st); err != nil {
				return err
			}
			if err := s.closeBooking(ctx, st.ID, now); err != nil {
				return err
			}
			if st.HasRoom() {
				if err := s.openBooking(ctx, st, now); err != nil {
					return err
				}
			}
		}
		swapped = true
		return nil
	}, s.students, s.bookings)
	if err != nil || !swapped {
		return err
	}
	metrics.RoomAssignments.WithLabelValues("swap").Inc()
	s.record(ctx, "Room", "Swap", fmt.Sprintf("Swapped rooms of %s and %s", a.FullName(), b.FullName()))
	for _, st := range []model.Student{a, b} {
		if st.HasRoom() {
			s.publish(ctx, queue.EventRoomAssigned, st, *st.RoomID, st.RoomNumber)
		}
	}
	return nil
}

func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.students.List(ctx)
}

func (s *StudentService) ListActive(ctx context.Context) ([]model.Student, error) {
	return filter(ctx, s.students, func(st model.Student) bool { return st.IsActive })
}

// Search matches query case-insensitively against name, registration
// number, phone, email and department of every student.
func (s *StudentService) Search(ctx context.Context, query string) ([]model.Student, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	return filter(ctx, s.students, func(st model.Student) bool {
		for _, f := range []string{st.FirstName, st.LastName, st.RegistrationNumber, st.Phone, st.Email, st.Department} {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	})
}

// ListByRoom returns the active occupants of a room.
func (s *StudentService) ListByRoom(ctx context.Context, roomID int) ([]model.Student, error) {
	return filter(ctx, s.students, func(st model.Student) bool { return st.IsActive && st.InRoom(roomID) })
}

// ListWithoutRoom returns active students awaiting a room.
func (s *StudentService) ListWithoutRoom(ctx context.Context) ([]model.Student, error) {
	return filter(ctx, s.students, func(st model.Student) bool { return st.IsActive && !st.HasRoom() })
}

func (s *StudentService) ActiveCount(ctx context.Context) (int, error) {
	list, err := s.ListActive(ctx)
	return len(list), err
}

// History returns the booking history of a student, oldest first.
func (s *StudentService) History(ctx context.Context, studentID int) ([]model.Booking, error) {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Booking
	for _, b := range all {
		if b.StudentID == studentID {
			out = append(out, b)
		}
	}
	return out, nil
}

// releaseRoom decrements the student's current room (never below zero),
// closes the current booking and clears the room fields on st. The caller
// persists st.
func (s *StudentService) releaseRoom(ctx context.Context, st *model.Student, now time.Time) (*model.Room, error) {
	roomID := *st.RoomID
	room, err := s.rooms.Get(ctx, roomID)
	switch {
	case err == nil:
		if room.CurrentOccupancy > 0 {
			room.CurrentOccupancy--
		}
		if err := s.rooms.Update(ctx, room); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		// The room record is gone; only the student side is cleaned up.
		log.Printf("students: room #%d of student #%d no longer exists", roomID, st.ID)
		room = model.Room{ID: roomID, RoomNumber: st.RoomNumber}
	default:
		return nil, err
	}
	if err := s.closeBooking(ctx, st.ID, now); err != nil {
		return nil, err
	}
	st.RoomID, st.RoomNumber = nil, ""
	return &room, nil
}

func (s *StudentService) openBooking(ctx context.Context, st model.Student, now time.Time) error {
	_, err := s.bookings.Add(ctx, model.Booking{
		StudentID:   st.ID,
		StudentName: st.FullName(),
		RoomID:      *st.RoomID,
		RoomNumber:  st.RoomNumber,
		StartDate:   now,
		IsCurrent:   true,
	})
	return err
}

func (s *StudentService) closeBooking(ctx context.Context, studentID int, now time.Time) error {
	all, err := s.bookings.List(ctx)
	if err != nil {
		return err
	}
	for _, b := range all {
		if b.StudentID == studentID && b.IsCurrent {
			end := now
			b.IsCurrent, b.EndDate = false, &end
			if err := s.bookings.Update(ctx, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *StudentService) uniqueRegistration(ctx context.Context, reg string, selfID int) error {
	all, err := s.students.List(ctx)
	if err != nil {
		return err
	}
	for _, st := range all {
		if st.ID != selfID && strings.EqualFold(st.RegistrationNumber, reg) {
			return fmt.Errorf("%w (%s)", ErrDuplicateRegistration, reg)
		}
	}
	return nil
}

func (s *StudentService) publish(ctx context.Context, kind string, st model.Student, roomID int, roomNumber string) {
	if s.events == nil {
		return
	}
	ev := queue.NewBookingEvent(kind, st.ID, st.FullName(), roomID, roomNumber, s.now())
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Printf("students: publish %s for student #%d failed: %v", kind, st.ID, err)
	}
}

func normalizeStudent(st *model.Student) {
	st.FirstName = strings.TrimSpace(st.FirstName)
	st.LastName = strings.TrimSpace(st.LastName)
	st.RegistrationNumber = strings.TrimSpace(st.RegistrationNumber)
	st.Email = strings.TrimSpace(st.Email)
	st.Phone = strings.TrimSpace(st.Phone)
}

func sameRoom(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
