package service

import (
	"context"
	"fmt"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

type AttendanceService struct {
	base
	marks    repository.Store[model.Attendance]
	students repository.Store[model.Student]
}

// AttendanceStats counts the marks of one day by status.
type AttendanceStats struct {
	Date    time.Time `json:"date"`
	Present int       `json:"present"`
	Absent  int       `json:"absent"`
	Leave   int       `json:"leave"`
	Late    int       `json:"late"`
}

// Mark records an attendance mark. The date is truncated to the day; a
// zero date means today.
func (s *AttendanceService) Mark(ctx context.Context, a model.Attendance) (model.Attendance, error) {
	a.ID = 0
	if a.Date.IsZero() {
		a.Date = s.now()
	}
	a.Date = model.Day(a.Date)
	if err := check(a); err != nil {
		return model.Attendance{}, err
	}
	st, err := s.students.Get(ctx, a.StudentID)
	if err != nil {
		return model.Attendance{}, notFound(err, ErrStudentNotFound, a.StudentID)
	}
	a.StudentName = st.FullName()
	err = s.write(ctx, func() error {
		var err error
		a, err = s.marks.Add(ctx, a)
		return err
	}, s.marks)
	if err != nil {
		return model.Attendance{}, err
	}
	s.record(ctx, "Attendance", "Mark", fmt.Sprintf("%s %s on %s", a.StudentName, a.Status, a.Date.Format("2006-01-02")))
	return a, nil
}

func (s *AttendanceService) ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error) {
	return filter(ctx, s.marks, func(a model.Attendance) bool { return model.SameDay(a.Date, date) })
}

func (s *AttendanceService) ListByStudent(ctx context.Context, studentID int) ([]model.Attendance, error) {
	return filter(ctx, s.marks, func(a model.Attendance) bool { return a.StudentID == studentID })
}

// StatsForDate counts the marks of one day.
func (s *AttendanceService) StatsForDate(ctx context.Context, date time.Time) (AttendanceStats, error) {
	marks, err := s.ListByDate(ctx, date)
	if err != nil {
		return AttendanceStats{}, err
	}
	st := AttendanceStats{Date: model.Day(date)}
	for _, a := range marks {
		switch a.Status {
		case model.AttendancePresent:
			st.Present++
		case model.AttendanceAbsent:
			st.Absent++
		case model.AttendanceLeave:
			st.Leave++
		case model.AttendanceLate:
			st.Late++
		}
	}
	return st, nil
}

// Percentage returns the share of Present marks of a student, 0 when the
// student has none.
func (s *AttendanceService) Percentage(ctx context.Context, studentID int) (float64, error) {
	marks, err := s.ListByStudent(ctx, studentID)
	if err != nil || len(marks) == 0 {
		return 0, err
	}
	present := 0
	for _, a := range marks {
		if a.Status == model.AttendancePresent {
			present++
		}
	}
	return float64(present) / float64(len(marks)) * 100, nil
}
