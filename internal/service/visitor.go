package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/hostel-management/internal/metrics"
	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

type VisitorService struct {
	base
	visitors repository.Store[model.Visitor]
	students repository.Store[model.Student]
	seq      repository.Sequence
}

func newVisitorService(b base, visitors repository.Store[model.Visitor], students repository.Store[model.Student], seq repository.Sequence) *VisitorService {
	if seq == nil {
		seq = repository.NewCounter(PassFloorFrom(context.Background(), visitors))
	}
	return &VisitorService{base: b, visitors: visitors, students: students, seq: seq}
}

// PassFloorFrom returns the highest pass ordinal already stored, or
// PassFloor when there is none.
func PassFloorFrom(ctx context.Context, visitors repository.Store[model.Visitor]) int64 {
	all, _ := visitors.List(ctx)
	floor := int64(PassFloor)
	for _, v := range all {
		if n, ok := documentOrdinal(v.PassNumber); ok && n > floor {
			floor = n
		}
	}
	return floor
}

// CheckIn registers a visitor for an existing student and issues a pass.
func (s *VisitorService) CheckIn(ctx context.Context, v model.Visitor) (model.Visitor, error) {
	v.ID = 0
	v.VisitorName = strings.TrimSpace(v.VisitorName)
	if err := check(v); err != nil {
		return model.Visitor{}, err
	}
	st, err := s.students.Get(ctx, v.StudentID)
	if err != nil {
		return model.Visitor{}, notFound(err, ErrStudentNotFound, v.StudentID)
	}
	v.StudentName = st.FullName()
	v.Status = model.VisitorCheckedIn
	v.CheckOutTime = nil

	err = s.write(ctx, func() error {
		n, err := s.seq.Next(ctx)
		if err != nil {
			return fmt.Errorf("pass number: %w", err)
		}
		v.CheckInTime = s.now()
		v.PassNumber = documentNumber("VP", v.CheckInTime, n)
		v, err = s.visitors.Add(ctx, v)
		return err
	}, s.visitors)
	if err != nil {
		return model.Visitor{}, err
	}
	metrics.VisitorCheckIns.Inc()
	s.record(ctx, "Visitor", "Check In", fmt.Sprintf("%s visiting %s (pass %s)", v.VisitorName, v.StudentName, v.PassNumber))
	return v, nil
}

// CheckOut closes a visit. A visit can be checked out only once.
func (s *VisitorService) CheckOut(ctx context.Context, id int) (model.Visitor, error) {
	var v model.Visitor
	err := s.write(ctx, func() error {
		var err error
		if v, err = s.Get(ctx, id); err != nil {
			return err
		}
		if v.Status == model.VisitorCheckedOut {
			return fmt.Errorf("%w (pass %s)", ErrAlreadyCheckedOut, v.PassNumber)
		}
		now := s.now()
		v.CheckOutTime = &now
		v.Status = model.VisitorCheckedOut
		return s.visitors.Update(ctx, v)
	}, s.visitors)
	if err != nil {
		return model.Visitor{}, err
	}
	s.record(ctx, "Visitor", "Check Out", fmt.Sprintf("%s left (pass %s)", v.VisitorName, v.PassNumber))
	return v, nil
}

func (s *VisitorService) Get(ctx context.Context, id int) (model.Visitor, error) {
	v, err := s.visitors.Get(ctx, id)
	if err != nil {
		return model.Visitor{}, notFound(err, ErrVisitorNotFound, id)
	}
	return v, nil
}

func (s *VisitorService) List(ctx context.Context) ([]model.Visitor, error) {
	return s.visitors.List(ctx)
}

// ListActive returns visitors still on the premises.
func (s *VisitorService) ListActive(ctx context.Context) ([]model.Visitor, error) {
	return filter(ctx, s.visitors, func(v model.Visitor) bool { return v.Status == model.VisitorCheckedIn })
}

// ListByDate returns visits checked in on the day of date.
func (s *VisitorService) ListByDate(ctx context.Context, date time.Time) ([]model.Visitor, error) {
	return filter(ctx, s.visitors, func(v model.Visitor) bool { return model.SameDay(v.CheckInTime, date) })
}

func (s *VisitorService) ListByStudent(ctx context.Context, studentID int) ([]model.Visitor, error) {
	return filter(ctx, s.visitors, func(v model.Visitor) bool { return v.StudentID == studentID })
}
