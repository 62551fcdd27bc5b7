package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

type StaffService struct {
	base
	staff repository.Store[model.Staff]
}

// Add hires a staff member. The join date is stamped now and the shift
// defaults to "Day".
func (s *StaffService) Add(ctx context.Context, m model.Staff) (model.Staff, error) {
	m.ID = 0
	m.FullName = strings.TrimSpace(m.FullName)
	if m.Shift == "" {
		m.Shift = "Day"
	}
	m.JoinDate = s.now()
	m.IsActive = true
	if err := check(m); err != nil {
		return model.Staff{}, err
	}
	err := s.write(ctx, func() error {
		var err error
		m, err = s.staff.Add(ctx, m)
		return err
	}, s.staff)
	if err != nil {
		return model.Staff{}, err
	}
	s.record(ctx, "Staff", "Add", fmt.Sprintf("%s joined as %s", m.FullName, m.Role))
	return m, nil
}

func (s *StaffService) Get(ctx context.Context, id int) (model.Staff, error) {
	m, err := s.staff.Get(ctx, id)
	if err != nil {
		return model.Staff{}, notFound(err, ErrStaffNotFound, id)
	}
	return m, nil
}

// Update replaces a staff member's details; join date and active flag are
// kept.
func (s *StaffService) Update(ctx context.Context, m model.Staff) (model.Staff, error) {
	m.FullName = strings.TrimSpace(m.FullName)
	err := s.write(ctx, func() error {
		cur, err := s.Get(ctx, m.ID)
		if err != nil {
			return err
		}
		m.JoinDate, m.IsActive = cur.JoinDate, cur.IsActive
		if m.Shift == "" {
			m.Shift = cur.Shift
		}
		if err := check(m); err != nil {
			return err
		}
		return s.staff.Update(ctx, m)
	}, s.staff)
	if err != nil {
		return model.Staff{}, err
	}
	s.record(ctx, "Staff", "Update", fmt.Sprintf("Updated %s (#%d)", m.FullName, m.ID))
	return m, nil
}

func (s *StaffService) Deactivate(ctx context.Context, id int) error {
	var m model.Staff
	err := s.write(ctx, func() error {
		var err error
		if m, err = s.Get(ctx, id); err != nil {
			return err
		}
		m.IsActive = false
		return s.staff.Update(ctx, m)
	}, s.staff)
	if err != nil {
		return err
	}
	s.record(ctx, "Staff", "Deactivate", fmt.Sprintf("Deactivated %s (#%d)", m.FullName, m.ID))
	return nil
}

func (s *StaffService) List(ctx context.Context) ([]model.Staff, error) { return s.staff.List(ctx) }

func (s *StaffService) ListActive(ctx context.Context) ([]model.Staff, error) {
	return filter(ctx, s.staff, func(m model.Staff) bool { return m.IsActive })
}

// ListByRole returns active staff with the given role.
func (s *StaffService) ListByRole(ctx context.Context, role model.StaffRole) ([]model.Staff, error) {
	return filter(ctx, s.staff, func(m model.Staff) bool { return m.IsActive && m.Role == role })
}

func (s *StaffService) ActiveCount(ctx context.Context) (int, error) {
	list, err := s.ListActive(ctx)
	return len(list), err
}

// MonthlyPayroll sums the salaries of active staff.
func (s *StaffService) MonthlyPayroll(ctx context.Context) (int64, error) {
	list, err := s.ListActive(ctx)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, m := range list {
		total += m.Salary
	}
	return total, nil
}
