package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/repository"
)

// ComplaintService tracks complaints. Status changes are not restricted to
// a workflow; only the resolution timestamp follows the status.
type ComplaintService struct {
	base
	complaints repository.Store[model.Complaint]
	students   repository.Store[model.Student]
	staff      repository.Store[model.Staff]
}

// Create files an Open complaint for an existing student.
func (s *ComplaintService) Create(ctx context.Context, c model.Complaint) (model.Complaint, error) {
	c.ID = 0
	c.Title = strings.TrimSpace(c.Title)
	if c.Priority == "" {
		c.Priority = model.PriorityMedium
	}
	if c.Category == "" {
		c.Category = model.CategoryOther
	}
	if err := check(c); err != nil {
		return model.Complaint{}, err
	}
	st, err := s.students.Get(ctx, c.StudentID)
	if err != nil {
		return model.Complaint{}, notFound(err, ErrStudentNotFound, c.StudentID)
	}
	c.StudentName = st.FullName()
	c.CreatedAt = s.now()
	c.Status = model.ComplaintOpen
	c.ResolvedAt, c.AssignedStaffID, c.AssignedStaffName, c.ResolutionNotes = nil, nil, "", ""

	err = s.write(ctx, func() error {
		var err error
		c, err = s.complaints.Add(ctx, c)
		return err
	}, s.complaints)
	if err != nil {
		return model.Complaint{}, err
	}
	s.record(ctx, "Complaint", "Create", fmt.Sprintf("#%d %q by %s (%s, %s)", c.ID, c.Title, c.StudentName, c.Category, c.Priority))
	return c, nil
}

func (s *ComplaintService) Get(ctx context.Context, id int) (model.Complaint, error) {
	c, err := s.complaints.Get(ctx, id)
	if err != nil {
		return model.Complaint{}, notFound(err, ErrComplaintNotFound, id)
	}
	return c, nil
}

// UpdateStatus sets the status. Resolved and Closed stamp the resolution
// time, any other status clears it. Non-empty notes replace the
// resolution notes.
func (s *ComplaintService) UpdateStatus(ctx context.Context, id int, status model.ComplaintStatus, notes string) (model.Complaint, error) {
	if !status.Valid() {
		return model.Complaint{}, invalid("unknown complaint status %q", status)
	}
	var c model.Complaint
	err := s.write(ctx, func() error {
		var err error
		if c, err = s.Get(ctx, id); err != nil {
			return err
		}
		c.Status = status
		if status.Finished() {
			now := s.now()
			c.ResolvedAt = &now
		} else {
			c.ResolvedAt = nil
		}
		if n := strings.TrimSpace(notes); n != "" {
			c.ResolutionNotes = n
		}
		return s.complaints.Update(ctx, c)
	}, s.complaints)
	if err != nil {
		return model.Complaint{}, err
	}
	s.record(ctx, "Complaint", "Status", fmt.Sprintf("#%d set to %s", c.ID, status))
	return c, nil
}

// Assign hands the complaint to a staff member and moves it to
// InProgress, whatever its previous status.
func (s *ComplaintService) Assign(ctx context.Context, id, staffID int) (model.Complaint, error) {
	var c model.Complaint
	var member model.Staff
	err := s.write(ctx, func() error {
		var err error
		if c, err = s.Get(ctx, id); err != nil {
			return err
		}
		if member, err = s.staff.Get(ctx, staffID); err != nil {
			return notFound(err, ErrStaffNotFound, staffID)
		}
		if !member.IsActive {
			return ErrStaffInactive
		}
		sid := member.ID
		c.AssignedStaffID, c.AssignedStaffName = &sid, member.FullName
		c.Status = model.ComplaintInProgress
		c.ResolvedAt = nil
		return s.complaints.Update(ctx, c)
	}, s.complaints)
	if err != nil {
		return model.Complaint{}, err
	}
	s.record(ctx, "Complaint", "Assign", fmt.Sprintf("#%d assigned to %s", c.ID, member.FullName))
	return c, nil
}

func (s *ComplaintService) List(ctx context.Context) ([]model.Complaint, error) {
	return s.complaints.List(ctx)
}

// ListOpen returns complaints that are Open or InProgress.
func (s *ComplaintService) ListOpen(ctx context.Context) ([]model.Complaint, error) {
	return filter(ctx, s.complaints, model.Complaint.IsOpen)
}

func (s *ComplaintService) ListByStudent(ctx context.Context, studentID int) ([]model.Complaint, error) {
	return filter(ctx, s.complaints, func(c model.Complaint) bool { return c.StudentID == studentID })
}

func (s *ComplaintService) ListByPriority(ctx context.Context, p model.ComplaintPriority) ([]model.Complaint, error) {
	return filter(ctx, s.complaints, func(c model.Complaint) bool { return c.Priority == p })
}

func (s *ComplaintService) OpenCount(ctx context.Context) (int, error) {
	open, err := s.ListOpen(ctx)
	return len(open), err
}

