package service

import (
	"errors"
	"fmt"

	"github.com/iliyamo/hostel-management/internal/repository"
)

// Error kinds. Every error returned by a service wraps exactly one of them,
// so transports can map failures with errors.Is.
var (
	ErrNotFound     = repository.ErrNotFound
	ErrInvalidState = errors.New("invalid state")
	ErrValidation   = errors.New("validation failed")
)

var (
	ErrStudentNotFound   = kindError(ErrNotFound, "student not found")
	ErrRoomNotFound      = kindError(ErrNotFound, "room not found")
	ErrPaymentNotFound   = kindError(ErrNotFound, "payment not found")
	ErrFeeNotFound       = kindError(ErrNotFound, "fee structure not found")
	ErrComplaintNotFound = kindError(ErrNotFound, "complaint not found")
	ErrStaffNotFound     = kindError(ErrNotFound, "staff member not found")
	ErrVisitorNotFound   = kindError(ErrNotFound, "visitor not found")
	ErrMenuNotFound      = kindError(ErrNotFound, "menu item not found")
	ErrNoticeNotFound    = kindError(ErrNotFound, "notice not found")
	ErrAdminNotFound     = kindError(ErrNotFound, "admin not found")
)

var (
	ErrRoomFull               = kindError(ErrInvalidState, "room is full")
	ErrRoomOccupied           = kindError(ErrInvalidState, "cannot delete occupied room")
	ErrRoomInactive           = kindError(ErrInvalidState, "room is not active")
	ErrCapacityBelowOccupancy = kindError(ErrInvalidState, "capacity below current occupancy")
	ErrNoRoomAssigned         = kindError(ErrInvalidState, "student has no room assigned")
	ErrAlreadyInRoom          = kindError(ErrInvalidState, "student already occupies this room")
	ErrStudentInactive        = kindError(ErrInvalidState, "student is not active")
	ErrStaffInactive          = kindError(ErrInvalidState, "staff member is not active")
	ErrAlreadyCheckedOut      = kindError(ErrInvalidState, "visitor already checked out")
	ErrIncorrectPassword      = kindError(ErrInvalidState, "current password is incorrect")
	ErrDuplicateRegistration  = kindError(ErrInvalidState, "registration number already exists")
	ErrDuplicateRoomNumber    = kindError(ErrInvalidState, "room number already exists")
	ErrDuplicateUsername      = kindError(ErrInvalidState, "username already exists")
	ErrInvalidCredentials     = kindError(ErrInvalidState, "invalid username or password")
	ErrInvalidRefreshToken    = kindError(ErrInvalidState, "invalid or expired refresh token")
	ErrWeakPassword           = kindError(ErrValidation, "password needs at least 6 characters, one uppercase letter and one digit")
)

// kindErr carries its own message and unwraps to its kind.
type kindErr struct {
	kind error
	msg  string
}

func (e *kindErr) Error() string { return e.msg }
func (e *kindErr) Unwrap() error { return e.kind }

func kindError(kind error, msg string) error { return &kindErr{kind: kind, msg: msg} }

// notFound translates a store miss into the entity specific sentinel.
func notFound(err error, sentinel error, id int) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%w (id %d)", sentinel, id)
	}
	return err
}
