// Package service implements the hostel domain on top of the record
// stores: student residency, rooms, finance, complaints, staff, visitors,
// attendance, mess, notices, auditing and admin accounts.
//
// Services are safe for concurrent use. Every mutation runs under one
// shared lock inside a repository.Unit, so operations spanning several
// stores (room assignment in particular) are all-or-nothing.
package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/queue"
	"github.com/iliyamo/hostel-management/internal/repository"
)

// Stores is the set of record stores backing the services.
type Stores struct {
	Students   repository.Store[model.Student]
	Rooms      repository.Store[model.Room]
	Bookings   repository.Store[model.Booking]
	Payments   repository.Store[model.Payment]
	Fees       repository.Store[model.FeeStructure]
	Complaints repository.Store[model.Complaint]
	Staff      repository.Store[model.Staff]
	Visitors   repository.Store[model.Visitor]
	Attendance repository.Store[model.Attendance]
	Menus      repository.Store[model.MessMenu]
	Notices    repository.Store[model.Notice]
	Audit      repository.Store[model.AuditLog]
	Admins     repository.Store[model.Admin]
	Tokens     repository.Store[model.RefreshToken]
}

// MemoryStores returns stores that live only in memory.
func MemoryStores() Stores {
	return Stores{
		Students:   repository.NewMemory[model.Student](),
		Rooms:      repository.NewMemory[model.Room](),
		Bookings:   repository.NewMemory[model.Booking](),
		Payments:   repository.NewMemory[model.Payment](),
		Fees:       repository.NewMemory[model.FeeStructure](),
		Complaints: repository.NewMemory[model.Complaint](),
		Staff:      repository.NewMemory[model.Staff](),
		Visitors:   repository.NewMemory[model.Visitor](),
		Attendance: repository.NewMemory[model.Attendance](),
		Menus:      repository.NewMemory[model.MessMenu](),
		Notices:    repository.NewMemory[model.Notice](),
		Audit:      repository.NewMemory[model.AuditLog](),
		Admins:     repository.NewMemory[model.Admin](),
		Tokens:     repository.NewMemory[model.RefreshToken](),
	}
}

// Options tune the services. Zero values are usable.
type Options struct {
	// Events receives booking events; nil disables publishing.
	Events queue.Publisher
	// ReceiptSeq and PassSeq number receipts and visitor passes. When nil
	// an in-process counter is derived from the stored documents.
	ReceiptSeq repository.Sequence
	PassSeq    repository.Sequence
	BcryptCost int
	// Now overrides the clock.
	Now func() time.Time
}

// Hostel bundles every service over one set of stores.
type Hostel struct {
	Students   *StudentService
	Rooms      *RoomService
	Payments   *PaymentService
	Fees       *FeeService
	Complaints *ComplaintService
	Staff      *StaffService
	Visitors   *VisitorService
	Attendance *AttendanceService
	Mess       *MessService
	Notices    *NoticeService
	Audit      *AuditService
	Admins     *AdminService

	stores Stores
	now    func() time.Time
}

func New(st Stores, opts Options) *Hostel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	audit := &AuditService{logs: st.Audit, now: now}
	b := base{mu: &sync.Mutex{}, audit: audit, now: now}

	h := &Hostel{stores: st, now: now, Audit: audit}
	h.Students = &StudentService{base: b, students: st.Students, rooms: st.Rooms, bookings: st.Bookings, events: opts.Events}
	h.Rooms = &RoomService{base: b, rooms: st.Rooms, students: st.Students}
	h.Payments = newPaymentService(b, st.Payments, st.Students, opts.ReceiptSeq)
	h.Fees = &FeeService{base: b, fees: st.Fees, payments: h.Payments, students: st.Students, rooms: st.Rooms}
	h.Staff = &StaffService{base: b, staff: st.Staff}
	h.Complaints = &ComplaintService{base: b, complaints: st.Complaints, students: st.Students, staff: st.Staff}
	h.Visitors = newVisitorService(b, st.Visitors, st.Students, opts.PassSeq)
	h.Attendance = &AttendanceService{base: b, marks: st.Attendance, students: st.Students}
	h.Mess = &MessService{base: b, menus: st.Menus}
	h.Notices = &NoticeService{base: b, notices: st.Notices}
	h.Admins = &AdminService{base: b, admins: st.Admins, tokens: st.Tokens, cost: opts.BcryptCost}
	return h
}

// base carries what every service shares: the write lock, the audit
// trail and the clock.
type base struct {
	mu    *sync.Mutex
	audit *AuditService
	now   func() time.Time
}

// write runs fn under the shared lock and makes the touched stores durable
// together. A failing fn leaves every store as it was.
func (b base) write(ctx context.Context, fn func() error, parts ...repository.Participant) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := repository.Begin(parts...)
	if err := fn(); err != nil {
		u.Rollback()
		return err
	}
	return u.Commit(ctx)
}

func logf(format string, args ...any) { log.Printf(format, args...) }

// record writes an audit entry. Audit failures never fail the action
// being audited.
func (b base) record(ctx context.Context, module, action, details string) {
	if b.audit == nil {
		return
	}
	if err := b.audit.Log(ctx, module, action, ActorFrom(ctx), details); err != nil {
		log.Printf("audit: %s/%s not recorded: %v", module, action, err)
	}
}

// filter returns the records of store accepted by keep, in store order.
func filter[T model.Record[T]](ctx context.Context, store repository.Store[T], keep func(T) bool) ([]T, error) {
	all, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(all))
	for _, it := range all {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out, nil
}
