package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iliyamo/hostel-management/internal/model"
)

func (c *Console) paymentMenu(ctx context.Context) error {
	return c.menu(ctx, "FEE & PAYMENT MANAGEMENT", []item{
		{"1", "Record Payment", c.recordPayment},
		{"2", "View All Payments", c.listPayments},
		{"3", "Student Payment History", c.studentPayments},
		{"4", "Payments By Month", c.paymentsByMonth},
		{"5", "View Defaulters", c.defaulters},
		{"6", "Update Payment Status", c.updatePaymentStatus},
		{"7", "Print Receipt", c.printReceipt},
		{"8", "Revenue Report", c.revenueReport},
		{"9", "Fee Structures", c.feeMenu},
	}, nil)
}

func (c *Console) paymentTable(list []model.Payment) {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			strconv.Itoa(p.ID), p.ReceiptNumber, p.StudentName, money(p.Amount),
			fmt.Sprintf("%02d/%d", p.Month, p.Year), string(p.Method), string(p.Status),
		})
	}
	c.table([]string{"ID", "RECEIPT", "STUDENT", "AMOUNT", "PERIOD", "METHOD", "STATUS"}, rows)
}

func (c *Console) readPeriod() (int, int, error) {
	now := c.now()
	month, err := c.keep("Month", strconv.Itoa(int(now.Month())))
	if err != nil {
		return 0, 0, err
	}
	year, err := c.keep("Year", strconv.Itoa(now.Year()))
	if err != nil {
		return 0, 0, err
	}
	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return 0, 0, errInput("month must be between 1 and 12")
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return 0, 0, errInput("year must be a number")
	}
	return m, y, nil
}

func (c *Console) recordPayment(ctx context.Context) error {
	c.header("RECORD PAYMENT")
	var p model.Payment
	var err error
	if p.StudentID, err = c.readID("Student ID"); err != nil {
		return err
	}
	if p.Amount, err = c.readAmount("Amount"); err != nil {
		return err
	}
	if p.Month, p.Year, err = c.readPeriod(); err != nil {
		return err
	}
	if p.Method, err = choose(c, "Payment method", model.PaymentMethods); err != nil {
		return err
	}
	if p.Status, err = choose(c, "Status", model.PaymentStatuses); err != nil {
		return err
	}
	if p.Remarks, err = c.read("Remarks"); err != nil {
		return err
	}
	p, err = c.h.Payments.Record(ctx, p)
	if err != nil {
		return err
	}
	c.successf("Payment recorded. Receipt %s.", p.ReceiptNumber)
	return nil
}

func (c *Console) listPayments(ctx context.Context) error {
	c.header("ALL PAYMENTS")
	list, err := c.h.Payments.List(ctx)
	if err != nil {
		return err
	}
	c.paymentTable(list)
	return nil
}

func (c *Console) studentPayments(ctx context.Context) error {
	id, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	list, err := c.h.Payments.ListForStudent(ctx, id)
	if err != nil {
		return err
	}
	c.paymentTable(list)
	return nil
}

func (c *Console) paymentsByMonth(ctx context.Context) error {
	m, y, err := c.readPeriod()
	if err != nil {
		return err
	}
	list, err := c.h.Payments.ListByMonth(ctx, m, y)
	if err != nil {
		return err
	}
	c.header(fmt.Sprintf("PAYMENTS FOR %02d/%d", m, y))
	c.paymentTable(list)
	return nil
}

func (c *Console) defaulters(ctx context.Context) error {
	c.header("DEFAULTERS")
	list, err := c.h.Payments.Defaulters(ctx)
	if err != nil {
		return err
	}
	c.paymentTable(list)
	return nil
}

func (c *Console) updatePaymentStatus(ctx context.Context) error {
	id, err := c.readID("Payment ID")
	if err != nil {
		return err
	}
	status, err := choose(c, "New status", model.PaymentStatuses)
	if err != nil {
		return err
	}
	p, err := c.h.Payments.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	c.successf("Payment %s is now %s.", p.ReceiptNumber, p.Status)
	return nil
}

func (c *Console) printReceipt(ctx context.Context) error {
	id, err := c.readID("Payment ID")
	if err != nil {
		return err
	}
	receipt, err := c.h.Payments.GenerateReceipt(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, receipt)
	return nil
}

func (c *Console) revenueReport(ctx context.Context) error {
	m, y, err := c.readPeriod()
	if err != nil {
		return err
	}
	total, err := c.h.Payments.TotalRevenue(ctx)
	if err != nil {
		return err
	}
	month, err := c.h.Payments.RevenueByMonth(ctx, m, y)
	if err != nil {
		return err
	}
	pending, err := c.h.Payments.ListPending(ctx)
	if err != nil {
		return err
	}
	var outstanding int64
	for _, p := range pending {
		outstanding += p.Amount
	}
	c.header("REVENUE REPORT")
	c.row("Total revenue", money(total))
	c.row(fmt.Sprintf("Revenue %02d/%d", m, y), money(month))
	c.row("Pending payments", strconv.Itoa(len(pending)))
	c.row("Pending amount", money(outstanding))
	return nil
}

// ----- fee structures -----

func (c *Console) feeMenu(ctx context.Context) error {
	return c.menu(ctx, "FEE STRUCTURES", []item{
		{"1", "View Fee Structures", c.listFees},
		{"2", "Add Fee Structure", c.addFee},
		{"3", "Update Fee Structure", c.updateFee},
		{"4", "Generate Monthly Fees", c.generateFees},
		{"5", "Mark Overdue Payments", c.markOverdue},
	}, nil)
}

func (c *Console) listFees(ctx context.Context) error {
	c.header("FEE STRUCTURES")
	list, err := c.h.Fees.List(ctx)
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(list))
	for _, f := range list {
		rows = append(rows, []string{
			strconv.Itoa(f.ID), string(f.RoomType), money(f.MonthlyRent), money(f.MessFee),
			money(f.UtilityCharges), money(f.LaundryFee), money(f.TotalMonthly()), yesNo(f.IsActive),
		})
	}
	c.table([]string{"ID", "TYPE", "RENT", "MESS", "UTILITY", "LAUNDRY", "MONTHLY", "ACTIVE"}, rows)
	return nil
}

func (c *Console) feeAmounts(f *model.FeeStructure) error {
	for _, a := range []struct {
		label string
		dst   *int64
	}{
		{"Monthly rent", &f.MonthlyRent},
		{"Mess fee", &f.MessFee},
		{"Utility charges", &f.UtilityCharges},
		{"Security deposit", &f.SecurityDeposit},
		{"Laundry fee", &f.LaundryFee},
	} {
		s, err := c.keep(a.label, strconv.FormatInt(*a.dst, 10))
		if err != nil {
			return err
		}
		if *a.dst, err = strconv.ParseInt(s, 10, 64); err != nil {
			return errInput("%s must be a whole amount", a.label)
		}
	}
	return nil
}

func (c *Console) addFee(ctx context.Context) error {
	var f model.FeeStructure
	var err error
	if f.RoomType, err = choose(c, "Room type", model.RoomTypes); err != nil {
		return err
	}
	if err := c.feeAmounts(&f); err != nil {
		return err
	}
	if f.Description, err = c.read("Description"); err != nil {
		return err
	}
	f, err = c.h.Fees.Create(ctx, f)
	if err != nil {
		return err
	}
	c.successf("Fee structure for %s rooms saved: %s per month.", f.RoomType, money(f.TotalMonthly()))
	return nil
}

func (c *Console) updateFee(ctx context.Context) error {
	id, err := c.readID("Fee structure ID")
	if err != nil {
		return err
	}
	f, err := c.h.Fees.Get(ctx, id)
	if err != nil {
		return err
	}
	c.infof("Press Enter to keep the current value.")
	if err := c.feeAmounts(&f); err != nil {
		return err
	}
	if f.IsActive, err = c.confirm("Active?"); err != nil {
		return err
	}
	if _, err := c.h.Fees.Update(ctx, f); err != nil {
		return err
	}
	c.successf("Fee structure updated.")
	return nil
}

func (c *Console) generateFees(ctx context.Context) error {
	m, y, err := c.readPeriod()
	if err != nil {
		return err
	}
	n, err := c.h.Fees.GenerateMonthlyFees(ctx, m, y)
	if err != nil {
		return err
	}
	c.successf("%d pending payments raised for %02d/%d.", n, m, y)
	return nil
}

func (c *Console) markOverdue(ctx context.Context) error {
	n, err := c.h.Payments.MarkOverdue(ctx, c.now())
	if err != nil {
		return err
	}
	c.successf("%d payments marked overdue.", n)
	return nil
}

// ----- complaints -----

func (c *Console) complaintMenu(ctx context.Context) error {
	return c.menu(ctx, "COMPLAINT MANAGEMENT", []item{
		{"1", "Register Complaint", c.newComplaint},
		{"2", "View All Complaints", c.listComplaints},
		{"3", "View Open Complaints", c.openComplaints},
		{"4", "Complaints By Priority", c.complaintsByPriority},
		{"5", "Student Complaints", c.studentComplaints},
		{"6", "View Complaint Details", c.complaintDetails},
		{"7", "Update Status", c.updateComplaintStatus},
		{"8", "Assign Staff", c.assignComplaint},
	}, nil)
}

func (c *Console) complaintTable(list []model.Complaint) {
	rows := make([][]string, 0, len(list))
	for _, cp := range list {
		rows = append(rows, []string{
			strconv.Itoa(cp.ID), cp.Title, cp.StudentName, string(cp.Category),
			string(cp.Priority), string(cp.Status), orDash(cp.AssignedStaffName),
		})
	}
	c.table([]string{"ID", "TITLE", "STUDENT", "CATEGORY", "PRIORITY", "STATUS", "STAFF"}, rows)
}

func (c *Console) newComplaint(ctx context.Context) error {
	c.header("REGISTER COMPLAINT")
	var cp model.Complaint
	var err error
	if cp.StudentID, err = c.readID("Student ID"); err != nil {
		return err
	}
	if cp.Title, err = c.required("Title"); err != nil {
		return err
	}
	if cp.Description, err = c.required("Description"); err != nil {
		return err
	}
	if cp.Category, err = choose(c, "Category", model.ComplaintCategories); err != nil {
		return err
	}
	if cp.Priority, err = choose(c, "Priority", model.ComplaintPriorities); err != nil {
		return err
	}
	cp, err = c.h.Complaints.Create(ctx, cp)
	if err != nil {
		return err
	}
	c.successf("Complaint #%d registered.", cp.ID)
	return nil
}

func (c *Console) listComplaints(ctx context.Context) error {
	c.header("ALL COMPLAINTS")
	list, err := c.h.Complaints.List(ctx)
	if err != nil {
		return err
	}
	c.complaintTable(list)
	return nil
}

func (c *Console) openComplaints(ctx context.Context) error {
	c.header("OPEN COMPLAINTS")
	list, err := c.h.Complaints.ListOpen(ctx)
	if err != nil {
		return err
	}
	c.complaintTable(list)
	return nil
}

func (c *Console) complaintsByPriority(ctx context.Context) error {
	p, err := choose(c, "Priority", model.ComplaintPriorities)
	if err != nil {
		return err
	}
	list, err := c.h.Complaints.ListByPriority(ctx, p)
	if err != nil {
		return err
	}
	c.complaintTable(list)
	return nil
}

func (c *Console) studentComplaints(ctx context.Context) error {
	id, err := c.readID("Student ID")
	if err != nil {
		return err
	}
	list, err := c.h.Complaints.ListByStudent(ctx, id)
	if err != nil {
		return err
	}
	c.complaintTable(list)
	return nil
}

func (c *Console) complaintDetails(ctx context.Context) error {
	id, err := c.readID("Complaint ID")
	if err != nil {
		return err
	}
	cp, err := c.h.Complaints.Get(ctx, id)
	if err != nil {
		return err
	}
	c.header(fmt.Sprintf("COMPLAINT #%d", cp.ID))
	c.row("Title", cp.Title)
	c.row("Student", cp.StudentName)
	c.row("Description", cp.Description)
	c.row("Category", string(cp.Category))
	c.row("Priority", string(cp.Priority))
	c.row("Status", string(cp.Status))
	c.row("Created", day(cp.CreatedAt))
	c.row("Assigned to", orDash(cp.AssignedStaffName))
	if cp.ResolvedAt != nil {
		c.row("Resolved", day(*cp.ResolvedAt))
	}
	c.row("Resolution notes", orDash(cp.ResolutionNotes))
	return nil
}

func (c *Console) updateComplaintStatus(ctx context.Context) error {
	id, err := c.readID("Complaint ID")
	if err != nil {
		return err
	}
	status, err := choose(c, "New status", model.ComplaintStatuses)
	if err != nil {
		return err
	}
	notes, err := c.read("Notes")
	if err != nil {
		return err
	}
	cp, err := c.h.Complaints.UpdateStatus(ctx, id, status, notes)
	if err != nil {
		return err
	}
	c.successf("Complaint #%d is now %s.", cp.ID, cp.Status)
	return nil
}

func (c *Console) assignComplaint(ctx context.Context) error {
	id, err := c.readID("Complaint ID")
	if err != nil {
		return err
	}
	staff, err := c.h.Staff.ListActive(ctx)
	if err != nil {
		return err
	}
	c.staffTable(staff)
	sid, err := c.readID("Staff ID")
	if err != nil {
		return err
	}
	cp, err := c.h.Complaints.Assign(ctx, id, sid)
	if err != nil {
		return err
	}
	c.successf("Complaint #%d assigned to %s.", cp.ID, cp.AssignedStaffName)
	return nil
}
