package console

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iliyamo/hostel-management/internal/export"
	"github.com/iliyamo/hostel-management/internal/model"
)

func (c *Console) dashboard(ctx context.Context) error {
	s, err := c.h.Dashboard(ctx)
	if err != nil {
		return err
	}
	c.header("DASHBOARD")
	c.row("Students", fmt.Sprintf("%d active of %d", s.ActiveStudents, s.TotalStudents))
	c.row("Rooms", fmt.Sprintf("%d total, %d occupied, %d available", s.TotalRooms, s.OccupiedRooms, s.AvailableRooms))
	c.row("Beds", fmt.Sprintf("%d/%d", s.CurrentOccupancy, s.TotalCapacity))
	c.row("Occupancy", fmt.Sprintf("%s %.1f%%", bar(s.OccupancyRate), s.OccupancyRate))
	c.row("Open complaints", strconv.Itoa(s.OpenComplaints))
	c.row("Active staff", strconv.Itoa(s.ActiveStaff))
	c.row("Visitors inside", strconv.Itoa(s.ActiveVisitors))
	c.row("Pending payments", strconv.Itoa(s.PendingPayments))
	c.row("Revenue this month", money(s.MonthlyRevenue))
	c.row("Total revenue", money(s.TotalRevenue))
	c.infof("")
	c.infof("Rooms by type:")
	for _, t := range model.RoomTypes {
		c.row("  "+string(t), strconv.Itoa(s.RoomsByType[t]))
	}
	return nil
}

// ----- exports -----

func (c *Console) reportsMenu(ctx context.Context) error {
	items := make([]item, 0, len(export.Kinds)+1)
	for i, k := range export.Kinds {
		items = append(items, item{strconv.Itoa(i + 1), "Export " + k.Label(), c.exportCSV(k)})
	}
	items = append(items, item{strconv.Itoa(len(export.Kinds) + 1), "Generate Full Report", c.fullReport})
	return c.menu(ctx, "REPORTS & EXPORT", items, nil)
}

func (c *Console) exportCSV(kind export.Kind) func(context.Context) error {
	return func(ctx context.Context) error {
		snap, err := c.h.Snapshot(ctx)
		if err != nil {
			return err
		}
		path, n, err := export.WriteCSVFile(c.exportDir, kind, snap)
		if err != nil {
			return err
		}
		c.h.LogExport(ctx, kind.Label(), path)
		c.successf("%d records exported to %s", n, path)
		return nil
	}
}

func (c *Console) fullReport(ctx context.Context) error {
	snap, err := c.h.Snapshot(ctx)
	if err != nil {
		return err
	}
	path, err := export.WriteReportFile(c.exportDir, snap, displayName(c.admin))
	if err != nil {
		return err
	}
	c.h.LogExport(ctx, "Full Report", path)
	c.successf("Report written to %s", path)
	return nil
}

// ----- audit -----

func (c *Console) auditMenu(ctx context.Context) error {
	return c.menu(ctx, "AUDIT LOG", []item{
		{"1", "Recent Activity", c.recentAudit},
		{"2", "Full Audit Log", c.fullAudit},
		{"3", "Activity By Module", c.moduleAudit},
	}, nil)
}

func (c *Console) auditTable(list []model.AuditLog) {
	rows := make([][]string, 0, len(list))
	for _, a := range list {
		rows = append(rows, []string{a.Timestamp.Format("02-Jan 15:04:05"), a.Module, a.Action, a.PerformedBy, orDash(a.Details)})
	}
	c.table([]string{"TIME", "MODULE", "ACTION", "BY", "DETAILS"}, rows)
}

func (c *Console) recentAudit(ctx context.Context) error {
	c.header("RECENT ACTIVITY")
	list, err := c.h.Audit.Recent(ctx, 20)
	if err != nil {
		return err
	}
	c.auditTable(list)
	return nil
}

func (c *Console) fullAudit(ctx context.Context) error {
	c.header("AUDIT LOG")
	list, err := c.h.Audit.List(ctx)
	if err != nil {
		return err
	}
	c.auditTable(list)
	return nil
}

func (c *Console) moduleAudit(ctx context.Context) error {
	module, err := c.required("Module (Student, Room, Payment, ...)")
	if err != nil {
		return err
	}
	list, err := c.h.Audit.ByModule(ctx, module)
	if err != nil {
		return err
	}
	c.auditTable(list)
	return nil
}
