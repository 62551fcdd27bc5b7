// Package console is the interactive operator interface. Menus are numbered,
// 0 goes back, and every action runs through the same services as the HTTP
// API, so audit entries carry the signed-in operator.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/iliyamo/hostel-management/internal/model"
	"github.com/iliyamo/hostel-management/internal/service"
)

// maxLoginAttempts is the number of tries before the console exits.
const maxLoginAttempts = 3

// ErrLoginFailed is returned by Run after too many failed logins.
var ErrLoginFailed = errors.New("too many failed login attempts")

type Console struct {
	h         *service.Hostel
	in        *bufio.Scanner
	out       io.Writer
	exportDir string
	admin     model.Admin
	now       func() time.Time
}

func New(h *service.Hostel, in io.Reader, out io.Writer, exportDir string) *Console {
	return &Console{h: h, in: bufio.NewScanner(in), out: out, exportDir: exportDir, now: time.Now}
}

// Run logs an operator in and serves the main menu until they exit or the
// input ends.
func (c *Console) Run(ctx context.Context) error {
	c.header("HOSTEL MANAGEMENT SYSTEM")
	if err := c.login(ctx); err != nil {
		return err
	}
	ctx = service.WithActor(ctx, c.admin.Username)

	err := c.menu(ctx, "MAIN MENU", []item{
		{"1", "Dashboard & Analytics", c.dashboard},
		{"2", "Student Management", c.studentMenu},
		{"3", "Room Management", c.roomMenu},
		{"4", "Fee & Payment Management", c.paymentMenu},
		{"5", "Complaint Management", c.complaintMenu},
		{"6", "Staff Management", c.staffMenu},
		{"7", "Visitor Log", c.visitorMenu},
		{"8", "Attendance Tracking", c.attendanceMenu},
		{"9", "Mess Menu Management", c.messMenu},
		{"10", "Notice Board", c.noticeMenu},
		{"11", "Reports & Export", c.reportsMenu},
		{"12", "Audit Log", c.auditMenu},
		{"13", "Admin Settings", c.settingsMenu},
	}, c.confirmExit)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (c *Console) login(ctx context.Context) error {
	for attempt := 1; attempt <= maxLoginAttempts; attempt++ {
		c.infof("Attempt %d/%d", attempt, maxLoginAttempts)
		user, err := c.read("Username")
		if err != nil {
			return err
		}
		pass, err := c.read("Password")
		if err != nil {
			return err
		}
		a, err := c.h.Admins.Authenticate(ctx, user, pass)
		if err == nil {
			c.admin = a
			c.successf("Welcome back, %s!", displayName(a))
			return nil
		}
		if !errors.Is(err, service.ErrInvalidCredentials) {
			return err
		}
		c.errorf("Invalid username or password!")
	}
	c.errorf("Too many failed attempts. Exiting...")
	return ErrLoginFailed
}

func displayName(a model.Admin) string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Username
}

// confirmExit runs on "0" in the main menu and reports whether to leave.
func (c *Console) confirmExit(ctx context.Context) (bool, error) {
	ok, err := c.confirm("Are you sure you want to exit?")
	if err != nil || !ok {
		return false, err
	}
	if err := c.h.Audit.Log(ctx, "Auth", "Logout", c.admin.Username, "User logged out"); err != nil {
		c.errorf("%v", err)
	}
	c.header("GOODBYE!")
	c.infof("Thank you for using Hostel Management System!")
	return true, nil
}

// item is one numbered menu entry.
type item struct {
	key   string
	label string
	run   func(context.Context) error
}

// menu shows items until "0" is chosen. onBack, when set, must agree before
// the menu is left. Errors of an action are printed and the menu is shown
// again; only a closed input ends the loop early.
func (c *Console) menu(ctx context.Context, title string, items []item, onBack func(context.Context) (bool, error)) error {
	back := "Back to Main Menu"
	if onBack != nil {
		back = "Exit System"
	}
	for {
		c.header(title)
		for _, it := range items {
			c.infof("%3s. %s", it.key, it.label)
		}
		c.infof("%3s. %s", "0", back)

		choice, err := c.read("Select option")
		if err != nil {
			return err
		}
		if choice == "0" {
			if onBack == nil {
				return nil
			}
			leave, err := onBack(ctx)
			if err != nil {
				return err
			}
			if leave {
				return nil
			}
			continue
		}
		if err := c.dispatch(ctx, items, choice); err != nil {
			return err
		}
	}
}

// dispatch runs the chosen action. It returns only fatal errors.
func (c *Console) dispatch(ctx context.Context, items []item, choice string) error {
	for _, it := range items {
		if it.key != choice {
			continue
		}
		err := it.run(ctx)
		switch {
		case err == nil, errors.Is(err, errCancelled):
			return nil
		case errors.Is(err, io.EOF):
			return err
		case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrValidation):
			c.errorf("%v", err)
		default:
			c.errorf("operation failed: %v", err)
		}
		return nil
	}
	c.errorf("Invalid option!")
	return nil
}

// ----- admin settings -----

func (c *Console) settingsMenu(ctx context.Context) error {
	return c.menu(ctx, "ADMIN SETTINGS", []item{
		{"1", "Change Password", c.changePassword},
		{"2", "View System Info", c.systemInfo},
	}, nil)
}

func (c *Console) changePassword(ctx context.Context) error {
	old, err := c.required("Current password")
	if err != nil {
		return err
	}
	next, err := c.required("New password (6+ chars, an uppercase letter and a digit)")
	if err != nil {
		return err
	}
	again, err := c.read("Confirm new password")
	if err != nil {
		return err
	}
	if next != again {
		return errInput("passwords do not match")
	}
	if err := c.h.Admins.ChangePassword(ctx, c.admin.ID, old, next); err != nil {
		return err
	}
	c.successf("Password changed.")
	return nil
}

func (c *Console) systemInfo(ctx context.Context) error {
	c.header("SYSTEM INFO")
	c.row("Signed in as", fmt.Sprintf("%s (%s)", displayName(c.admin), c.admin.Role))
	c.row("Export directory", c.exportDir)
	c.row("Go runtime", runtime.Version())
	c.row("Time", c.now().Format("02-Jan-2006 15:04"))
	return nil
}
