package console

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/iliyamo/hostel-management/internal/service"
)

const dateLayout = "2006-01-02"

// errInput reports unusable keyboard input. It wraps service.ErrValidation
// so the menu loop treats it like any other rejected value.
func errInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", service.ErrValidation, fmt.Sprintf(format, args...))
}

var errCancelled = errors.New("cancelled")

// read prompts and returns one trimmed line. io.EOF ends the session.
func (c *Console) read(label string) (string, error) {
	fmt.Fprintf(c.out, "    > %s: ", label)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// required re-prompts until a non-empty value is entered.
func (c *Console) required(label string) (string, error) {
	for {
		s, err := c.read(label)
		if err != nil || s != "" {
			return s, err
		}
		c.errorf("%s is required", label)
	}
}

// keep prompts with the current value shown; an empty answer keeps it.
func (c *Console) keep(label, cur string) (string, error) {
	s, err := c.read(fmt.Sprintf("%s [%s]", label, cur))
	if err != nil || s == "" {
		return cur, err
	}
	return s, nil
}

func (c *Console) readInt(label string) (int, error) {
	s, err := c.read(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errInput("%s must be a number", label)
	}
	return n, nil
}

// readID reads a record id; 0 cancels the current action.
func (c *Console) readID(label string) (int, error) {
	n, err := c.readInt(label + " (0 to cancel)")
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errCancelled
	}
	if n < 0 {
		return 0, errInput("%s must be positive", label)
	}
	return n, nil
}

func (c *Console) readAmount(label string) (int64, error) {
	s, err := c.read(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, errInput("%s must be a whole amount", label)
	}
	return n, nil
}

// readDate accepts YYYY-MM-DD; an empty answer means def.
func (c *Console) readDate(label string, def time.Time) (time.Time, error) {
	s, err := c.read(label + " (YYYY-MM-DD, empty for " + def.Format(dateLayout) + ")")
	if err != nil || s == "" {
		return def, err
	}
	d, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, errInput("%q is not a date", s)
	}
	return d, nil
}

// confirm asks a yes/no question; anything but y/yes is no.
func (c *Console) confirm(q string) (bool, error) {
	s, err := c.read(q + " (y/n)")
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "y" || s == "yes", nil
}

// choose lists options numbered from 1 and returns the picked one.
func choose[T ~string](c *Console, label string, options []T) (T, error) {
	for i, o := range options {
		fmt.Fprintf(c.out, "      %d. %s\n", i+1, o)
	}
	n, err := c.readInt(label)
	if err != nil {
		var zero T
		return zero, err
	}
	if n < 1 || n > len(options) {
		var zero T
		return zero, errInput("choose 1-%d", len(options))
	}
	return options[n-1], nil
}

// ----- output -----

func (c *Console) header(title string) {
	line := strings.Repeat("=", 62)
	fmt.Fprintf(c.out, "\n    %s\n      %s\n    %s\n\n", line, title, line)
}

func (c *Console) successf(format string, args ...any) {
	fmt.Fprintf(c.out, "    [OK] %s\n", fmt.Sprintf(format, args...))
}

func (c *Console) errorf(format string, args ...any) {
	fmt.Fprintf(c.out, "    [ERROR] %s\n", fmt.Sprintf(format, args...))
}

func (c *Console) infof(format string, args ...any) {
	fmt.Fprintf(c.out, "    %s\n", fmt.Sprintf(format, args...))
}

func (c *Console) row(label, value string) {
	fmt.Fprintf(c.out, "    %-22s: %s\n", label, value)
}

// table prints aligned columns; an empty table prints a notice instead.
func (c *Console) table(header []string, rows [][]string) {
	if len(rows) == 0 {
		c.infof("No records found.")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "    %s\n", strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintf(tw, "    %s\n", strings.Join(r, "\t"))
	}
	_ = tw.Flush()
	c.infof("Total: %d", len(rows))
}

// bar renders pct (0-100) as a 30 character gauge.
func bar(pct float64) string {
	filled := int(pct / 100 * 30)
	if filled < 0 {
		filled = 0
	}
	if filled > 30 {
		filled = 30
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", 30-filled) + "]"
}

func money(n int64) string { return "Rs. " + service.FormatAmount(n) }

func day(t time.Time) string { return t.Format("02-Jan-2006") }

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
