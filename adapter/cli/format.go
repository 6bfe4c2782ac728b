package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"

	"github.com/felixgeelhaar/clinicdesk/internal/clinic/application/queries"
	patients "github.com/felixgeelhaar/clinicdesk/internal/patients/domain"
)

var (
	ErrInvalidDate      = errors.New("invalid date, use YYYY-MM-DD, today, tomorrow or +N")
	ErrAmbiguousPatient = errors.New("patient reference matches more than one patient")
)

const dateLayout = "2006-01-02"

// NewTable returns a borderless table writing to w.
func NewTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)
	return table
}

// ParseDate reads a calendar day relative to now. Empty means today.
func ParseDate(s string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "" || s == "today":
		return today, nil
	case s == "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case strings.HasPrefix(s, "+"):
		days, err := strconv.Atoi(s[1:])
		if err != nil || days < 0 {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
		}
		return today.AddDate(0, 0, days), nil
	}

	date, err := time.ParseInLocation(dateLayout, s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return date, nil
}

// FormatDate renders a day the way ParseDate reads it.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatDuration renders d as "1h 30m".
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 && minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	} else if hours > 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dm", minutes)
}

// ShortID returns the first block of id, enough to tell patients apart.
func ShortID(id uuid.UUID) string {
	if id == uuid.Nil {
		return "-"
	}
	return id.String()[:8]
}

// ResolvePatient finds a patient by full ID, unique ID prefix or exact name.
func ResolvePatient(ctx context.Context, app *App, ref string) (queries.PatientDTO, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return queries.PatientDTO{}, patients.ErrPatientNotFound
	}

	all, err := app.ListPatientsHandler.Handle(ctx, queries.ListPatientsQuery{})
	if err != nil {
		return queries.PatientDTO{}, err
	}

	if id, err := uuid.Parse(ref); err == nil {
		for _, p := range all {
			if p.ID == id {
				return p, nil
			}
		}
		return queries.PatientDTO{}, fmt.Errorf("%w: %s", patients.ErrPatientNotFound, ref)
	}

	var matches []queries.PatientDTO
	for _, p := range all {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
		if len(ref) >= 4 && strings.HasPrefix(p.ID.String(), strings.ToLower(ref)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return queries.PatientDTO{}, fmt.Errorf("%w: %s", patients.ErrPatientNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return queries.PatientDTO{}, fmt.Errorf("%w: %s", ErrAmbiguousPatient, ref)
	}
}
