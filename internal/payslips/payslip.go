// Package payslips implements the payslip record domain for Stipend.
// It provides types, data access, and business logic for payslip PDF
// upload, metadata registration, filtered retrieval, and deletion, with
// blob storage coordination.
package payslips

import (
	"fmt"
	"strings"
	"time"
)

// Earliest year accepted by upload validation. The upper bound is
// the current year plus one, evaluated at request time.
const minYear = 2000

// Payslip represents a registered payslip record with its metadata and
// blob storage locator.
type Payslip struct {
	ID              int64     `json:"id"`
	EmployeeID      int       `json:"employee_id"`
	Month           int       `json:"month"`
	Year            int       `json:"year"`
	Filename        string    `json:"filename"`
	FileURL         string    `json:"file_url"`
	FileSize        *int64    `json:"file_size"`
	UploadTimestamp time.Time `json:"upload_timestamp"`
}

// CreateCommand carries the data needed to upload and register a new payslip.
// Data holds the raw file bytes; MaxSize is the configured upload ceiling
// the content is checked against before any side effect.
type CreateCommand struct {
	Data       []byte
	Filename   string
	EmployeeID int
	Month      int
	Year       int
	MaxSize    int64
}

// Validate checks the command against the upload preconditions. It runs
// before any blob or database write so a rejected upload has no partial
// effects to undo.
func (c CreateCommand) Validate() error {
	if !strings.HasSuffix(strings.ToLower(c.Filename), ".pdf") {
		return ErrInvalidFileType
	}
	if c.Month < 1 || c.Month > 12 {
		return ErrInvalidMonth
	}
	if c.Year < minYear || c.Year > time.Now().Year()+1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, c.Year)
	}
	if c.MaxSize > 0 && int64(len(c.Data)) > c.MaxSize {
		return ErrFileTooLarge
	}
	return nil
}
