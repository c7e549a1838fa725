package payslips

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/stipend/pkg/query"
	"github.com/JaimeStill/stipend/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "payslips", "p").
	Project("id", "ID").
	Project("employee_id", "EmployeeID").
	Project("month", "Month").
	Project("year", "Year").
	Project("filename", "Filename").
	Project("file_url", "FileURL").
	Project("file_size", "FileSize").
	Project("upload_timestamp", "UploadTimestamp")

// Most recent uploads first.
var defaultSort = query.SortField{
	Field:      "UploadTimestamp",
	Descending: true,
}

// Filters contains optional filtering criteria for payslip queries.
// Nil fields are ignored; present fields combine with logical AND.
type Filters struct {
	EmployeeID *int    `json:"employee_id,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Filename   *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("EmployeeID", f.EmployeeID).
		WhereEquals("Year", f.Year).
		WhereEquals("Month", f.Month).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Values that do not parse as integers are ignored.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if eid := values.Get("employee_id"); eid != "" {
		if v, err := strconv.Atoi(eid); err == nil {
			f.EmployeeID = &v
		}
	}

	if y := values.Get("year"); y != "" {
		if v, err := strconv.Atoi(y); err == nil {
			f.Year = &v
		}
	}

	if m := values.Get("month"); m != "" {
		if v, err := strconv.Atoi(m); err == nil {
			f.Month = &v
		}
	}

	if name := values.Get("filename"); name != "" {
		f.Filename = &name
	}

	return f
}

func scanPayslip(s repository.Scanner) (Payslip, error) {
	var p Payslip
	err := s.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.Month,
		&p.Year,
		&p.Filename,
		&p.FileURL,
		&p.FileSize,
		&p.UploadTimestamp,
	)
	return p, err
}
