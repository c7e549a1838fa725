package payslips

import (
	"errors"
	"net/http"
)

// Domain errors for payslip operations.
var (
	ErrNotFound        = errors.New("payslip not found")
	ErrDuplicate       = errors.New("payslip already exists")
	ErrInvalidFileType = errors.New("only PDF files are allowed")
	ErrInvalidMonth    = errors.New("month must be between 1 and 12")
	ErrInvalidYear     = errors.New("year is out of range")
	ErrFileTooLarge    = errors.New("file exceeds maximum upload size")
	ErrMalformedField  = errors.New("missing or malformed form field")
)

// MapHTTPStatus maps payslip domain errors to appropriate HTTP status codes.
// Domain-invalid values map to 400 while missing or unparseable request
// fields map to 422, mirroring the validation split of the upload contract.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFileType) || errors.Is(err, ErrInvalidMonth) || errors.Is(err, ErrInvalidYear) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrMalformedField) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
