package payslips

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/JaimeStill/stipend/pkg/handlers"
	"github.com/JaimeStill/stipend/pkg/pagination"
	"github.com/JaimeStill/stipend/pkg/routes"
)

// Handler provides HTTP endpoints for payslip operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	window        pagination.Config
	maxUploadSize int64
}

// NewHandler creates a Handler with the given system, logger, window config,
// and upload size limit.
func NewHandler(
	sys System,
	logger *slog.Logger,
	window pagination.Config,
	maxUploadSize int64,
) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "payslips"),
		window:        window,
		maxUploadSize: maxUploadSize,
	}
}

// Routes returns the route group definition for payslip endpoints.
// The group carries no prefix of its own; the mounting module supplies it.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{$}", Handler: h.List},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "POST", Pattern: "/{$}", Handler: h.Upload},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// List returns payslips matching the optional employee_id, year, and month
// query filters, ordered by upload time descending, windowed by skip/limit.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	window, err := pagination.FromQuery(r.URL.Query(), h.window)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusUnprocessableEntity, err)
		return
	}

	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), window, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single payslip by its integer path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	p, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Upload processes a multipart form upload containing employee_id, month,
// year fields and a PDF file, and registers the resulting record.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		if errors.Is(err, multipart.ErrMessageTooLarge) {
			handlers.RespondError(w, h.logger, http.StatusRequestEntityTooLarge, ErrFileTooLarge)
			return
		}

		// Anything else (missing boundary, non-multipart content type)
		// is a malformed request body.
		err = fmt.Errorf("%w: multipart form", ErrMalformedField)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	employeeID, err := formInt(r, "employee_id")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	month, err := formInt(r, "month")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	year, err := formInt(r, "year")
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		err = fmt.Errorf("%w: file", ErrMalformedField)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		err = fmt.Errorf("%w: file", ErrMalformedField)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd := CreateCommand{
		Data:       data,
		Filename:   header.Filename,
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		MaxSize:    h.maxUploadSize,
	}

	p, err := h.sys.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if pages := extractPDFPageCount(h.logger, data); pages != nil {
		h.logger.Info("payslip pages extracted", "id", p.ID, "pages", *pages)
	}

	handlers.RespondJSON(w, http.StatusOK, p)
}

// Delete removes a payslip by its integer path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"message": "payslip deleted successfully",
	})
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id", ErrMalformedField)
	}
	return id, nil
}

func formInt(r *http.Request, field string) (int, error) {
	v, err := strconv.Atoi(r.FormValue(field))
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrMalformedField, field)
	}
	return v, nil
}

// extractPDFPageCount parses the uploaded bytes with pdfcpu. Uploads are
// never rejected on parse failure; the count feeds observability only.
func extractPDFPageCount(logger *slog.Logger, data []byte) *int {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		logger.Warn("failed to extract PDF page count", "error", err)
		return nil
	}
	return &count
}
