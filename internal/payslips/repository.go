package payslips

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/stipend/pkg/formatting"
	"github.com/JaimeStill/stipend/pkg/pagination"
	"github.com/JaimeStill/stipend/pkg/query"
	"github.com/JaimeStill/stipend/pkg/repository"
	"github.com/JaimeStill/stipend/pkg/storage"
)

type repo struct {
	db      *sql.DB
	storage storage.System
	logger  *slog.Logger
	window  pagination.Config
}

// New creates a payslip repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	window pagination.Config,
) System {
	return &repo{
		db:      db,
		storage: store,
		logger:  logger.With("system", "payslips"),
		window:  window,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.window, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	window pagination.Window,
	filters Filters,
) ([]Payslip, error) {
	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	q, args := qb.BuildRange(window.Limit, window.Skip)
	records, err := repository.QueryMany(ctx, r.db, q, args, scanPayslip)
	if err != nil {
		return nil, fmt.Errorf("query payslips: %w", err)
	}

	return records, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Payslip, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPayslip)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

// Create coordinates the two-phase upload: validate, advisory duplicate
// pre-check, blob write, metadata insert. A failed insert triggers a
// best-effort compensating blob delete so no row ever references a blob
// that was never written; the reverse orphan (blob without row) is the
// accepted failure mode.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Payslip, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	// Advisory only. The unique constraint at insert time is the
	// authoritative conflict signal under concurrent uploads.
	exists, err := r.exists(ctx, cmd.EmployeeID, cmd.Month, cmd.Year)
	if err != nil {
		return nil, fmt.Errorf("check existing payslip: %w", err)
	}
	if exists {
		return nil, duplicateError(cmd)
	}

	key := buildStorageKey(cmd.EmployeeID, cmd.Year, cmd.Month, cmd.Filename)

	fileURL, err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("upload payslip blob: %w", err)
	}

	q := `
		INSERT INTO payslips(employee_id, month, year, filename, file_url, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, month, year, filename, file_url, file_size, upload_timestamp`

	size := int64(len(cmd.Data))
	insertArgs := []any{
		cmd.EmployeeID,
		cmd.Month,
		cmd.Year,
		cmd.Filename,
		fileURL,
		size,
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Payslip, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanPayslip)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, fileURL); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "url", fileURL, "error", delErr)
		}

		err = repository.MapError(err, ErrNotFound, ErrDuplicate)
		if errors.Is(err, ErrDuplicate) {
			return nil, duplicateError(cmd)
		}
		return nil, err
	}

	r.logger.Info(
		"payslip created",
		"id", p.ID,
		"employee_id", p.EmployeeID,
		"month", p.Month,
		"year", p.Year,
		"size", formatting.FormatBytes(int64(len(cmd.Data)), 1),
	)
	return &p, nil
}

// Delete removes the metadata record after attempting to remove its blob.
// Metadata removal is authoritative: a failed blob delete is logged and
// leaves an orphan, but never blocks the record from being deleted.
func (r *repo) Delete(ctx context.Context, id int64) error {
	p, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if delErr := r.storage.Delete(ctx, p.FileURL); delErr != nil {
		r.logger.Warn(
			"blob delete failed, removing metadata anyway",
			"url", p.FileURL,
			"error", delErr,
		)
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM payslips WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("payslip deleted", "id", id)
	return nil
}

func (r *repo) exists(ctx context.Context, employeeID, month, year int) (bool, error) {
	q, args := query.
		NewBuilder(projection).
		WhereEquals("EmployeeID", employeeID).
		WhereEquals("Month", month).
		WhereEquals("Year", year).
		BuildCount()

	var n int
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func duplicateError(cmd CreateCommand) error {
	return fmt.Errorf(
		"%w for employee %d for %d/%d",
		ErrDuplicate, cmd.EmployeeID, cmd.Month, cmd.Year,
	)
}

// buildStorageKey namespaces blobs by employee/year/month with a random
// component so repeated uploads of the same logical slot never collide.
func buildStorageKey(employeeID, year, month int, filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		ext = "pdf"
	}
	return fmt.Sprintf("payslips/%d/%d/%d/%s.%s", employeeID, year, month, uuid.New(), ext)
}
