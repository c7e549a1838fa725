package payslips

import (
	"context"

	"github.com/JaimeStill/stipend/pkg/pagination"
)

// System defines the public contract for payslip domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		window pagination.Window,
		filters Filters,
	) ([]Payslip, error)

	Find(ctx context.Context, id int64) (*Payslip, error)
	Create(ctx context.Context, cmd CreateCommand) (*Payslip, error)
	Delete(ctx context.Context, id int64) error

	Reconcile(ctx context.Context, opts ReconcileOptions) (*ReconcileReport, error)
}
