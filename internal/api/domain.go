package api

import (
	"github.com/JaimeStill/stipend/internal/payslips"
)

// Domain holds the domain systems that comprise the API.
type Domain struct {
	Payslips payslips.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	payslipSystem := payslips.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Window,
	)

	return &Domain{
		Payslips: payslipSystem,
	}
}
