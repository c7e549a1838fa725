package pagination

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// ErrLimitTooLarge indicates a requested limit above the configured maximum.
// Unlike skip, an excessive limit is rejected rather than clamped.
var ErrLimitTooLarge = errors.New("limit exceeds maximum")

// Window represents a client request for a slice of an ordered result set.
type Window struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Normalize adjusts the window to ensure valid values based on the config.
// It returns ErrLimitTooLarge when the limit exceeds the configured maximum.
func (w *Window) Normalize(cfg Config) error {
	if w.Skip < 0 {
		w.Skip = 0
	}
	if w.Limit <= 0 {
		w.Limit = cfg.DefaultLimit
	}
	if w.Limit > cfg.MaxLimit {
		return fmt.Errorf("%w: %d > %d", ErrLimitTooLarge, w.Limit, cfg.MaxLimit)
	}
	return nil
}

// FromQuery parses skip and limit from URL query values. Absent or
// unparseable values fall back to skip 0 and the configured default limit.
func FromQuery(values url.Values, cfg Config) (Window, error) {
	skip, _ := strconv.Atoi(values.Get("skip"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	w := Window{
		Skip:  skip,
		Limit: limit,
	}

	if err := w.Normalize(cfg); err != nil {
		return Window{}, err
	}
	return w, nil
}
