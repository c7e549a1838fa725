package pagination_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/stipend/pkg/pagination"
)

func defaultConfig() pagination.Config {
	return pagination.Config{DefaultLimit: 100, MaxLimit: 1000}
}

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := pagination.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultLimit != 100 {
		t.Errorf("DefaultLimit = %d, want 100", cfg.DefaultLimit)
	}
	if cfg.MaxLimit != 1000 {
		t.Errorf("MaxLimit = %d, want 1000", cfg.MaxLimit)
	}
}

func TestConfigFinalizeEnvOverrides(t *testing.T) {
	t.Setenv("TEST_DEFAULT_LIMIT", "50")
	t.Setenv("TEST_MAX_LIMIT", "200")

	env := &pagination.ConfigEnv{
		DefaultLimit: "TEST_DEFAULT_LIMIT",
		MaxLimit:     "TEST_MAX_LIMIT",
	}

	cfg := pagination.Config{}
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.DefaultLimit != 50 {
		t.Errorf("DefaultLimit = %d, want 50", cfg.DefaultLimit)
	}
	if cfg.MaxLimit != 200 {
		t.Errorf("MaxLimit = %d, want 200", cfg.MaxLimit)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	cfg := pagination.Config{DefaultLimit: 2000, MaxLimit: 1000}
	err := cfg.Finalize(nil)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "default_limit cannot exceed max_limit") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := pagination.Config{DefaultLimit: 100, MaxLimit: 1000}
	overlay := pagination.Config{DefaultLimit: 50}
	base.Merge(&overlay)

	if base.DefaultLimit != 50 {
		t.Errorf("DefaultLimit = %d, want 50", base.DefaultLimit)
	}
	if base.MaxLimit != 1000 {
		t.Errorf("MaxLimit = %d, want 1000 (unchanged)", base.MaxLimit)
	}
}

func TestWindowNormalize(t *testing.T) {
	cfg := defaultConfig()

	tests := []struct {
		name      string
		window    pagination.Window
		wantSkip  int
		wantLimit int
	}{
		{
			name:      "zero values get defaults",
			window:    pagination.Window{},
			wantSkip:  0,
			wantLimit: 100,
		},
		{
			name:      "negative skip clamped",
			window:    pagination.Window{Skip: -5, Limit: 10},
			wantSkip:  0,
			wantLimit: 10,
		},
		{
			name:      "valid values preserved",
			window:    pagination.Window{Skip: 200, Limit: 25},
			wantSkip:  200,
			wantLimit: 25,
		},
		{
			name:      "limit at maximum allowed",
			window:    pagination.Window{Limit: 1000},
			wantSkip:  0,
			wantLimit: 1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.window.Normalize(cfg); err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}
			if tt.window.Skip != tt.wantSkip {
				t.Errorf("Skip = %d, want %d", tt.window.Skip, tt.wantSkip)
			}
			if tt.window.Limit != tt.wantLimit {
				t.Errorf("Limit = %d, want %d", tt.window.Limit, tt.wantLimit)
			}
		})
	}
}

func TestWindowNormalizeLimitTooLarge(t *testing.T) {
	cfg := defaultConfig()

	w := pagination.Window{Limit: 1001}
	err := w.Normalize(cfg)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, pagination.ErrLimitTooLarge) {
		t.Errorf("error = %v, want ErrLimitTooLarge", err)
	}
}

func TestFromQuery(t *testing.T) {
	cfg := defaultConfig()

	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"skip":  {"40"},
			"limit": {"20"},
		}

		w, err := pagination.FromQuery(values, cfg)
		if err != nil {
			t.Fatalf("FromQuery() error = %v", err)
		}

		if w.Skip != 40 {
			t.Errorf("Skip = %d, want 40", w.Skip)
		}
		if w.Limit != 20 {
			t.Errorf("Limit = %d, want 20", w.Limit)
		}
	})

	t.Run("empty params get defaults", func(t *testing.T) {
		w, err := pagination.FromQuery(url.Values{}, cfg)
		if err != nil {
			t.Fatalf("FromQuery() error = %v", err)
		}

		if w.Skip != 0 {
			t.Errorf("Skip = %d, want 0", w.Skip)
		}
		if w.Limit != 100 {
			t.Errorf("Limit = %d, want 100", w.Limit)
		}
	})

	t.Run("unparseable params fall back", func(t *testing.T) {
		values := url.Values{
			"skip":  {"abc"},
			"limit": {"xyz"},
		}

		w, err := pagination.FromQuery(values, cfg)
		if err != nil {
			t.Fatalf("FromQuery() error = %v", err)
		}

		if w.Skip != 0 {
			t.Errorf("Skip = %d, want 0", w.Skip)
		}
		if w.Limit != 100 {
			t.Errorf("Limit = %d, want 100", w.Limit)
		}
	})

	t.Run("limit above maximum rejected", func(t *testing.T) {
		values := url.Values{"limit": {"5000"}}

		_, err := pagination.FromQuery(values, cfg)
		if !errors.Is(err, pagination.ErrLimitTooLarge) {
			t.Errorf("error = %v, want ErrLimitTooLarge", err)
		}
	})
}
