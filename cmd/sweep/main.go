package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/JaimeStill/stipend/internal/config"
	"github.com/JaimeStill/stipend/internal/infrastructure"
	"github.com/JaimeStill/stipend/internal/payslips"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		dryRun  = flag.Bool("dry-run", false, "Report orphaned blobs without deleting them")
		workers = flag.Int("workers", 0, "Concurrent metadata lookups (0 uses the default)")
		minAge  = flag.Duration("min-age", 0, "Exclude blobs modified more recently than this (0 uses the default)")
		timeout = flag.Duration("timeout", 5*time.Minute, "Sweep deadline")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed: ", err)
	}

	infra, err := infrastructure.New(cfg)
	if err != nil {
		log.Fatal("infrastructure init failed: ", err)
	}

	if err := infra.Start(); err != nil {
		log.Fatal("infrastructure start failed: ", err)
	}
	infra.Lifecycle.WaitForStartup()

	system := payslips.New(
		infra.Database.Connection(),
		infra.Storage,
		infra.Logger,
		cfg.API.Window,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	report, err := system.Reconcile(ctx, payslips.ReconcileOptions{
		Workers: *workers,
		MinAge:  *minAge,
		DryRun:  *dryRun,
	})
	if err != nil {
		log.Fatal("sweep failed: ", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.Encode(report)

	if err := infra.Lifecycle.Shutdown(shutdownTimeout); err != nil {
		log.Fatal("shutdown failed: ", err)
	}
}
