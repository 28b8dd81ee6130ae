package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/repository"
	"github.com/noah-isme/sma-classroom/internal/roster"
	"github.com/noah-isme/sma-classroom/internal/service"
	"github.com/noah-isme/sma-classroom/pkg/config"
	"github.com/noah-isme/sma-classroom/pkg/logger"
	"github.com/noah-isme/sma-classroom/pkg/storage"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "gradebook-export:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := pflag.NewFlagSet("gradebook-export", pflag.ContinueOnError)
	output := fs.StringP("output", "o", "", "file to write; defaults to EXPORT_FILENAME in the working directory")
	classes := fs.StringSlice("class", nil, "class id to export, repeatable; all classes when omitted")
	format := fs.String("format", "csv", "csv or pdf")
	fs.String("storage-backend", config.StorageFile, "memory, file, redis or postgres")
	fs.String("storage-dir", "./data", "directory of the file backend")
	fs.String("storage-key-prefix", "", "key namespace on shared backends")
	fs.Int64("roster-seed", 2024, "seed of the generated rosters")
	fs.Int("roster-class-size", 30, "students per class")
	fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(fs)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	store, closeStore, err := repository.OpenStore(ctx, cfg, logr)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closeStore() //nolint:errcheck

	state := repository.NewStateRepository(store, logr)
	students := roster.Generate(cfg.Roster.Seed, cfg.Roster.ClassSize)
	classroom := service.NewClassroomService(ctx, students, state, service.ClassroomConfig{}, nil, nil, logr)
	exports := service.NewExportService(classroom, service.ExportConfig{Filename: cfg.Export.Filename}, nil, logr, nil, nil)

	req := dto.ExportRequest{ClassIDs: *classes}
	var result *service.ExportResult
	switch strings.ToLower(*format) {
	case "csv":
		result, err = exports.ExportCSV(ctx, req)
	case "pdf":
		result, err = exports.ExportPDF(ctx, req)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = result.Filename
	}
	target, err := storage.NewLocalStorage(filepath.Dir(path))
	if err != nil {
		return err
	}
	if _, err := target.Save(filepath.Base(path), result.Payload); err != nil {
		return err
	}

	logr.Info("gradebook written", zap.String("path", path), zap.Int("bytes", len(result.Payload)))
	fmt.Fprintf(stdout, "wrote %s (%d bytes)\n", path, len(result.Payload))
	return nil
}
