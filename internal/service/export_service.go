package service

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/dto"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
	"github.com/noah-isme/sma-classroom/pkg/export"
)

type sheetSource interface {
	ExportSheet(ctx context.Context, classIDs []string) (export.Sheet, error)
}

type csvRenderer interface {
	Render(sheet export.Sheet) ([]byte, error)
}

type pdfRenderer interface {
	Render(sheet export.Sheet, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Filename string
}

// ExportResult is a rendered document ready for download.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the gradebook matrix of selected classes.
type ExportService struct {
	source    sheetSource
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(source sheetSource, cfg ExportConfig, validate *validator.Validate, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.Filename == "" {
		cfg.Filename = "grades-export.csv"
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		source:    source,
		csv:       csv,
		pdf:       pdf,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
	}
}

// ExportCSV renders the selected classes as CSV.
func (s *ExportService) ExportCSV(ctx context.Context, req dto.ExportRequest) (*ExportResult, error) {
	sheet, err := s.sheet(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	s.logger.Info("gradebook exported", zap.String("format", "csv"), zap.Int("classes", len(sheet.Sections)), zap.Int("bytes", len(payload)))
	return &ExportResult{Filename: s.cfg.Filename, ContentType: export.ContentTypeCSV, Payload: payload}, nil
}

// ExportPDF renders the selected classes as a PDF report.
func (s *ExportService) ExportPDF(ctx context.Context, req dto.ExportRequest) (*ExportResult, error) {
	sheet, err := s.sheet(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := s.pdf.Render(sheet, "Gradebook Export")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	s.logger.Info("gradebook exported", zap.String("format", "pdf"), zap.Int("classes", len(sheet.Sections)), zap.Int("bytes", len(payload)))
	return &ExportResult{Filename: pdfFilename(s.cfg.Filename), ContentType: export.ContentTypePDF, Payload: payload}, nil
}

func (s *ExportService) sheet(ctx context.Context, req dto.ExportRequest) (export.Sheet, error) {
	if err := s.validator.Struct(req); err != nil {
		return export.Sheet{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	return s.source.ExportSheet(ctx, req.ClassIDs)
}

func pdfFilename(csvName string) string {
	return strings.TrimSuffix(csvName, filepath.Ext(csvName)) + ".pdf"
}
