package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/service"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
	"github.com/noah-isme/sma-classroom/pkg/response"
)

type exportService interface {
	ExportCSV(ctx context.Context, req dto.ExportRequest) (*service.ExportResult, error)
	ExportPDF(ctx context.Context, req dto.ExportRequest) (*service.ExportResult, error)
}

// ExportHandler serves gradebook downloads.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// RegisterRoutes mounts the export endpoints.
func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export/csv", h.CSV)
	rg.POST("/export/pdf", h.PDF)
}

// CSV godoc
// @Summary Download the gradebook as CSV
// @Tags Export
// @Accept json
// @Produce text/csv
// @Param payload body dto.ExportRequest false "Classes to export, all when empty"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/csv [post]
func (h *ExportHandler) CSV(c *gin.Context) {
	h.export(c, h.service.ExportCSV)
}

// PDF godoc
// @Summary Download the gradebook as a PDF report
// @Tags Export
// @Accept json
// @Produce application/pdf
// @Param payload body dto.ExportRequest false "Classes to export, all when empty"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /export/pdf [post]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.export(c, h.service.ExportPDF)
}

func (h *ExportHandler) export(c *gin.Context, render func(context.Context, dto.ExportRequest) (*service.ExportResult, error)) {
	var req dto.ExportRequest
	// an empty body exports every class
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	result, err := render(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Payload)
}
