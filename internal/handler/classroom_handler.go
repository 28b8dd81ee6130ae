package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-classroom/internal/dto"
	"github.com/noah-isme/sma-classroom/internal/middleware"
	"github.com/noah-isme/sma-classroom/internal/models"
	"github.com/noah-isme/sma-classroom/internal/service"
	appErrors "github.com/noah-isme/sma-classroom/pkg/errors"
	"github.com/noah-isme/sma-classroom/pkg/response"
)

type classroomService interface {
	Classes() []models.Class
	Ledger() []models.Assignment
	Students(ctx context.Context, classID string) ([]models.GradedStudent, error)
	Gradebook(ctx context.Context, classID string, q dto.GradebookQuery) (*models.Gradebook, error)
	StudentReport(ctx context.Context, classID string, studentID int) (*models.StudentReport, error)
	Distribution(ctx context.Context, classID, target string) (*service.DistributionView, error)
	SeatingChart(ctx context.Context, classID string, q dto.SeatingQuery) (*models.SeatingChart, error)
	InsertAssignment(ctx context.Context, req dto.InsertAssignmentRequest) (*models.Assignment, error)
	SetScore(ctx context.Context, classID string, req dto.SetScoreRequest) (*models.ScoreUpdate, error)
	SwapSeats(ctx context.Context, classID string, req dto.SwapSeatsRequest) (*models.SeatingChart, error)
	PopulateScores(ctx context.Context) error
	ClearScores(ctx context.Context) error
	View() models.ViewState
	SetViewMode(ctx context.Context, req dto.ViewModeRequest) (models.ViewState, error)
	SetViewRange(ctx context.Context, req dto.ViewRangeRequest) (models.ViewState, error)
	SetAnonymized(ctx context.Context, req dto.AnonymizeRequest) (models.ViewState, error)
}

// ClassroomHandler exposes the gradebook, seating chart and view commands.
type ClassroomHandler struct {
	service classroomService
	logger  *zap.Logger
}

// NewClassroomHandler builds a new handler.
func NewClassroomHandler(service classroomService, logger *zap.Logger) *ClassroomHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomHandler{service: service, logger: logger}
}

// RegisterRoutes mounts the classroom endpoints. Successful commands are audited.
func (h *ClassroomHandler) RegisterRoutes(rg *gin.RouterGroup) {
	audit := func(command string) gin.HandlerFunc {
		return middleware.Audit(h.logger, command)
	}

	rg.GET("/classes", h.ListClasses)
	classes := rg.Group("/classes/:classId")
	classes.GET("/students", h.ListStudents)
	classes.GET("/students/:studentId/report", h.StudentReport)
	classes.GET("/gradebook", h.Gradebook)
	classes.GET("/distribution", h.Distribution)
	classes.GET("/seating", h.Seating)
	classes.PUT("/scores", audit(service.CommandSetScore), h.SetScore)
	classes.POST("/seating/swap", audit(service.CommandSwapSeats), h.SwapSeats)

	rg.GET("/assignments", h.ListAssignments)
	rg.POST("/assignments", audit(service.CommandInsertAssignment), h.InsertAssignment)

	rg.POST("/scores/populate", audit(service.CommandPopulateScores), h.PopulateScores)
	rg.DELETE("/scores", audit(service.CommandClearScores), h.ClearScores)

	rg.GET("/view", h.View)
	rg.PUT("/view/mode", audit(service.CommandSetViewMode), h.SetViewMode)
	rg.PUT("/view/range", audit(service.CommandSetViewRange), h.SetViewRange)
	rg.PUT("/view/anonymized", audit(service.CommandSetAnonymized), h.SetAnonymized)
}

// ListClasses godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassroomHandler) ListClasses(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Classes(), middleware.ExtractMeta(c))
}

// ListStudents godoc
// @Summary List the students of a class with their grades
// @Tags Classes
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{classId}/students [get]
func (h *ClassroomHandler) ListStudents(c *gin.Context) {
	students, err := h.service.Students(c.Request.Context(), c.Param("classId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, middleware.ExtractMeta(c))
}

// StudentReport godoc
// @Summary Per-assignment breakdown of one student
// @Tags Classes
// @Produce json
// @Param classId path string true "Class ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{classId}/students/{studentId}/report [get]
func (h *ClassroomHandler) StudentReport(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("studentId"))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student id"))
		return
	}
	report, err := h.service.StudentReport(c.Request.Context(), c.Param("classId"), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report, middleware.ExtractMeta(c))
}

// Gradebook godoc
// @Summary Gradebook table of a class
// @Tags Gradebook
// @Produce json
// @Param classId path string true "Class ID"
// @Param sort query string false "name, overall or an assignment id"
// @Param direction query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes/{classId}/gradebook [get]
func (h *ClassroomHandler) Gradebook(c *gin.Context) {
	var q dto.GradebookQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid gradebook query"))
		return
	}
	book, err := h.service.Gradebook(c.Request.Context(), c.Param("classId"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, book, middleware.ExtractMeta(c))
}

// Distribution godoc
// @Summary Letter grade distribution with pie chart slices
// @Tags Gradebook
// @Produce json
// @Param classId path string true "Class ID"
// @Param target query string false "overall or an assignment id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{classId}/distribution [get]
func (h *ClassroomHandler) Distribution(c *gin.Context) {
	view, err := h.service.Distribution(c.Request.Context(), c.Param("classId"), c.DefaultQuery("target", service.DistributionTargetOverall))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// Seating godoc
// @Summary Seating chart of a class
// @Tags Seating
// @Produce json
// @Param classId path string true "Class ID"
// @Param mode query string false "grade or gpa"
// @Param anonymized query bool false "Hide student names"
// @Success 200 {object} response.Envelope
// @Router /classes/{classId}/seating [get]
func (h *ClassroomHandler) Seating(c *gin.Context) {
	var q dto.SeatingQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid seating query"))
		return
	}
	chart, err := h.service.SeatingChart(c.Request.Context(), c.Param("classId"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chart, middleware.ExtractMeta(c))
}

// SwapSeats godoc
// @Summary Swap two seats
// @Tags Seating
// @Accept json
// @Produce json
// @Param classId path string true "Class ID"
// @Param payload body dto.SwapSeatsRequest true "Seat indexes"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /classes/{classId}/seating/swap [post]
func (h *ClassroomHandler) SwapSeats(c *gin.Context) {
	var req dto.SwapSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid swap payload"))
		return
	}
	chart, err := h.service.SwapSeats(c.Request.Context(), c.Param("classId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, chart, middleware.ExtractMeta(c))
}

// SetScore godoc
// @Summary Record or clear one score
// @Tags Gradebook
// @Accept json
// @Produce json
// @Param classId path string true "Class ID"
// @Param payload body dto.SetScoreRequest true "Score payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{classId}/scores [put]
func (h *ClassroomHandler) SetScore(c *gin.Context) {
	var req dto.SetScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid score payload"))
		return
	}
	update, err := h.service.SetScore(c.Request.Context(), c.Param("classId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, update, middleware.ExtractMeta(c))
}

// ListAssignments godoc
// @Summary List the assignment ledger
// @Tags Assignments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /assignments [get]
func (h *ClassroomHandler) ListAssignments(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Ledger(), middleware.ExtractMeta(c))
}

// InsertAssignment godoc
// @Summary Insert an assignment into the ledger
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body dto.InsertAssignmentRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /assignments [post]
func (h *ClassroomHandler) InsertAssignment(c *gin.Context) {
	var req dto.InsertAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.service.InsertAssignment(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// PopulateScores godoc
// @Summary Fill every class with random demo scores
// @Tags Demo
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /scores/populate [post]
func (h *ClassroomHandler) PopulateScores(c *gin.Context) {
	if err := h.service.PopulateScores(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ClearScores godoc
// @Summary Remove every recorded score
// @Tags Demo
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /scores [delete]
func (h *ClassroomHandler) ClearScores(c *gin.Context) {
	if err := h.service.ClearScores(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// View godoc
// @Summary Current seating chart view state
// @Tags View
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /view [get]
func (h *ClassroomHandler) View(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.View(), middleware.ExtractMeta(c))
}

// SetViewMode godoc
// @Summary Switch between grade and GPA coloring
// @Tags View
// @Accept json
// @Produce json
// @Param payload body dto.ViewModeRequest true "Mode payload"
// @Success 200 {object} response.Envelope
// @Router /view/mode [put]
func (h *ClassroomHandler) SetViewMode(c *gin.Context) {
	var req dto.ViewModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid view mode"))
		return
	}
	view, err := h.service.SetViewMode(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// SetViewRange godoc
// @Summary Move one bound of the range filter
// @Tags View
// @Accept json
// @Produce json
// @Param payload body dto.ViewRangeRequest true "Range payload"
// @Success 200 {object} response.Envelope
// @Router /view/range [put]
func (h *ClassroomHandler) SetViewRange(c *gin.Context) {
	var req dto.ViewRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid range payload"))
		return
	}
	view, err := h.service.SetViewRange(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}

// SetAnonymized godoc
// @Summary Toggle anonymized seat names
// @Tags View
// @Accept json
// @Produce json
// @Param payload body dto.AnonymizeRequest true "Anonymize payload"
// @Success 200 {object} response.Envelope
// @Router /view/anonymized [put]
func (h *ClassroomHandler) SetAnonymized(c *gin.Context) {
	var req dto.AnonymizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid anonymize payload"))
		return
	}
	view, err := h.service.SetAnonymized(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, middleware.ExtractMeta(c))
}
