// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taxfolio/backend/internal/application/usecase/ucreport"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/integration/entrypoint/dto"
	"github.com/taxfolio/backend/internal/integration/entrypoint/middleware"
)

// UCController handles Universal Credit reporting endpoints.
type UCController struct {
	currentPeriodUseCase *ucreport.GetCurrentPeriodUseCase
	generateUseCase      *ucreport.GenerateReportUseCase
	listUseCase          *ucreport.ListReportsUseCase
	markReportedUseCase  *ucreport.MarkReportedUseCase
}

// NewUCController creates a new UC controller instance.
func NewUCController(
	currentPeriodUseCase *ucreport.GetCurrentPeriodUseCase,
	generateUseCase *ucreport.GenerateReportUseCase,
	listUseCase *ucreport.ListReportsUseCase,
	markReportedUseCase *ucreport.MarkReportedUseCase,
) *UCController {
	return &UCController{
		currentPeriodUseCase: currentPeriodUseCase,
		generateUseCase:      generateUseCase,
		listUseCase:          listUseCase,
		markReportedUseCase:  markReportedUseCase,
	}
}

// GetCurrentPeriod handles GET /uc/current-period requests.
func (c *UCController) GetCurrentPeriod(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.currentPeriodUseCase.Execute(ctx.Request.Context(), ucreport.GetCurrentPeriodInput{UserID: userID})
	if err != nil {
		c.handleUCError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUCPeriodResponse(output))
}

// GenerateReport handles POST /uc/reports requests.
func (c *UCController) GenerateReport(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// An empty body is valid and reports on the current period.
	var req dto.GenerateUCReportRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
			})
			return
		}
	}

	input := ucreport.GenerateReportInput{UserID: userID}
	if req.Reference != "" {
		reference, err := time.Parse("2006-01-02", req.Reference)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid reference date format. Use YYYY-MM-DD",
			})
			return
		}
		input.Reference = reference
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleUCError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToUCReportResponse(output.Report))
}

// ListReports handles GET /uc/reports requests.
func (c *UCController) ListReports(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), ucreport.ListReportsInput{UserID: userID})
	if err != nil {
		c.handleUCError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUCReportListResponse(output.Reports))
}

// MarkReported handles POST /uc/reports/:id/reported requests.
func (c *UCController) MarkReported(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	reportID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid report ID format",
		})
		return
	}

	var req dto.MarkUCReportedRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
			})
			return
		}
	}

	input := ucreport.MarkReportedInput{
		UserID:   userID,
		ReportID: reportID,
		Notes:    req.Notes,
	}

	output, err := c.markReportedUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleUCError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUCReportResponse(output.Report))
}

// handleUCError handles UC errors and returns appropriate HTTP responses.
func (c *UCController) handleUCError(ctx *gin.Context, err error) {
	var ucErr *domainerror.UCError
	if errors.As(err, &ucErr) {
		ctx.JSON(c.getStatusCodeForUCError(ucErr.Code), dto.ErrorResponse{
			Error: ucErr.Message,
			Code:  string(ucErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForUCError maps UC error codes to HTTP status codes.
func (c *UCController) getStatusCodeForUCError(code domainerror.UCErrorCode) int {
	switch code {
	case domainerror.ErrCodeUCReportNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeUCNotEnabled,
		domainerror.ErrCodeAssessmentDayNotConfigured,
		domainerror.ErrCodeInvalidAssessmentDay:
		return http.StatusBadRequest
	case domainerror.ErrCodeUCReportAlreadyExists,
		domainerror.ErrCodeUCReportAlreadyReported:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
