// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxfolio/backend/internal/application/usecase/tax"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/integration/entrypoint/dto"
	"github.com/taxfolio/backend/internal/integration/entrypoint/middleware"
)

// TaxController handles tax summary and snapshot endpoints.
type TaxController struct {
	summaryUseCase        *tax.GetSummaryUseCase
	listYearsUseCase      *tax.ListYearsUseCase
	createSnapshotUseCase *tax.CreateSnapshotUseCase
	listSnapshotsUseCase  *tax.ListSnapshotsUseCase
}

// NewTaxController creates a new tax controller instance.
func NewTaxController(
	summaryUseCase *tax.GetSummaryUseCase,
	listYearsUseCase *tax.ListYearsUseCase,
	createSnapshotUseCase *tax.CreateSnapshotUseCase,
	listSnapshotsUseCase *tax.ListSnapshotsUseCase,
) *TaxController {
	return &TaxController{
		summaryUseCase:        summaryUseCase,
		listYearsUseCase:      listYearsUseCase,
		createSnapshotUseCase: createSnapshotUseCase,
		listSnapshotsUseCase:  listSnapshotsUseCase,
	}
}

// GetSummary handles GET /tax/summary requests. The optional taxYear query
// parameter selects the tax year; the default is the year containing today.
func (c *TaxController) GetSummary(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := tax.GetSummaryInput{
		UserID:  userID,
		TaxYear: ctx.Query("taxYear"),
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTaxError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaxSummaryResponse(output))
}

// ListYears handles GET /tax/years requests.
func (c *TaxController) ListYears(ctx *gin.Context) {
	if _, ok := middleware.GetUserIDFromContext(ctx); !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listYearsUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleTaxError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTaxYearListResponse(output))
}

// CreateSnapshot handles POST /tax/snapshots requests.
func (c *TaxController) CreateSnapshot(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	// An empty body is valid and snapshots the current tax year.
	var req dto.CreateSnapshotRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid request body: " + err.Error(),
			})
			return
		}
	}

	input := tax.CreateSnapshotInput{
		UserID:  userID,
		TaxYear: req.TaxYear,
	}

	output, err := c.createSnapshotUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTaxError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSnapshotResponse(output.Snapshot))
}

// ListSnapshots handles GET /tax/snapshots requests.
func (c *TaxController) ListSnapshots(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	output, err := c.listSnapshotsUseCase.Execute(ctx.Request.Context(), tax.ListSnapshotsInput{UserID: userID})
	if err != nil {
		c.handleTaxError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSnapshotListResponse(output.Snapshots))
}

// handleTaxError handles tax errors and returns appropriate HTTP responses.
func (c *TaxController) handleTaxError(ctx *gin.Context, err error) {
	var taxErr *domainerror.TaxError
	if errors.As(err, &taxErr) {
		ctx.JSON(c.getStatusCodeForTaxError(taxErr.Code), dto.ErrorResponse{
			Error: taxErr.Message,
			Code:  string(taxErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForTaxError maps tax error codes to HTTP status codes.
func (c *TaxController) getStatusCodeForTaxError(code domainerror.TaxErrorCode) int {
	switch code {
	case domainerror.ErrCodeUnknownTaxYear,
		domainerror.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTaxYearLabel:
		return http.StatusBadRequest
	case domainerror.ErrCodeSnapshotAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
