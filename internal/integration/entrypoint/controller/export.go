// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taxfolio/backend/internal/application/usecase/export"
	domainerror "github.com/taxfolio/backend/internal/domain/error"
	"github.com/taxfolio/backend/internal/integration/entrypoint/dto"
	"github.com/taxfolio/backend/internal/integration/entrypoint/middleware"
)

// ExportController handles record export endpoints.
type ExportController struct {
	exportUseCase *export.ExportTransactionsUseCase
}

// NewExportController creates a new export controller instance.
func NewExportController(exportUseCase *export.ExportTransactionsUseCase) *ExportController {
	return &ExportController{exportUseCase: exportUseCase}
}

// ExportTransactions handles GET /export/transactions requests. The optional
// taxYear query parameter narrows the export to one tax year.
func (c *ExportController) ExportTransactions(ctx *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return
	}

	input := export.ExportTransactionsInput{
		UserID:  userID,
		TaxYear: ctx.Query("taxYear"),
	}

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		var taxErr *domainerror.TaxError
		if errors.As(err, &taxErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: taxErr.Message,
				Code:  string(taxErr.Code),
			})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	ctx.Data(http.StatusOK, "text/csv", output.Content)
}
