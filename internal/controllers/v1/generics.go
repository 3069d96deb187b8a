package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// resource is the union of all models with an ID that the generic
// handlers operate on.
type resource interface {
	models.Account | models.Fund | models.Category | models.Budget |
		models.BudgetItem | models.RecurringTemplate | models.PlannedExpense |
		models.PlannedIncome | models.Income | models.Expense |
		models.IncomeDistribution | models.Transfer | models.ExchangeRate
}

// resourceOptionsDetail returns the appropriate response for an HTTP
// OPTIONS request for a specific resource.
func resourceOptionsDetail[R resource](c *gin.Context, r R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&r, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getResource binds the URI and fetches the resource by ID. When it
// returns false, the error response has already been written.
func getResource[R resource](c *gin.Context, r *R) bool {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), errorResponse[R](err))
		return false
	}

	err = models.DB.First(r, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), errorResponse[R](err))
		return false
	}

	return true
}

// getHandler returns a resource by its ID.
func getHandler[R resource](c *gin.Context) {
	var r R
	if !getResource(c, &r) {
		return
	}

	c.JSON(http.StatusOK, newResponse(r))
}

// createHandler creates a resource from the request body.
func createHandler[R resource](c *gin.Context) {
	var r R
	if err := httputil.BindData(c, &r); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[R](err))
		return
	}

	if err := models.DB.Create(&r).Error; err != nil {
		c.JSON(status(err), errorResponse[R](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(r))
}

// updateHandler patches a resource with the non-zero fields of the
// request body.
func updateHandler[R resource](c *gin.Context) {
	var r R
	if !getResource(c, &r) {
		return
	}

	var data R
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[R](err))
		return
	}

	if err := models.DB.Model(&r).Updates(data).Error; err != nil {
		c.JSON(status(err), errorResponse[R](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(r))
}

// deleteHandler soft-deletes a resource by its ID.
func deleteHandler[R resource](c *gin.Context) {
	var r R
	if !getResource(c, &r) {
		return
	}

	if err := models.DB.Delete(&r).Error; err != nil {
		c.JSON(status(err), errorResponse[R](err))
		return
	}

	invalidateSummaries()
	c.Status(http.StatusNoContent)
}
