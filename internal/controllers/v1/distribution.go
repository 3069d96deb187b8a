package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateDistributionRequest changes the planned amount of a distribution.
type UpdateDistributionRequest struct {
	PlannedAmount decimal.Decimal `json:"plannedAmount"`
}

// ConfirmDistributionRequest confirms a distribution, moving the money
// from the source account into the fund.
type ConfirmDistributionRequest struct {
	ActualAmount    decimal.NullDecimal `json:"actualAmount"` // Defaults to the planned amount
	SourceAccountID uuid.UUID           `json:"sourceAccountId" binding:"required"`
}

// RegisterDistributionRoutes registers the routes for income
// distributions. Distributions are created through their income.
func RegisterDistributionRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetDistributions)

	r.OPTIONS("/:id", OptionsDistributionDetail)
	r.GET("/:id", GetDistribution)
	r.PATCH("/:id", UpdateDistribution)
	r.DELETE("/:id", DeleteDistribution)

	r.OPTIONS("/:id/confirm", httputil.OptionsPost)
	r.POST("/:id/confirm", ConfirmDistribution)

	r.OPTIONS("/:id/cancel", httputil.OptionsPost)
	r.POST("/:id/cancel", CancelDistribution)
}

func OptionsDistributionDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.IncomeDistribution{})
}

// @Summary		List distributions
// @Description	Returns a list of all income distributions
// @Tags			Distributions
// @Success		200	{object}	ListResponse[models.IncomeDistribution]
// @Failure		500	{object}	ListResponse[models.IncomeDistribution]
// @Router			/v1/distributions [get]
func GetDistributions(c *gin.Context) {
	var distributions []models.IncomeDistribution
	err := models.DB.Order("created_at ASC").Find(&distributions).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.IncomeDistribution](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.IncomeDistribution]{Data: distributions})
}

// @Summary		Get distribution
// @Description	Returns a specific distribution
// @Tags			Distributions
// @Success		200	{object}	Response[models.IncomeDistribution]
// @Failure		404	{object}	Response[models.IncomeDistribution]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/distributions/{id} [get]
func GetDistribution(c *gin.Context) {
	getHandler[models.IncomeDistribution](c)
}

// @Summary		Update distribution
// @Description	Changes the planned amount of a not yet confirmed distribution
// @Tags			Distributions
// @Success		200		{object}	Response[models.IncomeDistribution]
// @Failure		400		{object}	Response[models.IncomeDistribution]
// @Failure		404		{object}	Response[models.IncomeDistribution]
// @Param			id		path		string						true	"ID formatted as string"
// @Param			request	body		UpdateDistributionRequest	true	"Update"
// @Router			/v1/distributions/{id} [patch]
func UpdateDistribution(c *gin.Context) {
	var distribution models.IncomeDistribution
	if !getResource(c, &distribution) {
		return
	}

	var request UpdateDistributionRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.IncomeDistribution](err))
		return
	}

	if err := distribution.UpdatePlanned(models.DB, request.PlannedAmount); err != nil {
		c.JSON(status(err), errorResponse[models.IncomeDistribution](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(distribution))
}

// @Summary		Delete distribution
// @Description	Deletes a not yet confirmed distribution. Confirmed distributions have to be cancelled first.
// @Tags			Distributions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/distributions/{id} [delete]
func DeleteDistribution(c *gin.Context) {
	var distribution models.IncomeDistribution
	if !getResource(c, &distribution) {
		return
	}

	if distribution.Completed {
		err := models.ErrAlreadyCompleted
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if err := models.DB.Delete(&distribution).Error; err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	invalidateSummaries()
	c.Status(http.StatusNoContent)
}

// @Summary		Confirm distribution
// @Description	Moves the actual amount from the source account into the fund
// @Tags			Distributions
// @Success		200		{object}	Response[models.IncomeDistribution]
// @Failure		400		{object}	Response[models.IncomeDistribution]
// @Failure		404		{object}	Response[models.IncomeDistribution]
// @Failure		409		{object}	Response[models.IncomeDistribution]
// @Param			id		path		string						true	"ID formatted as string"
// @Param			request	body		ConfirmDistributionRequest	true	"Confirmation"
// @Router			/v1/distributions/{id}/confirm [post]
func ConfirmDistribution(c *gin.Context) {
	var distribution models.IncomeDistribution
	if !getResource(c, &distribution) {
		return
	}

	var request ConfirmDistributionRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.IncomeDistribution](err))
		return
	}

	actual := distribution.PlannedAmount
	if request.ActualAmount.Valid {
		actual = request.ActualAmount.Decimal
	}

	if err := distribution.Confirm(models.DB, actual, request.SourceAccountID); err != nil {
		c.JSON(status(err), errorResponse[models.IncomeDistribution](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(distribution))
}

// @Summary		Cancel distribution
// @Description	Reverts a confirmed distribution, moving the money back to the source account
// @Tags			Distributions
// @Success		200	{object}	Response[models.IncomeDistribution]
// @Failure		400	{object}	Response[models.IncomeDistribution]
// @Failure		404	{object}	Response[models.IncomeDistribution]
// @Failure		409	{object}	Response[models.IncomeDistribution]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/distributions/{id}/cancel [post]
func CancelDistribution(c *gin.Context) {
	var distribution models.IncomeDistribution
	if !getResource(c, &distribution) {
		return
	}

	if err := distribution.Cancel(models.DB); err != nil {
		c.JSON(status(err), errorResponse[models.IncomeDistribution](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(distribution))
}
