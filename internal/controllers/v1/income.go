package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlanDistributionRequest plans moving part of an income into a fund.
type PlanDistributionRequest struct {
	FundID        uuid.UUID       `json:"fundId" binding:"required"`
	PlannedAmount decimal.Decimal `json:"plannedAmount"`
}

// RegisterIncomeRoutes registers the routes for incomes.
func RegisterIncomeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetIncomes)
	r.POST("", CreateIncome)

	r.OPTIONS("/:id", OptionsIncomeDetail)
	r.GET("/:id", GetIncome)
	r.PATCH("/:id", UpdateIncome)
	r.DELETE("/:id", DeleteIncome)

	r.OPTIONS("/:id/distributions", httputil.OptionsGetPost)
	r.GET("/:id/distributions", GetIncomeDistributions)
	r.POST("/:id/distributions", CreateIncomeDistribution)
}

func OptionsIncomeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Income{})
}

// @Summary		List incomes
// @Description	Returns a list of all booked incomes
// @Tags			Incomes
// @Success		200	{object}	ListResponse[models.Income]
// @Failure		500	{object}	ListResponse[models.Income]
// @Router			/v1/incomes [get]
func GetIncomes(c *gin.Context) {
	var incomes []models.Income
	err := models.DB.Order("datetime(date) DESC, id ASC").Find(&incomes).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.Income](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Income]{Data: incomes})
}

// @Summary		Create income
// @Description	Books an unplanned income and deposits it on the receiving account
// @Tags			Incomes
// @Success		201		{object}	Response[models.Income]
// @Failure		400		{object}	Response[models.Income]
// @Failure		404		{object}	Response[models.Income]
// @Param			income	body		models.Income	true	"Income"
// @Router			/v1/incomes [post]
func CreateIncome(c *gin.Context) {
	var income models.Income
	if err := httputil.BindData(c, &income); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Income](err))
		return
	}

	created, err := models.CreateIncome(models.DB, income)
	if err != nil {
		c.JSON(status(err), errorResponse[models.Income](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(created))
}

// @Summary		Get income
// @Description	Returns a specific income
// @Tags			Incomes
// @Success		200	{object}	Response[models.Income]
// @Failure		404	{object}	Response[models.Income]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [get]
func GetIncome(c *gin.Context) {
	getHandler[models.Income](c)
}

// @Summary		Update income
// @Description	Updates the descriptive fields of an income. Amounts and accounts are immutable once booked.
// @Tags			Incomes
// @Success		200		{object}	Response[models.Income]
// @Failure		400		{object}	Response[models.Income]
// @Failure		404		{object}	Response[models.Income]
// @Param			id		path		string			true	"ID formatted as string"
// @Param			income	body		models.Income	true	"Income"
// @Router			/v1/incomes/{id} [patch]
func UpdateIncome(c *gin.Context) {
	var income models.Income
	if !getResource(c, &income) {
		return
	}

	var data models.Income
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Income](err))
		return
	}

	// Only descriptive fields may change, the booked amount is part of
	// the account's balance history.
	updates := map[string]any{}
	if data.Source != "" {
		updates["source"] = data.Source
	}
	if data.Note != "" {
		updates["note"] = data.Note
	}

	if err := models.DB.Model(&income).Updates(updates).Error; err != nil {
		c.JSON(status(err), errorResponse[models.Income](err))
		return
	}

	c.JSON(http.StatusOK, newResponse(income))
}

// @Summary		Delete income
// @Description	Deletes an income and withdraws its amount from the receiving account
// @Tags			Incomes
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/incomes/{id} [delete]
func DeleteIncome(c *gin.Context) {
	var income models.Income
	if !getResource(c, &income) {
		return
	}

	if err := models.DeleteIncome(models.DB, &income); err != nil {
		c.JSON(status(err), errorResponse[models.Income](err))
		return
	}

	invalidateSummaries()
	c.Status(http.StatusNoContent)
}

// @Summary		List distributions
// @Description	Returns the fund distributions of an income
// @Tags			Incomes
// @Success		200	{object}	ListResponse[models.IncomeDistribution]
// @Failure		404	{object}	ListResponse[models.IncomeDistribution]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/incomes/{id}/distributions [get]
func GetIncomeDistributions(c *gin.Context) {
	var income models.Income
	if !getResource(c, &income) {
		return
	}

	distributions, err := income.Distributions(models.DB)
	if err != nil {
		c.JSON(status(err), errorListResponse[models.IncomeDistribution](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.IncomeDistribution]{Data: distributions})
}

// @Summary		Plan distribution
// @Description	Plans moving part of the income into a fund
// @Tags			Incomes
// @Success		201		{object}	Response[models.IncomeDistribution]
// @Failure		400		{object}	Response[models.IncomeDistribution]
// @Failure		404		{object}	Response[models.IncomeDistribution]
// @Param			id		path		string					true	"ID formatted as string"
// @Param			request	body		PlanDistributionRequest	true	"Distribution"
// @Router			/v1/incomes/{id}/distributions [post]
func CreateIncomeDistribution(c *gin.Context) {
	var income models.Income
	if !getResource(c, &income) {
		return
	}

	var request PlanDistributionRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.IncomeDistribution](err))
		return
	}

	distribution, err := models.PlanDistribution(models.DB, income.ID, request.FundID, request.PlannedAmount)
	if err != nil {
		c.JSON(status(err), errorResponse[models.IncomeDistribution](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(distribution))
}
