package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterPlannedIncomeRoutes registers the routes for planned incomes.
func RegisterPlannedIncomeRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetPlannedIncomes)
	r.POST("", CreatePlannedIncome)

	r.OPTIONS("/:id", OptionsPlannedIncomeDetail)
	r.GET("/:id", GetPlannedIncome)
	r.PATCH("/:id", UpdatePlannedIncome)
	r.DELETE("/:id", DeletePlannedIncome)

	r.OPTIONS("/:id/confirm", httputil.OptionsPost)
	r.POST("/:id/confirm", ConfirmPlannedIncome)

	r.OPTIONS("/:id/skip", httputil.OptionsPost)
	r.POST("/:id/skip", SkipPlannedIncome)
}

func OptionsPlannedIncomeDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.PlannedIncome{})
}

// @Summary		List planned incomes
// @Description	Returns a list of planned incomes, optionally filtered by status
// @Tags			PlannedIncomes
// @Success		200		{object}	ListResponse[models.PlannedIncome]
// @Failure		500		{object}	ListResponse[models.PlannedIncome]
// @Param			status	query		string	false	"Filter by status"
// @Router			/v1/planned-incomes [get]
func GetPlannedIncomes(c *gin.Context) {
	var query PlannedExpenseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorListResponse[models.PlannedIncome](err))
		return
	}

	db := models.DB.Order("datetime(planned_date) ASC, id ASC")
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var incomes []models.PlannedIncome
	if err := db.Find(&incomes).Error; err != nil {
		c.JSON(status(err), errorListResponse[models.PlannedIncome](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.PlannedIncome]{Data: incomes})
}

// @Summary		Create planned income
// @Description	Creates a one-off planned income, outside of any recurring template
// @Tags			PlannedIncomes
// @Success		201				{object}	Response[models.PlannedIncome]
// @Failure		400				{object}	Response[models.PlannedIncome]
// @Failure		404				{object}	Response[models.PlannedIncome]
// @Param			plannedIncome	body		models.PlannedIncome	true	"PlannedIncome"
// @Router			/v1/planned-incomes [post]
func CreatePlannedIncome(c *gin.Context) {
	createHandler[models.PlannedIncome](c)
}

// @Summary		Get planned income
// @Description	Returns a specific planned income
// @Tags			PlannedIncomes
// @Success		200	{object}	Response[models.PlannedIncome]
// @Failure		404	{object}	Response[models.PlannedIncome]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/planned-incomes/{id} [get]
func GetPlannedIncome(c *gin.Context) {
	getHandler[models.PlannedIncome](c)
}

// @Summary		Update planned income
// @Description	Updates the descriptive fields of a planned income. Status, amounts and dates only change through confirm and skip.
// @Tags			PlannedIncomes
// @Success		200				{object}	Response[models.PlannedIncome]
// @Failure		400				{object}	Response[models.PlannedIncome]
// @Failure		404				{object}	Response[models.PlannedIncome]
// @Param			id				path		string					true	"ID formatted as string"
// @Param			plannedIncome	body		models.PlannedIncome	true	"PlannedIncome"
// @Router			/v1/planned-incomes/{id} [patch]
func UpdatePlannedIncome(c *gin.Context) {
	var income models.PlannedIncome
	if !getResource(c, &income) {
		return
	}

	var data models.PlannedIncome
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.PlannedIncome](err))
		return
	}

	// Everything else belongs to the confirm/skip state machine and
	// must not be writable here
	updates := map[string]any{}
	if data.Source != "" {
		updates["source"] = data.Source
	}
	if data.Name != "" {
		updates["name"] = data.Name
	}
	if data.Note != "" {
		updates["note"] = data.Note
	}

	if err := models.DB.Model(&income).Updates(updates).Error; err != nil {
		c.JSON(status(err), errorResponse[models.PlannedIncome](err))
		return
	}

	c.JSON(http.StatusOK, newResponse(income))
}

// @Summary		Delete planned income
// @Description	Deletes a planned income. The occurrence stays blocked for regeneration.
// @Tags			PlannedIncomes
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/planned-incomes/{id} [delete]
func DeletePlannedIncome(c *gin.Context) {
	deleteHandler[models.PlannedIncome](c)
}

// @Summary		Confirm planned income
// @Description	Confirms a pending planned income, books the actual income and deposits it
// @Tags			PlannedIncomes
// @Success		200				{object}	Response[models.PlannedIncome]
// @Failure		400				{object}	Response[models.PlannedIncome]
// @Failure		404				{object}	Response[models.PlannedIncome]
// @Failure		409				{object}	Response[models.PlannedIncome]
// @Param			id				path		string						true	"ID formatted as string"
// @Param			confirmation	body		models.IncomeConfirmation	true	"Confirmation"
// @Router			/v1/planned-incomes/{id}/confirm [post]
func ConfirmPlannedIncome(c *gin.Context) {
	var income models.PlannedIncome
	if !getResource(c, &income) {
		return
	}

	var confirmation models.IncomeConfirmation
	if err := httputil.BindData(c, &confirmation); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.PlannedIncome](err))
		return
	}

	if err := income.Confirm(models.DB, confirmation); err != nil {
		c.JSON(status(err), errorResponse[models.PlannedIncome](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(income))
}

// @Summary		Skip planned income
// @Description	Skips a pending planned income. No money moves, the occurrence stays blocked for regeneration.
// @Tags			PlannedIncomes
// @Success		200	{object}	Response[models.PlannedIncome]
// @Failure		400	{object}	Response[models.PlannedIncome]
// @Failure		404	{object}	Response[models.PlannedIncome]
// @Failure		409	{object}	Response[models.PlannedIncome]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/planned-incomes/{id}/skip [post]
func SkipPlannedIncome(c *gin.Context) {
	var income models.PlannedIncome
	if !getResource(c, &income) {
		return
	}

	if err := income.Skip(models.DB); err != nil {
		c.JSON(status(err), errorResponse[models.PlannedIncome](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(income))
}
