package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterPlannedExpenseRoutes registers the routes for planned expenses.
func RegisterPlannedExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetPlannedExpenses)
	r.POST("", CreatePlannedExpense)

	r.OPTIONS("/:id", OptionsPlannedExpenseDetail)
	r.GET("/:id", GetPlannedExpense)
	r.PATCH("/:id", UpdatePlannedExpense)
	r.DELETE("/:id", DeletePlannedExpense)

	r.OPTIONS("/:id/confirm", httputil.OptionsPost)
	r.POST("/:id/confirm", ConfirmPlannedExpense)

	r.OPTIONS("/:id/skip", httputil.OptionsPost)
	r.POST("/:id/skip", SkipPlannedExpense)
}

func OptionsPlannedExpenseDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.PlannedExpense{})
}

// PlannedExpenseQuery are the supported filters for planned expense lists.
type PlannedExpenseQuery struct {
	Status string `form:"status" example:"pending"`
}

// @Summary		List planned expenses
// @Description	Returns a list of planned expenses, optionally filtered by status
// @Tags			PlannedExpenses
// @Success		200		{object}	ListResponse[models.PlannedExpense]
// @Failure		500		{object}	ListResponse[models.PlannedExpense]
// @Param			status	query		string	false	"Filter by status"
// @Router			/v1/planned-expenses [get]
func GetPlannedExpenses(c *gin.Context) {
	var query PlannedExpenseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorListResponse[models.PlannedExpense](err))
		return
	}

	db := models.DB.Order("datetime(planned_date) ASC, id ASC")
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var expenses []models.PlannedExpense
	if err := db.Find(&expenses).Error; err != nil {
		c.JSON(status(err), errorListResponse[models.PlannedExpense](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.PlannedExpense]{Data: expenses})
}

// @Summary		Create planned expense
// @Description	Creates a one-off planned expense, outside of any recurring template
// @Tags			PlannedExpenses
// @Success		201				{object}	Response[models.PlannedExpense]
// @Failure		400				{object}	Response[models.PlannedExpense]
// @Failure		404				{object}	Response[models.PlannedExpense]
// @Param			plannedExpense	body		models.PlannedExpense	true	"PlannedExpense"
// @Router			/v1/planned-expenses [post]
func CreatePlannedExpense(c *gin.Context) {
	createHandler[models.PlannedExpense](c)
}

// @Summary		Get planned expense
// @Description	Returns a specific planned expense
// @Tags			PlannedExpenses
// @Success		200	{object}	Response[models.PlannedExpense]
// @Failure		404	{object}	Response[models.PlannedExpense]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/planned-expenses/{id} [get]
func GetPlannedExpense(c *gin.Context) {
	getHandler[models.PlannedExpense](c)
}

// @Summary		Update planned expense
// @Description	Updates the descriptive fields of a planned expense. Status, amounts and dates only change through confirm and skip.
// @Tags			PlannedExpenses
// @Success		200				{object}	Response[models.PlannedExpense]
// @Failure		400				{object}	Response[models.PlannedExpense]
// @Failure		404				{object}	Response[models.PlannedExpense]
// @Param			id				path		string					true	"ID formatted as string"
// @Param			plannedExpense	body		models.PlannedExpense	true	"PlannedExpense"
// @Router			/v1/planned-expenses/{id} [patch]
func UpdatePlannedExpense(c *gin.Context) {
	var expense models.PlannedExpense
	if !getResource(c, &expense) {
		return
	}

	var data models.PlannedExpense
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.PlannedExpense](err))
		return
	}

	// Everything else belongs to the confirm/skip state machine and
	// must not be writable here
	updates := map[string]any{}
	if data.Name != "" {
		updates["name"] = data.Name
	}
	if data.Note != "" {
		updates["note"] = data.Note
	}

	if err := models.DB.Model(&expense).Updates(updates).Error; err != nil {
		c.JSON(status(err), errorResponse[models.PlannedExpense](err))
		return
	}

	c.JSON(http.StatusOK, newResponse(expense))
}

// @Summary		Delete planned expense
// @Description	Deletes a planned expense. The occurrence stays blocked for regeneration.
// @Tags			PlannedExpenses
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/planned-expenses/{id} [delete]
func DeletePlannedExpense(c *gin.Context) {
	deleteHandler[models.PlannedExpense](c)
}

// @Summary		Confirm planned expense
// @Description	Confirms a pending planned expense, books the actual expense and moves the money
// @Tags			PlannedExpenses
// @Success		200				{object}	Response[models.PlannedExpense]
// @Failure		400				{object}	Response[models.PlannedExpense]
// @Failure		404				{object}	Response[models.PlannedExpense]
// @Failure		409				{object}	Response[models.PlannedExpense]
// @Param			id				path		string						true	"ID formatted as string"
// @Param			confirmation	body		models.ExpenseConfirmation	true	"Confirmation"
// @Router			/v1/planned-expenses/{id}/confirm [post]
func ConfirmPlannedExpense(c *gin.Context) {
	var expense models.PlannedExpense
	if !getResource(c, &expense) {
		return
	}

	var confirmation models.ExpenseConfirmation
	if err := httputil.BindData(c, &confirmation); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.PlannedExpense](err))
		return
	}

	if err := expense.Confirm(models.DB, confirmation); err != nil {
		c.JSON(status(err), errorResponse[models.PlannedExpense](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(expense))
}

// @Summary		Skip planned expense
// @Description	Skips a pending planned expense. No money moves, the occurrence stays blocked for regeneration.
// @Tags			PlannedExpenses
// @Success		200	{object}	Response[models.PlannedExpense]
// @Failure		400	{object}	Response[models.PlannedExpense]
// @Failure		404	{object}	Response[models.PlannedExpense]
// @Failure		409	{object}	Response[models.PlannedExpense]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/planned-expenses/{id}/skip [post]
func SkipPlannedExpense(c *gin.Context) {
	var expense models.PlannedExpense
	if !getResource(c, &expense) {
		return
	}

	if err := expense.Skip(models.DB); err != nil {
		c.JSON(status(err), errorResponse[models.PlannedExpense](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusOK, newResponse(expense))
}
