package v1

import (
	"net/http"
	"time"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetRoutes registers the routes for budgets.
func RegisterBudgetRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetBudgets)
	r.POST("", CreateBudget)

	r.OPTIONS("/:id", OptionsBudgetDetail)
	r.GET("/:id", GetBudget)
	r.PATCH("/:id", UpdateBudget)
	r.DELETE("/:id", DeleteBudget)

	r.OPTIONS("/:id/items", httputil.OptionsGet)
	r.GET("/:id/items", GetBudgetItemsForBudget)
}

func OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Budget{})
}

// @Summary		List budgets
// @Description	Returns a list of all monthly budgets
// @Tags			Budgets
// @Success		200	{object}	ListResponse[models.Budget]
// @Failure		500	{object}	ListResponse[models.Budget]
// @Router			/v1/budgets [get]
func GetBudgets(c *gin.Context) {
	var budgets []models.Budget
	err := models.DB.Order("month ASC").Find(&budgets).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.Budget](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Budget]{Data: budgets})
}

// @Summary		Create budget
// @Description	Creates the budget for a month. Budgets are also created implicitly by generation and budget items.
// @Tags			Budgets
// @Success		201		{object}	Response[models.Budget]
// @Failure		400		{object}	Response[models.Budget]
// @Param			budget	body		models.Budget	true	"Budget"
// @Router			/v1/budgets [post]
func CreateBudget(c *gin.Context) {
	var budget models.Budget
	if err := httputil.BindData(c, &budget); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Budget](err))
		return
	}

	created, err := models.EnsureBudget(models.DB, types.MonthOf(time.Time(budget.Month)))
	if err != nil {
		c.JSON(status(err), errorResponse[models.Budget](err))
		return
	}

	if budget.Note != "" {
		created.Note = budget.Note
		if err := models.DB.Model(&created).Update("note", budget.Note).Error; err != nil {
			c.JSON(status(err), errorResponse[models.Budget](err))
			return
		}
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(created))
}

// @Summary		Get budget
// @Description	Returns a specific budget
// @Tags			Budgets
// @Success		200	{object}	Response[models.Budget]
// @Failure		404	{object}	Response[models.Budget]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [get]
func GetBudget(c *gin.Context) {
	getHandler[models.Budget](c)
}

// @Summary		Update budget
// @Description	Updates a budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Success		200		{object}	Response[models.Budget]
// @Failure		400		{object}	Response[models.Budget]
// @Failure		404		{object}	Response[models.Budget]
// @Param			id		path		string			true	"ID formatted as string"
// @Param			budget	body		models.Budget	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func UpdateBudget(c *gin.Context) {
	updateHandler[models.Budget](c)
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/budgets/{id} [delete]
func DeleteBudget(c *gin.Context) {
	deleteHandler[models.Budget](c)
}

// @Summary		List budget items
// @Description	Returns the budget items of a budget
// @Tags			Budgets
// @Success		200	{object}	ListResponse[models.BudgetItem]
// @Failure		404	{object}	ListResponse[models.BudgetItem]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budgets/{id}/items [get]
func GetBudgetItemsForBudget(c *gin.Context) {
	var budget models.Budget
	if !getResource(c, &budget) {
		return
	}

	items, err := budget.Items(models.DB)
	if err != nil {
		c.JSON(status(err), errorListResponse[models.BudgetItem](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.BudgetItem]{Data: items})
}
