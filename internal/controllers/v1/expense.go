package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExpenseRoutes registers the routes for expenses.
func RegisterExpenseRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetExpenses)
	r.POST("", CreateExpense)

	r.OPTIONS("/:id", OptionsExpenseDetail)
	r.GET("/:id", GetExpense)
	r.PATCH("/:id", UpdateExpense)
	r.DELETE("/:id", DeleteExpense)
}

func OptionsExpenseDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Expense{})
}

// @Summary		List expenses
// @Description	Returns a list of all booked expenses
// @Tags			Expenses
// @Success		200	{object}	ListResponse[models.Expense]
// @Failure		500	{object}	ListResponse[models.Expense]
// @Router			/v1/expenses [get]
func GetExpenses(c *gin.Context) {
	var expenses []models.Expense
	err := models.DB.Order("datetime(date) DESC, id ASC").Find(&expenses).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.Expense](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Expense]{Data: expenses})
}

// @Summary		Create expense
// @Description	Books an unplanned expense and moves the money
// @Tags			Expenses
// @Success		201		{object}	Response[models.Expense]
// @Failure		400		{object}	Response[models.Expense]
// @Failure		404		{object}	Response[models.Expense]
// @Param			expense	body		models.Expense	true	"Expense"
// @Router			/v1/expenses [post]
func CreateExpense(c *gin.Context) {
	var expense models.Expense
	if err := httputil.BindData(c, &expense); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Expense](err))
		return
	}

	created, err := models.CreateExpense(models.DB, expense)
	if err != nil {
		c.JSON(status(err), errorResponse[models.Expense](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(created))
}

// @Summary		Get expense
// @Description	Returns a specific expense
// @Tags			Expenses
// @Success		200	{object}	Response[models.Expense]
// @Failure		404	{object}	Response[models.Expense]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [get]
func GetExpense(c *gin.Context) {
	getHandler[models.Expense](c)
}

// @Summary		Update expense
// @Description	Updates the descriptive fields of an expense. Amounts and accounts are immutable once booked.
// @Tags			Expenses
// @Success		200		{object}	Response[models.Expense]
// @Failure		400		{object}	Response[models.Expense]
// @Failure		404		{object}	Response[models.Expense]
// @Param			id		path		string			true	"ID formatted as string"
// @Param			expense	body		models.Expense	true	"Expense"
// @Router			/v1/expenses/{id} [patch]
func UpdateExpense(c *gin.Context) {
	var expense models.Expense
	if !getResource(c, &expense) {
		return
	}

	var data models.Expense
	if err := httputil.BindData(c, &data); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Expense](err))
		return
	}

	updates := map[string]any{}
	if data.Note != "" {
		updates["note"] = data.Note
	}

	if err := models.DB.Model(&expense).Updates(updates).Error; err != nil {
		c.JSON(status(err), errorResponse[models.Expense](err))
		return
	}

	c.JSON(http.StatusOK, newResponse(expense))
}

// @Summary		Delete expense
// @Description	Deletes an expense and returns the money to the account and fund
// @Tags			Expenses
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/expenses/{id} [delete]
func DeleteExpense(c *gin.Context) {
	var expense models.Expense
	if !getResource(c, &expense) {
		return
	}

	if err := models.DeleteExpense(models.DB, &expense); err != nil {
		c.JSON(status(err), errorResponse[models.Expense](err))
		return
	}

	invalidateSummaries()
	c.Status(http.StatusNoContent)
}
