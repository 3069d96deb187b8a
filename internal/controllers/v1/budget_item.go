package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterBudgetItemRoutes registers the routes for budget items.
func RegisterBudgetItemRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetBudgetItems)
	r.POST("", CreateBudgetItem)

	r.OPTIONS("/:id", OptionsBudgetItemDetail)
	r.GET("/:id", GetBudgetItem)
	r.PATCH("/:id", UpdateBudgetItem)
	r.DELETE("/:id", DeleteBudgetItem)
}

func OptionsBudgetItemDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.BudgetItem{})
}

// @Summary		List budget items
// @Description	Returns a list of all budget items
// @Tags			BudgetItems
// @Success		200	{object}	ListResponse[models.BudgetItem]
// @Failure		500	{object}	ListResponse[models.BudgetItem]
// @Router			/v1/budget-items [get]
func GetBudgetItems(c *gin.Context) {
	var items []models.BudgetItem
	err := models.DB.Order("created_at ASC").Find(&items).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.BudgetItem](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.BudgetItem]{Data: items})
}

// @Summary		Create budget item
// @Description	Creates a planned amount for a category in a month
// @Tags			BudgetItems
// @Success		201			{object}	Response[models.BudgetItem]
// @Failure		400			{object}	Response[models.BudgetItem]
// @Failure		404			{object}	Response[models.BudgetItem]
// @Param			budgetItem	body		models.BudgetItem	true	"BudgetItem"
// @Router			/v1/budget-items [post]
func CreateBudgetItem(c *gin.Context) {
	createHandler[models.BudgetItem](c)
}

// @Summary		Get budget item
// @Description	Returns a specific budget item
// @Tags			BudgetItems
// @Success		200	{object}	Response[models.BudgetItem]
// @Failure		404	{object}	Response[models.BudgetItem]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/budget-items/{id} [get]
func GetBudgetItem(c *gin.Context) {
	getHandler[models.BudgetItem](c)
}

// @Summary		Update budget item
// @Description	Updates a budget item. Only values to be updated need to be specified.
// @Tags			BudgetItems
// @Success		200			{object}	Response[models.BudgetItem]
// @Failure		400			{object}	Response[models.BudgetItem]
// @Failure		404			{object}	Response[models.BudgetItem]
// @Param			id			path		string				true	"ID formatted as string"
// @Param			budgetItem	body		models.BudgetItem	true	"BudgetItem"
// @Router			/v1/budget-items/{id} [patch]
func UpdateBudgetItem(c *gin.Context) {
	updateHandler[models.BudgetItem](c)
}

// @Summary		Delete budget item
// @Description	Deletes a budget item
// @Tags			BudgetItems
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/budget-items/{id} [delete]
func DeleteBudgetItem(c *gin.Context) {
	deleteHandler[models.BudgetItem](c)
}
