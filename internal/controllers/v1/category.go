package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterCategoryRoutes registers the routes for categories.
func RegisterCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetCategories)
	r.POST("", CreateCategory)

	r.OPTIONS("/:id", OptionsCategoryDetail)
	r.GET("/:id", GetCategory)
	r.PATCH("/:id", UpdateCategory)
	r.DELETE("/:id", DeleteCategory)
}

func OptionsCategoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Category{})
}

// @Summary		List categories
// @Description	Returns a list of all categories
// @Tags			Categories
// @Success		200	{object}	ListResponse[models.Category]
// @Failure		500	{object}	ListResponse[models.Category]
// @Router			/v1/categories [get]
func GetCategories(c *gin.Context) {
	var categories []models.Category
	err := models.DB.Order("name ASC").Find(&categories).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.Category](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Category]{Data: categories})
}

// @Summary		Create category
// @Description	Creates a new category
// @Tags			Categories
// @Success		201			{object}	Response[models.Category]
// @Failure		400			{object}	Response[models.Category]
// @Param			category	body		models.Category	true	"Category"
// @Router			/v1/categories [post]
func CreateCategory(c *gin.Context) {
	createHandler[models.Category](c)
}

// @Summary		Get category
// @Description	Returns a specific category
// @Tags			Categories
// @Success		200	{object}	Response[models.Category]
// @Failure		404	{object}	Response[models.Category]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [get]
func GetCategory(c *gin.Context) {
	getHandler[models.Category](c)
}

// @Summary		Update category
// @Description	Updates a category. Only values to be updated need to be specified.
// @Tags			Categories
// @Success		200			{object}	Response[models.Category]
// @Failure		400			{object}	Response[models.Category]
// @Failure		404			{object}	Response[models.Category]
// @Param			id			path		string			true	"ID formatted as string"
// @Param			category	body		models.Category	true	"Category"
// @Router			/v1/categories/{id} [patch]
func UpdateCategory(c *gin.Context) {
	updateHandler[models.Category](c)
}

// @Summary		Delete category
// @Description	Deletes a category
// @Tags			Categories
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/categories/{id} [delete]
func DeleteCategory(c *gin.Context) {
	deleteHandler[models.Category](c)
}
