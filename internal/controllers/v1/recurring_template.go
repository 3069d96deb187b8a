package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// GenerateRequest controls a generation run.
type GenerateRequest struct {
	Month   types.Month `json:"month" example:"2026-02"` // Month to generate obligations for
	Pattern string      `json:"pattern" example:"Rent*"`                    // Optional glob restricting generation to matching template names
}

// RegisterRecurringTemplateRoutes registers the routes for recurring
// templates.
func RegisterRecurringTemplateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetRecurringTemplates)
	r.POST("", CreateRecurringTemplate)

	r.OPTIONS("/generate", httputil.OptionsPost)
	r.POST("/generate", GenerateObligations)

	r.OPTIONS("/:id", OptionsRecurringTemplateDetail)
	r.GET("/:id", GetRecurringTemplate)
	r.PATCH("/:id", UpdateRecurringTemplate)
	r.DELETE("/:id", DeleteRecurringTemplate)
}

func OptionsRecurringTemplateDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.RecurringTemplate{})
}

// @Summary		List recurring templates
// @Description	Returns a list of all recurring templates
// @Tags			RecurringTemplates
// @Success		200	{object}	ListResponse[models.RecurringTemplate]
// @Failure		500	{object}	ListResponse[models.RecurringTemplate]
// @Router			/v1/recurring-templates [get]
func GetRecurringTemplates(c *gin.Context) {
	var templates []models.RecurringTemplate
	err := models.DB.Order("name ASC").Find(&templates).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.RecurringTemplate](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.RecurringTemplate]{Data: templates})
}

// @Summary		Create recurring template
// @Description	Creates a new recurring template
// @Tags			RecurringTemplates
// @Success		201			{object}	Response[models.RecurringTemplate]
// @Failure		400			{object}	Response[models.RecurringTemplate]
// @Param			template	body		models.RecurringTemplate	true	"RecurringTemplate"
// @Router			/v1/recurring-templates [post]
func CreateRecurringTemplate(c *gin.Context) {
	createHandler[models.RecurringTemplate](c)
}

// @Summary		Get recurring template
// @Description	Returns a specific recurring template
// @Tags			RecurringTemplates
// @Success		200	{object}	Response[models.RecurringTemplate]
// @Failure		404	{object}	Response[models.RecurringTemplate]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/recurring-templates/{id} [get]
func GetRecurringTemplate(c *gin.Context) {
	getHandler[models.RecurringTemplate](c)
}

// @Summary		Update recurring template
// @Description	Updates a recurring template. Already generated obligations are not touched.
// @Tags			RecurringTemplates
// @Success		200			{object}	Response[models.RecurringTemplate]
// @Failure		400			{object}	Response[models.RecurringTemplate]
// @Failure		404			{object}	Response[models.RecurringTemplate]
// @Param			id			path		string						true	"ID formatted as string"
// @Param			template	body		models.RecurringTemplate	true	"RecurringTemplate"
// @Router			/v1/recurring-templates/{id} [patch]
func UpdateRecurringTemplate(c *gin.Context) {
	updateHandler[models.RecurringTemplate](c)
}

// @Summary		Delete recurring template
// @Description	Deletes a recurring template. Already generated obligations are not touched.
// @Tags			RecurringTemplates
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/recurring-templates/{id} [delete]
func DeleteRecurringTemplate(c *gin.Context) {
	deleteHandler[models.RecurringTemplate](c)
}

// @Summary		Generate obligations
// @Description	Expands all active templates into pending obligations for a month. Idempotent.
// @Tags			RecurringTemplates
// @Success		201		{object}	Response[models.GenerationResult]
// @Failure		400		{object}	Response[models.GenerationResult]
// @Failure		500		{object}	Response[models.GenerationResult]
// @Param			request	body		GenerateRequest	true	"Generation request"
// @Router			/v1/recurring-templates/generate [post]
func GenerateObligations(c *gin.Context) {
	var request GenerateRequest
	if err := httputil.BindData(c, &request); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.GenerationResult](err))
		return
	}

	if request.Month.IsZero() {
		c.JSON(http.StatusBadRequest, errorResponse[models.GenerationResult](errMonthNotSet))
		return
	}

	result, err := models.GenerateForMonth(models.DB, request.Month, request.Pattern)
	if err != nil {
		c.JSON(status(err), errorResponse[models.GenerationResult](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(result))
}
