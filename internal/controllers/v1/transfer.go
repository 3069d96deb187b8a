package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterTransferRoutes registers the routes for transfers.
func RegisterTransferRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetTransfers)
	r.POST("", CreateTransfer)

	r.OPTIONS("/:id", OptionsTransferDetail)
	r.GET("/:id", GetTransfer)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transfers
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/transfers/{id} [options]
func OptionsTransferDetail(c *gin.Context) {
	var transfer models.Transfer
	if !getResource(c, &transfer) {
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		List transfers
// @Description	Returns a list of all transfers
// @Tags			Transfers
// @Success		200	{object}	ListResponse[models.Transfer]
// @Failure		500	{object}	ListResponse[models.Transfer]
// @Router			/v1/transfers [get]
func GetTransfers(c *gin.Context) {
	var transfers []models.Transfer
	err := models.DB.Order("datetime(date) DESC, id ASC").Find(&transfers).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.Transfer](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Transfer]{Data: transfers})
}

// @Summary		Create transfer
// @Description	Books a transfer and moves the money between the two accounts
// @Tags			Transfers
// @Success		201			{object}	Response[models.Transfer]
// @Failure		400			{object}	Response[models.Transfer]
// @Failure		404			{object}	Response[models.Transfer]
// @Param			transfer	body		models.Transfer	true	"Transfer"
// @Router			/v1/transfers [post]
func CreateTransfer(c *gin.Context) {
	var transfer models.Transfer
	if err := httputil.BindData(c, &transfer); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.Transfer](err))
		return
	}

	created, err := models.CreateTransfer(models.DB, transfer)
	if err != nil {
		c.JSON(status(err), errorResponse[models.Transfer](err))
		return
	}

	invalidateSummaries()
	c.JSON(http.StatusCreated, newResponse(created))
}

// @Summary		Get transfer
// @Description	Returns a specific transfer
// @Tags			Transfers
// @Success		200	{object}	Response[models.Transfer]
// @Failure		404	{object}	Response[models.Transfer]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/transfers/{id} [get]
func GetTransfer(c *gin.Context) {
	getHandler[models.Transfer](c)
}
