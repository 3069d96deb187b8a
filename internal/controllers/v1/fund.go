package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterFundRoutes registers the routes for funds.
func RegisterFundRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetFunds)
	r.POST("", CreateFund)

	r.OPTIONS("/:id", OptionsFundDetail)
	r.GET("/:id", GetFund)
	r.PATCH("/:id", UpdateFund)
	r.DELETE("/:id", DeleteFund)

	r.OPTIONS("/:id/assets", httputil.OptionsGet)
	r.GET("/:id/assets", GetFundAssets)
}

func OptionsFundDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Fund{})
}

// @Summary		List funds
// @Description	Returns a list of all funds
// @Tags			Funds
// @Success		200	{object}	ListResponse[models.Fund]
// @Failure		500	{object}	ListResponse[models.Fund]
// @Router			/v1/funds [get]
func GetFunds(c *gin.Context) {
	var funds []models.Fund
	err := models.DB.Order("name ASC").Find(&funds).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.Fund](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.Fund]{Data: funds})
}

// @Summary		Create fund
// @Description	Creates a new fund
// @Tags			Funds
// @Success		201		{object}	Response[models.Fund]
// @Failure		400		{object}	Response[models.Fund]
// @Param			fund	body		models.Fund	true	"Fund"
// @Router			/v1/funds [post]
func CreateFund(c *gin.Context) {
	createHandler[models.Fund](c)
}

// @Summary		Get fund
// @Description	Returns a specific fund
// @Tags			Funds
// @Success		200	{object}	Response[models.Fund]
// @Failure		404	{object}	Response[models.Fund]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/funds/{id} [get]
func GetFund(c *gin.Context) {
	getHandler[models.Fund](c)
}

// @Summary		Update fund
// @Description	Updates a fund. Only values to be updated need to be specified.
// @Tags			Funds
// @Success		200		{object}	Response[models.Fund]
// @Failure		400		{object}	Response[models.Fund]
// @Failure		404		{object}	Response[models.Fund]
// @Param			id		path		string		true	"ID formatted as string"
// @Param			fund	body		models.Fund	true	"Fund"
// @Router			/v1/funds/{id} [patch]
func UpdateFund(c *gin.Context) {
	updateHandler[models.Fund](c)
}

// @Summary		Delete fund
// @Description	Deletes a fund
// @Tags			Funds
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/funds/{id} [delete]
func DeleteFund(c *gin.Context) {
	deleteHandler[models.Fund](c)
}

// @Summary		List fund assets
// @Description	Returns the per-currency balances of a fund
// @Tags			Funds
// @Success		200	{object}	ListResponse[models.FundAsset]
// @Failure		404	{object}	ListResponse[models.FundAsset]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/funds/{id}/assets [get]
func GetFundAssets(c *gin.Context) {
	var fund models.Fund
	if !getResource(c, &fund) {
		return
	}

	assets, err := fund.Assets(models.DB)
	if err != nil {
		c.JSON(status(err), errorListResponse[models.FundAsset](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.FundAsset]{Data: assets})
}
