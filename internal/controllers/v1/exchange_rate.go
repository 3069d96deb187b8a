package v1

import (
	"net/http"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterExchangeRateRoutes registers the routes for exchange rates.
func RegisterExchangeRateRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGetPost)
	r.GET("", GetExchangeRates)
	r.POST("", CreateExchangeRate)

	r.OPTIONS("/:id", OptionsExchangeRateDetail)
	r.GET("/:id", GetExchangeRate)
	r.PATCH("/:id", UpdateExchangeRate)
	r.DELETE("/:id", DeleteExchangeRate)
}

func OptionsExchangeRateDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.ExchangeRate{})
}

// @Summary		List exchange rates
// @Description	Returns a list of all exchange rates
// @Tags			ExchangeRates
// @Success		200	{object}	ListResponse[models.ExchangeRate]
// @Failure		500	{object}	ListResponse[models.ExchangeRate]
// @Router			/v1/exchange-rates [get]
func GetExchangeRates(c *gin.Context) {
	var rates []models.ExchangeRate
	err := models.DB.Order("from_currency ASC, to_currency ASC").Find(&rates).Error
	if err != nil {
		c.JSON(status(err), errorListResponse[models.ExchangeRate](err))
		return
	}

	c.JSON(http.StatusOK, ListResponse[models.ExchangeRate]{Data: rates})
}

// @Summary		Create exchange rate
// @Description	Creates a new exchange rate for a currency pair
// @Tags			ExchangeRates
// @Success		201		{object}	Response[models.ExchangeRate]
// @Failure		400		{object}	Response[models.ExchangeRate]
// @Param			rate	body		models.ExchangeRate	true	"ExchangeRate"
// @Router			/v1/exchange-rates [post]
func CreateExchangeRate(c *gin.Context) {
	createHandler[models.ExchangeRate](c)
}

// @Summary		Get exchange rate
// @Description	Returns a specific exchange rate
// @Tags			ExchangeRates
// @Success		200	{object}	Response[models.ExchangeRate]
// @Failure		404	{object}	Response[models.ExchangeRate]
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/v1/exchange-rates/{id} [get]
func GetExchangeRate(c *gin.Context) {
	getHandler[models.ExchangeRate](c)
}

// @Summary		Update exchange rate
// @Description	Updates an exchange rate. Only values to be updated need to be specified.
// @Tags			ExchangeRates
// @Success		200		{object}	Response[models.ExchangeRate]
// @Failure		400		{object}	Response[models.ExchangeRate]
// @Failure		404		{object}	Response[models.ExchangeRate]
// @Param			id		path		string				true	"ID formatted as string"
// @Param			rate	body		models.ExchangeRate	true	"ExchangeRate"
// @Router			/v1/exchange-rates/{id} [patch]
func UpdateExchangeRate(c *gin.Context) {
	updateHandler[models.ExchangeRate](c)
}

// @Summary		Delete exchange rate
// @Description	Deletes an exchange rate
// @Tags			ExchangeRates
// @Success		204
// @Failure		404	{object}	httpError
// @Param			id	path	string	true	"ID formatted as string"
// @Router			/v1/exchange-rates/{id} [delete]
func DeleteExchangeRate(c *gin.Context) {
	deleteHandler[models.ExchangeRate](c)
}
