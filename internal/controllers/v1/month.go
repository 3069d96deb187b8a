package v1

import (
	"net/http"
	"os"

	"github.com/kopilka/backend/internal/httputil"
	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// baseCurrency returns the reporting currency all summaries are
// normalized into.
func baseCurrency() string {
	if c, ok := os.LookupEnv("BASE_CURRENCY"); ok {
		return c
	}

	return "RUB"
}

// RegisterMonthRoutes registers the routes for month summaries.
func RegisterMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", httputil.OptionsGet)
	r.GET("", GetMonth)
}

// @Summary		Month summary
// @Description	Returns the aggregated planned-vs-actual summary of a month, normalized into the base currency
// @Tags			Months
// @Success		200		{object}	Response[models.MonthSummary]
// @Failure		400		{object}	Response[models.MonthSummary]
// @Failure		404		{object}	Response[models.MonthSummary]
// @Param			month	query		string	true	"The month in YYYY-MM format"
// @Router			/v1/months [get]
func GetMonth(c *gin.Context) {
	var query QueryMonth
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse[models.MonthSummary](err))
		return
	}

	if query.Month.IsZero() {
		c.JSON(http.StatusBadRequest, errorResponse[models.MonthSummary](errMonthNotSetInQuery))
		return
	}

	month := types.MonthOf(query.Month)

	if summary, ok := summaryCache.Get(month.String()); ok {
		c.JSON(http.StatusOK, newResponse(summary))
		return
	}

	var budget models.Budget
	err := models.DB.Where("month >= date(?) AND month < date(?)", month, month.AddDate(0, 1)).First(&budget).Error
	if err != nil {
		c.JSON(http.StatusNotFound, errorResponse[models.MonthSummary](errBudgetNotFound))
		return
	}

	converter, err := models.LoadConverter(models.DB, baseCurrency())
	if err != nil {
		c.JSON(status(err), errorResponse[models.MonthSummary](err))
		return
	}

	summary, err := budget.Summary(models.DB, converter)
	if err != nil {
		c.JSON(status(err), errorResponse[models.MonthSummary](err))
		return
	}

	summaryCache.Set(month.String(), summary)
	c.JSON(http.StatusOK, newResponse(summary))
}
