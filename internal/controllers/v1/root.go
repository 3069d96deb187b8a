package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type V1Response struct {
	Links V1Links `json:"links"`
}

type V1Links struct {
	Accounts           string `json:"accounts" example:"https://example.com/api/v1/accounts"`
	Funds              string `json:"funds" example:"https://example.com/api/v1/funds"`
	Categories         string `json:"categories" example:"https://example.com/api/v1/categories"`
	Budgets            string `json:"budgets" example:"https://example.com/api/v1/budgets"`
	BudgetItems        string `json:"budgetItems" example:"https://example.com/api/v1/budget-items"`
	RecurringTemplates string `json:"recurringTemplates" example:"https://example.com/api/v1/recurring-templates"`
	PlannedExpenses    string `json:"plannedExpenses" example:"https://example.com/api/v1/planned-expenses"`
	PlannedIncomes     string `json:"plannedIncomes" example:"https://example.com/api/v1/planned-incomes"`
	Incomes            string `json:"incomes" example:"https://example.com/api/v1/incomes"`
	Expenses           string `json:"expenses" example:"https://example.com/api/v1/expenses"`
	Distributions      string `json:"distributions" example:"https://example.com/api/v1/distributions"`
	Transfers          string `json:"transfers" example:"https://example.com/api/v1/transfers"`
	ExchangeRates      string `json:"exchangeRates" example:"https://example.com/api/v1/exchange-rates"`
	Months             string `json:"months" example:"https://example.com/api/v1/months"`
}

// @Summary		v1 API
// @Description	Entrypoint for the v1 API, listing all endpoints
// @Tags			v1
// @Success		200	{object}	V1Response
// @Router			/v1 [get]
func GetV1(c *gin.Context) {
	url := "/v1"

	c.JSON(http.StatusOK, V1Response{
		Links: V1Links{
			Accounts:           url + "/accounts",
			Funds:              url + "/funds",
			Categories:         url + "/categories",
			Budgets:            url + "/budgets",
			BudgetItems:        url + "/budget-items",
			RecurringTemplates: url + "/recurring-templates",
			PlannedExpenses:    url + "/planned-expenses",
			PlannedIncomes:     url + "/planned-incomes",
			Incomes:            url + "/incomes",
			Expenses:           url + "/expenses",
			Distributions:      url + "/distributions",
			Transfers:          url + "/transfers",
			ExchangeRates:      url + "/exchange-rates",
			Months:             url + "/months",
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			v1
// @Success		204
// @Router			/v1 [options]
func OptionsV1(c *gin.Context) {
	c.Header("allow", "GET")
	c.Status(http.StatusNoContent)
}
