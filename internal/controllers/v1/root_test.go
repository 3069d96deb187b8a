package v1_test

import (
	"net/http"

	v1 "github.com/kopilka/backend/internal/controllers/v1"
	"github.com/kopilka/backend/test"
)

func (suite *TestSuiteStandard) TestGetV1() {
	recorder := test.Request(suite.T(), http.MethodGet, "/v1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.V1Response
	test.DecodeResponse(suite.T(), &recorder, &response)

	expected := v1.V1Links{
		Accounts:           "/v1/accounts",
		Funds:              "/v1/funds",
		Categories:         "/v1/categories",
		Budgets:            "/v1/budgets",
		BudgetItems:        "/v1/budget-items",
		RecurringTemplates: "/v1/recurring-templates",
		PlannedExpenses:    "/v1/planned-expenses",
		PlannedIncomes:     "/v1/planned-incomes",
		Incomes:            "/v1/incomes",
		Expenses:           "/v1/expenses",
		Distributions:      "/v1/distributions",
		Transfers:          "/v1/transfers",
		ExchangeRates:      "/v1/exchange-rates",
		Months:             "/v1/months",
	}

	suite.Assert().Equal(expected, response.Links)
}

func (suite *TestSuiteStandard) TestOptionsV1() {
	recorder := test.Request(suite.T(), http.MethodOptions, "/v1", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)
	suite.Assert().Equal("GET", recorder.Header().Get("allow"))
}
