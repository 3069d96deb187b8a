package v1_test

import (
	"fmt"
	"net/http"
	"time"

	v1 "github.com/kopilka/backend/internal/controllers/v1"
	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/kopilka/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestPlannedExpenseUpdateKeepsState() {
	account := suite.createTestAccount(models.Account{})
	_ = suite.createTestIncome(models.Income{AccountID: account.ID, Amount: decimal.NewFromInt(1000)})

	budget := suite.createTestBudget(types.NewMonth(2026, time.October))
	category := suite.createTestCategory(models.Category{})
	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Internet",
		PlannedAmount: decimal.NewFromInt(100),
	})

	recorder := test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/planned-expenses/%s/confirm", expense.ID), map[string]any{
		"accountId": account.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	// The lifecycle fields must not be writable, only the descriptive
	// ones
	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/planned-expenses/%s", expense.ID), map[string]any{
		"status":       "pending",
		"fundedAmount": "50",
		"name":         "Internet and TV",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.Response[models.PlannedExpense]
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Require().NotNil(updated.Data)
	assert.Equal(suite.T(), models.ObligationStatusConfirmed, updated.Data.Status)
	assert.True(suite.T(), updated.Data.FundedAmount.IsZero())
	assert.Equal(suite.T(), "Internet and TV", updated.Data.Name)

	// A second confirmation must fail, the money already moved
	recorder = test.Request(suite.T(), http.MethodPost, fmt.Sprintf("/v1/planned-expenses/%s/confirm", expense.ID), map[string]any{
		"accountId": account.ID,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)

	recorder = test.Request(suite.T(), http.MethodGet, fmt.Sprintf("/v1/accounts/%s", account.ID), "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var after v1.Response[models.Account]
	test.DecodeResponse(suite.T(), &recorder, &after)
	suite.Require().NotNil(after.Data)
	assert.True(suite.T(), after.Data.Balance.Equal(decimal.NewFromInt(900)), "balance is %s", after.Data.Balance)
}

func (suite *TestSuiteStandard) TestPlannedIncomeUpdateKeepsState() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.November))

	var created v1.Response[models.PlannedIncome]
	recorder := test.Request(suite.T(), http.MethodPost, "/v1/planned-incomes", models.PlannedIncome{
		BudgetID:      budget.ID,
		Source:        "Employer",
		Name:          "Salary",
		Currency:      "RUB",
		PlannedAmount: decimal.NewFromInt(50000),
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Require().NotNil(created.Data)

	recorder = test.Request(suite.T(), http.MethodPatch, fmt.Sprintf("/v1/planned-incomes/%s", created.Data.ID), map[string]any{
		"status": "confirmed",
		"note":   "August payout",
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var updated v1.Response[models.PlannedIncome]
	test.DecodeResponse(suite.T(), &recorder, &updated)
	suite.Require().NotNil(updated.Data)
	assert.Equal(suite.T(), models.ObligationStatusPending, updated.Data.Status)
	assert.Equal(suite.T(), "August payout", updated.Data.Note)
}
