package models_test

import (
	"time"

	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) summarize(budget models.Budget) models.MonthSummary {
	conv, err := models.LoadConverter(models.DB, "RUB")
	suite.Require().Nil(err)

	summary, err := budget.Summary(models.DB, conv)
	suite.Require().Nil(err)

	return summary
}

func (suite *TestSuiteStandard) TestSummaryEmptyBudget() {
	budget := suite.createTestBudget(types.MonthOf(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	summary := suite.summarize(budget)

	suite.Assert().Equal("RUB", summary.Currency)
	suite.Assert().True(summary.TotalPlanned.IsZero())
	suite.Assert().True(summary.TotalActual.IsZero())
	suite.Assert().True(summary.ExpectedIncome.IsZero())
	suite.Assert().True(summary.ReceivedIncome.IsZero())
	suite.Assert().True(summary.AvailableForPlanning.IsZero())
	suite.Assert().True(summary.ActuallyAvailable.IsZero())
	suite.Assert().Empty(summary.Warnings)
}

func (suite *TestSuiteStandard) TestSummary() {
	month := types.MonthOf(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	budget := suite.createTestBudget(month)
	category := suite.createTestCategory(models.Category{Name: "Housing"})
	account := suite.createTestAccount(models.Account{Name: "Checking"})
	fund := suite.createTestFund(models.Fund{Name: "Vacation"})

	suite.createTestBudgetItem(models.BudgetItem{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		PlannedAmount: decimal.NewFromInt(1500),
	})
	suite.createTestBudgetItem(models.BudgetItem{
		BudgetID:      budget.ID,
		CategoryID:    suite.createTestCategory(models.Category{Name: "Groceries"}).ID,
		PlannedAmount: decimal.NewFromInt(600),
	})

	// Expected income of 100,000, a skipped 5,000 no longer counts
	suite.createTestPlannedIncome(models.PlannedIncome{
		BudgetID:      budget.ID,
		Source:        "Employer",
		PlannedAmount: decimal.NewFromInt(100000),
		PlannedDate:   month.Day(25),
	})
	skipped := suite.createTestPlannedIncome(models.PlannedIncome{
		BudgetID:      budget.ID,
		Source:        "Side job",
		PlannedAmount: decimal.NewFromInt(5000),
		PlannedDate:   month.Day(10),
	})
	suite.Require().Nil(skipped.Skip(models.DB))

	// The salary actually arrives
	income := suite.createTestIncome(models.Income{
		Source:    "Employer",
		Amount:    decimal.NewFromInt(100000),
		Date:      month.Day(25),
		AccountID: account.ID,
	})

	// 50,000 planned towards the fund, 30,000 of it actually moved
	distribution, err := models.PlanDistribution(models.DB, income.ID, fund.ID, decimal.NewFromInt(50000))
	suite.Require().Nil(err)
	suite.Require().Nil(distribution.Confirm(models.DB, decimal.NewFromInt(30000), account.ID))

	// A pending obligation partially financed by the fund
	suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Rent",
		PlannedAmount: decimal.NewFromInt(800),
		PlannedDate:   month.Day(28),
		FundID:        &fund.ID,
		FundedAmount:  decimal.NewFromInt(300),
	})

	// A confirmed obligation, paid entirely from the account
	confirmed := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Utilities",
		PlannedAmount: decimal.NewFromInt(2000),
		PlannedDate:   month.Day(15),
	})
	suite.Require().Nil(confirmed.Confirm(models.DB, models.ExpenseConfirmation{
		ActualAmount: decimal.NewNullDecimal(decimal.NewFromFloat(1954.10)),
		AccountID:    account.ID,
	}))

	summary := suite.summarize(budget)

	suite.Assert().True(summary.TotalPlanned.Equal(decimal.NewFromInt(2100)), "total planned is %s", summary.TotalPlanned)
	suite.Assert().True(summary.TotalActual.Equal(decimal.NewFromFloat(1954.10)), "total actual is %s", summary.TotalActual)

	suite.Assert().True(summary.PendingObligations.Total.Equal(decimal.NewFromInt(800)))
	suite.Assert().True(summary.PendingObligations.FromFund.Equal(decimal.NewFromInt(300)))
	suite.Assert().True(summary.PendingObligations.FromBudget.Equal(decimal.NewFromInt(500)))

	suite.Assert().True(summary.ConfirmedObligations.Total.Equal(decimal.NewFromFloat(1954.10)))
	suite.Assert().True(summary.ConfirmedObligations.FromFund.IsZero())
	suite.Assert().True(summary.ConfirmedObligations.FromBudget.Equal(decimal.NewFromFloat(1954.10)))

	suite.Assert().True(summary.ExpectedIncome.Equal(decimal.NewFromInt(100000)), "expected income is %s", summary.ExpectedIncome)
	suite.Assert().True(summary.ReceivedIncome.Equal(decimal.NewFromInt(100000)), "received income is %s", summary.ReceivedIncome)

	suite.Assert().True(summary.ExpectedFundDistributions.Equal(decimal.NewFromInt(50000)))
	suite.Assert().True(summary.ActualFundDistributions.Equal(decimal.NewFromInt(30000)))

	// 100,000 - 2,100 - 50,000
	suite.Assert().True(summary.AvailableForPlanning.Equal(decimal.NewFromInt(47900)), "available for planning is %s", summary.AvailableForPlanning)

	// 100,000 - 1,954.10 - 30,000
	suite.Assert().True(summary.ActuallyAvailable.Equal(decimal.NewFromFloat(68045.90)), "actually available is %s", summary.ActuallyAvailable)

	suite.Assert().Empty(summary.Warnings)
}

func (suite *TestSuiteStandard) TestSummaryIsDeterministic() {
	month := types.MonthOf(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	budget := suite.createTestBudget(month)
	account := suite.createTestAccount(models.Account{})

	suite.createTestIncome(models.Income{
		Source:    "Employer",
		Amount:    decimal.NewFromInt(42000),
		Date:      month.Day(5),
		AccountID: account.ID,
	})

	first := suite.summarize(budget)
	second := suite.summarize(budget)

	suite.Assert().Equal(first, second)
}

func (suite *TestSuiteStandard) TestSummaryIgnoresOtherMonths() {
	march := types.MonthOf(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	budget := suite.createTestBudget(march)
	account := suite.createTestAccount(models.Account{})

	// Received in April, not part of the March summary
	suite.createTestIncome(models.Income{
		Source:    "Employer",
		Amount:    decimal.NewFromInt(90000),
		Date:      time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC),
		AccountID: account.ID,
	})

	summary := suite.summarize(budget)
	suite.Assert().True(summary.ReceivedIncome.IsZero(), "received income is %s", summary.ReceivedIncome)
}

func (suite *TestSuiteStandard) TestSummaryConvertsCurrencies() {
	month := types.MonthOf(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	budget := suite.createTestBudget(month)
	account := suite.createTestAccount(models.Account{Currency: "USD"})

	suite.createTestExchangeRate(models.ExchangeRate{
		FromCurrency: "USD",
		ToCurrency:   "RUB",
		Rate:         decimal.NewFromInt(90),
	})

	suite.createTestIncome(models.Income{
		Source:    "Contract",
		Amount:    decimal.NewFromInt(1000),
		Currency:  "USD",
		Date:      month.Day(3),
		AccountID: account.ID,
	})

	summary := suite.summarize(budget)

	suite.Assert().True(summary.ReceivedIncome.Equal(decimal.NewFromInt(90000)), "received income is %s", summary.ReceivedIncome)
	suite.Assert().Empty(summary.Warnings)
}

func (suite *TestSuiteStandard) TestSummaryWarnsAboutMissingRates() {
	month := types.MonthOf(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	budget := suite.createTestBudget(month)
	account := suite.createTestAccount(models.Account{Currency: "EUR"})

	suite.createTestIncome(models.Income{
		Source:    "Contract",
		Amount:    decimal.NewFromInt(500),
		Currency:  "EUR",
		Date:      month.Day(3),
		AccountID: account.ID,
	})

	summary := suite.summarize(budget)

	// Without a rate the amount is carried over unconverted
	suite.Assert().True(summary.ReceivedIncome.Equal(decimal.NewFromInt(500)), "received income is %s", summary.ReceivedIncome)
	suite.Assert().Equal([]string{"no exchange rate for EUR, amounts used unconverted"}, summary.Warnings)
}
