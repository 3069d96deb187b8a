package models_test

import (
	"time"

	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestConfirmDefaultsToPlannedAmount() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	account := suite.createTestAccount(models.Account{Balance: decimal.NewFromInt(5000)})

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Rent",
		PlannedAmount: decimal.NewFromInt(1800),
	})

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{AccountID: account.ID})
	suite.Require().Nil(err)

	suite.Assert().Equal(models.ObligationStatusConfirmed, expense.Status)
	suite.Assert().True(expense.ActualAmount.Valid)
	suite.Assert().True(expense.ActualAmount.Decimal.Equal(decimal.NewFromInt(1800)))
	suite.Require().NotNil(expense.ExpenseID)

	var booked models.Expense
	suite.Require().Nil(models.DB.First(&booked, *expense.ExpenseID).Error)
	suite.Assert().True(booked.Amount.Equal(decimal.NewFromInt(1800)))

	suite.Require().Nil(models.DB.First(&account, account.ID).Error)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromInt(3200)), "balance is %s", account.Balance)
}

func (suite *TestSuiteStandard) TestConfirmWithActualAmount() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	account := suite.createTestAccount(models.Account{})
	suite.Require().Nil(account.Adjust(models.DB, decimal.NewFromInt(5000)))

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Electricity",
		PlannedAmount: decimal.NewFromInt(2000),
	})

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{
		ActualAmount: decimal.NewNullDecimal(decimal.NewFromFloat(1954.10)),
		AccountID:    account.ID,
	})
	suite.Require().Nil(err)

	suite.Assert().True(expense.ActualAmount.Decimal.Equal(decimal.NewFromFloat(1954.10)))

	suite.Require().Nil(models.DB.First(&account, account.ID).Error)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromFloat(3045.90)), "balance is %s", account.Balance)
}

func (suite *TestSuiteStandard) TestConfirmWithFunding() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	account := suite.createTestAccount(models.Account{})
	suite.Require().Nil(account.Adjust(models.DB, decimal.NewFromInt(5000)))

	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(1000)})

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Insurance",
		PlannedAmount: decimal.NewFromInt(2100),
	})

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{
		AccountID:    account.ID,
		FundID:       &fund.ID,
		FundedAmount: decimal.NewFromInt(300),
	})
	suite.Require().Nil(err)

	// The fund covers 300, the account the remaining 1800
	amount, err := fund.AssetAmount(models.DB, "RUB")
	suite.Require().Nil(err)
	suite.Assert().True(amount.Equal(decimal.NewFromInt(700)), "fund asset is %s", amount)

	suite.Require().Nil(models.DB.First(&account, account.ID).Error)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromInt(3200)), "balance is %s", account.Balance)

	// No reserve for regular accounts
	var count int64
	suite.Require().Nil(models.DB.Model(&models.CreditCardReserve{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}

func (suite *TestSuiteStandard) TestConfirmOnCreditCardRecordsReserve() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	card := suite.createTestAccount(models.Account{IsCredit: true})

	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(1000)})

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Flight tickets",
		PlannedAmount: decimal.NewFromInt(800),
	})

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{
		AccountID:    card.ID,
		FundID:       &fund.ID,
		FundedAmount: decimal.NewFromInt(800),
	})
	suite.Require().Nil(err)

	reserves, total, err := card.PendingReserves(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(reserves, 1)
	suite.Assert().True(total.Equal(decimal.NewFromInt(800)), "total is %s", total)
	suite.Assert().Equal(fund.ID, reserves[0].FundID)

	// The fund fully covered the expense, the card did not pay anything
	suite.Require().Nil(models.DB.First(&card, card.ID).Error)
	suite.Assert().True(card.Balance.IsZero(), "balance is %s", card.Balance)
}

func (suite *TestSuiteStandard) TestConfirmFundedExceedsActual() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	account := suite.createTestAccount(models.Account{})
	fund := suite.createTestFund(models.Fund{})

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Rent",
		PlannedAmount: decimal.NewFromInt(500),
	})

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{
		AccountID:    account.ID,
		FundID:       &fund.ID,
		FundedAmount: decimal.NewFromInt(600),
	})
	suite.Assert().ErrorIs(err, models.ErrFundedExceedsActual)
	suite.Assert().ErrorIs(err, models.ErrOverAllocated)
}

func (suite *TestSuiteStandard) TestConfirmInsufficientFundBalanceIsAtomic() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	account := suite.createTestAccount(models.Account{})
	suite.Require().Nil(account.Adjust(models.DB, decimal.NewFromInt(5000)))

	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(100)})

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Rent",
		PlannedAmount: decimal.NewFromInt(1000),
	})

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{
		AccountID:    account.ID,
		FundID:       &fund.ID,
		FundedAmount: decimal.NewFromInt(300),
	})
	suite.Assert().ErrorIs(err, models.ErrInsufficientFundBalance)

	// The whole confirmation rolls back, nothing may have moved
	var reloaded models.PlannedExpense
	suite.Require().Nil(models.DB.First(&reloaded, expense.ID).Error)
	suite.Assert().Equal(models.ObligationStatusPending, reloaded.Status)

	suite.Require().Nil(models.DB.First(&account, account.ID).Error)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromInt(5000)), "balance is %s", account.Balance)
}

func (suite *TestSuiteStandard) TestConfirmTwiceFails() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	account := suite.createTestAccount(models.Account{})
	suite.Require().Nil(account.Adjust(models.DB, decimal.NewFromInt(1000)))

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Rent",
		PlannedAmount: decimal.NewFromInt(100),
	})

	suite.Require().Nil(expense.Confirm(models.DB, models.ExpenseConfirmation{AccountID: account.ID}))

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{AccountID: account.ID})
	suite.Assert().ErrorIs(err, models.ErrAlreadyConfirmed)
	suite.Assert().ErrorIs(err, models.ErrInvalidState)

	// The money moved exactly once
	suite.Require().Nil(models.DB.First(&account, account.ID).Error)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromInt(900)), "balance is %s", account.Balance)
}

func (suite *TestSuiteStandard) TestSkip() {
	budget := suite.createTestBudget(types.NewMonth(2026, time.January))
	category := suite.createTestCategory(models.Category{})
	account := suite.createTestAccount(models.Account{})

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Rent",
		PlannedAmount: decimal.NewFromInt(100),
	})

	suite.Require().Nil(expense.Skip(models.DB))
	suite.Assert().Equal(models.ObligationStatusSkipped, expense.Status)

	err := expense.Skip(models.DB)
	suite.Assert().ErrorIs(err, models.ErrAlreadySkipped)

	err = expense.Confirm(models.DB, models.ExpenseConfirmation{AccountID: account.ID})
	suite.Assert().ErrorIs(err, models.ErrAlreadySkipped)

	// No expense was booked
	var count int64
	suite.Require().Nil(models.DB.Model(&models.Expense{}).Count(&count).Error)
	suite.Assert().Equal(int64(0), count)
}
