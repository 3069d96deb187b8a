package models_test

import (
	"github.com/kopilka/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateIncome() {
	account := suite.createTestAccount(models.Account{})

	income, err := models.CreateIncome(models.DB, models.Income{
		Source:    "Employer",
		Amount:    decimal.NewFromInt(100000),
		Currency:  "RUB",
		AccountID: account.ID,
	})
	suite.Require().Nil(err)
	suite.Assert().False(income.Date.IsZero())

	var reloaded models.Account
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", account.ID).Error)
	suite.Assert().True(reloaded.Balance.Equal(decimal.NewFromInt(100000)), "balance is %s", reloaded.Balance)
}

func (suite *TestSuiteStandard) TestCreateIncomeErrors() {
	account := suite.createTestAccount(models.Account{})

	_, err := models.CreateIncome(models.DB, models.Income{
		Source:    "Employer",
		Amount:    decimal.Zero,
		Currency:  "RUB",
		AccountID: account.ID,
	})
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
}

func (suite *TestSuiteStandard) TestDeleteIncome() {
	account := suite.createTestAccount(models.Account{})
	income := suite.createTestIncome(models.Income{
		Source:    "Employer",
		Amount:    decimal.NewFromInt(5000),
		AccountID: account.ID,
	})

	suite.Require().Nil(models.DeleteIncome(models.DB, &income))

	var reloaded models.Account
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", account.ID).Error)
	suite.Assert().True(reloaded.Balance.IsZero(), "balance is %s", reloaded.Balance)
}

func (suite *TestSuiteStandard) TestDeleteIncomeWithDistributions() {
	account := suite.createTestAccount(models.Account{})
	fund := suite.createTestFund(models.Fund{})
	income := suite.createTestIncome(models.Income{
		Source:    "Employer",
		Amount:    decimal.NewFromInt(5000),
		AccountID: account.ID,
	})

	_, err := models.PlanDistribution(models.DB, income.ID, fund.ID, decimal.NewFromInt(1000))
	suite.Require().Nil(err)

	err = models.DeleteIncome(models.DB, &income)
	suite.Assert().ErrorIs(err, models.ErrIncomeHasDistributions)

	// The income and the account balance are untouched
	var reloaded models.Account
	suite.Require().Nil(models.DB.First(&reloaded, "id = ?", account.ID).Error)
	suite.Assert().True(reloaded.Balance.Equal(decimal.NewFromInt(5000)))
}
