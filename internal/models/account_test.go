package models_test

import (
	"github.com/kopilka/backend/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAccountTrimWhitespace() {
	account := suite.createTestAccount(models.Account{
		Name:     " Cash Wallet ",
		Note:     " the one in the drawer ",
		Currency: " RUB ",
	})

	suite.Assert().Equal("Cash Wallet", account.Name)
	suite.Assert().Equal("the one in the drawer", account.Note)
	suite.Assert().Equal("RUB", account.Currency)
}

func (suite *TestSuiteStandard) TestAccountNameUnique() {
	_ = suite.createTestAccount(models.Account{Name: "Checking"})

	err := models.DB.Create(&models.Account{Name: "Checking", Currency: "RUB"}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestAccountInvalidCurrency() {
	err := models.DB.Create(&models.Account{Name: "Checking", Currency: "XXXXX"}).Error
	suite.Assert().ErrorIs(err, models.ErrCurrencyInvalid)
}

func (suite *TestSuiteStandard) TestAccountLinkedFundOnlyForCreditCards() {
	fund := suite.createTestFund(models.Fund{})

	err := models.DB.Create(&models.Account{
		Name:         "Checking",
		Currency:     "RUB",
		LinkedFundID: &fund.ID,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrLinkedFundOnlyForCreditCards)

	card := suite.createTestAccount(models.Account{
		IsCredit:     true,
		LinkedFundID: &fund.ID,
	})
	suite.Assert().Equal(fund.ID, *card.LinkedFundID)
}

func (suite *TestSuiteStandard) TestAccountLinkedFundMustExist() {
	id := suite.createTestFund(models.Fund{}).ID
	suite.Require().Nil(models.DB.Delete(&models.Fund{DefaultModel: models.DefaultModel{ID: id}}).Error)

	err := models.DB.Create(&models.Account{
		Name:         "Card",
		Currency:     "RUB",
		IsCredit:     true,
		LinkedFundID: &id,
	}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAccountAdjust() {
	account := suite.createTestAccount(models.Account{})

	err := account.Adjust(models.DB, decimal.NewFromInt(250))
	suite.Require().Nil(err)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromInt(250)), "balance is %s", account.Balance)

	err = account.Adjust(models.DB, decimal.NewFromInt(-50))
	suite.Require().Nil(err)
	suite.Assert().True(account.Balance.Equal(decimal.NewFromInt(200)), "balance is %s", account.Balance)

	// A regular account may not go negative
	err = account.Adjust(models.DB, decimal.NewFromInt(-500))
	suite.Assert().ErrorIs(err, models.ErrInsufficientAccountBalance)
	suite.Assert().ErrorIs(err, models.ErrInsufficientBalance)
}

func (suite *TestSuiteStandard) TestCreditCardBalanceMayGoNegative() {
	card := suite.createTestAccount(models.Account{IsCredit: true})

	err := card.Adjust(models.DB, decimal.NewFromInt(-300))
	suite.Require().Nil(err)
	suite.Assert().True(card.Balance.Equal(decimal.NewFromInt(-300)), "balance is %s", card.Balance)
}
