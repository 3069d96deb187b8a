package models_test

import (
	"time"

	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// createTestReserve books a funded expense on the card so that a reserve
// with the given amount exists.
func (suite *TestSuiteStandard) createTestReserve(card models.Account, fund models.Fund, amount decimal.Decimal) models.CreditCardReserve {
	budget := suite.createTestBudget(types.NewMonth(2026, time.September))
	category := suite.createTestCategory(models.Category{})

	expense := suite.createTestPlannedExpense(models.PlannedExpense{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		Name:          "Funded card spending",
		PlannedAmount: amount,
	})

	err := expense.Confirm(models.DB, models.ExpenseConfirmation{
		AccountID:    card.ID,
		FundID:       &fund.ID,
		FundedAmount: amount,
	})
	suite.Require().Nil(err)

	var reserve models.CreditCardReserve
	err = models.DB.
		Where("account_id = ?", card.ID).
		Order("created_at DESC, id DESC").
		First(&reserve).Error
	suite.Require().Nil(err)

	return reserve
}

func (suite *TestSuiteStandard) TestApplyReserves() {
	card := suite.createTestAccount(models.Account{IsCredit: true})
	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(10000)})

	first := suite.createTestReserve(card, fund, decimal.NewFromInt(300))
	second := suite.createTestReserve(card, fund, decimal.NewFromInt(500))

	// The fund paid for everything, the card owes 0 to anyone but is
	// not negative since no unfunded remainder was withdrawn
	suite.Require().Nil(models.DB.First(&card, card.ID).Error)
	suite.Assert().True(card.Balance.IsZero(), "balance is %s", card.Balance)

	application, err := models.ApplyReserves(models.DB, card.ID, []uuid.UUID{first.ID, second.ID, first.ID})
	suite.Require().Nil(err)
	suite.Assert().Equal(2, application.AppliedCount, "duplicate ids must only be applied once")
	suite.Assert().True(application.AppliedAmount.Equal(decimal.NewFromInt(800)))

	// Applying is pure accounting, no balance changes
	suite.Require().Nil(models.DB.First(&card, card.ID).Error)
	suite.Assert().True(card.Balance.IsZero(), "balance is %s", card.Balance)

	_, total, err := card.PendingReserves(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(total.IsZero())
}

func (suite *TestSuiteStandard) TestApplyReservesErrors() {
	card := suite.createTestAccount(models.Account{IsCredit: true})
	regular := suite.createTestAccount(models.Account{})
	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(10000)})

	reserve := suite.createTestReserve(card, fund, decimal.NewFromInt(300))

	_, err := models.ApplyReserves(models.DB, regular.ID, []uuid.UUID{reserve.ID})
	suite.Assert().ErrorIs(err, models.ErrAccountNotCredit)

	_, err = models.ApplyReserves(models.DB, card.ID, []uuid.UUID{uuid.New()})
	suite.Assert().ErrorIs(err, models.ErrReserveNotFound)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	// A single invalid id aborts the whole batch
	_, err = models.ApplyReserves(models.DB, card.ID, []uuid.UUID{reserve.ID, uuid.New()})
	suite.Assert().ErrorIs(err, models.ErrReserveNotFound)

	_, total, err := card.PendingReserves(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(total.Equal(decimal.NewFromInt(300)), "the aborted batch must not consume anything")

	// Applying an already applied reserve fails
	_, err = models.ApplyReserves(models.DB, card.ID, []uuid.UUID{reserve.ID})
	suite.Require().Nil(err)
	_, err = models.ApplyReserves(models.DB, card.ID, []uuid.UUID{reserve.ID})
	suite.Assert().ErrorIs(err, models.ErrReserveAlreadyApplied)
}

func (suite *TestSuiteStandard) TestPendingReservesOrderIsOldestFirst() {
	card := suite.createTestAccount(models.Account{IsCredit: true})
	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(10000)})

	first := suite.createTestReserve(card, fund, decimal.NewFromInt(300))
	second := suite.createTestReserve(card, fund, decimal.NewFromInt(500))

	// Both reserves land in the same second, only milliseconds apart.
	// The order must still follow their age, not their random ids
	base := time.Now().In(time.UTC).Truncate(time.Second)
	suite.Require().Nil(models.DB.Model(&first).Update("created_at", base.Add(100*time.Millisecond)).Error)
	suite.Require().Nil(models.DB.Model(&second).Update("created_at", base.Add(700*time.Millisecond)).Error)

	reserves, total, err := card.PendingReserves(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(reserves, 2)
	suite.Assert().Equal(first.ID, reserves[0].ID)
	suite.Assert().Equal(second.ID, reserves[1].ID)
	suite.Assert().True(total.Equal(decimal.NewFromInt(800)))
}

func (suite *TestSuiteStandard) TestRepayCardAppliesOldestFirst() {
	card := suite.createTestAccount(models.Account{IsCredit: true})
	checking := suite.createTestAccount(models.Account{})
	suite.Require().Nil(checking.Adjust(models.DB, decimal.NewFromInt(10000)))

	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(10000)})

	first := suite.createTestReserve(card, fund, decimal.NewFromInt(5000))
	second := suite.createTestReserve(card, fund, decimal.NewFromInt(2000))

	// Make the first reserve unambiguously older than the second one
	suite.Require().Nil(models.DB.Model(&first).Update("created_at", time.Now().In(time.UTC).Add(-time.Hour)).Error)

	// Repaying 6,000 fully consumes the older 5,000 reserve and eats
	// 1,000 of the newer one
	repayment, err := models.RepayCard(models.DB, card.ID, checking.ID, decimal.NewFromInt(6000), true)
	suite.Require().Nil(err)
	suite.Assert().Equal(2, repayment.AppliedReserves.AppliedCount)
	suite.Assert().True(repayment.AppliedReserves.AppliedAmount.Equal(decimal.NewFromInt(6000)))

	reserves, total, err := card.PendingReserves(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(reserves, 1)
	suite.Assert().Equal(second.ID, reserves[0].ID)
	suite.Assert().True(total.Equal(decimal.NewFromInt(1000)), "remaining is %s", total)

	var consumed models.CreditCardReserve
	suite.Require().Nil(models.DB.Unscoped().First(&consumed, first.ID).Error)
	suite.Assert().True(consumed.Remaining.IsZero())

	// The transfer moved the money
	suite.Require().Nil(models.DB.First(&checking, checking.ID).Error)
	suite.Assert().True(checking.Balance.Equal(decimal.NewFromInt(4000)), "balance is %s", checking.Balance)

	suite.Require().Nil(models.DB.First(&card, card.ID).Error)
	suite.Assert().True(card.Balance.Equal(decimal.NewFromInt(6000)), "balance is %s", card.Balance)
}

func (suite *TestSuiteStandard) TestRepayCardCapsAtPendingTotal() {
	card := suite.createTestAccount(models.Account{IsCredit: true})
	checking := suite.createTestAccount(models.Account{})
	suite.Require().Nil(checking.Adjust(models.DB, decimal.NewFromInt(10000)))

	fund := suite.createTestFund(models.Fund{})
	_ = suite.createTestFundAsset(models.FundAsset{FundID: fund.ID, Currency: "RUB", Amount: decimal.NewFromInt(10000)})

	_ = suite.createTestReserve(card, fund, decimal.NewFromInt(2000))

	// Repaying 5,000 against a single 2,000 reserve transfers the full
	// amount but only applies what is pending
	repayment, err := models.RepayCard(models.DB, card.ID, checking.ID, decimal.NewFromInt(5000), true)
	suite.Require().Nil(err)
	suite.Assert().True(repayment.Transfer.Amount.Equal(decimal.NewFromInt(5000)))
	suite.Assert().Equal(1, repayment.AppliedReserves.AppliedCount)
	suite.Assert().True(repayment.AppliedReserves.AppliedAmount.Equal(decimal.NewFromInt(2000)), "applied %s", repayment.AppliedReserves.AppliedAmount)

	_, total, err := card.PendingReserves(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(total.IsZero())
}

func (suite *TestSuiteStandard) TestRepayCardWithoutReserves() {
	card := suite.createTestAccount(models.Account{IsCredit: true})
	checking := suite.createTestAccount(models.Account{})
	suite.Require().Nil(checking.Adjust(models.DB, decimal.NewFromInt(1000)))

	repayment, err := models.RepayCard(models.DB, card.ID, checking.ID, decimal.NewFromInt(500), false)
	suite.Require().Nil(err)
	suite.Assert().Equal(0, repayment.AppliedReserves.AppliedCount)
	suite.Assert().True(repayment.Transfer.Amount.Equal(decimal.NewFromInt(500)))

	// Repaying more than the source account holds fails
	_, err = models.RepayCard(models.DB, card.ID, checking.ID, decimal.NewFromInt(5000), false)
	suite.Assert().ErrorIs(err, models.ErrInsufficientAccountBalance)

	_, err = models.RepayCard(models.DB, checking.ID, card.ID, decimal.NewFromInt(100), false)
	suite.Assert().ErrorIs(err, models.ErrAccountNotCredit)

	_, err = models.RepayCard(models.DB, card.ID, checking.ID, decimal.Zero, false)
	suite.Assert().ErrorIs(err, models.ErrAmountNotPositive)
}
