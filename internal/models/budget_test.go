package models_test

import (
	"github.com/kopilka/backend/internal/models"
	"github.com/kopilka/backend/internal/types"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestEnsureBudgetIsIdempotent() {
	month := types.NewMonth(2026, 3)

	first, err := models.EnsureBudget(models.DB, month)
	suite.Require().Nil(err)

	second, err := models.EnsureBudget(models.DB, month)
	suite.Require().Nil(err)
	suite.Assert().Equal(first.ID, second.ID)

	var count int64
	suite.Require().Nil(models.DB.Model(&models.Budget{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestBudgetMonthUnique() {
	budget := suite.createTestBudget(types.NewMonth(2026, 3))

	err := models.DB.Create(&models.Budget{Month: budget.Month}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetMonthNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetItemUniquePerCategory() {
	budget := suite.createTestBudget(types.NewMonth(2026, 3))
	category := suite.createTestCategory(models.Category{})

	suite.createTestBudgetItem(models.BudgetItem{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		PlannedAmount: decimal.NewFromInt(500),
	})

	err := models.DB.Create(&models.BudgetItem{
		BudgetID:      budget.ID,
		CategoryID:    category.ID,
		PlannedAmount: decimal.NewFromInt(700),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrBudgetItemNotUnique)
}

func (suite *TestSuiteStandard) TestBudgetItemFundAllocationRequiresFund() {
	budget := suite.createTestBudget(types.NewMonth(2026, 3))
	category := suite.createTestCategory(models.Category{})

	err := models.DB.Create(&models.BudgetItem{
		BudgetID:       budget.ID,
		CategoryID:     category.ID,
		PlannedAmount:  decimal.NewFromInt(500),
		FundAllocation: decimal.NewFromInt(100),
	}).Error
	suite.Assert().NotNil(err)
}
