package models

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/kopilka/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the planning container for a single calendar month.
// It is created lazily on the first write that needs it.
type Budget struct {
	DefaultModel
	Month types.Month `gorm:"uniqueIndex"`
	Note  string
}

// BudgetItem is the planned amount for one category in a budget.
// Amounts are in the base currency. A budget item may optionally be
// financed from a fund up to FundAllocation.
type BudgetItem struct {
	DefaultModel
	BudgetID       uuid.UUID `gorm:"uniqueIndex:budget_item_budget_id_category_id"`
	Budget         Budget    `json:"-"`
	CategoryID     uuid.UUID `gorm:"uniqueIndex:budget_item_budget_id_category_id"`
	Category       Category  `json:"-"`
	PlannedAmount  decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	FundID         *uuid.UUID
	Fund           *Fund           `json:"-"`
	FundAllocation decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Notes          string
}

var (
	ErrBudgetMonthNotUnique = errors.New("there is already a budget for this month")
	ErrBudgetItemNotUnique  = errors.New("there is already a budget item for this category and month")
)

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Note = strings.TrimSpace(b.Note)
	return nil
}

func (i *BudgetItem) BeforeSave(_ *gorm.DB) error {
	i.Notes = strings.TrimSpace(i.Notes)

	if i.FundID == nil && !i.FundAllocation.IsZero() {
		return errors.New("a fund allocation requires a fund")
	}

	return nil
}

func (i *BudgetItem) BeforeCreate(tx *gorm.DB) error {
	_ = i.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*BudgetItem)
	return i.checkIntegrity(tx, *toSave)
}

// checkIntegrity verifies references to other resources
func (i *BudgetItem) checkIntegrity(tx *gorm.DB, toSave BudgetItem) error {
	err := tx.First(&Budget{}, toSave.BudgetID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Category{}, toSave.CategoryID).Error
	if err != nil {
		return err
	}

	if toSave.FundID != nil {
		return tx.First(&Fund{}, *toSave.FundID).Error
	}

	return nil
}

// EnsureBudget returns the budget for a month, creating it if it does
// not exist yet.
func EnsureBudget(tx *gorm.DB, month types.Month) (Budget, error) {
	var budget Budget
	err := tx.Where("month >= date(?) AND month < date(?)", month, month.AddDate(0, 1)).First(&budget).Error
	if err == nil {
		return budget, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, ErrResourceNotFound) {
		return Budget{}, err
	}

	budget = Budget{Month: month}
	err = tx.Create(&budget).Error
	return budget, err
}

// Items returns all budget items of the budget.
func (b Budget) Items(db *gorm.DB) ([]BudgetItem, error) {
	var items []BudgetItem
	err := db.Where(&BudgetItem{BudgetID: b.ID}).Find(&items).Error
	return items, err
}
