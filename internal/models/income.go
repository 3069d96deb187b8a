package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Income is an actual, received income. It may fan out into zero or more
// distributions that move parts of it into funds.
type Income struct {
	DefaultModel
	Source    string
	Note      string
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency  string
	Date      time.Time
	AccountID uuid.UUID
	Account   Account `json:"-"`
}

func (i *Income) BeforeSave(_ *gorm.DB) error {
	i.Source = strings.TrimSpace(i.Source)
	i.Note = strings.TrimSpace(i.Note)
	i.Currency = strings.TrimSpace(i.Currency)

	if i.Date.IsZero() {
		i.Date = time.Now().In(time.UTC)
	} else {
		i.Date = i.Date.In(time.UTC)
	}

	return checkCurrency(i.Currency)
}

func (i *Income) AfterFind(tx *gorm.DB) error {
	_ = i.DefaultModel.AfterFind(tx)

	i.Date = i.Date.In(time.UTC)
	return nil
}

var ErrIncomeHasDistributions = fmt.Errorf("%w: the income still has distributions", ErrInvalidState)

// CreateIncome books an unplanned income and deposits its amount on the
// receiving account.
func CreateIncome(db *gorm.DB, income Income) (Income, error) {
	if !income.Amount.IsPositive() {
		return Income{}, ErrAmountNotPositive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var account Account
		if err := tx.First(&account, income.AccountID).Error; err != nil {
			return err
		}

		if err := tx.Create(&income).Error; err != nil {
			return err
		}

		return account.deposit(tx, income.Amount)
	})

	return income, err
}

// DeleteIncome removes an income and withdraws its amount from the
// receiving account again. Incomes that still have distributions cannot
// be deleted, their distributions have to be cancelled and deleted first.
func DeleteIncome(db *gorm.DB, income *Income) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&IncomeDistribution{}).Where("income_id = ?", income.ID).Count(&count).Error
		if err != nil {
			return err
		}

		if count > 0 {
			return ErrIncomeHasDistributions
		}

		var account Account
		if err := tx.First(&account, income.AccountID).Error; err != nil {
			return err
		}

		if err := account.withdraw(tx, income.Amount); err != nil {
			return err
		}

		return tx.Delete(income).Error
	})
}

// Distributions returns all distributions of the income.
func (i Income) Distributions(db *gorm.DB) ([]IncomeDistribution, error) {
	var distributions []IncomeDistribution
	err := db.Where(&IncomeDistribution{IncomeID: i.ID}).Order("created_at ASC").Find(&distributions).Error
	return distributions, err
}

// distributedPlannedSum returns the sum of the planned amounts of the
// income's distributions, excluding the distribution with the given ID.
func (i Income) distributedPlannedSum(tx *gorm.DB, exclude uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.NullDecimal

	err := tx.Table("income_distributions").
		Select("SUM(planned_amount)").
		Where("income_id = ? AND id != ? AND deleted_at IS NULL", i.ID, exclude).
		Row().
		Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("getting distributions for income %s failed: %w", i.ID, err)
	}

	// The sum is NULL when there are no distributions
	if !sum.Valid {
		return decimal.Zero, nil
	}

	return sum.Decimal, nil
}
