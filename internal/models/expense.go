package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is an actual, booked expense. Expenses are created by the
// engine when an obligation is confirmed or directly for unplanned
// spending. FundedAmount is the portion that was drawn from FundID.
type Expense struct {
	DefaultModel
	CategoryID   uuid.UUID
	Category     Category `json:"-"`
	Note         string
	Amount       decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency     string
	Date         time.Time
	AccountID    uuid.UUID
	Account      Account `json:"-"`
	FundID       *uuid.UUID
	Fund         *Fund           `json:"-"`
	FundedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Note = strings.TrimSpace(e.Note)
	e.Currency = strings.TrimSpace(e.Currency)

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return checkCurrency(e.Currency)
}

func (e *Expense) AfterFind(tx *gorm.DB) error {
	_ = e.DefaultModel.AfterFind(tx)

	e.Date = e.Date.In(time.UTC)
	return nil
}

// CreateExpense books an unplanned expense. The funded portion is drawn
// from the fund, the remainder from the account, the same way confirming
// an obligation moves money. Spending fund money on a credit card records
// a reserve.
func CreateExpense(db *gorm.DB, expense Expense) (Expense, error) {
	if !expense.Amount.IsPositive() {
		return Expense{}, ErrAmountNotPositive
	}

	if expense.FundID == nil && expense.FundedAmount.IsPositive() {
		return Expense{}, ErrFundRequiredForFunding
	}

	if expense.FundedAmount.GreaterThan(expense.Amount) {
		return Expense{}, ErrFundedExceedsActual
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var account Account
		if err := tx.First(&account, expense.AccountID).Error; err != nil {
			return err
		}

		if expense.FundedAmount.IsPositive() {
			var fund Fund
			if err := tx.First(&fund, *expense.FundID).Error; err != nil {
				return err
			}

			if err := fund.withdraw(tx, expense.Currency, expense.FundedAmount); err != nil {
				return err
			}

			if account.IsCredit {
				reserve := CreditCardReserve{
					AccountID: account.ID,
					FundID:    fund.ID,
					Amount:    expense.FundedAmount,
					Remaining: expense.FundedAmount,
				}
				if err := tx.Create(&reserve).Error; err != nil {
					return err
				}
			}
		}

		if remainder := expense.Amount.Sub(expense.FundedAmount); remainder.IsPositive() {
			if err := account.withdraw(tx, remainder); err != nil {
				return err
			}
		}

		return tx.Create(&expense).Error
	})

	return expense, err
}

// DeleteExpense removes an expense and returns its amount to the account.
// The funded portion goes back into the fund. Reserves recorded for the
// expense are not retracted, they are settled through the reserve
// endpoints.
func DeleteExpense(db *gorm.DB, expense *Expense) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var account Account
		if err := tx.First(&account, expense.AccountID).Error; err != nil {
			return err
		}

		if expense.FundedAmount.IsPositive() {
			var fund Fund
			if err := tx.First(&fund, *expense.FundID).Error; err != nil {
				return err
			}

			if err := fund.deposit(tx, expense.Currency, expense.FundedAmount); err != nil {
				return err
			}
		}

		if remainder := expense.Amount.Sub(expense.FundedAmount); remainder.IsPositive() {
			if err := account.deposit(tx, remainder); err != nil {
				return err
			}
		}

		return tx.Delete(expense).Error
	})
}
