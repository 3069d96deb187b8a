package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlannedExpense is a scheduled payment awaiting confirmation or skip.
type PlannedExpense struct {
	DefaultModel
	BudgetID     uuid.UUID
	Budget       Budget `json:"-"`
	TemplateID   *uuid.UUID
	CategoryID   uuid.UUID
	Category     Category `json:"-"`
	Name         string
	Note         string
	PlannedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency     string
	PlannedDate  time.Time
	Status       ObligationStatus
	FundID       *uuid.UUID // Fund that finances part of the expense
	Fund         *Fund      `json:"-"`
	FundedAmount decimal.Decimal     `gorm:"type:DECIMAL(20,8)"` // Portion drawn from the fund at confirmation
	AccountID    *uuid.UUID          // Account that covers the remainder, set at confirmation
	ActualAmount decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"` // Set once confirmed
	ExpenseID    *uuid.UUID          // The booked expense, set once confirmed
}

func (p *PlannedExpense) BeforeSave(_ *gorm.DB) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)
	p.Currency = strings.TrimSpace(p.Currency)

	if p.Status == "" {
		p.Status = ObligationStatusPending
	}

	if p.PlannedDate.IsZero() {
		p.PlannedDate = time.Now().In(time.UTC)
	} else {
		p.PlannedDate = p.PlannedDate.In(time.UTC)
	}

	if p.FundID != nil && p.FundedAmount.GreaterThan(p.PlannedAmount) {
		return ErrFundedExceedsPlanned
	}

	return checkCurrency(p.Currency)
}

func (p *PlannedExpense) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*PlannedExpense)
	err := tx.First(&Budget{}, toSave.BudgetID).Error
	if err != nil {
		return err
	}

	return tx.First(&Category{}, toSave.CategoryID).Error
}

func (p *PlannedExpense) AfterFind(tx *gorm.DB) error {
	_ = p.DefaultModel.AfterFind(tx)

	p.PlannedDate = p.PlannedDate.In(time.UTC)
	return nil
}

// ExpenseConfirmation carries the optional actual amount and funding for
// confirming a planned expense.
type ExpenseConfirmation struct {
	ActualAmount decimal.NullDecimal `json:"actualAmount"` // Defaults to the planned amount
	AccountID    uuid.UUID           `json:"accountId"`    // Account that pays the unfunded remainder
	FundID       *uuid.UUID          `json:"fundId"`       // Fund financing part of the expense
	FundedAmount decimal.Decimal     `json:"fundedAmount"` // Amount drawn from the fund
}

// Confirm transitions a pending planned expense to confirmed and books
// the actual expense.
//
// The funded amount is withdrawn from the fund's asset in the expense's
// currency, the remainder is withdrawn from the account. When a fund
// finances spending on a credit card, a reserve is recorded so that the
// fund's contribution can later be settled against the card's debt.
//
// A concurrent transition on the same obligation loses the conditional
// status update and fails with ErrConflictingUpdate.
func (p *PlannedExpense) Confirm(db *gorm.DB, confirmation ExpenseConfirmation) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(p, p.ID).Error; err != nil {
			return err
		}

		if err := p.Status.checkPending(); err != nil {
			return err
		}

		actual := p.PlannedAmount
		if confirmation.ActualAmount.Valid {
			actual = confirmation.ActualAmount.Decimal
		}

		if !actual.IsPositive() {
			return ErrAmountNotPositive
		}

		funded := decimal.Zero
		if confirmation.FundID != nil {
			funded = confirmation.FundedAmount
			if funded.GreaterThan(actual) {
				return ErrFundedExceedsActual
			}
		}

		var account Account
		if err := tx.First(&account, confirmation.AccountID).Error; err != nil {
			return err
		}

		// Claim the obligation. Losing the conditional update means a
		// concurrent transition got there first.
		res := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&PlannedExpense{}).
			Where("id = ? AND status = ?", p.ID, ObligationStatusPending).
			Update("status", ObligationStatusConfirmed)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrConflictingUpdate
		}

		if funded.IsPositive() {
			var fund Fund
			if err := tx.First(&fund, *confirmation.FundID).Error; err != nil {
				return err
			}

			if err := fund.withdraw(tx, p.Currency, funded); err != nil {
				return err
			}

			if account.IsCredit {
				reserve := CreditCardReserve{
					AccountID: account.ID,
					FundID:    fund.ID,
					Amount:    funded,
					Remaining: funded,
				}
				if err := tx.Create(&reserve).Error; err != nil {
					return err
				}
			}
		}

		if remainder := actual.Sub(funded); remainder.IsPositive() {
			if err := account.withdraw(tx, remainder); err != nil {
				return err
			}
		}

		expense := Expense{
			CategoryID:   p.CategoryID,
			Note:         p.Name,
			Amount:       actual,
			Currency:     p.Currency,
			Date:         p.PlannedDate,
			AccountID:    account.ID,
			FundID:       confirmation.FundID,
			FundedAmount: funded,
		}
		if err := tx.Create(&expense).Error; err != nil {
			return err
		}

		p.Status = ObligationStatusConfirmed
		p.ActualAmount = decimal.NewNullDecimal(actual)
		p.AccountID = &account.ID
		p.FundID = confirmation.FundID
		p.FundedAmount = funded
		p.ExpenseID = &expense.ID

		return tx.Session(&gorm.Session{SkipHooks: true}).Model(&PlannedExpense{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"actual_amount": p.ActualAmount,
			"account_id":    p.AccountID,
			"fund_id":       p.FundID,
			"funded_amount": p.FundedAmount,
			"expense_id":    p.ExpenseID,
		}).Error
	})
}

// Skip transitions a pending planned expense to skipped. No money moves.
func (p *PlannedExpense) Skip(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(p, p.ID).Error; err != nil {
			return err
		}

		if err := p.Status.checkPending(); err != nil {
			return err
		}

		res := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&PlannedExpense{}).
			Where("id = ? AND status = ?", p.ID, ObligationStatusPending).
			Update("status", ObligationStatusSkipped)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrConflictingUpdate
		}

		p.Status = ObligationStatusSkipped
		return nil
	})
}
