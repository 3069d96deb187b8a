package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlannedIncome is an expected income awaiting confirmation or skip.
type PlannedIncome struct {
	DefaultModel
	BudgetID      uuid.UUID
	Budget        Budget `json:"-"`
	TemplateID    *uuid.UUID
	Source        string
	Name          string
	Note          string
	PlannedAmount decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency      string
	PlannedDate   time.Time
	Status        ObligationStatus
	AccountID     *uuid.UUID          // Account that receives the money, set at confirmation
	ActualAmount  decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"` // Set once confirmed
	IncomeID      *uuid.UUID          // The booked income, set once confirmed
}

func (p *PlannedIncome) BeforeSave(_ *gorm.DB) error {
	p.Source = strings.TrimSpace(p.Source)
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

	return checkCurrency(p.Currency)
}

func (p *PlannedIncome) BeforeCreate(tx *gorm.DB) error {
	_ = p.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*PlannedIncome)
	return tx.First(&Budget{}, toSave.BudgetID).Error
}

func (p *PlannedIncome) AfterFind(tx *gorm.DB) error {
	_ = p.DefaultModel.AfterFind(tx)

	p.PlannedDate = p.PlannedDate.In(time.UTC)
	return nil
}

// IncomeConfirmation carries the optional actual amount and the receiving
// account for confirming a planned income.
type IncomeConfirmation struct {
	ActualAmount decimal.NullDecimal `json:"actualAmount"` // Defaults to the planned amount
	AccountID    uuid.UUID           `json:"accountId"`    // Account that receives the money
}

// Confirm transitions a pending planned income to confirmed, books the
// actual income and deposits it on the receiving account.
func (p *PlannedIncome) Confirm(db *gorm.DB, confirmation IncomeConfirmation) error {
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

		var account Account
		if err := tx.First(&account, confirmation.AccountID).Error; err != nil {
			return err
		}

		res := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&PlannedIncome{}).
			Where("id = ? AND status = ?", p.ID, ObligationStatusPending).
			Update("status", ObligationStatusConfirmed)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrConflictingUpdate
		}

		income := Income{
			Source:    p.Source,
			Note:      p.Name,
			Amount:    actual,
			Currency:  p.Currency,
			Date:      p.PlannedDate,
			AccountID: account.ID,
		}
		if err := tx.Create(&income).Error; err != nil {
			return err
		}

		if err := account.deposit(tx, actual); err != nil {
			return err
		}

		p.Status = ObligationStatusConfirmed
		p.ActualAmount = decimal.NewNullDecimal(actual)
		p.AccountID = &account.ID
		p.IncomeID = &income.ID

		return tx.Session(&gorm.Session{SkipHooks: true}).Model(&PlannedIncome{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"actual_amount": p.ActualAmount,
			"account_id":    p.AccountID,
			"income_id":     p.IncomeID,
		}).Error
	})
}

// Skip transitions a pending planned income to skipped. No money moves.
func (p *PlannedIncome) Skip(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(p, p.ID).Error; err != nil {
			return err
		}

		if err := p.Status.checkPending(); err != nil {
			return err
		}

		res := tx.Session(&gorm.Session{SkipHooks: true}).
			Model(&PlannedIncome{}).
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
