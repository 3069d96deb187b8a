package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Account represents a money account, e.g. a bank account or a credit card.
//
// The Balance is a cached value. It is only ever changed by the engine's
// ledger operations (expenses, incomes, transfers, adjustments), all of
// which run inside a database transaction.
type Account struct {
	DefaultModel
	Name         string `gorm:"uniqueIndex"`
	Note         string
	Currency     string
	OnBudget     bool
	IsCredit     bool
	LinkedFundID *uuid.UUID // Credit cards may be linked to one fund for reserve accumulation
	LinkedFund   *Fund      `json:"-"`
	Balance      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Archived     bool
}

var (
	ErrAccountNameNotUnique          = errors.New("the account name must be unique")
	ErrAccountNotCredit              = fmt.Errorf("%w: the account is not a credit card", ErrInvalidState)
	ErrLinkedFundOnlyForCreditCards  = errors.New("only credit card accounts can be linked to a fund")
	ErrInsufficientAccountBalance    = fmt.Errorf("%w: the account balance is too low", ErrInsufficientBalance)
	ErrSourceDoesNotEqualDestination = errors.New("source and destination accounts must be different")
)

// BeforeSave validates the account and trims whitespace from all strings.
func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Note = strings.TrimSpace(a.Note)
	a.Currency = strings.TrimSpace(a.Currency)

	if !a.IsCredit && a.LinkedFundID != nil {
		return ErrLinkedFundOnlyForCreditCards
	}

	return checkCurrency(a.Currency)
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Account)
	return a.checkIntegrity(tx, *toSave)
}

func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("LinkedFundID") {
		toSave := tx.Statement.Dest.(Account)
		return a.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (a *Account) checkIntegrity(tx *gorm.DB, toSave Account) error {
	if toSave.LinkedFundID == nil {
		return nil
	}

	return tx.First(&Fund{}, *toSave.LinkedFundID).Error
}

// deposit adds an amount to the cached balance. Must run inside the
// transaction of the ledger operation that moves the money.
func (a *Account) deposit(tx *gorm.DB, amount decimal.Decimal) error {
	// Bookkeeping update, the validation hooks do not apply here
	res := tx.Session(&gorm.Session{SkipHooks: true}).
		Model(&Account{}).
		Where("id = ?", a.ID).
		Update("balance", gorm.Expr("balance + ?", amount))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w account matching your query", ErrResourceNotFound)
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// withdraw removes an amount from the cached balance.
//
// Regular accounts may not go below zero. Credit cards may, their
// negative balance is the debt on the card.
func (a *Account) withdraw(tx *gorm.DB, amount decimal.Decimal) error {
	q := tx.Session(&gorm.Session{SkipHooks: true}).Model(&Account{}).Where("id = ?", a.ID)
	if !a.IsCredit {
		q = q.Where("balance >= ?", amount)
	}

	res := q.Update("balance", gorm.Expr("balance - ?", amount))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		if !a.IsCredit {
			return ErrInsufficientAccountBalance
		}
		return fmt.Errorf("%w account matching your query", ErrResourceNotFound)
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Adjust corrects the cached balance by a signed delta, e.g. after
// reconciling the account against a bank statement.
func (a *Account) Adjust(db *gorm.DB, delta decimal.Decimal) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(a, a.ID).Error; err != nil {
			return err
		}

		if delta.IsNegative() {
			return a.withdraw(tx, delta.Neg())
		}

		return a.deposit(tx, delta)
	})
}
