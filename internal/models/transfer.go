package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transfer moves money between two accounts.
type Transfer struct {
	DefaultModel
	SourceAccountID      uuid.UUID `gorm:"check:source_destination_different,source_account_id != destination_account_id"`
	SourceAccount        Account   `json:"-"`
	DestinationAccountID uuid.UUID
	DestinationAccount   Account `json:"-"`
	Amount               decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Note                 string
	Date                 time.Time
}

func (t *Transfer) BeforeSave(_ *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// CreateTransfer books a transfer and updates both account balances
// atomically.
func CreateTransfer(db *gorm.DB, transfer Transfer) (Transfer, error) {
	if !transfer.Amount.IsPositive() {
		return Transfer{}, ErrAmountNotPositive
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		var source, destination Account
		if err := tx.First(&source, transfer.SourceAccountID).Error; err != nil {
			return err
		}

		if err := tx.First(&destination, transfer.DestinationAccountID).Error; err != nil {
			return err
		}

		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		if err := source.withdraw(tx, transfer.Amount); err != nil {
			return err
		}

		return destination.deposit(tx, transfer.Amount)
	})
	if err != nil {
		return Transfer{}, err
	}

	return transfer, nil
}
