package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// CreditCardReserve records that a fund has financed spending on a credit
// card. The fund's contribution stays pending against the card's debt
// bookkeeping until it is applied. Remaining only ever decreases, a
// reserve is never re-grown.
type CreditCardReserve struct {
	DefaultModel
	AccountID uuid.UUID // The credit card
	Account   Account   `json:"-"`
	FundID    uuid.UUID // The financing fund
	Fund      Fund      `json:"-"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Remaining decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrReserveNotFound       = fmt.Errorf("%w credit card reserve matching your query", ErrResourceNotFound)
	ErrReserveAlreadyApplied = fmt.Errorf("%w: the reserve has already been applied", ErrInvalidState)
)

// ReserveApplication reports what an application run settled.
type ReserveApplication struct {
	AppliedCount  int             `json:"appliedCount"`  // Number of reserves that were consumed, fully or partially
	AppliedAmount decimal.Decimal `json:"appliedAmount"` // Sum of the consumed remaining amounts
}

// Repayment is the result of repaying a credit card.
type Repayment struct {
	Transfer        Transfer           `json:"transfer"`
	AppliedReserves ReserveApplication `json:"appliedReserves"`
}

// PendingReserves returns the card's reserves with remaining amounts,
// oldest first, and their total.
func (a Account) PendingReserves(db *gorm.DB) ([]CreditCardReserve, decimal.Decimal, error) {
	var reserves []CreditCardReserve
	// Ordering on the raw column keeps millisecond precision,
	// datetime() truncates to whole seconds
	err := db.
		Where("account_id = ? AND remaining > 0", a.ID).
		Order("created_at ASC, id ASC").
		Find(&reserves).Error
	if err != nil {
		return nil, decimal.Zero, err
	}

	total := decimal.Zero
	for _, r := range reserves {
		total = total.Add(r.Remaining)
	}

	return reserves, total, nil
}

// ApplyReserves consumes the selected reserves of a credit card in full.
//
// This is a pure accounting operation: no account or fund balance
// changes, the reserves' remaining amounts are set to zero to mark the
// fund contributions as settled. The batch is atomic, a single invalid
// id aborts the whole batch without any effect.
func ApplyReserves(db *gorm.DB, cardID uuid.UUID, reserveIDs []uuid.UUID) (ReserveApplication, error) {
	var result ReserveApplication

	err := db.Transaction(func(tx *gorm.DB) error {
		var card Account
		if err := tx.First(&card, cardID).Error; err != nil {
			return err
		}

		if !card.IsCredit {
			return ErrAccountNotCredit
		}

		seen := make([]uuid.UUID, 0, len(reserveIDs))
		for _, id := range reserveIDs {
			if slices.Contains(seen, id) {
				continue
			}
			seen = append(seen, id)

			var reserve CreditCardReserve
			err := tx.Where(&CreditCardReserve{AccountID: card.ID}).First(&reserve, id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
				return ErrReserveNotFound
			}
			if err != nil {
				return err
			}

			if !reserve.Remaining.IsPositive() {
				return ErrReserveAlreadyApplied
			}

			res := tx.Model(&CreditCardReserve{}).
				Where("id = ? AND remaining > 0", reserve.ID).
				Update("remaining", decimal.Zero)
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				return ErrConflictingUpdate
			}

			result.AppliedCount++
			result.AppliedAmount = result.AppliedAmount.Add(reserve.Remaining)
		}

		return nil
	})
	if err != nil {
		return ReserveApplication{}, err
	}

	return result, nil
}

// RepayCard transfers an amount from an account to the credit card,
// reducing the card's debt. When applyReserves is set, pending reserves
// are additionally applied oldest first, capped at the repayment amount.
// The last reserve in the selected set may be consumed partially when
// the cap splits it.
//
// Reserves with the same creation time are applied in ascending id
// order, which keeps the selection deterministic.
//
// The transfer and the reserve consumption are a single atomic unit.
func RepayCard(db *gorm.DB, cardID, fromAccountID uuid.UUID, amount decimal.Decimal, applyReserves bool) (Repayment, error) {
	if !amount.IsPositive() {
		return Repayment{}, ErrAmountNotPositive
	}

	var result Repayment

	err := db.Transaction(func(tx *gorm.DB) error {
		var card Account
		if err := tx.First(&card, cardID).Error; err != nil {
			return err
		}

		if !card.IsCredit {
			return ErrAccountNotCredit
		}

		var from Account
		if err := tx.First(&from, fromAccountID).Error; err != nil {
			return err
		}

		transfer := Transfer{
			SourceAccountID:      from.ID,
			DestinationAccountID: card.ID,
			Amount:               amount,
			Note:                 "credit card repayment",
		}
		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		if err := from.withdraw(tx, amount); err != nil {
			return err
		}

		if err := card.deposit(tx, amount); err != nil {
			return err
		}

		result.Transfer = transfer

		if !applyReserves {
			return nil
		}

		pending, _, err := card.PendingReserves(tx)
		if err != nil {
			return err
		}

		left := amount
		for _, reserve := range pending {
			if !left.IsPositive() {
				break
			}

			take := reserve.Remaining
			if take.GreaterThan(left) {
				take = left
			}

			res := tx.Model(&CreditCardReserve{}).
				Where("id = ? AND remaining >= ?", reserve.ID, take).
				Update("remaining", gorm.Expr("remaining - ?", take))
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				return ErrConflictingUpdate
			}

			left = left.Sub(take)
			result.AppliedReserves.AppliedCount++
			result.AppliedReserves.AppliedAmount = result.AppliedReserves.AppliedAmount.Add(take)
		}

		return nil
	})
	if err != nil {
		return Repayment{}, err
	}

	return result, nil
}
