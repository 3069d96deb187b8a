package models

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// IncomeDistribution allocates part of an income into a fund.
//
// A distribution is planned first and confirmed later. Confirmation moves
// the actual amount from a source account into the fund's asset in the
// income's currency. Cancelling a confirmed distribution is the exact
// inverse and restores the pre-confirmation balances.
type IncomeDistribution struct {
	DefaultModel
	IncomeID        uuid.UUID
	Income          Income `json:"-"`
	FundID          uuid.UUID
	Fund            Fund            `json:"-"`
	PlannedAmount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	ActualAmount    decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"` // Set while confirmed
	Completed       bool
	SourceAccountID *uuid.UUID // Account the money came from, set while confirmed
}

var (
	ErrDistributionOverAllocated = fmt.Errorf("%w: the planned amounts of all distributions must not exceed the income", ErrOverAllocated)
	ErrAlreadyCompleted          = fmt.Errorf("%w: the distribution has already been confirmed", ErrInvalidState)
	ErrNotCompleted              = fmt.Errorf("%w: the distribution has not been confirmed", ErrInvalidState)
)

// PlanDistribution creates a distribution in the not-completed state.
//
// It fails with ErrDistributionOverAllocated when the planned amounts of
// all of the income's distributions, including the new one, would exceed
// the income's amount.
func PlanDistribution(db *gorm.DB, incomeID, fundID uuid.UUID, planned decimal.Decimal) (IncomeDistribution, error) {
	if !planned.IsPositive() {
		return IncomeDistribution{}, ErrAmountNotPositive
	}

	var distribution IncomeDistribution
	err := db.Transaction(func(tx *gorm.DB) error {
		var income Income
		if err := tx.First(&income, incomeID).Error; err != nil {
			return err
		}

		var fund Fund
		if err := tx.First(&fund, fundID).Error; err != nil {
			return err
		}

		if fund.Status != FundStatusActive {
			return ErrFundNotActive
		}

		sum, err := income.distributedPlannedSum(tx, uuid.Nil)
		if err != nil {
			return err
		}

		if sum.Add(planned).GreaterThan(income.Amount) {
			return ErrDistributionOverAllocated
		}

		distribution = IncomeDistribution{
			IncomeID:      income.ID,
			FundID:        fund.ID,
			PlannedAmount: planned,
		}
		return tx.Create(&distribution).Error
	})
	if err != nil {
		return IncomeDistribution{}, err
	}

	return distribution, nil
}

// UpdatePlanned changes the planned amount of a not-completed
// distribution, re-validating the over-allocation invariant.
func (d *IncomeDistribution) UpdatePlanned(db *gorm.DB, planned decimal.Decimal) error {
	if !planned.IsPositive() {
		return ErrAmountNotPositive
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(d, d.ID).Error; err != nil {
			return err
		}

		if d.Completed {
			return ErrAlreadyCompleted
		}

		var income Income
		if err := tx.First(&income, d.IncomeID).Error; err != nil {
			return err
		}

		sum, err := income.distributedPlannedSum(tx, d.ID)
		if err != nil {
			return err
		}

		if sum.Add(planned).GreaterThan(income.Amount) {
			return ErrDistributionOverAllocated
		}

		res := tx.Model(&IncomeDistribution{}).
			Where("id = ? AND completed = ?", d.ID, false).
			Update("planned_amount", planned)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrConflictingUpdate
		}

		d.PlannedAmount = planned
		return nil
	})
}

// Confirm moves the actual amount from the source account into the
// fund's asset in the income's currency and marks the distribution as
// completed.
func (d *IncomeDistribution) Confirm(db *gorm.DB, actual decimal.Decimal, sourceAccountID uuid.UUID) error {
	if !actual.IsPositive() {
		return ErrAmountNotPositive
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(d, d.ID).Error; err != nil {
			return err
		}

		if d.Completed {
			return ErrAlreadyCompleted
		}

		var income Income
		if err := tx.First(&income, d.IncomeID).Error; err != nil {
			return err
		}

		var account Account
		if err := tx.First(&account, sourceAccountID).Error; err != nil {
			return err
		}

		var fund Fund
		if err := tx.First(&fund, d.FundID).Error; err != nil {
			return err
		}

		// Claim the distribution before moving money.
		res := tx.Model(&IncomeDistribution{}).
			Where("id = ? AND completed = ?", d.ID, false).
			Update("completed", true)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrConflictingUpdate
		}

		if err := account.withdraw(tx, actual); err != nil {
			return err
		}

		if err := fund.deposit(tx, income.Currency, actual); err != nil {
			return err
		}

		d.Completed = true
		d.ActualAmount = decimal.NewNullDecimal(actual)
		d.SourceAccountID = &account.ID

		return tx.Model(&IncomeDistribution{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
			"actual_amount":     d.ActualAmount,
			"source_account_id": d.SourceAccountID,
		}).Error
	})
}

// Cancel reverses a confirmed distribution exactly: the actual amount
// moves back from the fund's asset to the originating account and the
// distribution returns to the not-completed state.
//
// When the fund's asset has been spent below the actual amount in the
// meantime, the reversal fails with ErrInsufficientFundBalance. Refusing
// to over-draw the fund is intended behavior, not a defect.
func (d *IncomeDistribution) Cancel(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(d, d.ID).Error; err != nil {
			return err
		}

		if !d.Completed {
			return ErrNotCompleted
		}

		var income Income
		if err := tx.First(&income, d.IncomeID).Error; err != nil {
			return err
		}

		var account Account
		if err := tx.First(&account, *d.SourceAccountID).Error; err != nil {
			return err
		}

		var fund Fund
		if err := tx.First(&fund, d.FundID).Error; err != nil {
			return err
		}

		res := tx.Model(&IncomeDistribution{}).
			Where("id = ? AND completed = ?", d.ID, true).
			Update("completed", false)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrConflictingUpdate
		}

		actual := d.ActualAmount.Decimal

		if err := fund.withdraw(tx, income.Currency, actual); err != nil {
			return err
		}

		if err := account.deposit(tx, actual); err != nil {
			return err
		}

		d.Completed = false
		d.ActualAmount = decimal.NullDecimal{}
		d.SourceAccountID = nil

		return tx.Model(&IncomeDistribution{}).Where("id = ?", d.ID).Updates(map[string]interface{}{
			"actual_amount":     nil,
			"source_account_id": nil,
		}).Error
	})
}
