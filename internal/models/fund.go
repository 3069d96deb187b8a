package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FundStatus is the lifecycle status of a fund.
type FundStatus string

const (
	FundStatusActive    FundStatus = "active"
	FundStatusPaused    FundStatus = "paused"
	FundStatusCompleted FundStatus = "completed"
)

// Fund is a named savings bucket, distinct from an account. It holds one
// balance per currency. Money entering or leaving a fund is always
// mirrored by an opposite entry on an account, income or expense.
type Fund struct {
	DefaultModel
	Name   string `gorm:"uniqueIndex"`
	Note   string
	Status FundStatus
}

// FundAsset is the balance a fund holds in a single currency.
type FundAsset struct {
	DefaultModel
	FundID   uuid.UUID `gorm:"uniqueIndex:fund_asset_fund_id_currency"`
	Fund     Fund      `json:"-"`
	Currency string    `gorm:"uniqueIndex:fund_asset_fund_id_currency"`
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
}

var (
	ErrFundNameNotUnique       = errors.New("the fund name must be unique")
	ErrFundStatusInvalid       = errors.New("the fund status must be one of active, paused, completed")
	ErrFundNotActive           = fmt.Errorf("%w: the fund is not active", ErrInvalidState)
	ErrFundAssetNotUnique      = errors.New("a fund can only have one asset per currency")
	ErrInsufficientFundBalance = fmt.Errorf("%w: the fund does not hold enough of this currency", ErrInsufficientBalance)
)

// BeforeSave validates the fund and trims whitespace from all strings.
func (f *Fund) BeforeSave(_ *gorm.DB) error {
	f.Name = strings.TrimSpace(f.Name)
	f.Note = strings.TrimSpace(f.Note)

	if f.Status == "" {
		f.Status = FundStatusActive
	}

	switch f.Status {
	case FundStatusActive, FundStatusPaused, FundStatusCompleted:
		return nil
	}

	return ErrFundStatusInvalid
}

func (a *FundAsset) BeforeSave(_ *gorm.DB) error {
	a.Currency = strings.TrimSpace(a.Currency)
	return checkCurrency(a.Currency)
}

func (a *FundAsset) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*FundAsset)
	return tx.First(&Fund{}, toSave.FundID).Error
}

// Assets returns all asset balances of the fund.
func (f Fund) Assets(db *gorm.DB) ([]FundAsset, error) {
	var assets []FundAsset
	err := db.Where(&FundAsset{FundID: f.ID}).Order("currency ASC").Find(&assets).Error
	return assets, err
}

// AssetAmount returns the amount the fund holds in a currency. A fund
// without an asset record for the currency holds zero.
func (f Fund) AssetAmount(db *gorm.DB, currency string) (decimal.Decimal, error) {
	var asset FundAsset
	err := db.Where(&FundAsset{FundID: f.ID, Currency: currency}).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return asset.Amount, nil
}

// deposit adds an amount to the fund's asset in the given currency,
// creating the asset record on first use. Must run inside the transaction
// of the operation that moves the money.
func (f Fund) deposit(tx *gorm.DB, currency string, amount decimal.Decimal) error {
	var asset FundAsset
	err := tx.Where(&FundAsset{FundID: f.ID, Currency: currency}).First(&asset).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrResourceNotFound) {
		asset = FundAsset{FundID: f.ID, Currency: currency, Amount: amount}
		return tx.Create(&asset).Error
	}
	if err != nil {
		return err
	}

	return tx.Session(&gorm.Session{SkipHooks: true}).
		Model(&FundAsset{}).
		Where("id = ?", asset.ID).
		Update("amount", gorm.Expr("amount + ?", amount)).Error
}

// withdraw removes an amount from the fund's asset in the given currency.
// The asset may never go below zero: the conditional update loses against
// a balance that has been spent in the meantime and the operation fails
// with ErrInsufficientFundBalance.
func (f Fund) withdraw(tx *gorm.DB, currency string, amount decimal.Decimal) error {
	res := tx.Session(&gorm.Session{SkipHooks: true}).
		Model(&FundAsset{}).
		Where("fund_id = ? AND currency = ? AND amount >= ?", f.ID, currency, amount).
		Update("amount", gorm.Expr("amount - ?", amount))
	if res.Error != nil {
		return res.Error
	}

	if res.RowsAffected == 0 {
		return ErrInsufficientFundBalance
	}

	return nil
}
