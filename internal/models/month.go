package models

import (
	"fmt"
	"sort"

	"github.com/kopilka/backend/internal/exchange"
	"github.com/kopilka/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ObligationTotals sums obligations for a month, split by financing
// source. FromFund is the part covered by fund financing, FromBudget the
// remainder.
type ObligationTotals struct {
	Total      decimal.Decimal `json:"total" example:"2100"`
	FromFund   decimal.Decimal `json:"fromFund" example:"300"`
	FromBudget decimal.Decimal `json:"fromBudget" example:"1800"`
}

// MonthSummary is the aggregated planned-vs-actual view of a month.
// All amounts are normalized into the base currency.
//
// AvailableForPlanning and ActuallyAvailable are the user facing "safe to
// spend" figures. They are recomputed deterministically from the store on
// every call: two calls over unmodified inputs return identical values.
type MonthSummary struct {
	Month    types.Month `json:"month" example:"2006-05-01T00:00:00.000000Z"`
	Currency string      `json:"currency" example:"RUB"` // The base currency

	TotalPlanned decimal.Decimal `json:"totalPlanned" example:"2100"`   // Sum of all budget item planned amounts
	TotalActual  decimal.Decimal `json:"totalActual" example:"1954.10"` // Sum of all booked expenses in the month

	PendingObligations   ObligationTotals `json:"pendingObligations"`
	ConfirmedObligations ObligationTotals `json:"confirmedObligations"`

	ExpectedIncome decimal.Decimal `json:"expectedIncome" example:"100000"` // Sum of planned income expected amounts
	ReceivedIncome decimal.Decimal `json:"receivedIncome" example:"100000"` // Sum of booked incomes in the month

	ExpectedFundDistributions decimal.Decimal `json:"expectedFundDistributions" example:"50000"` // Planned distribution amounts for the month's incomes
	ActualFundDistributions   decimal.Decimal `json:"actualFundDistributions" example:"30000"`   // Confirmed distribution amounts for the month's incomes

	AvailableForPlanning decimal.Decimal `json:"availableForPlanning" example:"47900"` // expectedIncome - totalPlanned - expectedFundDistributions
	ActuallyAvailable    decimal.Decimal `json:"actuallyAvailable" example:"68045.90"` // receivedIncome - totalActual - actualFundDistributions

	Warnings []string `json:"warnings" example:"no exchange rate for USD, amounts used unconverted"` // Data quality warnings, e.g. missing exchange rates
}

// monthConverter tracks currencies without a rate while converting.
type monthConverter struct {
	conv    *exchange.Converter
	missing map[string]bool
}

func (m *monthConverter) toBase(amount decimal.Decimal, currency string) decimal.Decimal {
	converted, ok := m.conv.ToBase(amount, currency)
	if !ok {
		m.missing[currency] = true
	}

	return converted
}

func (m *monthConverter) warnings() []string {
	currencies := make([]string, 0, len(m.missing))
	for currency := range m.missing {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)

	warnings := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		warnings = append(warnings, fmt.Sprintf("no exchange rate for %s, amounts used unconverted", currency))
	}

	return warnings
}

// Summary aggregates the month of the budget.
//
// The computation only reads: no balance or status may change as a side
// effect of aggregation.
func (b Budget) Summary(db *gorm.DB, conv *exchange.Converter) (MonthSummary, error) {
	summary := MonthSummary{
		Month:    b.Month,
		Currency: conv.Base(),
		Warnings: []string{},
	}

	mc := &monthConverter{conv: conv, missing: map[string]bool{}}

	from := b.Month.Day(1)
	until := b.Month.AddDate(0, 1).Day(1)

	// Planned amounts per category, base currency by definition
	items, err := b.Items(db)
	if err != nil {
		return MonthSummary{}, err
	}

	for _, item := range items {
		summary.TotalPlanned = summary.TotalPlanned.Add(item.PlannedAmount)
	}

	// Booked expenses
	var expenses []Expense
	err = db.Where("date >= date(?) AND date < date(?)", from, until).Find(&expenses).Error
	if err != nil {
		return MonthSummary{}, err
	}

	for _, expense := range expenses {
		summary.TotalActual = summary.TotalActual.Add(mc.toBase(expense.Amount, expense.Currency))
	}

	// Obligations
	var plannedExpenses []PlannedExpense
	err = db.Where(&PlannedExpense{BudgetID: b.ID}).Find(&plannedExpenses).Error
	if err != nil {
		return MonthSummary{}, err
	}

	for _, p := range plannedExpenses {
		switch p.Status {
		case ObligationStatusPending:
			addObligation(&summary.PendingObligations, mc, p.PlannedAmount, p.FundedAmount, p.Currency)
		case ObligationStatusConfirmed:
			actual := p.PlannedAmount
			if p.ActualAmount.Valid {
				actual = p.ActualAmount.Decimal
			}
			addObligation(&summary.ConfirmedObligations, mc, actual, p.FundedAmount, p.Currency)
		}
	}

	// Expected income: pending and confirmed planned incomes, skipped
	// ones are no longer expected
	var plannedIncomes []PlannedIncome
	err = db.Where(&PlannedIncome{BudgetID: b.ID}).Where("status != ?", ObligationStatusSkipped).Find(&plannedIncomes).Error
	if err != nil {
		return MonthSummary{}, err
	}

	for _, p := range plannedIncomes {
		summary.ExpectedIncome = summary.ExpectedIncome.Add(mc.toBase(p.PlannedAmount, p.Currency))
	}

	// Received income, regardless of distribution state
	var incomes []Income
	err = db.Where("date >= date(?) AND date < date(?)", from, until).Find(&incomes).Error
	if err != nil {
		return MonthSummary{}, err
	}

	for _, income := range incomes {
		summary.ReceivedIncome = summary.ReceivedIncome.Add(mc.toBase(income.Amount, income.Currency))

		distributions, err := income.Distributions(db)
		if err != nil {
			return MonthSummary{}, err
		}

		for _, d := range distributions {
			summary.ExpectedFundDistributions = summary.ExpectedFundDistributions.Add(mc.toBase(d.PlannedAmount, income.Currency))

			if d.Completed && d.ActualAmount.Valid {
				summary.ActualFundDistributions = summary.ActualFundDistributions.Add(mc.toBase(d.ActualAmount.Decimal, income.Currency))
			}
		}
	}

	summary.AvailableForPlanning = summary.ExpectedIncome.
		Sub(summary.TotalPlanned).
		Sub(summary.ExpectedFundDistributions)

	summary.ActuallyAvailable = summary.ReceivedIncome.
		Sub(summary.TotalActual).
		Sub(summary.ActualFundDistributions)

	summary.Warnings = mc.warnings()

	return summary, nil
}

func addObligation(totals *ObligationTotals, mc *monthConverter, amount, funded decimal.Decimal, currency string) {
	amount = mc.toBase(amount, currency)
	funded = mc.toBase(funded, currency)

	totals.Total = totals.Total.Add(amount)
	totals.FromFund = totals.FromFund.Add(funded)
	totals.FromBudget = totals.FromBudget.Add(amount.Sub(funded))
}
