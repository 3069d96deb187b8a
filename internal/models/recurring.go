package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kopilka/backend/internal/recurrence"
	"github.com/kopilka/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TemplateKind says whether a recurring template generates planned
// expenses or planned incomes.
type TemplateKind string

const (
	TemplateKindExpense TemplateKind = "expense"
	TemplateKindIncome  TemplateKind = "income"
)

// RecurringTemplate generates obligations for a period on demand.
//
// Templates are immutable generators: deactivating one stops future
// expansion, but never retracts obligations that were already generated.
type RecurringTemplate struct {
	DefaultModel
	Kind        TemplateKind
	Name        string
	CategoryID  *uuid.UUID // expense templates only
	Category    *Category  `json:"-"`
	Source      string     // income templates only
	Amount      decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Currency    string
	Frequency   recurrence.Frequency
	DayOfWeek   int // 0 = Sunday, as time.Weekday
	DayOfMonth  int
	MonthOfYear int
	Active      bool
}

var (
	ErrTemplateKindInvalid      = errors.New("the template kind must be one of expense, income")
	ErrTemplateCategoryRequired = errors.New("expense templates require a category")
	ErrTemplateAmountNotPositive = errors.New("template amounts must be larger than zero")
)

func (t *RecurringTemplate) BeforeSave(_ *gorm.DB) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Source = strings.TrimSpace(t.Source)
	t.Currency = strings.TrimSpace(t.Currency)

	switch t.Kind {
	case TemplateKindExpense:
		if t.CategoryID == nil {
			return ErrTemplateCategoryRequired
		}
	case TemplateKindIncome:
	default:
		return ErrTemplateKindInvalid
	}

	if !t.Amount.IsPositive() {
		return ErrTemplateAmountNotPositive
	}

	if _, err := t.Schedule().Occurrences(types.NewMonth(2000, time.January)); err != nil {
		return err
	}

	return checkCurrency(t.Currency)
}

func (t *RecurringTemplate) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*RecurringTemplate)
	if toSave.CategoryID != nil {
		return tx.First(&Category{}, *toSave.CategoryID).Error
	}

	return nil
}

// Schedule returns the recurrence schedule of the template.
func (t RecurringTemplate) Schedule() recurrence.Schedule {
	return recurrence.Schedule{
		Frequency:   t.Frequency,
		DayOfWeek:   time.Weekday(t.DayOfWeek),
		DayOfMonth:  t.DayOfMonth,
		MonthOfYear: time.Month(t.MonthOfYear),
	}
}

// GenerationResult reports what a generation run did.
type GenerationResult struct {
	Month           types.Month `json:"month"`
	CreatedExpenses int         `json:"createdExpenses"` // Planned expenses created by this run
	CreatedIncomes  int         `json:"createdIncomes"`  // Planned incomes created by this run
	Skipped         int         `json:"skipped"`         // Occurrences that already existed
}

// GenerateForMonth expands all active recurring templates into pending
// obligations for the month's budget. The budget is created lazily.
//
// Generation is idempotent: an occurrence keyed by (template, date) that
// already exists is never created a second time, regardless of its
// status. An optional glob pattern restricts generation to templates
// whose name matches.
func GenerateForMonth(db *gorm.DB, month types.Month, pattern string) (GenerationResult, error) {
	result := GenerationResult{Month: month}

	err := db.Transaction(func(tx *gorm.DB) error {
		budget, err := EnsureBudget(tx, month)
		if err != nil {
			return err
		}

		var templates []RecurringTemplate
		err = tx.Where(&RecurringTemplate{Active: true}).Order("created_at ASC, id ASC").Find(&templates).Error
		if err != nil {
			return err
		}

		for _, template := range templates {
			if pattern != "" && !glob.Glob(pattern, template.Name) {
				continue
			}

			dates, err := template.Schedule().Occurrences(month)
			if err != nil {
				return err
			}

			for _, date := range dates {
				created, err := template.generateOccurrence(tx, budget, date)
				if err != nil {
					return err
				}

				if !created {
					result.Skipped++
					continue
				}

				if template.Kind == TemplateKindExpense {
					result.CreatedExpenses++
				} else {
					result.CreatedIncomes++
				}
			}
		}

		return nil
	})
	if err != nil {
		return GenerationResult{}, err
	}

	return result, nil
}

// generateOccurrence creates the pending obligation for a single
// occurrence date unless it already exists.
func (t RecurringTemplate) generateOccurrence(tx *gorm.DB, budget Budget, date time.Time) (created bool, err error) {
	// Soft-deleted obligations count as existing: deleting a generated
	// obligation is an explicit user decision that a re-run must not undo.
	existing := tx.Unscoped().Where("template_id = ? AND planned_date = ?", t.ID, date)

	var count int64
	if t.Kind == TemplateKindExpense {
		err = existing.Model(&PlannedExpense{}).Count(&count).Error
	} else {
		err = existing.Model(&PlannedIncome{}).Count(&count).Error
	}
	if err != nil || count > 0 {
		return false, err
	}

	if t.Kind == TemplateKindExpense {
		expense := PlannedExpense{
			BudgetID:      budget.ID,
			TemplateID:    &t.ID,
			CategoryID:    *t.CategoryID,
			Name:          t.Name,
			PlannedAmount: t.Amount,
			Currency:      t.Currency,
			PlannedDate:   date,
			Status:        ObligationStatusPending,
		}
		return true, tx.Create(&expense).Error
	}

	income := PlannedIncome{
		BudgetID:      budget.ID,
		TemplateID:    &t.ID,
		Source:        t.Source,
		Name:          t.Name,
		PlannedAmount: t.Amount,
		Currency:      t.Currency,
		PlannedDate:   date,
		Status:        ObligationStatusPending,
	}
	return true, tx.Create(&income).Error
}
