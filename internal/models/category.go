package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Category groups expenses and budget items.
type Category struct {
	DefaultModel
	Name     string `gorm:"uniqueIndex"`
	Note     string
	Archived bool
}

var ErrCategoryNameNotUnique = errors.New("the category name must be unique")

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	return nil
}
