package models

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryType classifies what a category tracks.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

func (t CategoryType) Valid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

// Category groups transactions and budgets, for example "Groceries" or
// "Salary".
type Category struct {
	DefaultModel
	Name     string       `gorm:"uniqueIndex"`
	Type     CategoryType `gorm:"default:expense"`
	Note     string
	Archived bool
}

func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Note = strings.TrimSpace(c.Note)

	if !c.Type.Valid() {
		return ErrCategoryTypeInvalid
	}

	return nil
}
