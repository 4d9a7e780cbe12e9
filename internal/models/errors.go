package models

import "errors"

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Model validation errors. They are returned by the lifecycle hooks of the
// models and by the database callbacks translating constraint violations.
var (
	ErrAccountNameNotUnique          = errors.New("the account name must be unique")
	ErrCategoryNameNotUnique         = errors.New("the category name must be unique")
	ErrCategoryTypeInvalid           = errors.New("the category type must be income or expense")
	ErrTransactionTypeInvalid        = errors.New("the transaction type must be income or expense")
	ErrTransactionAmountNotPositive  = errors.New("transaction amounts must be larger than zero")
	ErrBudgetNotUnique               = errors.New("you can not create multiple budgets for the same account, category and month")
	ErrBudgetPlannedNegative         = errors.New("the planned budget amount must not be negative")
	ErrGoalMonthNotUnique            = errors.New("you can not create multiple goals for the same account and month")
	ErrGoalAmountNotPositive         = errors.New("goal amounts must be larger than zero")
	ErrRecurringIncomeNotPositive    = errors.New("recurring income amounts must be larger than zero")
	ErrHoldingQuantityNegative       = errors.New("holding quantities must not be negative")
	ErrUserEmailNotUnique            = errors.New("a user with this email address already exists")
	ErrSplitTypeInvalid              = errors.New("the split type must be equal, percentage or fixed")
	ErrParticipantStatusInvalid      = errors.New("the participant status must be pending, paid or declined")
	ErrFXRateNotPositive             = errors.New("exchange rates must be larger than zero")
)
