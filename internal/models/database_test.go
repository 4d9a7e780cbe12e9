package models_test

import (
	"github.com/fintrack-app/backend/internal/models"
)

func (suite *TestSuiteStandard) TestResourceNotFoundNamed() {
	var account models.Account
	err := models.DB.First(&account, "name = ?", "does not exist").Error

	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Equal("there is no account matching your query", err.Error())
}

func (suite *TestSuiteStandard) TestAccountNameUnique() {
	_ = suite.createTestAccount(models.Account{Name: "Checking"})

	duplicate := models.Account{Name: "Checking"}
	err := models.DB.Create(&duplicate).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameNotUnique)
}

func (suite *TestSuiteStandard) TestClosedDatabaseGeneralError() {
	suite.CloseDB()

	account := models.Account{Name: "Savings"}
	err := models.DB.Create(&account).Error
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
