package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fintrack-app/backend/internal/controllers/v1"
	"github.com/fintrack-app/backend/internal/models"
	"github.com/fintrack-app/backend/internal/types"
	"github.com/fintrack-app/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// createTestSharedExpense persists an equal split between the owner and
// the given participants over a fresh transaction.
func (suite *TestSuiteStandard) createTestSharedExpense(t *testing.T, owner v1.UserResponse, totalAmount float64, participantEmails ...string) v1.SharedExpenseResponse {
	transaction := suite.createTestTransaction(t, v1.TransactionEditable{
		Amount: decimal.NewFromFloat(totalAmount),
	})

	participants := make([]v1.SharedExpenseParticipantInput, 0, len(participantEmails))
	for _, email := range participantEmails {
		participants = append(participants, v1.SharedExpenseParticipantInput{Email: email})
	}

	create := v1.SharedExpenseCreate{
		OwnerID:       owner.Data.ID,
		TransactionID: transaction.Data.ID,
		SplitType:     models.SplitTypeEqual,
		TotalAmount:   decimal.NewFromFloat(totalAmount),
		Currency:      types.CurrencyUSD,
		Participants:  participants,
	}

	r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/shared-expenses", create)
	test.AssertHTTPStatus(t, &r, http.StatusCreated)

	var expense v1.SharedExpenseResponse
	test.DecodeResponse(t, &r, &expense)
	return expense
}

func (suite *TestSuiteStandard) TestSharedExpensePreview() {
	t := suite.T()

	create := v1.SharedExpenseCreate{
		SplitType:   models.SplitTypePercentage,
		TotalAmount: decimal.NewFromFloat(200),
		Currency:    types.CurrencyUSD,
		Participants: []v1.SharedExpenseParticipantInput{
			{Email: "sam@example.com", Percentage: decimalPtr(25)},
		},
	}

	r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/shared-expenses/preview", create)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var preview v1.SplitPreviewResponse
	test.DecodeResponse(t, &r, &preview)

	require.True(t, preview.Data.IsValid)
	require.Len(t, preview.Data.ParticipantShares, 1)
	assert.True(t, preview.Data.ParticipantShares[0].Amount.Equal(decimal.NewFromFloat(50)))
	assert.True(t, preview.Data.OwnerShare.Equal(decimal.NewFromFloat(150)))

	// Previews never persist anything.
	var count int64
	_ = models.DB.Model(&models.SharedExpense{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *TestSuiteStandard) TestSharedExpensePreviewInvalid() {
	t := suite.T()

	create := v1.SharedExpenseCreate{
		SplitType:   models.SplitTypePercentage,
		TotalAmount: decimal.NewFromFloat(100),
		Currency:    types.CurrencyUSD,
		Participants: []v1.SharedExpenseParticipantInput{
			{Email: "sam@example.com", Percentage: decimalPtr(60)},
			{Email: "kim@example.com", Percentage: decimalPtr(50)},
		},
	}

	r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/shared-expenses/preview", create)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	var preview v1.SplitPreviewResponse
	test.DecodeResponse(t, &r, &preview)

	assert.False(t, preview.Data.IsValid)
	require.NotEmpty(t, preview.Data.Errors)
	assert.Equal(t, "participants", preview.Data.Errors[0].Field)
}

func (suite *TestSuiteStandard) TestSharedExpenseCreate() {
	t := suite.T()

	owner := suite.createTestUser(t, v1.UserEditable{Email: "owner@example.com"})
	_ = suite.createTestUser(t, v1.UserEditable{Email: "sam@example.com"})
	_ = suite.createTestUser(t, v1.UserEditable{Email: "kim@example.com"})

	expense := suite.createTestSharedExpense(t, owner, 100, "sam@example.com", "kim@example.com")

	assert.Equal(t, models.SplitTypeEqual, expense.Data.SplitType)
	require.Len(t, expense.Data.Participants, 2)

	// 100 for three people: 33.33 each, the owner keeps 33.34.
	for _, participant := range expense.Data.Participants {
		assert.True(t, participant.ShareAmount.Equal(decimal.NewFromFloat(33.33)), "share is %s", participant.ShareAmount)
		assert.Equal(t, models.ParticipantStatusPending, participant.Status)
	}
	assert.True(t, expense.Data.OwnerShare.Equal(decimal.NewFromFloat(33.34)), "owner share is %s", expense.Data.OwnerShare)
}

func (suite *TestSuiteStandard) TestSharedExpenseCreateUnknownParticipant() {
	t := suite.T()

	owner := suite.createTestUser(t, v1.UserEditable{Email: "owner@example.com"})
	transaction := suite.createTestTransaction(t, v1.TransactionEditable{
		Amount: decimal.NewFromFloat(100),
	})

	create := v1.SharedExpenseCreate{
		OwnerID:       owner.Data.ID,
		TransactionID: transaction.Data.ID,
		SplitType:     models.SplitTypeEqual,
		TotalAmount:   decimal.NewFromFloat(100),
		Currency:      types.CurrencyUSD,
		Participants: []v1.SharedExpenseParticipantInput{
			{Email: "nobody@example.com"},
		},
	}

	r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/shared-expenses", create)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSharedExpenseParticipantStatus() {
	t := suite.T()

	owner := suite.createTestUser(t, v1.UserEditable{Email: "owner@example.com"})
	_ = suite.createTestUser(t, v1.UserEditable{Email: "sam@example.com"})

	expense := suite.createTestSharedExpense(t, owner, 60, "sam@example.com")
	participant := expense.Data.Participants[0]

	url := fmt.Sprintf("http://example.com/v1/shared-expenses/participants/%s", participant.ID)

	r := test.Request(t, suite.controller, http.MethodPatch, url, v1.ParticipantStatusEditable{Status: models.ParticipantStatusPaid})
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	var dbParticipant models.ExpenseParticipant
	require.Nil(t, models.DB.First(&dbParticipant, participant.ID).Error)
	assert.Equal(t, models.ParticipantStatusPaid, dbParticipant.Status)

	r = test.Request(t, suite.controller, http.MethodPatch, url, v1.ParticipantStatusEditable{Status: "settled"})
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSharedExpenseDelete() {
	t := suite.T()

	owner := suite.createTestUser(t, v1.UserEditable{Email: "owner@example.com"})
	_ = suite.createTestUser(t, v1.UserEditable{Email: "sam@example.com"})

	expense := suite.createTestSharedExpense(t, owner, 60, "sam@example.com")
	url := fmt.Sprintf("http://example.com/v1/shared-expenses/%s", expense.Data.ID)

	r := test.Request(t, suite.controller, http.MethodDelete, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	r = test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusNotFound)

	// The participant shares are gone with the expense.
	var count int64
	_ = models.DB.Model(&models.ExpenseParticipant{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func (suite *TestSuiteStandard) TestSettlements() {
	t := suite.T()

	owner := suite.createTestUser(t, v1.UserEditable{Email: "owner@example.com"})
	_ = suite.createTestUser(t, v1.UserEditable{Email: "sam@example.com"})

	_ = suite.createTestSharedExpense(t, owner, 60, "sam@example.com")

	url := fmt.Sprintf("http://example.com/v1/settlements?user=%s", owner.Data.ID)
	r := test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var settlements v1.SettlementListResponse
	test.DecodeResponse(t, &r, &settlements)

	require.Len(t, settlements.Data, 1)
	balance := settlements.Data[0]
	assert.Equal(t, "sam@example.com", balance.UserEmail)
	assert.True(t, balance.TheyOwe.Equal(decimal.NewFromFloat(30)), "they owe %s", balance.TheyOwe)
	assert.True(t, balance.NetBalance.Equal(decimal.NewFromFloat(30)))
}

func (suite *TestSuiteStandard) TestSettlementsInvalid() {
	t := suite.T()

	r := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/settlements", nil)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

	r = test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/settlements?user=NotAUUID", nil)
	test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestSettlementsEmpty() {
	t := suite.T()

	url := fmt.Sprintf("http://example.com/v1/settlements?user=%s", uuid.New())
	r := test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var settlements v1.SettlementListResponse
	test.DecodeResponse(t, &r, &settlements)
	assert.Empty(t, settlements.Data)
}
