package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/fintrack-app/backend/internal/controllers/v1"
	"github.com/fintrack-app/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAccountsCRUD() {
	t := suite.T()

	created := suite.createTestAccount(t, v1.AccountEditable{Name: "Checking", Note: "Main account"})
	assert.Equal(t, "Checking", created.Data.Name)
	assert.NotEqual(t, uuid.Nil, created.Data.ID)

	r := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/accounts", nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var list v1.AccountListResponse
	test.DecodeResponse(t, &r, &list)
	assert.Len(t, list.Data, 1)

	url := fmt.Sprintf("http://example.com/v1/accounts/%s", created.Data.ID)

	r = test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	r = test.Request(t, suite.controller, http.MethodPatch, url, v1.AccountEditable{Name: "Checking", Archived: true})
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var updated v1.AccountResponse
	test.DecodeResponse(t, &r, &updated)
	assert.True(t, updated.Data.Archived)

	r = test.Request(t, suite.controller, http.MethodDelete, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	r = test.Request(t, suite.controller, http.MethodGet, url, nil)
	test.AssertHTTPStatus(t, &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestAccountsCreateInvalid() {
	t := suite.T()

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Empty body", "", http.StatusBadRequest},
		{"Broken JSON", `{ "name": "Broken`, http.StatusBadRequest},
		{"Name missing", `{ "note": "no name" }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := test.Request(t, suite.controller, http.MethodPost, "http://example.com/v1/accounts", tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsDuplicateName() {
	t := suite.T()

	_ = suite.createTestAccount(t, v1.AccountEditable{Name: "Savings"})
	_ = suite.createTestAccount(t, v1.AccountEditable{Name: "Savings"}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsOptions() {
	t := suite.T()

	r := test.Request(t, suite.controller, http.MethodOptions, "http://example.com/v1/accounts", nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)
	assert.Equal(t, "OPTIONS, GET, POST", r.Header().Get("allow"))

	tests := []struct {
		name   string
		id     string
		status int
	}{
		{"No Account with this ID", uuid.New().String(), http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", http.StatusBadRequest},
		{"Account exists", suite.createTestAccount(t, v1.AccountEditable{}).Data.ID.String(), http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id)
			r := test.Request(t, suite.controller, http.MethodOptions, path, nil)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	t := suite.T()

	suite.CloseDB()

	r := test.Request(t, suite.controller, http.MethodGet, "http://example.com/v1/accounts", nil)
	test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
}
