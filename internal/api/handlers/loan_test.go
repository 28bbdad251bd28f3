package handlers_test

import (
	"branchloan/internal/models"
	"branchloan/internal/testutil"
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBorrowerID = "7f1c2a9e-3b4d-4e5f-8a6b-9c0d1e2f3a4b"

func performRequest(router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	var req *http.Request
	if reader != nil {
		req, _ = http.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeLoan(t *testing.T, w *httptest.ResponseRecorder) models.LoanResponse {
	t.Helper()
	var loan models.LoanResponse
	dec := json.NewDecoder(bytes.NewReader(w.Body.Bytes()))
	dec.UseNumber()
	require.NoError(t, dec.Decode(&loan))
	return loan
}

func TestLoanHandler_CreateLoan(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantErr    string
		check      func(t *testing.T, loan models.LoanResponse)
	}{
		{
			name:       "Valid loan",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 1000.50, "currency": "usd", "term_months": 12}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, loan models.LoanResponse) {
				assert.NotEqual(t, uuid.Nil, loan.ID)
				assert.Equal(t, uuid.MustParse(testBorrowerID), loan.BorrowerID)
				assert.Equal(t, "1000.5", loan.Amount.String())
				assert.Equal(t, "USD", loan.Currency)
				assert.Equal(t, 12, loan.TermMonths)
				assert.Nil(t, loan.InterestRateAPR)
				assert.Equal(t, models.LoanStatusPending, loan.Status)
				assert.False(t, loan.CreatedAt.IsZero())
			},
		},
		{
			name:       "Valid loan with APR",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": "250.00", "currency": "Eur", "term_months": "6", "interest_rate_apr": 0}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, loan models.LoanResponse) {
				assert.Equal(t, "EUR", loan.Currency)
				assert.Equal(t, 6, loan.TermMonths)
				assert.Equal(t, testutil.NumberPtr("0"), loan.InterestRateAPR)
			},
		},
		{
			name:       "Missing borrower_id",
			body:       `{"amount": 1000, "currency": "USD", "term_months": 12}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "borrower_id: field required",
		},
		{
			name:       "Missing amount",
			body:       `{"borrower_id": "` + testBorrowerID + `", "currency": "USD", "term_months": 12}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "amount: field required",
		},
		{
			name:       "Missing currency",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 1000, "term_months": 12}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "currency: field required",
		},
		{
			name:       "Missing term_months",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 1000, "currency": "USD"}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "term_months: field required",
		},
		{
			name:       "Zero amount",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 0, "currency": "USD", "term_months": 12}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "amount: must be greater than 0",
		},
		{
			name:       "Negative term",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 10, "currency": "USD", "term_months": -1}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "term_months: must be greater than 0",
		},
		{
			name:       "Negative APR",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 10, "currency": "USD", "term_months": 1, "interest_rate_apr": -2.5}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "interest_rate_apr: must be greater than or equal to 0",
		},
		{
			name:       "Invalid currency (4 letters)",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 10, "currency": "USDT", "term_months": 1}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "currency: must be a 3-letter currency code",
		},
		{
			name:       "Amount with huge exponent",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 1e200000000, "currency": "USD", "term_months": 12}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "amount: out of range",
		},
		{
			name:       "Term beyond integer column",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 10, "currency": "USD", "term_months": "3000000000"}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "term_months: out of range",
		},
		{
			name:       "APR past NUMERIC scale",
			body:       `{"borrower_id": "` + testBorrowerID + `", "amount": 10, "currency": "USD", "term_months": 1, "interest_rate_apr": 1e-20000}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "interest_rate_apr: out of range",
		},
		{
			name:       "Malformed JSON is an empty payload",
			body:       `{"borrower_id": `,
			wantStatus: http.StatusBadRequest,
			wantErr:    "borrower_id: field required; amount: field required; currency: field required; term_months: field required",
		},
		{
			name:       "Absent body is an empty payload",
			body:       "",
			wantStatus: http.StatusBadRequest,
			wantErr:    "borrower_id: field required; amount: field required; currency: field required; term_months: field required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(t)
			router := tc.LoanRouter()

			w := performRequest(router, http.MethodPost, "/api/loans", tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())

			if tt.wantErr != "" {
				var errResp models.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				assert.Equal(t, tt.wantErr, errResp.Error)
				assert.Zero(t, tc.Repo.Count(), "rejected payloads must not be persisted")
				return
			}

			assert.Equal(t, 1, tc.Repo.Count())
			tt.check(t, decodeLoan(t, w))
		})
	}
}

func TestLoanHandler_CreateLoan_SerializesNullAPR(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()

	w := performRequest(router, http.MethodPost, "/api/loans",
		`{"borrower_id": "`+testBorrowerID+`", "amount": 1000.50, "currency": "usd", "term_months": 12}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Equal(t, "null", string(raw["interest_rate_apr"]))
	assert.Equal(t, "1000.5", string(raw["amount"]), "amount is a JSON number, not a string")
	assert.Equal(t, `"USD"`, string(raw["currency"]))
	assert.Equal(t, `"pending"`, string(raw["status"]))
}

func TestLoanHandler_CreateLoan_KeepsExactDecimals(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()

	w := performRequest(router, http.MethodPost, "/api/loans",
		`{"borrower_id": "`+testBorrowerID+`", "amount": 0.1000000000000000055511151231257827, "currency": "usd", "term_months": 12, "interest_rate_apr": 12.3456789}`)
	require.Equal(t, http.StatusCreated, w.Code)

	loan := decodeLoan(t, w)
	assert.Equal(t, "0.1000000000000000055511151231257827", loan.Amount.String())
	require.NotNil(t, loan.InterestRateAPR)
	assert.Equal(t, "12.3456789", loan.InterestRateAPR.String())
}

func TestLoanHandler_CreateThenGet_RoundTrip(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()

	w := performRequest(router, http.MethodPost, "/api/loans",
		`{"borrower_id": "`+testBorrowerID+`", "amount": 42.42, "currency": "gbp", "term_months": 3, "interest_rate_apr": 5.5}`)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decodeLoan(t, w)

	w = performRequest(router, http.MethodGet, "/api/loans/"+created.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)
	fetched := decodeLoan(t, w)

	assert.Equal(t, created, fetched)
}

func TestLoanHandler_GetLoan(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()
	loan := tc.CreateTestLoan("500.00", "usd", 24)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantErr    string
	}{
		{name: "Existing loan", path: "/api/loans/" + loan.ID.String(), wantStatus: http.StatusOK},
		{name: "Invalid id", path: "/api/loans/not-a-uuid", wantStatus: http.StatusBadRequest, wantErr: "Invalid loan id"},
		{name: "Unknown id", path: "/api/loans/" + uuid.New().String(), wantStatus: http.StatusNotFound, wantErr: "Loan not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, tt.path, "")
			require.Equal(t, tt.wantStatus, w.Code)

			if tt.wantErr != "" {
				var errResp models.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				assert.Equal(t, tt.wantErr, errResp.Error)
				return
			}

			got := decodeLoan(t, w)
			assert.Equal(t, loan.ID, got.ID)
			assert.Equal(t, "USD", got.Currency)
			assert.Equal(t, 24, got.TermMonths)
		})
	}
}

func TestLoanHandler_ListLoans(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()

	// Empty store returns an empty array, not null
	w := performRequest(router, http.MethodGet, "/api/loans", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	base := time.Date(2025, 11, 14, 18, 0, 0, 0, time.UTC)
	tick := 0
	tc.Repo.Now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	a := tc.CreateTestLoan("100", "usd", 12)
	b := tc.CreateTestLoan("200", "usd", 12)
	c := tc.CreateTestLoan("300", "usd", 12)

	w = performRequest(router, http.MethodGet, "/api/loans", "")
	require.Equal(t, http.StatusOK, w.Code)

	var loans []models.LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loans))
	require.Len(t, loans, 3)
	assert.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, []uuid.UUID{loans[0].ID, loans[1].ID, loans[2].ID})
}

func TestLoanHandler_ListLoans_SameInstantUsesInsertionOrder(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()

	instant := time.Date(2025, 11, 14, 18, 0, 0, 0, time.UTC)
	tc.Repo.Now = func() time.Time { return instant }

	a := tc.CreateTestLoan("100", "usd", 12)
	b := tc.CreateTestLoan("200", "usd", 12)

	w := performRequest(router, http.MethodGet, "/api/loans", "")
	require.Equal(t, http.StatusOK, w.Code)

	var loans []models.LoanResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loans))
	require.Len(t, loans, 2)
	assert.Equal(t, b.ID, loans[0].ID)
	assert.Equal(t, a.ID, loans[1].ID)
}

func TestLoanHandler_StoreFailure(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()
	tc.Repo.Err = errors.New("connection refused")

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		wantErr string
	}{
		{name: "List", method: http.MethodGet, path: "/api/loans", wantErr: "Failed to fetch loans"},
		{name: "Get", method: http.MethodGet, path: "/api/loans/" + uuid.New().String(), wantErr: "Failed to fetch loan"},
		{
			name:    "Create",
			method:  http.MethodPost,
			path:    "/api/loans",
			body:    `{"borrower_id": "` + testBorrowerID + `", "amount": 1, "currency": "usd", "term_months": 1}`,
			wantErr: "Failed to create loan",
		},
		{name: "Stats", method: http.MethodGet, path: "/api/stats", wantErr: "Failed to fetch stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, tt.method, tt.path, tt.body)
			require.Equal(t, http.StatusInternalServerError, w.Code)

			var errResp models.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantErr, errResp.Error)
		})
	}
}

func TestLoanHandler_LogsCarryRequestID(t *testing.T) {
	tc := testutil.NewTestContext(t)
	router := tc.LoanRouter()

	w := performRequest(router, http.MethodPost, "/api/loans",
		`{"borrower_id": "`+testBorrowerID+`", "amount": 10, "currency": "usd", "term_months": 1}`)
	require.Equal(t, http.StatusCreated, w.Code)

	requestID := w.Header().Get("X-Request-ID")
	require.NotEmpty(t, requestID)

	lines := strings.Split(strings.TrimSpace(tc.Logs.String()), "\n")
	require.NotEmpty(t, lines)
	for _, line := range lines {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, requestID, entry["request_id"])
	}

	var last map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.Equal(t, "Loan created successfully", last["message"])
	assert.Equal(t, "USD", last["currency"])
	assert.Equal(t, "10", last["amount"])
}
