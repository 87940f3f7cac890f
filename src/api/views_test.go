package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"financialamigo/src/api"
	"financialamigo/src/clients/google"
	"financialamigo/src/config"
	"financialamigo/src/database"
	"financialamigo/src/models"
	"financialamigo/src/services"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frontendURL = "http://frontend.test"

// fakeGoogle accepts any token or code and derives the identity from it.
// "skewed" fails with a clock error and "invalid" with a signature error.
type fakeGoogle struct{}

func (fakeGoogle) identity(token string) (*google.Identity, error) {
	switch token {
	case "skewed":
		return nil, google.ErrClockSkew
	case "invalid":
		return nil, errors.New("invalid signature")
	}
	return &google.Identity{
		Subject:  "sub-" + token,
		Email:    token + "@example.com",
		Name:     strings.ToUpper(token[:1]) + token[1:],
		IssuedAt: time.Now(),
	}, nil
}

func (f fakeGoogle) Verify(_ context.Context, idToken string) (*google.Identity, error) {
	return f.identity(idToken)
}

func (fakeGoogle) AuthCodeURL(state string) string {
	return "https://accounts.google.test/auth?state=" + url.QueryEscape(state)
}

func (f fakeGoogle) Exchange(_ context.Context, code string) (*google.Identity, error) {
	return f.identity(code)
}

type testEnv struct {
	ts  *httptest.Server
	cfg *config.Config
	db  *database.DB
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	cfg, err := config.LoadConfig("../../settings", "TESTING")
	require.NoError(t, err)
	cfg.Service.FrontendURL = frontendURL

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db, err := database.NewTestDB(logger)
	require.NoError(t, err)

	ts := httptest.NewServer(api.NewServer(cfg, db, fakeGoogle{}, logger))
	t.Cleanup(func() {
		ts.Close()
		db.Close()
	})
	return &testEnv{ts: ts, cfg: cfg, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, e.ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	content, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, content
}

func (e *testEnv) doJSON(t *testing.T, method, path, token string, body interface{}, out interface{}) int {
	t.Helper()
	status, content := e.do(t, method, path, token, body)
	if out != nil && status < http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(content, out), string(content))
	}
	return status
}

type tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

func (e *testEnv) login(t *testing.T, name string) tokens {
	t.Helper()
	var res struct {
		Status string `json:"status"`
		tokens
		User struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	status := e.doJSON(t, http.MethodPost, "/api/auth/sync-google-user", "", map[string]string{"id_token": name}, &res)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "success", res.Status)
	require.Equal(t, name+"@example.com", res.User.Email)
	require.Equal(t, "bearer", res.TokenType)
	return res.tokens
}

func (e *testEnv) createAccount(t *testing.T, token, name string) string {
	t.Helper()
	var account map[string]interface{}
	status := e.doJSON(t, http.MethodPost, "/api/accounts", token, map[string]string{
		"name":     name,
		"type":     "TFSA",
		"currency": "CAD",
	}, &account)
	require.Equal(t, http.StatusOK, status)
	return account["id"].(string)
}

func (e *testEnv) createTransaction(t *testing.T, token string, body map[string]interface{}) (int, map[string]interface{}) {
	t.Helper()
	var transaction map[string]interface{}
	status := e.doJSON(t, http.MethodPost, "/api/transactions", token, body, &transaction)
	return status, transaction
}

func buy(accountID string, quantity, price, commission float64) map[string]interface{} {
	return map[string]interface{}{
		"account_id":        accountID,
		"date":              "2024-03-01",
		"symbol":            "xeqt",
		"quantity":          quantity,
		"price_native":      price,
		"commission_native": commission,
		"currency":          "CAD",
		"type":              "BUY",
	}
}

func TestPortfolioLifecycle(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")
	accountID := env.createAccount(t, alice.AccessToken, "TFSA main")

	status, transaction := env.createTransaction(t, alice.AccessToken, buy(accountID, 10, 20, 1))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 199.0, transaction["total_native"])
	assert.Equal(t, "XEQT", transaction["symbol"])
	transactionID := transaction["id"].(string)

	var holdings []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/accounts/"+accountID+"/holdings", alice.AccessToken, nil, &holdings))
	require.Len(t, holdings, 1)
	assert.Equal(t, 10.0, holdings[0]["quantity"])
	assert.Equal(t, 20.1, holdings[0]["avg_cost_native"])

	var account map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/accounts/"+accountID, alice.AccessToken, nil, &account))
	assert.Equal(t, -201.0, account["cash_balance"])

	var patched map[string]interface{}
	status = env.doJSON(t, http.MethodPatch, "/api/transactions/"+transactionID, alice.AccessToken, map[string]interface{}{"quantity": 5}, &patched)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 99.0, patched["total_native"])
	assert.Equal(t, 20.0, patched["price_native"])
	assert.Equal(t, "XEQT", patched["symbol"])

	status, _ = env.do(t, http.MethodDelete, "/api/accounts/"+accountID, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	var remaining []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/transactions?account_id="+accountID, alice.AccessToken, nil, &remaining))
	assert.Empty(t, remaining)

	status, _ = env.do(t, http.MethodGet, "/api/transactions/"+transactionID, alice.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAccountPatchIsPartial(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")

	var created map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodPost, "/api/accounts", alice.AccessToken, map[string]interface{}{
		"name":   "Retirement",
		"type":   "RRSP",
		"broker": "Questrade",
	}, &created))
	assert.Equal(t, "CAD", created["currency"])

	var patched map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodPatch, "/api/accounts/"+created["id"].(string), alice.AccessToken, map[string]interface{}{
		"name":    "X",
		"unknown": true,
	}, &patched))
	assert.Equal(t, "X", patched["name"])
	assert.Equal(t, "RRSP", patched["type"])
	assert.Equal(t, "Questrade", patched["broker"])

	status, _ := env.do(t, http.MethodPatch, "/api/accounts/"+created["id"].(string), alice.AccessToken, map[string]interface{}{"type": "CRYPTO"})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestOtherUsersRowsAreNotFound(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")
	bob := env.login(t, "bob")

	accountID := env.createAccount(t, alice.AccessToken, "Alice TFSA")
	status, transaction := env.createTransaction(t, alice.AccessToken, buy(accountID, 1, 10, 0))
	require.Equal(t, http.StatusOK, status)
	transactionID := transaction["id"].(string)

	for _, tc := range []struct {
		method string
		path   string
		body   interface{}
	}{
		{http.MethodGet, "/api/accounts/" + accountID, nil},
		{http.MethodPatch, "/api/accounts/" + accountID, map[string]string{"name": "mine"}},
		{http.MethodDelete, "/api/accounts/" + accountID, nil},
		{http.MethodGet, "/api/accounts/" + accountID + "/holdings", nil},
		{http.MethodGet, "/api/transactions/" + transactionID, nil},
		{http.MethodPatch, "/api/transactions/" + transactionID, map[string]interface{}{"quantity": 2}},
		{http.MethodDelete, "/api/transactions/" + transactionID, nil},
		{http.MethodPost, "/api/transactions", buy(accountID, 1, 10, 0)},
	} {
		status, _ := env.do(t, tc.method, tc.path, bob.AccessToken, tc.body)
		assert.Equal(t, http.StatusNotFound, status, "%s %s", tc.method, tc.path)
	}

	var bobsTransactions []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/transactions", bob.AccessToken, nil, &bobsTransactions))
	assert.Empty(t, bobsTransactions)

	var alicesTransactions []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/transactions", alice.AccessToken, nil, &alicesTransactions))
	assert.Len(t, alicesTransactions, 1)
}

func TestTokenRules(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")

	status, _ := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodGet, "/api/auth/me", alice.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	expired, err := services.NewTokenService(env.cfg.Auth).
		WithClock(func() time.Time { return time.Now().Add(-time.Hour) }).
		CreateToken("alice@example.com", services.AccessToken)
	require.NoError(t, err)
	status, _ = env.do(t, http.MethodGet, "/api/auth/me", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": alice.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, status)

	var refreshed tokens
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodPost, "/api/auth/refresh", "", map[string]string{"refresh_token": alice.RefreshToken}, &refreshed))
	assert.NotEmpty(t, refreshed.RefreshToken)

	var me map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/auth/me", refreshed.AccessToken, nil, &me))
	assert.Equal(t, "alice@example.com", me["email"])
	assert.Equal(t, "CAD", me["default_currency"])
}

func TestSyncGoogleUserFailures(t *testing.T) {
	env := setup(t)

	status, body := env.do(t, http.MethodPost, "/api/auth/sync-google-user", "", map[string]string{"id_token": "skewed"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "clock")

	status, _ = env.do(t, http.MethodPost, "/api/auth/sync-google-user", "", map[string]string{"id_token": "invalid"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodPost, "/api/auth/sync-google-user", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestGoogleRedirectFlow(t *testing.T) {
	env := setup(t)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	res, err := client.Get(env.ts.URL + "/api/auth/google/login")
	require.NoError(t, err)
	res.Body.Close()
	require.Equal(t, http.StatusFound, res.StatusCode)
	consent, err := url.Parse(res.Header.Get("Location"))
	require.NoError(t, err)
	state := consent.Query().Get("state")
	require.NotEmpty(t, state)

	res, err = client.Get(env.ts.URL + "/api/auth/google/callback?code=carol&state=wrong")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, frontendURL+"/login?error=auth_failed", res.Header.Get("Location"))

	// The state is single use, so start over.
	res, err = client.Get(env.ts.URL + "/api/auth/google/login")
	require.NoError(t, err)
	res.Body.Close()
	consent, err = url.Parse(res.Header.Get("Location"))
	require.NoError(t, err)
	state = consent.Query().Get("state")

	res, err = client.PostForm(env.ts.URL+"/api/auth/google/callback", url.Values{"code": {"carol"}, "state": {state}})
	require.NoError(t, err)
	res.Body.Close()
	location, err := url.Parse(res.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "/auth/callback", location.Path)
	fragment, err := url.ParseQuery(location.Fragment)
	require.NoError(t, err)
	assert.Equal(t, "bearer", fragment.Get("token_type"))

	var me map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/users/me", fragment.Get("access_token"), nil, &me))
	assert.Equal(t, "carol@example.com", me["email"])

	res, err = client.Get(env.ts.URL + "/api/auth/google/login")
	require.NoError(t, err)
	res.Body.Close()
	consent, err = url.Parse(res.Header.Get("Location"))
	require.NoError(t, err)
	res, err = client.Get(env.ts.URL + "/api/auth/google/callback?code=skewed&state=" + url.QueryEscape(consent.Query().Get("state")))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, frontendURL+"/login?error=clock_sync", res.Header.Get("Location"))
}

func TestDeleteUserCascades(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")
	bob := env.login(t, "bob")

	accountID := env.createAccount(t, alice.AccessToken, "Alice TFSA")
	status, _ := env.createTransaction(t, alice.AccessToken, buy(accountID, 3, 10, 0))
	require.Equal(t, http.StatusOK, status)
	env.createAccount(t, bob.AccessToken, "Bob TFSA")

	status, _ = env.do(t, http.MethodDelete, "/api/users/me", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/api/accounts", alice.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, string(body), "User not found")

	var accounts, transactions, holdings int64
	require.NoError(t, env.db.Gorm.Model(&models.Account{}).Count(&accounts).Error)
	require.NoError(t, env.db.Gorm.Model(&models.Transaction{}).Count(&transactions).Error)
	require.NoError(t, env.db.Gorm.Model(&models.Holding{}).Count(&holdings).Error)
	assert.Equal(t, int64(1), accounts)
	assert.Zero(t, transactions)
	assert.Zero(t, holdings)
}

func TestUserSettings(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")

	var me map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodPatch, "/api/users/settings", alice.AccessToken, map[string]string{"default_currency": "USD"}, &me))
	assert.Equal(t, "USD", me["default_currency"])

	status, _ := env.do(t, http.MethodPatch, "/api/users/settings", alice.AccessToken, map[string]string{"default_currency": "EUR"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPatch, "/api/users/settings", alice.AccessToken, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, status)

	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/users/me", alice.AccessToken, nil, &me))
	assert.Equal(t, "USD", me["default_currency"])
}

func TestOversellIsRolledBack(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")
	accountID := env.createAccount(t, alice.AccessToken, "Margin")

	status, _ := env.createTransaction(t, alice.AccessToken, buy(accountID, 10, 20, 0))
	require.Equal(t, http.StatusOK, status)

	sell := buy(accountID, 20, 25, 0)
	sell["type"] = "SELL"
	status, _ = env.createTransaction(t, alice.AccessToken, sell)
	assert.Equal(t, http.StatusBadRequest, status)

	var transactions []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/transactions?account_id="+accountID, alice.AccessToken, nil, &transactions))
	assert.Len(t, transactions, 1)

	var holdings []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/holdings", alice.AccessToken, nil, &holdings))
	require.Len(t, holdings, 1)
	assert.Equal(t, 10.0, holdings[0]["quantity"])
}

func TestCashTransferPair(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")
	source := env.createAccount(t, alice.AccessToken, "Chequing bridge")
	target := env.createAccount(t, alice.AccessToken, "TFSA")

	status, _ := env.do(t, http.MethodPost, "/api/accounts/"+source+"/cash-transactions", alice.AccessToken, map[string]interface{}{
		"type":   "CONTRIBUTION",
		"date":   "2024-01-02",
		"amount": 1000,
	})
	require.Equal(t, http.StatusOK, status)

	status, _ = env.do(t, http.MethodPost, "/api/accounts/"+source+"/cash-transactions", alice.AccessToken, map[string]interface{}{
		"type":   "WITHDRAWAL",
		"date":   "2024-01-02",
		"amount": 50,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	var transfer map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodPost, "/api/accounts/"+source+"/cash-transactions", alice.AccessToken, map[string]interface{}{
		"type":              "TRANSFER_OUT",
		"date":              "2024-01-03",
		"amount":            -300,
		"target_account_id": target,
	}, &transfer))
	assert.NotNil(t, transfer["related_cash_transaction_id"])

	balance := func(accountID string) float64 {
		var account map[string]interface{}
		require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/accounts/"+accountID, alice.AccessToken, nil, &account))
		return account["cash_balance"].(float64)
	}
	assert.Equal(t, 700.0, balance(source))
	assert.Equal(t, 300.0, balance(target))

	status, _ = env.do(t, http.MethodPatch, "/api/cash-transactions/"+transfer["id"].(string), alice.AccessToken, map[string]interface{}{"amount": -400})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 600.0, balance(source))
	assert.Equal(t, 400.0, balance(target))

	status, _ = env.do(t, http.MethodDelete, "/api/cash-transactions/"+transfer["id"].(string), alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1000.0, balance(source))
	assert.Equal(t, 0.0, balance(target))

	var rows []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/accounts/"+target+"/cash-transactions", alice.AccessToken, nil, &rows))
	assert.Empty(t, rows)
}

func TestSecurityPriceRevaluesHoldings(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")
	accountID := env.createAccount(t, alice.AccessToken, "TFSA")

	status, _ := env.createTransaction(t, alice.AccessToken, buy(accountID, 10, 20, 0))
	require.Equal(t, http.StatusOK, status)

	var security map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodPut, "/api/securities/XEQT", alice.AccessToken, map[string]interface{}{
		"name":       "iShares Core Equity ETF",
		"type":       "ETF",
		"exchange":   "TSX",
		"currency":   "CAD",
		"last_price": 25,
	}, &security))
	assert.Equal(t, 25.0, security["last_price"])

	var holdings []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/holdings", alice.AccessToken, nil, &holdings))
	require.Len(t, holdings, 1)
	assert.Equal(t, 250.0, holdings[0]["market_value_native"])
	assert.Equal(t, 50.0, holdings[0]["unrealized_pl_native"])

	status, _ = env.do(t, http.MethodPost, "/api/securities/NOPE/prices", alice.AccessToken, map[string]interface{}{
		"date": "2024-03-01", "open": 1, "high": 1, "low": 1, "close": 1, "volume": 0,
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPost, "/api/securities/xeqt/prices", alice.AccessToken, map[string]interface{}{
		"date": "2024-03-01", "open": 24, "high": 26, "low": 23.5, "close": 25, "volume": 1200,
	})
	require.Equal(t, http.StatusOK, status)

	var prices []map[string]interface{}
	require.Equal(t, http.StatusOK, env.doJSON(t, http.MethodGet, "/api/securities/XEQT/prices?from=2024-01-01", alice.AccessToken, nil, &prices))
	require.Len(t, prices, 1)
	assert.Equal(t, 25.0, prices[0]["adjusted_close"])
}

func TestExportTransactions(t *testing.T) {
	env := setup(t)
	alice := env.login(t, "alice")
	accountID := env.createAccount(t, alice.AccessToken, "TFSA")
	status, _ := env.createTransaction(t, alice.AccessToken, buy(accountID, 10, 20, 1))
	require.Equal(t, http.StatusOK, status)

	req, err := http.NewRequest(http.MethodGet, env.ts.URL+"/api/transactions/export?format=csv", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+alice.AccessToken)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/csv", res.Header.Get("Content-Type"))
	content, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Date,Account,Type,Symbol"))
	assert.Contains(t, lines[1], "TFSA")

	status, _ = env.do(t, http.MethodGet, "/api/transactions/export?format=pdf", alice.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestHealthAndSecurityHeaders(t *testing.T) {
	env := setup(t)

	res, err := http.Get(env.ts.URL + "/alive")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "nosniff", res.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", res.Header.Get("X-Frame-Options"))
	assert.Empty(t, res.Header.Get("Strict-Transport-Security"))

	res, err = http.Get(env.ts.URL + "/ready")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
