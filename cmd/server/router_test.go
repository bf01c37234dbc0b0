package main

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicEndpoints(t *testing.T) {
	srv := newTestServer(t)

	root := call(t, srv, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, root.Status)
	assert.Equal(t, "Expense API is running", root.Body["msg"])

	health := call(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.Status)
	assert.Equal(t, "OK", health.Raw)
}

func TestAuthFlow(t *testing.T) {
	srv := newTestServer(t)

	token := register(t, srv, "  Alice ", "Alice@Example.com ", "s3cret")

	t.Run("duplicate email after normalization", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
			"username": "other", "email": "alice@example.com", "password": "x",
		})
		assert.Equal(t, http.StatusConflict, resp.Status)
		assert.Equal(t, "Email already registered", resp.Body["msg"])
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{"username": "bob"})
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "username, email and password are required", resp.Body["msg"])
	})

	t.Run("no body", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/auth/register", "", "")
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "No input provided", resp.Body["msg"])
	})

	t.Run("login with normalized email", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": " ALICE@example.com", "password": "s3cret",
		})
		require.Equal(t, http.StatusOK, resp.Status, resp.Raw)
		assert.Equal(t, "Login successful", resp.Body["msg"])
		assert.NotEmpty(t, resp.Body["access_token"])
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "nope",
		})
		unknown := call(t, srv, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "nobody@example.com", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, wrong.Status)
		assert.Equal(t, http.StatusUnauthorized, unknown.Status)
		assert.Equal(t, wrong.Body["msg"], unknown.Body["msg"])
	})

	t.Run("profile", func(t *testing.T) {
		resp := call(t, srv, http.MethodGet, "/api/auth/profile", token, nil)
		require.Equal(t, http.StatusOK, resp.Status, resp.Raw)

		user, ok := resp.Body["user"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", user["username"])
		assert.Equal(t, "alice@example.com", user["email"])
		assert.NotEmpty(t, user["id"])
		assert.NotContains(t, resp.Raw, "password")
	})

	t.Run("profile without token", func(t *testing.T) {
		resp := call(t, srv, http.MethodGet, "/api/auth/profile", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
		assert.Equal(t, "Authorization header required", resp.Body["msg"])
		assert.NotEmpty(t, resp.Body["trace_id"])
	})

	t.Run("profile with tampered token", func(t *testing.T) {
		resp := call(t, srv, http.MethodGet, "/api/auth/profile", token+"x", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
		assert.Equal(t, "Invalid token", resp.Body["msg"])
	})
}

func TestExpenseLifecycle(t *testing.T) {
	srv := newTestServer(t)
	alice := register(t, srv, "alice", "alice@example.com", "pw")
	bob := register(t, srv, "bob", "bob@example.com", "pw")

	list := call(t, srv, http.MethodGet, "/api/expenses", alice, nil)
	require.Equal(t, http.StatusOK, list.Status)
	assert.JSONEq(t, `{"expenses":[]}`, list.Raw)

	added := call(t, srv, http.MethodPost, "/api/expenses", alice, map[string]any{
		"title": " Lunch ", "category": "Food", "amount": "12.50", "date": "2024-03-05",
	})
	require.Equal(t, http.StatusCreated, added.Status, added.Raw)
	assert.Equal(t, "Expense added", added.Body["msg"])
	expense := added.Body["expense"].(map[string]any)
	assert.Equal(t, "Lunch", expense["title"])
	assert.InDelta(t, 12.5, expense["amount"], 0)
	assert.Equal(t, "", expense["description"])
	assert.Equal(t, "Mar 05, 2024", expense["date"])
	id := expense["id"].(string)

	newer := call(t, srv, http.MethodPost, "/api/expenses", alice, map[string]any{
		"title": "Dinner", "category": "Food", "amount": 30, "date": "2024-04-01",
	})
	require.Equal(t, http.StatusCreated, newer.Status, newer.Raw)

	t.Run("list is newest first and scoped to owner", func(t *testing.T) {
		resp := call(t, srv, http.MethodGet, "/api/expenses", alice, nil)
		require.Equal(t, http.StatusOK, resp.Status)
		items := resp.Body["expenses"].([]any)
		require.Len(t, items, 2)
		assert.Equal(t, "Dinner", items[0].(map[string]any)["title"])
		assert.Equal(t, "Lunch", items[1].(map[string]any)["title"])

		other := call(t, srv, http.MethodGet, "/api/expenses", bob, nil)
		assert.JSONEq(t, `{"expenses":[]}`, other.Raw)
	})

	t.Run("invalid amount", func(t *testing.T) {
		resp := call(t, srv, http.MethodPost, "/api/expenses", alice, map[string]any{
			"title": "x", "category": "y", "amount": "abc",
		})
		assert.Equal(t, http.StatusBadRequest, resp.Status)
		assert.Equal(t, "amount must be a number", resp.Body["msg"])
	})

	t.Run("other user cannot update or delete", func(t *testing.T) {
		upd := call(t, srv, http.MethodPut, "/api/expenses/"+id, bob, map[string]any{"title": "hijack"})
		assert.Equal(t, http.StatusNotFound, upd.Status)

		del := call(t, srv, http.MethodDelete, "/api/expenses/"+id, bob, nil)
		assert.Equal(t, http.StatusNotFound, del.Status)
	})

	t.Run("update skips blank fields", func(t *testing.T) {
		resp := call(t, srv, http.MethodPut, "/api/expenses/"+id, alice, map[string]any{
			"title": "  ", "amount": 15, "description": "with tip",
		})
		require.Equal(t, http.StatusOK, resp.Status, resp.Raw)
		assert.Equal(t, "Expense updated", resp.Body["msg"])
		updated := resp.Body["expense"].(map[string]any)
		assert.Equal(t, "Lunch", updated["title"])
		assert.InDelta(t, 15.0, updated["amount"], 0)
		assert.Equal(t, "with tip", updated["description"])
		assert.Equal(t, "Mar 05, 2024", updated["date"])
	})

	t.Run("update with nothing to change", func(t *testing.T) {
		resp := call(t, srv, http.MethodPut, "/api/expenses/"+id, alice, map[string]any{"title": ""})
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("malformed id", func(t *testing.T) {
		resp := call(t, srv, http.MethodDelete, "/api/expenses/not-a-uuid", alice, nil)
		assert.Equal(t, http.StatusBadRequest, resp.Status)
	})

	t.Run("delete", func(t *testing.T) {
		resp := call(t, srv, http.MethodDelete, "/api/expenses/"+id, alice, nil)
		require.Equal(t, http.StatusOK, resp.Status, resp.Raw)
		assert.Equal(t, "Expense deleted", resp.Body["msg"])

		again := call(t, srv, http.MethodDelete, "/api/expenses/"+id, alice, nil)
		assert.Equal(t, http.StatusNotFound, again.Status)
		assert.Equal(t, "Expense not found", again.Body["msg"])
	})

	t.Run("requires token", func(t *testing.T) {
		resp := call(t, srv, http.MethodGet, "/api/expenses", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.Status)
	})
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/expenses", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", testOrigin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, testOrigin, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
	assert.True(t, strings.Contains(resp.Header.Get("Access-Control-Allow-Methods"), http.MethodPost))
}
