package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doLogin(t *testing.T, h *AuthHandler, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestLoginIssuesToken(t *testing.T) {
	h := NewAuthHandler("test-secret", "admin", "password", false)

	rec := doLogin(t, h, "admin", "password")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)

	token, err := jwt.Parse(resp.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin", claims["sub"])
	assert.Equal(t, "admin", claims["username"])
}

func TestLoginRejectsWrongCredentials(t *testing.T) {
	h := NewAuthHandler("test-secret", "admin", "password", false)

	rec := doLogin(t, h, "admin", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginTestModeAcceptsAnyPair(t *testing.T) {
	h := NewAuthHandler("test-secret", "admin", "password", true)

	rec := doLogin(t, h, "anyone", "anything")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginTestModeRejectsEmptyPair(t *testing.T) {
	h := NewAuthHandler("test-secret", "admin", "password", true)

	rec := doLogin(t, h, "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsInvalidJSON(t *testing.T) {
	h := NewAuthHandler("test-secret", "admin", "password", false)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte(`{broken`)))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
