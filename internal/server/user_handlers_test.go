package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCreatesUser(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/register", registerPayload("ada@example.com"), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "User created successfully", body["message"])
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ada@example.com", data["email"])
	assert.NotContains(t, data, "password")
}

func TestRegisterCapReturnsServerError(t *testing.T) {
	_, app := newTestServer(t)

	for _, email := range []string{"a@example.com", "b@example.com"} {
		resp := doJSON(t, app, http.MethodPost, "/api/register", registerPayload(email), "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodPost, "/api/register", registerPayload("c@example.com"), "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Maximum number of users reached", body["error"])
}

func TestRegisterValidationReturns422(t *testing.T) {
	_, app := newTestServer(t)

	payload := registerPayload("not-an-email")
	payload["password"] = "short"
	resp := doJSON(t, app, http.MethodPost, "/api/register", payload, "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestRegisterDuplicateEmailReturns422(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/register", registerPayload("dup@example.com"), "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/register", registerPayload("dup@example.com"), "")
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "email")
}
