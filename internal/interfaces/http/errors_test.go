package http_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/application/dto"
	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/domain"
	apphttp "github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/internal/interfaces/http"
)

func failingApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Get("/", func(c *fiber.Ctx) error { return err })
	return app
}

func TestErrorHandler_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrInsufficientBalance, http.StatusConflict, "INSUFFICIENT_BALANCE"},
		{fmt.Errorf("saída: %w", domain.ErrInsufficientBalance), http.StatusConflict, "INSUFFICIENT_BALANCE"},
		{domain.ErrInventoryClosed, http.StatusConflict, "INVENTORY_CLOSED"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrLockTimeout, http.StatusServiceUnavailable, "LOCK_TIMEOUT"},
		{fmt.Errorf("begin transaction: %w", domain.ErrBusy), http.StatusServiceUnavailable, "BUSY"},
		{domain.ErrCountsChanged, http.StatusConflict, "COUNTS_CHANGED"},
		{fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP"},
		{fmt.Errorf("boom"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		resp, err := failingApp(tc.err).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
		require.NoError(t, err)
		var body dto.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode, tc.err.Error())
		assert.Equal(t, tc.code, body.Code, tc.err.Error())
	}
}

func TestErrorHandler_LockTimeoutIncluyeRetryAfter(t *testing.T) {
	resp, err := failingApp(domain.ErrLockTimeout).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestErrorHandler_PoolAgotadoIncluyeRetryAfter(t *testing.T) {
	resp, err := failingApp(domain.ErrBusy).Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestErrorHandler_ValidacionInformaCampo(t *testing.T) {
	resp, err := failingApp(domain.NewValidationError("quantity", "la cantidad debe ser positiva")).
		Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "quantity", body.Field)
	assert.Empty(t, resp.Header.Get(fiber.HeaderRetryAfter))
}
