package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoke(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/drugs/search", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Middleware()(handler)(c)
	require.NoError(t, err)
	return rec
}

func TestMiddleware_PassesThroughSuccess(t *testing.T) {
	rec := invoke(t, func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	assert.Equal(t, 200, rec.Code)
}

func TestMiddleware_ValidationError(t *testing.T) {
	rec := invoke(t, func(echo.Context) error {
		return ValidationError("missing required query parameter 'q'").WithField("q", "")
	})

	assert.Equal(t, 400, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, "missing required query parameter 'q'", resp.Error)
}

func TestMiddleware_NotFoundError(t *testing.T) {
	rec := invoke(t, func(echo.Context) error {
		return NotFoundError("drug not found").WithField("drugbank_id", "DB99999")
	})
	assert.Equal(t, 404, rec.Code)
}

func TestMiddleware_InternalErrorHidesCause(t *testing.T) {
	rec := invoke(t, func(echo.Context) error {
		return InternalError("drug search failed", errors.New("sqlite: database is locked"))
	})

	assert.Equal(t, 500, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sqlite", "cause must not reach the client")
}

func TestMiddleware_FieldsStayOutOfResponse(t *testing.T) {
	rec := invoke(t, func(echo.Context) error {
		return ValidationError("limit must be a positive integer").WithField("limit", "zero")
	})

	assert.Equal(t, 400, rec.Code)
	assert.NotContains(t, rec.Body.String(), "zero")
}

func TestMiddleware_PlainErrorBecomesInternal(t *testing.T) {
	rec := invoke(t, func(echo.Context) error {
		return errors.New("something broke")
	})

	assert.Equal(t, 500, rec.Code)

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, TypeInternal, resp.Type)
	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, rec.Body.String(), "something broke")
}

func TestMiddleware_EchoHTTPErrorPassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Middleware()(func(echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "route not found")
	})(c)

	// Echo's default handler owns the response for its own error type.
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, 404, httpErr.Code)
}

func TestTypeForStatus(t *testing.T) {
	assert.Equal(t, TypeValidation, typeForStatus(400))
	assert.Equal(t, TypeNotFound, typeForStatus(404))
	assert.Equal(t, TypeInternal, typeForStatus(500))
	assert.Equal(t, TypeInternal, typeForStatus(503))
}
