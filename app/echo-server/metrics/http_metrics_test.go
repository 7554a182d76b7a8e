package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/users/:email", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/fail", func(c echo.Context) error {
		return errors.New("boom")
	})

	okBefore := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/users/:email", "204"))
	failBefore := testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/fail", "500"))

	for _, path := range []string{"/users/a@example.com", "/users/b@example.com", "/fail"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/users/:email", "204")))
	assert.Equal(t, failBefore+1, testutil.ToFloat64(RequestTotal.WithLabelValues(http.MethodGet, "/fail", "500")))
}
