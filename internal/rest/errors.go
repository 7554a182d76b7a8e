package rest

import (
	"errors"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/domain"
	"net/http"
	"strconv"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

// EmptyPageResponse is sent with 404 when the first page of a list has no records.
type EmptyPageResponse struct {
	Message string `json:"message"`
	Page    any    `json:"page"`
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrNoRecords),
		errors.Is(err, domain.ErrPreviewNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateAccount),
		errors.Is(err, domain.ErrRoleUnchanged):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidService),
		errors.Is(err, domain.ErrInvalidPaymentMethod),
		errors.Is(err, domain.ErrInvalidPage),
		errors.Is(err, domain.ErrInvalidCursor),
		errors.Is(err, domain.ErrPageOutOfRange),
		errors.Is(err, domain.ErrUnknownField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorResponse maps domain errors to status codes. Unexpected errors are answered with
// fallback so driver messages never reach the client.
func errorResponse(c echo.Context, err error, fallback string) error {
	code := errorStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = fallback
	}

	return c.JSON(code, ResponseError{Message: message})
}

// pageParams reads ?page= (default 1) and ?cursor=.
func pageParams(c echo.Context) (int, string, error) {
	page := 1
	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return 0, "", domain.ErrInvalidPage
		}
		page = n
	}

	return page, c.QueryParam("cursor"), nil
}

func pageResponse[T any](c echo.Context, page pagination.Page[T], err error) error {
	if err != nil {
		if errors.Is(err, domain.ErrNoRecords) {
			return c.JSON(http.StatusNotFound, EmptyPageResponse{Message: err.Error(), Page: page})
		}
		return errorResponse(c, err, "fetch error")
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(page))
}
