package rest

import (
	"context"
	"myWellnessCentre/business/pagination"
	"myWellnessCentre/business/user"
	"myWellnessCentre/domain"
	"myWellnessCentre/internal/middleware"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type UserService interface {
	SearchByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateRole(ctx context.Context, email, role string) (domain.User, error)
	Profile(ctx context.Context, email string) (user.Profile, error)
	ListReferrals(ctx context.Context, email string, page int, cursor string) (pagination.Page[domain.User], error)
}

type UserHandler struct {
	userService UserService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewUserHandler(userService UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user member manager admin"`
}

// Me returns the signed-in user's profile and referral link.
func (h *UserHandler) Me(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	profile, err := h.userService.Profile(ctx, sess.Email)
	if err != nil {
		return errorResponse(c, err, "fetch error")
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(profile))
}

func (h *UserHandler) MyReferrals(c echo.Context) error {
	sess, _ := middleware.CurrentSession(c)
	return h.referrals(c, sess.Email)
}

func (h *UserHandler) UserReferrals(c echo.Context) error {
	return h.referrals(c, c.Param("email"))
}

func (h *UserHandler) referrals(c echo.Context, email string) error {
	page, cursor, err := pageParams(c)
	if err != nil {
		return errorResponse(c, err, "fetch error")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.userService.ListReferrals(ctx, email, page, cursor)
	return pageResponse(c, result, err)
}

// SearchUser handles GET /admin/users?email=
func (h *UserHandler) SearchUser(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.userService.SearchByEmail(ctx, c.QueryParam("email"))
	if err != nil {
		return errorResponse(c, err, "fetch error")
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(found))
}

func (h *UserHandler) UpdateRole(c echo.Context) error {
	var req UpdateRoleRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrInvalidRole.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.userService.UpdateRole(ctx, c.Param("email"), req.Role)
	if err != nil {
		return errorResponse(c, err, "update failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Role updated successfully",
		"user":    updated,
	})
}
