package rest

import (
	"context"
	"myWellnessCentre/domain"
	"myWellnessCentre/internal/middleware"
	"myWellnessCentre/pkg/logger"
	"net/http"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SessionService interface {
	SignUp(ctx context.Context, email, password, referredBy string) (domain.User, error)
	AdminSignUp(ctx context.Context, email, role, referredBy string) (domain.User, error)
	LogIn(ctx context.Context, email, password string) (domain.Session, error)
	LogOut(ctx context.Context, sess domain.Session) error
	CheckReferral(ctx context.Context, email string) (string, error)
}

type AuthHandler struct {
	sessionService SessionService
	validator      *validator.Validate
	timeout        time.Duration
}

func NewAuthHandler(sessionService SessionService) *AuthHandler {
	return &AuthHandler{
		sessionService: sessionService,
		validator:      validator.New(),
		timeout:        10 * time.Second,
	}
}

type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	ReferredBy      string `json:"referred_by"`
}

type AdminSignUpRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Role       string `json:"role" validate:"required,oneof=user member manager admin"`
	ReferredBy string `json:"referred_by"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) SignUp(c echo.Context) error {
	var req SignUpRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Debug("Sign up validation failed", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: signUpValidationMessage(err)})
	}

	// the sign-up link carries the referral code as ?referredBy=
	if req.ReferredBy == "" {
		req.ReferredBy = c.QueryParam("referredBy")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.sessionService.SignUp(ctx, req.Email, req.Password, req.ReferredBy)
	if err != nil {
		logger.Error("Failed to sign up", err)
		return errorResponse(c, err, "sign up failed")
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(user))
}

func signUpValidationMessage(err error) string {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			switch fe.Field() {
			case "ConfirmPassword":
				return "Passwords do not match"
			case "Password":
				return domain.ErrWeakPassword.Error()
			case "Email":
				return domain.ErrInvalidEmail.Error()
			}
		}
	}

	return err.Error()
}

func (h *AuthHandler) AdminSignUp(c echo.Context) error {
	var req AdminSignUpRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	user, err := h.sessionService.AdminSignUp(ctx, req.Email, req.Role, req.ReferredBy)
	if err != nil {
		return errorResponse(c, err, "sign up failed")
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(user))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Failed to bind request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid request body"})
	}

	if err := h.validator.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	sess, err := h.sessionService.LogIn(ctx, req.Email, req.Password)
	if err != nil {
		logger.Warn("Failed to login", "email", req.Email, "error", err)
		return errorResponse(c, err, "login failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Login successful",
		"token":      sess.Token,
		"expires_at": sess.ExpiresAt,
		"user":       sess.Profile,
	})
}

// Logout handles user logout by invalidating token
func (h *AuthHandler) Logout(c echo.Context) error {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		logger.Error("Failed to get session from context")
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.sessionService.LogOut(ctx, sess); err != nil {
		return errorResponse(c, err, "logout failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logout successful",
	})
}

func (h *AuthHandler) CheckReferral(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		sess, _ := middleware.CurrentSession(c)
		email = sess.Email
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	code, err := h.sessionService.CheckReferral(ctx, email)
	if err != nil {
		return errorResponse(c, err, "fetch error")
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]string{
		"email":         email,
		"referral_code": code,
	}))
}
