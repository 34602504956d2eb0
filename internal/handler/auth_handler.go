package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"sitereport/internal/errors"
	"sitereport/internal/model"
	"sitereport/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request. Mobile clients send either
// username_or_email or the older username field.
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required_without=Username"`
	Username        string `json:"username" validate:"required_without=UsernameOrEmail"`
	Password        string `json:"password" validate:"required"`
}

func (r LoginRequest) identifier() string {
	if r.UsernameOrEmail != "" {
		return r.UsernameOrEmail
	}
	return r.Username
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	JobTitle string `json:"job_title"`
	IsMaster bool   `json:"is_master"`
}

func newUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
		Email:    u.Email,
		JobTitle: u.JobTitle,
		IsMaster: u.IsMaster,
	}
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// Login godoc
// @Summary Login with username or email
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}

	if err := c.Validate(&req); err != nil {
		return errorResponse(errors.ErrMissingCredentials)
	}

	result, err := h.authService.Login(c.Request().Context(), req.identifier(), req.Password)
	if err != nil {
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.UTC().Format(time.RFC3339),
		User:      newUserResponse(result.User),
	})
}
