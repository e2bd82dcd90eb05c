package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pastor-mobile/church-admin-service/internal/api/dto"
	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/service"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

// otpSentMessage is returned for every OTP request, known email or not, so
// the endpoints cannot be used to probe which accounts exist.
const otpSentMessage = "If the email exists, an OTP code has been sent."

// AuthHandler exposes login, signup and OTP endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": loginResponse(result)})
}

// SuperadminLogin POST /auth/superadmin/login.
func (h *AuthHandler) SuperadminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	result, err := h.auth.SuperadminLogin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": loginResponse(result)})
}

// Signup POST /auth/admin/signup.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		return apperrors.NewValidationError("email, first_name, last_name, password required", nil)
	}

	err := h.auth.AdminSignup(c.UserContext(), service.SignupInput{
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Admin account created. Please verify your account using the OTP code sent to your email.",
	})
}

// Refresh POST /auth/refresh.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.RefreshToken == "" {
		return apperrors.NewValidationError("refresh_token required", nil)
	}

	pair, err := h.auth.Refresh(c.UserContext(), req.RefreshToken)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}})
}

// Me GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.JSON(fiber.Map{"data": principalResponse(principal)})
}

// ForgotPassword POST /auth/admin/forgot-password.
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.auth.ForgotPassword(c.UserContext(), strings.ToLower(req.Email)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": otpSentMessage})
}

// ResendOTP POST /auth/admin/resend-otp.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" {
		return apperrors.NewValidationError("email required", nil)
	}

	if err := h.auth.ResendOTP(c.UserContext(), strings.ToLower(req.Email)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": otpSentMessage})
}

// VerifyOTP POST /auth/admin/verify-otp.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.OTPCode == "" {
		return apperrors.NewValidationError("email and otp_code required", nil)
	}

	if err := h.auth.VerifyOTP(c.UserContext(), strings.ToLower(req.Email), req.OTPCode); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Account verified successfully. You can now log in."})
}

// ResetPassword POST /auth/admin/reset-password.
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.OTPCode == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("email, otp_code, new_password required", nil)
	}

	if err := h.auth.ResetPassword(c.UserContext(), strings.ToLower(req.Email), req.OTPCode, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password has been reset successfully."})
}

func loginResponse(result *service.LoginResult) fiber.Map {
	return fiber.Map{
		"user": principalResponse(result.Principal),
		"auth": dto.TokenResponse{
			AccessToken:  result.AccessToken,
			RefreshToken: result.RefreshToken,
			TokenType:    result.TokenType,
		},
	}
}

func principalResponse(principal *domain.Principal) dto.PrincipalResponse {
	return dto.PrincipalResponse{
		ID:          principal.ID,
		Email:       principal.Email,
		FirstName:   principal.FirstName,
		LastName:    principal.LastName,
		Role:        string(principal.Role),
		Permissions: principal.Permissions,
		IsActive:    principal.Active,
		IsVerified:  principal.Verified,
	}
}
