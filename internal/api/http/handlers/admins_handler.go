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

// AdminsHandler exposes superadmin management of admin accounts.
type AdminsHandler struct {
	admins *service.AdminService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(adminService *service.AdminService) *AdminsHandler {
	return &AdminsHandler{admins: adminService}
}

// CreateAdmin POST /superadmin/admins.
func (h *AdminsHandler) CreateAdmin(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" {
		return apperrors.NewValidationError("email, first_name, last_name required", nil)
	}

	admin, err := h.admins.CreateAdmin(c.UserContext(), principal.ID, service.CreateAdminInput{
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": adminResponse(admin)})
}

// ListAdmins GET /superadmin/admins.
func (h *AdminsHandler) ListAdmins(c *fiber.Ctx) error {
	admins, err := h.admins.ListAdmins(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AdminResponse, 0, len(admins))
	for i := range admins {
		items = append(items, adminResponse(&admins[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CountAdmins GET /superadmin/admins/count.
func (h *AdminsHandler) CountAdmins(c *fiber.Ctx) error {
	count, err := h.admins.CountAdmins(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountResponse{Count: count}})
}

// GetAdmin GET /superadmin/admins/:id.
func (h *AdminsHandler) GetAdmin(c *fiber.Ctx) error {
	admin, err := h.admins.GetAdmin(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adminResponse(admin)})
}

// UpdateAdmin PUT /superadmin/admins/:id.
func (h *AdminsHandler) UpdateAdmin(c *fiber.Ctx) error {
	var req dto.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateAdminInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Active:    req.IsActive,
		Verified:  req.IsVerified,
	}
	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		input.Email = &lowered
	}

	admin, err := h.admins.UpdateAdmin(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adminResponse(admin)})
}

// Me GET /admin/me.
func (h *AdminsHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.admins.Profile(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adminResponse(user)})
}

// UpdateMe PUT /admin/me/update.
func (h *AdminsHandler) UpdateMe(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		input.Email = &lowered
	}

	user, err := h.admins.UpdateProfile(c.UserContext(), principal.ID, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": adminResponse(user)})
}

// DeleteAdmin DELETE /superadmin/admins/:id.
func (h *AdminsHandler) DeleteAdmin(c *fiber.Ctx) error {
	if err := h.admins.DeleteAdmin(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Admin deleted successfully."})
}

func adminResponse(user *domain.User) dto.AdminResponse {
	return dto.AdminResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       string(user.Role),
		IsActive:   user.Active,
		IsVerified: user.Verified,
		CreatedBy:  user.CreatedByID,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
