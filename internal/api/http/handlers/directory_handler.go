package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pastor-mobile/church-admin-service/internal/api/dto"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/service"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

// DirectoryHandler exposes admin management of directory accounts.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directoryService}
}

// CreateUser POST /user-management/users.
func (h *DirectoryHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateManagedUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Role == "" {
		return apperrors.NewValidationError("email, first_name, last_name, role required", nil)
	}

	user, err := h.directory.CreateManagedUser(c.UserContext(), service.CreateManagedUserInput{
		Email:     strings.ToLower(req.Email),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": managedUserResponse(user)})
}

// ListUsers GET /user-management/users.
func (h *DirectoryHandler) ListUsers(c *fiber.Ctx) error {
	var (
		users []domain.ManagedUser
		err   error
	)
	if role := c.Query("role"); role != "" {
		users, err = h.directory.ListManagedUsersByRole(c.UserContext(), role)
	} else {
		users, err = h.directory.ListManagedUsers(c.UserContext())
	}
	if err != nil {
		return err
	}

	items := make([]dto.ManagedUserResponse, 0, len(users))
	for i := range users {
		items = append(items, managedUserResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUser GET /user-management/users/:id.
func (h *DirectoryHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.directory.GetManagedUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": managedUserResponse(user)})
}

// UpdateUser PUT /user-management/users/:id.
func (h *DirectoryHandler) UpdateUser(c *fiber.Ctx) error {
	var req dto.UpdateManagedUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateManagedUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		Active:    req.IsActive,
	}
	if req.Email != nil {
		lowered := strings.ToLower(*req.Email)
		input.Email = &lowered
	}

	user, err := h.directory.UpdateManagedUser(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": managedUserResponse(user)})
}

// DeleteUser DELETE /user-management/users/:id.
func (h *DirectoryHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.directory.DeleteManagedUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User deleted successfully."})
}

// ListUserPermissions GET /permissions/users.
func (h *DirectoryHandler) ListUserPermissions(c *fiber.Ctx) error {
	users, err := h.directory.ListManagedUsers(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.UserPermissionsResponse, 0, len(users))
	for i := range users {
		items = append(items, userPermissionsResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetUserPermissions GET /permissions/users/:id.
func (h *DirectoryHandler) GetUserPermissions(c *fiber.Ctx) error {
	user, err := h.directory.GetManagedUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userPermissionsResponse(user)})
}

// UpdateUserPermissions PUT /permissions/users/:id.
func (h *DirectoryHandler) UpdateUserPermissions(c *fiber.Ctx) error {
	var req dto.UpdateUserPermissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Permissions == nil {
		return apperrors.NewValidationError("permissions required", nil)
	}

	user, err := h.directory.UpdateUserPermissions(c.UserContext(), c.Params("id"), *req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userPermissionsResponse(user)})
}

// ListPermissionsByRole GET /permissions/by-role/:role.
func (h *DirectoryHandler) ListPermissionsByRole(c *fiber.Ctx) error {
	users, err := h.directory.ListManagedUsersByRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return err
	}
	items := make([]dto.UserPermissionsResponse, 0, len(users))
	for i := range users {
		items = append(items, userPermissionsResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListRoles GET /permissions/roles.
func (h *DirectoryHandler) ListRoles(c *fiber.Ctx) error {
	defs, err := h.directory.ListRoles(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.RoleResponse, 0, len(defs))
	for i := range defs {
		items = append(items, roleResponse(&defs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetRole GET /permissions/roles/:role.
func (h *DirectoryHandler) GetRole(c *fiber.Ctx) error {
	def, err := h.directory.GetRole(c.UserContext(), c.Params("role"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleResponse(def)})
}

// UpdateRole PUT /permissions/roles/:role.
func (h *DirectoryHandler) UpdateRole(c *fiber.Ctx) error {
	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	def, err := h.directory.UpdateRole(c.UserContext(), c.Params("role"), service.UpdateRoleInput{
		Permissions: req.Permissions,
		Active:      req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": roleResponse(def)})
}

func managedUserResponse(user *domain.ManagedUser) dto.ManagedUserResponse {
	return dto.ManagedUserResponse{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Role:        string(user.Role),
		RoleID:      user.RoleID,
		Permissions: user.Permissions,
		IsActive:    user.Active,
	}
}

func userPermissionsResponse(user *domain.ManagedUser) dto.UserPermissionsResponse {
	return dto.UserPermissionsResponse{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        string(user.Role),
		Permissions: user.Permissions,
	}
}

func roleResponse(def *domain.RoleDefinition) dto.RoleResponse {
	return dto.RoleResponse{
		ID:          def.ID,
		Role:        string(def.Role),
		Permissions: def.Permissions,
		IsActive:    def.Active,
	}
}
