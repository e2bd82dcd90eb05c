package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/pastor-mobile/church-admin-service/internal/api/dto"
	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/service"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

// DevotionalsHandler exposes devotional endpoints.
type DevotionalsHandler struct {
	content *service.ContentService
}

// NewDevotionalsHandler constructs handler.
func NewDevotionalsHandler(contentService *service.ContentService) *DevotionalsHandler {
	return &DevotionalsHandler{content: contentService}
}

// CreateDevotional POST /devotionals.
func (h *DevotionalsHandler) CreateDevotional(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateDevotionalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Leader == "" {
		return apperrors.NewValidationError("title and leader required", nil)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	devotional, err := h.content.CreateDevotional(c.UserContext(), principal.ID, service.CreateDevotionalInput{
		Title:    req.Title,
		Date:     date,
		Passage:  req.Passage,
		Leader:   req.Leader,
		SermonID: req.SermonID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": devotionalResponse(devotional)})
}

// ListDevotionals GET /devotionals.
func (h *DevotionalsHandler) ListDevotionals(c *fiber.Ctx) error {
	devotionals, err := h.content.ListDevotionals(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.DevotionalResponse, 0, len(devotionals))
	for i := range devotionals {
		items = append(items, devotionalResponse(&devotionals[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CountDevotionals GET /devotionals/count.
func (h *DevotionalsHandler) CountDevotionals(c *fiber.Ctx) error {
	count, err := h.content.CountDevotionals(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountResponse{Count: count}})
}

// GetDevotional GET /devotionals/:id.
func (h *DevotionalsHandler) GetDevotional(c *fiber.Ctx) error {
	devotional, err := h.content.GetDevotional(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": devotionalResponse(devotional)})
}

// UpdateDevotional PUT /devotionals/:id.
func (h *DevotionalsHandler) UpdateDevotional(c *fiber.Ctx) error {
	var req dto.UpdateDevotionalRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateDevotionalInput{
		Title:    req.Title,
		Passage:  req.Passage,
		Leader:   req.Leader,
		SermonID: req.SermonID,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		input.Date = &date
	}

	devotional, err := h.content.UpdateDevotional(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": devotionalResponse(devotional)})
}

// DeleteDevotional DELETE /devotionals/:id.
func (h *DevotionalsHandler) DeleteDevotional(c *fiber.Ctx) error {
	if err := h.content.DeleteDevotional(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Devotional deleted successfully."})
}

func devotionalResponse(devotional *domain.Devotional) dto.DevotionalResponse {
	return dto.DevotionalResponse{
		ID:        devotional.ID,
		Title:     devotional.Title,
		Date:      devotional.Date.Format(dateLayout),
		Passage:   devotional.Passage,
		Leader:    devotional.Leader,
		SermonID:  devotional.SermonID,
		CreatedAt: devotional.CreatedAt,
		UpdatedAt: devotional.UpdatedAt,
	}
}
