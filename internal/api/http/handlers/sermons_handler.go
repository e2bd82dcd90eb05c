package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pastor-mobile/church-admin-service/internal/api/dto"
	"github.com/pastor-mobile/church-admin-service/internal/auth"
	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/service"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

const dateLayout = "2006-01-02"

// SermonsHandler exposes sermon endpoints.
type SermonsHandler struct {
	content *service.ContentService
}

// NewSermonsHandler constructs handler.
func NewSermonsHandler(contentService *service.ContentService) *SermonsHandler {
	return &SermonsHandler{content: contentService}
}

// CreateSermon POST /sermons.
func (h *SermonsHandler) CreateSermon(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateSermonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Speaker == "" || req.Title == "" {
		return apperrors.NewValidationError("speaker and title required", nil)
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}

	sermon, err := h.content.CreateSermon(c.UserContext(), principal.ID, service.CreateSermonInput{
		Date:        date,
		Time:        req.Time,
		Speaker:     req.Speaker,
		Passage:     req.Passage,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sermonResponse(sermon)})
}

// ListSermons GET /sermons.
func (h *SermonsHandler) ListSermons(c *fiber.Ctx) error {
	sermons, err := h.content.ListSermons(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sermonResponses(sermons)})
}

// CountSermons GET /sermons/count.
func (h *SermonsHandler) CountSermons(c *fiber.Ctx) error {
	count, err := h.content.CountSermons(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountResponse{Count: count}})
}

// GetSermon GET /sermons/:id.
func (h *SermonsHandler) GetSermon(c *fiber.Ctx) error {
	sermon, err := h.content.GetSermon(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sermonResponse(sermon)})
}

// UpdateSermon PUT /sermons/:id.
func (h *SermonsHandler) UpdateSermon(c *fiber.Ctx) error {
	var req dto.UpdateSermonRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateSermonInput{
		Time:        req.Time,
		Speaker:     req.Speaker,
		Passage:     req.Passage,
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return err
		}
		input.Date = &date
	}

	sermon, err := h.content.UpdateSermon(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sermonResponse(sermon)})
}

// DeleteSermon DELETE /sermons/:id.
func (h *SermonsHandler) DeleteSermon(c *fiber.Ctx) error {
	if err := h.content.DeleteSermon(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Sermon deleted successfully."})
}

// AssociateSeries POST /sermons/:id/series.
func (h *SermonsHandler) AssociateSeries(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.AssociateSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SeriesID == "" {
		return apperrors.NewValidationError("series_id required", nil)
	}

	if err := h.content.AssociateSermonSeries(c.UserContext(), principal.ID, c.Params("id"), req.SeriesID); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "Series associated successfully."})
}

// UnassociatedSeries GET /sermons/:id/series/available.
func (h *SermonsHandler) UnassociatedSeries(c *fiber.Ctx) error {
	series, err := h.content.UnassociatedSeries(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.SeriesResponse, 0, len(series))
	for i := range series {
		items = append(items, seriesResponse(&series[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseDate(val string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, val)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("invalid date, expected YYYY-MM-DD", nil)
	}
	return parsed, nil
}

func sermonResponse(sermon *domain.Sermon) dto.SermonResponse {
	return dto.SermonResponse{
		ID:          sermon.ID,
		Date:        sermon.Date.Format(dateLayout),
		Time:        sermon.Time,
		Speaker:     sermon.Speaker,
		Passage:     sermon.Passage,
		Title:       sermon.Title,
		Description: sermon.Description,
		CreatedAt:   sermon.CreatedAt,
		UpdatedAt:   sermon.UpdatedAt,
	}
}

func sermonResponses(sermons []domain.Sermon) []dto.SermonResponse {
	items := make([]dto.SermonResponse, 0, len(sermons))
	for i := range sermons {
		items = append(items, sermonResponse(&sermons[i]))
	}
	return items
}
