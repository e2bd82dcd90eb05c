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

// SeriesHandler exposes series endpoints.
type SeriesHandler struct {
	content *service.ContentService
}

// NewSeriesHandler constructs handler.
func NewSeriesHandler(contentService *service.ContentService) *SeriesHandler {
	return &SeriesHandler{content: contentService}
}

// CreateSeries POST /series.
func (h *SeriesHandler) CreateSeries(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" {
		return apperrors.NewValidationError("title required", nil)
	}
	fromDate, err := parseDate(req.FromDate)
	if err != nil {
		return err
	}
	toDate, err := parseDate(req.ToDate)
	if err != nil {
		return err
	}

	series, err := h.content.CreateSeries(c.UserContext(), principal.ID, service.CreateSeriesInput{
		Title:       req.Title,
		FromDate:    fromDate,
		ToDate:      toDate,
		Passage:     req.Passage,
		Description: req.Description,
		SermonIDs:   req.SermonIDs,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": seriesResponse(series)})
}

// ListSeries GET /series.
func (h *SeriesHandler) ListSeries(c *fiber.Ctx) error {
	list, err := h.content.ListSeries(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SeriesResponse, 0, len(list))
	for i := range list {
		items = append(items, seriesResponse(&list[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CountSeries GET /series/count.
func (h *SeriesHandler) CountSeries(c *fiber.Ctx) error {
	count, err := h.content.CountSeries(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.CountResponse{Count: count}})
}

// GetSeries GET /series/:id.
func (h *SeriesHandler) GetSeries(c *fiber.Ctx) error {
	series, err := h.content.GetSeriesWithSermons(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": seriesResponse(series)})
}

// UpdateSeries PUT /series/:id.
func (h *SeriesHandler) UpdateSeries(c *fiber.Ctx) error {
	var req dto.UpdateSeriesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.UpdateSeriesInput{
		Title:       req.Title,
		Passage:     req.Passage,
		Description: req.Description,
	}
	if req.FromDate != nil {
		fromDate, err := parseDate(*req.FromDate)
		if err != nil {
			return err
		}
		input.FromDate = &fromDate
	}
	if req.ToDate != nil {
		toDate, err := parseDate(*req.ToDate)
		if err != nil {
			return err
		}
		input.ToDate = &toDate
	}

	series, err := h.content.UpdateSeries(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": seriesResponse(series)})
}

// DeleteSeries DELETE /series/:id.
func (h *SeriesHandler) DeleteSeries(c *fiber.Ctx) error {
	if err := h.content.DeleteSeries(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Series deleted successfully."})
}

// AddSermons POST /series/:id/sermons.
func (h *SeriesHandler) AddSermons(c *fiber.Ctx) error {
	var req dto.SeriesSermonsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.SermonIDs) == 0 {
		return apperrors.NewValidationError("sermon_ids required", nil)
	}

	series, err := h.content.AddSeriesSermons(c.UserContext(), c.Params("id"), req.SermonIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": seriesResponse(series)})
}

// RemoveSermons DELETE /series/:id/sermons.
func (h *SeriesHandler) RemoveSermons(c *fiber.Ctx) error {
	var req dto.SeriesSermonsRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.SermonIDs) == 0 {
		return apperrors.NewValidationError("sermon_ids required", nil)
	}

	series, err := h.content.RemoveSeriesSermons(c.UserContext(), c.Params("id"), req.SermonIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": seriesResponse(series)})
}

// Sermons GET /series/:id/sermons. Returns the member sermons together with
// the sermons still available to attach.
func (h *SeriesHandler) Sermons(c *fiber.Ctx) error {
	members, available, err := h.content.SeriesSermons(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SeriesSermonsResponse{
		Sermons:   sermonResponses(members),
		Available: sermonResponses(available),
	}})
}

// AvailableSermons GET /series/:id/sermons/available.
func (h *SeriesHandler) AvailableSermons(c *fiber.Ctx) error {
	sermons, err := h.content.AvailableSermons(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sermonResponses(sermons)})
}

func seriesResponse(series *domain.Series) dto.SeriesResponse {
	return dto.SeriesResponse{
		ID:          series.ID,
		Title:       series.Title,
		FromDate:    series.FromDate.Format(dateLayout),
		ToDate:      series.ToDate.Format(dateLayout),
		Passage:     series.Passage,
		Description: series.Description,
		Sermons:     sermonResponses(series.Sermons),
		CreatedAt:   series.CreatedAt,
		UpdatedAt:   series.UpdatedAt,
	}
}
