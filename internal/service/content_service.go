package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/repository"
	apperrors "github.com/pastor-mobile/church-admin-service/pkg/util"
)

// CreateSermonInput carries sermon creation fields.
type CreateSermonInput struct {
	Date        time.Time
	Time        *string
	Speaker     string
	Passage     string
	Title       string
	Description string
}

// UpdateSermonInput holds optional field changes; nil means keep.
type UpdateSermonInput struct {
	Date        *time.Time
	Time        *string
	Speaker     *string
	Passage     *string
	Title       *string
	Description *string
}

// CreateSeriesInput carries series creation fields.
type CreateSeriesInput struct {
	Title       string
	FromDate    time.Time
	ToDate      time.Time
	Passage     string
	Description string
	SermonIDs   []string
}

// UpdateSeriesInput holds optional field changes; nil means keep.
type UpdateSeriesInput struct {
	Title       *string
	FromDate    *time.Time
	ToDate      *time.Time
	Passage     *string
	Description *string
}

// CreateDevotionalInput carries devotional creation fields.
type CreateDevotionalInput struct {
	Title    string
	Date     time.Time
	Passage  string
	Leader   string
	SermonID *string
}

// UpdateDevotionalInput holds optional field changes; nil means keep.
type UpdateDevotionalInput struct {
	Title    *string
	Date     *time.Time
	Passage  *string
	Leader   *string
	SermonID *string
}

// ContentService manages sermons, series and devotionals.
type ContentService struct {
	sermons     repository.SermonRepository
	series      repository.SeriesRepository
	devotionals repository.DevotionalRepository
	logger      *zap.Logger
}

// NewContentService builds the service.
func NewContentService(sermons repository.SermonRepository, series repository.SeriesRepository, devotionals repository.DevotionalRepository, logger *zap.Logger) *ContentService {
	return &ContentService{
		sermons:     sermons,
		series:      series,
		devotionals: devotionals,
		logger:      logger,
	}
}

// CreateSermon records a new sermon.
func (s *ContentService) CreateSermon(ctx context.Context, actorID string, input CreateSermonInput) (*domain.Sermon, error) {
	sermon := &domain.Sermon{
		Date:        input.Date,
		Time:        input.Time,
		Speaker:     input.Speaker,
		Passage:     input.Passage,
		Title:       input.Title,
		Description: input.Description,
	}
	if actorID != "" {
		sermon.CreatedByID = &actorID
	}
	if err := s.sermons.Create(ctx, sermon); err != nil {
		return nil, err
	}
	return sermon, nil
}

// ListSermons returns all sermons, newest first.
func (s *ContentService) ListSermons(ctx context.Context) ([]domain.Sermon, error) {
	return s.sermons.List(ctx)
}

// CountSermons returns the number of sermons.
func (s *ContentService) CountSermons(ctx context.Context) (int64, error) {
	return s.sermons.Count(ctx)
}

// GetSermon fetches one sermon.
func (s *ContentService) GetSermon(ctx context.Context, id string) (*domain.Sermon, error) {
	sermon, err := s.sermons.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("sermon", nil)
		}
		return nil, err
	}
	return sermon, nil
}

// UpdateSermon applies the provided changes.
func (s *ContentService) UpdateSermon(ctx context.Context, id string, input UpdateSermonInput) (*domain.Sermon, error) {
	sermon, err := s.GetSermon(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Date != nil {
		sermon.Date = *input.Date
	}
	if input.Time != nil {
		sermon.Time = input.Time
	}
	if input.Speaker != nil {
		sermon.Speaker = *input.Speaker
	}
	if input.Passage != nil {
		sermon.Passage = *input.Passage
	}
	if input.Title != nil {
		sermon.Title = *input.Title
	}
	if input.Description != nil {
		sermon.Description = *input.Description
	}

	if err := s.sermons.Update(ctx, sermon); err != nil {
		return nil, err
	}
	return sermon, nil
}

// DeleteSermon removes a sermon.
func (s *ContentService) DeleteSermon(ctx context.Context, id string) error {
	if err := s.sermons.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return apperrors.NewNotFound("sermon", nil)
		}
		return err
	}
	return nil
}

// AssociateSermonSeries links an existing series to a sermon. Linking the
// same pair twice is a conflict.
func (s *ContentService) AssociateSermonSeries(ctx context.Context, actorID, sermonID, seriesID string) error {
	if _, err := s.GetSermon(ctx, sermonID); err != nil {
		return err
	}
	if _, err := s.GetSeries(ctx, seriesID); err != nil {
		return err
	}

	var createdBy *string
	if actorID != "" {
		createdBy = &actorID
	}
	if err := s.sermons.AssociateSeries(ctx, sermonID, seriesID, createdBy); err != nil {
		if err == repository.ErrAlreadyAssociated {
			return apperrors.NewConflict("series is already associated with this sermon", nil)
		}
		return err
	}
	return nil
}

// UnassociatedSeries lists series not yet linked to the given sermon.
func (s *ContentService) UnassociatedSeries(ctx context.Context, sermonID string) ([]domain.Series, error) {
	if _, err := s.GetSermon(ctx, sermonID); err != nil {
		return nil, err
	}

	linked, err := s.sermons.AssociatedSeriesIDs(ctx, sermonID)
	if err != nil {
		return nil, err
	}
	all, err := s.series.List(ctx)
	if err != nil {
		return nil, err
	}

	linkedSet := make(map[string]struct{}, len(linked))
	for _, id := range linked {
		linkedSet[id] = struct{}{}
	}
	available := make([]domain.Series, 0, len(all))
	for _, item := range all {
		if _, ok := linkedSet[item.ID]; !ok {
			available = append(available, item)
		}
	}
	return available, nil
}

// CreateSeries records a new series, optionally seeding its sermon members.
func (s *ContentService) CreateSeries(ctx context.Context, actorID string, input CreateSeriesInput) (*domain.Series, error) {
	series := &domain.Series{
		Title:       input.Title,
		FromDate:    input.FromDate,
		ToDate:      input.ToDate,
		Passage:     input.Passage,
		Description: input.Description,
	}
	if actorID != "" {
		series.CreatedByID = &actorID
	}
	if err := s.series.Create(ctx, series); err != nil {
		return nil, err
	}
	if len(input.SermonIDs) > 0 {
		if err := s.series.AddSermons(ctx, series.ID, input.SermonIDs); err != nil {
			return nil, err
		}
	}
	return s.loadSeriesSermons(ctx, series)
}

// ListSeries returns all series with their member sermons, newest first.
func (s *ContentService) ListSeries(ctx context.Context) ([]domain.Series, error) {
	list, err := s.series.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if _, err := s.loadSeriesSermons(ctx, &list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// CountSeries returns the number of series.
func (s *ContentService) CountSeries(ctx context.Context) (int64, error) {
	return s.series.Count(ctx)
}

// GetSeries fetches one series without its members.
func (s *ContentService) GetSeries(ctx context.Context, id string) (*domain.Series, error) {
	series, err := s.series.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("series", nil)
		}
		return nil, err
	}
	return series, nil
}

// GetSeriesWithSermons fetches one series including its member sermons.
func (s *ContentService) GetSeriesWithSermons(ctx context.Context, id string) (*domain.Series, error) {
	series, err := s.GetSeries(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.loadSeriesSermons(ctx, series)
}

// UpdateSeries applies the provided changes.
func (s *ContentService) UpdateSeries(ctx context.Context, id string, input UpdateSeriesInput) (*domain.Series, error) {
	series, err := s.GetSeries(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		series.Title = *input.Title
	}
	if input.FromDate != nil {
		series.FromDate = *input.FromDate
	}
	if input.ToDate != nil {
		series.ToDate = *input.ToDate
	}
	if input.Passage != nil {
		series.Passage = *input.Passage
	}
	if input.Description != nil {
		series.Description = *input.Description
	}

	if err := s.series.Update(ctx, series); err != nil {
		return nil, err
	}
	return s.loadSeriesSermons(ctx, series)
}

// DeleteSeries removes a series.
func (s *ContentService) DeleteSeries(ctx context.Context, id string) error {
	if err := s.series.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return apperrors.NewNotFound("series", nil)
		}
		return err
	}
	return nil
}

// AddSeriesSermons attaches sermons to a series; already attached ids are
// ignored.
func (s *ContentService) AddSeriesSermons(ctx context.Context, seriesID string, sermonIDs []string) (*domain.Series, error) {
	series, err := s.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	for _, sermonID := range sermonIDs {
		if _, err := s.GetSermon(ctx, sermonID); err != nil {
			return nil, err
		}
	}
	if err := s.series.AddSermons(ctx, seriesID, sermonIDs); err != nil {
		return nil, err
	}
	return s.loadSeriesSermons(ctx, series)
}

// RemoveSeriesSermons detaches sermons from a series.
func (s *ContentService) RemoveSeriesSermons(ctx context.Context, seriesID string, sermonIDs []string) (*domain.Series, error) {
	series, err := s.GetSeries(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	if err := s.series.RemoveSermons(ctx, seriesID, sermonIDs); err != nil {
		return nil, err
	}
	return s.loadSeriesSermons(ctx, series)
}

// AvailableSermons lists sermons not yet attached to the given series.
func (s *ContentService) AvailableSermons(ctx context.Context, seriesID string) ([]domain.Sermon, error) {
	if _, err := s.GetSeries(ctx, seriesID); err != nil {
		return nil, err
	}

	memberIDs, err := s.series.SermonIDs(ctx, seriesID)
	if err != nil {
		return nil, err
	}
	all, err := s.sermons.List(ctx)
	if err != nil {
		return nil, err
	}

	memberSet := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		memberSet[id] = struct{}{}
	}
	available := make([]domain.Sermon, 0, len(all))
	for _, sermon := range all {
		if _, ok := memberSet[sermon.ID]; !ok {
			available = append(available, sermon)
		}
	}
	return available, nil
}

// SeriesSermons partitions all sermons around the given series: current
// members first, then the sermons still available to attach.
func (s *ContentService) SeriesSermons(ctx context.Context, seriesID string) ([]domain.Sermon, []domain.Sermon, error) {
	if _, err := s.GetSeries(ctx, seriesID); err != nil {
		return nil, nil, err
	}

	memberIDs, err := s.series.SermonIDs(ctx, seriesID)
	if err != nil {
		return nil, nil, err
	}
	all, err := s.sermons.List(ctx)
	if err != nil {
		return nil, nil, err
	}

	memberSet := make(map[string]struct{}, len(memberIDs))
	for _, id := range memberIDs {
		memberSet[id] = struct{}{}
	}
	members := make([]domain.Sermon, 0, len(memberIDs))
	available := make([]domain.Sermon, 0, len(all))
	for _, sermon := range all {
		if _, ok := memberSet[sermon.ID]; ok {
			members = append(members, sermon)
		} else {
			available = append(available, sermon)
		}
	}
	return members, available, nil
}

func (s *ContentService) loadSeriesSermons(ctx context.Context, series *domain.Series) (*domain.Series, error) {
	ids, err := s.series.SermonIDs(ctx, series.ID)
	if err != nil {
		return nil, err
	}

	series.Sermons = make([]domain.Sermon, 0, len(ids))
	for _, id := range ids {
		sermon, err := s.sermons.GetByID(ctx, id)
		if err != nil {
			if isNoRows(err) {
				continue
			}
			return nil, err
		}
		series.Sermons = append(series.Sermons, *sermon)
	}
	return series, nil
}

// CreateDevotional records a new devotional. A sermon reference, when given,
// must point at an existing sermon.
func (s *ContentService) CreateDevotional(ctx context.Context, actorID string, input CreateDevotionalInput) (*domain.Devotional, error) {
	if input.SermonID != nil {
		if _, err := s.GetSermon(ctx, *input.SermonID); err != nil {
			return nil, err
		}
	}

	devotional := &domain.Devotional{
		Title:    input.Title,
		Date:     input.Date,
		Passage:  input.Passage,
		Leader:   input.Leader,
		SermonID: input.SermonID,
	}
	if actorID != "" {
		devotional.CreatedByID = &actorID
	}
	if err := s.devotionals.Create(ctx, devotional); err != nil {
		return nil, err
	}
	return devotional, nil
}

// ListDevotionals returns all devotionals, newest first.
func (s *ContentService) ListDevotionals(ctx context.Context) ([]domain.Devotional, error) {
	return s.devotionals.List(ctx)
}

// CountDevotionals returns the number of devotionals.
func (s *ContentService) CountDevotionals(ctx context.Context) (int64, error) {
	return s.devotionals.Count(ctx)
}

// GetDevotional fetches one devotional.
func (s *ContentService) GetDevotional(ctx context.Context, id string) (*domain.Devotional, error) {
	devotional, err := s.devotionals.GetByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.NewNotFound("devotional", nil)
		}
		return nil, err
	}
	return devotional, nil
}

// UpdateDevotional applies the provided changes.
func (s *ContentService) UpdateDevotional(ctx context.Context, id string, input UpdateDevotionalInput) (*domain.Devotional, error) {
	devotional, err := s.GetDevotional(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		devotional.Title = *input.Title
	}
	if input.Date != nil {
		devotional.Date = *input.Date
	}
	if input.Passage != nil {
		devotional.Passage = *input.Passage
	}
	if input.Leader != nil {
		devotional.Leader = *input.Leader
	}
	if input.SermonID != nil {
		if *input.SermonID == "" {
			devotional.SermonID = nil
		} else {
			if _, err := s.GetSermon(ctx, *input.SermonID); err != nil {
				return nil, err
			}
			devotional.SermonID = input.SermonID
		}
	}

	if err := s.devotionals.Update(ctx, devotional); err != nil {
		return nil, err
	}
	return devotional, nil
}

// DeleteDevotional removes a devotional.
func (s *ContentService) DeleteDevotional(ctx context.Context, id string) error {
	if err := s.devotionals.Delete(ctx, id); err != nil {
		if isNoRows(err) {
			return apperrors.NewNotFound("devotional", nil)
		}
		return err
	}
	return nil
}
