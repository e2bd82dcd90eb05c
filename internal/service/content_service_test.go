package service

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/pastor-mobile/church-admin-service/internal/domain"
	"github.com/pastor-mobile/church-admin-service/internal/repository"
)

type stubSermonRepo struct {
	mu           sync.Mutex
	sermons      map[string]*domain.Sermon
	associations map[string][]string
	seq          int
}

func newStubSermonRepo() *stubSermonRepo {
	return &stubSermonRepo{
		sermons:      map[string]*domain.Sermon{},
		associations: map[string][]string{},
	}
}

func (r *stubSermonRepo) Create(_ context.Context, sermon *domain.Sermon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sermon.ID == "" {
		r.seq++
		sermon.ID = "sermon-" + strconv.Itoa(r.seq)
	}
	copied := *sermon
	r.sermons[sermon.ID] = &copied
	return nil
}

func (r *stubSermonRepo) Update(_ context.Context, sermon *domain.Sermon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sermons[sermon.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *sermon
	r.sermons[sermon.ID] = &copied
	return nil
}

func (r *stubSermonRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sermons[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.sermons, id)
	return nil
}

func (r *stubSermonRepo) GetByID(_ context.Context, id string) (*domain.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sermon, ok := r.sermons[id]; ok {
		copied := *sermon
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubSermonRepo) List(_ context.Context) ([]domain.Sermon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Sermon
	for _, sermon := range r.sermons {
		out = append(out, *sermon)
	}
	return out, nil
}

func (r *stubSermonRepo) Count(ctx context.Context) (int64, error) {
	list, _ := r.List(ctx)
	return int64(len(list)), nil
}

func (r *stubSermonRepo) AssociateSeries(_ context.Context, sermonID, seriesID string, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.associations[sermonID] {
		if existing == seriesID {
			return repository.ErrAlreadyAssociated
		}
	}
	r.associations[sermonID] = append(r.associations[sermonID], seriesID)
	return nil
}

func (r *stubSermonRepo) AssociatedSeriesIDs(_ context.Context, sermonID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.associations[sermonID]...), nil
}

type stubSeriesRepo struct {
	mu      sync.Mutex
	series  map[string]*domain.Series
	members map[string][]string
	seq     int
}

func newStubSeriesRepo() *stubSeriesRepo {
	return &stubSeriesRepo{
		series:  map[string]*domain.Series{},
		members: map[string][]string{},
	}
}

func (r *stubSeriesRepo) Create(_ context.Context, series *domain.Series) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if series.ID == "" {
		r.seq++
		series.ID = "series-" + strconv.Itoa(r.seq)
	}
	copied := *series
	r.series[series.ID] = &copied
	return nil
}

func (r *stubSeriesRepo) Update(_ context.Context, series *domain.Series) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.series[series.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *series
	r.series[series.ID] = &copied
	return nil
}

func (r *stubSeriesRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.series[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.series, id)
	delete(r.members, id)
	return nil
}

func (r *stubSeriesRepo) GetByID(_ context.Context, id string) (*domain.Series, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if series, ok := r.series[id]; ok {
		copied := *series
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubSeriesRepo) List(_ context.Context) ([]domain.Series, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Series
	for _, series := range r.series {
		out = append(out, *series)
	}
	return out, nil
}

func (r *stubSeriesRepo) Count(ctx context.Context) (int64, error) {
	list, _ := r.List(ctx)
	return int64(len(list)), nil
}

func (r *stubSeriesRepo) SermonIDs(_ context.Context, seriesID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string{}, r.members[seriesID]...), nil
}

func (r *stubSeriesRepo) AddSermons(_ context.Context, seriesID string, sermonIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range sermonIDs {
		seen := false
		for _, existing := range r.members[seriesID] {
			if existing == id {
				seen = true
				break
			}
		}
		if !seen {
			r.members[seriesID] = append(r.members[seriesID], id)
		}
	}
	return nil
}

func (r *stubSeriesRepo) RemoveSermons(_ context.Context, seriesID string, sermonIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []string
	for _, existing := range r.members[seriesID] {
		remove := false
		for _, id := range sermonIDs {
			if existing == id {
				remove = true
				break
			}
		}
		if !remove {
			kept = append(kept, existing)
		}
	}
	r.members[seriesID] = kept
	return nil
}

type stubDevotionalRepo struct {
	mu          sync.Mutex
	devotionals map[string]*domain.Devotional
	seq         int
}

func newStubDevotionalRepo() *stubDevotionalRepo {
	return &stubDevotionalRepo{devotionals: map[string]*domain.Devotional{}}
}

func (r *stubDevotionalRepo) Create(_ context.Context, devotional *domain.Devotional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if devotional.ID == "" {
		r.seq++
		devotional.ID = "devotional-" + strconv.Itoa(r.seq)
	}
	copied := *devotional
	r.devotionals[devotional.ID] = &copied
	return nil
}

func (r *stubDevotionalRepo) Update(_ context.Context, devotional *domain.Devotional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devotionals[devotional.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *devotional
	r.devotionals[devotional.ID] = &copied
	return nil
}

func (r *stubDevotionalRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.devotionals[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.devotionals, id)
	return nil
}

func (r *stubDevotionalRepo) GetByID(_ context.Context, id string) (*domain.Devotional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if devotional, ok := r.devotionals[id]; ok {
		copied := *devotional
		return &copied, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *stubDevotionalRepo) List(_ context.Context) ([]domain.Devotional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Devotional
	for _, devotional := range r.devotionals {
		out = append(out, *devotional)
	}
	return out, nil
}

func (r *stubDevotionalRepo) Count(ctx context.Context) (int64, error) {
	list, _ := r.List(ctx)
	return int64(len(list)), nil
}

func newContentFixture() (*ContentService, *stubSermonRepo, *stubSeriesRepo, *stubDevotionalRepo) {
	sermons := newStubSermonRepo()
	series := newStubSeriesRepo()
	devotionals := newStubDevotionalRepo()
	svc := NewContentService(sermons, series, devotionals, zap.NewNop())
	return svc, sermons, series, devotionals
}

func seedSermon(t *testing.T, svc *ContentService, title string) *domain.Sermon {
	t.Helper()
	sermon, err := svc.CreateSermon(context.Background(), "actor-1", CreateSermonInput{
		Date: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), Speaker: "Speaker", Title: title,
	})
	if err != nil {
		t.Fatalf("CreateSermon: %v", err)
	}
	return sermon
}

func seedSeries(t *testing.T, svc *ContentService, title string, sermonIDs ...string) *domain.Series {
	t.Helper()
	series, err := svc.CreateSeries(context.Background(), "actor-1", CreateSeriesInput{
		Title:     title,
		FromDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		SermonIDs: sermonIDs,
	})
	if err != nil {
		t.Fatalf("CreateSeries: %v", err)
	}
	return series
}

func TestAssociateSermonSeriesConflict(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	sermon := seedSermon(t, svc, "Hope")
	series := seedSeries(t, svc, "Lent")

	if err := svc.AssociateSermonSeries(context.Background(), "actor-1", sermon.ID, series.ID); err != nil {
		t.Fatalf("AssociateSermonSeries: %v", err)
	}
	if err := svc.AssociateSermonSeries(context.Background(), "actor-1", sermon.ID, series.ID); err == nil {
		t.Fatal("duplicate association accepted")
	}
	if err := svc.AssociateSermonSeries(context.Background(), "actor-1", "missing", series.ID); err == nil {
		t.Fatal("missing sermon accepted")
	}
}

func TestUnassociatedSeriesExcludesLinked(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	sermon := seedSermon(t, svc, "Hope")
	linked := seedSeries(t, svc, "Lent")
	open := seedSeries(t, svc, "Advent")

	if err := svc.AssociateSermonSeries(context.Background(), "actor-1", sermon.ID, linked.ID); err != nil {
		t.Fatalf("AssociateSermonSeries: %v", err)
	}

	available, err := svc.UnassociatedSeries(context.Background(), sermon.ID)
	if err != nil {
		t.Fatalf("UnassociatedSeries: %v", err)
	}
	if len(available) != 1 || available[0].ID != open.ID {
		t.Fatalf("available = %+v", available)
	}
}

func TestSeriesMembershipLifecycle(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	first := seedSermon(t, svc, "First")
	second := seedSermon(t, svc, "Second")
	series := seedSeries(t, svc, "Lent", first.ID)

	loaded, err := svc.GetSeriesWithSermons(context.Background(), series.ID)
	if err != nil {
		t.Fatalf("GetSeriesWithSermons: %v", err)
	}
	if len(loaded.Sermons) != 1 || loaded.Sermons[0].ID != first.ID {
		t.Fatalf("members = %+v", loaded.Sermons)
	}

	available, err := svc.AvailableSermons(context.Background(), series.ID)
	if err != nil {
		t.Fatalf("AvailableSermons: %v", err)
	}
	if len(available) != 1 || available[0].ID != second.ID {
		t.Fatalf("available = %+v", available)
	}

	if _, err := svc.AddSeriesSermons(context.Background(), series.ID, []string{second.ID}); err != nil {
		t.Fatalf("AddSeriesSermons: %v", err)
	}
	loaded, _ = svc.GetSeriesWithSermons(context.Background(), series.ID)
	if len(loaded.Sermons) != 2 {
		t.Fatalf("members after add = %d", len(loaded.Sermons))
	}

	if _, err := svc.RemoveSeriesSermons(context.Background(), series.ID, []string{first.ID}); err != nil {
		t.Fatalf("RemoveSeriesSermons: %v", err)
	}
	loaded, _ = svc.GetSeriesWithSermons(context.Background(), series.ID)
	if len(loaded.Sermons) != 1 || loaded.Sermons[0].ID != second.ID {
		t.Fatalf("members after remove = %+v", loaded.Sermons)
	}
}

func TestSeriesSermonsSplitsMembersAndAvailable(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	member := seedSermon(t, svc, "Member")
	open := seedSermon(t, svc, "Open")
	series := seedSeries(t, svc, "Lent", member.ID)

	members, available, err := svc.SeriesSermons(context.Background(), series.ID)
	if err != nil {
		t.Fatalf("SeriesSermons: %v", err)
	}
	if len(members) != 1 || members[0].ID != member.ID {
		t.Fatalf("members = %+v", members)
	}
	if len(available) != 1 || available[0].ID != open.ID {
		t.Fatalf("available = %+v", available)
	}

	if _, _, err := svc.SeriesSermons(context.Background(), "missing"); err == nil {
		t.Fatal("missing series accepted")
	}
}

func TestCreateDevotionalValidatesSermonReference(t *testing.T) {
	svc, _, _, _ := newContentFixture()
	sermon := seedSermon(t, svc, "Hope")

	missing := "missing-sermon"
	_, err := svc.CreateDevotional(context.Background(), "actor-1", CreateDevotionalInput{
		Title: "Daily", Date: time.Now(), Leader: "Leader", SermonID: &missing,
	})
	if err == nil {
		t.Fatal("dangling sermon reference accepted")
	}

	devotional, err := svc.CreateDevotional(context.Background(), "actor-1", CreateDevotionalInput{
		Title: "Daily", Date: time.Now(), Leader: "Leader", SermonID: &sermon.ID,
	})
	if err != nil {
		t.Fatalf("CreateDevotional: %v", err)
	}
	if devotional.SermonID == nil || *devotional.SermonID != sermon.ID {
		t.Fatalf("sermon id = %v", devotional.SermonID)
	}

	// Clearing the reference via an empty id.
	empty := ""
	updated, err := svc.UpdateDevotional(context.Background(), devotional.ID, UpdateDevotionalInput{SermonID: &empty})
	if err != nil {
		t.Fatalf("UpdateDevotional: %v", err)
	}
	if updated.SermonID != nil {
		t.Fatal("sermon reference not cleared")
	}
}
