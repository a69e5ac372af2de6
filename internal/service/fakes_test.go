package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/courtline/internal/models"
	"github.com/yourusername/courtline/internal/repository"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

type fakeGameLogRepo struct {
	logs      []*models.GameLog
	batchSeen [][]*models.GameLog
}

func (f *fakeGameLogRepo) Create(_ context.Context, log *models.GameLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeGameLogRepo) CreateBatch(_ context.Context, logs []*models.GameLog) error {
	f.batchSeen = append(f.batchSeen, logs)
	f.logs = append(f.logs, logs...)
	return nil
}

func (f *fakeGameLogRepo) GetByID(_ context.Context, id uuid.UUID) (*models.GameLog, error) {
	for _, g := range f.logs {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeGameLogRepo) GetByPlayer(_ context.Context, playerID uuid.UUID, limit int) ([]*models.GameLog, error) {
	return f.playerLogs(playerID, time.Time{}, limit), nil
}

func (f *fakeGameLogRepo) GetByPlayerBefore(_ context.Context, playerID uuid.UUID, before time.Time, limit int) ([]*models.GameLog, error) {
	return f.playerLogs(playerID, before, limit), nil
}

func (f *fakeGameLogRepo) GetByPlayerSeason(_ context.Context, playerID uuid.UUID, season string) ([]*models.GameLog, error) {
	var out []*models.GameLog
	for _, g := range f.logs {
		if g.PlayerID == playerID && g.Season == season {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGameLogRepo) GetBySeasons(_ context.Context, seasons []string) ([]*models.GameLog, error) {
	want := make(map[string]bool, len(seasons))
	for _, s := range seasons {
		want[s] = true
	}
	var out []*models.GameLog
	for _, g := range f.logs {
		if want[g.Season] {
			out = append(out, g)
		}
	}
	return out, nil
}

// playerLogs mirrors the store's newest-first ordering
func (f *fakeGameLogRepo) playerLogs(playerID uuid.UUID, before time.Time, limit int) []*models.GameLog {
	var out []*models.GameLog
	for _, g := range f.logs {
		if g.PlayerID != playerID {
			continue
		}
		if !before.IsZero() && !g.GameDate.Before(before) {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GameDate.After(out[j].GameDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type fakeAggregateRepo struct {
	aggregates map[uuid.UUID]*models.SeasonAggregate
}

func (f *fakeAggregateRepo) Upsert(_ context.Context, agg *models.SeasonAggregate) error {
	if f.aggregates == nil {
		f.aggregates = make(map[uuid.UUID]*models.SeasonAggregate)
	}
	f.aggregates[agg.PlayerID] = agg
	return nil
}

func (f *fakeAggregateRepo) GetByPlayerSeason(_ context.Context, playerID uuid.UUID, _ string) (*models.SeasonAggregate, error) {
	if agg, ok := f.aggregates[playerID]; ok {
		return agg, nil
	}
	return nil, models.ErrNotFound
}

type fakeTeamContextRepo struct {
	contexts map[string]*models.TeamContext
}

func (f *fakeTeamContextRepo) Upsert(_ context.Context, tc *models.TeamContext) error {
	if f.contexts == nil {
		f.contexts = make(map[string]*models.TeamContext)
	}
	f.contexts[tc.Team] = tc
	return nil
}

func (f *fakeTeamContextRepo) GetByTeamSeason(_ context.Context, team, _ string) (*models.TeamContext, error) {
	if tc, ok := f.contexts[team]; ok {
		return tc, nil
	}
	return nil, models.ErrNotFound
}

type fakeModelRepo struct {
	active   map[models.StatType]*models.TrainedModel
	replaced []*models.TrainedModel
}

func (f *fakeModelRepo) GetByID(_ context.Context, id uuid.UUID) (*models.TrainedModel, error) {
	for _, m := range f.active {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeModelRepo) GetActive(_ context.Context, statType models.StatType, _ string) (*models.TrainedModel, error) {
	if m, ok := f.active[statType]; ok {
		return m, nil
	}
	return nil, models.ErrNoActiveModel
}

func (f *fakeModelRepo) ListActive(_ context.Context) ([]*models.TrainedModel, error) {
	out := make([]*models.TrainedModel, 0, len(f.active))
	for _, m := range f.active {
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeModelRepo) List(_ context.Context, statType models.StatType, _ string) ([]*models.TrainedModel, error) {
	if m, ok := f.active[statType]; ok {
		return []*models.TrainedModel{m}, nil
	}
	return nil, nil
}

func (f *fakeModelRepo) ReplaceActive(_ context.Context, model *models.TrainedModel) error {
	if f.active == nil {
		f.active = make(map[models.StatType]*models.TrainedModel)
	}
	f.active[model.StatType] = model
	f.replaced = append(f.replaced, model)
	return nil
}

func (f *fakeModelRepo) Activate(_ context.Context, id uuid.UUID) error {
	for _, m := range f.active {
		if m.ID == id {
			m.Active = true
			return nil
		}
	}
	return models.ErrNotFound
}

type fakeProjectionLogRepo struct {
	inserted []*models.Projection
	outcomes map[uuid.UUID]float64
}

func (f *fakeProjectionLogRepo) Insert(_ context.Context, proj *models.Projection) error {
	f.inserted = append(f.inserted, proj)
	return nil
}

func (f *fakeProjectionLogRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Projection, error) {
	for _, p := range f.inserted {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (f *fakeProjectionLogRepo) GetByPlayer(_ context.Context, playerID uuid.UUID, statType models.StatType, limit int) ([]*models.Projection, error) {
	var out []*models.Projection
	for _, p := range f.inserted {
		if p.PlayerID == playerID && p.StatType == statType {
			out = append(out, p)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeProjectionLogRepo) GetPendingOutcomes(_ context.Context, before time.Time) ([]*models.Projection, error) {
	var out []*models.Projection
	for _, p := range f.inserted {
		if _, done := f.outcomes[p.ID]; done {
			continue
		}
		if p.GameDate.Before(before) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProjectionLogRepo) RecordOutcome(_ context.Context, id uuid.UUID, actual float64) error {
	if f.outcomes == nil {
		f.outcomes = make(map[uuid.UUID]float64)
	}
	f.outcomes[id] = actual
	return nil
}

func newFakeRepositories() (*repository.Repositories, *fakeGameLogRepo, *fakeModelRepo, *fakeProjectionLogRepo) {
	gameLogs := &fakeGameLogRepo{}
	modelRepo := &fakeModelRepo{}
	projLog := &fakeProjectionLogRepo{}
	repos := &repository.Repositories{
		GameLog:         gameLogs,
		SeasonAggregate: &fakeAggregateRepo{},
		TeamContext:     &fakeTeamContextRepo{},
		Model:           modelRepo,
		ProjectionLog:   projLog,
	}
	return repos, gameLogs, modelRepo, projLog
}
