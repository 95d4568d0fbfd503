package service

import (
	"context"
	"io"
	"time"

	"EditorialSync/internal/model"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// 测试用静默日志器
func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// fakeCatalog 内存比赛目录
type fakeCatalog struct {
	games      map[model.SportType][]*model.GameView
	errs       map[model.SportType]error
	lastIDs    []string
	fetchCount int
}

func (f *fakeCatalog) Fetch(_ context.Context, sport model.SportType, gameIDs []string) (map[string]*model.GameView, error) {
	f.fetchCount++
	f.lastIDs = gameIDs
	if err := f.errs[sport]; err != nil {
		return nil, err
	}
	out := make(map[string]*model.GameView)
	for _, g := range f.games[sport] {
		out[g.GameID] = g
	}
	return out, nil
}

// fakeCompletionRepo 内存槽位配置与文本仓储。行键为 sport|game_id|slot
type fakeCompletionRepo struct {
	configs   []*model.CompletionConfig
	rows      map[string]string
	upsertErr error
	upserts   int
}

func newFakeCompletionRepo(configs []*model.CompletionConfig) *fakeCompletionRepo {
	return &fakeCompletionRepo{configs: configs, rows: map[string]string{}}
}

func rowKey(sport model.SportType, gameID string, slot model.SlotType) string {
	return model.GameKey(sport, gameID) + "|" + string(slot)
}

func (f *fakeCompletionRepo) ListConfigs(_ context.Context, sport *model.SportType) ([]*model.CompletionConfig, error) {
	if sport == nil {
		return f.configs, nil
	}
	out := make([]*model.CompletionConfig, 0)
	for _, c := range f.configs {
		if c.SportType == *sport {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCompletionRepo) GetConfigByID(_ context.Context, id uint64) (*model.CompletionConfig, error) {
	for _, c := range f.configs {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCompletionRepo) UpdateConfig(_ context.Context, id uint64, updates map[string]interface{}) error {
	for _, c := range f.configs {
		if c.ID == id {
			if v, ok := updates["enabled"]; ok {
				c.Enabled = v.(bool)
			}
			if v, ok := updates["prompt"]; ok {
				c.Prompt = v.(string)
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeCompletionRepo) UpsertCompletion(_ context.Context, c *model.Completion) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts++
	f.rows[rowKey(c.SportType, c.GameID, c.SlotType)] = c.Content
	return nil
}

func (f *fakeCompletionRepo) ListCompletionGameIDs(_ context.Context, sport model.SportType, slot model.SlotType) (map[string]bool, error) {
	out := make(map[string]bool)
	for key := range f.rows {
		parts := splitRowKey(key)
		if model.SportType(parts[0]) == sport && model.SlotType(parts[2]) == slot {
			out[parts[1]] = true
		}
	}
	return out, nil
}

func (f *fakeCompletionRepo) GetCompletionsForGame(_ context.Context, sport model.SportType, gameID string) (map[model.SlotType]string, error) {
	out := make(map[model.SlotType]string)
	for key, content := range f.rows {
		parts := splitRowKey(key)
		if model.SportType(parts[0]) == sport && parts[1] == gameID {
			out[model.SlotType(parts[2])] = content
		}
	}
	return out, nil
}

func splitRowKey(key string) [3]string {
	var parts [3]string
	idx := 0
	start := 0
	for i := 0; i < len(key) && idx < 2; i++ {
		if key[i] == '|' {
			parts[idx] = key[start:i]
			idx++
			start = i + 1
		}
	}
	parts[2] = key[start:]
	return parts
}

// fakeGenClient 可编程生成客户端。failGames 中的 game_id 生成失败
type fakeGenClient struct {
	text      string
	artifact  *model.ValueFindArtifact
	err       error
	failGames map[string]bool
	slotCalls int
	pageCalls int
}

func (f *fakeGenClient) GenerateSlot(_ context.Context, _ string, payload *model.Payload) (string, error) {
	f.slotCalls++
	if f.err != nil {
		return "", f.err
	}
	if f.failGames[payload.GameID] {
		return "", context.DeadlineExceeded
	}
	if f.text == "" {
		return "生成文本:" + payload.GameID, nil
	}
	return f.text, nil
}

func (f *fakeGenClient) GenerateValueFind(_ context.Context, _ string, _ []*model.Payload) (*model.ValueFindArtifact, error) {
	f.pageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.artifact, nil
}

// fakeValueFindRepo 内存价值发现仓储
type fakeValueFindRepo struct {
	bundles []*model.ValueFindBundle
	nextID  uint64
}

func (f *fakeValueFindRepo) Save(_ context.Context, b *model.ValueFindBundle) error {
	f.nextID++
	b.ID = f.nextID
	b.CreatedAt = time.Now()
	f.bundles = append(f.bundles, b)
	return nil
}

func (f *fakeValueFindRepo) GetLatest(_ context.Context, sport model.SportType) (*model.ValueFindBundle, error) {
	for i := len(f.bundles) - 1; i >= 0; i-- {
		if f.bundles[i].SportType == sport {
			return f.bundles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeValueFindRepo) GetLatestPublished(_ context.Context, sport model.SportType) (*model.ValueFindBundle, error) {
	for i := len(f.bundles) - 1; i >= 0; i-- {
		if f.bundles[i].SportType == sport && f.bundles[i].Published {
			return f.bundles[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeValueFindRepo) SetPublished(_ context.Context, id uint64, published bool) error {
	for _, b := range f.bundles {
		if b.ID == id {
			b.Published = published
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeValueFindRepo) Delete(_ context.Context, id uint64) error {
	for i, b := range f.bundles {
		if b.ID == id {
			f.bundles = append(f.bundles[:i], f.bundles[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakePickRepo 内存精选仓储
type fakePickRepo struct {
	picks  []*model.EditorPick
	nextID uint64
}

func (f *fakePickRepo) Create(_ context.Context, p *model.EditorPick) error {
	f.nextID++
	p.ID = f.nextID
	p.IsPublished = false
	f.picks = append(f.picks, p)
	return nil
}

func (f *fakePickRepo) GetByID(_ context.Context, id uint64) (*model.EditorPick, error) {
	for _, p := range f.picks {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePickRepo) List(_ context.Context, sport model.SportType, publishedOnly bool) ([]*model.EditorPick, error) {
	out := make([]*model.EditorPick, 0)
	for _, p := range f.picks {
		if p.SportType != sport {
			continue
		}
		if publishedOnly && !p.IsPublished {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePickRepo) SetPublished(_ context.Context, id uint64, published bool) error {
	for _, p := range f.picks {
		if p.ID == id {
			p.IsPublished = published
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakePickRepo) Delete(_ context.Context, id uint64) error {
	for i, p := range f.picks {
		if p.ID == id {
			f.picks = append(f.picks[:i], f.picks[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeScheduleRepo 内存排程仓储
type fakeScheduleRepo struct {
	schedules []*model.PageSchedule
	listErr   error
	markRuns  []model.SportType
}

func (f *fakeScheduleRepo) GetBySport(_ context.Context, sport model.SportType) (*model.PageSchedule, error) {
	for _, s := range f.schedules {
		if s.SportType == sport {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeScheduleRepo) ListEnabled(_ context.Context) ([]*model.PageSchedule, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*model.PageSchedule, 0)
	for _, s := range f.schedules {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Update(_ context.Context, sport model.SportType, updates map[string]interface{}) error {
	for _, s := range f.schedules {
		if s.SportType == sport {
			if v, ok := updates["enabled"]; ok {
				s.Enabled = v.(bool)
			}
			if v, ok := updates["prompt"]; ok {
				s.Prompt = v.(string)
			}
			if v, ok := updates["scheduled_time"]; ok {
				s.ScheduledTime = v.(string)
			}
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (f *fakeScheduleRepo) MarkRun(_ context.Context, sport model.SportType, at time.Time) error {
	f.markRuns = append(f.markRuns, sport)
	for _, s := range f.schedules {
		if s.SportType == sport {
			t := at
			s.LastRunAt = &t
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

// fakeMarketOdds 固定赔率源
type fakeMarketOdds struct {
	odds  *model.MarketOdds
	err   error
	calls int
}

func (f *fakeMarketOdds) FetchGameOdds(_ context.Context, _ *model.GameView) (*model.MarketOdds, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.odds, nil
}
