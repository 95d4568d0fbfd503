package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"EditorialSync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 固定参考时刻：2025-11-20 12:00 美东
var testNow = time.Date(2025, 11, 20, 12, 0, 0, 0, model.ReferenceZone)

func gameAt(sport model.SportType, gameID string, kickoff time.Time) *model.GameView {
	return &model.GameView{
		GameID:   gameID,
		Sport:    sport,
		Kickoff:  kickoff,
		HomeTeam: model.TeamView{Name: "Home " + gameID},
		AwayTeam: model.TeamView{Name: "Away " + gameID},
	}
}

func nflConfigs() []*model.CompletionConfig {
	return []*model.CompletionConfig{
		{ID: 1, SportType: model.SportNFL, SlotType: model.SlotSpread, Enabled: true, Prompt: "让分提示词"},
		{ID: 2, SportType: model.SportNFL, SlotType: model.SlotTotal, Enabled: true, Prompt: "大小分提示词"},
		{ID: 3, SportType: model.SportNFL, SlotType: model.SlotMoneyline, Enabled: false, Prompt: "独赢提示词"},
	}
}

func newTestReconcile(catalog *fakeCatalog, repo *fakeCompletionRepo, gen *fakeGenClient) *ReconcileService {
	svc := NewReconcileService(catalog, repo, gen, nil, 3, testLogger())
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestReconcileGeneratesMissingOnly(t *testing.T) {
	catalog := &fakeCatalog{games: map[model.SportType][]*model.GameView{
		model.SportNFL: {
			gameAt(model.SportNFL, "g1", testNow.Add(2*time.Hour)),
			gameAt(model.SportNFL, "g2", testNow.Add(48*time.Hour)),
			gameAt(model.SportNFL, "g3", testNow.Add(5*24*time.Hour)), // 窗口外
			gameAt(model.SportNFL, "g4", testNow.Add(-2*time.Hour)),   // 已过去
		},
	}}
	repo := newFakeCompletionRepo(nflConfigs())
	gen := &fakeGenClient{}
	svc := newTestReconcile(catalog, repo, gen)

	sport := model.SportNFL
	result, err := svc.Reconcile(context.Background(), &sport)
	require.NoError(t, err)

	// 窗口内2场 × 启用2槽位；停用槽位与窗口外比赛绝不触碰
	assert.Equal(t, 4, result.Generated)
	assert.Equal(t, 0, result.Errors)
	assert.Equal(t, 4, gen.slotCalls)
	assert.Empty(t, repo.rows[rowKey(model.SportNFL, "g1", model.SlotMoneyline)])
	assert.Empty(t, repo.rows[rowKey(model.SportNFL, "g3", model.SlotSpread)])
	assert.Equal(t, "生成文本:g1", repo.rows[rowKey(model.SportNFL, "g1", model.SlotSpread)])
}

func TestReconcileIdempotent(t *testing.T) {
	catalog := &fakeCatalog{games: map[model.SportType][]*model.GameView{
		model.SportNFL: {gameAt(model.SportNFL, "g1", testNow.Add(2*time.Hour))},
	}}
	repo := newFakeCompletionRepo(nflConfigs())
	gen := &fakeGenClient{}
	svc := newTestReconcile(catalog, repo, gen)

	sport := model.SportNFL
	first, err := svc.Reconcile(context.Background(), &sport)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Generated)

	// 再次触发：集合差为空，天然no-op
	second, err := svc.Reconcile(context.Background(), &sport)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Generated)
	assert.Equal(t, 2, gen.slotCalls)
}

func TestReconcilePartialFailure(t *testing.T) {
	catalog := &fakeCatalog{games: map[model.SportType][]*model.GameView{
		model.SportNFL: {
			gameAt(model.SportNFL, "good", testNow.Add(2*time.Hour)),
			gameAt(model.SportNFL, "bad", testNow.Add(3*time.Hour)),
		},
	}}
	repo := newFakeCompletionRepo([]*model.CompletionConfig{
		{ID: 1, SportType: model.SportNFL, SlotType: model.SlotSpread, Enabled: true},
	})
	gen := &fakeGenClient{failGames: map[string]bool{"bad": true}}
	svc := newTestReconcile(catalog, repo, gen)

	sport := model.SportNFL
	result, err := svc.Reconcile(context.Background(), &sport)
	require.NoError(t, err)

	// 单条失败只计数，不中断批次、不整体报错
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, 1, result.Errors)
	assert.NotEmpty(t, repo.rows[rowKey(model.SportNFL, "good", model.SlotSpread)])
	assert.Empty(t, repo.rows[rowKey(model.SportNFL, "bad", model.SlotSpread)])
}

func TestReconcileCrossSportIsolation(t *testing.T) {
	// nfl与nba各有一场game_id=42：nfl已有文本不影响nba的缺失判定
	catalog := &fakeCatalog{games: map[model.SportType][]*model.GameView{
		model.SportNFL: {gameAt(model.SportNFL, "42", testNow.Add(2*time.Hour))},
		model.SportNBA: {gameAt(model.SportNBA, "42", testNow.Add(2*time.Hour))},
	}}
	repo := newFakeCompletionRepo([]*model.CompletionConfig{
		{ID: 1, SportType: model.SportNFL, SlotType: model.SlotSpread, Enabled: true},
		{ID: 2, SportType: model.SportNBA, SlotType: model.SlotSpread, Enabled: true},
	})
	repo.rows[rowKey(model.SportNFL, "42", model.SlotSpread)] = "已有文本"
	gen := &fakeGenClient{}
	svc := newTestReconcile(catalog, repo, gen)

	result, err := svc.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
	assert.Equal(t, "已有文本", repo.rows[rowKey(model.SportNFL, "42", model.SlotSpread)])
	assert.Equal(t, "生成文本:42", repo.rows[rowKey(model.SportNBA, "42", model.SlotSpread)])
}

func TestReconcileCancelledKeepsPartialCounts(t *testing.T) {
	catalog := &fakeCatalog{games: map[model.SportType][]*model.GameView{
		model.SportNFL: {gameAt(model.SportNFL, "g1", testNow.Add(2*time.Hour))},
	}}
	repo := newFakeCompletionRepo(nflConfigs())
	gen := &fakeGenClient{}
	svc := newTestReconcile(catalog, repo, gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sport := model.SportNFL
	result, err := svc.Reconcile(ctx, &sport)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Generated)
	assert.Equal(t, 0, gen.slotCalls)
}

func TestReconcileInvalidSport(t *testing.T) {
	svc := newTestReconcile(&fakeCatalog{}, newFakeCompletionRepo(nil), &fakeGenClient{})
	bad := model.SportType("cricket")
	_, err := svc.Reconcile(context.Background(), &bad)
	assert.Error(t, err)
}

func TestReconcileSportFailurePropagation(t *testing.T) {
	fetchErr := errors.New("数据源超时")
	catalog := &fakeCatalog{
		games: map[model.SportType][]*model.GameView{
			model.SportNBA: {gameAt(model.SportNBA, "n1", testNow.Add(2*time.Hour))},
		},
		errs: map[model.SportType]error{model.SportNFL: fetchErr},
	}
	repo := newFakeCompletionRepo([]*model.CompletionConfig{
		{ID: 1, SportType: model.SportNBA, SlotType: model.SlotSpread, Enabled: true},
	})
	svc := newTestReconcile(catalog, repo, &fakeGenClient{})

	// 指定单运动：数据源失败整体传播
	sport := model.SportNFL
	_, err := svc.Reconcile(context.Background(), &sport)
	assert.ErrorIs(t, err, fetchErr)

	// 全量模式：nfl失败只告警，nba照常补齐
	result, err := svc.Reconcile(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Generated)
}

func TestReconcileMarketOddsOptional(t *testing.T) {
	catalog := &fakeCatalog{games: map[model.SportType][]*model.GameView{
		model.SportNFL: {gameAt(model.SportNFL, "g1", testNow.Add(2*time.Hour))},
	}}
	repo := newFakeCompletionRepo([]*model.CompletionConfig{
		{ID: 1, SportType: model.SportNFL, SlotType: model.SlotSpread, Enabled: true},
		{ID: 2, SportType: model.SportNFL, SlotType: model.SlotTotal, Enabled: true},
	})
	gen := &fakeGenClient{}
	odds := &fakeMarketOdds{err: errors.New("gamma接口不可用")}
	svc := NewReconcileService(catalog, repo, gen, odds, 3, testLogger())
	svc.now = func() time.Time { return testNow }

	sport := model.SportNFL
	result, err := svc.Reconcile(context.Background(), &sport)
	require.NoError(t, err)

	// 市场赔率失败不影响生成；同一场比赛的赔率在本轮内只拉一次
	assert.Equal(t, 2, result.Generated)
	assert.Equal(t, 1, odds.calls)
}
