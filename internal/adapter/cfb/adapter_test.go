package cfb

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"EditorialSync/internal/config"
	"EditorialSync/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAdapter(t *testing.T, body string) *Adapter {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewAdapter(&config.FeedConfig{BaseURL: srv.URL, Timeout: 5}, testLogger()).(*Adapter)
}

const cfbFeedBody = `[
	{"game_id":401550001,"game_date":"2025-11-22 15:30","home":"Michigan","away":"Ohio State",
	 "spread":3.5,"favorite":"away","over_under":48.5,"home_moneyline":145,"away_moneyline":-170,
	 "home_win_prob":0.41,"away_win_prob":0.59,
	 "weather":{"temperature":35,"wind_speed":18,"conditions":"Windy"}},
	{"game_id":401550002,"game_date":"2025-11-22 12:00","home":"Alabama","away":"Auburn",
	 "spread":7,"favorite":"home"},
	{"game_id":401550003,"game_date":"2025-11-23","home":"Oregon","away":"Washington",
	 "spread":2,"favorite":"neither"}
]`

func TestFetchGamesNumericIDToString(t *testing.T) {
	a := newTestAdapter(t, cfbFeedBody)
	raw, err := a.FetchGames(context.Background(), []string{"401550002"})
	require.NoError(t, err)
	require.Len(t, raw, 1)
	assert.Equal(t, "401550002", raw[0].GameID)
}

func TestConvertDerivesSpreadSign(t *testing.T) {
	a := newTestAdapter(t, cfbFeedBody)
	raw, err := a.FetchGames(context.Background(), nil)
	require.NoError(t, err)
	views, err := a.ConvertToGameViews(raw)
	require.NoError(t, err)
	require.Len(t, views, 3)

	// favorite=away：客队被让，主队视角为正
	mich := views["401550001"]
	require.NotNil(t, mich.Lines)
	assert.Equal(t, 3.5, *mich.Lines.Spread)
	assert.Equal(t, 48.5, *mich.Lines.Total)
	assert.Equal(t, -170, *mich.Lines.AwayMoneyline)
	require.NotNil(t, mich.Weather)
	assert.Equal(t, 35.0, mich.Weather.TempF)

	// favorite=home：主队被让，主队视角为负
	bama := views["401550002"]
	require.NotNil(t, bama.Lines)
	assert.Equal(t, -7.0, *bama.Lines.Spread)
	assert.Nil(t, bama.Lines.Total)

	// favorite无效：让分置空，比赛照常收录
	ore := views["401550003"]
	require.NotNil(t, ore)
	assert.Nil(t, ore.Lines)
}

func TestConvertGameDateEastern(t *testing.T) {
	a := newTestAdapter(t, cfbFeedBody)
	raw, err := a.FetchGames(context.Background(), nil)
	require.NoError(t, err)
	views, err := a.ConvertToGameViews(raw)
	require.NoError(t, err)

	// 无时区组合时间按美东解释
	mich := views["401550001"]
	assert.Equal(t, model.ReferenceZone, mich.Kickoff.Location())
	assert.Equal(t, 15, mich.Kickoff.Hour())

	// 纯日期：美东当日最后一刻，当日比赛留在补齐窗口内
	ore := views["401550003"]
	assert.Equal(t, 23, ore.Kickoff.Hour())
	assert.Equal(t, 23, ore.Kickoff.Day())
}
