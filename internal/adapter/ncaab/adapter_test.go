package ncaab

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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
		assert.Equal(t, "/games", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewAdapter(&config.FeedConfig{BaseURL: srv.URL, Timeout: 5}, testLogger()).(*Adapter)
}

const ncaabFeedBody = `[
	{"id":"duke-unc-20251120","gameDate":"2025-11-20","home":"Duke","away":"North Carolina",
	 "spread":-6.5,"total":152.5},
	{"id":"uk-ul-20251121","gameDate":"2025-11-21T19:00:00-05:00","home":"Kentucky","away":"Louisville",
	 "homeMl":-180,"awayMl":150,"homeWinProb":0.64,"awayWinProb":0.36}
]`

func TestConvertDateOnlyStaysInWindow(t *testing.T) {
	a := newTestAdapter(t, ncaabFeedBody)
	raw, err := a.FetchGames(context.Background(), nil)
	require.NoError(t, err)
	views, err := a.ConvertToGameViews(raw)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// 季初纯日期：按美东当日最后一刻，当天上午触发补齐时晚场比赛仍在 [now, now+3天) 内
	duke := views["duke-unc-20251120"]
	assert.Equal(t, model.ReferenceZone, duke.Kickoff.Location())
	assert.Equal(t, 20, duke.Kickoff.Day())
	assert.Equal(t, 23, duke.Kickoff.Hour())
	morning := time.Date(2025, 11, 20, 9, 0, 0, 0, model.ReferenceZone)
	assert.False(t, duke.Kickoff.Before(morning))
	require.NotNil(t, duke.Lines)
	assert.Equal(t, -6.5, *duke.Lines.Spread)
	// 小样本模型预测缺失
	assert.Nil(t, duke.Prediction)

	// 开球时刻已确定的完整ISO照常归一化
	uk := views["uk-ul-20251121"]
	assert.Equal(t, 19, uk.Kickoff.Hour())
	require.NotNil(t, uk.Prediction)
	assert.Equal(t, 0.64, uk.Prediction.HomeWinProb)
}

func TestConvertSkipsBadGameDate(t *testing.T) {
	a := newTestAdapter(t, `[{"id":"bad","gameDate":"someday","home":"A","away":"B"}]`)
	raw, err := a.FetchGames(context.Background(), nil)
	require.NoError(t, err)

	views, err := a.ConvertToGameViews(raw)
	require.NoError(t, err)
	assert.Empty(t, views)
}
