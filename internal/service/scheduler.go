package service

import (
	"context"
	"fmt"
	"time"

	"EditorialSync/internal/model"
	"EditorialSync/internal/repository"

	"github.com/sirupsen/logrus"
)

// Scheduler 页面级排程触发器。没有常驻工作池，只有"到点了吗"的轮询：
// 每个tick扫描启用的排程，到达当日触发时刻且本日未触发过的运动各执行一次页面生成
type Scheduler struct {
	scheduleRepo repository.ScheduleRepository
	pageGen      *PageGenService
	interval     time.Duration
	logger       *logrus.Logger
	now          func() time.Time
}

// NewScheduler 创建排程触发器
func NewScheduler(scheduleRepo repository.ScheduleRepository, pageGen *PageGenService, intervalSeconds int, logger *logrus.Logger) *Scheduler {
	if intervalSeconds <= 0 {
		intervalSeconds = 60
	}
	return &Scheduler{
		scheduleRepo: scheduleRepo,
		pageGen:      pageGen,
		interval:     time.Duration(intervalSeconds) * time.Second,
		logger:       logger,
		now:          time.Now,
	}
}

// Run 阻塞运行直到ctx取消
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.logger.Infof("页面级排程器启动，检查间隔%s", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("页面级排程器退出")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick 单次扫描。单运动失败只告警，不影响其余运动
func (s *Scheduler) tick(ctx context.Context) {
	schedules, err := s.scheduleRepo.ListEnabled(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("读取排程失败，本次tick跳过")
		return
	}

	now := s.now().In(model.ReferenceZone)
	for _, sched := range schedules {
		due, err := scheduleDue(sched, now)
		if err != nil {
			s.logger.WithError(err).Warnf("%s排程时刻无效，跳过", sched.SportType)
			continue
		}
		if !due {
			continue
		}
		s.logger.Infof("%s到达排程时刻，触发页面级生成", sched.SportType)
		if _, err := s.pageGen.GeneratePage(ctx, sched.SportType); err != nil {
			s.logger.WithError(err).Warnf("%s定时页面级生成失败", sched.SportType)
		}
	}
}

// scheduleDue 判定是否到点：当前美东时间≥当日触发时刻，且last_run_at早于该时刻（防重复触发）
func scheduleDue(sched *model.PageSchedule, now time.Time) (bool, error) {
	t, err := time.ParseInLocation("15:04", sched.ScheduledTime, model.ReferenceZone)
	if err != nil {
		return false, fmt.Errorf("排程时刻%q解析失败: %w", sched.ScheduledTime, err)
	}
	todayAt := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, model.ReferenceZone)
	if now.Before(todayAt) {
		return false, nil
	}
	if sched.LastRunAt != nil && !sched.LastRunAt.In(model.ReferenceZone).Before(todayAt) {
		return false, nil
	}
	return true, nil
}
