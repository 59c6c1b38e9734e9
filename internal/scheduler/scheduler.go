// Package scheduler 定时采集与定时重新评分
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const defaultJobTimeout = 30 * time.Minute

// ErrJobNotFound 任务未注册
var ErrJobNotFound = errors.New("job not found")

// Job 定时任务
type Job func(ctx context.Context) error

// JobInfo 任务信息
type JobInfo struct {
	Name     string    `json:"name"`
	Schedule string    `json:"schedule"`
	Next     time.Time `json:"next"`
	Prev     time.Time `json:"prev"`
}

type Scheduler struct {
	cron    *cron.Cron
	logger  *logrus.Logger
	baseCtx context.Context
	timeout time.Duration

	mu        sync.Mutex
	jobs      map[string]cron.EntryID
	schedules map[string]string
	funcs     map[string]Job
}

// New baseCtx 取消后正在执行的任务会收到取消信号
func New(baseCtx context.Context, logger *logrus.Logger) *Scheduler {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logger)),
		cron.SkipIfStillRunning(cron.PrintfLogger(logger)),
	))
	return &Scheduler{
		cron:      c,
		logger:    logger,
		baseCtx:   baseCtx,
		timeout:   defaultJobTimeout,
		jobs:      make(map[string]cron.EntryID),
		schedules: make(map[string]string),
		funcs:     make(map[string]Job),
	}
}

// AddJob schedule 为标准 5 段 cron 表达式，例如 "0 */6 * * *"
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		if err := s.run(name, job); err != nil {
			s.logger.WithError(err).Errorf("[scheduler] 任务%s执行失败", name)
		}
	})
	if err != nil {
		return fmt.Errorf("添加定时任务%s失败: %w", name, err)
	}

	s.mu.Lock()
	s.jobs[name] = entryID
	s.schedules[name] = schedule
	s.funcs[name] = job
	s.mu.Unlock()
	s.logger.WithFields(logrus.Fields{"job": name, "schedule": schedule}).Info("[scheduler] 已添加任务")
	return nil
}

// RunNow 立即执行一次已注册的任务，与定时触发互不影响
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	job, ok := s.funcs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	return s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) error {
	ctx, cancel := context.WithTimeout(s.baseCtx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Infof("[scheduler] 开始执行任务: %s", name)
	if err := job(ctx); err != nil {
		return err
	}
	s.logger.Infof("[scheduler] 任务%s完成，耗时%v", name, time.Since(start))
	return nil
}

// RemoveJob 任务不存在时返回 false
func (s *Scheduler) RemoveJob(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entryID, ok := s.jobs[name]
	if !ok {
		return false
	}
	s.cron.Remove(entryID)
	delete(s.jobs, name)
	delete(s.schedules, name)
	delete(s.funcs, name)
	s.logger.Infof("[scheduler] 已移除任务: %s", name)
	return true
}

// ListJobs 按名称排序
func (s *Scheduler) ListJobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	infos := make([]JobInfo, 0, len(s.jobs))
	for name, id := range s.jobs {
		entry := s.cron.Entry(id)
		infos = append(infos, JobInfo{Name: name, Schedule: s.schedules[name], Next: entry.Next, Prev: entry.Prev})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

func (s *Scheduler) Start() {
	s.logger.Info("[scheduler] 启动")
	s.cron.Start()
}

// Stop 等待正在执行的任务结束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("[scheduler] 已停止")
}
