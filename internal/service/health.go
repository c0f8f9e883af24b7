package service

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
)

// HealthCheck 外部相依的連線檢查（MongoDB / Redis）
type HealthCheck func(ctx context.Context) error

type HealthService struct {
	live  atomic.Bool
	ready atomic.Bool

	mu     sync.RWMutex
	checks map[string]HealthCheck
}

func NewHealthService() *HealthService {
	s := &HealthService{checks: map[string]HealthCheck{}}
	s.live.Store(true)
	s.ready.Store(false) // 啟動完成後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) AddCheck(name string, check HealthCheck) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checks[name] = check
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// Check 依名稱排序逐一檢查，回傳每個相依的狀態；全部正常時 ok 為 true
func (s *HealthService) Check(ctx context.Context) (statuses map[string]string, ok bool) {
	s.mu.RLock()
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	checks := make(map[string]HealthCheck, len(s.checks))
	for name, check := range s.checks {
		checks[name] = check
	}
	s.mu.RUnlock()
	sort.Strings(names)

	ok = true
	statuses = make(map[string]string, len(names))
	for _, name := range names {
		if err := checks[name](ctx); err != nil {
			statuses[name] = "down: " + err.Error()
			ok = false
			continue
		}
		statuses[name] = "up"
	}
	return statuses, ok
}
