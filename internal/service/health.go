package service

import (
	"runtime"
	"sync/atomic"
	"time"

	"soundgate/config"
)

type RuntimeInfo struct {
	Env       string        `json:"env"`
	Name      string        `json:"name"`
	Version   string        `json:"version"`
	GoVersion string        `json:"go_version"`
	StartAt   time.Time     `json:"start_at"`
	Uptime    time.Duration `json:"uptime"`
}

type HealthService struct {
	live  atomic.Bool
	ready atomic.Bool
	info  RuntimeInfo
}

func NewHealthService(conf *config.Configuration) *HealthService {
	s := &HealthService{
		info: RuntimeInfo{
			Env:       conf.App.Env,
			Name:      conf.App.Name,
			Version:   conf.App.Version,
			GoVersion: runtime.Version(),
			StartAt:   time.Now(),
		},
	}
	s.live.Store(true)
	s.ready.Store(false) // HTTP server 啟動後再打開
	return s
}

func (s *HealthService) SetReady(v bool) {
	s.ready.Store(v)
}

func (s *HealthService) IsLive() bool {
	return s.live.Load()
}

func (s *HealthService) IsReady() bool {
	return s.ready.Load()
}

// Info 版本/環境快照（含 uptime）
func (s *HealthService) Info() RuntimeInfo {
	info := s.info
	info.Uptime = time.Since(info.StartAt)
	return info
}
