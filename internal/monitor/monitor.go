// Package monitor периодически снимает загрузку хоста и публикует ее
// в реестре метрик рядом с симулированными значениями /status.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/25x8/sre-stack/internal/logger"
	"github.com/25x8/sre-stack/internal/metrics"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"go.uber.org/zap"
)

// Sample - один снимок загрузки хоста, доли от 0 до 1
type Sample struct {
	CPU    float64
	Memory float64
}

// Sampler снимает загрузку хоста
type Sampler interface {
	Sample(ctx context.Context) (Sample, error)
}

// HostSampler читает загрузку через gopsutil
type HostSampler struct{}

func (HostSampler) Sample(ctx context.Context) (Sample, error) {
	// interval 0 - загрузка CPU с момента предыдущего вызова
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return Sample{}, fmt.Errorf("cpu percent: %w", err)
	}
	if len(percents) == 0 {
		return Sample{}, fmt.Errorf("cpu percent: empty result")
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("virtual memory: %w", err)
	}

	return Sample{
		CPU:    percents[0] / 100,
		Memory: vm.UsedPercent / 100,
	}, nil
}

// Monitor публикует загрузку хоста в gauge-метриках
type Monitor struct {
	interval time.Duration
	sampler  Sampler
	registry *metrics.Registry
	wg       sync.WaitGroup
}

// New - конструктор для Monitor. Неположительный interval отключает сбор.
func New(interval time.Duration, reg *metrics.Registry, sampler Sampler) *Monitor {
	if sampler == nil {
		sampler = HostSampler{}
	}
	return &Monitor{
		interval: interval,
		sampler:  sampler,
		registry: reg,
	}
}

// Run запускает цикл сбора в фоне до отмены ctx.
func (m *Monitor) Run(ctx context.Context) {
	if m.interval <= 0 {
		return
	}

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.collect(ctx)

		for {
			select {
			case <-ctx.Done():
				logger.Log.Debug("host monitor stopped")
				return
			case <-ticker.C:
				m.collect(ctx)
			}
		}
	}()
}

// Wait блокируется до завершения фонового цикла
func (m *Monitor) Wait() {
	m.wg.Wait()
}

func (m *Monitor) collect(ctx context.Context) {
	s, err := m.sampler.Sample(ctx)
	if err != nil {
		logger.Log.Warn("failed to sample host load", zap.Error(err))
		return
	}

	if err := m.registry.SetGauge(metrics.HostCPUUsage, s.CPU); err != nil {
		logger.Log.Warn("failed to set gauge", zap.String("metric", metrics.HostCPUUsage), zap.Error(err))
	}
	if err := m.registry.SetGauge(metrics.HostMemoryUsage, s.Memory); err != nil {
		logger.Log.Warn("failed to set gauge", zap.String("metric", metrics.HostMemoryUsage), zap.Error(err))
	}

	logger.Log.Debug("host load",
		zap.Float64("cpu", s.CPU),
		zap.Float64("memory", s.Memory),
	)
}
