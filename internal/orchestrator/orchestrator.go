// Package orchestrator drives bounded-concurrency batch stream validation
// runs, tracks their progress as task records, and persists results.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/commis/streamdir/internal/category"
	"github.com/commis/streamdir/internal/channel"
	"github.com/commis/streamdir/internal/log"
	"github.com/commis/streamdir/internal/task"
	"github.com/commis/streamdir/internal/validator"
)

// Config tunes one orchestrator instance.
type Config struct {
	IOIntensityFactor  int // worker-pool sizing multiplier, see workerCount
	TSSegmentTestCount int
	ConnectTimeout     time.Duration
	ProbeTimeout       time.Duration
}

// Orchestrator runs batch checks against a URL template or a live registry,
// recording progress on a task.Registry entry as it goes.
type Orchestrator struct {
	cfg        Config
	tasks      *task.Registry
	categories *category.Manager
	registry   *channel.Registry
	metrics    *Metrics
}

// New returns an Orchestrator wired to shared task/category/channel state.
func New(cfg Config, tasks *task.Registry, categories *category.Manager, registry *channel.Registry) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		tasks:      tasks,
		categories: categories,
		registry:   registry,
		metrics:    NewMetrics(),
	}
}

// workerCount bounds requestedThreads to the process's I/O-bound capacity:
// cpu_count * IOIntensityFactor + 1.
func (o *Orchestrator) workerCount(requestedThreads int) int {
	factor := o.cfg.IOIntensityFactor
	if factor <= 0 {
		factor = 4
	}
	ceiling := runtime.NumCPU()*factor + 1
	if requestedThreads <= 0 || requestedThreads > ceiling {
		return ceiling
	}
	return requestedThreads
}

// CheckBatch validates size numbered URLs built from urlTemplate (containing
// a "{i}" placeholder for the index, start..start+size-1), filing every
// success into the channel registry. Returns the task id.
func (o *Orchestrator) CheckBatch(ctx context.Context, urlTemplate, category_ string, start, size, threads int, checkManifest bool) string {
	t := o.tasks.Create("batch-check", fmt.Sprintf("validate %d URLs from template", size), urlTemplate, size)
	logger := log.WithComponent("orchestrator")
	_ = o.tasks.Update(t.ID, task.StatusRunning, 0, 0, nil, "")

	workers := o.workerCount(threads)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var processed, success counter
	for i := start; i < start+size; i++ {
		i := i
		g.Go(func() error {
			url := strings.ReplaceAll(urlTemplate, "{i}", strconv.Itoa(i))
			result := validator.Validate(gctx, url, validator.Options{
				CheckManifest:      checkManifest,
				SegmentTestCount:   o.cfg.TSSegmentTestCount,
				ConnectTimeout:     o.cfg.ConnectTimeout,
				ProbeTimeout:       o.cfg.ProbeTimeout,
				ExtractChannelName: true,
			})
			o.metrics.ObserveProbe(result.Valid)

			if result.Valid {
				name := result.ChannelName
				if name == "" {
					name = fmt.Sprintf("频道-%d", i)
				}
				endpoint := channel.Intern(url)
				endpoint.SetSpeed(result.SpeedKBs)
				o.registry.Add(category_, name, url, strconv.Itoa(i), "")
				success.inc()
			}

			p := processed.inc()
			_ = o.tasks.Update(t.ID, "", p, success.get(), nil, "")
			return nil
		})
	}
	_ = g.Wait()

	_ = o.tasks.Update(t.ID, task.StatusCompleted, processed.get(), success.get(), nil, "")
	o.metrics.ObserveTaskStatus(string(task.StatusCompleted))
	logger.Info().Str("task_id", t.ID).Int("success", success.get()).Int("total", size).Msg("batch check complete")
	return t.ID
}

// UpdateLive re-validates every endpoint currently in the channel registry,
// pruning ones that fail, skipping ignored categories, and persisting the
// result to outputPath (TXT) and its .m3u sibling.
func (o *Orchestrator) UpdateLive(ctx context.Context, threads int, checkManifest bool, outputPath string) string {
	total := o.registry.TotalCount()
	t := o.tasks.Create("update-live", "re-validate live registry", "", total)
	logger := log.WithComponent("orchestrator")
	_ = o.tasks.Update(t.ID, task.StatusRunning, 0, 0, nil, "")

	type job struct {
		ch *channel.Channel
		ep *channel.URLEndpoint
	}
	var jobs []job
	o.registry.Each(func(_ string, ch *channel.Channel) {
		for _, ep := range ch.URLs() {
			jobs = append(jobs, job{ch: ch, ep: ep})
		}
	})

	actual := len(jobs)
	if actual != total {
		logger.Warn().Int("expected", total).Int("actual", actual).Msg("task total differs from actual job count")
		_ = o.tasks.Mutate(t.ID, func(tk *task.Task) { tk.Total = actual })
		total = actual
	}

	workers := o.workerCount(threads)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var processed, success counter
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			result := validator.Validate(gctx, j.ep.URL(), validator.Options{
				CheckManifest:      checkManifest,
				SegmentTestCount:   o.cfg.TSSegmentTestCount,
				ConnectTimeout:     o.cfg.ConnectTimeout,
				ProbeTimeout:       o.cfg.ProbeTimeout,
			})
			o.metrics.ObserveProbe(result.Valid)
			if result.Valid {
				j.ep.SetSpeed(result.SpeedKBs)
				success.inc()
			} else {
				j.ch.RemoveURL(j.ep.URL())
			}
			p := processed.inc()
			_ = o.tasks.Update(t.ID, "", p, success.get(), nil, "")
			return nil
		})
	}
	_ = g.Wait()

	_ = o.tasks.Update(t.ID, task.StatusCompleted, processed.get(), success.get(), nil, "")
	o.metrics.ObserveTaskStatus(string(task.StatusCompleted))
	if outputPath != "" {
		if err := o.persist(outputPath); err != nil {
			logger.Error().Err(err).Msg("failed to persist channel data")
		}
	}
	return t.ID
}

func (o *Orchestrator) persist(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("orchestrator: mkdir: %w", err)
	}
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	txt := fmt.Sprintf("# 频道数据导出时间: %s\n%s\n", timestamp, o.registry.SerializeTXT())
	if err := os.WriteFile(path, []byte(txt), 0o644); err != nil {
		return fmt.Errorf("orchestrator: write txt: %w", err)
	}

	m3uPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".m3u"
	m3u := fmt.Sprintf("# 频道数据导出时间: %s\n%s\n", timestamp, o.registry.SerializeM3U())
	if err := os.WriteFile(m3uPath, []byte(m3u), 0o644); err != nil {
		return fmt.Errorf("orchestrator: write m3u: %w", err)
	}
	return nil
}
