package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"

	"github.com/richinex/inkwell/internal/failure"
)

// Job is one scheduled pipeline run.
type Job struct {
	Name string
	Cron string // five-field crontab line; empty disables the job
	Run  func(ctx context.Context) error
}

// Scheduler runs jobs on cron schedules. A job never overlaps itself: a
// tick that arrives while the previous run is still going is dropped.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
	ctx       context.Context
}

// NewScheduler registers jobs. Jobs with an empty cron line are skipped.
func NewScheduler(ctx context.Context, logger *slog.Logger, jobs ...Job) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	sched := &Scheduler{scheduler: s, logger: logger, ctx: ctx}

	for _, job := range jobs {
		if job.Cron == "" {
			logger.Info("job disabled", "job", job.Name)
			continue
		}
		_, err := s.NewJob(
			gocron.CronJob(job.Cron, false),
			gocron.NewTask(sched.execute, job),
			gocron.WithName(job.Name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			_ = s.Shutdown()
			return nil, fmt.Errorf("failed to schedule %s job %q: %w", job.Name, job.Cron, err)
		}
	}
	return sched, nil
}

// Jobs returns the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	jobs := s.scheduler.Jobs()
	names := make([]string, len(jobs))
	for i, j := range jobs {
		names[i] = j.Name()
	}
	return names
}

// Start begins firing jobs.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", "jobs", s.Jobs())
	s.scheduler.Start()
}

// Stop waits for running jobs and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	s.logger.Info("stopping scheduler")
	return s.scheduler.Shutdown()
}

// execute is called by gocron. A failed run is logged; the next tick runs again.
func (s *Scheduler) execute(job Job) {
	s.logger.Info("scheduled run started", "job", job.Name)
	if err := job.Run(s.ctx); err != nil {
		s.logger.Error("scheduled run failed",
			"job", job.Name,
			"category", failure.CategoryOf(err),
			"error", err)
		return
	}
	s.logger.Info("scheduled run finished", "job", job.Name)
}

// Schedule runs generate and newsletter on their cron lines until SIGINT or
// SIGTERM.
func Schedule(ctx context.Context, opts Options) error {
	r, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	// Fail fast on missing credentials rather than at the first tick.
	gen, err := r.generator()
	if err != nil {
		return err
	}
	newsCron := r.settings.Schedule.Newsletter
	news, err := r.newsletter()
	if err != nil {
		r.logger.Warn("newsletter job disabled", "error", err)
		newsCron = ""
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched, err := NewScheduler(ctx, r.logger,
		Job{Name: "generate", Cron: r.settings.Schedule.Generate, Run: func(ctx context.Context) error {
			report, err := gen.Run(ctx)
			if err == nil {
				r.printer.Success("Published #%d: %s", report.Post.ID, report.Post.Title)
			}
			return err
		}},
		Job{Name: "newsletter", Cron: newsCron, Run: func(ctx context.Context) error {
			_, err := news.Run(ctx)
			return err
		}},
	)
	if err != nil {
		return failure.Wrap(err, failure.CategoryConfig, "invalid schedule")
	}

	sched.Start()
	r.printer.Info("Scheduler running jobs %v. Press Ctrl+C to stop.", sched.Jobs())

	<-ctx.Done()
	return sched.Stop()
}
