// Package app wires configuration to adapters and pipelines.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"ContentForge/internal/brand"
	"ContentForge/internal/config"
	"ContentForge/internal/domain"
	"ContentForge/internal/generator"
	"ContentForge/internal/infrastructure/github"
	"ContentForge/internal/infrastructure/llm"
	"ContentForge/internal/infrastructure/media"
	"ContentForge/internal/infrastructure/scheduler"
	"ContentForge/internal/infrastructure/storage"
	"ContentForge/internal/infrastructure/telegram"
	"ContentForge/internal/infrastructure/wordpress"
	"ContentForge/internal/logging"
	"ContentForge/internal/ports"
	"ContentForge/internal/scorer"
	"ContentForge/internal/state"
	"ContentForge/internal/usecase"
)

// Application owns the wired pipelines and shared adapters.
type Application struct {
	cfg        config.Config
	logger     *slog.Logger
	commit     *usecase.CommitPipeline
	weekly     *usecase.WeeklyPipeline
	poll       *usecase.PollPipeline
	watch      *usecase.WatchPipeline
	publishLog *storage.PostgresPublishLog
	driver     ports.Scheduler
}

// New constructs every adapter from config and assembles the pipelines.
// mode selects which credential set Validate enforces.
func New(cfg config.Config, mode string) (*Application, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	logger := logging.New(cfg.Logging.Level)

	completer := llm.NewClient(cfg.Anthropic.APIKey, cfg.Anthropic.Model,
		logger.With("component", "llm"))
	score := scorer.New(completer, logger.With("component", "scorer"))

	pool := brand.NewPool(rand.New(rand.NewSource(time.Now().UnixNano())))
	gen := generator.New(completer, pool, logger.With("component", "generator"))

	publisher := wordpress.NewClient(
		cfg.WordPress.APIURL, cfg.WordPress.User, cfg.WordPress.AppPassword,
		cfg.WordPress.SEOPlugin, cfg.WordPress.Status,
		logger.With("component", "wordpress"))

	shots := media.NewScreenshotCapturer(logger.With("component", "screenshots"))
	photos := media.NewUnsplashClient(cfg.Unsplash.AccessKey, cfg.Unsplash.ReferralTag,
		logger.With("component", "unsplash"))
	fetcher := media.NewImageFetcher(logger.With("component", "fetcher"))

	notifier := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID,
		logger.With("component", "telegram"))

	publishLog, err := storage.Open(cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open publish log: %w", err)
	}

	host := github.NewClient(cfg.GitHub.Token, logger.With("component", "github"))

	commit := usecase.NewCommitPipeline(usecase.CommitDeps{
		Scorer:          score,
		Generator:       gen,
		Screenshots:     shots,
		Photos:          photos,
		Publisher:       publisher,
		Notifier:        notifier,
		PublishLog:      publishLog,
		Logger:          logger.With("pipeline", "commit"),
		Threshold:       cfg.Pipeline.WorthinessThreshold,
		ScreenshotURLs:  cfg.Pipeline.ScreenshotURLs,
		StockPhotoCount: cfg.Pipeline.StockPhotoCount,
	})

	weekly := usecase.NewWeeklyPipeline(usecase.WeeklyDeps{
		Generator:       gen,
		Photos:          photos,
		Publisher:       publisher,
		Notifier:        notifier,
		PublishLog:      publishLog,
		Logger:          logger.With("pipeline", "weekly"),
		StockPhotoCount: cfg.Pipeline.StockPhotoCount,
	})

	poll := usecase.NewPollPipeline(usecase.PollDeps{
		Host:            host,
		Scorer:          score,
		Generator:       gen,
		Screenshots:     shots,
		Fetcher:         fetcher,
		Photos:          photos,
		Publisher:       publisher,
		Notifier:        notifier,
		PublishLog:      publishLog,
		States:          state.NewRepoStateStore(cfg.Pipeline.StateFile),
		Logger:          logger.With("pipeline", "poll"),
		Owner:           cfg.GitHub.Owner,
		SelfRepo:        cfg.GitHub.SelfRepo,
		Threshold:       cfg.Pipeline.WorthinessThreshold,
		StockPhotoCount: cfg.Pipeline.StockPhotoCount,
	})

	watch := usecase.NewWatchPipeline(usecase.WatchDeps{
		Host:   host,
		Commit: commit,
		ShaLog: state.LoadShaLog(cfg.Pipeline.ShaLogFile, cfg.Pipeline.MaxTrackedSHAs),
		Logger: logger.With("pipeline", "watch"),
		Repo:   cfg.GitHub.WatchRepo,
	})

	return &Application{
		cfg:        cfg,
		logger:     logger,
		commit:     commit,
		weekly:     weekly,
		poll:       poll,
		watch:      watch,
		publishLog: publishLog,
		driver:     scheduler.NewCronScheduler(cfg.Scheduler.Location()),
	}, nil
}

// RunCommit executes the commit pipeline for the env-provided commit.
func (a *Application) RunCommit(ctx context.Context) error {
	in, err := a.cfg.CommitInput()
	if err != nil {
		return err
	}
	return a.commit.Run(ctx, domain.CommitEvent{
		Message:     in.Message,
		Diff:        in.Diff,
		AuthorLogin: in.AuthorLogin,
	})
}

// RunWeekly executes the thought-leadership pipeline for today.
func (a *Application) RunWeekly(ctx context.Context) error {
	return a.weekly.Run(ctx, time.Now().In(a.cfg.Scheduler.Location()))
}

// RunPoll executes one full repository poll.
func (a *Application) RunPoll(ctx context.Context) error {
	return a.poll.Run(ctx)
}

// RunWatch executes one pass over the watched repository.
func (a *Application) RunWatch(ctx context.Context) error {
	return a.watch.Run(ctx)
}

// Serve schedules the weekly and poll pipelines on their cron expressions
// and blocks until the context is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	err := a.driver.Start(ctx, a.cfg.Scheduler.WeeklyCron, func(t time.Time) {
		if err := a.weekly.Run(ctx, t); err != nil {
			a.logger.Error("scheduled weekly run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule weekly pipeline: %w", err)
	}

	err = a.driver.Start(ctx, a.cfg.Scheduler.PollCron, func(time.Time) {
		if err := a.poll.Run(ctx); err != nil {
			a.logger.Error("scheduled poll run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule poll pipeline: %w", err)
	}

	a.logger.Info("serve mode started",
		"weeklyCron", a.cfg.Scheduler.WeeklyCron,
		"pollCron", a.cfg.Scheduler.PollCron,
		"timezone", a.cfg.Scheduler.Timezone)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return a.Close(stopCtx)
}

// Close stops the scheduler and releases shared resources.
func (a *Application) Close(ctx context.Context) error {
	if err := a.driver.Stop(ctx); err != nil {
		return err
	}
	if a.publishLog != nil {
		return a.publishLog.Close()
	}
	return nil
}
