// Package pipeline runs the two scheduled jobs: generating one post and
// mailing the latest post to subscribers.
//
// Each run is a fixed sequence of steps. Steps before the store write are
// fatal and classified with a failure category; steps after it only
// update derived artifacts and are reported, never returned.
//
// Information Hiding:
// - Step ordering and the fatal/soft boundary hidden
// - Run identifiers and structured run logging hidden
// - Collaborators reached through narrow interfaces

package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/images"
	"github.com/richinex/inkwell/internal/failure"
	"github.com/richinex/inkwell/keyword"
	"github.com/richinex/inkwell/post"
	"github.com/richinex/inkwell/prompt"
	"github.com/richinex/inkwell/storage"
)

// Completer turns a prompt into generated text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ImageResolver finds a header image for a keyword. It never fails.
type ImageResolver interface {
	ResolveDetailed(ctx context.Context, keyword string) images.Resolution
}

// GeneratorDeps are the collaborators of a generation run.
type GeneratorDeps struct {
	Store     storage.Store
	LLM       Completer
	Images    ImageResolver
	Publisher *Publisher
	Logger    *slog.Logger
}

// Report describes one generation run.
type Report struct {
	RunID        string    `json:"run_id"`
	Keyword      string    `json:"keyword"`
	Template     string    `json:"template"`
	Post         post.Post `json:"post"`
	ImageSource  string    `json:"image_source"`
	MissingLinks []string  `json:"missing_links,omitempty"`
	Artifacts
}

// Generator produces and stores one post per run.
// Not safe for concurrent use; the scheduler runs jobs in singleton mode.
type Generator struct {
	store     storage.Store
	llm       Completer
	images    ImageResolver
	publisher *Publisher
	prompts   *prompt.Builder
	logger    *slog.Logger

	site      config.Profile
	queueFile string
	fallback  string
	rng       *rand.Rand
	now       func() time.Time
}

// NewGenerator creates a generator from settings and collaborators.
func NewGenerator(s config.Settings, deps GeneratorDeps) *Generator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		store:     deps.Store,
		llm:       deps.LLM,
		images:    deps.Images,
		publisher: deps.Publisher,
		prompts:   prompt.NewBuilder(s.Profile, s.Pipeline.PromptVariety, s.Pipeline.RecentTitles),
		logger:    logger,
		site:      s.Profile,
		queueFile: s.Store.Keywords,
		fallback:  s.Pipeline.KeywordFallback,
		now:       time.Now,
	}
}

// WithRand sets the random source for keyword and template choice.
func (g *Generator) WithRand(rng *rand.Rand) *Generator {
	g.rng = rng
	g.prompts.WithRand(rng)
	return g
}

// WithClock sets the clock used for the post date.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Run generates one post, stores it and refreshes derived artifacts.
// On error nothing has been written to the store.
func (g *Generator) Run(ctx context.Context) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	logger := g.logger.With("run.id", report.RunID, "job", "generate")
	logger.Info("generation started")

	history := g.store.Load(ctx)
	queue := storage.LoadQueue(g.queueFile, g.site.Keywords, logger)
	report.Keyword = keyword.Select(history, queue, g.fallback, g.rng)
	logger.Info("keyword selected", "keyword", report.Keyword, "history", len(history), "queue", len(queue))

	req, err := g.prompts.Build(report.Keyword, post.Titles(history))
	if err != nil {
		return report, failure.Wrap(err, failure.CategoryInternal, "failed to build prompt")
	}
	report.Template = req.Template

	raw, err := g.llm.Complete(ctx, req.System, req.User)
	if err != nil {
		return report, failure.Wrap(err, failure.CategoryTransport, "generation failed")
	}

	draft, err := post.Assemble(prompt.Parse(raw), post.Details{
		Keyword: report.Keyword,
		Author:  g.site.Author,
		Now:     g.now(),
	})
	if err != nil {
		if errors.Is(err, post.ErrMissingField) {
			logger.Debug("unparsable response", "response", raw)
		}
		return report, failure.Wrap(err, failure.CategoryValidation, "generated response rejected")
	}

	image := g.images.ResolveDetailed(ctx, report.Keyword)
	draft.Image = image.URL
	report.ImageSource = image.Source

	missing, err := post.MissingLinks(draft.Content, g.site.BacklinkURLs())
	if err != nil {
		logger.Warn("backlink audit skipped", "error", err)
	} else if len(missing) > 0 {
		logger.Warn("post is missing required links", "missing", missing)
	}
	report.MissingLinks = missing

	stored, err := g.store.Append(ctx, draft)
	if err != nil {
		return report, failure.Wrap(err, failure.CategoryStorage, "failed to store post")
	}
	report.Post = stored
	logger.Info("post stored", "id", stored.ID, "title", stored.Title, "template", report.Template)

	if g.publisher != nil {
		report.Artifacts = g.publisher.Publish(ctx, g.store.Load(ctx), stored)
	}

	logger.Info("generation finished", "id", stored.ID)
	return report, nil
}
