// Command execution for CLI commands.
//
// Information Hiding:
// - Settings, logger and store wiring hidden
// - Pipeline assembly from settings hidden
// - Report formatting hidden

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/external"
	"github.com/richinex/inkwell/images"
	"github.com/richinex/inkwell/internal/failure"
	ijson "github.com/richinex/inkwell/internal/json"
	"github.com/richinex/inkwell/keyword"
	"github.com/richinex/inkwell/llm"
	"github.com/richinex/inkwell/mailer"
	"github.com/richinex/inkwell/pipeline"
	"github.com/richinex/inkwell/post"
	"github.com/richinex/inkwell/seo"
	"github.com/richinex/inkwell/storage"
)

// Options holds CLI execution options.
type Options struct {
	JSON  bool   // print run reports as JSON
	Color string // auto, always or never
	Quiet bool
}

// runtime is everything a command needs, built once per invocation.
type runtime struct {
	settings config.Settings
	logger   *slog.Logger
	printer  *Printer
	http     *external.Client
	store    storage.Store
	sent     storage.SentTracker
	close    func() error
	opts     Options
}

func newRuntime(opts Options) (*runtime, error) {
	useColors, err := ResolveColors(opts.Color)
	if err != nil {
		return nil, failure.Wrap(err, failure.CategoryConfig, "invalid flag")
	}

	settings, err := config.New()
	if err != nil {
		return nil, failure.Wrap(err, failure.CategoryConfig, "invalid configuration")
	}

	logger, err := NewLogger(settings.Log, os.Stderr)
	if err != nil {
		return nil, failure.Wrap(err, failure.CategoryConfig, "invalid configuration")
	}

	store, sent, closeFn, err := storage.Open(settings.Store, logger)
	if err != nil {
		return nil, failure.Wrap(err, failure.CategoryStorage, "failed to open content store")
	}

	return &runtime{
		settings: settings,
		logger:   logger,
		printer:  NewPrinter(useColors, opts.Quiet),
		http:     external.NewClient(settings.HTTP.Timeout),
		store:    store,
		sent:     sent,
		close:    closeFn,
		opts:     opts,
	}, nil
}

func (r *runtime) Close() {
	if err := r.close(); err != nil {
		r.logger.Warn("failed to close store", "error", err)
	}
}

func (r *runtime) publisher() *pipeline.Publisher {
	s := r.settings
	return pipeline.NewPublisher(s.Profile, s.Store.Sitemap,
		seo.NewPinger(r.http),
		seo.NewIndexNow(r.http, s.Keys.IndexNow, s.Profile),
		r.logger)
}

func (r *runtime) generator() (*pipeline.Generator, error) {
	if err := r.settings.RequireLLMKey(); err != nil {
		return nil, failure.Wrap(err, failure.CategoryConfig, "generation unavailable")
	}
	provider, err := llm.FromConfig(r.settings.LLM)
	if err != nil {
		return nil, failure.Wrap(err, failure.CategoryConfig, "generation unavailable")
	}
	r.logger.Debug("generation provider", "provider", provider.Name(), "model", provider.Model())

	return pipeline.NewGenerator(r.settings, pipeline.GeneratorDeps{
		Store:     r.store,
		LLM:       llm.NewClient(provider, r.settings.LLM.Timeout).WithLogger(r.logger),
		Images:    images.FromSettings(r.settings, r.http, r.logger),
		Publisher: r.publisher(),
		Logger:    r.logger,
	}), nil
}

func (r *runtime) newsletter() (*pipeline.Newsletter, error) {
	if r.settings.Keys.Brevo == "" {
		return nil, failure.New(failure.CategoryConfig, "BREVO_API_KEY environment variable not set")
	}
	return pipeline.NewNewsletter(r.settings, pipeline.NewsletterDeps{
		Store:  r.store,
		Sent:   r.sent,
		Sender: mailer.NewBrevo(r.http, r.settings.Keys.Brevo),
		Logger: r.logger,
	}), nil
}

// Generate runs one generation job.
func Generate(ctx context.Context, opts Options) error {
	r, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	gen, err := r.generator()
	if err != nil {
		return err
	}
	report, err := gen.Run(ctx)
	if err != nil {
		return err
	}
	return r.printGenerate(report)
}

// Newsletter runs one newsletter job.
func Newsletter(ctx context.Context, opts Options) error {
	r, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	job, err := r.newsletter()
	if err != nil {
		return err
	}
	report, err := job.Run(ctx)
	if err != nil {
		return err
	}
	return r.printNewsletter(report)
}

// Sitemap rewrites the sitemap from the current store. With ping set the
// search-engine ping follows a successful write.
func Sitemap(ctx context.Context, opts Options, ping bool) error {
	r, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	posts := r.store.Load(ctx)
	res := r.publisher().Sitemap(posts)
	if !res.Success() {
		return failure.Wrap(res.Err, failure.CategoryStorage, "failed to write sitemap")
	}
	r.printer.Success("Sitemap written to %s (%d posts)", res.Output, len(posts))

	if ping {
		pr := seo.NewPinger(r.http).Ping(ctx, r.settings.Profile.SitemapURL())
		r.printResult("Sitemap ping", pr)
	}
	return nil
}

type keywordReport struct {
	Next   string           `json:"next"`
	Policy string           `json:"policy"`
	Queue  []keyword.Status `json:"queue"`
}

// Keywords prints queue usage and the keyword the next run would pick.
func Keywords(ctx context.Context, opts Options) error {
	r, err := newRuntime(opts)
	if err != nil {
		return err
	}
	defer r.Close()

	history := r.store.Load(ctx)
	queue := storage.LoadQueue(r.settings.Store.Keywords, r.settings.Profile.Keywords, r.logger)
	report := keywordReport{
		Next:   nextKeyword(history, queue, r.settings.Pipeline.KeywordFallback),
		Policy: r.settings.Pipeline.KeywordFallback,
		Queue:  keyword.Usage(history, queue),
	}
	if r.opts.JSON {
		return r.printJSON(report)
	}

	r.printer.Header(fmt.Sprintf("Keyword queue (%d posts published)", len(history)))
	unused := 0
	for _, st := range report.Queue {
		if st.Used {
			r.printer.Print("  %s %s", r.printer.Dim("[used]"), st.Keyword)
			continue
		}
		unused++
		r.printer.Print("  [    ] %s", st.Keyword)
	}
	if unused == 0 && len(queue) > 0 {
		r.printer.Warning("Every queued keyword is used; fallback policy %q applies", report.Policy)
	}
	r.printer.Info("Next keyword: %s", report.Next)
	return nil
}

// nextKeyword previews the next pick. Under the random fallback an exhausted
// queue has no single answer, so the policy name stands in for it.
func nextKeyword(history []post.Post, queue []string, policy string) string {
	unused := func(st keyword.Status) bool { return !st.Used }
	if policy == config.FallbackRandom && len(queue) > 0 &&
		!slices.ContainsFunc(keyword.Usage(history, queue), unused) {
		return "(" + config.FallbackRandom + ")"
	}
	return keyword.Select(history, queue, config.FallbackFirst, nil)
}

func (r *runtime) printGenerate(report pipeline.Report) error {
	if r.opts.JSON {
		return r.printJSON(report)
	}
	p := report.Post
	r.printer.Success("Published #%d: %s", p.ID, p.Title)
	r.printer.Print("  keyword:  %s", report.Keyword)
	r.printer.Print("  template: %s", report.Template)
	r.printer.Print("  image:    %s (%s)", p.Image, report.ImageSource)
	r.printer.Print("  url:      %s", r.settings.Profile.PostURL(p.ID))
	if len(report.MissingLinks) > 0 {
		r.printer.Warning("Missing required links: %v", report.MissingLinks)
	}
	r.printResult("Sitemap", report.Sitemap)
	r.printResult("Sitemap ping", report.Ping)
	r.printResult("IndexNow", report.IndexNow)
	return nil
}

func (r *runtime) printNewsletter(report pipeline.NewsletterReport) error {
	if r.opts.JSON {
		return r.printJSON(report)
	}
	if report.Skipped != "" {
		r.printer.Info("Newsletter skipped for #%d: %s", report.Post.ID, report.Skipped)
		return nil
	}
	r.printer.Success("Newsletter for #%d sent to %d subscribers", report.Post.ID, report.Recipients)
	return nil
}

func (r *runtime) printResult(step string, res external.Result) {
	if res.Success() {
		r.printer.Success("%s: %s", step, res.Output)
		return
	}
	r.printer.Warning("%s: %s", step, res.Reason())
}

func (r *runtime) printJSON(v any) error {
	data, err := ijson.MarshalIndent(v)
	if err != nil {
		return failure.Wrap(err, failure.CategoryInternal, "failed to encode report")
	}
	r.printer.JSON(data)
	return nil
}
