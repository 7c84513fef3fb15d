package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/external"
	"github.com/richinex/inkwell/post"
	"github.com/richinex/inkwell/seo"
)

// SitemapPinger announces a changed sitemap.
type SitemapPinger interface {
	Ping(ctx context.Context, sitemapURL string) external.Result
}

// URLNotifier announces changed page URLs.
type URLNotifier interface {
	Notify(ctx context.Context, urls ...string) external.Result
}

// Artifacts are the outcomes of the derived-artifact steps after a store write.
type Artifacts struct {
	Sitemap  external.Result `json:"sitemap"`
	Ping     external.Result `json:"ping"`
	IndexNow external.Result `json:"indexnow"`
}

// Publisher regenerates the sitemap and notifies search engines. Every step
// is best effort: failures are reported, never returned as errors.
type Publisher struct {
	site        config.Profile
	sitemapFile string
	pinger      SitemapPinger
	indexNow    URLNotifier
	logger      *slog.Logger
	now         func() time.Time
}

// NewPublisher creates a publisher. A nil pinger or notifier skips that step.
func NewPublisher(site config.Profile, sitemapFile string, pinger SitemapPinger, indexNow URLNotifier, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		site:        site,
		sitemapFile: sitemapFile,
		pinger:      pinger,
		indexNow:    indexNow,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock sets the clock used for sitemap lastmod fallbacks.
func (p *Publisher) WithClock(now func() time.Time) *Publisher {
	p.now = now
	return p
}

// Sitemap rebuilds and rewrites the sitemap from posts.
func (p *Publisher) Sitemap(posts []post.Post) external.Result {
	data, err := seo.BuildSitemap(posts, p.site, p.now())
	if err != nil {
		return external.Failed(err)
	}
	if err := seo.WriteSitemap(p.sitemapFile, data); err != nil {
		return external.Failed(err)
	}
	return external.Succeeded(p.sitemapFile)
}

// Publish updates every derived artifact for a store snapshot that includes
// the newly stored post. The sitemap ping only follows a successful sitemap
// write; the IndexNow submission of the new post's URL does not depend on it.
func (p *Publisher) Publish(ctx context.Context, snapshot []post.Post, stored post.Post) Artifacts {
	var a Artifacts

	a.Sitemap = p.Sitemap(snapshot)
	p.log("sitemap", a.Sitemap, "entries", len(snapshot)+2)

	switch {
	case !a.Sitemap.Success():
		a.Ping = external.Skipped("sitemap not written")
	case p.pinger == nil:
		a.Ping = external.Skipped("no ping endpoint configured")
	default:
		a.Ping = p.pinger.Ping(ctx, p.site.SitemapURL())
	}
	p.log("sitemap ping", a.Ping)

	if p.indexNow == nil {
		a.IndexNow = external.Skipped("no IndexNow notifier configured")
	} else {
		a.IndexNow = p.indexNow.Notify(ctx, p.site.PostURL(stored.ID))
	}
	p.log("indexnow", a.IndexNow, "url", p.site.PostURL(stored.ID))

	return a
}

func (p *Publisher) log(step string, res external.Result, attrs ...any) {
	attrs = append([]any{"step", step}, attrs...)
	if res.Success() {
		p.logger.Info("artifact updated", append(attrs, "result", res.Output)...)
		return
	}
	p.logger.Warn("artifact step failed", append(attrs, "reason", res.Reason())...)
}
