package images

import (
	"context"
	"log/slog"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/external"
)

// Step is one source in the fallback chain with its context terms.
type Step struct {
	Source  Source
	Context []string
}

// Attempt records the outcome of one step.
type Attempt struct {
	Source string
	Query  string
	Result external.Result
}

// Resolution is the chosen image and how it was found.
type Resolution struct {
	URL      string
	Source   string // "default" when every step failed
	Attempts []Attempt
}

// Resolver walks the fallback chain and ends at a fixed default image.
type Resolver struct {
	steps    []Step
	fallback string
	logger   *slog.Logger
}

// NewResolver creates a resolver over steps, in order.
func NewResolver(fallback string, logger *slog.Logger, steps ...Step) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{steps: steps, fallback: fallback, logger: logger}
}

// FromSettings builds the Unsplash then Pexels chain from loaded settings.
func FromSettings(s config.Settings, client *external.Client, logger *slog.Logger) *Resolver {
	img := s.Profile.Images
	return NewResolver(img.Default, logger,
		Step{Source: NewUnsplash(client, s.Keys.Unsplash), Context: img.PrimaryTerms},
		Step{Source: NewPexels(client, s.Keys.Pexels), Context: img.SecondaryTerms},
	)
}

// Resolve returns an image URL for keyword. It never fails: when no source
// yields a result the default image is returned.
func (r *Resolver) Resolve(ctx context.Context, keyword string) string {
	return r.ResolveDetailed(ctx, keyword).URL
}

// ResolveDetailed is Resolve with the per-source outcomes.
func (r *Resolver) ResolveDetailed(ctx context.Context, keyword string) Resolution {
	var res Resolution
	for _, step := range r.steps {
		if step.Source == nil {
			continue
		}
		query := Query(keyword, step.Context)
		url, result := step.Source.Search(ctx, query)
		res.Attempts = append(res.Attempts, Attempt{Source: step.Source.Name(), Query: query, Result: result})

		if result.Success() && url != "" {
			r.logger.Info("image found", "source", step.Source.Name(), "query", query)
			res.URL, res.Source = url, step.Source.Name()
			return res
		}
		r.logger.Warn("image source failed", "source", step.Source.Name(), "query", query, "reason", result.Reason())
	}

	r.logger.Info("using default image")
	res.URL, res.Source = r.fallback, "default"
	return res
}
