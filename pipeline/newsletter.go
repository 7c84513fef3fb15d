package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/richinex/inkwell/config"
	"github.com/richinex/inkwell/external"
	"github.com/richinex/inkwell/internal/failure"
	"github.com/richinex/inkwell/mailer"
	"github.com/richinex/inkwell/post"
	"github.com/richinex/inkwell/storage"
)

// NewsletterDeps are the collaborators of a newsletter run.
type NewsletterDeps struct {
	Store  storage.Store
	Sent   storage.SentTracker
	Sender mailer.Sender
	Logger *slog.Logger
}

// NewsletterReport describes one newsletter run.
type NewsletterReport struct {
	RunID      string          `json:"run_id"`
	Post       post.Post       `json:"post"`
	Recipients int             `json:"recipients"`
	Skipped    string          `json:"skipped,omitempty"`
	Send       external.Result `json:"send"`
}

// Newsletter mails the latest post to every subscriber, at most once per post.
type Newsletter struct {
	store           storage.Store
	sent            storage.SentTracker
	sender          mailer.Sender
	logger          *slog.Logger
	site            config.Profile
	subscribersFile string
}

// NewNewsletter creates a newsletter job.
func NewNewsletter(s config.Settings, deps NewsletterDeps) *Newsletter {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Newsletter{
		store:           deps.Store,
		sent:            deps.Sent,
		sender:          deps.Sender,
		logger:          logger,
		site:            s.Profile,
		subscribersFile: s.Store.Subscribers,
	}
}

// Run sends the latest post unless it was already sent. The post is marked
// only after the email provider accepted the message. An already-sent post
// and an empty subscriber list end the run successfully without sending.
func (n *Newsletter) Run(ctx context.Context) (NewsletterReport, error) {
	report := NewsletterReport{RunID: uuid.NewString()}
	logger := n.logger.With("run.id", report.RunID, "job", "newsletter")

	latest, ok := post.Latest(n.store.Load(ctx))
	if !ok {
		return report, failure.New(failure.CategoryValidation, "no posts in content store")
	}
	report.Post = latest
	logger = logger.With("id", latest.ID)

	if n.sent.IsMarked(ctx, latest.ID) {
		report.Skipped = "already sent"
		logger.Info("latest post already sent")
		return report, nil
	}

	subscribers, err := storage.LoadSubscribers(n.subscribersFile)
	if err != nil {
		logger.Warn("subscriber list unreadable, treating as empty", "error", err)
	}
	if len(subscribers) == 0 {
		report.Skipped = "no subscribers"
		logger.Warn("no subscribers, nothing sent")
		return report, nil
	}
	report.Recipients = len(subscribers)

	subject, html, err := mailer.RenderPost(latest, n.site)
	if err != nil {
		return report, failure.Wrap(err, failure.CategoryInternal, "failed to render email")
	}

	report.Send = n.sender.Send(ctx, mailer.Message{
		Sender: mailer.Address{
			Name:  n.site.Newsletter.SenderName,
			Email: n.site.Newsletter.SenderEmail,
		},
		To:      subscribers,
		Subject: subject,
		HTML:    html,
	})
	if !report.Send.Success() {
		return report, failure.Wrap(report.Send.Err, failure.CategoryTransport, "newsletter send failed")
	}
	logger.Info("newsletter sent", "recipients", len(subscribers), "subject", subject)

	if err := n.sent.Mark(ctx, latest.ID); err != nil {
		return report, failure.Wrap(err, failure.CategoryStorage, "newsletter sent but not recorded")
	}
	return report, nil
}
