package notify

import (
	"context"
	stderrors "errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/JonnyRank/bigdataball-data/internal/domain/notification"
	"github.com/JonnyRank/bigdataball-data/internal/platform/logging"
	crerr "github.com/cockroachdb/errors"
	shoutrrr "github.com/nicholas-fedor/shoutrrr"
	router "github.com/nicholas-fedor/shoutrrr/pkg/router"
	stypes "github.com/nicholas-fedor/shoutrrr/pkg/types"
	"go.uber.org/zap"
)

// Sender delivers messages to every configured shoutrrr service URL.
type Sender struct {
	router  *router.ServiceRouter
	targets int
	logger  *logging.Logger
}

var _ notification.Notifier = (*Sender)(nil)

func NewSender(urls []string, timeout time.Duration, logger *logging.Logger) (*Sender, error) {
	if logger == nil {
		logger = logging.Default()
	}
	urls = slices.DeleteFunc(slices.Clone(urls), func(u string) bool { return strings.TrimSpace(u) == "" })
	if len(urls) == 0 {
		return nil, crerr.New("at least one notification url is required")
	}

	sender, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		// Service URLs carry tokens; keep them out of the error text.
		return nil, crerr.Newf("invalid notification url: %s", redact(err.Error(), urls))
	}
	if timeout > 0 {
		sender.Timeout = timeout
	}
	sender.SetLogger(zap.NewStdLog(logger.Zap().Named("shoutrrr")))

	return &Sender{router: sender, targets: len(urls), logger: logger}, nil
}

func (s *Sender) Notify(ctx context.Context, msg notification.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	params := stypes.Params{}
	if msg.Subject != "" {
		params.SetTitle(msg.Subject)
	}

	var failed []error
	for i, err := range s.router.Send(msg.Body, &params) {
		if err != nil {
			failed = append(failed, fmt.Errorf("notification target %d: %w", i+1, err))
		}
	}
	if len(failed) > 0 {
		s.logger.WarnContext(ctx, "notification delivery failed", "failed", len(failed), "targets", s.targets)
		return stderrors.Join(failed...)
	}
	return nil
}

// Nop discards messages; it stands in when notifications are disabled.
type Nop struct{}

func (Nop) Notify(context.Context, notification.Message) error { return nil }

func redact(text string, urls []string) string {
	for _, u := range urls {
		text = strings.ReplaceAll(text, u, "[redacted]")
	}
	return text
}
