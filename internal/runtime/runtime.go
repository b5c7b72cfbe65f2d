// Package runtime drives the webhook handshake from profile collection to query submission.
package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/ramaditya/webtask/internal/helpers"
	"github.com/ramaditya/webtask/internal/input"
	"github.com/ramaditya/webtask/internal/models"
	"github.com/ramaditya/webtask/internal/query"
	"github.com/ramaditya/webtask/internal/validation"
)

// State is a step of the handshake.
type State string

const (
	StateStart            State = "start"
	StateCollectedInput   State = "collected-input"
	StateWebhookRequested State = "webhook-requested"
	StateWebhookReceived  State = "webhook-received"
	StateWebhookFailed    State = "webhook-failed"
	StateQuerySubmitted   State = "query-submitted"
	StateDone             State = "done"
)

// HiringClient is the remote side of the handshake.
type HiringClient interface {
	GenerateWebhook(ctx context.Context, req models.WebhookRequest) (*models.WebhookResponse, error)
	SubmitQuery(ctx context.Context, webhook, token string, req models.FinalQueryRequest) error
}

type Option func(*Runtime)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// WithOutput sets where progress messages are printed.
func WithOutput(out io.Writer) Option {
	return func(r *Runtime) {
		r.out = out
	}
}

type Runtime struct {
	provider input.Provider
	client   HiringClient
	logger   *slog.Logger
	out      io.Writer
	state    State
}

// NewRuntime creates a new runtime instance
func NewRuntime(provider input.Provider, client HiringClient, opts ...Option) *Runtime {
	_inst := &Runtime{provider: provider, client: client, state: StateStart}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.out == nil {
		_inst.out = io.Discard
	}
	return _inst
}

// State returns the last state reached.
func (r *Runtime) State() State {
	return r.state
}

// Run performs the handshake once. An absent or incomplete webhook response is reported
// on the output and ends the run without error.
func (r *Runtime) Run(ctx context.Context) error {
	profile, err := r.provider.Profile()
	if err != nil {
		return errors.Wrap(err, "failed to collect profile")
	}
	r.transition(StateCollectedInput)

	r.printf("\nGenerating webhook...\n")
	r.transition(StateWebhookRequested)
	resp, err := r.client.GenerateWebhook(ctx, profile)
	if err != nil {
		return err
	}
	if resp == nil {
		r.logger.Warn("empty webhook response")
		return r.failWebhook()
	}
	if err = validation.Struct(resp); err != nil {
		r.logger.Warn("incomplete webhook response", slog.Any("error", err))
		return r.failWebhook()
	}
	r.transition(StateWebhookReceived)
	r.printf("Webhook received: %s\n", resp.Webhook)
	r.printf("Access Token received.\n\n")

	finalQuery, err := query.Select(profile.RegNo)
	if err != nil {
		return err
	}
	r.logger.Debug("query selected", slog.String("regNo", profile.RegNo), slog.String("query", helpers.Truncate(finalQuery, 40)))

	r.printf("Submitting SQL Query...\n\n")
	if err = r.client.SubmitQuery(ctx, resp.Webhook, resp.AccessToken, models.FinalQueryRequest{FinalQuery: finalQuery}); err != nil {
		return err
	}
	r.transition(StateQuerySubmitted)
	r.printf("SQL query submitted successfully!\n")
	r.transition(StateDone)
	return nil
}

func (r *Runtime) failWebhook() error {
	r.transition(StateWebhookFailed)
	r.printf("Failed to generate webhook. Exiting...\n")
	r.transition(StateDone)
	return nil
}

func (r *Runtime) transition(to State) {
	r.logger.Debug("state transition", slog.String("from", string(r.state)), slog.String("to", string(to)))
	r.state = to
}

func (r *Runtime) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}
