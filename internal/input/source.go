package input

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/ramaditya/webtask/internal/helpers"
	"github.com/ramaditya/webtask/internal/models"
	"github.com/ramaditya/webtask/internal/validation"
)

// Supported profile sources.
const (
	SourceConsole = "console"
	SourceConfig  = "config"
	SourceSSM     = "ssm"
)

// Sources lists every supported profile source.
var Sources = []string{SourceConsole, SourceConfig, SourceSSM}

// SecretGetter fetches a parameter value by key.
type SecretGetter interface {
	GetSecret(key string, encrypted bool) (*string, error)
}

// Provider yields the candidate profile.
type Provider interface {
	Profile() (models.WebhookRequest, error)
}

// Profile implements Provider for the console collector.
func (c *Collector) Profile() (models.WebhookRequest, error) {
	return c.Collect()
}

// Static is a profile known up front, e.g. from configuration.
type Static models.WebhookRequest

// Profile returns the static profile once it passes validation.
func (s Static) Profile() (models.WebhookRequest, error) {
	req := models.WebhookRequest(s)
	if err := validation.Struct(&req); err != nil {
		return req, errors.Wrap(err, "incomplete configured profile")
	}
	return req, nil
}

// SSM reads a JSON encoded profile from a parameter store.
type SSM struct {
	Getter SecretGetter
	Key    string
	Logger *slog.Logger
}

// Profile fetches, decodes and validates the profile stored under Key.
func (s *SSM) Profile() (models.WebhookRequest, error) {
	var req models.WebhookRequest
	if s.Key == "" {
		return req, errors.New("missing SSM key for profile")
	}
	logger := s.Logger
	if logger == nil {
		logger = helpers.NewNoopLogger()
	}
	logger.Debug("loading profile from SSM...", slog.String("key", s.Key))

	value, err := s.Getter.GetSecret(s.Key, true)
	if err != nil {
		return req, errors.Wrap(err, "failed to fetch profile")
	}
	if err = json.Unmarshal([]byte(helpers.String(value)), &req); err != nil {
		return req, errors.Wrapf(err, "failed to decode profile stored in %s", s.Key)
	}
	if err = validation.Struct(&req); err != nil {
		return req, errors.Wrapf(err, "incomplete profile stored in %s", s.Key)
	}
	return req, nil
}

// Options carries what NewProvider needs for every source.
type Options struct {
	In     io.Reader
	Out    io.Writer
	Static models.WebhookRequest
	SSMKey string
	// NewGetter is only called for the ssm source.
	NewGetter func() (SecretGetter, error)
	Logger    *slog.Logger
}

// NewProvider returns the Provider for source.
func NewProvider(source string, opts Options) (Provider, error) {
	switch source {
	case SourceConsole, "":
		return NewCollector(opts.In, opts.Out), nil
	case SourceConfig:
		return Static(opts.Static), nil
	case SourceSSM:
		if opts.NewGetter == nil {
			return nil, errors.New("no SSM client available")
		}
		getter, err := opts.NewGetter()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create SSM client")
		}
		return &SSM{Getter: getter, Key: opts.SSMKey, Logger: opts.Logger}, nil
	default:
		return nil, errors.Errorf("invalid profile source: %s (supported: %v)", source, Sources)
	}
}
