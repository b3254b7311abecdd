// Package insight turns recent mood records into a short natural-language
// summary by asking a hosted generative model, falling back through an
// ordered list of candidate models.
package insight

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"moodflow/internal/logging"
	"moodflow/internal/mood"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Backend is one hosted model provider. Generate is a single round trip with
// no retries of its own.
type Backend interface {
	Generate(ctx context.Context, credential, model, prompt string) (string, error)
	ListModels(ctx context.Context, credential string) ([]string, error)
}

type Status string

const (
	StatusSucceeded    Status = "succeeded"
	StatusFailed       Status = "failed"
	StatusNoCredential Status = "no_credential"
)

const DefaultFailureMessage = "抱歉，AI 連線失敗。請稍後再試，或確認 API Key 權限。"

type Result struct {
	Status           Status
	Text             string
	Model            string
	Attempts         []Attempt
	DiagnosticModels []string
}

type Options struct {
	Candidates        []string
	Timeout           time.Duration
	DiagnosticTimeout time.Duration
	Language          string
	FailureMessage    string
}

type Client struct {
	backend Backend
	opts    Options
	log     *zap.Logger

	// at most one chain runs at a time; a second caller gets ErrInFlight
	sem *semaphore.Weighted

	mu    sync.Mutex
	state State
}

func New(backend Backend, opts Options, log *zap.Logger) (*Client, error) {
	if backend == nil {
		return nil, errors.New("insight: backend is required")
	}
	var candidates []string
	for _, m := range opts.Candidates {
		if m = strings.TrimSpace(m); m != "" {
			candidates = append(candidates, m)
		}
	}
	if len(candidates) == 0 {
		return nil, errors.New("insight: at least one candidate model is required")
	}
	opts.Candidates = candidates
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.DiagnosticTimeout <= 0 {
		opts.DiagnosticTimeout = 10 * time.Second
	}
	if opts.FailureMessage == "" {
		opts.FailureMessage = DefaultFailureMessage
	}

	return &Client{
		backend: backend,
		opts:    opts,
		log:     logging.OrNop(log),
		sem:     semaphore.NewWeighted(1),
	}, nil
}

func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Candidates returns the configured fallback order.
func (c *Client) Candidates() []string {
	return append([]string(nil), c.opts.Candidates...)
}

// Fetch runs the whole candidate chain for recent. Nothing is cached: every
// call starts from the first candidate.
func (c *Client) Fetch(ctx context.Context, credential string, recent []mood.Record) (Result, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return Result{Status: StatusNoCredential}, ErrNoCredential
	}
	if !c.sem.TryAcquire(1) {
		return Result{}, ErrInFlight
	}
	defer c.sem.Release(1)

	c.setState(InFlight)
	prompt := BuildPrompt(recent, c.opts.Language)
	ch := newChain(c.opts.Candidates)

	for {
		model, ok := ch.next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			ch.abort(err)
			break
		}
		text, elapsed, err := c.attempt(ctx, credential, model, prompt)
		if err != nil {
			c.log.Warn("insight attempt failed",
				zap.String("model", model),
				zap.Duration("elapsed", elapsed),
				zap.Error(err))
			ch.fail(err, elapsed)
			continue
		}
		c.log.Info("insight attempt succeeded", zap.String("model", model), zap.Duration("elapsed", elapsed))
		ch.succeed(text, elapsed)
	}

	c.setState(ch.state)

	if ch.state == Succeeded {
		return Result{
			Status:   StatusSucceeded,
			Text:     ch.text,
			Model:    ch.model,
			Attempts: ch.attempts,
		}, nil
	}

	res := Result{
		Status:   StatusFailed,
		Text:     c.opts.FailureMessage,
		Attempts: ch.attempts,
	}
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(ch.lastErr, ctxErr) {
		return res, ctxErr
	}

	exhausted := &ExhaustedError{Attempts: ch.attempts, LastErr: ch.lastErr}
	exhausted.DiagnosticModels, exhausted.DiagnosticErr = c.diagnose(ctx, credential)
	res.DiagnosticModels = exhausted.DiagnosticModels

	c.log.Error("all insight candidates failed",
		zap.Strings("candidates", c.opts.Candidates),
		zap.Error(ch.lastErr),
		zap.Strings("available_models", exhausted.DiagnosticModels),
		zap.NamedError("diagnostic_error", exhausted.DiagnosticErr))

	return res, exhausted
}

func (c *Client) attempt(ctx context.Context, credential, model, prompt string) (string, time.Duration, error) {
	actx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	start := time.Now()
	text, err := c.backend.Generate(actx, credential, model, prompt)
	elapsed := time.Since(start)
	if err != nil {
		return "", elapsed, err
	}
	if strings.TrimSpace(text) == "" {
		return "", elapsed, ErrPartialResponse
	}
	return text, elapsed, nil
}

// diagnose lists the models the credential can reach. Its failure is only
// reported, never substituted for the chain's error.
func (c *Client) diagnose(ctx context.Context, credential string) ([]string, error) {
	dctx, cancel := context.WithTimeout(ctx, c.opts.DiagnosticTimeout)
	defer cancel()

	models, err := c.backend.ListModels(dctx, credential)
	if err != nil {
		c.log.Warn("model listing failed", zap.Error(err))
		return nil, err
	}
	return models, nil
}
