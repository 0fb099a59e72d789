package runner

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"userseed/internal/models"
	"userseed/internal/output"
)

// Registrar performs a single registration call. ok=false means the server
// declined to register the user; err is reserved for faults.
type Registrar interface {
	Register(ctx context.Context, username, password string) (token string, ok bool, err error)
}

type FailureMode string

const (
	// Abort stops the run at the first fault and persists nothing.
	Abort FailureMode = "abort"
	// Skip records the fault against the candidate and keeps going.
	Skip FailureMode = "skip"
)

var ErrInvalidFailureMode = errors.New("invalid failure mode")

func ParseFailureMode(s string) (FailureMode, error) {
	switch FailureMode(s) {
	case Abort, Skip:
		return FailureMode(s), nil
	case "":
		return Abort, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFailureMode, s)
}

type Options struct {
	Count          int
	UsernamePrefix string
	Password       string
	OnError        FailureMode
	LogEvery       int
}

type Runner struct {
	registrar Registrar
	opts      Options
	logger    *zap.Logger
}

func New(registrar Registrar, opts Options, logger *zap.Logger) (*Runner, error) {
	if registrar == nil {
		return nil, errors.New("registrar is required")
	}
	if opts.Count < 0 {
		return nil, fmt.Errorf("user count must not be negative, got %d", opts.Count)
	}
	mode, err := ParseFailureMode(string(opts.OnError))
	if err != nil {
		return nil, err
	}
	opts.OnError = mode
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{registrar: registrar, opts: opts, logger: logger}, nil
}

// Candidates returns n credentials named prefix+index, all sharing password.
func Candidates(n int, prefix, password string) []models.Candidate {
	out := make([]models.Candidate, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.Candidate{
			Index:    i,
			Username: prefix + strconv.Itoa(i),
			Password: password,
		})
	}
	return out
}

// Run registers every candidate in index order. In Abort mode the first
// fault ends the run and the partial result set is discarded.
func (r *Runner) Run(ctx context.Context) (*models.ResultSet, error) {
	results := &models.ResultSet{}

	for _, c := range Candidates(r.opts.Count, r.opts.UsernamePrefix, r.opts.Password) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results.Attempted++

		token, ok, err := r.registrar.Register(ctx, c.Username, c.Password)
		switch {
		case err != nil:
			if r.opts.OnError == Abort || ctx.Err() != nil {
				r.logger.Error("registration faulted, aborting run",
					zap.Int("index", c.Index), zap.String("username", c.Username), zap.Error(err))
				return nil, fmt.Errorf("register %s: %w", c.Username, err)
			}
			r.logger.Warn("registration faulted",
				zap.Int("index", c.Index), zap.String("username", c.Username), zap.Error(err))
			results.Fail(c.Username, err)
		case !ok:
			r.logger.Debug("registration not created", zap.String("username", c.Username))
			results.Rejected++
		default:
			results.Add(models.Registration{Username: c.Username, Token: token})
		}

		if r.opts.LogEvery > 0 && results.Attempted%r.opts.LogEvery == 0 {
			r.logger.Info("progress",
				zap.Int("attempted", results.Attempted),
				zap.Int("registered", results.Len()),
				zap.Int("rejected", results.Rejected),
				zap.Int("failed", len(results.Failures)))
		}
	}

	r.logger.Info("run complete",
		zap.Int("attempted", results.Attempted),
		zap.Int("registered", results.Len()),
		zap.Int("rejected", results.Rejected),
		zap.Int("failed", len(results.Failures)))
	return results, nil
}

// RunAndWrite runs and then writes the results file. Nothing is written when
// the run returns an error. failuresPath is optional.
func (r *Runner) RunAndWrite(ctx context.Context, outputPath, failuresPath string) (*models.ResultSet, error) {
	results, err := r.Run(ctx)
	if err != nil {
		return nil, err
	}

	if err := output.WriteResults(outputPath, results.Registrations); err != nil {
		return results, err
	}
	r.logger.Info("results written", zap.String("path", outputPath), zap.Int("lines", results.Len()))

	if failuresPath != "" && len(results.Failures) > 0 {
		if err := output.WriteFailures(failuresPath, results.Failures); err != nil {
			return results, err
		}
		r.logger.Info("failures written", zap.String("path", failuresPath), zap.Int("lines", len(results.Failures)))
	}
	return results, nil
}
