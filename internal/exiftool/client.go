package exiftool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"golang.org/x/text/encoding"

	"panosort/internal/logging"
	"panosort/internal/textutil"
)

// ErrExtractorFailed marks failures to obtain metadata for a file.
var ErrExtractorFailed = errors.New("metadata extractor failed")

// Extractor turns a file path into the tool's textual metadata.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Executor abstracts command execution for testability. It returns the raw
// standard output of the process.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithEncoding overrides the charset used to decode tool output.
func WithEncoding(enc encoding.Encoding) Option {
	return func(c *Client) {
		if enc != nil {
			c.encoding = enc
		}
	}
}

// WithLogger sets the logger used for per-invocation diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logging.NewComponentLogger(logger, "exiftool")
	}
}

// Client wraps exiftool CLI interactions.
type Client struct {
	binary   string
	args     []string
	timeout  time.Duration
	encoding encoding.Encoding
	exec     Executor
	logger   *slog.Logger
}

// New constructs a client for binary with the fixed argument list args. The
// default decoding charset is ISO-8859-1.
func New(binary string, args []string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("exiftool binary required")
	}
	enc, err := textutil.LookupEncoding("ISO-8859-1")
	if err != nil {
		return nil, err
	}
	client := &Client{
		binary:   binary,
		args:     append([]string(nil), args...),
		encoding: enc,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.exec == nil {
		client.exec = commandExecutor{logger: client.logger}
	}
	return client, nil
}

// Binary returns the configured executable path.
func (c *Client) Binary() string {
	return c.binary
}

// Extract runs the tool against path and returns its decoded stdout.
func (c *Client) Extract(ctx context.Context, path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrExtractorFailed)
	}

	runCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(c.args)+1)
	args = append(args, c.args...)
	args = append(args, path)

	start := time.Now()
	raw, err := c.exec.Run(runCtx, c.binary, args)
	c.logger.Debug("extractor finished",
		logging.String("file", path),
		logging.Duration("elapsed", time.Since(start)),
		logging.Int("bytes", len(raw)))
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %w", ErrExtractorFailed, c.binary, path, err)
	}
	text, err := textutil.Decode(c.encoding, raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrExtractorFailed, path, err)
	}
	return text, nil
}

// commandExecutor runs the tool as a child process. A non-zero exit is not an
// error: whatever the tool printed is still returned for classification.
// Launch failures and context cancellation are errors.
type commandExecutor struct {
	logger *slog.Logger
}

func (e commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err == nil {
		return stdout.Bytes(), nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("%w: %w", ctxErr, err)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if e.logger != nil {
			e.logger.Debug("extractor exited non-zero",
				logging.String("binary", binary),
				logging.Int("exit_code", exitErr.ExitCode()),
				logging.String("stderr", strings.TrimSpace(stderr.String())))
		}
		return stdout.Bytes(), nil
	}
	if detail := strings.TrimSpace(stderr.String()); detail != "" {
		return nil, fmt.Errorf("%w: %s", err, detail)
	}
	return nil, err
}
