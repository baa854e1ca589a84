package valkit

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/cosmez/valkit-go/internal/compress"
	"github.com/cosmez/valkit-go/internal/logging"
	"github.com/cosmez/valkit-go/resp"
)

// Client is the typed command surface. It is stateless apart from its
// configuration; all methods are safe for concurrent use as long as the
// underlying engine is.
type Client struct {
	engine     Engine
	logger     hclog.Logger
	compressor *compress.Compressor
}

// Option configures a Client.
type Option func(*Client) error

// WithLogger installs a logger for shape-mismatch warnings. Without one the
// client stays silent.
func WithLogger(l hclog.Logger) Option {
	return func(c *Client) error {
		c.logger = l
		return nil
	}
}

// WithCompression enables transparent value compression on SET/GET. Values
// shorter than minSize bytes are stored raw; reads always decompress framed
// payloads regardless of this option, so compression can be toggled without
// migrating stored data.
func WithCompression(backend string, minSize int) Option {
	return func(c *Client) error {
		comp, err := compress.NewCompressor(backend, minSize)
		if err != nil {
			return err
		}
		c.compressor = comp
		return nil
	}
}

// NewClient wraps an execution engine in the typed facade.
func NewClient(engine Engine, opts ...Option) (*Client, error) {
	if engine == nil {
		return nil, fmt.Errorf("valkit: engine is required")
	}
	c := &Client{
		engine: engine,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// execute dispatches one command through the engine.
func (c *Client) execute(ctx context.Context, name string, args ...[]byte) (resp.Value, error) {
	v, err := c.engine.Execute(ctx, name, args)
	if err != nil {
		return resp.Nil(), err
	}
	return v, nil
}

// warnShape records a forgiving fallback. These are warnings, not errors:
// the caller already received the documented default shape.
func (c *Client) warnShape(command string, got resp.Value) {
	c.logger.Warn("unexpected response shape, using fallback",
		"command", command, "kind", got.Kind().String())
}
