package valkit

import (
	"context"

	"github.com/cosmez/valkit-go/internal/args"
	"github.com/cosmez/valkit-go/internal/canonical"
	"github.com/cosmez/valkit-go/resp"
)

// CustomCommand executes an arbitrary command and returns the raw value
// after the legacy single-node unwrap: a one-entry node mapping with a
// scalar value collapses to that value. The unwrap is shape-driven, not
// semantic — a genuinely mapping-shaped single-node payload stays wrapped,
// but a scalar payload from a one-key deployment is indistinguishable from
// a collapsed node map. Callers that need the node labels should use an
// engine-level routing API instead.
func (c *Client) CustomCommand(ctx context.Context, name string, arguments ...string) (resp.Value, error) {
	return c.CustomCommandBytes(ctx, name, args.FromStrings(arguments...)...)
}

// CustomCommandBytes is the binary-argument variant of CustomCommand.
func (c *Client) CustomCommandBytes(ctx context.Context, name string, arguments ...[]byte) (resp.Value, error) {
	v, err := c.execute(ctx, name, arguments...)
	if err != nil {
		return resp.Nil(), err
	}
	return canonical.CustomResult(v), nil
}
