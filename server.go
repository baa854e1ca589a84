package valkit

import (
	"context"

	"github.com/cosmez/valkit-go/internal/args"
	"github.com/cosmez/valkit-go/internal/canonical"
	"github.com/cosmez/valkit-go/resp"
)

// Info returns the server information block as legacy flat text, whatever
// shape the engine delivered it in: plain text, a verbatim wrapper, a
// structured section map, or a single-node mapping.
func (c *Client) Info(ctx context.Context, sections ...string) (string, error) {
	v, err := c.execute(ctx, "INFO", args.FromStrings(sections...)...)
	if err != nil {
		return "", err
	}
	return canonical.FormatInfo(v), nil
}

// InfoPerNode returns the information block of every reporting node. A
// single-node engine that answers with a bare value yields a map with one
// empty-named entry.
func (c *Client) InfoPerNode(ctx context.Context, sections ...string) (map[string]string, error) {
	v, err := c.execute(ctx, "INFO", args.FromStrings(sections...)...)
	if err != nil {
		return nil, err
	}
	if v.Kind() != resp.KindMap {
		return map[string]string{"": canonical.FormatInfo(v)}, nil
	}
	return canonical.InfoPerNode(v), nil
}

// ClientList returns the connected-clients listing. A one-entry node
// mapping from a single-node deployment unwraps to the bare text.
func (c *Client) ClientList(ctx context.Context) (string, error) {
	v, err := c.execute(ctx, "CLIENT LIST")
	if err != nil {
		return "", err
	}
	if unwrapped, ok := canonical.CollapseSingleNode(v); ok {
		return unwrapped.StringValue(), nil
	}
	s, ok := canonical.NodeText(v)
	if !ok {
		c.warnShape("CLIENT LIST", v)
	}
	return s, nil
}

// ClientInfo returns this connection's client record, preferring a node
// whose record carries library identification when several nodes answer.
func (c *Client) ClientInfo(ctx context.Context) (string, error) {
	v, err := c.execute(ctx, "CLIENT INFO")
	if err != nil {
		return "", err
	}
	s, ok := canonical.ClientInfoText(v)
	if !ok {
		c.warnShape("CLIENT INFO", v)
	}
	return s, nil
}

// ClusterNodes returns the cluster topology listing, merged and
// deduplicated across reporting nodes with transient entries filtered out.
func (c *Client) ClusterNodes(ctx context.Context) (string, error) {
	v, err := c.execute(ctx, "CLUSTER NODES")
	if err != nil {
		return "", err
	}
	return canonical.ClusterNodes(v), nil
}
