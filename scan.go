package valkit

import (
	"context"
	"iter"
	"strconv"

	"github.com/cosmez/valkit-go/internal/canonical"
	"github.com/cosmez/valkit-go/resp"
)

// ScanOptions narrows a cursor-paged iteration.
type ScanOptions struct {
	// Match filters keys by glob pattern.
	Match string
	// Count hints how many keys the server should examine per page.
	Count int64
	// Type restricts results to one value type (SCAN only).
	Type string
}

func (o ScanOptions) tokens() [][]byte {
	var out [][]byte
	if o.Match != "" {
		out = append(out, []byte("MATCH"), []byte(o.Match))
	}
	if o.Count > 0 {
		out = append(out, []byte("COUNT"), []byte(strconv.FormatInt(o.Count, 10)))
	}
	if o.Type != "" {
		out = append(out, []byte("TYPE"), []byte(o.Type))
	}
	return out
}

// Scan fetches one page of the keyspace. The returned cursor feeds the next
// call; iteration is complete when it comes back as "0". A malformed reply
// yields the original cursor and no keys, so a scan loop always terminates.
func (c *Client) Scan(ctx context.Context, cursor string, opts ScanOptions) (string, []string, error) {
	nextCursor, keys, err := c.scanPage(ctx, "SCAN", nil, cursor, opts)
	if err != nil {
		return cursor, nil, err
	}
	return nextCursor.StringValue(), resp.ToStringSlice(keys), nil
}

// ScanBytes is the binary variant of Scan; keys come back as raw bytes.
func (c *Client) ScanBytes(ctx context.Context, cursor string, opts ScanOptions) (string, [][]byte, error) {
	nextCursor, keys, err := c.scanPage(ctx, "SCAN", nil, cursor, opts)
	if err != nil {
		return cursor, nil, err
	}
	return nextCursor.StringValue(), resp.ToBytesSlice(keys), nil
}

// SScan fetches one page of a set's members.
func (c *Client) SScan(ctx context.Context, key, cursor string, opts ScanOptions) (string, []string, error) {
	nextCursor, members, err := c.scanPage(ctx, "SSCAN", []byte(key), cursor, opts)
	if err != nil {
		return cursor, nil, err
	}
	return nextCursor.StringValue(), resp.ToStringSlice(members), nil
}

// HScan fetches one page of a hash's fields as field/value pairs.
func (c *Client) HScan(ctx context.Context, key, cursor string, opts ScanOptions) (string, map[string]string, error) {
	nextCursor, fields, err := c.scanPage(ctx, "HSCAN", []byte(key), cursor, opts)
	if err != nil {
		return cursor, nil, err
	}
	return nextCursor.StringValue(), resp.ToStringMap(fields), nil
}

func (c *Client) scanPage(ctx context.Context, command string, key []byte, cursor string, opts ScanOptions) (resp.Value, resp.Value, error) {
	tokens := make([][]byte, 0, 8)
	if key != nil {
		tokens = append(tokens, key)
	}
	tokens = append(tokens, []byte(cursor))
	tokens = append(tokens, opts.tokens()...)

	v, err := c.execute(ctx, command, tokens...)
	if err != nil {
		return resp.Nil(), resp.Nil(), err
	}
	nextCursor, keys, ok := canonical.ScanPage(v, resp.Text(cursor))
	if !ok {
		c.warnShape(command, v)
	}
	return nextCursor, keys, nil
}

// IterKeys walks the whole keyspace page by page. An engine failure ends the
// iteration; inspect it afterwards through the returned error of the last
// pair. The consumer may stop at any time by breaking out of the range loop.
func (c *Client) IterKeys(ctx context.Context, opts ScanOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		cursor := "0"
		for {
			next, keys, err := c.Scan(ctx, cursor, opts)
			if err != nil {
				yield("", err)
				return
			}
			for _, k := range keys {
				if !yield(k, nil) {
					return
				}
			}
			// A stable cursor with no keys means the fallback fired; stop
			// rather than spin.
			if next == "0" || (next == cursor && len(keys) == 0) {
				return
			}
			cursor = next
		}
	}
}
