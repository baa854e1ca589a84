package valkit

import (
	"context"
	"strconv"

	"github.com/cosmez/valkit-go/internal/args"
	"github.com/cosmez/valkit-go/internal/canonical"
	"github.com/cosmez/valkit-go/resp"
)

// StreamEntry is one canonicalized stream entry: its id and the field/value
// pairs in exactly the order the engine returned them.
type StreamEntry struct {
	ID     string
	Fields [][2]string
}

// XAdd appends an entry to a stream from a flat field/value list, returning
// the generated entry id. Pass "*" as id for server-side id generation.
func (c *Client) XAdd(ctx context.Context, key, id string, fieldValues ...string) (string, error) {
	body, err := args.KeyFieldValues([]byte(key), args.FromStrings(fieldValues...))
	if err != nil {
		return "", err
	}
	tokens := make([][]byte, 0, 1+len(body))
	tokens = append(tokens, body[0], []byte(id))
	tokens = append(tokens, body[1:]...)

	v, err := c.execute(ctx, "XADD", tokens...)
	if err != nil {
		return "", err
	}
	return v.Str()
}

// StreamEntryBytes is the binary variant of StreamEntry; field names and
// values are raw bytes.
type StreamEntryBytes struct {
	ID     string
	Fields [][2][]byte
}

// XRange returns the entries of a stream between two ids, in stream order.
func (c *Client) XRange(ctx context.Context, key, start, end string, count int64) ([]StreamEntry, error) {
	return c.xrange(ctx, "XRANGE", key, start, end, count)
}

// XRangeBytes is the binary variant of XRange; field names and values are
// returned byte-exact.
func (c *Client) XRangeBytes(ctx context.Context, key, start, end string, count int64) ([]StreamEntryBytes, error) {
	tokens := [][]byte{[]byte(key), []byte(start), []byte(end)}
	if count > 0 {
		tokens = append(tokens, []byte("COUNT"), []byte(strconv.FormatInt(count, 10)))
	}
	v, err := c.execute(ctx, "XRANGE", tokens...)
	if err != nil {
		return nil, err
	}

	ents := canonical.StreamEntries(v).Entries()
	out := make([]StreamEntryBytes, 0, len(ents))
	for _, e := range ents {
		entry := StreamEntryBytes{ID: e.Key.StringValue()}
		for _, p := range e.Val.Array() {
			pair := p.Array()
			f, _ := pair[0].Bytes()
			val, _ := pair[1].Bytes()
			entry.Fields = append(entry.Fields, [2][]byte{f, val})
		}
		out = append(out, entry)
	}
	return out, nil
}

// XRevRange returns the entries between two ids in reverse stream order.
// Note start must be the higher id.
func (c *Client) XRevRange(ctx context.Context, key, start, end string, count int64) ([]StreamEntry, error) {
	return c.xrange(ctx, "XREVRANGE", key, start, end, count)
}

func (c *Client) xrange(ctx context.Context, command, key, start, end string, count int64) ([]StreamEntry, error) {
	tokens := [][]byte{[]byte(key), []byte(start), []byte(end)}
	if count > 0 {
		tokens = append(tokens, []byte("COUNT"), []byte(strconv.FormatInt(count, 10)))
	}
	v, err := c.execute(ctx, command, tokens...)
	if err != nil {
		return nil, err
	}
	return decodeStreamEntries(v), nil
}

// decodeStreamEntries converts the canonical id→pairs mapping into the
// typed entry slice, preserving entry and pair order.
func decodeStreamEntries(v resp.Value) []StreamEntry {
	ents := canonical.StreamEntries(v).Entries()
	out := make([]StreamEntry, 0, len(ents))
	for _, e := range ents {
		entry := StreamEntry{ID: e.Key.StringValue()}
		for _, p := range e.Val.Array() {
			pair := p.Array()
			entry.Fields = append(entry.Fields, [2]string{
				pair[0].StringValue(),
				pair[1].StringValue(),
			})
		}
		out = append(out, entry)
	}
	return out
}

// XLen returns the number of entries in a stream.
func (c *Client) XLen(ctx context.Context, key string) (int64, error) {
	v, err := c.execute(ctx, "XLEN", []byte(key))
	if err != nil {
		return 0, err
	}
	return v.Int64()
}
