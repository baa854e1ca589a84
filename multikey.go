package valkit

import (
	"context"
	"strconv"

	"github.com/cosmez/valkit-go/internal/args"
	"github.com/cosmez/valkit-go/resp"
)

// PopDirection selects which end of a list LMPOP-family commands pop from.
type PopDirection string

const (
	PopLeft  PopDirection = "LEFT"
	PopRight PopDirection = "RIGHT"
)

// ZDiff returns the members of the first sorted set that appear in none of
// the others.
func (c *Client) ZDiff(ctx context.Context, keys ...string) ([]string, error) {
	built, err := args.NumkeysPrefixed(args.FromStrings(keys...))
	if err != nil {
		return nil, err
	}
	v, err := c.execute(ctx, "ZDIFF", built...)
	if err != nil {
		return nil, err
	}
	return resp.ToStringSlice(v), nil
}

// ZDiffBytes is the binary-key variant of ZDiff.
func (c *Client) ZDiffBytes(ctx context.Context, keys ...[]byte) ([][]byte, error) {
	built, err := args.NumkeysPrefixed(keys)
	if err != nil {
		return nil, err
	}
	v, err := c.execute(ctx, "ZDIFF", built...)
	if err != nil {
		return nil, err
	}
	return resp.ToBytesSlice(v), nil
}

// ZDiffWithScores returns the difference together with member scores.
func (c *Client) ZDiffWithScores(ctx context.Context, keys ...string) (map[string]float64, error) {
	built, err := args.NumkeysPrefixed(args.FromStrings(keys...), "WITHSCORES")
	if err != nil {
		return nil, err
	}
	v, err := c.execute(ctx, "ZDIFF", built...)
	if err != nil {
		return nil, err
	}
	return resp.ToFloatMap(v), nil
}

// ZDiffStore computes the difference and stores it under destination,
// returning the stored cardinality.
func (c *Client) ZDiffStore(ctx context.Context, destination string, keys ...string) (int64, error) {
	built, err := args.DestinationNumkeys([]byte(destination), args.FromStrings(keys...))
	if err != nil {
		return 0, err
	}
	v, err := c.execute(ctx, "ZDIFFSTORE", built...)
	if err != nil {
		return 0, err
	}
	return v.Int64()
}

// ZInterCard returns the cardinality of the intersection of the sorted sets.
// A positive limit stops counting early.
func (c *Client) ZInterCard(ctx context.Context, limit int64, keys ...string) (int64, error) {
	var trailing []string
	if limit > 0 {
		trailing = []string{"LIMIT", strconv.FormatInt(limit, 10)}
	}
	built, err := args.NumkeysPrefixed(args.FromStrings(keys...), trailing...)
	if err != nil {
		return 0, err
	}
	v, err := c.execute(ctx, "ZINTERCARD", built...)
	if err != nil {
		return 0, err
	}
	return v.Int64()
}

// SInterCard returns the cardinality of the intersection of the sets.
func (c *Client) SInterCard(ctx context.Context, limit int64, keys ...string) (int64, error) {
	var trailing []string
	if limit > 0 {
		trailing = []string{"LIMIT", strconv.FormatInt(limit, 10)}
	}
	built, err := args.NumkeysPrefixed(args.FromStrings(keys...), trailing...)
	if err != nil {
		return 0, err
	}
	v, err := c.execute(ctx, "SINTERCARD", built...)
	if err != nil {
		return 0, err
	}
	return v.Int64()
}

// SMIsMember reports, per member, whether it belongs to the set. The reply
// is a count-flag sequence.
func (c *Client) SMIsMember(ctx context.Context, key string, members ...string) ([]bool, error) {
	tokens := append([][]byte{[]byte(key)}, args.FromStrings(members...)...)
	v, err := c.execute(ctx, "SMISMEMBER", tokens...)
	if err != nil {
		return nil, err
	}
	return resp.ToBoolSlice(v), nil
}

// popReply converts the [key, [values...]] (or pre-shaped mapping) reply of
// the LMPOP family into a single-entry key→values map. A nil reply means no
// key had elements and yields a nil map, not an error.
func (c *Client) popReply(command string, v resp.Value) map[string][]string {
	if v.IsNil() {
		return nil
	}
	if v.Kind() == resp.KindMap {
		if v.Len() == 0 {
			return nil
		}
		out := make(map[string][]string, v.Len())
		for _, e := range v.Entries() {
			out[e.Key.StringValue()] = resp.ToStringSlice(e.Val)
		}
		return out
	}
	if v.Kind() != resp.KindArray || v.Len() != 2 {
		c.warnShape(command, v)
		return nil
	}
	elems := v.Array()
	return map[string][]string{
		elems[0].StringValue(): resp.ToStringSlice(elems[1]),
	}
}

// LMPop pops up to count elements from the first non-empty list among keys.
// The result maps the popped key to its elements; nil when every list was
// empty.
func (c *Client) LMPop(ctx context.Context, direction PopDirection, count int64, keys ...string) (map[string][]string, error) {
	trailing := []string{string(direction)}
	if count > 0 {
		trailing = append(trailing, "COUNT", strconv.FormatInt(count, 10))
	}
	built, err := args.NumkeysPrefixed(args.FromStrings(keys...), trailing...)
	if err != nil {
		return nil, err
	}
	v, err := c.execute(ctx, "LMPOP", built...)
	if err != nil {
		return nil, err
	}
	return c.popReply("LMPOP", v), nil
}

// BLMPop is the blocking variant of LMPop. A zero timeout blocks until an
// element arrives; blocking happens inside the engine.
func (c *Client) BLMPop(ctx context.Context, timeout float64, direction PopDirection, count int64, keys ...string) (map[string][]string, error) {
	trailing := []string{string(direction)}
	if count > 0 {
		trailing = append(trailing, "COUNT", strconv.FormatInt(count, 10))
	}
	built, err := args.TimeoutNumkeys(timeout, args.FromStrings(keys...), trailing...)
	if err != nil {
		return nil, err
	}
	v, err := c.execute(ctx, "BLMPOP", built...)
	if err != nil {
		return nil, err
	}
	return c.popReply("BLMPOP", v), nil
}

// ZMPop pops up to count scored members from the first non-empty sorted set
// among keys, mapping the popped key to member→score pairs.
func (c *Client) ZMPop(ctx context.Context, direction ScorePopDirection, count int64, keys ...string) (map[string]map[string]float64, error) {
	trailing := []string{string(direction)}
	if count > 0 {
		trailing = append(trailing, "COUNT", strconv.FormatInt(count, 10))
	}
	built, err := args.NumkeysPrefixed(args.FromStrings(keys...), trailing...)
	if err != nil {
		return nil, err
	}
	v, err := c.execute(ctx, "ZMPOP", built...)
	if err != nil {
		return nil, err
	}
	return c.scoredPopReply("ZMPOP", v), nil
}

// BZMPop is the blocking variant of ZMPop.
func (c *Client) BZMPop(ctx context.Context, timeout float64, direction ScorePopDirection, count int64, keys ...string) (map[string]map[string]float64, error) {
	trailing := []string{string(direction)}
	if count > 0 {
		trailing = append(trailing, "COUNT", strconv.FormatInt(count, 10))
	}
	built, err := args.TimeoutNumkeys(timeout, args.FromStrings(keys...), trailing...)
	if err != nil {
		return nil, err
	}
	v, err := c.execute(ctx, "BZMPOP", built...)
	if err != nil {
		return nil, err
	}
	return c.scoredPopReply("BZMPOP", v), nil
}

// ScorePopDirection selects which score end ZMPOP-family commands pop from.
type ScorePopDirection string

const (
	PopMin ScorePopDirection = "MIN"
	PopMax ScorePopDirection = "MAX"
)

func (c *Client) scoredPopReply(command string, v resp.Value) map[string]map[string]float64 {
	if v.IsNil() {
		return nil
	}
	if v.Kind() == resp.KindMap {
		if v.Len() == 0 {
			return nil
		}
		out := make(map[string]map[string]float64, v.Len())
		for _, e := range v.Entries() {
			out[e.Key.StringValue()] = resp.ToFloatMap(e.Val)
		}
		return out
	}
	if v.Kind() != resp.KindArray || v.Len() < 2 {
		c.warnShape(command, v)
		return nil
	}
	elems := v.Array()
	return map[string]map[string]float64{
		elems[0].StringValue(): resp.ToFloatMap(elems[1]),
	}
}
