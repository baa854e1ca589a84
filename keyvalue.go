package valkit

import (
	"context"
	"strconv"
	"time"

	"github.com/cosmez/valkit-go/internal/args"
	"github.com/cosmez/valkit-go/internal/compress"
	"github.com/cosmez/valkit-go/resp"
)

// Set stores a text value under a key.
func (c *Client) Set(ctx context.Context, key, value string) error {
	return c.SetBytes(ctx, []byte(key), []byte(value))
}

// SetBytes stores a binary value under a binary key. The value is written
// byte-for-byte; when compression is enabled and pays off, a self-describing
// compressed frame is stored instead.
func (c *Client) SetBytes(ctx context.Context, key, value []byte) error {
	if c.compressor != nil {
		framed, err := c.compressor.Compress(value)
		if err != nil {
			return err
		}
		value = framed
	}
	v, err := c.execute(ctx, "SET", key, value)
	if err != nil {
		return err
	}
	_, err = v.Str()
	return err
}

// Get returns the text value of a key. A missing key yields resp.ErrNil.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	b, err := c.GetBytes(ctx, []byte(key))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetBytes returns the raw value of a binary key. Compressed frames are
// decompressed transparently; anything else comes back byte-identical to
// what was stored.
func (c *Client) GetBytes(ctx context.Context, key []byte) ([]byte, error) {
	v, err := c.execute(ctx, "GET", key)
	if err != nil {
		return nil, err
	}
	b, err := v.Bytes()
	if err != nil {
		return nil, err
	}
	return compress.TryDecompress(b), nil
}

// Del removes keys and returns how many existed.
func (c *Client) Del(ctx context.Context, keys ...string) (int64, error) {
	v, err := c.execute(ctx, "DEL", args.FromStrings(keys...)...)
	if err != nil {
		return 0, err
	}
	return v.Int64()
}

// Exists returns how many of the given keys exist.
func (c *Client) Exists(ctx context.Context, keys ...string) (int64, error) {
	v, err := c.execute(ctx, "EXISTS", args.FromStrings(keys...)...)
	if err != nil {
		return 0, err
	}
	return v.Int64()
}

// SetNX stores the value only when the key does not exist yet, reporting
// whether the write happened. The reply is a count flag: exactly 1 or 0.
func (c *Client) SetNX(ctx context.Context, key, value string) (bool, error) {
	v, err := c.execute(ctx, "SETNX", []byte(key), []byte(value))
	if err != nil {
		return false, err
	}
	return v.CountBool()
}

// Expire sets a time-to-live on a key, reporting whether the key existed.
func (c *Client) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	secs := strconv.FormatInt(int64(ttl/time.Second), 10)
	v, err := c.execute(ctx, "EXPIRE", []byte(key), []byte(secs))
	if err != nil {
		return false, err
	}
	return v.CountBool()
}

// ConfigGet returns the configuration parameters matching the patterns. The
// server may answer with a mapping or a flat pair list depending on protocol
// version; both shapes produce the same map.
func (c *Client) ConfigGet(ctx context.Context, patterns ...string) (map[string]string, error) {
	v, err := c.execute(ctx, "CONFIG GET", args.FromStrings(patterns...)...)
	if err != nil {
		return nil, err
	}
	return resp.ToStringMap(v), nil
}
