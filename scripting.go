package valkit

import (
	"context"

	"github.com/cosmez/valkit-go/internal/args"
	"github.com/cosmez/valkit-go/internal/canonical"
	"github.com/cosmez/valkit-go/resp"
)

// EngineStats is the canonical per-engine record of FUNCTION STATS: exactly
// two counts, missing values reported as zero.
type EngineStats struct {
	LibrariesCount int64
	FunctionsCount int64
}

// RunningScript describes a script currently executing on a node. Records
// the server reported without a command (transient startup state) never
// reach the caller.
type RunningScript struct {
	Name     string
	Command  []string
	Duration int64
}

// FunctionStatsNode is one node's canonicalized FUNCTION STATS record.
type FunctionStatsNode struct {
	RunningScript *RunningScript
	Engines       map[string]EngineStats
}

// FunctionStats returns scripting statistics per reporting node. A
// single-node engine answering with a bare stats record appears under the
// empty node name.
func (c *Client) FunctionStats(ctx context.Context) (map[string]FunctionStatsNode, error) {
	v, err := c.execute(ctx, "FUNCTION STATS")
	if err != nil {
		return nil, err
	}
	v = canonical.FunctionStats(v)
	if v.Kind() != resp.KindMap {
		c.warnShape("FUNCTION STATS", v)
		return map[string]FunctionStatsNode{}, nil
	}

	if hasStatsKeys(v) {
		return map[string]FunctionStatsNode{"": decodeStatsNode(v)}, nil
	}
	out := make(map[string]FunctionStatsNode, v.Len())
	for _, e := range v.Entries() {
		out[e.Key.StringValue()] = decodeStatsNode(e.Val)
	}
	return out, nil
}

func hasStatsKeys(v resp.Value) bool {
	_, hasEngines := v.Lookup("engines")
	_, hasRunning := v.Lookup("running_script")
	return hasEngines || hasRunning
}

func decodeStatsNode(v resp.Value) FunctionStatsNode {
	node := FunctionStatsNode{Engines: map[string]EngineStats{}}

	if engines, ok := v.Lookup("engines"); ok {
		for _, e := range engines.Entries() {
			libs, _ := e.Val.Lookup("libraries_count")
			fns, _ := e.Val.Lookup("functions_count")
			nLibs, _ := libs.Int64()
			nFns, _ := fns.Int64()
			node.Engines[e.Key.StringValue()] = EngineStats{
				LibrariesCount: nLibs,
				FunctionsCount: nFns,
			}
		}
	}

	if script, ok := v.Lookup("running_script"); ok && script.Kind() == resp.KindMap {
		rs := &RunningScript{}
		if name, ok := script.Lookup("name"); ok {
			rs.Name = name.StringValue()
		}
		if cmd, ok := script.Lookup("command"); ok {
			rs.Command = resp.ToStringSlice(cmd)
		}
		if dur, ok := script.Lookup("duration_ms"); ok {
			rs.Duration, _ = dur.Int64()
		}
		node.RunningScript = rs
	}
	return node
}

// FunctionDump serializes every loaded function library into an opaque
// binary payload. The bytes come back exactly as the engine produced them;
// re-submitting them through FunctionRestore must round-trip byte-for-byte,
// so no text conversion ever touches this path.
func (c *Client) FunctionDump(ctx context.Context) ([]byte, error) {
	v, err := c.execute(ctx, "FUNCTION DUMP")
	if err != nil {
		return nil, err
	}
	return v.Bytes()
}

// RestorePolicy selects how FUNCTION RESTORE treats existing libraries.
type RestorePolicy string

const (
	RestoreAppend  RestorePolicy = "APPEND"
	RestoreFlush   RestorePolicy = "FLUSH"
	RestoreReplace RestorePolicy = "REPLACE"
)

// FunctionRestore loads libraries from a FunctionDump payload.
func (c *Client) FunctionRestore(ctx context.Context, payload []byte, policy RestorePolicy) error {
	tokens := [][]byte{payload}
	if policy != "" {
		tokens = append(tokens, []byte(policy))
	}
	v, err := c.execute(ctx, "FUNCTION RESTORE", tokens...)
	if err != nil {
		return err
	}
	_, err = v.Str()
	return err
}

// ScriptExists reports, per SHA1 digest, whether the script is cached.
func (c *Client) ScriptExists(ctx context.Context, digests ...string) ([]bool, error) {
	v, err := c.execute(ctx, "SCRIPT EXISTS", args.FromStrings(digests...)...)
	if err != nil {
		return nil, err
	}
	return resp.ToBoolSlice(v), nil
}
