// Package canonical holds the per-command-family shaping rules that turn a
// generically-coerced engine value into the exact documented shape of one
// operation. Every function is a pure transformation: oddly-shaped input
// falls back to the safest default instead of failing, so a protocol or
// server version drift degrades output rather than breaking callers.
package canonical

import (
	"strings"

	"github.com/cosmez/valkit-go/resp"
)

// UnwrapVerbatim collapses the RESP3 verbatim wrapper, a two-entry mapping
// {format, text}, to its text value. Anything else passes through untouched.
func UnwrapVerbatim(v resp.Value) resp.Value {
	if v.Kind() != resp.KindMap || v.Len() != 2 {
		return v
	}
	text, hasText := v.Lookup("text")
	if _, hasFormat := v.Lookup("format"); hasText && hasFormat {
		return text
	}
	return v
}

// NodeText collapses a node→value mapping (or a bare scalar) to the first
// non-nil value's text, verbatim-unwrapped. The second return is false when
// nothing usable was found.
func NodeText(v resp.Value) (string, bool) {
	if v.Kind() != resp.KindMap {
		if v.IsNil() {
			return "", false
		}
		return UnwrapVerbatim(v).StringValue(), true
	}
	for _, e := range v.Entries() {
		if !e.Val.IsNil() {
			return UnwrapVerbatim(e.Val).StringValue(), true
		}
	}
	return "", false
}

// ClientInfoText collapses a multi-node CLIENT INFO reply. Nodes carrying
// library identification win over nodes that have not negotiated it yet;
// otherwise the first non-nil node is used.
func ClientInfoText(v resp.Value) (string, bool) {
	if v.Kind() == resp.KindMap {
		for _, e := range v.Entries() {
			if e.Val.IsNil() {
				continue
			}
			s := UnwrapVerbatim(e.Val).StringValue()
			if strings.Contains(s, "lib-name=") && strings.Contains(s, "lib-ver=") {
				return s, true
			}
		}
	}
	return NodeText(v)
}

// CollapseSingleNode unwraps the one-entry node mapping a single-node
// deployment produces, returning the inner value verbatim-unwrapped. The
// second return reports whether an unwrap happened.
func CollapseSingleNode(v resp.Value) (resp.Value, bool) {
	if v.Kind() == resp.KindMap && v.Len() == 1 {
		return UnwrapVerbatim(v.Entries()[0].Val), true
	}
	return v, false
}

// FormatInfo reconstructs the legacy INFO text block from whatever shape the
// engine produced: verbatim wrappers unwrap, structured section maps rebuild
// as "# Section" headers with key:value lines, and a sectionless node map
// collapses to its first value.
func FormatInfo(v resp.Value) string {
	v = UnwrapVerbatim(v)
	if v.Kind() != resp.KindMap {
		return v.StringValue()
	}

	ents := v.Entries()
	anySection := false
	for _, e := range ents {
		if e.Val.Kind() == resp.KindMap {
			anySection = true
			break
		}
	}
	if !anySection {
		if len(ents) > 0 {
			return FormatInfo(ents[0].Val)
		}
		return ""
	}

	var sb strings.Builder
	for _, e := range ents {
		if e.Val.Kind() != resp.KindMap {
			continue // scalar meta keys sit outside any section
		}
		name := e.Key.StringValue()
		if name != "" {
			name = strings.ToUpper(name[:1]) + name[1:]
		}
		sb.WriteString("# ")
		sb.WriteString(name)
		sb.WriteByte('\n')
		for _, kv := range e.Val.Entries() {
			sb.WriteString(kv.Key.StringValue())
			sb.WriteByte(':')
			sb.WriteString(kv.Val.StringValue())
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// InfoPerNode formats a multi-node INFO reply, keeping the node→text shape.
func InfoPerNode(v resp.Value) map[string]string {
	out := map[string]string{}
	if v.Kind() != resp.KindMap {
		return out
	}
	for _, e := range v.Entries() {
		out[e.Key.StringValue()] = FormatInfo(e.Val)
	}
	return out
}

// ClusterNodes merges the per-node CLUSTER NODES text blocks into one
// deduplicated listing. When any master lines survive filtering, replicas
// and transient states (noaddr, handshake) are dropped; otherwise the full
// deduplicated set is kept so callers still see something during topology
// churn.
func ClusterNodes(v resp.Value) string {
	seen := map[string]struct{}{}
	var all []string
	addLines := func(s string) {
		for _, ln := range strings.FieldsFunc(s, func(r rune) bool { return r == '\n' || r == '\r' }) {
			t := strings.TrimSpace(ln)
			if t == "" {
				continue
			}
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			all = append(all, t)
		}
	}

	if v.Kind() == resp.KindMap {
		for _, e := range v.Entries() {
			if !e.Val.IsNil() {
				addLines(UnwrapVerbatim(e.Val).StringValue())
			}
		}
	} else if !v.IsNil() {
		addLines(UnwrapVerbatim(v).StringValue())
	}

	var masters []string
	for _, t := range all {
		toks := strings.Split(t, " ")
		if len(toks) < 3 {
			continue
		}
		fl := strings.ToLower(toks[2])
		isMaster := strings.Contains(fl, "master")
		isReplica := strings.Contains(fl, "slave") || strings.Contains(fl, "replica")
		if isMaster && !isReplica && !strings.Contains(fl, "noaddr") && !strings.Contains(fl, "handshake") {
			masters = append(masters, t)
		}
	}
	if len(masters) > 0 {
		return strings.Join(masters, "\n")
	}
	return strings.Join(all, "\n")
}

// ScanPage validates a cursor-paged reply. A well-formed reply is exactly a
// two-element sequence [newCursor, keys] and passes through unchanged. Any
// other shape falls back to [originalCursor, empty keys] so an iterator that
// keeps re-issuing scans terminates instead of failing mid-iteration.
func ScanPage(v resp.Value, originalCursor resp.Value) (cursor resp.Value, keys resp.Value, ok bool) {
	if v.Kind() == resp.KindArray && v.Len() == 2 {
		elems := v.Array()
		return elems[0], elems[1], true
	}
	return originalCursor, resp.Array(), false
}

// FunctionStats canonicalizes a FUNCTION STATS reply. The reply is either a
// node→stats mapping or a bare stats record; each stats record gets:
//   - running_script dropped entirely when it lacks a "command" field,
//   - each engines entry rewritten to exactly {libraries_count,
//     functions_count} as integers, missing counts defaulting to zero,
//     libraries before functions.
//
// Everything else passes through in place.
func FunctionStats(v resp.Value) resp.Value {
	if v.Kind() != resp.KindMap {
		return v
	}
	if isFunctionStatsRecord(v) {
		return canonicalizeStatsRecord(v)
	}
	// Node mapping: canonicalize each node's record.
	out := make([]resp.MapEntry, 0, v.Len())
	for _, e := range v.Entries() {
		val := e.Val
		if val.Kind() == resp.KindMap {
			val = canonicalizeStatsRecord(val)
		}
		out = append(out, resp.Pair(e.Key, val))
	}
	return resp.Map(out...)
}

func isFunctionStatsRecord(v resp.Value) bool {
	_, hasEngines := v.Lookup("engines")
	_, hasRunning := v.Lookup("running_script")
	return hasEngines || hasRunning
}

func canonicalizeStatsRecord(rec resp.Value) resp.Value {
	out := make([]resp.MapEntry, 0, rec.Len())
	for _, e := range rec.Entries() {
		switch e.Key.StringValue() {
		case "running_script":
			if e.Val.Kind() == resp.KindMap {
				if _, hasCommand := e.Val.Lookup("command"); !hasCommand {
					continue // transient record without a command is noise
				}
			}
			out = append(out, e)
		case "engines":
			out = append(out, resp.Pair(e.Key, canonicalizeEngines(e.Val)))
		default:
			out = append(out, e)
		}
	}
	return resp.Map(out...)
}

func canonicalizeEngines(engines resp.Value) resp.Value {
	if engines.Kind() != resp.KindMap {
		return engines
	}
	out := make([]resp.MapEntry, 0, engines.Len())
	for _, e := range engines.Entries() {
		out = append(out, resp.Pair(e.Key, resp.Map(
			resp.Pair(resp.Text("libraries_count"), resp.Int(lookupCount(e.Val, "libraries_count"))),
			resp.Pair(resp.Text("functions_count"), resp.Int(lookupCount(e.Val, "functions_count"))),
		)))
	}
	return resp.Map(out...)
}

func lookupCount(stats resp.Value, key string) int64 {
	f, ok := stats.Lookup(key)
	if !ok {
		return 0
	}
	n, err := f.Int64()
	if err != nil {
		return 0
	}
	return n
}

// FieldPairs normalizes one stream entry's field list to [field, value]
// pairs. The engine may deliver a flat [f1, v1, f2, v2] sequence, an
// already-nested [[f1, v1], ...] sequence, or a single-element wrapper
// around either. A flat sequence of odd length yields no pairs at all
// rather than a half-pair.
func FieldPairs(v resp.Value) []resp.Value {
	if v.Kind() != resp.KindArray {
		return []resp.Value{}
	}
	elems := v.Array()

	// Single-element wrapper around the real field list.
	if len(elems) == 1 && elems[0].Kind() == resp.KindArray {
		return FieldPairs(elems[0])
	}

	// Already-nested pairs.
	if len(elems) > 0 && elems[0].Kind() == resp.KindArray {
		out := make([]resp.Value, 0, len(elems))
		for _, p := range elems {
			if p.Len() == 2 {
				out = append(out, resp.Array(p.Array()[0], p.Array()[1]))
			}
		}
		return out
	}

	if len(elems)%2 != 0 {
		return []resp.Value{}
	}
	out := make([]resp.Value, 0, len(elems)/2)
	for i := 0; i+1 < len(elems); i += 2 {
		out = append(out, resp.Array(elems[i], elems[i+1]))
	}
	return out
}

// StreamEntries canonicalizes an XRANGE-style reply to an ordered mapping of
// entry id → [field, value] pairs. Both the mapping shape (RESP3) and the
// [[id, fields], ...] sequence shape (RESP2) are accepted; entry order and
// pair order are preserved exactly.
func StreamEntries(v resp.Value) resp.Value {
	switch v.Kind() {
	case resp.KindMap:
		out := make([]resp.MapEntry, 0, v.Len())
		for _, e := range v.Entries() {
			out = append(out, resp.Pair(e.Key, resp.Array(FieldPairs(e.Val)...)))
		}
		return resp.Map(out...)
	case resp.KindArray:
		out := make([]resp.MapEntry, 0, v.Len())
		for _, e := range v.Array() {
			if e.Kind() != resp.KindArray || e.Len() != 2 {
				continue
			}
			pair := e.Array()
			out = append(out, resp.Pair(pair[0], resp.Array(FieldPairs(pair[1])...)))
		}
		return resp.Map(out...)
	}
	return resp.Map()
}

// CustomResult applies the legacy single-node convenience to a custom
// command reply: a one-entry mapping whose value is not itself a mapping
// collapses to that value. Mapping-valued entries stay wrapped because the
// caller cannot distinguish a node label from a payload key otherwise.
func CustomResult(v resp.Value) resp.Value {
	if v.Kind() != resp.KindMap || v.Len() != 1 {
		return v
	}
	inner := v.Entries()[0].Val
	if inner.Kind() == resp.KindMap {
		return v
	}
	return UnwrapVerbatim(inner)
}
