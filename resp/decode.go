package resp

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Decode reads a single wire value (RESP2 or RESP3) from the reader.
//
// The normalization core never touches the wire itself — the execution
// engine owns that — but the decoder lets the diagnostic CLI and
// recorded-capture tests produce the same Value trees an engine would.
func Decode(r *bufio.Reader) (Value, error) {
	b, err := r.ReadByte()
	if err != nil {
		return Value{}, err
	}

	switch b {
	case '+':
		line, err := readLine(r)
		if err != nil {
			return Value{}, err
		}
		return Text(line), nil
	case '-':
		line, err := readLine(r)
		if err != nil {
			return Value{}, err
		}
		return Error(line), nil
	case ':':
		return decodeInt(r)
	case '$':
		return decodeBulk(r)
	case '*', '~', '>':
		return decodeArray(r)
	case '%':
		return decodeMap(r)
	case '#':
		return decodeBool(r)
	case ',':
		return decodeDouble(r)
	case '_':
		if _, err := readLine(r); err != nil {
			return Value{}, err
		}
		return Nil(), nil
	case '(':
		return decodeBigNumber(r)
	case '=':
		return decodeVerbatim(r)
	default:
		return Value{}, fmt.Errorf("unknown type byte: %q", b)
	}
}

// readLine reads until \n and strips the trailing \r\n.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\r\n"), nil
}

func decodeInt(r *bufio.Reader) (Value, error) {
	line, err := readLine(r)
	if err != nil {
		return Value{}, err
	}
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid integer: %w", err)
	}
	return Int(n), nil
}

func decodeBool(r *bufio.Reader) (Value, error) {
	line, err := readLine(r)
	if err != nil {
		return Value{}, err
	}
	switch line {
	case "t":
		return Bool(true), nil
	case "f":
		return Bool(false), nil
	}
	return Value{}, fmt.Errorf("invalid boolean payload: %q", line)
}

func decodeDouble(r *bufio.Reader) (Value, error) {
	line, err := readLine(r)
	if err != nil {
		return Value{}, err
	}
	switch line {
	case "inf":
		return Double(math.Inf(1)), nil
	case "-inf":
		return Double(math.Inf(-1)), nil
	case "nan":
		return Double(math.NaN()), nil
	}
	f, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid double: %w", err)
	}
	return Double(f), nil
}

// decodeBigNumber keeps integers that fit an int64 numeric; anything larger
// stays textual so no precision is lost.
func decodeBigNumber(r *bufio.Reader) (Value, error) {
	line, err := readLine(r)
	if err != nil {
		return Value{}, err
	}
	if n, err := strconv.ParseInt(line, 10, 64); err == nil {
		return Int(n), nil
	}
	return Text(line), nil
}

// readBulkPayload reads a length-prefixed payload plus trailing CRLF.
// Returns ok=false for the -1 null marker.
func readBulkPayload(r *bufio.Reader) ([]byte, bool, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, false, err
	}
	length, err := strconv.Atoi(line)
	if err != nil {
		return nil, false, fmt.Errorf("invalid bulk length: %w", err)
	}
	if length == -1 {
		return nil, false, nil
	}
	if length < -1 {
		return nil, false, fmt.Errorf("invalid bulk length: %d", length)
	}

	// Read the exact byte count to stay binary-safe.
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, false, fmt.Errorf("failed to read bulk payload: %w", err)
	}
	crlf := make([]byte, 2)
	if _, err := io.ReadFull(r, crlf); err != nil {
		return nil, false, fmt.Errorf("failed to read bulk trailer: %w", err)
	}
	if crlf[0] != '\r' || crlf[1] != '\n' {
		return nil, false, fmt.Errorf("expected CRLF after bulk payload, got %q", crlf)
	}
	return buf, true, nil
}

func decodeBulk(r *bufio.Reader) (Value, error) {
	buf, ok, err := readBulkPayload(r)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Nil(), nil
	}
	return Binary(buf), nil
}

// decodeVerbatim presents a verbatim string the way engines do: a two-entry
// mapping {format, text}. The canonicalizer's verbatim unwrap consumes this
// shape.
func decodeVerbatim(r *bufio.Reader) (Value, error) {
	buf, ok, err := readBulkPayload(r)
	if err != nil {
		return Value{}, err
	}
	if !ok {
		return Nil(), nil
	}
	format, body := "txt", string(buf)
	if len(buf) >= 4 && buf[3] == ':' {
		format, body = string(buf[:3]), string(buf[4:])
	}
	return Map(
		Pair(Text("format"), Text(format)),
		Pair(Text("text"), Text(body)),
	), nil
}

func decodeArray(r *bufio.Reader) (Value, error) {
	line, err := readLine(r)
	if err != nil {
		return Value{}, err
	}
	count, err := strconv.Atoi(line)
	if err != nil {
		return Value{}, fmt.Errorf("invalid array count: %w", err)
	}
	if count == -1 {
		return Nil(), nil
	}
	if count < -1 {
		return Value{}, fmt.Errorf("invalid array count: %d", count)
	}

	values := make([]Value, count)
	for i := 0; i < count; i++ {
		v, err := Decode(r)
		if err != nil {
			return Value{}, fmt.Errorf("failed to decode array element %d: %w", i, err)
		}
		values[i] = v
	}
	return Array(values...), nil
}

func decodeMap(r *bufio.Reader) (Value, error) {
	line, err := readLine(r)
	if err != nil {
		return Value{}, err
	}
	count, err := strconv.Atoi(line)
	if err != nil {
		return Value{}, fmt.Errorf("invalid map count: %w", err)
	}
	if count < 0 {
		return Value{}, fmt.Errorf("invalid map count: %d", count)
	}

	ents := make([]MapEntry, count)
	for i := 0; i < count; i++ {
		k, err := Decode(r)
		if err != nil {
			return Value{}, fmt.Errorf("failed to decode map key %d: %w", i, err)
		}
		v, err := Decode(r)
		if err != nil {
			return Value{}, fmt.Errorf("failed to decode map value %d: %w", i, err)
		}
		ents[i] = MapEntry{Key: k, Val: v}
	}
	return Map(ents...), nil
}
