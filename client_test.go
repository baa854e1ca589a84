package valkit

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/cosmez/valkit-go/internal/logging"
	"github.com/cosmez/valkit-go/resp"
)

// fakeEngine replays a scripted reply and records what was dispatched.
type fakeEngine struct {
	reply    resp.Value
	err      error
	lastName string
	lastArgs [][]byte
}

func (f *fakeEngine) Execute(ctx context.Context, name string, args [][]byte) (resp.Value, error) {
	f.lastName = name
	f.lastArgs = args
	if f.err != nil {
		return resp.Nil(), f.err
	}
	return f.reply, nil
}

func newTestClient(t *testing.T, engine Engine, opts ...Option) *Client {
	t.Helper()
	c, err := NewClient(engine, opts...)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c
}

func TestNewClientRequiresEngine(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Error("NewClient(nil) should fail")
	}
}

func TestGetSetRoundTrip(t *testing.T) {
	eng := &fakeEngine{reply: resp.Text("OK")}
	c := newTestClient(t, eng)

	if err := c.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if eng.lastName != "SET" {
		t.Errorf("dispatched %q, want SET", eng.lastName)
	}
	if len(eng.lastArgs) != 2 || string(eng.lastArgs[0]) != "k" || string(eng.lastArgs[1]) != "v" {
		t.Errorf("SET args = %q", eng.lastArgs)
	}

	eng.reply = resp.Binary([]byte("v"))
	got, err := c.Get(context.Background(), "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}
}

func TestGetMissingKey(t *testing.T) {
	c := newTestClient(t, &fakeEngine{reply: resp.Nil()})
	_, err := c.Get(context.Background(), "missing")
	if !errors.Is(err, resp.ErrNil) {
		t.Errorf("Get(missing) error = %v, want resp.ErrNil", err)
	}
}

// Binary payloads must survive the binary-mode API byte-for-byte, including
// zero bytes and invalid UTF-8.
func TestBytesRoundTripBinarySafe(t *testing.T) {
	payload := []byte{0x00, 0xFF, 0xFE, 0x00, 0x80, 'x'}
	eng := &fakeEngine{reply: resp.Text("OK")}
	c := newTestClient(t, eng)

	if err := c.SetBytes(context.Background(), []byte("k"), payload); err != nil {
		t.Fatalf("SetBytes failed: %v", err)
	}
	stored := eng.lastArgs[1]
	if !bytes.Equal(stored, payload) {
		t.Fatalf("stored bytes = %v, want %v", stored, payload)
	}

	eng.reply = resp.Binary(stored)
	got, err := c.GetBytes(context.Background(), []byte("k"))
	if err != nil {
		t.Fatalf("GetBytes failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("GetBytes() = %v, want %v", got, payload)
	}
}

func TestCompressionRoundTrip(t *testing.T) {
	eng := &fakeEngine{reply: resp.Text("OK")}
	c := newTestClient(t, eng, WithCompression("snappy", 16))

	big := bytes.Repeat([]byte("payload "), 64)
	if err := c.SetBytes(context.Background(), []byte("k"), big); err != nil {
		t.Fatalf("SetBytes failed: %v", err)
	}
	stored := eng.lastArgs[1]
	if len(stored) >= len(big) {
		t.Errorf("stored %d bytes, expected compression below %d", len(stored), len(big))
	}

	eng.reply = resp.Binary(stored)
	got, err := c.GetBytes(context.Background(), []byte("k"))
	if err != nil {
		t.Fatalf("GetBytes failed: %v", err)
	}
	if !bytes.Equal(got, big) {
		t.Error("compressed round trip did not restore the original payload")
	}

	// Values stored before compression was enabled read back unchanged.
	eng.reply = resp.Binary([]byte("legacy plain value"))
	got, err = c.GetBytes(context.Background(), []byte("old"))
	if err != nil {
		t.Fatalf("GetBytes failed: %v", err)
	}
	if string(got) != "legacy plain value" {
		t.Errorf("GetBytes(legacy) = %q", got)
	}
}

func TestWithCompressionUnknownBackend(t *testing.T) {
	if _, err := NewClient(&fakeEngine{}, WithCompression("zstd9000", 0)); err == nil {
		t.Error("unknown compression backend should fail client construction")
	}
}

// A shape mismatch on a forgiving path is logged, never returned: the caller
// gets the documented fallback and a nil error.
func TestShapeMismatchWarnsInsteadOfFailing(t *testing.T) {
	var sink bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "valkit-test",
		Level:  hclog.Warn,
		Output: &sink,
	})

	// LMPOP expects nil, a map, or [key, [values]]; a bare integer is none
	// of those.
	c := newTestClient(t, &fakeEngine{reply: resp.Int(42)}, WithLogger(logger))
	got, err := c.LMPop(context.Background(), PopLeft, 0, "q")
	if err != nil {
		t.Fatalf("LMPop error = %v, want nil", err)
	}
	if got != nil {
		t.Errorf("LMPop() = %v, want nil fallback", got)
	}
	if !bytes.Contains(sink.Bytes(), []byte("unexpected response shape")) {
		t.Errorf("expected a shape warning in the log, got %q", sink.String())
	}
}

func TestDefaultLoggerDiscards(t *testing.T) {
	// Same mismatch without a configured logger: still silent, still no error.
	c := newTestClient(t, &fakeEngine{reply: resp.Int(42)})
	if _, err := c.LMPop(context.Background(), PopLeft, 0, "q"); err != nil {
		t.Fatalf("LMPop error = %v, want nil", err)
	}

	l := logging.New("valkit", "warn")
	if l == nil || !l.IsWarn() {
		t.Error("logging.New should produce a warn-capable logger")
	}
	if l.IsDebug() {
		t.Error("warn-level logger should not enable debug")
	}
}

func TestEngineErrorsPassThrough(t *testing.T) {
	boom := errors.New("engine: connection reset")
	c := newTestClient(t, &fakeEngine{err: boom})

	if _, err := c.Get(context.Background(), "k"); !errors.Is(err, boom) {
		t.Errorf("Get error = %v, want engine error unchanged", err)
	}
	if _, err := c.Del(context.Background(), "k"); !errors.Is(err, boom) {
		t.Errorf("Del error = %v, want engine error unchanged", err)
	}
}

func TestSetNXCountFlag(t *testing.T) {
	tests := []struct {
		name     string
		reply    resp.Value
		expected bool
		wantErr  bool
	}{
		{"Written", resp.Int(1), true, false},
		{"Not Written", resp.Int(0), false, false},
		{"Unexpected Count", resp.Int(5), false, true},
		{"Map Reply", resp.Map(), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &fakeEngine{reply: tt.reply})
			got, err := c.SetNX(context.Background(), "k", "v")
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetNX error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("SetNX() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConfigGet(t *testing.T) {
	// Flat pair shape (older protocol).
	c := newTestClient(t, &fakeEngine{reply: resp.Array(
		resp.Text("maxmemory"), resp.Text("0"),
		resp.Text("save"), resp.Text("3600 1"),
	)})
	got, err := c.ConfigGet(context.Background(), "maxmemory", "save")
	if err != nil {
		t.Fatalf("ConfigGet failed: %v", err)
	}
	if got["maxmemory"] != "0" || got["save"] != "3600 1" {
		t.Errorf("ConfigGet() = %v", got)
	}

	// Mapping shape (newer protocol) produces the same result.
	c = newTestClient(t, &fakeEngine{reply: resp.Map(
		resp.Pair(resp.Text("maxmemory"), resp.Text("0")),
	)})
	got, err = c.ConfigGet(context.Background(), "maxmemory")
	if err != nil {
		t.Fatalf("ConfigGet failed: %v", err)
	}
	if got["maxmemory"] != "0" {
		t.Errorf("ConfigGet() = %v", got)
	}
}
