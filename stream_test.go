package valkit

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/cosmez/valkit-go/internal/args"
	"github.com/cosmez/valkit-go/resp"
)

func TestXAdd(t *testing.T) {
	eng := &fakeEngine{reply: resp.Text("1690000000000-0")}
	c := newTestClient(t, eng)

	id, err := c.XAdd(context.Background(), "events", "*", "type", "click", "user", "42")
	if err != nil {
		t.Fatalf("XAdd failed: %v", err)
	}
	if id != "1690000000000-0" {
		t.Errorf("XAdd() = %q", id)
	}

	want := args.FromStrings("events", "*", "type", "click", "user", "42")
	if !reflect.DeepEqual(eng.lastArgs, want) {
		t.Errorf("XADD args = %q, want %q", eng.lastArgs, want)
	}
}

func TestXAddOddFieldValuesFailsBeforeDispatch(t *testing.T) {
	eng := &fakeEngine{reply: resp.Text("1-0")}
	c := newTestClient(t, eng)

	_, err := c.XAdd(context.Background(), "events", "*", "type")
	if !errors.Is(err, args.ErrOddPairs) {
		t.Fatalf("XAdd error = %v, want ErrOddPairs", err)
	}
	if eng.lastName != "" {
		t.Error("engine was called despite the build error")
	}
}

func TestXRange(t *testing.T) {
	tests := []struct {
		name  string
		reply resp.Value
	}{
		{
			name: "Sequence Shape With Flat Fields",
			reply: resp.Array(
				resp.Array(resp.Text("1-1"), resp.Array(
					resp.Text("f1"), resp.Text("v1"), resp.Text("f2"), resp.Text("v2"),
				)),
				resp.Array(resp.Text("1-2"), resp.Array(
					resp.Text("f3"), resp.Text("v3"),
				)),
			),
		},
		{
			name: "Mapping Shape With Nested Pairs",
			reply: resp.Map(
				resp.Pair(resp.Text("1-1"), resp.Array(
					resp.Array(resp.Text("f1"), resp.Text("v1")),
					resp.Array(resp.Text("f2"), resp.Text("v2")),
				)),
				resp.Pair(resp.Text("1-2"), resp.Array(
					resp.Array(resp.Text("f3"), resp.Text("v3")),
				)),
			),
		},
	}

	want := []StreamEntry{
		{ID: "1-1", Fields: [][2]string{{"f1", "v1"}, {"f2", "v2"}}},
		{ID: "1-2", Fields: [][2]string{{"f3", "v3"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &fakeEngine{reply: tt.reply})
			got, err := c.XRange(context.Background(), "events", "-", "+", 0)
			if err != nil {
				t.Fatalf("XRange failed: %v", err)
			}
			// Both raw shapes canonicalize to the same entries, in order.
			if !reflect.DeepEqual(got, want) {
				t.Errorf("XRange() = %v, want %v", got, want)
			}
		})
	}
}

func TestXRangeCountArgument(t *testing.T) {
	eng := &fakeEngine{reply: resp.Array()}
	c := newTestClient(t, eng)

	if _, err := c.XRange(context.Background(), "events", "-", "+", 10); err != nil {
		t.Fatalf("XRange failed: %v", err)
	}
	want := args.FromStrings("events", "-", "+", "COUNT", "10")
	if !reflect.DeepEqual(eng.lastArgs, want) {
		t.Errorf("XRANGE args = %q, want %q", eng.lastArgs, want)
	}
}

func TestXRangeBytesPreservesFieldBytes(t *testing.T) {
	raw := []byte{0x00, 0xff, 0x01}
	eng := &fakeEngine{reply: resp.Array(
		resp.Array(resp.Text("1-1"), resp.Array(resp.Text("blob"), resp.Binary(raw))),
	)}
	c := newTestClient(t, eng)

	got, err := c.XRangeBytes(context.Background(), "events", "-", "+", 0)
	if err != nil {
		t.Fatalf("XRangeBytes failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "1-1" {
		t.Fatalf("XRangeBytes() = %v", got)
	}
	if !bytes.Equal(got[0].Fields[0][1], raw) {
		t.Errorf("field value = %v, want %v", got[0].Fields[0][1], raw)
	}
}

func TestXRevRange(t *testing.T) {
	eng := &fakeEngine{reply: resp.Array(
		resp.Array(resp.Text("2-0"), resp.Array(resp.Text("f"), resp.Text("v"))),
	)}
	c := newTestClient(t, eng)

	got, err := c.XRevRange(context.Background(), "events", "+", "-", 0)
	if err != nil {
		t.Fatalf("XRevRange failed: %v", err)
	}
	if eng.lastName != "XREVRANGE" {
		t.Errorf("dispatched %q", eng.lastName)
	}
	if len(got) != 1 || got[0].ID != "2-0" {
		t.Errorf("XRevRange() = %v", got)
	}
}

func TestXLen(t *testing.T) {
	c := newTestClient(t, &fakeEngine{reply: resp.Int(7)})
	n, err := c.XLen(context.Background(), "events")
	if err != nil {
		t.Fatalf("XLen failed: %v", err)
	}
	if n != 7 {
		t.Errorf("XLen() = %d", n)
	}
}
