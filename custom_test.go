package valkit

import (
	"context"
	"testing"

	"github.com/cosmez/valkit-go/resp"
)

func TestCustomCommand(t *testing.T) {
	tests := []struct {
		name     string
		reply    resp.Value
		expected resp.Value
	}{
		{
			name:     "Single-Node Scalar Unwraps",
			reply:    resp.Map(resp.Pair(resp.Text("node1"), resp.Text("PONG"))),
			expected: resp.Text("PONG"),
		},
		{
			name:     "Map-Valued Entry Stays Wrapped",
			reply:    resp.Map(resp.Pair(resp.Text("node1"), resp.Map(resp.Pair(resp.Text("a"), resp.Text("b"))))),
			expected: resp.Map(resp.Pair(resp.Text("node1"), resp.Map(resp.Pair(resp.Text("a"), resp.Text("b"))))),
		},
		{
			name: "Multi-Node Mapping Preserved",
			reply: resp.Map(
				resp.Pair(resp.Text("node1"), resp.Text("PONG")),
				resp.Pair(resp.Text("node2"), resp.Text("PONG")),
			),
			expected: resp.Map(
				resp.Pair(resp.Text("node1"), resp.Text("PONG")),
				resp.Pair(resp.Text("node2"), resp.Text("PONG")),
			),
		},
		{"Scalar Reply", resp.Text("OK"), resp.Text("OK")},
		{"Sequence Reply", resp.Array(resp.Int(1)), resp.Array(resp.Int(1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, &fakeEngine{reply: tt.reply})
			got, err := c.CustomCommand(context.Background(), "PING")
			if err != nil {
				t.Fatalf("CustomCommand failed: %v", err)
			}
			if !got.Equal(tt.expected) {
				t.Errorf("CustomCommand() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCustomCommandBytesArguments(t *testing.T) {
	eng := &fakeEngine{reply: resp.Text("OK")}
	c := newTestClient(t, eng)

	raw := []byte{0x00, 0xFF}
	if _, err := c.CustomCommandBytes(context.Background(), "SET", []byte("k"), raw); err != nil {
		t.Fatalf("CustomCommandBytes failed: %v", err)
	}
	if eng.lastName != "SET" {
		t.Errorf("dispatched %q", eng.lastName)
	}
	if len(eng.lastArgs) != 2 || string(eng.lastArgs[1]) != string(raw) {
		t.Errorf("args = %q", eng.lastArgs)
	}
}
