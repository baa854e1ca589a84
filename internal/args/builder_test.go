package args

import (
	"errors"
	"reflect"
	"strconv"
	"testing"
)

func TestNumkeysPrefixed(t *testing.T) {
	tests := []struct {
		name     string
		keys     [][]byte
		trailing []string
		expected [][]byte
		wantErr  error
	}{
		{
			name:     "Two Keys",
			keys:     FromStrings("k1", "k2"),
			expected: FromStrings("2", "k1", "k2"),
		},
		{
			name:     "Keys With Trailing Options",
			keys:     FromStrings("k1", "k2", "k3"),
			trailing: []string{"LIMIT", "10"},
			expected: FromStrings("3", "k1", "k2", "k3", "LIMIT", "10"),
		},
		{
			name:     "Empty Non-Nil Collection",
			keys:     [][]byte{},
			expected: FromStrings("0"),
		},
		{
			name:    "Nil Collection",
			keys:    nil,
			wantErr: ErrNoKeys,
		},
		{
			name:    "Nil Key Element",
			keys:    [][]byte{[]byte("k1"), nil},
			wantErr: ErrNilKey,
		},
		{
			name:     "Binary Key",
			keys:     [][]byte{{0x00, 0xFF}},
			expected: [][]byte{[]byte("1"), {0x00, 0xFF}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NumkeysPrefixed(tt.keys, tt.trailing...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NumkeysPrefixed() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("NumkeysPrefixed() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("NumkeysPrefixed() = %q, want %q", got, tt.expected)
			}
		})
	}
}

// Token arithmetic: count token + key block + trailing block, with the count
// token spelling the key block length in decimal.
func TestNumkeysPrefixedTokenCounts(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 100} {
		keys := make([][]byte, n)
		for i := range keys {
			keys[i] = []byte{byte(i)}
		}
		trailing := []string{"WITHSCORES"}

		got, err := NumkeysPrefixed(keys, trailing...)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(got) != len(keys)+1+len(trailing) {
			t.Errorf("n=%d: token count = %d, want %d", n, len(got), len(keys)+1+len(trailing))
		}
		if string(got[0]) != strconv.Itoa(n) {
			t.Errorf("n=%d: count token = %q", n, got[0])
		}
	}
}

func TestDestinationNumkeys(t *testing.T) {
	got, err := DestinationNumkeys([]byte("dest"), FromStrings("k1", "k2"))
	if err != nil {
		t.Fatalf("DestinationNumkeys() error = %v", err)
	}
	want := FromStrings("dest", "2", "k1", "k2")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DestinationNumkeys() = %q, want %q", got, want)
	}

	if _, err := DestinationNumkeys(nil, FromStrings("k1")); !errors.Is(err, ErrNilKey) {
		t.Errorf("nil destination error = %v, want ErrNilKey", err)
	}
	if _, err := DestinationNumkeys([]byte("dest"), nil); !errors.Is(err, ErrNoKeys) {
		t.Errorf("nil keys error = %v, want ErrNoKeys", err)
	}
}

func TestTimeoutNumkeys(t *testing.T) {
	tests := []struct {
		name     string
		timeout  float64
		keys     [][]byte
		trailing []string
		expected [][]byte
	}{
		{
			name:     "Fractional Timeout",
			timeout:  0.5,
			keys:     FromStrings("k1", "k2"),
			trailing: []string{"LEFT"},
			expected: FromStrings("0.5", "2", "k1", "k2", "LEFT"),
		},
		{
			name:     "Zero Timeout",
			timeout:  0,
			keys:     FromStrings("k1"),
			expected: FromStrings("0", "1", "k1"),
		},
		{
			name:    "No Scientific Notation",
			timeout: 0.0000001,
			keys:    FromStrings("k1"),
			expected: FromStrings(
				"0.0000001", "1", "k1",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeoutNumkeys(tt.timeout, tt.keys, tt.trailing...)
			if err != nil {
				t.Fatalf("TimeoutNumkeys() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("TimeoutNumkeys() = %q, want %q", got, tt.expected)
			}
		})
	}

	if _, err := TimeoutNumkeys(1, nil); !errors.Is(err, ErrNoKeys) {
		t.Errorf("nil keys error = %v, want ErrNoKeys", err)
	}
}

func TestKeyFieldValues(t *testing.T) {
	got, err := KeyFieldValues([]byte("stream"), FromStrings("f1", "v1", "f2", "v2"))
	if err != nil {
		t.Fatalf("KeyFieldValues() error = %v", err)
	}
	want := FromStrings("stream", "f1", "v1", "f2", "v2")
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeyFieldValues() = %q, want %q", got, want)
	}

	if _, err := KeyFieldValues([]byte("k"), FromStrings("f1")); !errors.Is(err, ErrOddPairs) {
		t.Errorf("odd pairs error = %v, want ErrOddPairs", err)
	}
	if _, err := KeyFieldValues(nil, nil); !errors.Is(err, ErrNilKey) {
		t.Errorf("nil key error = %v, want ErrNilKey", err)
	}
}
