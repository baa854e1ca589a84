package compress

import (
	"bytes"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	backends := []string{"gzip", "snappy"}

	testCases := []struct {
		name  string
		input []byte
	}{
		{
			name:  "Plain ASCII",
			input: []byte("Hello, World! This is a test string."),
		},
		{
			name:  "Binary Bytes",
			input: []byte{0x00, 0x01, 0x02, 0xFF, 0xFE, 0xFD, 0x00},
		},
		{
			name:  "Empty Slice",
			input: []byte{},
		},
	}

	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			codec, err := Get(backend)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", backend, err)
			}

			for _, tc := range testCases {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.input)
					if err != nil {
						t.Fatalf("Compress failed: %v", err)
					}

					decompressed, err := codec.Decompress(compressed)
					if err != nil {
						t.Fatalf("Decompress failed: %v", err)
					}

					if !bytes.Equal(tc.input, decompressed) {
						t.Errorf("Round-trip failed.\nExpected: %v\nGot:      %v", tc.input, decompressed)
					}
				})
			}
		})
	}
}

func TestGetUnknownBackend(t *testing.T) {
	codec, err := Get("unknown")
	if err == nil {
		t.Error("Expected error for unknown backend, got nil")
	}
	if codec != nil {
		t.Errorf("Expected nil codec for unknown backend, got %T", codec)
	}
}

func TestCompressorFraming(t *testing.T) {
	c, err := NewCompressor("snappy", 16)
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}

	// A long repetitive payload compresses well and gets framed.
	big := bytes.Repeat([]byte("abcdefgh"), 64)
	framed, err := c.Compress(big)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if !IsFramed(framed) {
		t.Fatal("large compressible payload should be framed")
	}
	if len(framed) >= len(big) {
		t.Errorf("framed size %d should be smaller than input %d", len(framed), len(big))
	}
	if got := TryDecompress(framed); !bytes.Equal(got, big) {
		t.Error("TryDecompress did not restore the original payload")
	}

	// Below the size gate: stored raw.
	small := []byte("tiny")
	raw, err := c.Compress(small)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if IsFramed(raw) {
		t.Error("payload below the size gate should stay raw")
	}
	if !bytes.Equal(raw, small) {
		t.Error("small payload should pass through unchanged")
	}
}

func TestCompressSkipsWhenNotSmaller(t *testing.T) {
	c, err := NewCompressor("snappy", 0)
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}

	// High-entropy bytes do not compress; the raw value must come back.
	incompressible := []byte{0x8f, 0x3a, 0xc1, 0x55, 0xe2, 0x09, 0x7b, 0xd4}
	got, err := c.Compress(incompressible)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if IsFramed(got) {
		t.Error("incompressible payload should stay raw")
	}
	if !bytes.Equal(got, incompressible) {
		t.Error("incompressible payload should pass through unchanged")
	}
}

func TestTryDecompressGracefulFallback(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"Unframed Text", []byte("plain value")},
		{"Empty", []byte{}},
		{"Short Prefix Only", []byte{0x00, 0x01}},
		{"Unknown Backend", []byte{0x00, 0x01, 0x02, 0x00, 0xEE, 'x'}},
		{"Corrupt Payload", []byte{0x00, 0x01, 0x02, 0x00, BackendGzip, 0xde, 0xad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TryDecompress(tt.input); !bytes.Equal(got, tt.input) {
				t.Errorf("TryDecompress() = %v, want input unchanged", got)
			}
		})
	}
}
