package compress

// Frame layout: 3 magic bytes, 1 format version byte, 1 backend id byte,
// then the compressed payload. The magic prefix starts with a zero byte so
// it can never collide with printable text values.
var magicPrefix = []byte{0x00, 0x01, 0x02}

const (
	formatVersion = 0x00
	headerSize    = 5
)

// Compressor applies a codec with a size gate. Values shorter than MinSize
// are stored raw, as is any value the codec fails to shrink; both cases are
// detected on read by the absence of the frame header.
type Compressor struct {
	codec   Codec
	minSize int
}

// NewCompressor builds a compressor over the named backend. A non-positive
// minSize compresses everything.
func NewCompressor(backend string, minSize int) (*Compressor, error) {
	codec, err := Get(backend)
	if err != nil {
		return nil, err
	}
	return &Compressor{codec: codec, minSize: minSize}, nil
}

// Compress frames and compresses data when doing so pays off. The returned
// slice is the original data when the value is below the size gate or the
// compressed frame would not be smaller.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) < c.minSize {
		return data, nil
	}
	compressed, err := c.codec.Compress(data)
	if err != nil {
		return nil, err
	}
	if headerSize+len(compressed) >= len(data) {
		return data, nil
	}
	out := make([]byte, 0, headerSize+len(compressed))
	out = append(out, magicPrefix...)
	out = append(out, formatVersion, c.codec.ID())
	out = append(out, compressed...)
	return out, nil
}

// IsFramed reports whether data carries the compression frame header.
func IsFramed(data []byte) bool {
	return len(data) >= headerSize &&
		data[0] == magicPrefix[0] &&
		data[1] == magicPrefix[1] &&
		data[2] == magicPrefix[2] &&
		data[3] == formatVersion
}

// TryDecompress decompresses framed data and passes unframed data through
// unchanged. A frame with an unknown backend or a corrupt payload also
// passes through raw: values written before compression was enabled, or by
// a peer with a different configuration, must stay readable.
func TryDecompress(data []byte) []byte {
	if !IsFramed(data) {
		return data
	}
	codec, err := byID(data[4])
	if err != nil {
		return data
	}
	out, err := codec.Decompress(data[headerSize:])
	if err != nil {
		return data
	}
	return out
}
