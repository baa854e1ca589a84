package resp

import (
	"bytes"
	"fmt"
	"strings"
)

// EncodeCommand renders a command and its argument tokens as a RESP array
// of bulk strings. Bulk strings are length-prefixed, so every token is
// binary-safe regardless of content. Multi-word command names ("CONFIG
// GET") contribute one token per word.
func EncodeCommand(name string, args [][]byte) []byte {
	words := strings.Fields(name)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "*%d\r\n", len(words)+len(args))
	for _, w := range words {
		writeBulk(&buf, []byte(w))
	}
	for _, a := range args {
		writeBulk(&buf, a)
	}
	return buf.Bytes()
}

func writeBulk(buf *bytes.Buffer, b []byte) {
	fmt.Fprintf(buf, "$%d\r\n", len(b))
	buf.Write(b)
	buf.WriteString("\r\n")
}
