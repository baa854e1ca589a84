// Package output renders decoded values for the diagnostic CLI, in the
// familiar numbered-list style of interactive server clients.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/cosmez/valkit-go/internal/compress"
	"github.com/cosmez/valkit-go/resp"
)

// PrintOpts configures how a value is printed.
type PrintOpts struct {
	Color      bool
	Decompress bool // transparently unframe compressed payloads
	Padding    string
	Newline    bool
}

var (
	colorString  = color.New(color.FgHiBlue)
	colorInteger = color.New(color.FgHiGreen)
	colorError   = color.New(color.FgRed, color.Bold)
	colorNull    = color.New(color.FgHiBlack)
	colorIndex   = color.New(color.FgHiBlack)
)

// digitWidth returns the number of digits in n.
func digitWidth(n int) int {
	if n <= 0 {
		return 1
	}
	w := 0
	for n > 0 {
		w++
		n /= 10
	}
	return w
}

// printIndex writes an index string (e.g. " 1) "), optionally colored.
func printIndex(w io.Writer, idx string, useColor bool) {
	if useColor {
		colorIndex.Fprint(w, idx)
	} else {
		fmt.Fprint(w, idx)
	}
}

// Print renders a value tree. Containers get right-aligned indices; nested
// containers print inline under their index.
func Print(w io.Writer, v resp.Value, opts PrintOpts) {
	switch v.Kind() {
	case resp.KindArray:
		printArray(w, v.Array(), opts)
	case resp.KindMap:
		printMap(w, v.Entries(), opts)
	default:
		printScalar(w, v, opts)
	}
}

func printArray(w io.Writer, elems []resp.Value, opts PrintOpts) {
	if len(elems) == 0 {
		printColored(w, "(empty array)", colorNull, opts)
		return
	}

	digits := digitWidth(len(elems))
	idxWidth := digits + 2

	for i, e := range elems {
		idxStr := fmt.Sprintf("%*d) ", digits, i+1)
		if i > 0 {
			fmt.Fprint(w, opts.Padding)
		}
		printIndex(w, idxStr, opts.Color)

		childOpts := opts
		childOpts.Padding = opts.Padding + strings.Repeat(" ", idxWidth)
		childOpts.Newline = false
		Print(w, e, childOpts)

		// Non-empty child containers already ended with a newline.
		if e.Len() == 0 {
			fmt.Fprintln(w)
		}
	}
}

func printMap(w io.Writer, ents []resp.MapEntry, opts PrintOpts) {
	if len(ents) == 0 {
		printColored(w, "(empty map)", colorNull, opts)
		return
	}

	digits := digitWidth(len(ents))
	idxWidth := digits + 2

	for i, e := range ents {
		idxStr := fmt.Sprintf("%*d) ", digits, i+1)
		if i > 0 {
			fmt.Fprint(w, opts.Padding)
		}
		printIndex(w, idxStr, opts.Color)

		childOpts := opts
		childOpts.Padding = opts.Padding + strings.Repeat(" ", idxWidth)
		childOpts.Newline = false
		Print(w, e.Key, childOpts)
		fmt.Fprint(w, " => ")
		Print(w, e.Val, childOpts)

		if e.Val.Len() == 0 {
			fmt.Fprintln(w)
		}
	}
}

func printScalar(w io.Writer, v resp.Value, opts PrintOpts) {
	var text string
	var c *color.Color

	switch v.Kind() {
	case resp.KindNil:
		text = "(nil)"
		c = colorNull
	case resp.KindInt:
		text = fmt.Sprintf("(integer) %s", v.StringValue())
		c = colorInteger
	case resp.KindBool:
		text = fmt.Sprintf("(%s)", v.StringValue())
		c = colorInteger
	case resp.KindDouble:
		text = fmt.Sprintf("(double) %s", v.StringValue())
		c = colorInteger
	case resp.KindText:
		text = v.StringValue()
		c = colorString
	case resp.KindBinary:
		b, _ := v.Bytes()
		if opts.Decompress {
			b = compress.TryDecompress(b)
		}
		text = fmt.Sprintf("%q", b)
		c = colorString
	case resp.KindError:
		text = fmt.Sprintf("(error) %s", v.StringValue())
		c = colorError
	}

	if opts.Color && c != nil {
		c.Fprint(w, text)
	} else {
		fmt.Fprint(w, text)
	}
	if opts.Newline {
		fmt.Fprintln(w)
	}
}

func printColored(w io.Writer, text string, c *color.Color, opts PrintOpts) {
	if opts.Color {
		c.Fprint(w, text)
	} else {
		fmt.Fprint(w, text)
	}
	if opts.Newline {
		fmt.Fprintln(w)
	}
}
