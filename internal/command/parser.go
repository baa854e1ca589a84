package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cosmez/valkit-go/internal/compress"
	"github.com/cosmez/valkit-go/resp"
)

// Parse turns a command line into a dispatch-ready command: modifier
// stripped, tokens split, layout validated, wire bytes built.
func Parse(input string, reg *Registry) (*ParsedCommand, error) {
	if strings.TrimSpace(input) == "" {
		return &ParsedCommand{}, nil
	}

	parsed := &ParsedCommand{Text: input}

	// Strip a "#:codec" suffix before tokenizing so the codec name never
	// ends up as an argument.
	if idx := strings.LastIndex(input, "#:"); idx != -1 {
		parsed.Codec = strings.TrimSpace(input[idx+2:])
		input = input[:idx]
	}

	tokens := tokenize(input)
	if len(tokens) == 0 {
		return parsed, nil
	}

	parsed.Name = strings.ToUpper(tokens[0])
	rest := tokens[1:]

	if reg != nil {
		parsed.Spec = reg.Get(parsed.Name)
		// Compound commands ("CONFIG GET") consume the first argument.
		if len(rest) > 0 {
			compound := parsed.Name + " " + strings.ToUpper(rest[0])
			if spec := reg.Get(compound); spec != nil {
				parsed.Name = compound
				parsed.Spec = spec
				rest = rest[1:]
			}
		}
	}

	parsed.Args = make([][]byte, len(rest))
	for i, tok := range rest {
		parsed.Args[i] = []byte(tok)
	}

	// SET value compression, requested per command with "#:codec".
	if parsed.Codec != "" && parsed.Name == "SET" && len(parsed.Args) >= 2 {
		comp, err := compress.NewCompressor(parsed.Codec, 0)
		if err != nil {
			return nil, err
		}
		framed, err := comp.Compress(parsed.Args[1])
		if err != nil {
			return nil, fmt.Errorf("failed to compress value: %w", err)
		}
		parsed.Args[1] = framed
	}

	if parsed.Spec != nil {
		if err := validateLayout(parsed.Spec.Layout, parsed.Args); err != nil {
			return nil, fmt.Errorf("%s: %w", parsed.Name, err)
		}
	}

	parsed.Wire = resp.EncodeCommand(parsed.Name, parsed.Args)
	return parsed, nil
}

// validateLayout checks that a count-prefixed key block is internally
// consistent before anything reaches a transport.
func validateLayout(layout Layout, args [][]byte) error {
	countIdx := -1
	switch layout {
	case LayoutNumkeys:
		countIdx = 0
	case LayoutDestNumkeys, LayoutTimeoutNumkeys:
		countIdx = 1
	default:
		return nil
	}
	if len(args) <= countIdx {
		return fmt.Errorf("missing numkeys token")
	}
	n, err := strconv.Atoi(string(args[countIdx]))
	if err != nil || n < 0 {
		return fmt.Errorf("invalid numkeys token %q", args[countIdx])
	}
	if len(args) < countIdx+1+n {
		return fmt.Errorf("numkeys is %d but only %d arguments follow", n, len(args)-countIdx-1)
	}
	return nil
}
