package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/cosmez/valkit-go/internal/command"
	"github.com/cosmez/valkit-go/internal/output"
	"github.com/cosmez/valkit-go/resp"
)

// replCompleter implements readline.AutoCompleter for tab completion.
type replCompleter struct {
	reg *command.Registry
}

// Do returns completion candidates based on the current input.
func (c *replCompleter) Do(line []rune, pos int) (newLine [][]rune, length int) {
	text := string(line[:pos])
	// Only complete the first word
	if strings.Contains(text, " ") {
		return nil, 0
	}

	matches := c.reg.Commands(text)
	for _, match := range matches {
		// Append the remaining part of the command in uppercase, plus a space
		remaining := strings.ToUpper(match[len(text):])
		newLine = append(newLine, []rune(remaining+" "))
	}
	return newLine, len(text)
}

// replHinter implements readline.Painter and readline.Listener to display
// command hints below the input line. Paint only clears stale hints; the
// actual hint is rendered by OnChange (Listener) which fires after readline
// finishes its display update, writing directly to os.Stdout so that
// readline's cursor math is never affected.
type replHinter struct {
	reg       *command.Registry
	promptLen int
	termWidth int
}

// copyAppend returns a new slice: line + suffix runes (never mutates line's backing array).
func copyAppend(line []rune, suffix string) []rune {
	sfx := []rune(suffix)
	out := make([]rune, len(line)+len(sfx))
	copy(out, line)
	copy(out[len(line):], sfx)
	return out
}

// Paint clears any stale hint below the input line. The actual hint is
// rendered separately by OnChange after readline positions the cursor.
func (h *replHinter) Paint(line []rune, pos int) []rune {
	return copyAppend(line, "\033[J")
}

// OnChange is called by readline after each keystroke. It renders a command
// hint on the line below the input using direct terminal writes with
// save/restore cursor, so readline's internal state is unaffected.
func (h *replHinter) OnChange(line []rune, pos int, key rune) ([]rune, int, bool) {
	if len(line) == 0 {
		return nil, 0, false
	}

	text := string(line)
	parts := strings.SplitN(text, " ", 2)
	cmd := parts[0]

	// Auto-uppercase the command word when it matches a known command.
	// This fixes mixed-case after tab completion (e.g., "xrangE" → "XRANGE")
	// and gives visual feedback as the user types.
	if cmd != "" {
		upper := strings.ToUpper(cmd)
		if cmd != upper && h.reg.Get(upper) != nil {
			return []rune(upper + text[len(cmd):]), pos, true
		}
	}

	// Only show hints after a space (command name is complete)
	if len(parts) < 2 || cmd == "" {
		return nil, 0, false
	}

	spec := h.findSpec(text)
	if spec == nil {
		return nil, 0, false
	}

	hint := fmt.Sprintf("%s %s", spec.Name, spec.Arguments)
	col := h.promptLen + pos

	// Calculate how many terminal rows the hint occupies.
	hintWidth := 2 + len(hint) + 3 + len(spec.Summary) // "  <hint> - <summary>"
	hintRows := 1
	if h.termWidth > 0 {
		hintRows = (hintWidth + h.termWidth - 1) / h.termWidth
	}

	// \n\r         — newline (scrolls if on last row) + carriage return
	// \033[K       — clear to end of line
	// hint text with colors
	// \033[<n>A    — move back up by hint row count
	// \r\033[<c>C  — move to cursor column
	fmt.Fprintf(os.Stdout, "\n\r\033[K  \033[36m%s\033[0m\033[34m - %s\033[0m\033[%dA\r\033[%dC",
		hint, spec.Summary, hintRows, col)

	return nil, 0, false
}

// findSpec looks up command metadata, trying compound commands first
// (e.g., "CLIENT INFO") then falling back to the base command.
func (h *replHinter) findSpec(text string) *command.Spec {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil
	}

	base := strings.ToUpper(parts[0])

	if len(parts) >= 2 {
		compound := base + " " + strings.ToUpper(parts[1])
		if spec := h.reg.Get(compound); spec != nil {
			return spec
		}
	}

	return h.reg.Get(base)
}

// runRepl runs the interactive frame builder: each line is parsed, validated
// against its layout, and shown as the wire bytes it would dispatch.
func runRepl() {
	reg := command.NewRegistry()

	homeDir, _ := os.UserHomeDir()
	historyFile := filepath.Join(homeDir, ".valkit_history")

	prompt := "valkit> "
	tw, _, _ := term.GetSize(int(os.Stdout.Fd()))
	hinter := &replHinter{reg: reg, promptLen: len(prompt), termWidth: tw}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		AutoComplete:    &replCompleter{reg: reg},
		Painter:         hinter,
		Listener:        hinter,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	color.Cyan("Type a command to see the frame it builds. HELP <command> for usage, EXIT to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parsed, err := command.Parse(line, reg)
		if err != nil {
			color.Red("Parse error: %v", err)
			continue
		}
		if parsed.Name == "" {
			continue
		}

		handleLine(reg, parsed)

		// Refresh terminal width in case the window was resized.
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			hinter.termWidth = w
		}
	}
}

func handleLine(reg *command.Registry, parsed *command.ParsedCommand) {
	switch parsed.Name {
	case "EXIT":
		os.Exit(0)
	case "CLEAR":
		fmt.Print("\033[2J\033[H")
	case "HELP":
		handleHelp(reg, parsed)
	default:
		showFrame(parsed)
	}
}

func handleHelp(reg *command.Registry, parsed *command.ParsedCommand) {
	if len(parsed.Args) == 0 {
		color.Yellow("Usage: HELP <command>")
		return
	}
	name := strings.ToUpper(string(parsed.Args[0]))
	if len(parsed.Args) >= 2 {
		compound := name + " " + strings.ToUpper(string(parsed.Args[1]))
		if reg.Get(compound) != nil {
			name = compound
		}
	}
	spec := reg.Get(name)
	if spec == nil {
		color.Red("Unknown command: %s", name)
		return
	}
	color.Cyan("%s %s", spec.Name, spec.Arguments)
	fmt.Println(spec.Summary)
	if spec.Group != "" {
		color.Blue("Group: %s", spec.Group)
	}
}

// showFrame prints the wire bytes a parsed line encodes to, plus the decoded
// echo so compressed values and binary arguments are visible.
func showFrame(parsed *command.ParsedCommand) {
	color.Green("%s (%d args)", parsed.Name, len(parsed.Args))
	fmt.Printf("wire: %q\n", parsed.Wire)

	if len(parsed.Args) > 0 {
		elems := make([]resp.Value, len(parsed.Args))
		for i, a := range parsed.Args {
			elems[i] = resp.Binary(a)
		}
		opts := output.PrintOpts{
			Color:      useColor,
			Decompress: parsed.Codec != "",
			Newline:    true,
		}
		output.Print(os.Stdout, resp.Array(elems...), opts)
	}
}
