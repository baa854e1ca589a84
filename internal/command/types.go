package command

// Layout identifies the positional argument family a command belongs to.
// The REPL uses it to validate count-prefixed key blocks before a dry-run
// encode.
type Layout int

const (
	// LayoutPlain takes free-form arguments.
	LayoutPlain Layout = iota
	// LayoutNumkeys is [numkeys, key..., trailing...].
	LayoutNumkeys
	// LayoutDestNumkeys is [destination, numkeys, key..., trailing...].
	LayoutDestNumkeys
	// LayoutTimeoutNumkeys is [timeout, numkeys, key..., trailing...].
	LayoutTimeoutNumkeys
)

// ParsedCommand is a command line parsed and encoded for dispatch.
type ParsedCommand struct {
	Text  string   // original input text
	Name  string   // command name, empty when the line was blank
	Args  [][]byte // argument tokens after the name
	Wire  []byte   // wire-encoded command, ready for a raw transport
	Codec string   // compression backend from a "#:codec" suffix, empty if none
	Spec  *Spec    // registry metadata, nil for unknown commands
}

// Spec describes one known command: its summary and argument hint for the
// REPL, and its positional layout for validation.
type Spec struct {
	Name      string
	Summary   string
	Arguments string
	Group     string
	Layout    Layout
}
