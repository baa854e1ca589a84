// Package tui implements an interactive browser for decoded value trees.
// Sequences and mappings expand into tree nodes; selecting a node renders
// its subtree in the detail pane.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/cosmez/valkit-go/internal/output"
	"github.com/cosmez/valkit-go/resp"
)

// appName is shown in the detail pane border title.
const appName = "valkit"

// contentTitle formats a pane title with the app name prefix.
// e.g. contentTitle("Detail") → " valkit | Detail "
func contentTitle(subtitle string) string {
	if subtitle == "" {
		return " " + appName + " "
	}
	return " " + appName + " | " + subtitle + " "
}

// App holds all browser state.
type App struct {
	app        *tview.Application
	layout     *tview.Flex
	tree       *tview.TreeView
	treePane   *tview.Flex
	detail     *tview.TextView
	detailPane *tview.Flex
	ansiWriter io.Writer // tview.ANSIWriter(detail) — translates ANSI escapes to tview color tags

	value resp.Value
	opts  output.PrintOpts

	focusOrder []tview.Primitive
	focusIndex int
}

// newApp creates and initializes the browser with all widgets. Separated
// from Run() for testability (smoke tests can build the app without calling
// Run, which takes over the terminal).
func newApp(v resp.Value, opts output.PrintOpts) *App {
	a := &App{
		app:   tview.NewApplication(),
		value: v,
		opts:  opts,
	}

	// --- Left pane: value tree ---
	root := buildNode(v, "reply", opts)
	root.SetExpanded(true)

	a.tree = tview.NewTreeView().
		SetRoot(root).
		SetCurrentNode(root)

	a.treePane = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.tree, 0, 1, true)
	a.treePane.SetBorder(true).SetTitle(fmt.Sprintf(" Tree [%d] ", countNodes(v)))

	// --- Right pane: rendered detail ---
	a.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)

	a.detailPane = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.detail, 0, 1, false)
	a.detailPane.SetBorder(true).SetTitle(contentTitle("Detail"))

	a.ansiWriter = tview.ANSIWriter(a.detail)

	// --- Compose layout ---
	a.layout = tview.NewFlex().
		AddItem(a.treePane, 0, 4, true).
		AddItem(a.detailPane, 0, 6, false)

	// Selecting a node renders its subtree in the detail pane; Enter also
	// toggles expansion for container nodes.
	a.tree.SetSelectedFunc(func(node *tview.TreeNode) {
		if ref, ok := node.GetReference().(resp.Value); ok {
			a.showDetail(ref, labelText(node))
		}
		if len(node.GetChildren()) > 0 {
			node.SetExpanded(!node.IsExpanded())
		}
	})
	a.tree.SetChangedFunc(func(node *tview.TreeNode) {
		if ref, ok := node.GetReference().(resp.Value); ok {
			a.showDetail(ref, labelText(node))
		}
	})

	// --- Focus cycling ---
	a.focusOrder = []tview.Primitive{a.tree, a.detail}
	a.focusIndex = 0

	a.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			a.focusIndex = (a.focusIndex + 1) % len(a.focusOrder)
			a.app.SetFocus(a.focusOrder[a.focusIndex])
			a.highlightFocusedPane()
			return nil
		case tcell.KeyEscape:
			a.app.Stop()
			return nil
		}
		if event.Rune() == 'q' {
			a.app.Stop()
			return nil
		}
		return event
	})

	a.showDetail(v, "reply")
	a.highlightFocusedPane()

	return a
}

// showDetail renders a subtree into the detail pane.
func (a *App) showDetail(v resp.Value, title string) {
	a.detail.Clear()
	renderOpts := a.opts
	renderOpts.Color = true
	renderOpts.Newline = true
	output.Print(a.ansiWriter, v, renderOpts)
	a.detail.ScrollToBeginning()
	a.detailPane.SetTitle(contentTitle(title))
}

// highlightFocusedPane updates border colors to indicate which pane has focus.
func (a *App) highlightFocusedPane() {
	const (
		defaultColor   = tcell.ColorWhite
		highlightColor = tcell.ColorAqua
	)

	a.treePane.SetBorderColor(defaultColor)
	a.detailPane.SetBorderColor(defaultColor)

	if a.focusIndex == 0 {
		a.treePane.SetBorderColor(highlightColor)
	} else {
		a.detailPane.SetBorderColor(highlightColor)
	}
}

// buildNode converts a value into a tree node, recursing into containers.
// Container children keep their index (or map key) in the label so the tree
// reads the same way the flat printed form does.
func buildNode(v resp.Value, label string, opts output.PrintOpts) *tview.TreeNode {
	node := tview.NewTreeNode(label + ": " + nodeText(v, opts)).
		SetReference(v).
		SetExpanded(false)

	switch v.Kind() {
	case resp.KindArray:
		node.SetColor(tcell.ColorYellow)
		for i, e := range v.Array() {
			node.AddChild(buildNode(e, fmt.Sprintf("%d", i+1), opts))
		}
	case resp.KindMap:
		node.SetColor(tcell.ColorYellow)
		for _, e := range v.Entries() {
			node.AddChild(buildNode(e.Val, e.Key.StringValue(), opts))
		}
	case resp.KindError:
		node.SetColor(tcell.ColorRed)
	}
	return node
}

// nodeText is the one-line summary shown next to a node label.
func nodeText(v resp.Value, opts output.PrintOpts) string {
	switch v.Kind() {
	case resp.KindArray:
		return fmt.Sprintf("array (%d)", v.Len())
	case resp.KindMap:
		return fmt.Sprintf("map (%d)", v.Len())
	default:
		// The flat scalar rendering, uncolored and truncated for the tree.
		var buf strings.Builder
		output.Print(&buf, v, output.PrintOpts{Decompress: opts.Decompress})
		s := buf.String()
		if len(s) > 64 {
			s = s[:61] + "..."
		}
		return s
	}
}

// labelText strips the summary suffix back off a node's label for titles.
func labelText(node *tview.TreeNode) string {
	text := node.GetText()
	for i := 0; i < len(text); i++ {
		if text[i] == ':' {
			return text[:i]
		}
	}
	return text
}

// countNodes counts the values in a tree, containers included.
func countNodes(v resp.Value) int {
	n := 1
	for _, e := range v.Array() {
		n += countNodes(e)
	}
	for _, e := range v.Entries() {
		n += countNodes(e.Val)
	}
	return n
}

// Run starts the browser over a decoded value. This is the public entry
// point called from the CLI's browse command.
func Run(v resp.Value, opts output.PrintOpts) error {
	// Force color output — fatih/color auto-detects no-terminal and disables
	// colors, but tview.ANSIWriter needs ANSI codes to translate into tview
	// color tags.
	color.NoColor = false

	a := newApp(v, opts)
	return a.app.EnableMouse(true).SetRoot(a.layout, true).SetFocus(a.tree).Run()
}
