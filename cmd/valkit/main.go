package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cosmez/valkit-go/internal/output"
	"github.com/cosmez/valkit-go/internal/tui"
	"github.com/cosmez/valkit-go/resp"
)

var (
	version = "dev" // set at build time via -ldflags "-X main.version=..."

	useColor   bool
	decompress bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "valkit",
		Short:   "Inspect wire protocol payloads and build command frames",
		Version: version,
		Run: func(cmd *cobra.Command, args []string) {
			runRepl()
		},
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode protocol frames from a file or stdin and print them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closer, err := openInput(args)
			if err != nil {
				return err
			}
			defer closer()
			return decodeAll(r)
		},
	}

	browseCmd := &cobra.Command{
		Use:   "browse [file]",
		Short: "Decode a protocol frame and explore it interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, closer, err := openInput(args)
			if err != nil {
				return err
			}
			defer closer()

			v, err := resp.Decode(r)
			if err != nil {
				return fmt.Errorf("decode failed: %w", err)
			}
			return tui.Run(v, output.PrintOpts{Decompress: decompress})
		},
	}

	rootCmd.PersistentFlags().BoolVar(&useColor, "color", true, "Colorize printed values")
	rootCmd.PersistentFlags().BoolVar(&decompress, "decompress", false, "Transparently unframe compressed payloads")
	rootCmd.AddCommand(decodeCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openInput returns a buffered reader over the file argument, or stdin when
// no argument is given.
func openInput(args []string) (*bufio.Reader, func(), error) {
	if len(args) == 0 {
		return bufio.NewReader(os.Stdin), func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, err
	}
	return bufio.NewReader(f), func() { f.Close() }, nil
}

// decodeAll decodes frames until the stream runs out, printing each one.
func decodeAll(r *bufio.Reader) error {
	opts := output.PrintOpts{
		Color:      useColor,
		Decompress: decompress,
		Newline:    true,
	}

	n := 0
	for {
		v, err := resp.Decode(r)
		if errors.Is(err, io.EOF) {
			if n == 0 {
				return fmt.Errorf("no frames in input")
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("decode failed after %d frames: %w", n, err)
		}
		n++
		output.Print(os.Stdout, v, opts)
	}
}
