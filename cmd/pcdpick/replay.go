package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <scene.yaml> <script>",
	Short: "Replay a pointer event script and print hover and pick results",
	Long: `Replay reads pointer commands, one per line, and prints every result
reported by the picker. Use "-" to read the script from stdin.

Commands:
  move <x> <y> [id]
  down <x> <y> [id]
  up <x> <y> [id]
  click <x> <y> [id]
  viewport <left> <top> <width> <height>
  attach
  detach`,
	Args: cobra.ExactArgs(2),
	RunE: runReplay,
}

var replayKeepGoing bool

func init() {
	replayCmd.Flags().BoolVarP(&replayKeepGoing, "keep-going", "k", false, "continue after a failed command")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	var r io.Reader = cmd.InOrStdin()
	if args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}

	c, err := newConsole(doc)
	if err != nil {
		return err
	}
	defer c.Close()

	return replay(c, r, cmd.OutOrStdout())
}

func replay(c *console, r io.Reader, w io.Writer) error {
	s := bufio.NewScanner(r)
	var n int
	for s.Scan() {
		n++
		out, err := c.Run(s.Text())
		if err != nil {
			if !replayKeepGoing {
				return fmt.Errorf("line %d: %w", n, err)
			}
			log.Printf("line %d: %v", n, err)
			continue
		}
		if out != "" {
			fmt.Fprintln(w, out)
		}
	}
	return s.Err()
}
