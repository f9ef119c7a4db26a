package main

import (
	"fmt"
	"log"
	"strconv"

	"github.com/seqsense/pcdpicker/pick"
	"github.com/spf13/cobra"
)

var pickCmd = &cobra.Command{
	Use:   "pick <scene.yaml> <x> <y>",
	Short: "Click at a client position and print the picked entity",
	Args:  cobra.ExactArgs(3),
	RunE:  runPick,
}

var pickPointerID int

func init() {
	pickCmd.Flags().IntVar(&pickPointerID, "pointer", 0, "pointer id")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}
	var xy [2]float64
	for i, s := range args[1:] {
		if xy[i], err = strconv.ParseFloat(s, 32); err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", s, err)
		}
	}

	c, err := newConsole(doc)
	if err != nil {
		return err
	}
	defer c.Close()

	log.Printf("%d candidates, device pixel ratio %0.2f", len(pick.Candidates(doc.Root)), doc.DevicePixelRatio)
	line := fmt.Sprintf("click %f %f %d", xy[0], xy[1], pickPointerID)
	out, err := c.Run(line)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
