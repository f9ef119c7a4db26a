// Command pcdpick resolves pointer picks on a YAML scene.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/seqsense/pcdpicker/scene"
	"github.com/spf13/cobra"
)

var devicePixelRatio float32

var rootCmd = &cobra.Command{
	Use:   "pcdpick",
	Short: "Pick meshes and point cloud points of a 3D scene",
	Long: `pcdpick loads a YAML scene with meshes and point clouds and resolves
which entity lies under a pointer position, the same way an interactive
viewer does on click and hover.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Float32Var(&devicePixelRatio, "device-pixel-ratio", 0,
		"override the device pixel ratio of the scene file")
	log.SetFlags(0)
	log.SetPrefix("pcdpick: ")
}

func loadDocument(path string) (*scene.Document, error) {
	doc, err := scene.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	if devicePixelRatio > 0 {
		doc.DevicePixelRatio = devicePixelRatio
	}
	return doc, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
