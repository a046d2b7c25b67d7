package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synpatico-dev/synpatico"
	"github.com/synpatico-dev/synpatico/codec"
)

var shapeCmd = &cobra.Command{
	Use:   "shape [file]",
	Short: "Extract and dump the Shape tree of a JSON document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		v, err := readValue(path)
		if err != nil {
			return err
		}
		shape, err := synpatico.ExtractShape(v, synpatico.ShapeOptions{})
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		contentType, ok := formatContentType[format]
		if !ok {
			return fmt.Errorf("unknown --format %q", format)
		}
		out, err := newRegistry().DumpSnapshot(contentType, codec.Snapshot{
			Structure: synpatico.StructureDefinition{Shape: shape},
		})
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	},
}

func init() {
	shapeCmd.Flags().String("format", "json", "output format: json, yaml, msgpack, xml, bson")
	rootCmd.AddCommand(shapeCmd)
}
