package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synpatico-dev/synpatico"
	"github.com/synpatico-dev/synpatico/codec"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Learn a JSON document's structure and dump the resulting snapshot",
	Long: `encode fingerprints and shapes a JSON document exactly as the
agent's LEARN step would, then packages it as a Snapshot (the learned
StructureDefinition plus the values-only Packet for this document) in
the format named by --format. The snapshot round-trips through "decode".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		v, err := readValue(path)
		if err != nil {
			return err
		}

		engine := synpatico.NewEngine()
		def, err := engine.Learn(v)
		if err != nil {
			return err
		}
		packet, err := engine.Encode(v)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		contentType, ok := formatContentType[format]
		if !ok {
			return fmt.Errorf("unknown --format %q", format)
		}
		out, err := newRegistry().DumpSnapshot(contentType, codec.Snapshot{
			Structure: def,
			Packet:    &packet,
		})
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	},
}

func init() {
	encodeCmd.Flags().String("format", "json", "snapshot format: json, yaml, msgpack, xml, bson")
	rootCmd.AddCommand(encodeCmd)
}
