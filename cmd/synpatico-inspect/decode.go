package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synpatico-dev/synpatico"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Decode a snapshot produced by \"encode\" back to plain JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		raw, err := readBytes(path)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		contentType, ok := formatContentType[format]
		if !ok {
			return fmt.Errorf("unknown --format %q", format)
		}
		snap, err := newRegistry().LoadSnapshot(contentType, raw)
		if err != nil {
			return err
		}
		if snap.Packet == nil {
			return fmt.Errorf("snapshot has no packet to decode")
		}

		v, err := synpatico.Decode(*snap.Packet, snap.Structure)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(synpatico.ValueToAny(v), "", "  ")
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(out, '\n'))
		return err
	},
}

func init() {
	decodeCmd.Flags().String("format", "json", "snapshot format to parse: json, yaml, msgpack, xml, bson")
	rootCmd.AddCommand(decodeCmd)
}
