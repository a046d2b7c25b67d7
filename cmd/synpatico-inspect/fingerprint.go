package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/synpatico-dev/synpatico"
)

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint [file]",
	Short: "Compute the StructureId of a JSON document",
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
		newIDOnCollision, _ := cmd.Flags().GetBool("collision-mode")
		opts := synpatico.FingerprintOptions{NewIDOnCollision: newIDOnCollision}
		if newIDOnCollision {
			opts.Counters = synpatico.NewCollisionCounter()
		}
		res, err := synpatico.Fingerprint(v, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", res.ID)
		if newIDOnCollision || res.CollisionCount > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "levels=%d collisionCount=%d\n", res.Levels, res.CollisionCount)
		}
		return nil
	},
}

func init() {
	fingerprintCmd.Flags().Bool("collision-mode", false, "replace the L0 part with the collision counter; each run starts a fresh counter, so L0 is always 0")
	rootCmd.AddCommand(fingerprintCmd)
}
