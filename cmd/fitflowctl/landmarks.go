package main

import (
	"fmt"
	"io"

	"github.com/2beens/fitflow/internal/training/volume"
	"github.com/2beens/fitflow/pkg"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var landmarksCmd = &cobra.Command{
	Use:   "landmarks",
	Short: "Print the weekly volume landmarks (MEV / MAV / MRV) per muscle group",
	RunE: func(cmd *cobra.Command, args []string) error {
		printLandmarks(cmd.OutOrStdout())
		return nil
	},
}

func printLandmarks(w io.Writer) {
	header := color.New(color.Bold)
	_, _ = header.Fprintf(w, "%-14s %5s %5s %5s\n", "MUSCLE GROUP", "MEV", "MAV", "MRV")
	for _, group := range volume.ValidMuscleGroups() {
		lm := volume.LandmarksFor(group)
		_, _ = fmt.Fprintf(w, "%-14s %5d %5d %5d\n", group, lm.MEV, lm.MAV, lm.MRV)
	}
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password, for fixing up user rows by hand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := pkg.HashPassword(args[0])
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

var secretBytes int

var genSecretCmd = &cobra.Command{
	Use:   "gen-secret",
	Short: "Print a random URL-safe secret, suitable for FITFLOW_JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		if secretBytes < 32 {
			return fmt.Errorf("secret must be at least 32 bytes, got %d", secretBytes)
		}
		secret, err := pkg.GenerateRandomString(secretBytes)
		if err != nil {
			return fmt.Errorf("generate secret: %w", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), secret)
		return nil
	},
}

func init() {
	genSecretCmd.Flags().IntVar(&secretBytes, "bytes", 48, "random bytes before base64 encoding")
}
