package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevmo314/go-ivcam"
	"github.com/kevmo314/go-ivcam/pkg/calibration"
)

func calibrationCmd() *cobra.Command {
	var blobPath string
	cmd := &cobra.Command{
		Use:   "calibration",
		Short: "Derive F200 intrinsics and extrinsics from a calibration blob",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := calibration.OpenBlobFile(blobPath)
			if err != nil {
				return err
			}
			cam, err := ivcam.NewCamera(src, ivcam.F200Modes())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(cam.Calibration()); err != nil {
				return fmt.Errorf("failed to encode calibration: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&blobPath, "blob", "b", "", "raw 448-byte calibration parameter table")
	_ = cmd.MarkFlagRequired("blob")
	return cmd
}
