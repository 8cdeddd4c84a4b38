package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kevmo314/go-ivcam"
)

var (
	devicePath string
	verbose    bool
)

func main() {
	root := &cobra.Command{
		Use:           "ivcam",
		Short:         "Inspect and configure IVCAM depth cameras",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = zap.L().Sync()
		},
	}
	root.PersistentFlags().StringVarP(&devicePath, "device", "d", "", "usbfs device path, e.g. /dev/bus/usb/001/004")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		infoCmd(),
		inspectCmd(),
		getCmd(),
		setCmd(),
		applyCmd(),
		calibrationCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(verbose bool) error {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Encoding = "console"
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

// openExtensionUnit opens the device at path and resolves its depth extension
// unit. The returned device must be closed by the caller.
func openExtensionUnit(path string) (*ivcam.Device, *ivcam.ExtensionUnit, error) {
	if path == "" {
		return nil, nil, fmt.Errorf("no device given, use --device")
	}
	dev, err := ivcam.OpenDevice(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	xu, err := dev.ExtensionUnit()
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	zap.L().Debug("resolved extension unit",
		zap.String("device", path),
		zap.Uint8("unit", xu.Descriptor.UnitID),
		zap.Stringer("guid", xu.Descriptor.GUID()))
	return dev, xu, nil
}
