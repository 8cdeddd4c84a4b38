package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevmo314/go-ivcam"
	"github.com/kevmo314/go-ivcam/pkg/descriptors"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the video control descriptors and extension units",
		RunE: func(cmd *cobra.Command, args []string) error {
			if devicePath == "" {
				return fmt.Errorf("no device given, use --device")
			}
			dev, err := ivcam.OpenDevice(devicePath)
			if err != nil {
				return err
			}
			defer dev.Close()

			info, err := dev.DeviceInfo()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Video control interface %d (UVC %s)\n", info.InterfaceNumber, descriptors.BinaryCodedDecimal(info.UVC))
			for _, ci := range info.ControlInterfaces {
				fmt.Fprintf(out, "  %s\n", controlInterfaceTitle(ci))
			}
			for _, eud := range info.ExtensionUnits {
				marker := ""
				if eud.GUID() == ivcam.DepthExtensionUnitGUID {
					marker = " (depth)"
				}
				fmt.Fprintf(out, "Extension unit %d%s\n  GUID: %s\n  Controls:", eud.UnitID, marker, eud.GUID())
				for cs := 1; cs <= int(eud.NumControls); cs++ {
					if eud.IsControlSupported(uint8(cs)) {
						fmt.Fprintf(out, " %s", ivcam.ExtensionUnitControlSelector(cs))
					}
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}
}

func controlInterfaceTitle(ci descriptors.ControlInterface) string {
	switch ci := ci.(type) {
	case *descriptors.HeaderDescriptor:
		return fmt.Sprintf("Header (v%s)", ci.UVCVersionString())
	case *descriptors.InputTerminalDescriptor:
		return fmt.Sprintf("Input Terminal %d", ci.TerminalID)
	case *descriptors.ProcessingUnitDescriptor:
		return fmt.Sprintf("Processing Unit %d", ci.UnitID)
	case *descriptors.ExtensionUnitDescriptor:
		return fmt.Sprintf("Extension Unit %d", ci.UnitID)
	case *descriptors.UnknownControlDescriptor:
		return fmt.Sprintf("Unknown (subtype 0x%02x)", ci.Subtype)
	default:
		return "Unknown"
	}
}
