package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kevmo314/go-ivcam"
	"github.com/kevmo314/go-ivcam/internal/config"
)

func parameterNames() []string {
	var names []string
	for _, p := range ivcam.Parameters() {
		names = append(names, p.Name)
	}
	return names
}

func lookupParameter(name string) (ivcam.Parameter[uint8], error) {
	p, ok := ivcam.ParameterByName(name)
	if !ok {
		return p, fmt.Errorf("unknown parameter %q, expected one of %v", name, parameterNames())
	}
	return p, nil
}

func getCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get [parameter...]",
		Short:     "Read depth sensor parameters",
		ValidArgs: parameterNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = parameterNames()
			}
			params := make([]ivcam.Parameter[uint8], 0, len(args))
			for _, name := range args {
				p, err := lookupParameter(name)
				if err != nil {
					return err
				}
				params = append(params, p)
			}

			dev, xu, err := openExtensionUnit(devicePath)
			if err != nil {
				return err
			}
			defer dev.Close()

			for _, p := range params {
				v, err := p.Get(xu)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %d\n", p.Name, v)
			}
			return nil
		},
	}
}

func setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <parameter> <value>",
		Short: "Write a depth sensor parameter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := lookupParameter(args[0])
			if err != nil {
				return err
			}
			v, err := strconv.ParseUint(args[1], 0, 8)
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[1], err)
			}

			dev, xu, err := openExtensionUnit(devicePath)
			if err != nil {
				return err
			}
			defer dev.Close()

			return p.Set(xu, uint8(v))
		},
	}
}

func applyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "apply <preset.toml>",
		Short: "Write every parameter listed in a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, err := config.Load(args[0])
			if err != nil {
				return err
			}
			settings, err := preset.Settings()
			if err != nil {
				return err
			}
			for _, s := range settings {
				if _, err := lookupParameter(s.Name); err != nil {
					return err
				}
			}

			path := devicePath
			if path == "" {
				path = preset.Device
			}
			dev, xu, err := openExtensionUnit(path)
			if err != nil {
				return err
			}
			defer dev.Close()

			for _, s := range settings {
				p, _ := ivcam.ParameterByName(s.Name)
				if err := p.Set(xu, s.Value); err != nil {
					return err
				}
				zap.L().Info("applied parameter", zap.String("name", s.Name), zap.Uint8("value", s.Value))
			}
			return nil
		},
	}
}
