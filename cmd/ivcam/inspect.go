package main

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevmo314/go-ivcam"
)

func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Interactively browse and edit depth sensor parameters",
		RunE: func(cmd *cobra.Command, args []string) error {
			dev, xu, err := openExtensionUnit(devicePath)
			if err != nil {
				return err
			}
			defer dev.Close()
			return runInspector(xu)
		},
	}
}

func runInspector(xu *ivcam.ExtensionUnit) error {
	app := tview.NewApplication()

	logText := tview.NewTextView()
	logText.SetBorder(true).SetTitle("Log")

	// route transfer failures into the log pane while the UI owns the terminal
	restore := zap.ReplaceGlobals(zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logText),
		zap.DebugLevel,
	)))
	defer restore()

	params := tview.NewList()
	params.SetBorder(true).SetTitle(fmt.Sprintf("Extension Unit %d", xu.Descriptor.UnitID))

	column := tview.NewFlex().SetDirection(tview.FlexRow).AddItem(params, 0, 1, true)

	refresh := func(i int, p ivcam.Parameter[uint8]) {
		v, err := p.Get(xu)
		if err != nil {
			params.SetItemText(i, p.Name, "error: "+err.Error())
			return
		}
		params.SetItemText(i, p.Name, fmt.Sprintf("%d (0x%02x)", v, v))
	}

	for i, p := range ivcam.Parameters() {
		params.AddItem(p.Name, "", 0, func() {
			input := tview.NewInputField()
			input.SetLabel(fmt.Sprintf("Enter %s value (0-255): ", p.Name)).
				SetFieldWidth(10).
				SetAcceptanceFunc(tview.InputFieldInteger).
				SetDoneFunc(func(key tcell.Key) {
					defer func() {
						column.RemoveItem(input)
						app.SetFocus(params)
					}()
					if key != tcell.KeyEnter {
						return
					}
					v, err := strconv.ParseUint(input.GetText(), 10, 8)
					if err != nil {
						zap.L().Warn("invalid value", zap.String("parameter", p.Name), zap.Error(err))
						return
					}
					if err := p.Set(xu, uint8(v)); err == nil {
						zap.L().Info("set parameter", zap.String("parameter", p.Name), zap.Uint64("value", v))
					}
					refresh(i, p)
				})
			column.AddItem(input, 1, 0, false)
			app.SetFocus(input)
		})
		refresh(i, p)
	}

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape && params.HasFocus() {
			app.Stop()
			return nil
		}
		if event.Rune() == 'r' && params.HasFocus() {
			for i, p := range ivcam.Parameters() {
				refresh(i, p)
			}
			return nil
		}
		return event
	})

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(column, 0, 1, true).
		AddItem(logText, 10, 0, false)
	return app.SetRoot(root, true).Run()
}
