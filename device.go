package ivcam

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	usb "github.com/kevmo314/go-usb"

	"github.com/kevmo314/go-ivcam/pkg/descriptors"
)

// DepthExtensionUnitGUID identifies the IVCAM depth control extension unit.
var DepthExtensionUnitGUID = uuid.MustParse("a55751a1-f3c5-4a5e-8d5a-6854b8fa2716")

type Device struct {
	handle *usb.DeviceHandle
	file   *os.File
	closed *atomic.Bool
}

// NewDevice wraps an already opened usbfs file descriptor.
func NewDevice(fd uintptr) (*Device, error) {
	handle, err := usb.WrapSysDevice(int(fd))
	if err != nil {
		return nil, err
	}
	return &Device{handle: handle, closed: &atomic.Bool{}}, nil
}

// OpenDevice opens a usbfs device node such as /dev/bus/usb/001/004.
func OpenDevice(path string) (*Device, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	dev, err := NewDevice(f.Fd())
	if err != nil {
		f.Close()
		return nil, err
	}
	dev.file = f
	return dev, nil
}

func (d *Device) Close() error {
	if d.closed.Swap(true) {
		return nil
	}
	err := d.handle.Close()
	if d.file != nil {
		if ferr := d.file.Close(); err == nil {
			err = ferr
		}
	}
	return err
}

type DeviceInfo struct {
	InterfaceNumber   uint8
	UVC               uint16
	ControlInterfaces []descriptors.ControlInterface
	ExtensionUnits    []*descriptors.ExtensionUnitDescriptor
}

func (d *Device) DeviceInfo() (*DeviceInfo, error) {
	configDesc, err := d.handle.GetActiveConfigDescriptor()
	if err != nil {
		return nil, fmt.Errorf("failed to get config descriptor: %w", err)
	}

	// scan for the video control interface
	for _, iface := range configDesc.Interfaces {
		if len(iface.AltSettings) == 0 {
			continue
		}
		alt := iface.AltSettings[0]
		if descriptors.ClassCode(alt.InterfaceClass) == descriptors.ClassCodeVideo &&
			descriptors.SubclassCode(alt.InterfaceSubClass) == descriptors.SubclassCodeVideoControl {
			return ParseDeviceInfo(uint8(alt.InterfaceNumber), alt.Extra)
		}
	}
	return nil, ErrNoVideoControl
}

// ParseDeviceInfo decodes the class-specific descriptors of the video control
// interface ifnum.
func ParseDeviceInfo(ifnum uint8, extra []byte) (*DeviceInfo, error) {
	descs, err := descriptors.ParseControlInterfaces(extra)
	if err != nil {
		return nil, err
	}
	info := &DeviceInfo{InterfaceNumber: ifnum, ControlInterfaces: descs}
	for _, ci := range descs {
		switch ci := ci.(type) {
		case *descriptors.HeaderDescriptor:
			info.UVC = ci.UVC
		case *descriptors.ExtensionUnitDescriptor:
			info.ExtensionUnits = append(info.ExtensionUnits, ci)
		}
	}
	return info, nil
}

// ExtensionUnit binds the depth extension unit to transport. A unit carrying
// DepthExtensionUnitGUID is preferred, otherwise the first unit is used.
func (info *DeviceInfo) ExtensionUnit(transport Transport) (*ExtensionUnit, error) {
	if len(info.ExtensionUnits) == 0 {
		return nil, ErrNoExtensionUnit
	}
	desc := info.ExtensionUnits[0]
	for _, eud := range info.ExtensionUnits {
		if eud.GUID() == DepthExtensionUnitGUID {
			desc = eud
			break
		}
	}
	return NewExtensionUnit(transport, info.InterfaceNumber, desc), nil
}

// ExtensionUnit resolves the depth extension unit of the device.
func (d *Device) ExtensionUnit() (*ExtensionUnit, error) {
	info, err := d.DeviceInfo()
	if err != nil {
		return nil, err
	}
	return info.ExtensionUnit(d.handle)
}
