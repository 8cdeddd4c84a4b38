package ivcam

import (
	"time"

	"github.com/kevmo314/go-ivcam/pkg/descriptors"
	"go.uber.org/zap"
)

// Transport is the control pipe of an open device. *usb.DeviceHandle
// implements it.
type Transport interface {
	ControlTransfer(requestType, request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error)
}

// controlTimeout of zero waits for the device indefinitely. Callers that need
// a bound race the call themselves.
const controlTimeout time.Duration = 0

// ExtensionUnit issues vendor control requests to a UVC extension unit.
//
// Requests are not serialized. A device handle must have at most one transfer
// in flight, so callers sharing a unit across goroutines hold their own lock.
type ExtensionUnit struct {
	transport       Transport
	InterfaceNumber uint8
	Descriptor      *descriptors.ExtensionUnitDescriptor
}

func NewExtensionUnit(transport Transport, interfaceNumber uint8, desc *descriptors.ExtensionUnitDescriptor) *ExtensionUnit {
	return &ExtensionUnit{
		transport:       transport,
		InterfaceNumber: interfaceNumber,
		Descriptor:      desc,
	}
}

// Read fills buf with the current value of control cs. buf is left untouched
// unless exactly len(buf) bytes were received.
func (xu *ExtensionUnit) Read(cs ExtensionUnitControlSelector, buf []byte) error {
	data := make([]byte, len(buf))
	if err := xu.transfer("xu_read", RequestTypeVideoInterfaceGetRequest, RequestCodeGetCur, cs, data); err != nil {
		return err
	}
	copy(buf, data)
	return nil
}

// Write sets control cs to the contents of buf.
func (xu *ExtensionUnit) Write(cs ExtensionUnitControlSelector, buf []byte) error {
	return xu.transfer("xu_write", RequestTypeVideoInterfaceSetRequest, RequestCodeSetCur, cs, buf)
}

func (xu *ExtensionUnit) transfer(op string, rt RequestType, rc RequestCode, cs ExtensionUnitControlSelector, data []byte) error {
	n, err := xu.transport.ControlTransfer(
		uint8(rt),
		uint8(rc),
		uint16(cs)<<8, /* wValue: control selector on the high byte */
		uint16(xu.Descriptor.UnitID)<<8|uint16(xu.InterfaceNumber), /* wIndex */
		data,
		controlTimeout,
	)
	status := n
	switch {
	case err != nil:
		if status >= 0 {
			status = transportStatus(err)
		}
	case n < 0:
		err = ErrTransferFailed
	case n != len(data):
		err = ErrShortTransfer
	default:
		return nil
	}

	zap.L().Error("extension unit control transfer failed",
		zap.String("op", op),
		zap.Stringer("control", cs),
		zap.Uint8("unit", xu.Descriptor.UnitID),
		zap.Int("status", status),
		zap.Error(err))
	return &DeviceError{Op: op, Selector: cs, Status: status, Err: err}
}
