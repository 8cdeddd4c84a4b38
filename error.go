package ivcam

import (
	"errors"
	"fmt"
	"syscall"

	usb "github.com/kevmo314/go-usb"
)

var (
	ErrNoExtensionUnit  = errors.New("extension unit not found")
	ErrNoVideoControl   = errors.New("video control interface not found")
	ErrTransferFailed   = errors.New("control transfer failed")
	ErrShortTransfer    = errors.New("short control transfer")
	ErrCalibrationFetch = errors.New("failed to fetch calibration")
)

// Status codes reported in DeviceError. They match the libusb error codes.
const (
	StatusIO           = -1
	StatusInvalidParam = -2
	StatusAccess       = -3
	StatusNoDevice     = -4
	StatusNotFound     = -5
	StatusBusy         = -6
	StatusTimeout      = -7
	StatusOverflow     = -8
	StatusPipe         = -9
	StatusInterrupted  = -10
	StatusNoMem        = -11
	StatusNotSupported = -12
)

var errnoStatus = map[syscall.Errno]int{
	syscall.EINVAL:     StatusInvalidParam,
	syscall.EACCES:     StatusAccess,
	syscall.EPERM:      StatusAccess,
	syscall.ENODEV:     StatusNoDevice,
	syscall.ESHUTDOWN:  StatusNoDevice,
	syscall.ENOENT:     StatusNotFound,
	syscall.EBUSY:      StatusBusy,
	syscall.ETIMEDOUT:  StatusTimeout,
	syscall.EOVERFLOW:  StatusOverflow,
	syscall.EPIPE:      StatusPipe,
	syscall.EINTR:      StatusInterrupted,
	syscall.ENOMEM:     StatusNoMem,
	syscall.ENOSYS:     StatusNotSupported,
	syscall.EOPNOTSUPP: StatusNotSupported,
}

// transportStatus maps a transport error to a status code. usbfs reports
// failures as an errno, which is translated the way libusb does it.
// Anything unrecognized is StatusIO.
func transportStatus(err error) int {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if status, ok := errnoStatus[errno]; ok {
			return status
		}
		return StatusIO
	}
	if errors.Is(err, usb.ErrDeviceNotFound) {
		return StatusNoDevice
	}
	return StatusIO
}

// DeviceError reports an extension unit transfer that did not complete.
type DeviceError struct {
	Op       string
	Selector ExtensionUnitControlSelector
	Status   int
	Err      error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.Selector, e.Status, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
