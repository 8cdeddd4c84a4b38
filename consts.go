package ivcam

import "fmt"

type RequestType uint8

const (
	RequestTypeVideoInterfaceSetRequest RequestType = 0b00100001
	RequestTypeVideoInterfaceGetRequest RequestType = 0b10100001
)

type RequestCode uint8

const (
	RequestCodeSetCur RequestCode = 0x01
	RequestCodeGetCur RequestCode = 0x81
)

// ExtensionUnitControlSelector addresses a control on the IVCAM depth
// extension unit.
type ExtensionUnitControlSelector uint8

const (
	DepthLaserPowerControl          ExtensionUnitControlSelector = 0x01
	DepthAccuracyControl            ExtensionUnitControlSelector = 0x02
	DepthMotionRangeControl         ExtensionUnitControlSelector = 0x03
	DepthErrorControl               ExtensionUnitControlSelector = 0x04
	DepthFilterOptionControl        ExtensionUnitControlSelector = 0x05
	DepthConfidenceThresholdControl ExtensionUnitControlSelector = 0x06
	DepthDynamicFPSControl          ExtensionUnitControlSelector = 0x07
)

func (cs ExtensionUnitControlSelector) String() string {
	switch cs {
	case DepthLaserPowerControl:
		return "laser_power"
	case DepthAccuracyControl:
		return "accuracy"
	case DepthMotionRangeControl:
		return "motion_range"
	case DepthErrorControl:
		return "error"
	case DepthFilterOptionControl:
		return "filter_option"
	case DepthConfidenceThresholdControl:
		return "confidence_threshold"
	case DepthDynamicFPSControl:
		return "dynamic_fps"
	}
	return fmt.Sprintf("control(0x%02x)", uint8(cs))
}
