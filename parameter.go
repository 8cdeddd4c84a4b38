package ivcam

import "encoding/binary"

// ParameterValue is the set of fixed-width values a parameter can carry.
type ParameterValue interface {
	~uint8 | ~uint16 | ~uint32
}

// Parameter is a fixed-size extension unit control. Its wire width is the
// size of T, encoded little endian. Values are passed through without range
// checks; the device decides what it accepts.
type Parameter[T ParameterValue] struct {
	Name     string
	Selector ExtensionUnitControlSelector
}

func (p Parameter[T]) Width() int {
	return binary.Size(T(0))
}

func (p Parameter[T]) Get(xu *ExtensionUnit) (T, error) {
	var v T
	buf := make([]byte, p.Width())
	if err := xu.Read(p.Selector, buf); err != nil {
		return v, err
	}
	_, err := binary.Decode(buf, binary.LittleEndian, &v)
	return v, err
}

func (p Parameter[T]) Set(xu *ExtensionUnit, v T) error {
	buf, err := binary.Append(nil, binary.LittleEndian, v)
	if err != nil {
		return err
	}
	return xu.Write(p.Selector, buf)
}

// The runtime depth sensor parameters.
var (
	LaserPower          = Parameter[uint8]{Name: "laser_power", Selector: DepthLaserPowerControl}
	Accuracy            = Parameter[uint8]{Name: "accuracy", Selector: DepthAccuracyControl}
	MotionRange         = Parameter[uint8]{Name: "motion_range", Selector: DepthMotionRangeControl}
	FilterOption        = Parameter[uint8]{Name: "filter_option", Selector: DepthFilterOptionControl}
	ConfidenceThreshold = Parameter[uint8]{Name: "confidence_threshold", Selector: DepthConfidenceThresholdControl}
	DynamicFPS          = Parameter[uint8]{Name: "dynamic_fps", Selector: DepthDynamicFPSControl}
)

// Parameters lists the depth sensor parameters in selector order.
func Parameters() []Parameter[uint8] {
	return []Parameter[uint8]{LaserPower, Accuracy, MotionRange, FilterOption, ConfidenceThreshold, DynamicFPS}
}

func ParameterByName(name string) (Parameter[uint8], bool) {
	for _, p := range Parameters() {
		if p.Name == name {
			return p, true
		}
	}
	return Parameter[uint8]{}, false
}

func (xu *ExtensionUnit) GetLaserPower() (uint8, error) { return LaserPower.Get(xu) }
func (xu *ExtensionUnit) SetLaserPower(v uint8) error  { return LaserPower.Set(xu, v) }

func (xu *ExtensionUnit) GetAccuracy() (uint8, error) { return Accuracy.Get(xu) }
func (xu *ExtensionUnit) SetAccuracy(v uint8) error  { return Accuracy.Set(xu, v) }

func (xu *ExtensionUnit) GetMotionRange() (uint8, error) { return MotionRange.Get(xu) }
func (xu *ExtensionUnit) SetMotionRange(v uint8) error  { return MotionRange.Set(xu, v) }

func (xu *ExtensionUnit) GetFilterOption() (uint8, error) { return FilterOption.Get(xu) }
func (xu *ExtensionUnit) SetFilterOption(v uint8) error  { return FilterOption.Set(xu, v) }

func (xu *ExtensionUnit) GetConfidenceThreshold() (uint8, error) { return ConfidenceThreshold.Get(xu) }
func (xu *ExtensionUnit) SetConfidenceThreshold(v uint8) error  { return ConfidenceThreshold.Set(xu, v) }

func (xu *ExtensionUnit) GetDynamicFPS() (uint8, error) { return DynamicFPS.Get(xu) }
func (xu *ExtensionUnit) SetDynamicFPS(v uint8) error  { return DynamicFPS.Set(xu, v) }
