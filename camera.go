package ivcam

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kevmo314/go-ivcam/pkg/calibration"
)

// Camera is an IVCAM camera instance. Its raw calibration is fetched from the
// source at most once and shared by everything derived from it.
type Camera struct {
	source calibration.Source
	modes  []Mode
	info   *calibration.Info

	mu     sync.Mutex
	coeffs *calibration.Coefficients
}

// NewCamera retrieves the calibration for modes and fails if the device could
// not provide it.
func NewCamera(source calibration.Source, modes []Mode) (*Camera, error) {
	c := &Camera{source: source, modes: modes}
	info, err := c.retrieveCalibration()
	if err != nil {
		return nil, err
	}
	c.info = info
	return c, nil
}

// Coefficients returns the raw calibration, fetching it on first use. A failed
// fetch is not cached.
func (c *Camera) Coefficients() (*calibration.Coefficients, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.coeffs != nil {
		return c.coeffs, nil
	}
	coeffs, err := c.source.Parameters()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCalibrationFetch, err)
	}
	c.coeffs = coeffs
	return coeffs, nil
}

func (c *Camera) retrieveCalibration() (*calibration.Info, error) {
	coeffs, err := c.Coefficients()
	if err != nil {
		return nil, err
	}
	info := calibration.Build(coeffs, CalibrationRequests(c.modes))
	zap.L().Debug("retrieved calibration",
		zap.Int("intrinsics", len(info.Intrinsics)),
		zap.Float64("depth_scale", info.DepthScale))
	return info, nil
}

func (c *Camera) Calibration() *calibration.Info {
	return c.info
}

func (c *Camera) Modes() []Mode {
	return c.modes
}
