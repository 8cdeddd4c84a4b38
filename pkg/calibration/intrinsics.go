package calibration

import (
	"errors"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ErrInverseDistortion is returned when projecting into an image whose
// intrinsics carry an inverse distortion model, which only maps distorted
// pixels to undistorted rays.
var ErrInverseDistortion = errors.New("cannot project to an inverse-distorted image")

// ErrZeroDepth is returned by Project for points on the camera plane.
var ErrZeroDepth = errors.New("cannot project a point with zero depth")

// DistortionModel identifies how Intrinsics.Distortion is interpreted.
type DistortionModel int

const (
	DistortionNone DistortionModel = iota
	DistortionInverseBrownConrady
)

func (m DistortionModel) String() string {
	switch m {
	case DistortionNone:
		return "none"
	case DistortionInverseBrownConrady:
		return "inverse_brown_conrady"
	}
	return "unknown"
}

func (m DistortionModel) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Intrinsics describes the projection of one stream at one resolution.
type Intrinsics struct {
	Width          int             `json:"width_px"`
	Height         int             `json:"height_px"`
	FocalLength    [2]float64      `json:"focal_length"`
	PrincipalPoint [2]float64      `json:"principal_point"`
	Distortion     [5]float64      `json:"distortion"`
	Model          DistortionModel `json:"distortion_model"`
}

// DepthIntrinsics derives the depth stream intrinsics at width x height from
// the depth camera matrix Kc, whose terms are normalized to [-1,1] on both
// axes.
func DepthIntrinsics(c *Coefficients, width, height int) Intrinsics {
	w, h := float64(width), float64(height)
	in := Intrinsics{
		Width:  width,
		Height: height,
		FocalLength: [2]float64{
			float64(c.Kc[0][0]) * 0.5 * w,
			float64(c.Kc[1][1]) * 0.5 * h,
		},
		PrincipalPoint: [2]float64{
			(float64(c.Kc[0][2])*0.5 + 0.5) * w,
			(float64(c.Kc[1][2])*0.5 + 0.5) * h,
		},
		Model: DistortionInverseBrownConrady,
	}
	for i, k := range c.Invdistc {
		in.Distortion[i] = float64(k)
	}
	return in
}

// ColorIntrinsics derives the color stream intrinsics at width x height from
// the color camera matrix Kt. Kt is normalized against the sensor's native
// 16:9 frame; a 4:3 output is a horizontal crop of it, so the horizontal terms
// are rescaled before converting to pixels. Other aspect ratios are used as
// if they were 16:9.
func ColorIntrinsics(c *Coefficients, width, height int) Intrinsics {
	fx := float64(c.Kt[0][0]) * 0.5
	fy := float64(c.Kt[1][1]) * 0.5
	ppx := float64(c.Kt[0][2])*0.5 + 0.5
	ppy := float64(c.Kt[1][2])*0.5 + 0.5
	if width*3 == height*4 {
		fx *= 4.0 / 3
		ppx *= 4.0 / 3
		ppx -= 1.0 / 6
	}
	w, h := float64(width), float64(height)
	return Intrinsics{
		Width:          width,
		Height:         height,
		FocalLength:    [2]float64{fx * w, fy * h},
		PrincipalPoint: [2]float64{ppx * w, ppy * h},
		Model:          DistortionNone,
	}
}

// Deproject maps a pixel and its depth to a point in the stream's optical
// frame, in the same units as depth.
func (in Intrinsics) Deproject(pixel r2.Point, depth float64) r3.Vector {
	x := (pixel.X - in.PrincipalPoint[0]) / in.FocalLength[0]
	y := (pixel.Y - in.PrincipalPoint[1]) / in.FocalLength[1]
	if in.Model == DistortionInverseBrownConrady {
		k := in.Distortion
		rsq := x*x + y*y
		f := 1 + k[0]*rsq + k[1]*rsq*rsq + k[4]*rsq*rsq*rsq
		ux := x*f + 2*k[2]*x*y + k[3]*(rsq+2*x*x)
		uy := y*f + 2*k[3]*x*y + k[2]*(rsq+2*y*y)
		x, y = ux, uy
	}
	return r3.Vector{X: depth * x, Y: depth * y, Z: depth}
}

// Project maps a point in the stream's optical frame to a pixel.
func (in Intrinsics) Project(point r3.Vector) (r2.Point, error) {
	if in.Model == DistortionInverseBrownConrady {
		return r2.Point{}, ErrInverseDistortion
	}
	if point.Z == 0 {
		return r2.Point{}, ErrZeroDepth
	}
	x, y := point.X/point.Z, point.Y/point.Z
	return r2.Point{
		X: x*in.FocalLength[0] + in.PrincipalPoint[0],
		Y: y*in.FocalLength[1] + in.PrincipalPoint[1],
	}, nil
}
