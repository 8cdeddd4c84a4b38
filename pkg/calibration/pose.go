package calibration

import (
	"encoding/json"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Pose places a stream's optical frame relative to the depth stream's. The
// translation is in meters.
type Pose struct {
	Rotation    *mat.Dense
	Translation r3.Vector
}

// IdentityPose is the pose of the reference stream relative to itself.
func IdentityPose() Pose {
	return Pose{Rotation: mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})}
}

// newDevicePose builds a pose from the device's depth-to-color rotation and
// its translation in millimeters. The rotation is stored transposed.
func newDevicePose(rotation [3][3]float32, translationMM [3]float32) Pose {
	r := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.Set(i, j, float64(rotation[i][j]))
		}
	}
	return Pose{
		Rotation: mat.DenseCopyOf(r.T()),
		Translation: r3.Vector{
			X: float64(translationMM[0]),
			Y: float64(translationMM[1]),
			Z: float64(translationMM[2]),
		}.Mul(0.001),
	}
}

// Transform maps a point from the reference frame into this pose's frame.
func (p Pose) Transform(point r3.Vector) r3.Vector {
	var out mat.VecDense
	out.MulVec(p.Rotation, mat.NewVecDense(3, []float64{point.X, point.Y, point.Z}))
	return r3.Vector{X: out.AtVec(0), Y: out.AtVec(1), Z: out.AtVec(2)}.Add(p.Translation)
}

func (p Pose) MarshalJSON() ([]byte, error) {
	rows := make([][]float64, 3)
	for i := range rows {
		rows[i] = mat.Row(nil, i, p.Rotation)
	}
	return json.Marshal(struct {
		Rotation    [][]float64 `json:"rotation"`
		Translation [3]float64  `json:"translation_m"`
	}{rows, [3]float64{p.Translation.X, p.Translation.Y, p.Translation.Z}})
}
