package calibration

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func testCoefficients() *Coefficients {
	return &Coefficients{
		Rmax: 65535,
		Kc: [3][3]float32{
			{1.5, 0, -0.0625},
			{0, 2, 0.03125},
			{0, 0, 1},
		},
		Invdistc: [5]float32{0.125, -0.25, 0.0078125, -0.00390625, 0.5},
		Kt: [3][3]float32{
			{1.25, 0, 0.0625},
			{0, 2.25, -0.03125},
			{0, 0, 1},
		},
		Rt: [3][3]float32{
			{1, 2, 3},
			{4, 5, 6},
			{7, 8, 9},
		},
		Tt: [3]float32{25, -12.5, 4},
	}
}

func TestDepthIntrinsics(t *testing.T) {
	c := testCoefficients()
	in := DepthIntrinsics(c, 640, 480)

	assert.Equal(t, 640, in.Width)
	assert.Equal(t, 480, in.Height)
	assert.Equal(t, [2]float64{1.5 * 0.5 * 640, 2 * 0.5 * 480}, in.FocalLength)
	assert.Equal(t, [2]float64{(-0.0625*0.5 + 0.5) * 640, (0.03125*0.5 + 0.5) * 480}, in.PrincipalPoint)
	assert.Equal(t, [5]float64{0.125, -0.25, 0.0078125, -0.00390625, 0.5}, in.Distortion)
	assert.Equal(t, DistortionInverseBrownConrady, in.Model)
}

func TestDepthIntrinsicsHasNoAspectCorrection(t *testing.T) {
	c := testCoefficients()
	// 640x480 is 4:3 but the depth matrix is normalized per axis.
	in := DepthIntrinsics(c, 640, 480)
	assert.Equal(t, 480.0, in.FocalLength[0])
}

func TestColorIntrinsicsAspectCorrection(t *testing.T) {
	c := testCoefficients()

	tests := []struct {
		name      string
		width     int
		height    int
		corrected bool
	}{
		{"640x480", 640, 480, true},
		{"800x600", 800, 600, true},
		{"1920x1080", 1920, 1080, false},
		{"640x360", 640, 360, false},
		{"square", 480, 480, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := ColorIntrinsics(c, tt.width, tt.height)
			w, h := float64(tt.width), float64(tt.height)

			fx, ppx := 1.25*0.5, 0.0625*0.5+0.5
			if tt.corrected {
				fx *= 4.0 / 3
				ppx = ppx*4.0/3 - 1.0/6
			}
			assert.InDelta(t, fx*w, in.FocalLength[0], 1e-9)
			assert.InDelta(t, ppx*w, in.PrincipalPoint[0], 1e-9)

			// the vertical axis is never corrected
			assert.Equal(t, 2.25*0.5*h, in.FocalLength[1])
			assert.Equal(t, (-0.03125*0.5+0.5)*h, in.PrincipalPoint[1])
		})
	}
}

func TestColorIntrinsics1080p(t *testing.T) {
	in := ColorIntrinsics(testCoefficients(), 1920, 1080)
	assert.Equal(t, [2]float64{1200, 1215}, in.FocalLength)
	assert.Equal(t, [2]float64{1020, 523.125}, in.PrincipalPoint)
}

func TestColorIntrinsicsHasNoDistortion(t *testing.T) {
	c := testCoefficients()
	c.Invdistt = [5]float32{1, 2, 3, 4, 5}
	c.Invdistc = [5]float32{1, 2, 3, 4, 5}
	for _, size := range [][2]int{{640, 480}, {1920, 1080}, {100, 100}} {
		in := ColorIntrinsics(c, size[0], size[1])
		assert.Equal(t, DistortionNone, in.Model)
		assert.Equal(t, [5]float64{}, in.Distortion)
	}
}

func TestColorIntrinsicsDeterministicAndMonotonic(t *testing.T) {
	c := testCoefficients()
	small := ColorIntrinsics(c, 640, 480)
	large := ColorIntrinsics(c, 1920, 1080)

	if diff := cmp.Diff(small, ColorIntrinsics(c, 640, 480)); diff != "" {
		t.Errorf("ColorIntrinsics not deterministic (-first +second):\n%s", diff)
	}
	for i := 0; i < 2; i++ {
		assert.Less(t, small.FocalLength[i], large.FocalLength[i])
		assert.Less(t, small.PrincipalPoint[i], large.PrincipalPoint[i])
	}
}

func TestBuild(t *testing.T) {
	c := testCoefficients()
	reqs := []Request{
		tagRequests[Color480p],
		tagRequests[Color1080p],
		tagRequests[Depth480p],
	}
	info := Build(c, reqs)

	require.Len(t, info.Intrinsics, 3)
	for i, r := range reqs {
		assert.Equal(t, r.Tag, info.Intrinsics[i].Tag)
		assert.Equal(t, r.Stream, info.Intrinsics[i].Stream)
		assert.Equal(t, Derive(c, r), info.Intrinsics[i].Intrinsics)
	}

	depth, ok := info.Intrinsic(Depth480p)
	require.True(t, ok)
	assert.Equal(t, DistortionInverseBrownConrady, depth.Model)

	_, ok = info.Intrinsic(Tag(42))
	assert.False(t, ok)

	assert.Equal(t, 0.001, info.DepthScale)
}

func TestBuildArbitraryRequests(t *testing.T) {
	reqs := []Request{
		{Tag: Tag(7), Stream: StreamDepth, Width: 320, Height: 240},
		{Tag: Tag(8), Stream: StreamColor, Width: 800, Height: 600},
	}
	info := Build(testCoefficients(), reqs)
	require.Len(t, info.Intrinsics, 2)
	assert.Equal(t, 320, info.Intrinsics[0].Width)
	assert.Equal(t, DistortionInverseBrownConrady, info.Intrinsics[0].Model)
	assert.Equal(t, 800, info.Intrinsics[1].Width)
	assert.Equal(t, DistortionNone, info.Intrinsics[1].Model)
}

func TestBuildExtrinsics(t *testing.T) {
	for _, c := range []*Coefficients{testCoefficients(), {}} {
		info := Build(c, nil)

		depth := info.Extrinsics[StreamDepth]
		assert.True(t, mat.Equal(depth.Rotation, mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})))
		assert.Equal(t, r3.Vector{}, depth.Translation)
	}

	info := Build(testCoefficients(), nil)
	color := info.Extrinsics[StreamColor]
	assert.True(t, mat.Equal(color.Rotation, mat.NewDense(3, 3, []float64{
		1, 4, 7,
		2, 5, 8,
		3, 6, 9,
	})))
	assert.InDelta(t, 0.025, color.Translation.X, 1e-12)
	assert.InDelta(t, -0.0125, color.Translation.Y, 1e-12)
	assert.InDelta(t, 0.004, color.Translation.Z, 1e-12)
}

func TestDepthScale(t *testing.T) {
	assert.Equal(t, 0.001, DepthScale(65535))
	assert.InDelta(t, 0.0005, DepthScale(32767.5), 1e-15)
	assert.InDelta(t, (3000.0/65535)*0.001, DepthScale(3000), 1e-18)
}

func TestBuildIsPure(t *testing.T) {
	c := testCoefficients()
	before := *c
	reqs := []Request{tagRequests[Color480p], tagRequests[Depth480p]}
	first, second := Build(c, reqs), Build(c, reqs)

	assert.Equal(t, before, *c)
	assert.Equal(t, first.Intrinsics, second.Intrinsics)
	assert.Equal(t, first.DepthScale, second.DepthScale)
}

func TestRequestFor(t *testing.T) {
	r, ok := RequestFor(Color1080p)
	require.True(t, ok)
	assert.Equal(t, Request{Tag: Color1080p, Stream: StreamColor, Width: 1920, Height: 1080}, r)

	_, ok = RequestFor(Tag(-1))
	assert.False(t, ok)
}

func TestDeprojectPrincipalPoint(t *testing.T) {
	c := testCoefficients()
	for _, in := range []Intrinsics{DepthIntrinsics(c, 640, 480), ColorIntrinsics(c, 1920, 1080)} {
		p := in.Deproject(r2.Point{X: in.PrincipalPoint[0], Y: in.PrincipalPoint[1]}, 1.5)
		assert.Equal(t, r3.Vector{X: 0, Y: 0, Z: 1.5}, p)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	in := ColorIntrinsics(testCoefficients(), 1920, 1080)
	pixel := r2.Point{X: 100, Y: 900}

	px, err := in.Project(in.Deproject(pixel, 2))
	require.NoError(t, err)
	assert.InDelta(t, pixel.X, px.X, 1e-9)
	assert.InDelta(t, pixel.Y, px.Y, 1e-9)
}

func TestProjectInverseDistortion(t *testing.T) {
	in := DepthIntrinsics(testCoefficients(), 640, 480)
	_, err := in.Project(r3.Vector{X: 0, Y: 0, Z: 1})
	assert.ErrorIs(t, err, ErrInverseDistortion)
}

func TestProjectZeroDepth(t *testing.T) {
	in := ColorIntrinsics(testCoefficients(), 640, 480)
	for _, p := range []r3.Vector{{X: 0, Y: 0, Z: 0}, {X: 0.5, Y: -0.25, Z: 0}} {
		px, err := in.Project(p)
		assert.ErrorIs(t, err, ErrZeroDepth)
		assert.Equal(t, r2.Point{}, px)
	}
}

func TestPoseTransform(t *testing.T) {
	p := IdentityPose()
	v := r3.Vector{X: 1, Y: 2, Z: 3}
	assert.Equal(t, v, p.Transform(v))

	color := Build(testCoefficients(), nil).Extrinsics[StreamColor]
	got := color.Transform(r3.Vector{X: 1, Y: 0, Z: 0})
	assert.InDelta(t, 1.025, got.X, 1e-12)
	assert.InDelta(t, 2-0.0125, got.Y, 1e-12)
	assert.InDelta(t, 3.004, got.Z, 1e-12)
}

func TestPoseMarshalJSON(t *testing.T) {
	p := IdentityPose()
	p.Translation = r3.Vector{X: 0.025}
	buf, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rotation":[[1,0,0],[0,1,0],[0,0,1]],"translation_m":[0.025,0,0]}`, string(buf))
}

func TestCoefficientsUnmarshalBinary(t *testing.T) {
	assert.Equal(t, 448, BlobSize)

	floats := make([]float32, BlobSize/4)
	for i := range floats {
		floats[i] = float32(i)
	}
	buf := &bytes.Buffer{}
	require.NoError(t, binary.Write(buf, binary.LittleEndian, floats))

	c := &Coefficients{}
	require.NoError(t, c.UnmarshalBinary(buf.Bytes()))

	assert.Equal(t, float32(0), c.Rmax)
	assert.Equal(t, [3][3]float32{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}, c.Kc)
	assert.Equal(t, [5]float32{15, 16, 17, 18, 19}, c.Invdistc)
	assert.Equal(t, [3][3]float32{{75, 76, 77}, {78, 79, 80}, {81, 82, 83}}, c.Kt)
	assert.Equal(t, [3][3]float32{{84, 85, 86}, {87, 88, 89}, {90, 91, 92}}, c.Rt)
	assert.Equal(t, [3]float32{93, 94, 95}, c.Tt)
	assert.Equal(t, [6]float32{106, 107, 108, 109, 110, 111}, c.QV)

	out, err := c.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, buf.Bytes(), out)
}

func TestCoefficientsUnmarshalShortBlob(t *testing.T) {
	c := &Coefficients{}
	assert.ErrorIs(t, c.UnmarshalBinary(make([]byte, BlobSize-1)), ErrShortBlob)
}

func TestBlobSource(t *testing.T) {
	want := testCoefficients()
	buf, err := want.MarshalBinary()
	require.NoError(t, err)

	got, err := NewBlobSource(bytes.NewReader(buf)).Parameters()
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = NewBlobSource(bytes.NewReader(buf[:10])).Parameters()
	assert.ErrorIs(t, err, ErrShortBlob)
	assert.ErrorContains(t, err, "got 10 bytes, want 448")

	_, err = NewBlobSource(bytes.NewReader(nil)).Parameters()
	assert.ErrorIs(t, err, ErrShortBlob)
	assert.ErrorContains(t, err, "got 0 bytes")
}

func TestDistortionModelString(t *testing.T) {
	assert.Equal(t, "none", DistortionNone.String())
	assert.Equal(t, "inverse_brown_conrady", DistortionInverseBrownConrady.String())
}
