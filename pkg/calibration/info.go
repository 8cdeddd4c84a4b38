package calibration

import "fmt"

// Stream identifies one of the camera's image streams.
type Stream int

const (
	StreamDepth Stream = iota
	StreamColor
)

func (s Stream) String() string {
	switch s {
	case StreamDepth:
		return "depth"
	case StreamColor:
		return "color"
	}
	return fmt.Sprintf("stream(%d)", int(s))
}

func (s Stream) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Tag names a stream/resolution combination that intrinsics are derived for.
type Tag int

const (
	Color480p Tag = iota
	Color1080p
	Depth480p
)

func (t Tag) String() string {
	switch t {
	case Color480p:
		return "color_480p"
	case Color1080p:
		return "color_1080p"
	case Depth480p:
		return "depth_480p"
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Request asks for the intrinsics of Stream at Width x Height, stored under Tag.
type Request struct {
	Tag    Tag
	Stream Stream
	Width  int
	Height int
}

var tagRequests = map[Tag]Request{
	Color480p:  {Tag: Color480p, Stream: StreamColor, Width: 640, Height: 480},
	Color1080p: {Tag: Color1080p, Stream: StreamColor, Width: 1920, Height: 1080},
	Depth480p:  {Tag: Depth480p, Stream: StreamDepth, Width: 640, Height: 480},
}

// RequestFor returns the stream and dimensions a known tag stands for.
func RequestFor(t Tag) (Request, bool) {
	r, ok := tagRequests[t]
	return r, ok
}

// Derive computes the intrinsics for a single request.
func Derive(c *Coefficients, r Request) Intrinsics {
	if r.Stream == StreamDepth {
		return DepthIntrinsics(c, r.Width, r.Height)
	}
	return ColorIntrinsics(c, r.Width, r.Height)
}

// TaggedIntrinsics is a derived Intrinsics along with the tag it was requested under.
type TaggedIntrinsics struct {
	Tag    Tag    `json:"tag"`
	Stream Stream `json:"stream"`
	Intrinsics
}

// Info is the calibration of a camera instance.
type Info struct {
	Intrinsics []TaggedIntrinsics `json:"intrinsics"`
	Extrinsics map[Stream]Pose    `json:"extrinsics"`
	// DepthScale is meters per raw depth unit.
	DepthScale float64 `json:"depth_scale"`
}

// Intrinsic looks up the intrinsics stored under t.
func (i *Info) Intrinsic(t Tag) (Intrinsics, bool) {
	for _, in := range i.Intrinsics {
		if in.Tag == t {
			return in.Intrinsics, true
		}
	}
	return Intrinsics{}, false
}

// Build derives one Intrinsics per request, in request order, along with the
// stream poses and depth scale. Depth is the reference frame.
func Build(c *Coefficients, reqs []Request) *Info {
	info := &Info{
		Intrinsics: make([]TaggedIntrinsics, 0, len(reqs)),
		Extrinsics: map[Stream]Pose{
			StreamDepth: IdentityPose(),
			StreamColor: newDevicePose(c.Rt, c.Tt),
		},
		DepthScale: DepthScale(c.Rmax),
	}
	for _, r := range reqs {
		info.Intrinsics = append(info.Intrinsics, TaggedIntrinsics{
			Tag:        r.Tag,
			Stream:     r.Stream,
			Intrinsics: Derive(c, r),
		})
	}
	return info
}

// DepthScale converts the 16-bit raw depth range rmax into meters per unit.
func DepthScale(rmax float32) float64 {
	return (float64(rmax) / 0xFFFF) * 0.001
}
