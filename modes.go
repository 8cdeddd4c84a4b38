package ivcam

import "github.com/kevmo314/go-ivcam/pkg/calibration"

// FrameFormat is the payload format a subdevice is negotiated at.
type FrameFormat int

const (
	FrameFormatYUYV FrameFormat = iota
	FrameFormatINVR
)

func (f FrameFormat) String() string {
	switch f {
	case FrameFormatYUYV:
		return "YUYV"
	case FrameFormatINVR:
		return "INVR"
	}
	return "unknown"
}

// PixelFormat is the format a stream is delivered in after unpacking.
type PixelFormat int

const (
	PixelFormatRGB8 PixelFormat = iota
	PixelFormatZ16
)

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB8:
		return "RGB8"
	case PixelFormatZ16:
		return "Z16"
	}
	return "unknown"
}

// StreamMode is one stream produced by a subdevice mode, along with the tag
// its intrinsics are derived under.
type StreamMode struct {
	Stream     calibration.Stream
	Width      int
	Height     int
	Format     PixelFormat
	FPS        int
	Intrinsics calibration.Tag
}

// Mode is a (subdevice, resolution, format, rate) combination the camera
// supports.
type Mode struct {
	Subdevice   int
	Width       int
	Height      int
	FrameFormat FrameFormat
	FPS         int
	Streams     []StreamMode
}

// F200Modes is the F200 capability table: color on subdevice 0 and depth on
// subdevice 1.
func F200Modes() []Mode {
	return []Mode{
		{0, 640, 480, FrameFormatYUYV, 60, []StreamMode{{calibration.StreamColor, 640, 480, PixelFormatRGB8, 60, calibration.Color480p}}},
		{0, 1920, 1080, FrameFormatYUYV, 60, []StreamMode{{calibration.StreamColor, 1920, 1080, PixelFormatRGB8, 60, calibration.Color1080p}}},
		{1, 640, 480, FrameFormatINVR, 60, []StreamMode{{calibration.StreamDepth, 640, 480, PixelFormatZ16, 60, calibration.Depth480p}}},
	}
}

// StreamSubdevice returns the subdevice that carries stream.
func StreamSubdevice(modes []Mode, stream calibration.Stream) (int, bool) {
	for _, m := range modes {
		for _, s := range m.Streams {
			if s.Stream == stream {
				return m.Subdevice, true
			}
		}
	}
	return 0, false
}

// CalibrationRequests lists the intrinsics the modes need, once per tag, in
// table order.
func CalibrationRequests(modes []Mode) []calibration.Request {
	var reqs []calibration.Request
	seen := make(map[calibration.Tag]bool)
	for _, m := range modes {
		for _, s := range m.Streams {
			if seen[s.Intrinsics] {
				continue
			}
			seen[s.Intrinsics] = true
			reqs = append(reqs, calibration.Request{
				Tag:    s.Intrinsics,
				Stream: s.Stream,
				Width:  s.Width,
				Height: s.Height,
			})
		}
	}
	return reqs
}
