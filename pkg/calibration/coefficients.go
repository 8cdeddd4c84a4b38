package calibration

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrShortBlob is returned when a calibration blob is smaller than the
// parameter table it is expected to hold.
var ErrShortBlob = errors.New("calibration blob too short")

// Coefficients holds the raw factory calibration of an IVCAM depth camera.
//
// The field order matches the on-device parameter table, which is a packed
// sequence of little-endian float32 values. Only Rmax, Kc, Invdistc, Kt, Rt
// and Tt are consumed by the derivation; the rest are kept so a decoded table
// can be inspected as a whole.
type Coefficients struct {
	Rmax     float32       // maximum raw depth range, device units
	Kc       [3][3]float32 // depth camera intrinsics, [-1,1] normalized
	Distc    [5]float32
	Invdistc [5]float32 // depth inverse distortion
	Pp       [3][4]float32
	Kp       [3][3]float32
	Rp       [3][3]float32
	Tp       [3]float32
	Distp    [5]float32
	Invdistp [5]float32
	Pt       [3][4]float32
	Kt       [3][3]float32 // color camera intrinsics, 16:9 normalized
	Rt       [3][3]float32 // depth to color rotation
	Tt       [3]float32    // depth to color translation, millimeters
	Distt    [5]float32
	Invdistt [5]float32
	QV       [6]float32
}

// BlobSize is the encoded size of Coefficients in bytes.
var BlobSize = binary.Size(Coefficients{})

func (c *Coefficients) UnmarshalBinary(buf []byte) error {
	if len(buf) < BlobSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrShortBlob, len(buf), BlobSize)
	}
	return binary.Read(bytes.NewReader(buf[:BlobSize]), binary.LittleEndian, c)
}

func (c *Coefficients) MarshalBinary() ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, BlobSize))
	if err := binary.Write(buf, binary.LittleEndian, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Source produces the raw calibration of a device. Parameters blocks for as
// long as the device transaction takes and fails with a device-communication
// error if the transport fails.
type Source interface {
	Parameters() (*Coefficients, error)
}

// BlobSource is a Source backed by an already captured parameter table, for
// example one dumped from a device to disk.
type BlobSource struct {
	r io.Reader
}

func NewBlobSource(r io.Reader) *BlobSource {
	return &BlobSource{r: r}
}

// OpenBlobFile reads a parameter table from path.
func OpenBlobFile(path string) (*BlobSource, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration blob: %w", err)
	}
	return NewBlobSource(bytes.NewReader(buf)), nil
}

func (s *BlobSource) Parameters() (*Coefficients, error) {
	buf := make([]byte, BlobSize)
	if n, err := io.ReadFull(s.r, buf); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrShortBlob, n, BlobSize)
		}
		return nil, err
	}
	c := &Coefficients{}
	if err := c.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return c, nil
}
