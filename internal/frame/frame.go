// Package frame implements the fixed 21-byte telemetry frame exchanged with
// the display microcontroller.
//
// Layout (little-endian, no padding):
//
//	offset 0       marker 0xAA
//	offset 1..4    float32 cpu percent
//	offset 5..8    float32 ram percent
//	offset 9..12   float32 temperature (°C)
//	offset 13..16  float32 timestamp (ms since sender start)
//	offset 17..20  uint32  sequence
//
// There is no length field and no checksum. A receiver resynchronizes on the
// marker byte alone.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	// Marker is the start-of-frame sentinel.
	Marker byte = 0xAA

	// PayloadSize is the number of bytes following the marker.
	PayloadSize = 4*4 + 4

	// Size is the full on-wire frame length.
	Size = 1 + PayloadSize
)

// ErrShortFrame is returned when decoding fewer than Size bytes.
var ErrShortFrame = errors.New("frame: short buffer")

// ErrBadMarker is returned when the first byte is not Marker.
var ErrBadMarker = errors.New("frame: bad start marker")

// Frame is one telemetry sample as it travels on the wire.
type Frame struct {
	CPUPercent  float32
	RAMPercent  float32
	TempC       float32
	TimestampMS float32
	Seq         uint32
}

// New coerces float64 readings into a Frame. No range validation happens:
// negative or >100 percentages are encoded as given.
func New(cpu, ram, temp, elapsedMS float64, seq uint32) Frame {
	return Frame{
		CPUPercent:  float32(cpu),
		RAMPercent:  float32(ram),
		TempC:       float32(temp),
		TimestampMS: float32(elapsedMS),
		Seq:         seq,
	}
}

// Encode packs f into its 21-byte wire form.
func Encode(f Frame) [Size]byte {
	var b [Size]byte
	b[0] = Marker
	binary.LittleEndian.PutUint32(b[1:5], math.Float32bits(f.CPUPercent))
	binary.LittleEndian.PutUint32(b[5:9], math.Float32bits(f.RAMPercent))
	binary.LittleEndian.PutUint32(b[9:13], math.Float32bits(f.TempC))
	binary.LittleEndian.PutUint32(b[13:17], math.Float32bits(f.TimestampMS))
	binary.LittleEndian.PutUint32(b[17:21], f.Seq)
	return b
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (f Frame) MarshalBinary() ([]byte, error) {
	b := Encode(f)
	return b[:], nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (f *Frame) UnmarshalBinary(data []byte) error {
	d, err := Decode(data)
	if err != nil {
		return err
	}
	*f = d
	return nil
}

// Decode parses the first Size bytes of b. Trailing bytes are ignored.
func Decode(b []byte) (Frame, error) {
	if len(b) < Size {
		return Frame{}, fmt.Errorf("%w: got %d bytes, want %d", ErrShortFrame, len(b), Size)
	}
	if b[0] != Marker {
		return Frame{}, fmt.Errorf("%w: 0x%02X", ErrBadMarker, b[0])
	}
	return decodePayload(b[1:Size]), nil
}

// decodePayload reads the 20 bytes after the marker.
func decodePayload(p []byte) Frame {
	return Frame{
		CPUPercent:  math.Float32frombits(binary.LittleEndian.Uint32(p[0:4])),
		RAMPercent:  math.Float32frombits(binary.LittleEndian.Uint32(p[4:8])),
		TempC:       math.Float32frombits(binary.LittleEndian.Uint32(p[8:12])),
		TimestampMS: math.Float32frombits(binary.LittleEndian.Uint32(p[12:16])),
		Seq:         binary.LittleEndian.Uint32(p[16:20]),
	}
}

// String renders the frame the way the sender logs it.
func (f Frame) String() string {
	return fmt.Sprintf("seq=%d CPU=%.1f%% RAM=%.1f%% TEMP=%.1fC ts=%.1fms",
		f.Seq, f.CPUPercent, f.RAMPercent, f.TempC, f.TimestampMS)
}
