package frame

import (
	"bufio"
	"io"
)

// Reader pulls frames out of a byte stream. Bytes before a marker are
// discarded; a marker followed by a truncated payload (EOF mid-frame) ends
// the stream with io.ErrUnexpectedEOF.
//
// There is no checksum, so a payload byte equal to 0xAA after a dropped byte
// can misalign the reader until the next clean marker.
type Reader struct {
	br      *bufio.Reader
	skipped uint64
}

// NewReader wraps r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, 4*Size)}
}

// Next blocks until a full frame is read or r fails.
func (r *Reader) Next() (Frame, error) {
	for {
		b, err := r.br.ReadByte()
		if err != nil {
			return Frame{}, err
		}
		if b != Marker {
			r.skipped++
			continue
		}

		var payload [PayloadSize]byte
		if _, err := io.ReadFull(r.br, payload[:]); err != nil {
			return Frame{}, err
		}
		return decodePayload(payload[:]), nil
	}
}

// Skipped reports how many non-marker bytes were dropped while resyncing.
func (r *Reader) Skipped() uint64 { return r.skipped }
