// Package link owns the serial connection to the display board.
package link

import (
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// DefaultSettle is how long Open waits after the port opens. Boards that
// reset on DTR need this before they accept bytes.
const DefaultSettle = 100 * time.Millisecond

// Port is the slice of a serial port the sender needs.
type Port interface {
	io.Writer
	Close() error
}

// Opener opens a port by name at a baud rate.
type Opener func(name string, baud int) (Port, error)

// OpenError reports a failed port open. At startup it is fatal.
type OpenError struct {
	Port string
	Baud int
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("failed to open %s at %d baud: %v", e.Port, e.Baud, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// OpenSerial opens name in 8N1 mode with a zero read timeout, so reads
// never block.
func OpenSerial(name string, baud int) (Port, error) {
	p, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	if err := p.SetReadTimeout(0); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// OpenReader opens name for the receiving side. Reads block until data
// arrives.
func OpenReader(name string, baud int) (io.ReadCloser, error) {
	p, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, &OpenError{Port: name, Baud: baud, Err: err}
	}
	if err := p.SetReadTimeout(serial.NoTimeout); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// ListPorts returns the serial ports the OS currently reports.
func ListPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Link binds a port name and baud rate to at most one open handle.
// It is not safe for concurrent use; the sender loop owns it exclusively.
type Link struct {
	name   string
	baud   int
	open   Opener
	settle time.Duration
	sleep  func(time.Duration)

	port Port
}

// Option customises a Link.
type Option func(*Link)

// WithOpener replaces the serial opener (tests use in-memory ports).
func WithOpener(o Opener) Option { return func(l *Link) { l.open = o } }

// WithSettle sets the post-open delay.
func WithSettle(d time.Duration) Option { return func(l *Link) { l.settle = d } }

// New returns a closed Link for name at baud.
func New(name string, baud int, opts ...Option) *Link {
	l := &Link{
		name:   name,
		baud:   baud,
		open:   OpenSerial,
		settle: DefaultSettle,
		sleep:  time.Sleep,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Name is the configured port name.
func (l *Link) Name() string { return l.name }

// Baud is the configured baud rate.
func (l *Link) Baud() int { return l.baud }

// IsOpen reports whether a handle is held.
func (l *Link) IsOpen() bool { return l.port != nil }

// Open opens the configured port. Any failure is an *OpenError.
func (l *Link) Open() error {
	p, err := l.open(l.name, l.baud)
	if err != nil {
		return &OpenError{Port: l.name, Baud: l.baud, Err: err}
	}
	l.port = p
	if l.settle > 0 {
		l.sleep(l.settle)
	}
	return nil
}

// Send writes one frame. It never retries.
func (l *Link) Send(b []byte) error {
	if l.port == nil {
		return fmt.Errorf("write %s: %w", l.name, ErrClosed)
	}
	n, err := l.port.Write(b)
	if err != nil {
		return fmt.Errorf("write %s: %w", l.name, err)
	}
	if n != len(b) {
		return fmt.Errorf("write %s: %w (%d of %d bytes)", l.name, io.ErrShortWrite, n, len(b))
	}
	return nil
}

// Close releases the handle. Close errors are dropped.
func (l *Link) Close() {
	if l.port == nil {
		return
	}
	_ = l.port.Close()
	l.port = nil
}

// Reopen closes the current handle and opens the same port and baud again.
func (l *Link) Reopen() error {
	l.Close()
	return l.Open()
}
