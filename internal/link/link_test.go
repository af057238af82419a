package link

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

type fakePort struct {
	buf      bytes.Buffer
	writeErr error
	short    bool
	closed   int
}

func (p *fakePort) Write(b []byte) (int, error) {
	if p.writeErr != nil {
		return 0, p.writeErr
	}
	if p.short {
		return len(b) - 1, nil
	}
	return p.buf.Write(b)
}

func (p *fakePort) Close() error {
	p.closed++
	return errors.New("close always complains")
}

type openCall struct {
	name string
	baud int
}

type fakeOpener struct {
	calls []openCall
	ports []*fakePort
	fail  error
}

func (o *fakeOpener) open(name string, baud int) (Port, error) {
	o.calls = append(o.calls, openCall{name, baud})
	if o.fail != nil {
		return nil, o.fail
	}
	p := &fakePort{}
	o.ports = append(o.ports, p)
	return p, nil
}

func TestOpenSendClose(t *testing.T) {
	o := &fakeOpener{}
	var slept time.Duration
	l := New("/dev/ttyUSB0", 115200, WithOpener(o.open))
	l.sleep = func(d time.Duration) { slept += d }

	if err := l.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if slept != DefaultSettle {
		t.Errorf("settle = %v, want %v", slept, DefaultSettle)
	}
	if !l.IsOpen() {
		t.Fatal("IsOpen = false after Open")
	}
	if err := l.Send([]byte{0xAA, 1, 2}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got := o.ports[0].buf.Bytes(); !bytes.Equal(got, []byte{0xAA, 1, 2}) {
		t.Errorf("wrote % X", got)
	}

	l.Close()
	l.Close()
	if o.ports[0].closed != 1 {
		t.Errorf("closed %d times, want 1", o.ports[0].closed)
	}
	if l.IsOpen() {
		t.Error("IsOpen = true after Close")
	}
}

func TestOpenError(t *testing.T) {
	cause := errors.New("no such device")
	l := New("COM6", 9600, WithOpener((&fakeOpener{fail: cause}).open), WithSettle(0))

	err := l.Open()
	var oe *OpenError
	if !errors.As(err, &oe) {
		t.Fatalf("err = %v, want *OpenError", err)
	}
	if oe.Port != "COM6" || oe.Baud != 9600 {
		t.Errorf("OpenError = %+v", oe)
	}
	if !errors.Is(err, cause) {
		t.Error("OpenError does not unwrap to cause")
	}
	if want := "failed to open COM6 at 9600 baud: no such device"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSendErrors(t *testing.T) {
	o := &fakeOpener{}
	l := New("p", 1, WithOpener(o.open), WithSettle(0))

	if err := l.Send([]byte{1}); !errors.Is(err, ErrClosed) {
		t.Errorf("closed send err = %v, want ErrClosed", err)
	}

	if err := l.Open(); err != nil {
		t.Fatal(err)
	}
	o.ports[0].short = true
	if err := l.Send([]byte{1, 2}); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("short write err = %v, want io.ErrShortWrite", err)
	}

	o.ports[0].short = false
	o.ports[0].writeErr = errors.New("device unplugged")
	if err := l.Send([]byte{1}); err == nil {
		t.Error("Send succeeded on failing port")
	}
}

func TestReopenUsesSamePortAndBaud(t *testing.T) {
	o := &fakeOpener{}
	l := New("/dev/ttyACM0", 115200, WithOpener(o.open), WithSettle(0))
	if err := l.Open(); err != nil {
		t.Fatal(err)
	}
	if err := l.Reopen(); err != nil {
		t.Fatalf("Reopen: %v", err)
	}

	if len(o.calls) != 2 {
		t.Fatalf("opened %d times, want 2", len(o.calls))
	}
	for i, c := range o.calls {
		if c != (openCall{"/dev/ttyACM0", 115200}) {
			t.Errorf("call %d = %+v", i, c)
		}
	}
	if o.ports[0].closed != 1 {
		t.Errorf("first port closed %d times, want 1", o.ports[0].closed)
	}
}
