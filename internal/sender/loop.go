// Package sender runs the sample → encode → transmit loop.
package sender

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hostlink/internal/frame"
	"hostlink/internal/sampler"
)

// DefaultInterval is the pause between frames (2 Hz).
const DefaultInterval = 500 * time.Millisecond

// Sampler produces host readings.
type Sampler interface {
	Sample(ctx context.Context) (sampler.Reading, error)
}

// Transport carries encoded frames. *link.Link satisfies it.
type Transport interface {
	Send(b []byte) error
	Reopen() error
	Close()
}

// StatusReporter is told whether the link is usable after every send.
type StatusReporter interface {
	SetLinkUp(up bool)
}

// Loop owns the sequence counter, the start-time reference and the
// transport for the lifetime of one sending session.
type Loop struct {
	sampler  Sampler
	link     Transport
	interval time.Duration
	log      *zap.Logger
	status   StatusReporter

	now   func() time.Time
	start time.Time
	seq   uint32
}

// Option customises a Loop.
type Option func(*Loop)

// WithInterval overrides DefaultInterval. Zero means no pause.
func WithInterval(d time.Duration) Option { return func(l *Loop) { l.interval = d } }

// WithLogger sets the logger; the default discards.
func WithLogger(log *zap.Logger) Option { return func(l *Loop) { l.log = log } }

// WithStatus attaches a link status reporter.
func WithStatus(s StatusReporter) Option { return func(l *Loop) { l.status = s } }

// WithSequence sets the first sequence number.
func WithSequence(seq uint32) Option { return func(l *Loop) { l.seq = seq } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(l *Loop) { l.now = now } }

// New builds a Loop around an already opened transport.
func New(s Sampler, t Transport, opts ...Option) *Loop {
	l := &Loop{
		sampler:  s,
		link:     t,
		interval: DefaultInterval,
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	l.start = l.now()
	return l
}

// Seq is the sequence number the next frame will carry.
func (l *Loop) Seq() uint32 { return l.seq }

// Run sends frames until ctx is cancelled, then closes the transport.
// Cancellation returns nil; a sampling failure is returned as is.
func (l *Loop) Run(ctx context.Context) error {
	defer l.link.Close()

	l.start = l.now()
	for {
		if ctx.Err() != nil {
			return nil
		}

		if _, err := l.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		if !l.pause(ctx) {
			return nil
		}
	}
}

// Step performs one iteration without the trailing pause. Transmission
// failures are handled in place; only sampling errors are returned.
func (l *Loop) Step(ctx context.Context) (frame.Frame, error) {
	elapsed := float64(l.now().Sub(l.start)) / float64(time.Millisecond)

	r, err := l.sampler.Sample(ctx)
	if err != nil {
		return frame.Frame{}, err
	}

	f := frame.New(r.CPUPercent, r.MemPercent, r.TempC, elapsed, l.seq)
	b := frame.Encode(f)

	delivered := l.transmit(b[:])

	l.log.Info(summaryMsg(delivered),
		zap.Uint32("seq", f.Seq),
		zap.String("cpu", pct(f.CPUPercent)),
		zap.String("ram", pct(f.RAMPercent)),
		zap.Float32("temp_c", f.TempC),
		zap.Float32("ts_ms", f.TimestampMS),
	)

	l.seq++ // wraps modulo 2^32
	return f, nil
}

// transmit writes b once. On failure it reopens the transport exactly once
// and gives up on this frame either way.
func (l *Loop) transmit(b []byte) bool {
	err := l.link.Send(b)
	if err == nil {
		l.reportLink(true)
		return true
	}

	l.log.Warn("serial write error", zap.Error(err))
	if rerr := l.link.Reopen(); rerr != nil {
		l.log.Debug("reopen failed, dropping frame", zap.Error(rerr))
		l.reportLink(false)
		return false
	}
	l.log.Info("serial port reopened")
	l.reportLink(true)
	return false
}

func (l *Loop) reportLink(up bool) {
	if l.status != nil {
		l.status.SetLinkUp(up)
	}
}

// pause sleeps for the interval. It reports false if ctx ended first.
func (l *Loop) pause(ctx context.Context) bool {
	t := time.NewTimer(l.interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
