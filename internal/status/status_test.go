package status

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestLinkStatusRoundTrip(t *testing.T) {
	s, err := Listen("127.0.0.1:0", zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	go s.Serve()
	defer s.Stop()

	ctx := context.Background()
	check := func(want healthpb.HealthCheckResponse_ServingStatus) {
		t.Helper()
		got, err := Probe(ctx, s.Addr(), 5*time.Second)
		if err != nil {
			t.Fatalf("Probe: %v", err)
		}
		if got != want {
			t.Errorf("status = %v, want %v", got, want)
		}
	}

	check(healthpb.HealthCheckResponse_NOT_SERVING)
	s.SetLinkUp(true)
	check(healthpb.HealthCheckResponse_SERVING)
	s.SetLinkUp(false)
	check(healthpb.HealthCheckResponse_NOT_SERVING)
}

func TestProbeUnreachable(t *testing.T) {
	s, err := Listen("127.0.0.1:0", zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	addr := s.Addr()
	s.lis.Close()

	if _, err := Probe(context.Background(), addr, 300*time.Millisecond); err == nil {
		t.Error("Probe succeeded against a closed listener")
	}
}
