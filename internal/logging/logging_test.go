package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hostlink.log")
	log := New(Options{File: path})

	log.Debug("hidden at info level")
	log.Info("sent", zap.Uint32("seq", 7))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"sent"`) || !strings.Contains(out, `"seq":7`) {
		t.Errorf("log file = %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	log := New(Options{Verbose: true})
	if !log.Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug disabled with Verbose")
	}
	if New(Options{}).Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug enabled without Verbose")
	}
}
