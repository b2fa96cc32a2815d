package trapmap

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger is enabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	points := []LabeledPoint{LP(100, 100, "A"), LP(400, 200, "B"), LP(100, 100, "A"), LP(450, 50, "C")}
	if _, err := Build(points, canvas, WithPermutation(InOrder)); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"trapmap: session started",
		"trapmap: inserting segment",
		"trapmap: map built",
		"trapezoids=6",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output doesn't contain %q:\n%s", want, out)
		}
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) didn't restore the silent logger")
	}
}
