package timeouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/jefgalicia/jefsite/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	timeouts.Reset()
	got := timeouts.Current()
	want := timeouts.Config{
		Ping:      timeouts.DefaultPing,
		Short:     timeouts.DefaultShort,
		Medium:    timeouts.DefaultMedium,
		Directory: timeouts.DefaultDirectory,
	}
	if got != want {
		t.Errorf("Current() = %+v, want %+v", got, want)
	}
}

func TestConfigure_IgnoresZero(t *testing.T) {
	timeouts.Reset()
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Directory: time.Minute})

	if timeouts.Directory() != time.Minute {
		t.Errorf("Directory() = %v, want %v", timeouts.Directory(), time.Minute)
	}
	if timeouts.Ping() != timeouts.DefaultPing {
		t.Errorf("Ping() = %v, want default %v", timeouts.Ping(), timeouts.DefaultPing)
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), 5*time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not expire")
	}
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("expected DeadlineExceeded, got %v", ctx.Err())
	}
}
