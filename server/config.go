package server

import (
	"io"
	"runtime"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
)

// Config encapsulates the settings for a ConnectionMux.
type Config struct {
	// ListenAddr is the host:port the listening socket binds to. Defaults
	// to the reference protocol's 127.0.0.1:5555.
	ListenAddr string
	// NumWorkers is the size of the leader-follower worker pool. Defaults
	// to the greater of 2 and the host's hardware parallelism.
	NumWorkers int
	// PollTimeout bounds each leader's poll call so shutdown is observed
	// within this interval even when idle.
	PollTimeout time.Duration
	// ShutdownTimeout bounds how long Stop waits for worker goroutines to
	// observe the stop flag and exit before giving up on a clean join.
	ShutdownTimeout time.Duration
	// Clock abstracts wall-clock access for the shutdown timeout. Defaults
	// to clock.WallClock.
	Clock clock.Clock
	// Logger receives structured log entries. Defaults to a discard logger.
	Logger *logrus.Entry
}

func (cfg *Config) validate() error {
	var err error
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:5555"
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = runtime.GOMAXPROCS(0)
		if cfg.NumWorkers < 2 {
			cfg.NumWorkers = 2
		}
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 100 * time.Millisecond
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.NewEntry(&logrus.Logger{Out: io.Discard, Formatter: new(logrus.TextFormatter)})
	}
	if cfg.NumWorkers < 2 {
		err = multierror.Append(err, xerrors.Errorf("NumWorkers must be at least 2"))
	}
	return err
}
