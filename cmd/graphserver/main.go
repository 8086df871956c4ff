// Command graphserver starts the graph compute service: it accepts
// line-oriented TCP connections, runs every committed graph through the
// fixed algorithm battery, and reports the aggregated results back to the
// submitting connection.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"GraphCompute/pipeline"
	"GraphCompute/registry"
	"GraphCompute/server"
)

// deferredSender implements pipeline.Sender over a *server.ConnectionMux
// that doesn't exist yet at pipeline-construction time: the pipeline and
// the connection mux each need to know about the other.
type deferredSender struct {
	mux *server.ConnectionMux
}

func (d *deferredSender) Send(clientID uuid.UUID, payload string) error {
	return d.mux.Send(clientID, payload)
}

func main() {
	var addr string
	var workers int
	var verbose bool

	flag.StringVar(&addr, "addr", "127.0.0.1:5555", "address (host:port) to listen on")
	flag.IntVar(&workers, "workers", 0, "leader-follower worker pool size (0 = auto)")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	entry := logrus.NewEntry(log)

	reg := registry.Default()
	sender := &deferredSender{}

	p := pipeline.New(reg, sender, entry)
	p.Start()

	cfg := server.Config{
		ListenAddr: addr,
		NumWorkers: workers,
		Logger:     entry,
	}
	mux, err := server.New(cfg, p)
	if err != nil {
		entry.WithError(err).Fatal("failed to construct server")
	}
	sender.mux = mux

	if err := mux.Start(); err != nil {
		entry.WithError(err).Fatal("failed to start server")
	}
	entry.WithField("addr", addr).Info("graphserver ready")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh
	entry.WithField("signal", sig).Info("shutting down")

	if err := mux.Stop(); err != nil {
		entry.WithError(err).Error("error during server shutdown")
	}
	if err := p.Stop(); err != nil {
		entry.WithError(err).Error("error during pipeline shutdown")
	}
}
