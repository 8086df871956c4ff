// Package server implements the leader-follower connection multiplexer:
// a fixed pool of worker goroutines takes turns as the single poller over
// every accepted connection, then drops the leader token before doing any
// blocking I/O so a follower can take over polling immediately.
package server

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"

	"GraphCompute/pipeline"
)

const readChunk = 4096

// ConnectionMux owns the listening socket and the leader-follower worker
// pool that reads command lines off accepted connections and submits
// completed jobs to a pipeline.
type ConnectionMux struct {
	cfg      Config
	pipeline *pipeline.Pipeline
	state    *sharedState

	listenFd int
	stopped  chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a ConnectionMux bound to p. Start must be called to begin
// accepting connections.
func New(cfg Config, p *pipeline.Pipeline) (*ConnectionMux, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("invalid server config: %w", err)
	}
	return &ConnectionMux{
		cfg:      cfg,
		pipeline: p,
		state:    newSharedState(),
		stopped:  make(chan struct{}),
	}, nil
}

// Send implements pipeline.Sender by writing payload to clientID's
// connection, retrying on partial writes until complete.
func (m *ConnectionMux) Send(clientID uuid.UUID, payload string) error {
	return m.send(clientID, payload)
}

// Start binds the listening socket and launches the worker pool.
func (m *ConnectionMux) Start() error {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, 0)
	if err != nil {
		return xerrors.Errorf("socket: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return xerrors.Errorf("setsockopt(SO_REUSEADDR): %w", err)
	}

	sa, err := resolveSockaddr(m.cfg.ListenAddr)
	if err != nil {
		unix.Close(fd)
		return xerrors.Errorf("resolve listen address %q: %w", m.cfg.ListenAddr, err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return xerrors.Errorf("bind %q: %w", m.cfg.ListenAddr, err)
	}
	if err := unix.Listen(fd, 64); err != nil {
		unix.Close(fd)
		return xerrors.Errorf("listen: %w", err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return xerrors.Errorf("set listen fd non-blocking: %w", err)
	}

	m.listenFd = fd
	m.state.stateMu.Lock()
	m.state.fds = append(m.state.fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	m.state.stateMu.Unlock()

	m.cfg.Logger.WithField("addr", m.cfg.ListenAddr).Info("graph compute server listening")

	for i := 0; i < m.cfg.NumWorkers; i++ {
		m.wg.Add(1)
		go m.workerLoop(i)
	}
	return nil
}

// Stop signals every worker to exit and waits up to ShutdownTimeout for
// them to join, then closes all connections.
func (m *ConnectionMux) Stop() error {
	var result error
	m.stopOnce.Do(func() {
		close(m.stopped)
		m.state.leaderMu.Lock()
		m.state.shuttingDown = true
		m.state.leaderCond.Broadcast()
		m.state.leaderMu.Unlock()

		joined := make(chan struct{})
		go func() {
			m.wg.Wait()
			close(joined)
		}()

		select {
		case <-joined:
		case <-m.cfg.Clock.After(m.cfg.ShutdownTimeout):
			result = multierror.Append(result, xerrors.New("timed out waiting for worker pool to join"))
		}

		m.state.stateMu.Lock()
		for fd := range m.state.conns {
			unix.Close(fd)
		}
		m.state.stateMu.Unlock()
		if m.listenFd != 0 {
			unix.Close(m.listenFd)
		}
	})
	if result != nil {
		return result.(*multierror.Error).ErrorOrNil()
	}
	return nil
}

// workerLoop is one leader-follower pool member: it waits for the leader
// token, polls every fd while holding it, claims a ready fd, releases the
// token so a follower can start polling, then services the claimed fd.
func (m *ConnectionMux) workerLoop(id int) {
	defer m.wg.Done()
	log := m.cfg.Logger.WithField("worker", id)

	for {
		select {
		case <-m.stopped:
			return
		default:
		}

		m.state.leaderMu.Lock()
		for m.state.leaderToken && !m.state.shuttingDown {
			m.state.leaderCond.Wait()
		}
		if m.state.shuttingDown {
			m.state.leaderCond.Broadcast()
			m.state.leaderMu.Unlock()
			return
		}
		m.state.leaderToken = true
		m.state.leaderMu.Unlock()

		m.state.drainPendingCloses()
		fds := m.state.snapshotFds()

		n, err := unix.Poll(fds, int(m.cfg.PollTimeout.Milliseconds()))
		if err != nil {
			if err == unix.EINTR {
				m.releaseLeader()
				continue
			}
			log.WithError(err).Warn("poll failed")
			m.releaseLeader()
			continue
		}
		if n == 0 {
			m.releaseLeader()
			continue
		}

		chosen := -1
		for _, pfd := range fds {
			if pfd.Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0 {
				chosen = int(pfd.Fd)
				break
			}
		}

		if chosen == m.listenFd {
			m.acceptOne(log)
			m.releaseLeader()
			continue
		}

		m.releaseLeader()
		if chosen >= 0 {
			m.service(chosen, log)
		}
	}
}

func (m *ConnectionMux) releaseLeader() {
	m.state.leaderMu.Lock()
	m.state.leaderToken = false
	m.state.leaderCond.Signal()
	m.state.leaderMu.Unlock()
}

func (m *ConnectionMux) acceptOne(log *logrus.Entry) {
	fd, _, err := unix.Accept(m.listenFd)
	if err != nil {
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return
		}
		log.WithError(err).Warn("accept failed")
		return
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return
	}
	m.state.addConn(fd)
}

// service drains every complete line currently available on fd, servicing
// each through processLine, and re-buffers any trailing partial line.
func (m *ConnectionMux) service(fd int, log *logrus.Entry) {
	if _, ok := m.state.conn(fd); !ok {
		return
	}

	buf := make([]byte, readChunk)
	for {
		n, err := unix.Read(fd, buf)
		if n > 0 {
			m.state.withConn(fd, func(c *connState) {
				c.inbuf = append(c.inbuf, buf[:n]...)
			})
		}
		if n == 0 && err == nil {
			m.state.markPendingClose(fd)
			break
		}
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				break
			}
			if err == unix.EINTR {
				continue
			}
			log.WithError(err).WithField("fd", fd).Debug("read failed, closing connection")
			m.state.markPendingClose(fd)
			break
		}
		if n < len(buf) {
			break
		}
	}

	m.drainLines(fd)
}

func (m *ConnectionMux) drainLines(fd int) {
	for {
		var line string
		found := false
		m.state.withConn(fd, func(c *connState) {
			for i, b := range c.inbuf {
				if b == '\n' {
					line = string(c.inbuf[:i])
					c.inbuf = append([]byte(nil), c.inbuf[i+1:]...)
					found = true
					return
				}
			}
		})
		if !found {
			return
		}
		m.processLine(fd, line, func(resp string) {
			_ = m.sendFd(fd, resp)
		})
	}
}

func (m *ConnectionMux) sendFd(fd int, payload string) error {
	data := []byte(payload)
	for len(data) > 0 {
		n, err := unix.Write(fd, data)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				continue
			}
			return xerrors.Errorf("write to fd %d: %w", fd, err)
		}
		data = data[n:]
	}
	return nil
}

func (m *ConnectionMux) send(clientID uuid.UUID, payload string) error {
	fd, ok := m.state.fdForClient(clientID)
	if !ok {
		return xerrors.Errorf("no connection for client %s", clientID)
	}
	return m.sendFd(fd, payload)
}
