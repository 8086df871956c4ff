package server

import (
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"GraphCompute/graph"
)

// connState is one connection's per-client state: an optional in-progress
// graph, its declared vertex count, any staged max-flow parameters, and the
// unconsumed tail of its receive buffer.
type connState struct {
	clientID uuid.UUID
	graph    *graph.Graph
	n        int
	directed bool
	hasGraph bool

	mfSource, mfSink graph.Vertex
	hasMaxFlow       bool

	inbuf []byte
}

// sharedState is the encapsulated replacement for the reference
// implementation's global fd vector and leader token: one state mutex
// guards connection bookkeeping, a distinct leader mutex/condition guards
// the leader-follower token.
type sharedState struct {
	stateMu sync.Mutex
	fds     []unix.PollFd
	conns   map[int]*connState
	pending []int // fds to close and erase at the next safe point

	leaderMu     sync.Mutex
	leaderCond   *sync.Cond
	leaderToken  bool
	shuttingDown bool
}

func newSharedState() *sharedState {
	s := &sharedState{conns: make(map[int]*connState)}
	s.leaderCond = sync.NewCond(&s.leaderMu)
	return s
}

// addConn registers a newly accepted connection.
func (s *sharedState) addConn(fd int) uuid.UUID {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	id := uuid.New()
	s.conns[fd] = &connState{clientID: id}
	s.fds = append(s.fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	return id
}

// snapshotFds returns a copy of the poll set safe to pass to unix.Poll
// without holding stateMu across the syscall.
func (s *sharedState) snapshotFds() []unix.PollFd {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	out := make([]unix.PollFd, len(s.fds))
	copy(out, s.fds)
	return out
}

// markPendingClose defers closing fd to the next safe point so the current
// poll snapshot stays valid for the remainder of this iteration.
func (s *sharedState) markPendingClose(fd int) {
	s.stateMu.Lock()
	s.pending = append(s.pending, fd)
	s.stateMu.Unlock()
}

// drainPendingCloses closes every fd marked for deferred close and erases
// its per-connection state.
func (s *sharedState) drainPendingCloses() []int {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	closed := s.pending
	s.pending = nil
	for _, fd := range closed {
		unix.Close(fd)
		delete(s.conns, fd)
		for i, p := range s.fds {
			if int(p.Fd) == fd {
				s.fds = append(s.fds[:i], s.fds[i+1:]...)
				break
			}
		}
	}
	return closed
}

func (s *sharedState) conn(fd int) (*connState, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	c, ok := s.conns[fd]
	return c, ok
}

func (s *sharedState) fdForClient(clientID uuid.UUID) (int, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	for fd, c := range s.conns {
		if c.clientID == clientID {
			return fd, true
		}
	}
	return 0, false
}

// withConn runs fn against fd's state under stateMu, the idiom every
// command handler uses to read or mutate connection state.
func (s *sharedState) withConn(fd int, fn func(*connState)) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()
	c, ok := s.conns[fd]
	if !ok {
		return
	}
	fn(c)
}
