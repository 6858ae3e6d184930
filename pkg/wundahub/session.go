package wundahub

import (
	"net/http"
	"runtime"
	"sync"
	"time"
)

// SessionManager owns the per-hub connection discipline. The embedded HTTP
// server on the hub cannot handle concurrent connections, so every request
// to one address goes through that address's gate. It also hands out the
// HTTP clients: a long-lived one per address for polling, and throwaway
// ones for one-off calls such as credential validation.
//
// One SessionManager is owned by the coordinator and injected into each
// HubClient; its lifetime is the coordinator's, not the process's.
type SessionManager struct {
	mu        sync.Mutex
	gates     map[string]*sync.Mutex
	clients   map[string]*http.Client
	keepAlive time.Duration
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		gates:     map[string]*sync.Mutex{},
		clients:   map[string]*http.Client{},
		keepAlive: MinKeepAlive,
	}
}

// Acquire serializes access to one hub address. The returned release func
// must be called when the network operation is fully finished.
func (s *SessionManager) Acquire(address string) (release func()) {
	s.mu.Lock()
	gate, ok := s.gates[address]
	if !ok {
		gate = &sync.Mutex{}
		s.gates[address] = gate
	}
	s.mu.Unlock()
	gate.Lock()
	return gate.Unlock
}

// Persistent returns the long-lived client for an address. The hub
// occasionally leaves connections half-closed after replying with
// Connection: close, so instead of reconnecting per poll we hold a single
// connection open with an idle timeout that outlasts the polling interval.
func (s *SessionManager) Persistent(address string, timeout time.Duration) *http.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.clients[address]; ok {
		return c
	}
	c := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxConnsPerHost:     1,
			MaxIdleConnsPerHost: 1,
			IdleConnTimeout:     s.keepAlive,
		},
	}
	s.clients[address] = c
	return c
}

// Transient returns a one-shot client plus a teardown func. The teardown
// force-closes the connection and yields briefly so the socket can finish
// closing before the caller's next request; otherwise the hub's small
// connection pool fills up with half-closed sockets.
func (s *SessionManager) Transient(timeout time.Duration) (*http.Client, func()) {
	tr := &http.Transport{
		DisableKeepAlives: true,
	}
	c := &http.Client{
		Timeout:   timeout,
		Transport: tr,
	}
	teardown := func() {
		tr.CloseIdleConnections()
		runtime.Gosched()
	}
	return c, teardown
}
