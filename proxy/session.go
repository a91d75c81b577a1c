package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mickamy/craftd-proxy/attrs"
	"github.com/mickamy/craftd-proxy/monitor"
	"github.com/mickamy/craftd-proxy/survival"
)

// sessionState tracks where a Session is in its lifecycle, for
// logging and for making teardown idempotent.
type sessionState int

const (
	stateConnecting sessionState = iota
	stateOpen
	stateClosing
)

// Session manages bidirectional relay and packet dispatch for one
// downstream connection and its matched upstream connection.
//
// Structurally grounded on the teacher's conn.relay /
// relayClientToUpstream / relayUpstreamToClient pattern: one goroutine
// per direction, a shared errCh of capacity 2, and teardown that
// closes both net.Conns and drains the second goroutine's error before
// returning. Unlike the teacher's length-prefixed DB packets, this
// protocol's packets are implicit-length, so each direction's loop
// appends newly read bytes to that direction's buffer and drains every
// complete packet Probe reports before blocking on the next Read.
type Session struct {
	id     string
	cfg    Config
	broker *monitor.Broker
	attrs  *attrs.Store

	downstream net.Conn
	upstream   net.Conn

	bufs *Buffers

	state     sessionState
	closeOnce sync.Once
}

// NewSession wraps an already-accepted downstream connection. The
// upstream connection is supplied once dialed by the Supervisor.
func NewSession(cfg Config, downstream, upstream net.Conn, broker *monitor.Broker) *Session {
	bufs := NewBuffers()
	store := attrs.New()
	store.Put(BuffersAttrKey, bufs)

	return &Session{
		id:         uuid.New().String(),
		cfg:        cfg,
		broker:     broker,
		attrs:      store,
		downstream: downstream,
		upstream:   upstream,
		bufs:       bufs,
		state:      stateConnecting,
	}
}

// ID returns the session's opaque correlation ID.
func (s *Session) ID() string {
	return s.id
}

// Attrs returns the session's attribute store.
func (s *Session) Attrs() *attrs.Store {
	return s.attrs
}

// Relay drives the session until either side disconnects or ctx is
// canceled, then tears down both connections.
func (s *Session) Relay(ctx context.Context) error {
	s.state = stateOpen
	log.Printf("proxy: session %s open (%s -> %s)", s.id, s.downstream.RemoteAddr(), s.upstream.RemoteAddr())

	stop := context.AfterFunc(ctx, s.close)
	defer stop()

	errCh := make(chan error, 2)
	go func() { errCh <- s.relayDownstream(ctx) }()
	go func() { errCh <- s.relayUpstream(ctx) }()

	err := <-errCh
	s.close()
	<-errCh

	log.Printf("proxy: session %s closed", s.id)
	return err
}

// close tears down both connections. Safe to call more than once, and
// from more than one goroutine: only the first call closes anything.
func (s *Session) close() {
	s.closeOnce.Do(func() {
		s.state = stateClosing
		_ = s.downstream.Close()
		_ = s.upstream.Close()
	})
}

// kick tears the session down and logs cfg.KickMessage alongside the
// concrete reason. The message is never sent to the peer; it is
// purely an operator-facing log line, per the CLI's -kick-message flag.
func (s *Session) kick(reason string) error {
	s.close()
	if s.cfg.KickMessage != "" {
		log.Printf("proxy: session %s kicked: %s (%s)", s.id, s.cfg.KickMessage, reason)
	} else {
		log.Printf("proxy: session %s kicked: %s", s.id, reason)
	}
	return fmt.Errorf("%w: %s", survival.ErrMalformed, reason)
}

func (s *Session) publish(dir survival.Direction, pkt survival.Packet) {
	if s.broker == nil {
		return
	}
	s.broker.Publish(monitor.Observed{SessionID: s.id, Direction: dir, Packet: pkt})
}

// relayDownstream reads client bytes, drains every complete Request
// packet, and forwards the raw bytes upstream unless the packet is one
// the core must intercept locally (ListPing).
func (s *Session) relayDownstream(ctx context.Context) error {
	readBuf := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, err := s.downstream.Read(readBuf)
		if n > 0 {
			s.bufs.Downstream.Append(readBuf[:n])
			if err := s.drainDownstream(); err != nil {
				return err
			}
		}
		if err != nil {
			if isClosedErr(err) {
				return nil
			}
			return fmt.Errorf("proxy: read downstream: %w", err)
		}
	}
}

// drainDownstream forwards every complete Request packet currently
// buffered, intercepting ListPing rather than forwarding it.
func (s *Session) drainDownstream() error {
	for {
		length, err := survival.Probe(survival.Request, s.bufs.Downstream)
		if errors.Is(err, survival.ErrNeedMore) {
			s.bufs.Downstream.Reclaim()
			return nil
		}
		if err != nil {
			return s.kick(err.Error())
		}

		raw := s.bufs.Downstream.Take(length)
		rawCopy := append([]byte(nil), raw...)

		frame := survival.NewBuffer()
		frame.Append(rawCopy)
		pkt, err := survival.Parse(survival.Request, frame)
		if err != nil {
			return s.kick(err.Error())
		}
		s.publish(survival.Request, pkt)

		if pkt.Opcode == survival.OpListPing {
			if err := s.handleListPing(); err != nil {
				return err
			}
			continue
		}

		if _, err := s.upstream.Write(rawCopy); err != nil {
			if isClosedErr(err) {
				return nil
			}
			return fmt.Errorf("proxy: write upstream: %w", err)
		}
	}
}

// handleListPing synthesizes the Ping-direction Disconnect reply
// locally rather than forwarding the ListPing upstream, per the
// server-list-ping convention.
func (s *Session) handleListPing() error {
	reply := survival.Packet{
		Direction: survival.Ping,
		Opcode:    survival.OpDisconnect,
		Payload:   survival.Disconnect{Text: s.cfg.PingDescription},
	}
	out := survival.NewBuffer()
	if err := survival.Serialize(reply, out); err != nil {
		return s.kick(err.Error())
	}
	s.publish(survival.Ping, reply)

	if _, err := s.downstream.Write(out.Take(out.Len())); err != nil {
		if isClosedErr(err) {
			return nil
		}
		return fmt.Errorf("proxy: write ping reply: %w", err)
	}
	return nil
}

// relayUpstream reads origin bytes, drains every complete Response
// packet, and forwards the raw bytes downstream.
func (s *Session) relayUpstream(ctx context.Context) error {
	readBuf := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		n, err := s.upstream.Read(readBuf)
		if n > 0 {
			s.bufs.Upstream.Append(readBuf[:n])
			if err := s.drainUpstream(); err != nil {
				return err
			}
		}
		if err != nil {
			if isClosedErr(err) {
				return nil
			}
			return fmt.Errorf("proxy: read upstream: %w", err)
		}
	}
}

func (s *Session) drainUpstream() error {
	for {
		length, err := survival.Probe(survival.Response, s.bufs.Upstream)
		if errors.Is(err, survival.ErrNeedMore) {
			s.bufs.Upstream.Reclaim()
			return nil
		}
		if err != nil {
			return s.kick(err.Error())
		}

		raw := s.bufs.Upstream.Take(length)
		rawCopy := append([]byte(nil), raw...)

		frame := survival.NewBuffer()
		frame.Append(rawCopy)
		pkt, err := survival.Parse(survival.Response, frame)
		if err != nil {
			return s.kick(err.Error())
		}
		s.publish(survival.Response, pkt)

		if _, err := s.downstream.Write(rawCopy); err != nil {
			if isClosedErr(err) {
				return nil
			}
			return fmt.Errorf("proxy: write downstream: %w", err)
		}
	}
}

// isClosedErr reports whether err represents an expected
// connection-closed condition rather than a genuine transport failure.
func isClosedErr(err error) bool {
	if errors.Is(err, io.EOF) {
		return true
	}
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return netErr.Err.Error() == "use of closed network connection"
	}
	return strings.Contains(err.Error(), "closed")
}
