package proxy

import (
	"context"
	"fmt"
	"log"
	"net"

	"github.com/mickamy/craftd-proxy/monitor"
)

// Supervisor accepts downstream connections and, for each one, dials
// the configured upstream before starting a Session's relay.
//
// Grounded on the teacher's cmd/sql-tapd/main.go run(): a
// cancellation-aware net.ListenConfig.Listen plus a per-connection
// goroutine dispatch, generalized here to dial upstream per accepted
// connection (rather than once for the whole daemon) since each game
// session is an independent proxied connection pair.
type Supervisor struct {
	cfg    Config
	broker *monitor.Broker
}

// NewSupervisor returns a Supervisor for cfg, publishing observed
// packets to broker (which may be nil to disable monitoring).
func NewSupervisor(cfg Config, broker *monitor.Broker) *Supervisor {
	return &Supervisor{cfg: cfg, broker: broker}
}

// ListenAndServe accepts downstream connections until ctx is canceled
// or the listener fails.
func (sup *Supervisor) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", sup.cfg.Listen)
	if err != nil {
		return fmt.Errorf("proxy: listen %s: %w", sup.cfg.Listen, err)
	}
	defer func() { _ = ln.Close() }()

	log.Printf("proxy: listening on %s, upstream %s:%d", sup.cfg.Listen, sup.cfg.Hostname, sup.cfg.Port)

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("proxy: accept: %w", err)
		}
		go sup.handle(ctx, conn)
	}
}

// handle dials the upstream for one accepted downstream connection and
// starts its Session relay. A failed dial kicks the downstream
// connection without ever handing it a Session.
func (sup *Supervisor) handle(ctx context.Context, downstream net.Conn) {
	dialCtx := ctx
	if sup.cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, sup.cfg.DialTimeout)
		defer cancel()
	}

	var dialer net.Dialer
	addr := fmt.Sprintf("%s:%d", sup.cfg.Hostname, sup.cfg.Port)
	upstream, err := dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		log.Printf("proxy: dial upstream %s failed: %v", addr, err)
		_ = downstream.Close()
		return
	}

	session := NewSession(sup.cfg, downstream, upstream, sup.broker)
	if err := session.Relay(ctx); err != nil {
		log.Printf("proxy: session %s ended: %v", session.ID(), err)
	}
}
