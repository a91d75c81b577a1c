// Package proxy relays a downstream client connection to an upstream
// origin server, probing and parsing every packet that crosses the
// wire so the rest of the module can observe it, and handling the
// handful of packets the core itself must intercept (the server-list
// ping) without breaking the relay for everything else.
package proxy

import (
	"time"

	"github.com/mickamy/craftd-proxy/survival"
)

// Config holds the upstream origin a Supervisor dials for every
// accepted downstream connection, and the operational knobs that
// shape how sessions behave.
type Config struct {
	// Listen is the address the supervisor accepts downstream
	// connections on.
	Listen string

	// Hostname and Port name the upstream origin server every session
	// dials.
	Hostname string
	Port     int

	// KickMessage is logged (never sent to the peer) whenever a
	// session is torn down for a malformed packet.
	KickMessage string

	// DialTimeout bounds how long dialing the upstream may take before
	// the downstream connection is kicked.
	DialTimeout time.Duration

	// PingDescription is the text written back as the Ping-direction
	// Disconnect payload in response to a ListPing, per the
	// server-list-ping convention.
	PingDescription string
}

// Buffers holds the two directions' byte buffers for one session, the
// attribute the core attaches under the "proxy.buffers" key so other
// components can inspect in-flight, not-yet-complete framing state.
type Buffers struct {
	Downstream *survival.Buffer // bytes read from the client, not yet forwarded
	Upstream   *survival.Buffer // bytes read from the origin, not yet forwarded
}

// NewBuffers returns a pair of empty buffers for a new session.
func NewBuffers() *Buffers {
	return &Buffers{
		Downstream: survival.NewBuffer(),
		Upstream:   survival.NewBuffer(),
	}
}

// BuffersAttrKey is the attrs.Store key the core uses to attach a
// session's Buffers, per the attribute store's single built-in use.
const BuffersAttrKey = "proxy.buffers"
