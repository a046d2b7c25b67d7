// Package negotiate implements the Synpatico negotiation layer
// (spec.md §4.G): the HTTP-header-driven state machine that decides,
// per request, whether an upstream JSON response can be replaced by a
// compact values-only packet. Agent implements the server/proxy side;
// Client implements the browser/caller side as an http.RoundTripper.
//
// This package knows about HTTP; the synpatico package it wraps does
// not (spec.md §5).
package negotiate

// HTTP header names, bit-exact per spec.md §6.1.
const (
	// HeaderAcceptID is sent request-direction, client → agent: "if
	// you can return this shape, optimize it."
	HeaderAcceptID = "X-Synpatico-Accept-ID"

	// HeaderStructureID is sent response-direction; echoes which shape
	// the packet body belongs to.
	HeaderStructureID = "X-Synpatico-ID"

	// HeaderAgent is sent response-direction; non-empty identifies a
	// Synpatico-enabled origin so the client can tag it as
	// optimization-capable.
	HeaderAgent = "X-Synpatico-Agent"
)

// ContentTypePacket is the content type identifying a Packet body
// (spec.md §6.1, §6.2).
const ContentTypePacket = "application/synpatico-packet+json"

// ContentTypeJSON is standard, unoptimized JSON.
const ContentTypeJSON = "application/json"

// AgentFlagValue is the value Agent sets for HeaderAgent. Any non-empty
// value satisfies the protocol; this is the one this implementation uses.
const AgentFlagValue = "1"

// hopByHopHeaders are stripped before forwarding a request upstream or
// emitting a response downstream (spec.md §4.G steps FETCH/EMIT).
var hopByHopHeaders = []string{
	"Connection",
	"Content-Encoding",
	"Transfer-Encoding",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Upgrade",
}
