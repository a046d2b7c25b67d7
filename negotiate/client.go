package negotiate

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/synpatico-dev/synpatico"
)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTransport overrides the underlying http.RoundTripper. Defaults
// to http.DefaultTransport.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(c *Client) { c.transport = rt }
}

// Client is the caller-side half of the negotiation layer (spec.md
// §4.G): an http.RoundTripper that transparently offers, negotiates,
// and decodes Synpatico packets around an ordinary *http.Client.
//
// Grounded on resiliency.EnhancedClient's "wrap *http.Client behind a
// single entry point, mutex-guarded state" shape — generalized here
// from retry/circuit-breaking to negotiate/learn/fallback, and
// implemented as http.RoundTripper instead of a Do method so it drops
// into any existing *http.Client via its Transport field without
// callers changing how they issue requests.
type Client struct {
	transport http.RoundTripper
	engine    *synpatico.Engine
	endpoints *EndpointCache
}

// NewClient returns a Client that negotiates through engine.
func NewClient(engine *synpatico.Engine, opts ...ClientOption) *Client {
	c := &Client{
		transport: http.DefaultTransport,
		engine:    engine,
		endpoints: NewEndpointCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearCache discards all learned endpoint and structure state
// (spec.md §6.4: the client adapter "must never mutate cache entries
// directly" — this is the one sanctioned reset operation).
func (c *Client) ClearCache() {
	c.endpoints.Reset()
}

// RoundTrip implements http.RoundTripper, running the client state
// machine of spec.md §4.G for every request.
func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	origin := requestOrigin(req)
	url := req.URL.String()

	// http.RoundTripper must not modify req (other than consuming/
	// closing Body): set the negotiation header on a clone, the same
	// way retryWithoutNegotiation already clones before changing
	// headers, rather than mutating the caller's request in place.
	outgoing := req
	if c.endpoints.IsCapable(origin) {
		if id, ok := c.endpoints.StructureIDFor(url); ok {
			outgoing = req.Clone(req.Context())
			outgoing.Header.Set(HeaderAcceptID, id)
		}
	}

	resp, err := c.transport.RoundTrip(outgoing)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusConflict && outgoing.Header.Get(HeaderAcceptID) != "" {
		return c.retryWithoutNegotiation(req, origin, url, resp)
	}

	if resp.Header.Get(HeaderAgent) == "" {
		// Not a Synpatico-enabled origin: pass through, do not learn.
		return resp, nil
	}
	c.endpoints.MarkCapable(origin)

	contentType := resp.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, ContentTypePacket):
		return c.decodePacketResponse(resp, url)
	case strings.HasPrefix(contentType, ContentTypeJSON):
		return c.learnFromJSONResponse(resp, url)
	default:
		return resp, nil
	}
}

// retryWithoutNegotiation implements spec.md §4.G client step 3: on a
// 409, discard learned state for this endpoint and retry once without
// the negotiation header, returning whatever that retry yields
// (success or otherwise) without further negotiation.
func (c *Client) retryWithoutNegotiation(req *http.Request, origin, url string, conflictResp *http.Response) (*http.Response, error) {
	_ = conflictResp.Body.Close()
	emitClientFallback(origin)
	c.endpoints.Forget(url)

	retryReq := req.Clone(req.Context())
	retryReq.Header.Del(HeaderAcceptID)
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retryReq.Body = body
	}
	return c.transport.RoundTrip(retryReq)
}

// decodePacketResponse implements spec.md §4.G client step 5's packet
// branch: decode via the engine's ShapeCache and hand the caller back
// an indistinguishable standard JSON response.
func (c *Client) decodePacketResponse(resp *http.Response, url string) (*http.Response, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}

	var p synpatico.Packet
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, err
	}

	def, ok := c.engine.Lookup(p.StructureId)
	if !ok {
		emitClientDecode(string(p.StructureId), ErrUnknownStructure)
		return nil, newNegotiationError(ErrUnknownStructure, resp.Request.Method, resp.Request.URL.Path)
	}

	v, err := synpatico.Decode(p, def)
	if err != nil {
		emitClientDecode(string(p.StructureId), err)
		return nil, err
	}
	emitClientDecode(string(p.StructureId), nil)
	c.endpoints.Learn(url, string(p.StructureId))

	raw, err := json.Marshal(synpatico.ValueToAny(v))
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(raw))
	resp.ContentLength = int64(len(raw))
	resp.Header.Set("Content-Type", ContentTypeJSON)
	resp.Header.Del(HeaderStructureID)
	return resp, nil
}

// learnFromJSONResponse implements spec.md §4.G client step 5's plain-
// JSON branch: fingerprint+shape the body via (4.B)+(4.C) and pass it
// through untouched.
func (c *Client) learnFromJSONResponse(resp *http.Response, url string) (*http.Response, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, err
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))
	resp.ContentLength = int64(len(body))

	var raw any
	if err := json.Unmarshal(body, &raw); err == nil {
		if _, isObject := raw.(map[string]any); isObject {
			v := synpatico.ValueFromAny(raw)
			if def, err := c.engine.Learn(v); err == nil {
				c.endpoints.Learn(url, string(def.ID))
			}
		}
	}
	return resp, nil
}

func requestOrigin(req *http.Request) string {
	return req.URL.Scheme + "://" + req.URL.Host
}
