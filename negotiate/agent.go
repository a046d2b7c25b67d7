package negotiate

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/synpatico-dev/synpatico"
)

// Fetcher performs the upstream round trip for an Agent (spec.md
// §6.4's "Proxy adapter" collaborator: FETCH is the one suspension
// point in the agent's state machine, and the only piece that needs a
// real network). Tests supply a stub Fetcher; production code uses
// httpFetcher.
type Fetcher interface {
	Fetch(req *http.Request) (*http.Response, error)
}

// httpFetcher is the default Fetcher, a thin *http.Client wrapper —
// grounded on resiliency.EnhancedClient's "wrap *http.Client behind a
// single Do-like entry point" shape, stripped of retry/circuit-
// breaking (out of scope here; spec.md §5 treats upstream timeout
// policy as belonging to the adapter, not the core).
type httpFetcher struct {
	client *http.Client
}

func (f *httpFetcher) Fetch(req *http.Request) (*http.Response, error) {
	return f.client.Do(req)
}

// AgentOption configures an Agent.
type AgentOption func(*Agent)

// WithFetcher overrides the default Fetcher, e.g. for tests.
func WithFetcher(f Fetcher) AgentOption {
	return func(a *Agent) { a.fetcher = f }
}

// WithUpstreamAuth injects credentials into the forwarded upstream
// request (spec.md §4.G FETCH: "inject any upstream auth").
func WithUpstreamAuth(inject func(*http.Request)) AgentOption {
	return func(a *Agent) { a.injectAuth = inject }
}

// Agent is the server-side half of the negotiation layer (spec.md
// §4.G): it runs RECV → FETCH → LEARN → ENCODE? → EMIT for every
// inbound request, proxying to a fixed upstream origin. Agent wraps a
// *synpatico.Engine and never touches its caches directly — all
// learning and encoding go through the engine.
//
// Grounded on Mindburn-Labs-helm's proxy_cmd.go: a reverse-proxy
// handler that reads the full upstream body, mutates it, and re-emits
// it with correlation headers, restructured here around the RECV/
// FETCH/LEARN/ENCODE?/EMIT states instead of governance receipts, and
// using capitan signals (synpatico/signals.go's sibling set in
// signals.go) in place of a JSONL receipt log.
type Agent struct {
	engine     *synpatico.Engine
	upstream   string // scheme://host, no trailing slash
	fetcher    Fetcher
	injectAuth func(*http.Request)
}

// NewAgent returns an Agent proxying to upstream (e.g.
// "https://api.example.com") through engine.
func NewAgent(engine *synpatico.Engine, upstream string, opts ...AgentOption) *Agent {
	a := &Agent{
		engine:   engine,
		upstream: strings.TrimSuffix(upstream, "/"),
		fetcher:  &httpFetcher{client: &http.Client{Timeout: 30 * time.Second}},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ServeHTTP implements http.Handler.
func (a *Agent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	emitRequestStart(requestID, r.Method, r.URL.Path)

	acceptID := r.Header.Get(HeaderAcceptID)

	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		respondInternalError(w)
		return
	}
	_ = r.Body.Close()

	forwardBody, ok := a.recv(w, requestID, r, reqBody)
	if !ok {
		return
	}

	upstreamReq, err := a.buildUpstreamRequest(r, forwardBody)
	if err != nil {
		respondInternalError(w)
		return
	}

	fetchStart := time.Now()
	resp, err := a.fetcher.Fetch(upstreamReq)
	if err != nil {
		emitFetchComplete(requestID, 0, time.Since(fetchStart), err)
		http.Error(w, `{"error":"Upstream Failure"}`, http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	emitFetchComplete(requestID, resp.StatusCode, time.Since(fetchStart), nil)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		respondInternalError(w)
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.emitRaw(w, resp, respBody)
		return
	}

	def, fp, v, learned := a.learn(requestID, respBody)
	if learned && acceptID != "" && string(def.ID) == acceptID {
		if a.tryEncode(w, requestID, resp, respBody, v, fp) {
			return
		}
	} else if acceptID != "" {
		emitEncodeSkipped(requestID, "no-matching-structure")
	}

	a.emitRaw(w, resp, respBody)
}

// recv implements the RECV/DECODE_REQ? state (spec.md §4.G step 1).
// It is a no-op unless two-way optimization is enabled on the engine —
// the feature is optional and off by default in this revision.
func (a *Agent) recv(w http.ResponseWriter, requestID string, r *http.Request, body []byte) ([]byte, bool) {
	if !a.engine.RequestOptimizationEnabled() || !isPacketContentType(r.Header.Get("Content-Type")) {
		return body, true
	}

	var p synpatico.Packet
	if err := json.Unmarshal(body, &p); err != nil {
		emitStateConflict(requestID, r.Method, r.URL.Path)
		respondConflict(w)
		return nil, false
	}
	def, ok := a.engine.Lookup(p.StructureId)
	if !ok {
		emitStateConflict(requestID, r.Method, r.URL.Path)
		respondConflict(w)
		return nil, false
	}
	v, err := synpatico.Decode(p, def)
	if err != nil {
		emitStateConflict(requestID, r.Method, r.URL.Path)
		respondConflict(w)
		return nil, false
	}
	raw, err := json.Marshal(synpatico.ValueToAny(v))
	if err != nil {
		respondInternalError(w)
		return nil, false
	}
	return raw, true
}

// learn implements the LEARN state (spec.md §4.G step 3): if the
// upstream body is a JSON object, fingerprint and shape it and store
// it in the engine's ShapeCache. It also returns the FingerprintResult
// and parsed Value it computed, so tryEncode can reuse both instead of
// re-parsing the same body and re-fingerprinting the same value.
func (a *Agent) learn(requestID string, body []byte) (synpatico.StructureDefinition, synpatico.FingerprintResult, synpatico.Value, bool) {
	var raw any
	if err := json.Unmarshal(body, &raw); err != nil {
		return synpatico.StructureDefinition{}, synpatico.FingerprintResult{}, nil, false
	}
	if _, isObject := raw.(map[string]any); !isObject {
		return synpatico.StructureDefinition{}, synpatico.FingerprintResult{}, nil, false
	}
	v := synpatico.ValueFromAny(raw)
	def, fp, err := a.engine.LearnFingerprint(v)
	if err != nil {
		return synpatico.StructureDefinition{}, synpatico.FingerprintResult{}, nil, false
	}
	emitLearnComplete(requestID, string(def.ID))
	return def, fp, v, true
}

// tryEncode implements the ENCODE? state (spec.md §4.G step 4): build
// a packet from the already-learned value and emit it only if it
// passes the size-safety check (spec.md §4.F). Returns false (leaving
// the caller to forward raw JSON) on a packet marshal error or a
// failed size check. v and fp are the value and fingerprint learn already
// computed for this exact body — reused here rather than re-parsed
// and re-fingerprinted.
func (a *Agent) tryEncode(w http.ResponseWriter, requestID string, resp *http.Response, body []byte, v synpatico.Value, fp synpatico.FingerprintResult) bool {
	packet := a.engine.EncodeWithFingerprint(v, fp)
	packetJSON, err := json.Marshal(packet)
	if err != nil {
		emitEncodeSkipped(requestID, "marshal-error")
		return false
	}
	if !synpatico.ShouldEmitPacket(packetJSON, body) {
		emitEncodeSkipped(requestID, "size-safety-check-failed")
		return false
	}

	emitEmitPacket(requestID, string(packet.StructureId))
	copyResponseHeaders(w.Header(), resp.Header)
	w.Header().Set("Content-Type", ContentTypePacket)
	w.Header().Set(HeaderStructureID, string(packet.StructureId))
	w.Header().Set(HeaderAgent, AgentFlagValue)
	w.Header().Set("Content-Length", strconv.Itoa(len(packetJSON)))
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(packetJSON)
	return true
}

// emitRaw implements the fallback EMIT path: forward the upstream
// body unchanged as standard JSON, still tagged as Synpatico-capable
// so the client can learn the origin for future requests.
func (a *Agent) emitRaw(w http.ResponseWriter, resp *http.Response, body []byte) {
	copyResponseHeaders(w.Header(), resp.Header)
	w.Header().Set(HeaderAgent, AgentFlagValue)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(body)
}

func (a *Agent) buildUpstreamRequest(r *http.Request, body []byte) (*http.Request, error) {
	target := a.upstream + r.URL.Path
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	copyRequestHeaders(req.Header, r.Header)
	req.ContentLength = int64(len(body))
	if a.injectAuth != nil {
		a.injectAuth(req)
	}
	return req, nil
}

func isPacketContentType(contentType string) bool {
	return strings.HasPrefix(contentType, ContentTypePacket)
}

func respondConflict(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(http.StatusConflict)
	_, _ = w.Write([]byte(`{"error":"State Conflict"}`))
}

func respondInternalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"Internal Proxy Error"}`))
}

func copyRequestHeaders(dst, src http.Header) {
	for k, vs := range src {
		if isHopByHop(k) {
			continue
		}
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

func copyResponseHeaders(dst, src http.Header) {
	for k, vs := range src {
		if isHopByHop(k) {
			continue
		}
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}

func isHopByHop(header string) bool {
	for _, h := range hopByHopHeaders {
		if strings.EqualFold(h, header) {
			return true
		}
	}
	return false
}

