package synpatico

import (
	"fmt"
	"sync"
	"time"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMaxDepth bounds recursion depth for both the fingerprinter and
// the shape extractor (spec.md §7). A zero or negative value makes
// Validate (and every engine operation) fail.
func WithMaxDepth(n int) Option {
	return func(e *Engine) { e.maxDepth = n }
}

// WithCollisionMode turns on the stateful newIdOnCollision fingerprint
// mode (spec.md §4.B). Off by default, matching the stateless,
// pure-function-of-structure behavior spec.md calls the "entire id a
// pure function of structure."
func WithCollisionMode(enabled bool) Option {
	return func(e *Engine) { e.newIDOnCollision = enabled }
}

// WithRequestOptimization turns on the two-way (request-body)
// optimization path. Disabled by default (spec.md §4.G: "optional and
// disabled by default in this revision").
func WithRequestOptimization(enabled bool) Option {
	return func(e *Engine) { e.requestOptimization = enabled }
}

// Engine wires components B through F behind a single configured
// entry point: fingerprinting, shape extraction, learning (populating
// the ShapeCache), and packet encode/decode. It does not know about
// HTTP or negotiation headers — see the sibling negotiate package for
// that layer.
//
// Grounded on cereal's Processor[T]: functional-option-free field
// configuration replaced with the functional-option constructor this
// domain needs (there is no type parameter to specialize here), but
// the validate-once-on-first-use gate is carried over verbatim
// (ensureValidated/sync.Once/validateErr).
type Engine struct {
	maxDepth            int
	newIDOnCollision    bool
	requestOptimization bool

	shapes     *ShapeCache
	keyBits    *KeyBitMap
	collisions *CollisionCounter

	validateOnce sync.Once
	validateErr  error
}

// NewEngine constructs an Engine with the given options applied over
// the documented defaults (DefaultMaxDepth, collision mode off,
// request optimization off).
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		maxDepth:   DefaultMaxDepth,
		shapes:     NewShapeCache(),
		keyBits:    NewKeyBitMap(),
		collisions: NewCollisionCounter(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks the engine's configuration. It also runs
// automatically on first use; calling it explicitly lets callers
// catch configuration errors at startup, same as cereal's
// Processor.Validate.
func (e *Engine) Validate() error {
	return e.ensureValidated()
}

func (e *Engine) ensureValidated() error {
	e.validateOnce.Do(func() {
		e.validateErr = e.validateConfig()
	})
	return e.validateErr
}

func (e *Engine) validateConfig() error {
	if e.maxDepth <= 0 {
		return fmt.Errorf("synpatico: max depth must be positive, got %d", e.maxDepth)
	}
	return nil
}

// RequestOptimizationEnabled reports whether the two-way optimization
// path is active for this engine.
func (e *Engine) RequestOptimizationEnabled() bool {
	return e.requestOptimization
}

// Shapes returns the engine's ShapeCache, for negotiation-layer code
// that needs to look up a StructureDefinition by id directly.
func (e *Engine) Shapes() *ShapeCache { return e.shapes }

// Fingerprint computes the StructureId of v using this engine's
// configured depth cap and collision mode (component B).
func (e *Engine) Fingerprint(v Value) (FingerprintResult, error) {
	if err := e.ensureValidated(); err != nil {
		return FingerprintResult{}, err
	}
	emitFingerprintStart()
	start := time.Now()
	res, err := Fingerprint(v, FingerprintOptions{
		MaxDepth:         e.maxDepth,
		NewIDOnCollision: e.newIDOnCollision,
		Counters:         e.collisions,
	})
	emitFingerprintComplete(res.ID, res.Levels, res.CollisionCount, time.Since(start), err)
	return res, err
}

// ExtractShape derives the Shape of v using this engine's configured
// depth cap (component C).
func (e *Engine) ExtractShape(v Value) (Shape, error) {
	if err := e.ensureValidated(); err != nil {
		return nil, err
	}
	return ExtractShape(v, ShapeOptions{MaxDepth: e.maxDepth})
}

// Learn computes v's StructureId and Shape and stores the resulting
// StructureDefinition in the engine's ShapeCache if not already
// present (spec.md §4.G "LEARN"). It returns the definition either
// way, so callers can always use the result without a separate
// Lookup.
func (e *Engine) Learn(v Value) (StructureDefinition, error) {
	def, _, err := e.LearnFingerprint(v)
	return def, err
}

// LearnFingerprint is Learn, additionally returning the
// FingerprintResult it computed along the way. Callers that go on to
// ENCODE the same value in the same request (spec.md §4.G steps 3-4
// run back to back) should pass that result to EncodeWithFingerprint
// instead of calling Encode, which would fingerprint v a second time —
// under collision mode that consumes another CollisionCounter slot and
// yields a StructureId that was never stored in the ShapeCache.
func (e *Engine) LearnFingerprint(v Value) (StructureDefinition, FingerprintResult, error) {
	if err := e.ensureValidated(); err != nil {
		return StructureDefinition{}, FingerprintResult{}, err
	}
	fp, err := e.Fingerprint(v)
	if err != nil {
		return StructureDefinition{}, FingerprintResult{}, err
	}
	shape, err := e.ExtractShape(v)
	if err != nil {
		return StructureDefinition{}, FingerprintResult{}, err
	}
	def := StructureDefinition{ID: fp.ID, Shape: shape}
	if e.shapes.StoreIfAbsent(def) {
		emitShapeLearned(def.ID)
	}
	return def, fp, nil
}

// Lookup returns the previously learned StructureDefinition for id.
func (e *Engine) Lookup(id StructureId) (StructureDefinition, bool) {
	return e.shapes.Get(id)
}

// Encode fingerprints v and packages it as a values-only Packet
// (component F). Prefer EncodeWithFingerprint when a FingerprintResult
// for v is already in hand (e.g. from LearnFingerprint moments
// earlier) — fingerprinting twice is wasted work and, under collision
// mode, mints a second, unstored StructureId for the same value.
func (e *Engine) Encode(v Value) (Packet, error) {
	if err := e.ensureValidated(); err != nil {
		return Packet{}, err
	}
	fp, err := e.Fingerprint(v)
	if err != nil {
		return Packet{}, err
	}
	return e.EncodeWithFingerprint(v, fp), nil
}

// EncodeWithFingerprint packages v as a values-only Packet (component
// F) using a FingerprintResult already computed for it, instead of
// fingerprinting again. This is the path negotiate.Agent's ENCODE?
// state uses, since it always follows LEARN on the identical value
// within the same request (spec.md §4.G steps 3-4).
func (e *Engine) EncodeWithFingerprint(v Value, fp FingerprintResult) Packet {
	p := Encode(v, fp)
	emitPacketEncoded(p.StructureId, len(p.Values))
	return p
}

// Decode looks up p's StructureId in the engine's ShapeCache and
// decodes against it (component F). It returns a *ShapeError wrapping
// ErrShapeMismatch when the id is unknown — the caller-facing
// equivalent of the client state machine's UnknownStructure signal
// (spec.md §4.G step 5).
func (e *Engine) Decode(p Packet) (Value, error) {
	if err := e.ensureValidated(); err != nil {
		return nil, err
	}
	def, ok := e.Lookup(p.StructureId)
	if !ok {
		err := newShapeError(ErrShapeMismatch, string(p.StructureId))
		emitPacketDecoded(p.StructureId, len(p.Values), err)
		return nil, err
	}
	v, err := Decode(p, def)
	emitPacketDecoded(p.StructureId, len(p.Values), err)
	return v, err
}

// ResetState clears every cache the engine owns. Primarily useful for
// test isolation, mirroring cereal's ResetPlansCache.
func (e *Engine) ResetState() {
	e.shapes.Reset()
	e.keyBits.Reset()
	e.collisions.Reset()
}
