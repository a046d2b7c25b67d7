package negotiate

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for the negotiation state machine, one pair per named state
// of spec.md §4.G. Grounded 1:1 on cereal/signals.go's start/complete
// pairing (see also synpatico/signals.go).
var (
	SignalRequestStart    = capitan.NewSignal("negotiate.request.start", "Agent began handling an inbound request")
	SignalStateConflict   = capitan.NewSignal("negotiate.state_conflict", "Inbound optimized body named an unknown structureId")
	SignalFetchComplete   = capitan.NewSignal("negotiate.fetch.complete", "Upstream round trip finished")
	SignalLearnComplete   = capitan.NewSignal("negotiate.learn.complete", "Upstream body was fingerprinted and cached")
	SignalEncodeSkipped   = capitan.NewSignal("negotiate.encode.skipped", "Response forwarded as raw JSON instead of a packet")
	SignalEmitPacket      = capitan.NewSignal("negotiate.emit.packet", "Response emitted as a values-only packet")
	SignalClientFallback  = capitan.NewSignal("negotiate.client.fallback", "Client retried without negotiation after a 409")
	SignalClientDecode    = capitan.NewSignal("negotiate.client.decode", "Client decoded a packet response")
)

// Keys for typed event data.
var (
	KeyMethod      = capitan.NewStringKey("method")
	KeyPath        = capitan.NewStringKey("path")
	KeyOrigin      = capitan.NewStringKey("origin")
	KeyStructureId = capitan.NewStringKey("structure_id")
	KeyStatus      = capitan.NewIntKey("status")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyRequestId   = capitan.NewStringKey("request_id")
	KeyError       = capitan.NewErrorKey("error")
)

func emitRequestStart(requestID, method, path string) {
	capitan.Emit(context.Background(), SignalRequestStart,
		KeyRequestId.Field(requestID),
		KeyMethod.Field(method),
		KeyPath.Field(path),
	)
}

func emitStateConflict(requestID, method, path string) {
	capitan.Emit(context.Background(), SignalStateConflict,
		KeyRequestId.Field(requestID),
		KeyMethod.Field(method),
		KeyPath.Field(path),
	)
}

func emitFetchComplete(requestID string, status int, duration time.Duration, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyRequestId.Field(requestID),
		KeyStatus.Field(status),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalFetchComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalFetchComplete, fields...)
}

func emitLearnComplete(requestID string, id string) {
	capitan.Emit(context.Background(), SignalLearnComplete,
		KeyRequestId.Field(requestID),
		KeyStructureId.Field(id),
	)
}

func emitEncodeSkipped(requestID, reason string) {
	capitan.Emit(context.Background(), SignalEncodeSkipped,
		KeyRequestId.Field(requestID),
		KeyPath.Field(reason),
	)
}

func emitEmitPacket(requestID string, id string) {
	capitan.Emit(context.Background(), SignalEmitPacket,
		KeyRequestId.Field(requestID),
		KeyStructureId.Field(id),
	)
}

func emitClientFallback(origin string) {
	capitan.Emit(context.Background(), SignalClientFallback, KeyOrigin.Field(origin))
}

func emitClientDecode(id string, err error) {
	ctx := context.Background()
	fields := []capitan.Field{KeyStructureId.Field(id)}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalClientDecode, fields...)
		return
	}
	capitan.Emit(ctx, SignalClientDecode, fields...)
}
