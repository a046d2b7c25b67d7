package synpatico

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for core-engine events. Grounded on cereal/signals.go's
// start/complete pairing, narrowed from codec's receive/load/store/send
// verbs to this engine's own lifecycle: fingerprinting, shape
// extraction, and packet encode/decode.
var (
	SignalFingerprintStart    = capitan.NewSignal("synpatico.fingerprint.start", "Fingerprint computation beginning")
	SignalFingerprintComplete = capitan.NewSignal("synpatico.fingerprint.complete", "Fingerprint computation finished")
	SignalShapeLearned        = capitan.NewSignal("synpatico.shape.learned", "A new StructureId was added to the shape cache")
	SignalPacketEncoded       = capitan.NewSignal("synpatico.packet.encoded", "A value was encoded as a values-only packet")
	SignalPacketDecoded       = capitan.NewSignal("synpatico.packet.decoded", "A values-only packet was decoded")
)

// Keys for typed event data.
var (
	KeyStructureId    = capitan.NewStringKey("structure_id")
	KeyLevels         = capitan.NewIntKey("levels")
	KeyCollisionCount = capitan.NewIntKey("collision_count")
	KeyValueCount     = capitan.NewIntKey("value_count")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyError          = capitan.NewErrorKey("error")
)

func emitFingerprintStart() {
	capitan.Emit(context.Background(), SignalFingerprintStart)
}

func emitFingerprintComplete(id StructureId, levels, collisionCount int, duration time.Duration, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyStructureId.Field(string(id)),
		KeyLevels.Field(levels),
		KeyCollisionCount.Field(collisionCount),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalFingerprintComplete, fields...)
		return
	}
	capitan.Emit(ctx, SignalFingerprintComplete, fields...)
}

func emitShapeLearned(id StructureId) {
	capitan.Emit(context.Background(), SignalShapeLearned, KeyStructureId.Field(string(id)))
}

func emitPacketEncoded(id StructureId, valueCount int) {
	capitan.Emit(context.Background(), SignalPacketEncoded,
		KeyStructureId.Field(string(id)),
		KeyValueCount.Field(valueCount),
	)
}

func emitPacketDecoded(id StructureId, valueCount int, err error) {
	ctx := context.Background()
	fields := []capitan.Field{
		KeyStructureId.Field(string(id)),
		KeyValueCount.Field(valueCount),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalPacketDecoded, fields...)
		return
	}
	capitan.Emit(ctx, SignalPacketDecoded, fields...)
}
