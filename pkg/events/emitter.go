package events

import (
	"context"
	"encoding/json"

	"github.com/Gobusters/ectologger"

	appctx "github.com/ecrin-rms/rmsbe/pkg/context"
	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

// Emitter publishes record lifecycle events. A nil Emitter is valid and
// drops every event, so callers never need to branch on whether eventing
// is configured.
type Emitter struct {
	producer *Producer
	logger   ectologger.Logger
}

// NewEmitter creates a new event emitter. Pass a nil producer to disable
// emission entirely.
func NewEmitter(producer *Producer, logger ectologger.Logger) *Emitter {
	if producer == nil {
		return nil
	}
	return &Emitter{
		producer: producer,
		logger:   logger,
	}
}

// EmitRecordCreated emits a created event for a top-level record.
func (e *Emitter) EmitRecordCreated(ctx context.Context, kind string, id int, record any) {
	e.emit(ctx, EventCreated, kind, id, "", record)
}

// EmitRecordUpdated emits an updated event for a top-level record.
func (e *Emitter) EmitRecordUpdated(ctx context.Context, kind string, id int, record any) {
	e.emit(ctx, EventUpdated, kind, id, "", record)
}

// EmitRecordDeleted emits a deleted event for a top-level record.
func (e *Emitter) EmitRecordDeleted(ctx context.Context, kind string, id int) {
	e.emit(ctx, EventDeleted, kind, id, "", nil)
}

// EmitObjectDeleted emits a deleted event for a data object, carrying its sd_oid.
func (e *Emitter) EmitObjectDeleted(ctx context.Context, id int, sdOid string) {
	e.emit(ctx, EventDeleted, RecordKindObject, id, sdOid, nil)
}

// emit is fire-and-forget: a broker outage must never fail the API call that
// already committed its write.
func (e *Emitter) emit(ctx context.Context, eventType, kind string, id int, sdOid string, record any) {
	if e == nil {
		return
	}

	ctx, span := tracing.StartSpan(ctx, "events.Emitter.emit")
	defer span.End()

	var data json.RawMessage
	if record != nil {
		encoded, err := json.Marshal(record)
		if err != nil {
			e.logger.WithContext(ctx).WithError(err).Error("Failed to encode record event payload")
		} else {
			data = encoded
		}
	}

	event := &RecordEvent{
		EventType:  eventType,
		RecordKind: kind,
		RecordID:   id,
		SdOid:      sdOid,
		EditedBy:   appctx.GetUserName(ctx),
		Data:       data,
	}

	if err := e.producer.PublishRecordEvent(ctx, event); err != nil {
		e.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"event_type":  eventType,
			"record_kind": kind,
			"record_id":   id,
		}).Error("Failed to emit record event")
	}
}
