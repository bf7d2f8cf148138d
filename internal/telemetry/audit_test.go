package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"streamify/internal/mocks"
)

func TestEmitAuditPublishesEnvelope(t *testing.T) {
	publisher := new(mocks.MockPublisher)
	emitter := NewAuditEmitter(publisher, "streamify", "test")

	userID := int64(7)
	var published Envelope
	publisher.On("Publish", mock.Anything, AuditRoutingKey, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(Envelope)
		}).
		Return(nil).Once()

	emitter.EmitAudit(context.Background(), "INFO", "friend request sent", "req-123", &userID)

	publisher.AssertExpectations(t)
	require.Equal(t, "audit_log", published.EventType)
	require.Equal(t, "streamify", published.Service)
	require.Equal(t, "test", published.Environment)
	require.Equal(t, "req-123", published.RequestID)
	require.NotNil(t, published.UserID)
	require.Equal(t, int64(7), *published.UserID)
	require.Equal(t, "INFO", published.Payload.Level)
	require.NotEmpty(t, published.EventID)
}

func TestEmitAuditNilEmitterIsSafe(t *testing.T) {
	var emitter *AuditEmitter
	emitter.EmitAudit(context.Background(), "INFO", "ignored", "req", nil)
}
