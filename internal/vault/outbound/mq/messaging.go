package mq

import (
	"context"
	"encoding/json"

	"github.com/shandysiswandi/govault/internal/pkg/instrument"
	"github.com/shandysiswandi/govault/internal/pkg/messaging"
	"github.com/shandysiswandi/govault/internal/shared/event"
	"github.com/shandysiswandi/govault/internal/vault/usecase"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Messaging
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Messaging, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishAccountCreated(ctx context.Context, msg usecase.AccountCreatedEvent) error {
	ctx, span := m.ins.Tracer("vault.outbound.mq").Start(ctx, "PublishAccountCreated")
	defer span.End()

	body, err := json.Marshal(event.VaultAccountCreatedMessage{
		Key:       msg.Key,
		Name:      msg.Name,
		Type:      string(msg.Type),
		Algorithm: string(msg.Algorithm),
		Digits:    msg.Digits,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return m.publish(ctx, event.VaultAccountCreatedDestination, body)
}

func (m *Messaging) PublishAccountDeleted(ctx context.Context, msg usecase.AccountDeletedEvent) error {
	ctx, span := m.ins.Tracer("vault.outbound.mq").Start(ctx, "PublishAccountDeleted")
	defer span.End()

	body, err := json.Marshal(event.VaultAccountDeletedMessage{Key: msg.Key})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return m.publish(ctx, event.VaultAccountDeletedDestination, body)
}

func (m *Messaging) PublishCodeIssued(ctx context.Context, msg usecase.CodeIssuedEvent) error {
	ctx, span := m.ins.Tracer("vault.outbound.mq").Start(ctx, "PublishCodeIssued")
	defer span.End()

	body, err := json.Marshal(event.VaultCodeIssuedMessage{
		Key:     msg.Key,
		Type:    string(msg.Type),
		Counter: msg.Counter,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return m.publish(ctx, event.VaultCodeIssuedDestination, body)
}

func (m *Messaging) publish(ctx context.Context, destination string, body []byte) error {
	span := trace.SpanFromContext(ctx)

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, destination, messaging.OutgoingMessage{
		Body:    body,
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
