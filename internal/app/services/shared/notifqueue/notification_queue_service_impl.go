package notifqueue

import (
	"context"
	"fmt"
	"nutriplan-service/internal/app/contracts"
	"nutriplan-service/internal/pkg/constvars"
	"nutriplan-service/internal/pkg/exceptions"
	"nutriplan-service/internal/pkg/utils"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// notificationQueueService publishes appointment events to a durable queue
// consumed by the external push-delivery worker. Publisher confirms are
// enabled so an unroutable broker state surfaces as an error instead of a
// silent drop.
type notificationQueueService struct {
	ch        *amqp.Channel
	confirms  chan amqp.Confirmation
	queueName string
	log       *zap.Logger
	mu        sync.Mutex
}

func NewNotificationQueueService(conn *amqp.Connection, queueName string, logger *zap.Logger) (contracts.NotificationQueueService, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		return nil, err
	}

	return &notificationQueueService{
		ch:        ch,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		queueName: queueName,
		log:       logger,
	}, nil
}

func (s *notificationQueueService) Enqueue(ctx context.Context, event *contracts.AppointmentEvent) error {
	requestID := utils.GetRequestID(ctx)
	s.log.Info("notificationQueueService.Enqueue called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		zap.String("event", event.Event),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}
	if err := s.ch.PublishWithContext(ctx, "", s.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, s.queueName)
	}

	select {
	case confirmed := <-s.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), s.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), s.queueName)
	}
	return nil
}
