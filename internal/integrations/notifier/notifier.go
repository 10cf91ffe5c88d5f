// Package notifier публикует события смены статусов записей и заказов
// во внешний топик Kafka. Публикация выполняется после фиксации
// транзакции и не влияет на результат операции: ошибки только логируются.
package notifier

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Event описывает один переход статуса
type Event struct {
	EventID    string `json:"eventId"`
	EntityType string `json:"entityType"` // booking | job
	EntityID   int64  `json:"entityId"`
	OwnerID    int64  `json:"ownerId"` // salonId либо partnerId
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	OccurredAt string `json:"occurredAt"`
}

// Notifier интерфейс хука уведомлений о переходах статусов
type Notifier interface {
	BookingTransition(ctx context.Context, salonID, bookingID int64, from, to string)
	JobTransition(ctx context.Context, partnerID, jobID int64, from, to string)
	Close() error
}

// KafkaNotifier публикует события переходов в Kafka
type KafkaNotifier struct {
	writer *kafka.Writer
	logger Logger
}

// NewKafkaNotifier создает notifier с hash-балансировкой по ключу сущности,
// чтобы события одной записи попадали в одну партицию
func NewKafkaNotifier(brokers []string, topic string, logger Logger) *KafkaNotifier {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.Hash{},
	})

	return &KafkaNotifier{
		writer: writer,
		logger: logger,
	}
}

// BookingTransition публикует событие перехода статуса записи
func (n *KafkaNotifier) BookingTransition(ctx context.Context, salonID, bookingID int64, from, to string) {
	n.publish(ctx, Event{
		EventID:    uuid.NewString(),
		EntityType: "booking",
		EntityID:   bookingID,
		OwnerID:    salonID,
		FromStatus: from,
		ToStatus:   to,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// JobTransition публикует событие перехода статуса заказа
func (n *KafkaNotifier) JobTransition(ctx context.Context, partnerID, jobID int64, from, to string) {
	n.publish(ctx, Event{
		EventID:    uuid.NewString(),
		EntityType: "job",
		EntityID:   jobID,
		OwnerID:    partnerID,
		FromStatus: from,
		ToStatus:   to,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("notifier: marshal event %s failed: %v", event.EventID, err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityType + "-" + strconv.FormatInt(event.EntityID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.EventID)},
			{Key: "event_type", Value: []byte(event.EntityType + "." + event.ToStatus)},
		},
	}

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		// Уведомления best-effort: операция уже зафиксирована
		n.logger.Error("notifier: publish event %s (%s %d -> %s) failed: %v",
			event.EventID, event.EntityType, event.EntityID, event.ToStatus, err)
		return
	}

	n.logger.Info("notifier: published %s transition %s -> %s for %s %d",
		event.EntityType, event.FromStatus, event.ToStatus, event.EntityType, event.EntityID)
}

// Close закрывает kafka writer
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
