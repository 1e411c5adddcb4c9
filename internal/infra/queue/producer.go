package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SyncPayload is one unit of work: how many external records to pull.
type SyncPayload struct {
	Results int `json:"results"`
}

type QueueProducerInterface interface {
	PublishSync(ctx context.Context, payload SyncPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishSync(ctx context.Context, payload SyncPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %v", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName, // ex.sync
		RoutingKey,   // k.sync-leads
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         JobName,
			Body:         body,
			DeliveryMode: amqp.Persistent, // Mensagem salva no disco
			Headers: amqp.Table{
				attemptHeader: int32(1),
			},
		},
	)

	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %v", err)
	}

	return nil
}
