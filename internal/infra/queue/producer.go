package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadFinalizedPayload é o evento emitido quando o step final materializa
// o cliente a partir do lead.
type LeadFinalizedPayload struct {
	EventID    string `json:"event_id"`
	LeadID     int64  `json:"lead_id"`
	CustomerID int64  `json:"customer_id"`
	Pancard    string `json:"pancard"`
	FirstName  string `json:"first_name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadFinalized(ctx context.Context, payload LeadFinalizedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("erro ao converter payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // mensagem durável
		},
	)
	if err != nil {
		return fmt.Errorf("falha ao publicar no RabbitMQ: %w", err)
	}

	return nil
}
