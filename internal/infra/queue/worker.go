package queue

import (
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// WelcomeMailer é o contrato do envio de boas-vindas pós-finalização.
type WelcomeMailer interface {
	SendWelcome(to, name string) error
}

type Worker struct {
	Channel *amqp.Channel
	Mailer  WelcomeMailer
	Logger  *zap.Logger
}

func NewWorker(ch *amqp.Channel, mailer WelcomeMailer, logger *zap.Logger) *Worker {
	return &Worker{Channel: ch, Mailer: mailer, Logger: logger}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		w.Logger.Fatal("falha ao registrar consumidor RabbitMQ", zap.Error(err))
	}

	for d := range msgs {
		var payload LeadFinalizedPayload
		if err := json.Unmarshal(d.Body, &payload); err != nil {
			w.Logger.Error("mensagem malformada, rejeitando sem requeue", zap.Error(err))
			d.Nack(false, false)
			continue
		}

		if err := w.process(payload); err != nil {
			w.Logger.Error("falha ao processar lead finalizado",
				zap.String("event_id", payload.EventID),
				zap.Int64("lead_id", payload.LeadID),
				zap.Error(err))
			d.Nack(false, false) // vai para a DLQ
			continue
		}

		w.Logger.Info("lead finalizado processado",
			zap.String("event_id", payload.EventID),
			zap.Int64("lead_id", payload.LeadID))
		d.Ack(false)
	}
}

func (w *Worker) process(payload LeadFinalizedPayload) error {
	if payload.Email == "" {
		// lead finalizado sem email acontece (step 1 direto pro 6)
		return nil
	}
	return w.Mailer.SendWelcome(payload.Email, payload.FirstName)
}
