package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const attemptHeader = "x-attempt"

// SyncProcessor define o contrato do processamento de um lote.
type SyncProcessor interface {
	Execute(ctx context.Context, results int) (*usecase.SyncReport, error)
}

// publisher is the slice of amqp.Channel the retry path needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Worker struct {
	Channel   *amqp.Channel
	Processor SyncProcessor
	History   *JobHistory          // opcional
	Mailer    usecase.EmailService // opcional

	MaxAttempts int
	BackoffBase time.Duration

	pub   publisher
	sleep func(time.Duration)
}

func NewWorker(ch *amqp.Channel, processor SyncProcessor, history *JobHistory, mailer usecase.EmailService, maxAttempts int, backoffBase time.Duration) *Worker {
	return &Worker{
		Channel:     ch,
		Processor:   processor,
		History:     history,
		Mailer:      mailer,
		MaxAttempts: maxAttempts,
		BackoffBase: backoffBase,
		pub:         ch,
		sleep:       time.Sleep,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName, // fila
		"",        // consumer
		false,     // auto-ack (manual é mais seguro)
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		log.Fatalf("❌ Falha ao registrar consumidor RabbitMQ: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			w.handleDelivery(d)
		}
	}()

	log.Printf(" [*] Worker rodando e aguardando na fila '%s'", queueName)
	<-forever
}

func (w *Worker) handleDelivery(d amqp.Delivery) {
	log.Printf("📥 [WORKER] Mensagem recebida do RabbitMQ")

	var payload SyncPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		log.Printf("❌ [WORKER] JSON inválido: %s", err)
		// Mensagem podre (malformada). Rejeita sem requeue para não travar a fila.
		d.Nack(false, false)
		return
	}

	attempt := attemptFrom(d.Headers)
	log.Printf("⚙️ [WORKER] Processando job %s (tentativa %d/%d, results=%d)",
		JobName, attempt, w.MaxAttempts, payload.Results)

	report, err := w.Processor.Execute(context.Background(), payload.Results)
	if err != nil {
		w.handleFailure(d, payload, attempt, err)
		return
	}

	log.Printf("✅ [WORKER] Sucesso! %d leads sincronizados (%d pulados).",
		report.Synced, len(report.Skipped))
	middleware.RecordSyncJob("completed", report.Synced)

	if w.History != nil {
		w.History.RecordCompleted(context.Background(), JobRecord{
			Job:        JobName,
			Results:    payload.Results,
			Synced:     report.Synced,
			Skipped:    len(report.Skipped),
			Attempt:    attempt,
			FinishedAt: time.Now(),
		})
	}

	if w.Mailer != nil {
		go func(synced, skipped int) {
			if err := w.Mailer.SendSyncReport(synced, skipped); err != nil {
				log.Printf("⚠️ [WORKER] Falha ao enviar relatório de sync: %v", err)
			}
		}(report.Synced, len(report.Skipped))
	}

	d.Ack(false)
}

func (w *Worker) handleFailure(d amqp.Delivery, payload SyncPayload, attempt int, procErr error) {
	log.Printf("❌ [WORKER] Erro no processamento: %s", procErr)

	if attempt < w.MaxAttempts {
		delay := w.backoffDelay(attempt)
		log.Printf("🔁 [WORKER] Reagendando tentativa %d em %s", attempt+1, delay)
		w.sleep(delay)

		err := w.pub.PublishWithContext(context.Background(),
			ExchangeName,
			RoutingKey,
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				Type:         JobName,
				Body:         d.Body,
				DeliveryMode: amqp.Persistent,
				Headers: amqp.Table{
					attemptHeader: int32(attempt + 1),
				},
			},
		)
		if err != nil {
			log.Printf("❌ [WORKER] Falha ao republicar, mandando pra DLQ: %v", err)
			d.Nack(false, false)
			return
		}

		// A redelivery foi agendada; esta entrega está consumida.
		d.Ack(false)
		return
	}

	log.Printf("💀 [WORKER] Tentativas esgotadas, mandando pra DLQ")
	middleware.RecordSyncJob("failed", 0)

	if w.History != nil {
		w.History.RecordFailed(context.Background(), JobRecord{
			Job:        JobName,
			Results:    payload.Results,
			Attempt:    attempt,
			Error:      procErr.Error(),
			FinishedAt: time.Now(),
		})
	}

	d.Nack(false, false)
}

// backoffDelay dobra a partir da base: 2000ms, 4000ms, ...
func (w *Worker) backoffDelay(attempt int) time.Duration {
	return w.BackoffBase * time.Duration(1<<(attempt-1))
}

func attemptFrom(headers amqp.Table) int {
	if headers == nil {
		return 1
	}
	switch v := headers[attemptHeader].(type) {
	case int32:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 1
	}
}
