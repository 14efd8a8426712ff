package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"identity-api/config"
	handlers "identity-api/internal/interface/http"
	"identity-api/pkg/helpers"
)

// Consumes account events from RabbitMQ and writes them to the audit log.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-audit", cfg.Env)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("failed to open channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	q, err := ch.QueueDeclare(cfg.RabbitMQEventsQueue, true, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to declare queue: %v", err)
	}

	msgs, err := ch.Consume(q.Name, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	logger.Infof("audit worker consuming from %q", q.Name)

	go func() {
		for d := range msgs {
			var evt handlers.AccountEvent
			if err := json.Unmarshal(d.Body, &evt); err != nil {
				logger.WithError(err).Warn("dropping malformed event")
				_ = d.Nack(false, false)
				continue
			}
			logger.WithFields(map[string]interface{}{
				"event":       evt.Type,
				"user_id":     evt.UserID,
				"occurred_at": evt.OccurredAt,
			}).Info("account event")
			_ = d.Ack(false)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("audit worker shutting down")
}
