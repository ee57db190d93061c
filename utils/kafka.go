package utils

import (
	"context"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/gracepoint/church-admin-backend/config"
)

var auditWriter *kafka.Writer

// InitializeKafka sets up the audit-event writer. The stream is optional:
// without KAFKA_BROKERS configured, PublishAuditEvent is a no-op and the
// audit trail lives only in the database.
func InitializeKafka(cfg *config.Config) {
	if len(cfg.KafkaBrokers) == 0 {
		log.Println("ℹ️ Kafka not configured, audit stream disabled")
		return
	}

	topic := cfg.KafkaAuditTopic
	if topic == "" {
		topic = "church-admin.audit"
	}

	auditWriter = &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("✅ Kafka audit stream enabled on topic %s", topic)
}

// PublishAuditEvent sends one audit entry to the stream, keyed by action.
func PublishAuditEvent(ctx context.Context, action string, payload []byte) {
	if auditWriter == nil {
		return
	}

	err := auditWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(action),
		Value: payload,
	})
	if err != nil {
		log.Printf("⚠️ Failed to publish audit event %s: %v", action, err)
	}
}

// CloseKafka flushes and closes the writer on shutdown.
func CloseKafka() {
	if auditWriter != nil {
		_ = auditWriter.Close()
	}
}
