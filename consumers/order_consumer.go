package consumers

import (
	"context"
	"encoding/json"
	"log"

	"jewellery-service/config"
	"jewellery-service/models"
	"jewellery-service/repository"
	"jewellery-service/services"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartOrderConsumer drains the order queue and the dead-letter queue. The
// order service handle is the same one the HTTP layer uses, so the delayed
// payment check goes through the ordinary update path.
func StartOrderConsumer(ch *amqp.Channel, cfg *config.Config, orders *services.OrderService) {
	msgs, err := ch.Consume(
		cfg.OrderQueue,
		"jewellery-service", // consumer tag
		false,               // auto-ack
		false,               // exclusive
		false,               // no-local
		false,               // no-wait
		nil,
	)
	if err != nil {
		log.Printf("Failed to register order consumer: %v", err)
		return
	}

	go func() {
		for msg := range msgs {
			processOrderMessage(msg, orders)
		}
	}()

	dlqMsgs, err := ch.Consume(
		cfg.DeadLetterQueue,
		"jewellery-service-dlq",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		log.Printf("Failed to register DLQ consumer: %v", err)
		return
	}

	go func() {
		for msg := range dlqMsgs {
			processDeadLetterMessage(msg)
		}
	}()
}

func processOrderMessage(msg amqp.Delivery, orders *services.OrderService) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in message processing: %v", r)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("Invalid event body: %s", msg.Body)
		_ = msg.Nack(false, false) // to the dead-letter queue
		return
	}

	log.Printf("Processing order event: ID=%d, Type=%s", event.OrderID, event.Type)

	switch event.Type {
	case "created":
		handleOrderCreated(event)
	case "status_updated":
		handleStatusUpdated(event)
	case "payment_check":
		handlePaymentCheck(event, orders)
	default:
		log.Printf("Unknown event type: %s", event.Type)
	}

	_ = msg.Ack(false)
}

func processDeadLetterMessage(msg amqp.Delivery) {
	log.Printf("Received dead letter: %s", msg.Body)
	_ = msg.Ack(false)
}

func handleOrderCreated(event models.OrderEvent) {
	// Notification hooks (email receipts, fulfilment) attach here.
	log.Printf("Handling order created: %d (total %s)", event.OrderID, event.Total.StringFixed(2))
}

func handleStatusUpdated(event models.OrderEvent) {
	log.Printf("Handling status update for order %d: %s", event.OrderID, event.Status)
}

// handlePaymentCheck fires from the delayed exchange a while after
// placement. An order still pending payment gets cancelled.
func handlePaymentCheck(event models.OrderEvent, orders *services.OrderService) {
	ctx := context.Background()

	detail, err := orders.Get(ctx, event.OrderID)
	if err != nil {
		log.Printf("Failed to load order %d: %v", event.OrderID, err)
		return
	}
	if detail == nil {
		log.Printf("Payment check for unknown order %d", event.OrderID)
		return
	}

	if detail.Status == models.OrderStatusPending && detail.PaymentStatus == models.PaymentStatusPending {
		cancelled := models.OrderStatusCancelled
		if _, err := orders.Update(ctx, event.OrderID, repository.OrderUpdate{Status: &cancelled}); err != nil {
			log.Printf("Failed to auto-cancel order %d: %v", event.OrderID, err)
			return
		}
		log.Printf("Auto-cancelled order %d due to non-payment", event.OrderID)
	}
}
