package service

import (
	"context"
	"encoding/json"
	"log"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process message bus and delivers email for
// settlement outcomes, keeping SMTP latency off the webhook path.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	receiptTopic string
	alertTopic   string
	emailService mailer.IEmailService
	adminEmail   string
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	receiptTopic string,
	alertTopic string,
	emailService mailer.IEmailService,
	adminEmail string,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		receiptTopic: receiptTopic,
		alertTopic:   alertTopic,
		emailService: emailService,
		adminEmail:   adminEmail,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	receipts, err := cs.pubSub.Subscribe(ctx, cs.receiptTopic)
	if err != nil {
		return err
	}
	alerts, err := cs.pubSub.Subscribe(ctx, cs.alertTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range receipts {
			cs.processReceipt(msg)
		}
	}()
	go func() {
		for msg := range alerts {
			cs.processAlert(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processReceipt(msg *message.Message) {
	var payload dto.PurchaseReceiptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal receipt message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	if err := cs.emailService.SendPurchaseReceipt(payload.Email, payload.Credits, payload.Amount, payload.PaymentRef); err != nil {
		log.Printf("[ERROR] Failed to send receipt for %s: %v", payload.PaymentRef, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) processAlert(msg *message.Message) {
	var payload dto.UnresolvedGrantMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal unresolved grant message: %v", err)
		msg.Ack()
		return
	}

	if cs.adminEmail == "" {
		log.Printf("[WARN] No admin email configured, dropping unresolved grant alert for %s", payload.PaymentRef)
		msg.Ack()
		return
	}

	if err := cs.emailService.SendUnresolvedGrantAlert(cs.adminEmail, payload.CustomerEmail, payload.PaymentRef, payload.Credits); err != nil {
		log.Printf("[ERROR] Failed to send unresolved grant alert for %s: %v", payload.PaymentRef, err)
		msg.Nack()
		return
	}

	msg.Ack()
}
