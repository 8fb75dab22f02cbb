package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stripe/stripe-go/v82/webhook"
)

const testWebhookSecret = "whsec_test_secret"

type capturePublisher struct {
	payloads [][]byte
}

func (p *capturePublisher) Publish(ctx context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func signPayload(payload []byte, secret string) string {
	now := time.Now()
	sig := webhook.ComputeSignature(now, payload, secret)
	return fmt.Sprintf("t=%d,v1=%x", now.Unix(), sig)
}

func checkoutCompletedPayload(eventId, paymentIntent, userId, packageId string, amountCents int64) []byte {
	return []byte(fmt.Sprintf(`{
		"id": %q,
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_123",
				"object": "checkout.session",
				"amount_total": %d,
				"payment_intent": %q,
				"customer_details": {"email": "buyer@example.com"},
				"metadata": {"user_id": %q, "package_id": %q}
			}
		}
	}`, eventId, amountCents, paymentIntent, userId, packageId))
}

func newTestPaymentService(factory *fakeUowFactory, receiptPub, alertPub IPublisherService) IPaymentService {
	return NewPaymentService(factory, "sk_test_dummy", testWebhookSecret, "https://app.example.com", receiptPub, alertPub, nil, nopLogger{})
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	factory := newFakeUowFactory()
	svc := newTestPaymentService(factory, nil, nil)

	payload := checkoutCompletedPayload("evt_1", "pi_1", "not-relevant", "package_60", 3750)
	err := svc.HandleStripeEvent(context.Background(), payload, "t=123,v1=deadbeef")

	assert.ErrorIs(t, err, ErrInvalidSignature)
	assert.Empty(t, factory.uow.store.transactions)
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 0)
	svc := newTestPaymentService(factory, nil, nil)

	payload := []byte(`{"id": "evt_2", "type": "payment_intent.succeeded", "data": {"object": {}}}`)
	err := svc.HandleStripeEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))

	assert.NoError(t, err)
	assert.Equal(t, 0.0, factory.uow.store.users[user.Id].Credits)
	assert.Empty(t, factory.uow.store.transactions)
}

func TestWebhookGrantsCredits(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 5)
	receipts := &capturePublisher{}
	svc := newTestPaymentService(factory, receipts, nil)

	payload := checkoutCompletedPayload("evt_3", "pi_granted", user.Id.String(), "package_60", 3750)
	err := svc.HandleStripeEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))

	assert.NoError(t, err)
	assert.Equal(t, 65.0, factory.uow.store.users[user.Id].Credits)
	assert.Len(t, factory.uow.store.transactions, 1)
	for _, txn := range factory.uow.store.transactions {
		assert.Equal(t, "pi_granted", txn.StripePaymentId)
		assert.Equal(t, 60.0, txn.Credits)
		assert.Equal(t, 37.50, txn.Amount)
		assert.Equal(t, user.Id, txn.UserId)
	}
	assert.Len(t, receipts.payloads, 1)
}

func TestWebhookDuplicateDeliveryCreditsOnce(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 0)
	svc := newTestPaymentService(factory, nil, nil)

	first := checkoutCompletedPayload("evt_4a", "pi_same", user.Id.String(), "package_28", 1875)
	assert.NoError(t, svc.HandleStripeEvent(context.Background(), first, signPayload(first, testWebhookSecret)))

	// Stripe retries deliver a new event id but the same payment.
	second := checkoutCompletedPayload("evt_4b", "pi_same", user.Id.String(), "package_28", 1875)
	assert.NoError(t, svc.HandleStripeEvent(context.Background(), second, signPayload(second, testWebhookSecret)))

	assert.Equal(t, 28.0, factory.uow.store.users[user.Id].Credits)
	assert.Len(t, factory.uow.store.transactions, 1)
}

func TestWebhookSameEventIdReplayIsNoOp(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 0)
	svc := newTestPaymentService(factory, nil, nil)

	payload := checkoutCompletedPayload("evt_5", "pi_replay", user.Id.String(), "package_28", 1875)
	header := signPayload(payload, testWebhookSecret)
	assert.NoError(t, svc.HandleStripeEvent(context.Background(), payload, header))
	assert.NoError(t, svc.HandleStripeEvent(context.Background(), payload, header))

	assert.Equal(t, 28.0, factory.uow.store.users[user.Id].Credits)
	assert.Len(t, factory.uow.store.transactions, 1)
}

func TestWebhookConcurrentDeliveryAckedAsSettled(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 0)
	svc := newTestPaymentService(factory, nil, nil)

	// A concurrent delivery commits the same payment reference between the
	// pre-transaction dedupe lookup and our insert, so the insert hits the
	// unique index.
	competing := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserId:          user.Id,
		Amount:          18.75,
		Credits:         28,
		StripePaymentId: "pi_contested",
		Status:          entity.TransactionStatusCompleted,
	}
	factory.uow.onTxnCreate = func() {
		factory.uow.store.transactions[competing.Id] = competing
		if factory.uow.saved != nil {
			factory.uow.saved.transactions[competing.Id] = competing
		}
		factory.uow.onTxnCreate = nil
	}

	payload := checkoutCompletedPayload("evt_7", "pi_contested", user.Id.String(), "package_28", 1875)
	err := svc.HandleStripeEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))

	assert.NoError(t, err, "losing the insert race must ack, not retry")
	assert.Len(t, factory.uow.store.transactions, 1, "only the winning delivery's row survives")
}

func TestWebhookUnknownUserRecordsUnresolvedGrant(t *testing.T) {
	factory := newFakeUowFactory()
	alerts := &capturePublisher{}
	svc := newTestPaymentService(factory, nil, alerts)

	payload := checkoutCompletedPayload("evt_6", "pi_orphan", "2e9b0c1f-0000-4000-8000-000000000000", "package_133", 7500)
	err := svc.HandleStripeEvent(context.Background(), payload, signPayload(payload, testWebhookSecret))

	assert.NoError(t, err, "unresolved grants are acknowledged, not retried")
	assert.Empty(t, factory.uow.store.transactions)
	assert.Len(t, factory.uow.store.grants, 1)
	for _, grant := range factory.uow.store.grants {
		assert.Equal(t, "pi_orphan", grant.StripePaymentId)
		assert.Equal(t, 133.0, grant.Credits)
		assert.Equal(t, 75.0, grant.Amount)
		assert.False(t, grant.Resolved)
	}
	assert.Len(t, alerts.payloads, 1)
}

func TestGetPackages(t *testing.T) {
	factory := newFakeUowFactory()
	svc := newTestPaymentService(factory, nil, nil)

	packages, err := svc.GetPackages(context.Background())

	assert.NoError(t, err)
	assert.Len(t, packages, 4)

	var popular *dto.CreditPackageResponse
	for _, p := range packages {
		if p.Popular {
			popular = p
		}
	}
	assert.NotNil(t, popular)
	assert.Equal(t, 60.0, popular.Credits)
	assert.Equal(t, 37.50, popular.Price)
}

func TestCreateCheckoutUnknownPackage(t *testing.T) {
	factory := newFakeUowFactory()
	user := seedUser(factory, 0)
	svc := newTestPaymentService(factory, nil, nil)

	_, err := svc.CreateCheckout(context.Background(), user.Id, &dto.CreateCheckoutRequest{PackageId: "package_999"})

	assert.ErrorIs(t, err, ErrPackageNotFound)
}
