package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"pepper-ai-be/internal/dto"
	"pepper-ai-be/internal/entity"
	"pepper-ai-be/internal/pkg/logger"
	"pepper-ai-be/internal/pricing"
	"pepper-ai-be/internal/repository/specification"
	"pepper-ai-be/internal/repository/unitofwork"
	"pepper-ai-be/pkg/events"
	pkgNats "pepper-ai-be/pkg/nats"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
)

type IPaymentService interface {
	GetPackages(ctx context.Context) ([]*dto.CreditPackageResponse, error)
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error)
	HandleStripeEvent(ctx context.Context, payload []byte, sigHeader string) error
}

type paymentService struct {
	uowFactory      unitofwork.RepositoryFactory
	webhookSecret   string
	frontendURL     string
	receiptPub      IPublisherService
	alertPub        IPublisherService
	eventPublisher  *pkgNats.Publisher
	log             logger.ILogger
	processedEvents *cache.Cache
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	stripeSecretKey string,
	webhookSecret string,
	frontendURL string,
	receiptPub IPublisherService,
	alertPub IPublisherService,
	eventPublisher *pkgNats.Publisher,
	log logger.ILogger,
) IPaymentService {
	stripe.Key = stripeSecretKey

	return &paymentService{
		uowFactory:     uowFactory,
		webhookSecret:  webhookSecret,
		frontendURL:    frontendURL,
		receiptPub:     receiptPub,
		alertPub:       alertPub,
		eventPublisher: eventPublisher,
		log:            log,
		// Fast path only. The unique index on the payment reference is what
		// actually guarantees exactly-once crediting.
		processedEvents: cache.New(24*time.Hour, time.Hour),
	}
}

func (s *paymentService) GetPackages(ctx context.Context) ([]*dto.CreditPackageResponse, error) {
	packages := pricing.Packages()
	res := make([]*dto.CreditPackageResponse, 0, len(packages))
	for _, p := range packages {
		res = append(res, &dto.CreditPackageResponse{
			Id:      p.Id,
			Credits: p.Credits,
			Price:   p.Price,
			Popular: p.Popular,
		})
	}
	return res, nil
}

func (s *paymentService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error) {
	pkg := pricing.FindPackage(req.PackageId)
	if pkg == nil {
		return nil, ErrPackageNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:    stripe.String(fmt.Sprintf("%s/profile?purchase=success", s.frontendURL)),
		CancelURL:     stripe.String(fmt.Sprintf("%s/pricing", s.frontendURL)),
		CustomerEmail: stripe.String(user.Email),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("%.0f PepperAI Credits", pkg.Credits)),
					},
					UnitAmount: stripe.Int64(int64(pkg.Price * 100)),
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	// The webhook resolves the buyer from this metadata, not from the
	// customer email, so email changes can never misdirect a grant.
	params.AddMetadata("user_id", userId.String())
	params.AddMetadata("package_id", pkg.Id)
	params.AddMetadata("credits", fmt.Sprintf("%.2f", pkg.Credits))

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout error: %w", err)
	}

	return &dto.CreateCheckoutResponse{
		SessionId: sess.ID,
		URL:       sess.URL,
	}, nil
}

// HandleStripeEvent verifies and settles a webhook delivery. The contract
// with the controller: ErrInvalidSignature means reject (400), a nil return
// means acknowledge (200, including duplicates and unresolved grants), any
// other error means the delivery should be retried (500).
func (s *paymentService) HandleStripeEvent(ctx context.Context, payload []byte, sigHeader string) error {
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, s.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		s.log.Warn("payment", "webhook signature verification failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ErrInvalidSignature
	}

	if event.Type != "checkout.session.completed" {
		return nil
	}

	if _, seen := s.processedEvents.Get(event.ID); seen {
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		s.log.Error("payment", "failed to parse checkout session from event", map[string]interface{}{
			"event_id": event.ID,
			"error":    err.Error(),
		})
		// Malformed payload will not improve on retry.
		return nil
	}

	paymentRef := sess.ID
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		paymentRef = sess.PaymentIntent.ID
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.CreditTransactionRepository().FindOne(ctx, specification.ByPaymentReference{Reference: paymentRef})
	if err != nil {
		return err
	}
	if existing != nil {
		s.processedEvents.Set(event.ID, true, cache.DefaultExpiration)
		return nil
	}

	amount := float64(sess.AmountTotal) / 100
	credits, user, resolveErr := s.resolveGrant(ctx, uow, &sess)
	if resolveErr != nil {
		return resolveErr
	}
	if user == nil {
		return s.recordUnresolvedGrant(ctx, uow, &event, &sess, paymentRef, credits, amount)
	}

	txn := &entity.CreditTransaction{
		Id:              uuid.New(),
		UserId:          user.Id,
		Amount:          amount,
		Credits:         credits,
		StripePaymentId: paymentRef,
		PackageId:       strPtr(sess.Metadata["package_id"]),
		Status:          entity.TransactionStatusCompleted,
		CreatedAt:       time.Now(),
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.UserRepository().CreditCredits(ctx, user.Id, credits); err != nil {
		return err
	}
	if err := uow.CreditTransactionRepository().Create(ctx, txn); err != nil {
		// A concurrent delivery may have won the unique-index race; treat it
		// as already settled rather than retrying forever. The lookup needs
		// its own unit of work: the transaction is aborted after the unique
		// violation and refuses further statements.
		dupe, findErr := s.uowFactory.NewUnitOfWork(ctx).CreditTransactionRepository().FindOne(ctx, specification.ByPaymentReference{Reference: paymentRef})
		if findErr == nil && dupe != nil {
			s.processedEvents.Set(event.ID, true, cache.DefaultExpiration)
			return nil
		}
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.processedEvents.Set(event.ID, true, cache.DefaultExpiration)

	s.log.Info("payment", "credits granted", map[string]interface{}{
		"user_id":     user.Id,
		"credits":     credits,
		"amount":      amount,
		"payment_ref": paymentRef,
	})

	email := user.Email
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email = sess.CustomerDetails.Email
	}
	if s.receiptPub != nil {
		receipt := dto.PurchaseReceiptMessage{
			Email:      email,
			Credits:    credits,
			Amount:     amount,
			PaymentRef: paymentRef,
		}
		if msgJSON, err := json.Marshal(receipt); err == nil {
			if err := s.receiptPub.Publish(ctx, msgJSON); err != nil {
				s.log.Warn("payment", "failed to publish receipt message", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "CREDITS_PURCHASED",
			Data: map[string]interface{}{
				"user_id":     user.Id,
				"credits":     credits,
				"amount":      amount,
				"payment_ref": paymentRef,
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("payment", "failed to publish CREDITS_PURCHASED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return nil
}

// resolveGrant works out how many credits the session bought and who gets
// them. A nil user with a nil error means the buyer could not be resolved.
func (s *paymentService) resolveGrant(ctx context.Context, uow unitofwork.UnitOfWork, sess *stripe.CheckoutSession) (float64, *entity.User, error) {
	credits := 0.0
	if pkg := pricing.FindPackage(sess.Metadata["package_id"]); pkg != nil {
		credits = pkg.Credits
	} else if raw := sess.Metadata["credits"]; raw != "" {
		fmt.Sscanf(raw, "%f", &credits)
	}

	rawUserId := sess.Metadata["user_id"]
	userId, err := uuid.Parse(rawUserId)
	if err != nil {
		return credits, nil, nil
	}

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return credits, nil, err
	}
	return credits, user, nil
}

func (s *paymentService) recordUnresolvedGrant(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	event *stripe.Event,
	sess *stripe.CheckoutSession,
	paymentRef string,
	credits, amount float64,
) error {
	var email *string
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email = strPtr(sess.CustomerDetails.Email)
	}

	grant := &entity.UnresolvedGrant{
		Id:              uuid.New(),
		StripeEventId:   event.ID,
		StripePaymentId: paymentRef,
		SubjectUserId:   sess.Metadata["user_id"],
		CustomerEmail:   email,
		Credits:         credits,
		Amount:          amount,
		CreatedAt:       time.Now(),
	}
	if err := uow.UnresolvedGrantRepository().Create(ctx, grant); err != nil {
		return err
	}

	s.processedEvents.Set(event.ID, true, cache.DefaultExpiration)
	s.log.Error("payment", "payment could not be matched to a user", map[string]interface{}{
		"event_id":    event.ID,
		"payment_ref": paymentRef,
		"subject":     grant.SubjectUserId,
		"credits":     credits,
	})

	if s.alertPub != nil {
		alert := dto.UnresolvedGrantMessage{
			PaymentRef: paymentRef,
			Credits:    credits,
		}
		if email != nil {
			alert.CustomerEmail = *email
		}
		if msgJSON, err := json.Marshal(alert); err == nil {
			if err := s.alertPub.Publish(ctx, msgJSON); err != nil {
				s.log.Warn("payment", "failed to publish unresolved grant alert", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	// Acknowledge: the money is recorded, an operator resolves it manually.
	return nil
}
