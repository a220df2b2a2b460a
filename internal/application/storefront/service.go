package storefront

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/crm"
	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/cache"
	"github.com/judn/backend/internal/infrastructure/config"
)

const minAddressLength = 10

// claimPending marks an idempotency key whose order is still being
// persisted. Order numbers always start with "JUDN-", so the marker can
// never collide with a fulfilled key.
const claimPending = "PENDING"

// Service handles the public storefront surface: checkout, order lookup
// by number and the server-side cart copy. None of its operations
// require authentication.
type Service struct {
	orderRepo      order.Repository
	customerRepo   crm.Repository
	idempotency    cache.IdempotencyStore
	carts          cache.CartStore
	eventPublisher shared.EventPublisher
	cfg            config.StorefrontConfig
	logger         *zap.Logger
}

// NewService creates a new storefront Service
func NewService(orderRepo order.Repository, customerRepo crm.Repository, idempotency cache.IdempotencyStore, carts cache.CartStore, cfg config.StorefrontConfig, logger *zap.Logger) *Service {
	return &Service{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		idempotency:  idempotency,
		carts:        carts,
		cfg:          cfg,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Checkout places an order from the public storefront. Submissions with a
// previously seen idempotency key return the original order and create
// nothing: the key is claimed atomically before the order is persisted,
// so of two concurrent submissions exactly one reaches the database.
// Tax and shipping are zero on this path; staff adjust them on the order
// afterwards when needed.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if req.IdempotencyKey != "" {
		if number, found, err := s.idempotency.Get(ctx, req.IdempotencyKey); err == nil && found {
			if number == claimPending {
				return nil, shared.ErrDuplicateSubmission
			}
			return s.replay(ctx, number)
		}
	}

	if err := s.validateCheckout(req); err != nil {
		return nil, err
	}

	claimed := false
	if req.IdempotencyKey != "" {
		won, err := s.idempotency.Put(ctx, req.IdempotencyKey, claimPending, s.cfg.IdempotencyTTL)
		switch {
		case err != nil:
			// a broken store must not block checkout, only dedup is lost
			s.logger.Warn("failed to claim idempotency key", zap.Error(err))
		case !won:
			// a concurrent submission with the same key got there first
			if number, found, getErr := s.idempotency.Get(ctx, req.IdempotencyKey); getErr == nil && found && number != claimPending {
				return s.replay(ctx, number)
			}
			return nil, shared.ErrDuplicateSubmission
		default:
			claimed = true
		}
	}

	snapshot := order.CustomerSnapshot{
		Name:  strings.TrimSpace(req.Customer.Name),
		Phone: crm.NormalizePhone(req.Customer.Phone),
		Email: strings.ToLower(strings.TrimSpace(req.Customer.Email)),
		Address: order.Address{
			Street:     strings.TrimSpace(req.Customer.Street),
			City:       strings.TrimSpace(req.Customer.City),
			State:      strings.TrimSpace(req.Customer.State),
			PostalCode: strings.TrimSpace(req.Customer.PostalCode),
		},
	}

	o, err := s.buildOrder(snapshot, req)
	if err != nil {
		s.releaseClaim(ctx, claimed, req.IdempotencyKey)
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		s.releaseClaim(ctx, claimed, req.IdempotencyKey)
		return nil, err
	}

	if claimed {
		if err := s.idempotency.Fulfill(ctx, req.IdempotencyKey, o.OrderNumber, s.cfg.IdempotencyTTL); err != nil {
			s.logger.Warn("failed to record order under idempotency key", zap.Error(err))
		}
	}

	s.upsertCustomer(ctx, snapshot, o.Total)
	s.publishEvents(ctx, o)

	if req.CartKey != "" {
		if err := s.carts.Delete(ctx, req.CartKey); err != nil {
			s.logger.Debug("failed to clear cart after checkout", zap.Error(err))
		}
	}

	s.logger.Info("storefront order placed",
		zap.String("order_number", o.OrderNumber),
		zap.String("total", o.Total.String()),
		zap.Int("items", len(o.Items)))

	return &CheckoutResponse{
		OrderNumber:  o.OrderNumber,
		Total:        o.Total,
		Status:       string(o.Status),
		WhatsAppLink: s.whatsAppLink(o),
	}, nil
}

// buildOrder assembles the pending order aggregate from the submission
func (s *Service) buildOrder(snapshot order.CustomerSnapshot, req CheckoutRequest) (*order.Order, error) {
	o, err := order.New(snapshot, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		var productID *uuid.UUID
		if item.ProductID != "" {
			if id, parseErr := uuid.Parse(item.ProductID); parseErr == nil {
				productID = &id
			}
		}
		price := decimal.NewFromFloat(item.Price)
		if _, err := o.AddItem(productID, item.Name, price, item.Quantity, item.Size, item.Color); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		o.SetNotes(req.Notes, "")
	}
	return o, nil
}

// releaseClaim frees a claimed idempotency key after a failed
// submission so the shopper's retry is not mistaken for a duplicate
func (s *Service) releaseClaim(ctx context.Context, claimed bool, key string) {
	if !claimed {
		return
	}
	if err := s.idempotency.Release(ctx, key); err != nil {
		s.logger.Warn("failed to release idempotency key", zap.Error(err))
	}
}

// LookupOrder returns the public view of an order by its JUDN number
func (s *Service) LookupOrder(ctx context.Context, orderNumber string) (*OrderLookupResponse, error) {
	if !order.IsOrderNumber(orderNumber) {
		return nil, shared.ErrNotFound
	}
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := toOrderLookupResponse(o)
	return &response, nil
}

// GetCart returns a saved cart
func (s *Service) GetCart(ctx context.Context, key string) (*CartResponse, error) {
	cart, found, err := s.carts.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, shared.ErrNotFound
	}
	response := toCartResponse(cart)
	return &response, nil
}

// SaveCart stores a cart under a key, resetting its abandonment TTL
func (s *Service) SaveCart(ctx context.Context, key string, req CartRequest) (*CartResponse, error) {
	cart := &cache.Cart{Key: key, Lines: make([]cache.CartLine, 0, len(req.Lines))}
	for _, l := range req.Lines {
		cart.Lines = append(cart.Lines, cache.CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: decimal.NewFromFloat(l.UnitPrice),
			Quantity:  l.Quantity,
			Size:      l.Size,
			Color:     l.Color,
		})
	}
	if err := s.carts.Put(ctx, cart, s.cfg.CartTTL); err != nil {
		return nil, err
	}
	response := toCartResponse(cart)
	return &response, nil
}

func (s *Service) validateCheckout(req CheckoutRequest) error {
	if len(req.Items) == 0 {
		return shared.NewDomainError("EMPTY_CART", "At least one item is required")
	}
	if len(strings.TrimSpace(req.Customer.Name)) < 2 {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name must be at least 2 characters")
	}
	if err := crm.ValidatePhone(crm.NormalizePhone(req.Customer.Phone)); err != nil {
		return err
	}
	address := order.Address{
		Street:     req.Customer.Street,
		City:       req.Customer.City,
		State:      req.Customer.State,
		PostalCode: req.Customer.PostalCode,
	}
	if len(address.Combined()) < minAddressLength {
		return shared.NewDomainError("INVALID_ADDRESS", "Delivery address is too short")
	}
	if !order.PaymentMethod(req.PaymentMethod).IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}
	return nil
}

// replay serves a repeated submission from the already-created order
func (s *Service) replay(ctx context.Context, orderNumber string) (*CheckoutResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	return &CheckoutResponse{
		OrderNumber:  o.OrderNumber,
		Total:        o.Total,
		Status:       string(o.Status),
		WhatsAppLink: s.whatsAppLink(o),
		Replayed:     true,
	}, nil
}

// upsertCustomer records the order against the CRM customer, creating a
// lead record on first contact. Failures are logged and swallowed; the
// order is already placed.
func (s *Service) upsertCustomer(ctx context.Context, snapshot order.CustomerSnapshot, total decimal.Decimal) {
	customer, err := s.customerRepo.FindByPhone(ctx, snapshot.Phone)
	if err != nil || customer == nil {
		customer, err = crm.NewCustomer(snapshot.Name, snapshot.Phone, crm.PlatformWebsite)
		if err != nil {
			s.logger.Warn("failed to create customer from checkout", zap.Error(err))
			return
		}
		if snapshot.Email != "" {
			if err := customer.Update(snapshot.Name, snapshot.Email, crm.InterestGeneral, ""); err != nil {
				s.logger.Debug("failed to set customer email from checkout", zap.Error(err))
			}
		}
	}

	customer.RecordOrder(total, time.Now())

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		s.logger.Warn("failed to save customer from checkout",
			zap.String("phone", snapshot.Phone),
			zap.Error(err))
		return
	}

	if s.eventPublisher != nil {
		for _, event := range customer.GetDomainEvents() {
			_ = s.eventPublisher.Publish(ctx, event)
		}
		customer.ClearDomainEvents()
	}
}

// whatsAppLink builds a wa.me deep link pre-filled with the order number
// so the shopper can confirm over WhatsApp
func (s *Service) whatsAppLink(o *order.Order) string {
	if s.cfg.WhatsAppNumber == "" {
		return ""
	}
	text := fmt.Sprintf("Hello JUDN! I just placed order %s (total %s BDT).", o.OrderNumber, o.Total.StringFixed(2))
	return fmt.Sprintf("https://wa.me/%s?text=%s", s.cfg.WhatsAppNumber, url.QueryEscape(text))
}

func (s *Service) publishEvents(ctx context.Context, o *order.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range o.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	o.ClearDomainEvents()
}
