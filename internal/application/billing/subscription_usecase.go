package billing

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
	"github.com/jortizc/CajaPro-api/internal/domain/repository"
	"github.com/jortizc/CajaPro-api/pkg/logger"
)

// Notifier persiste avisos para la empresa (pago confirmado o rechazado).
type Notifier interface {
	Notify(ctx context.Context, companyID, tipo, title, message string) error
}

// SubscriptionUseCase gestiona el checkout de suscripciones y la
// reconciliación de pagos que llega por el webhook de la pasarela.
type SubscriptionUseCase struct {
	repo        repository.SubscriptionRepository
	companyRepo repository.CompanyRepository
	gateway     PaymentGateway
	notifier    Notifier
	serverKey   string
	log         *logger.Logger
}

// NewSubscriptionUseCase construye el caso de uso de suscripciones.
func NewSubscriptionUseCase(
	repo repository.SubscriptionRepository,
	companyRepo repository.CompanyRepository,
	gateway PaymentGateway,
	notifier Notifier,
	serverKey string,
	log *logger.Logger,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		repo:        repo,
		companyRepo: companyRepo,
		gateway:     gateway,
		notifier:    notifier,
		serverKey:   serverKey,
		log:         log,
	}
}

// CreateCheckout crea una sesión de pago Snap para el plan elegido y guarda
// la suscripción en estado pending a la espera del webhook.
func (uc *SubscriptionUseCase) CreateCheckout(ctx context.Context, companyID string, in dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	price := entity.PlanPrice(in.Plan)
	if price.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	orderID := fmt.Sprintf("CAJAPRO-%s-%d", uuid.New().String()[:8], now.Unix())
	sub := &entity.Subscription{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Plan:        in.Plan,
		Status:      entity.SubPending,
		OrderID:     orderID,
		GrossAmount: price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, sub); err != nil {
		return nil, err
	}

	session, err := uc.gateway.CreateCheckout(ctx, orderID, company.Name, in.Plan, price)
	if err != nil {
		return nil, fmt.Errorf("billing: crear checkout: %w", err)
	}
	return &dto.CheckoutResponse{
		OrderID:     orderID,
		Token:       session.Token,
		RedirectURL: session.RedirectURL,
		GrossAmount: price,
	}, nil
}

// GetCurrent devuelve la suscripción vigente de la empresa. Retorna
// (nil, nil) si nunca ha iniciado una.
func (uc *SubscriptionUseCase) GetCurrent(ctx context.Context, companyID string) (*dto.SubscriptionResponse, error) {
	sub, err := uc.repo.GetCurrentByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}
	return subscriptionToResponse(sub), nil
}

// HandleNotification procesa el webhook de la pasarela. Primero verifica la
// firma SHA-512; una firma inválida retorna domain.ErrInvalidSignature sin
// tocar estado. El procesamiento es idempotente: reentregas del mismo
// estado no reescriben ni duplican notificaciones.
func (uc *SubscriptionUseCase) HandleNotification(ctx context.Context, in dto.PaymentNotification) error {
	if !uc.validSignature(in) {
		return domain.ErrInvalidSignature
	}
	sub, err := uc.repo.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		return err
	}
	if sub == nil {
		return domain.ErrNotFound
	}

	newStatus := mapTransactionStatus(in.TransactionStatus, in.FraudStatus)
	if newStatus == "" || newStatus == sub.Status {
		return nil
	}

	now := time.Now()
	sub.Status = newStatus
	if newStatus == entity.SubActive {
		base := now
		if sub.PaidUntil != nil && sub.PaidUntil.After(now) {
			base = *sub.PaidUntil
		}
		until := base.AddDate(0, 1, 0)
		sub.PaidUntil = &until
	}
	sub.UpdatedAt = now
	if err := uc.repo.Update(ctx, sub); err != nil {
		return err
	}

	uc.notifyResult(ctx, sub, in)
	return nil
}

// validSignature compara la firma del payload con
// SHA-512(order_id + status_code + gross_amount + server_key).
func (uc *SubscriptionUseCase) validSignature(in dto.PaymentNotification) bool {
	sum := sha512.Sum512([]byte(in.OrderID + in.StatusCode + in.GrossAmount + uc.serverKey))
	return hex.EncodeToString(sum[:]) == in.SignatureKey
}

// mapTransactionStatus traduce el estado de la pasarela al de la
// suscripción. Devuelve vacío para estados que no cambian nada.
func mapTransactionStatus(transactionStatus, fraudStatus string) string {
	switch transactionStatus {
	case "capture":
		if fraudStatus == "accept" {
			return entity.SubActive
		}
		return ""
	case "settlement":
		return entity.SubActive
	case "pending":
		return entity.SubPending
	case "deny", "cancel", "expire":
		return entity.SubFailed
	default:
		return ""
	}
}

// notifyResult deja una notificación del resultado del pago. Un fallo aquí
// no debe tumbar el webhook: se loguea y se continúa.
func (uc *SubscriptionUseCase) notifyResult(ctx context.Context, sub *entity.Subscription, in dto.PaymentNotification) {
	var tipo, title, message string
	switch sub.Status {
	case entity.SubActive:
		tipo = entity.NotifSuccess
		title = "Pago confirmado"
		message = fmt.Sprintf("Tu suscripción al plan %s está activa.", sub.Plan)
	case entity.SubFailed:
		tipo = entity.NotifError
		title = "Pago rechazado"
		message = fmt.Sprintf("El pago del plan %s no pudo completarse (%s).", sub.Plan, in.TransactionStatus)
	default:
		return
	}
	if err := uc.notifier.Notify(ctx, sub.CompanyID, tipo, title, message); err != nil && uc.log != nil {
		uc.log.Error().Err(err).Str("order_id", sub.OrderID).Msg("no se pudo guardar la notificación de pago")
	}
}

func subscriptionToResponse(s *entity.Subscription) *dto.SubscriptionResponse {
	return &dto.SubscriptionResponse{
		ID:          s.ID,
		Plan:        s.Plan,
		Status:      s.Status,
		OrderID:     s.OrderID,
		GrossAmount: s.GrossAmount,
		PaidUntil:   s.PaidUntil,
	}
}
