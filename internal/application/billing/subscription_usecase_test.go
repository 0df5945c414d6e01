package billing

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

const testServerKey = "SB-Mid-server-testkey"

type fakeSubRepo struct {
	subs    map[string]*entity.Subscription // por order_id
	updates int
}

func (f *fakeSubRepo) Create(_ context.Context, s *entity.Subscription) error {
	f.subs[s.OrderID] = s
	return nil
}

func (f *fakeSubRepo) GetByOrderID(_ context.Context, orderID string) (*entity.Subscription, error) {
	s, ok := f.subs[orderID]
	if !ok {
		return nil, nil
	}
	copia := *s
	return &copia, nil
}

func (f *fakeSubRepo) GetCurrentByCompany(_ context.Context, companyID string) (*entity.Subscription, error) {
	for _, s := range f.subs {
		if s.CompanyID == companyID {
			copia := *s
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *fakeSubRepo) Update(_ context.Context, s *entity.Subscription) error {
	f.updates++
	f.subs[s.OrderID] = s
	return nil
}

type fakeCompanyRepo struct{}

func (f *fakeCompanyRepo) Create(_ context.Context, c *entity.Company) error { return nil }
func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	return &entity.Company{ID: id, Name: "Tienda Test"}, nil
}
func (f *fakeCompanyRepo) GetByNIT(_ context.Context, nit string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyRepo) Update(_ context.Context, c *entity.Company) error { return nil }

type fakeGateway struct{}

func (f *fakeGateway) CreateCheckout(_ context.Context, orderID, _, _ string, _ decimal.Decimal) (*CheckoutSession, error) {
	return &CheckoutSession{Token: "tok-" + orderID, RedirectURL: "https://app.sandbox/pay/" + orderID}, nil
}

type fakeNotifier struct {
	notes []string
}

func (f *fakeNotifier) Notify(_ context.Context, _, _, title, _ string) error {
	f.notes = append(f.notes, title)
	return nil
}

func firma(orderID, statusCode, grossAmount string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + testServerKey))
	return hex.EncodeToString(sum[:])
}

func escenarioBilling(t *testing.T) (*SubscriptionUseCase, *fakeSubRepo, *fakeNotifier) {
	t.Helper()
	repo := &fakeSubRepo{subs: map[string]*entity.Subscription{
		"CAJAPRO-abc-1": {
			ID:          "sub-1",
			CompanyID:   "empresa-1",
			Plan:        entity.PlanPro,
			Status:      entity.SubPending,
			OrderID:     "CAJAPRO-abc-1",
			GrossAmount: entity.PlanPrice(entity.PlanPro),
			CreatedAt:   time.Now(),
		},
	}}
	notifier := &fakeNotifier{}
	uc := NewSubscriptionUseCase(repo, &fakeCompanyRepo{}, &fakeGateway{}, notifier, testServerKey, nil)
	return uc, repo, notifier
}

func notificacion(status string) dto.PaymentNotification {
	return dto.PaymentNotification{
		OrderID:           "CAJAPRO-abc-1",
		StatusCode:        "200",
		GrossAmount:       "99900.00",
		SignatureKey:      firma("CAJAPRO-abc-1", "200", "99900.00"),
		TransactionStatus: status,
		FraudStatus:       "accept",
		PaymentType:       "qris",
	}
}

func TestHandleNotification_SettlementActivaSuscripcion(t *testing.T) {
	uc, repo, notifier := escenarioBilling(t)

	err := uc.HandleNotification(context.Background(), notificacion("settlement"))
	require.NoError(t, err)

	sub := repo.subs["CAJAPRO-abc-1"]
	assert.Equal(t, entity.SubActive, sub.Status)
	require.NotNil(t, sub.PaidUntil, "el pago debe extender la vigencia")
	assert.True(t, sub.PaidUntil.After(time.Now()))
	assert.Equal(t, []string{"Pago confirmado"}, notifier.notes)
}

func TestHandleNotification_FirmaInvalidaNoTocaNada(t *testing.T) {
	uc, repo, notifier := escenarioBilling(t)

	in := notificacion("settlement")
	in.SignatureKey = "0000deadbeef"
	err := uc.HandleNotification(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	assert.Equal(t, entity.SubPending, repo.subs["CAJAPRO-abc-1"].Status)
	assert.Zero(t, repo.updates)
	assert.Empty(t, notifier.notes)
}

func TestHandleNotification_ReentregaEsIdempotente(t *testing.T) {
	uc, repo, notifier := escenarioBilling(t)

	require.NoError(t, uc.HandleNotification(context.Background(), notificacion("settlement")))
	primeraVigencia := *repo.subs["CAJAPRO-abc-1"].PaidUntil

	// La pasarela reentrega el mismo webhook
	require.NoError(t, uc.HandleNotification(context.Background(), notificacion("settlement")))

	assert.Equal(t, 1, repo.updates, "la reentrega no debe reescribir")
	assert.Equal(t, primeraVigencia, *repo.subs["CAJAPRO-abc-1"].PaidUntil)
	assert.Len(t, notifier.notes, 1, "la reentrega no debe duplicar la notificación")
}

func TestHandleNotification_DenyMarcaFallido(t *testing.T) {
	uc, repo, notifier := escenarioBilling(t)

	require.NoError(t, uc.HandleNotification(context.Background(), notificacion("deny")))
	assert.Equal(t, entity.SubFailed, repo.subs["CAJAPRO-abc-1"].Status)
	assert.Equal(t, []string{"Pago rechazado"}, notifier.notes)
}

func TestHandleNotification_CaptureConFraudeEnRevisionNoCambia(t *testing.T) {
	uc, repo, _ := escenarioBilling(t)

	in := notificacion("capture")
	in.FraudStatus = "challenge"
	require.NoError(t, uc.HandleNotification(context.Background(), in))
	assert.Equal(t, entity.SubPending, repo.subs["CAJAPRO-abc-1"].Status)
	assert.Zero(t, repo.updates)
}

func TestHandleNotification_OrdenDesconocida(t *testing.T) {
	uc, _, _ := escenarioBilling(t)

	in := dto.PaymentNotification{
		OrderID:           "CAJAPRO-no-existe",
		StatusCode:        "200",
		GrossAmount:       "99900.00",
		SignatureKey:      firma("CAJAPRO-no-existe", "200", "99900.00"),
		TransactionStatus: "settlement",
	}
	err := uc.HandleNotification(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateCheckout_GuardaPendienteYDevuelveSesion(t *testing.T) {
	uc, repo, _ := escenarioBilling(t)

	out, err := uc.CreateCheckout(context.Background(), "empresa-2", dto.CheckoutRequest{Plan: entity.PlanBasico})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.NotEmpty(t, out.RedirectURL)
	assert.True(t, out.GrossAmount.Equal(entity.PlanPrice(entity.PlanBasico)))

	sub, _ := repo.GetByOrderID(context.Background(), out.OrderID)
	require.NotNil(t, sub)
	assert.Equal(t, entity.SubPending, sub.Status)
}

func TestCreateCheckout_PlanDesconocido(t *testing.T) {
	uc, _, _ := escenarioBilling(t)

	_, err := uc.CreateCheckout(context.Background(), "empresa-1", dto.CheckoutRequest{Plan: "gratis"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
