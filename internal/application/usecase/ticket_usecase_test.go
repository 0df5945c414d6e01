package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/application/usecase"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

type fakeTicketRepo struct {
	tickets map[string]*entity.ServiceTicket
	updates int
}

func (f *fakeTicketRepo) Create(_ context.Context, t *entity.ServiceTicket) error {
	f.tickets[t.ID] = t
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*entity.ServiceTicket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, nil
	}
	copia := *t
	return &copia, nil
}

func (f *fakeTicketRepo) Update(_ context.Context, t *entity.ServiceTicket) error {
	f.updates++
	f.tickets[t.ID] = t
	return nil
}

func (f *fakeTicketRepo) ListByCompany(_ context.Context, companyID, status string, _, _ int) ([]*entity.ServiceTicket, error) {
	var out []*entity.ServiceTicket
	for _, t := range f.tickets {
		if t.CompanyID == companyID && (status == "" || t.Status == status) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	f.customers[c.ID] = c
	return nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCustomerRepo) GetByDocument(_ context.Context, _, _ string) (*entity.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error { return nil }

func (f *fakeCustomerRepo) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, _ string) error { return nil }

func escenarioTickets(t *testing.T, status string) (*usecase.TicketUseCase, *fakeTicketRepo) {
	t.Helper()
	repo := &fakeTicketRepo{tickets: map[string]*entity.ServiceTicket{
		"t1": {
			ID:            "t1",
			CompanyID:     empresaID,
			CustomerID:    "c1",
			Device:        "Portátil Lenovo",
			Issue:         "no enciende",
			Status:        status,
			EstimatedCost: decimal.NewFromInt(80000),
			UserID:        cajeroID,
			ReceivedAt:    time.Now(),
		},
	}}
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"c1": {ID: "c1", CompanyID: empresaID, Name: "Pedro Gómez"},
	}}
	return usecase.NewTicketUseCase(repo, customers), repo
}

func TestTicketCreate_ArrancaEnRecibido(t *testing.T) {
	uc, repo := escenarioTickets(t, entity.TicketRecibido)

	out, err := uc.Create(context.Background(), empresaID, cajeroID, dto.CreateTicketRequest{
		CustomerID:    "c1",
		Device:        "Celular Samsung",
		Issue:         "pantalla rota",
		EstimatedCost: decimal.NewFromInt(120000),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketRecibido, out.Status)
	assert.NotEmpty(t, out.ID)
	assert.Len(t, repo.tickets, 2)
}

func TestTicketCreate_ClienteDeOtraEmpresa(t *testing.T) {
	uc, _ := escenarioTickets(t, entity.TicketRecibido)

	_, err := uc.Create(context.Background(), "otra-empresa", cajeroID, dto.CreateTicketRequest{
		CustomerID: "c1",
		Device:     "Celular",
		Issue:      "no carga",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTicketUpdateStatus_TransicionesValidas(t *testing.T) {
	pasos := []struct{ desde, hacia string }{
		{entity.TicketRecibido, entity.TicketEnProceso},
		{entity.TicketEnProceso, entity.TicketListo},
		{entity.TicketListo, entity.TicketEntregado},
		{entity.TicketRecibido, entity.TicketCancelado},
		{entity.TicketEnProceso, entity.TicketCancelado},
		{entity.TicketListo, entity.TicketCancelado},
	}
	for _, paso := range pasos {
		uc, _ := escenarioTickets(t, paso.desde)
		out, err := uc.UpdateStatus(context.Background(), empresaID, "t1", dto.UpdateTicketStatusRequest{Status: paso.hacia})
		require.NoError(t, err, "%s → %s debe ser válida", paso.desde, paso.hacia)
		assert.Equal(t, paso.hacia, out.Status)
	}
}

func TestTicketUpdateStatus_TransicionesInvalidas(t *testing.T) {
	pasos := []struct{ desde, hacia string }{
		{entity.TicketRecibido, entity.TicketListo},     // saltarse un paso
		{entity.TicketRecibido, entity.TicketEntregado}, // saltarse dos
		{entity.TicketEntregado, entity.TicketEnProceso}, // estado final
		{entity.TicketCancelado, entity.TicketEnProceso}, // estado final
		{entity.TicketListo, entity.TicketRecibido},      // retroceso
	}
	for _, paso := range pasos {
		uc, repo := escenarioTickets(t, paso.desde)
		_, err := uc.UpdateStatus(context.Background(), empresaID, "t1", dto.UpdateTicketStatusRequest{Status: paso.hacia})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "%s → %s debe rechazarse", paso.desde, paso.hacia)
		assert.Zero(t, repo.updates, "una transición inválida no debe escribir")
		assert.Equal(t, paso.desde, repo.tickets["t1"].Status)
	}
}

func TestTicketUpdateStatus_EntregadoSellaFecha(t *testing.T) {
	uc, repo := escenarioTickets(t, entity.TicketListo)

	out, err := uc.UpdateStatus(context.Background(), empresaID, "t1", dto.UpdateTicketStatusRequest{Status: entity.TicketEntregado})
	require.NoError(t, err)
	require.NotNil(t, out.DeliveredAt)
	assert.NotNil(t, repo.tickets["t1"].DeliveredAt)
}
