package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jortizc/CajaPro-api/internal/application/usecase"
	"github.com/jortizc/CajaPro-api/internal/domain"
	"github.com/jortizc/CajaPro-api/internal/domain/entity"
)

const (
	notifCompanyID = "11111111-1111-1111-1111-111111111111"
	otraEmpresaID  = "22222222-2222-2222-2222-222222222222"
)

func escenarioNotificaciones(t *testing.T) (*usecase.NotificationUseCase, *fakeNotificationRepo) {
	t.Helper()
	repo := &fakeNotificationRepo{}
	uc := usecase.NewNotificationUseCase(repo)
	require.NoError(t, uc.Notify(context.Background(), notifCompanyID, entity.NotifSuccess, "Pago confirmado", "Tu plan pro está activo"))
	require.NoError(t, uc.Notify(context.Background(), notifCompanyID, entity.NotifWarning, "Stock bajo", "'Teclado' quedó con 2 unidades"))
	require.NoError(t, uc.Notify(context.Background(), otraEmpresaID, entity.NotifInfo, "Bienvenida", "Empresa registrada"))
	return uc, repo
}

func TestNotificationList_SoloDeLaEmpresaYConContador(t *testing.T) {
	uc, _ := escenarioNotificaciones(t)

	out, err := uc.List(context.Background(), notifCompanyID, false, 20, 0)
	require.NoError(t, err)

	assert.Len(t, out.Items, 2, "no debe verse la notificación de la otra empresa")
	assert.Equal(t, 2, out.UnreadCount)
	for _, n := range out.Items {
		assert.NotEmpty(t, n.TimeDisplay, "cada item lleva su texto relativo")
	}
}

func TestNotificationMarkRead_IndividualYContador(t *testing.T) {
	uc, repo := escenarioNotificaciones(t)

	require.NoError(t, uc.MarkRead(context.Background(), notifCompanyID, repo.created[0].ID))

	count, err := uc.UnreadCount(context.Background(), notifCompanyID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNotificationMarkRead_OtraEmpresaNoVisible(t *testing.T) {
	uc, repo := escenarioNotificaciones(t)

	// La notificación existe, pero pertenece a otra empresa.
	err := uc.MarkRead(context.Background(), notifCompanyID, repo.created[2].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotificationMarkAllRead(t *testing.T) {
	uc, _ := escenarioNotificaciones(t)

	require.NoError(t, uc.MarkAllRead(context.Background(), notifCompanyID))

	count, err := uc.UnreadCount(context.Background(), notifCompanyID)
	require.NoError(t, err)
	assert.Zero(t, count)

	// La otra empresa conserva su pendiente.
	otro, err := uc.UnreadCount(context.Background(), otraEmpresaID)
	require.NoError(t, err)
	assert.Equal(t, 1, otro)
}

func TestNotificationList_SoloNoLeidas(t *testing.T) {
	uc, repo := escenarioNotificaciones(t)
	require.NoError(t, uc.MarkRead(context.Background(), notifCompanyID, repo.created[0].ID))

	out, err := uc.List(context.Background(), notifCompanyID, true, 20, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Stock bajo", out.Items[0].Title)
}
