package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jortizc/CajaPro-api/internal/application/billing"
	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/domain"
)

// BillingHandler maneja la suscripción de la empresa y el webhook de la
// pasarela de pagos.
type BillingHandler struct {
	uc *billing.SubscriptionUseCase
}

// NewBillingHandler construye el handler de billing.
func NewBillingHandler(uc *billing.SubscriptionUseCase) *BillingHandler {
	return &BillingHandler{uc: uc}
}

// Checkout godoc
// @Summary      Iniciar el pago de un plan (solo propietario)
// @Tags         billing
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Plan a contratar"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/billing/checkout [post]
func (h *BillingHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.CreateCheckout(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Current godoc
// @Summary      Estado de la suscripción vigente
// @Tags         billing
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/billing/subscription [get]
func (h *BillingHandler) Current(c *fiber.Ctx) error {
	out, err := h.uc.GetCurrent(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la empresa no tiene suscripción"})
	}
	return c.JSON(out)
}

// Webhook godoc
// @Summary      Notificación de pago de la pasarela (público, firmado)
// @Description  La autenticidad se valida con la firma SHA-512 del payload, no con JWT.
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PaymentNotification  true  "Payload de la pasarela"
// @Success      200   {object}  map[string]string
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/billing/notifications [post]
func (h *BillingHandler) Webhook(c *fiber.Ctx) error {
	var in dto.PaymentNotification
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.HandleNotification(c.Context(), in); err != nil {
		if errors.Is(err, domain.ErrInvalidSignature) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma de notificación inválida"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "orden desconocida"})
		}
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}
