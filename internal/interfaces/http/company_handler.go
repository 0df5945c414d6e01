package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jortizc/CajaPro-api/internal/application/dto"
	"github.com/jortizc/CajaPro-api/internal/application/usecase"
)

// CompanyHandler maneja los ajustes de la empresa (solo propietario via
// tabla de permisos).
type CompanyHandler struct {
	uc *usecase.CompanyUseCase
}

// NewCompanyHandler construye el handler de empresa.
func NewCompanyHandler(uc *usecase.CompanyUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// GetSettings godoc
// @Summary      Datos de la empresa
// @Tags         company
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/company/settings [get]
func (h *CompanyHandler) GetSettings(c *fiber.Ctx) error {
	out, err := h.uc.GetSettings(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings godoc
// @Summary      Actualizar datos de la empresa
// @Tags         company
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/company/settings [put]
func (h *CompanyHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateCompanyRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.UpdateSettings(c.Context(), GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
