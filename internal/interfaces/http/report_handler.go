package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jortizc/CajaPro-api/internal/application/analytics"
	"github.com/jortizc/CajaPro-api/internal/application/dto"
)

// ReportHandler expone los reportes de ventas (solo admin o propietario via
// tabla de permisos).
type ReportHandler struct {
	uc *analytics.ReportUseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *analytics.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Reporte de ventas por rango de fechas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  true   "Desde (YYYY-MM-DD o RFC3339)"
// @Param        end_date    query  string  false  "Hasta (default: hoy)"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	rawStart := c.Query("start_date")
	if rawStart == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date es requerida"})
	}
	start, err := parseFeedDate(rawStart, false)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida, use YYYY-MM-DD o RFC3339"})
	}
	end := time.Now()
	if raw := c.Query("end_date"); raw != "" {
		end, err = parseFeedDate(raw, true)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida, use YYYY-MM-DD o RFC3339"})
		}
	}
	out, err := h.uc.GetSalesReport(c.Context(), GetCompanyID(c), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
