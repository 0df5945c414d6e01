package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jortizc/CajaPro-api/internal/application/activity"
	"github.com/jortizc/CajaPro-api/internal/application/dto"
)

// ActivityHandler expone el feed de actividad reciente de la empresa.
type ActivityHandler struct {
	uc *activity.FeedUseCase
}

// NewActivityHandler construye el handler del feed.
func NewActivityHandler(uc *activity.FeedUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Feed godoc
// @Summary      Feed unificado de actividad reciente
// @Description  Ventas, compras y cambios de producto normalizados, ordenados del más reciente al más antiguo.
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        limit          query  int     false  "Tamaño de página"  default(10)
// @Param        offset         query  int     false  "Offset"            default(0)
// @Param        type           query  string  false  "Filtrar por tipo"  Enums(sale, purchase, product, login, all)
// @Param        start_date     query  string  false  "Desde (YYYY-MM-DD o RFC3339)"
// @Param        end_date       query  string  false  "Hasta (YYYY-MM-DD o RFC3339)"
// @Param        employee_only  query  bool    false  "Solo actividad de empleados"
// @Success      200  {object}  dto.ActivityFeedResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/activity [get]
func (h *ActivityHandler) Feed(c *fiber.Ctx) error {
	opts := activity.FeedOptions{
		Limit:        c.QueryInt("limit", 0),
		Offset:       c.QueryInt("offset", 0),
		Type:         c.Query("type"),
		EmployeeOnly: c.QueryBool("employee_only"),
	}
	if raw := c.Query("start_date"); raw != "" {
		t, err := parseFeedDate(raw, false)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida, use YYYY-MM-DD o RFC3339"})
		}
		opts.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseFeedDate(raw, true)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida, use YYYY-MM-DD o RFC3339"})
		}
		opts.EndDate = &t
	}
	out, err := h.uc.GetFeed(c.Context(), GetCompanyID(c), opts)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// parseFeedDate acepta RFC3339 o fecha simple. Una fecha simple usada como
// límite superior cubre el día completo (23:59:59.999...).
func parseFeedDate(raw string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return t, nil
}
