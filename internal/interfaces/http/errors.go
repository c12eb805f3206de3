package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/application/inventory"
	"github.com/odontosys/inventario-api/internal/application/reservation"
	"github.com/odontosys/inventario-api/internal/domain"
)

// respondError traduce los errores de dominio a respuestas HTTP. El orden de
// los chequeos importa: DoubleBookingError envuelve ErrConflict pero lleva
// detalle propio.
func respondError(c *fiber.Ctx, err error) error {
	var dbe *reservation.DoubleBookingError
	if errors.As(err, &dbe) {
		details := make([]string, 0, len(dbe.Conflicts))
		for _, b := range dbe.Conflicts {
			details = append(details, b.String())
		}
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code: "DOUBLE_BOOKING", Message: dbe.Error(), Details: details,
		})
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado al recurso"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// actorFrom arma la identidad del actor para kardex y auditoría.
func actorFrom(c *fiber.Ctx) inventory.Actor {
	return inventory.Actor{
		UserID:    GetUserID(c),
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	}
}

// parseTimeQuery lee un query param RFC3339; nil si está vacío.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &t, nil
}

// parseRangeQuery lee from/to obligatorios para los informes de rango.
func parseRangeQuery(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := parseTimeQuery(c, "from")
	if err != nil || from == nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil || to == nil {
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	return *from, *to, nil
}
