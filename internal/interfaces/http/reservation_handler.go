package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/application/reservation"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
)

// ReservationHandler maneja el motor de reservas de materiales y activos (protegido).
type ReservationHandler struct {
	uc *reservation.UseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *reservation.UseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// ReserveMaterial godoc
// @Summary      Reservar material para una cita o un plan de tratamiento
// @Tags         reservas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveMaterialRequest  true  "material_id, quantity y exactamente uno de appointment_id/treatment_plan_id"
// @Success      201  {object}  dto.MaterialReservationDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservas/materiales [post]
func (h *ReservationHandler) ReserveMaterial(c *fiber.Ctx) error {
	var in dto.ReserveMaterialRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := reservation.ReserveMaterialInput{
		MaterialID:      in.MaterialID,
		AppointmentID:   in.AppointmentID,
		TreatmentPlanID: in.TreatmentPlanID,
		Kind:            in.Kind,
		Quantity:        in.Quantity,
		UserID:          GetUserID(c),
	}
	var res *entity.MaterialReservation
	var err error
	if in.AppointmentID != "" {
		res, err = h.uc.ReservarParaCita(c.Context(), input)
	} else {
		res, err = h.uc.ReservarParaTratamiento(c.Context(), input)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMaterialReservationDTO(res))
}

// ConfirmMaterialReservation godoc
// @Summary      Confirmar una reserva de material
// @Description  Descuenta el consumo real del stock en mano y escribe la fila
//	de salida del kardex. La cantidad puede diferir de la reservada.
// @Tags         reservas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la reserva"
// @Param        body  body  dto.ConfirmMaterialReservationRequest  false  "quantity (nil = cantidad reservada)"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservas/materiales/{id}/confirmar [post]
func (h *ReservationHandler) ConfirmMaterialReservation(c *fiber.Ctx) error {
	var in dto.ConfirmMaterialReservationRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	if err := h.uc.ConfirmarReserva(c.Context(), c.Params("id"), in.Quantity, GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CancelMaterialReservation godoc
// @Summary      Cancelar una reserva de material
// @Description  Libera la retención. Cancelar una reserva ya cancelada es
//	no-op; una confirmada no puede cancelarse.
// @Tags         reservas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la reserva"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservas/materiales/{id}/cancelar [post]
func (h *ReservationHandler) CancelMaterialReservation(c *fiber.Ctx) error {
	if err := h.uc.CancelarReserva(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReserveAsset godoc
// @Summary      Reservar un activo por intervalo
// @Description  Intervalo semiabierto [start_at, end_at): reservas adyacentes
//	no chocan. Con solape responde 409 detallando las reservas en conflicto.
// @Tags         reservas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReserveAssetRequest  true  "asset_id, start_at, end_at y cita o plan"
// @Success      201  {object}  dto.AssetReservationDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservas/activos [post]
func (h *ReservationHandler) ReserveAsset(c *fiber.Ctx) error {
	var in dto.ReserveAssetRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	res, err := h.uc.ReservarActivo(c.Context(), reservation.ReserveAssetInput{
		AssetID:         in.AssetID,
		AppointmentID:   in.AppointmentID,
		TreatmentPlanID: in.TreatmentPlanID,
		StartAt:         in.StartAt,
		EndAt:           in.EndAt,
		UserID:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAssetReservationDTO(res))
}

// ConfirmAssetReservation godoc
// @Summary      Confirmar una reserva de activo
// @Description  Pasa la reserva a CONFIRMED y el activo a IN_USE con su fila
//	de bitácora.
// @Tags         reservas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la reserva"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/reservas/activos/{id}/confirmar [post]
func (h *ReservationHandler) ConfirmAssetReservation(c *fiber.Ctx) error {
	if err := h.uc.ConfirmarReservaActivo(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CancelAssetReservation godoc
// @Summary      Cancelar una reserva de activo
// @Tags         reservas
// @Security     Bearer
// @Param        id  path  string  true  "ID de la reserva"
// @Success      204
// @Router       /api/reservas/activos/{id}/cancelar [post]
func (h *ReservationHandler) CancelAssetReservation(c *fiber.Ctx) error {
	if err := h.uc.CancelarReservaActivo(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AppointmentReservations godoc
// @Summary      Reservas de una cita (materiales y activos)
// @Tags         citas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la cita"
// @Success      200  {object}  map[string]any
// @Router       /api/citas/{id}/reservas [get]
func (h *ReservationHandler) AppointmentReservations(c *fiber.Ctx) error {
	materials, assets, err := h.uc.ReservasPorCita(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"materials": toMaterialReservationDTOs(materials),
		"assets":    toAssetReservationDTOs(assets),
	})
}

// ReconcileAppointment godoc
// @Summary      Conciliar los recursos de una cita contra el estado deseado
// @Description  Cancela reservas sobrantes, ajusta deltas de cantidad y crea
//	las nuevas. En modo estricto el primer fallo revierte toda la llamada;
//	si no, los fallos se listan en la respuesta.
// @Tags         citas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.ReconcileResourcesRequest  true  "materials, assets, strict"
// @Success      200  {object}  dto.ReconcileResultDTO
// @Router       /api/citas/{id}/reservas [put]
func (h *ReservationHandler) ReconcileAppointment(c *fiber.Ctx) error {
	var in dto.ReconcileResourcesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := reservation.ReconcileInput{
		AppointmentID: c.Params("id"),
		UserID:        GetUserID(c),
		Strict:        in.Strict,
	}
	for _, m := range in.Materials {
		input.Materials = append(input.Materials, reservation.DesiredMaterial{MaterialID: m.MaterialID, Quantity: m.Quantity})
	}
	for _, a := range in.Assets {
		input.Assets = append(input.Assets, reservation.DesiredAsset{AssetID: a.AssetID, StartAt: a.StartAt, EndAt: a.EndAt})
	}
	result, err := h.uc.ReconciliarRecursosCita(c.Context(), input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ReconcileResultDTO{
		Created:   result.Created,
		Adjusted:  result.Adjusted,
		Cancelled: result.Cancelled,
		Failures:  result.Failures,
	})
}

// ConfirmAppointmentMaterials godoc
// @Summary      Confirmar todos los recursos de una cita en un solo lote
// @Description  Una sola transacción: consumos reales de materiales, activos
//	a IN_USE y la marca "materiales confirmados" de la cita. Cualquier fallo
//	revierte el lote completo.
// @Tags         citas
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.ConfirmAppointmentRequest  true  "usages"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/citas/{id}/confirmar-materiales [post]
func (h *ReservationHandler) ConfirmAppointmentMaterials(c *fiber.Ctx) error {
	var in dto.ConfirmAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	input := reservation.ConfirmAppointmentInput{
		AppointmentID: c.Params("id"),
		UserID:        GetUserID(c),
	}
	for _, u := range in.Usages {
		input.Usages = append(input.Usages, reservation.MaterialUsage{ReservationID: u.ReservationID, QuantityUsed: u.QuantityUsed})
	}
	if err := h.uc.ConfirmarRecursosCita(c.Context(), input); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TreatmentReservations godoc
// @Summary      Reservas de material de un plan de tratamiento
// @Tags         tratamientos
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del plan"
// @Success      200  {array}  dto.MaterialReservationDTO
// @Router       /api/tratamientos/{id}/reservas [get]
func (h *ReservationHandler) TreatmentReservations(c *fiber.Ctx) error {
	materials, err := h.uc.ReservasPorTratamiento(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMaterialReservationDTOs(materials))
}

// CheckAssetAvailability godoc
// @Summary      Verificar disponibilidad de un activo en un intervalo
// @Tags         reservas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckAssetAvailabilityRequest  true  "asset_id, start_at, end_at"
// @Success      200  {object}  dto.AssetAvailabilityDTO
// @Router       /api/verificar-disponibilidad-activo [post]
func (h *ReservationHandler) CheckAssetAvailability(c *fiber.Ctx) error {
	var in dto.CheckAssetAvailabilityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	av, err := h.uc.VerificarDisponibilidadActivo(c.Context(), in.AssetID, in.StartAt, in.EndAt, in.ExcludeReservationID)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.AssetAvailabilityDTO{Available: av.Available, Reason: av.Reason}
	for _, b := range av.Conflicts {
		out.Conflicts = append(out.Conflicts, dto.BookingConflictDTO{
			ReservationID: b.ReservationID,
			ReservedBy:    b.ReservedBy,
			StartAt:       b.Interval.Start,
			EndAt:         b.Interval.End,
		})
	}
	return c.JSON(out)
}

// AvailableAssets godoc
// @Summary      Activos libres del inventario en un rango de fechas
// @Tags         reservas
// @Security     Bearer
// @Produce      json
// @Param        id    path   string  true  "ID del inventario"
// @Param        from  query  string  true  "Inicio RFC3339"
// @Param        to    query  string  true  "Fin RFC3339"
// @Success      200  {array}  dto.AvailableAssetDTO
// @Router       /api/inventario/{id}/activos-disponibles [get]
func (h *ReservationHandler) AvailableAssets(c *fiber.Ctx) error {
	from, to, err := parseRangeQuery(c)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	assets, err := h.uc.ActivosDisponibles(c.Context(), c.Params("id"), from, to)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.AvailableAssetDTO, 0, len(assets))
	for _, a := range assets {
		out = append(out, dto.AvailableAssetDTO{
			AssetID:      a.ID,
			ProductID:    a.ProductID,
			Name:         a.Name,
			InternalCode: a.InternalCode,
			State:        a.State,
		})
	}
	return c.JSON(out)
}

func toMaterialReservationDTO(r *entity.MaterialReservation) dto.MaterialReservationDTO {
	out := dto.MaterialReservationDTO{
		ID:                r.ID,
		MaterialID:        r.MaterialID,
		Kind:              r.Kind,
		QuantityReserved:  r.QuantityReserved,
		QuantityConfirmed: r.QuantityConfirmed,
		State:             r.State,
		CreatedBy:         r.CreatedBy,
		CreatedAt:         r.CreatedAt,
		ConfirmedAt:       r.ConfirmedAt,
	}
	if r.AppointmentID != nil {
		out.AppointmentID = *r.AppointmentID
	}
	if r.TreatmentPlanID != nil {
		out.TreatmentPlanID = *r.TreatmentPlanID
	}
	return out
}

func toMaterialReservationDTOs(list []*entity.MaterialReservation) []dto.MaterialReservationDTO {
	out := make([]dto.MaterialReservationDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toMaterialReservationDTO(r))
	}
	return out
}

func toAssetReservationDTO(r *entity.AssetReservation) dto.AssetReservationDTO {
	out := dto.AssetReservationDTO{
		ID:          r.ID,
		AssetID:     r.AssetID,
		StartAt:     r.StartAt,
		EndAt:       r.EndAt,
		State:       r.State,
		CreatedBy:   r.CreatedBy,
		CreatedAt:   r.CreatedAt,
		ConfirmedAt: r.ConfirmedAt,
	}
	if r.AppointmentID != nil {
		out.AppointmentID = *r.AppointmentID
	}
	if r.TreatmentPlanID != nil {
		out.TreatmentPlanID = *r.TreatmentPlanID
	}
	return out
}

func toAssetReservationDTOs(list []*entity.AssetReservation) []dto.AssetReservationDTO {
	out := make([]dto.AssetReservationDTO, 0, len(list))
	for _, r := range list {
		out = append(out, toAssetReservationDTO(r))
	}
	return out
}
