// Package collaborators provee implementaciones locales de los puertos de
// colaboradores externos (permisos, agenda) para despliegues donde los
// módulos de la clínica aún no están conectados. Cuando la agenda y el
// módulo de usuarios expongan sus APIs, estos adaptadores se reemplazan
// por clientes reales sin tocar los use cases.
package collaborators

import (
	"context"

	"github.com/odontosys/inventario-api/internal/application/ports"
	"github.com/odontosys/inventario-api/internal/domain/repository"
	"github.com/odontosys/inventario-api/pkg/logger"
)

// OwnerPermissions resuelve permisos contra el dueño del inventario: el
// dueño puede todo, cualquier otro usuario nada. Sin tabla de editores ni
// lectores; ese nivel de detalle vive en el módulo de usuarios.
type OwnerPermissions struct {
	inventories repository.InventoryRepository
}

// NewOwnerPermissions construye el adaptador de permisos por dueño.
func NewOwnerPermissions(inventories repository.InventoryRepository) *OwnerPermissions {
	return &OwnerPermissions{inventories: inventories}
}

func (p *OwnerPermissions) owns(userID, inventoryID string) (bool, error) {
	inv, err := p.inventories.GetByID(inventoryID)
	if err != nil {
		return false, err
	}
	if inv == nil {
		return false, nil
	}
	return inv.OwnerID == userID, nil
}

func (p *OwnerPermissions) CanRead(_ context.Context, userID, inventoryID string) (bool, error) {
	return p.owns(userID, inventoryID)
}

func (p *OwnerPermissions) CanWrite(_ context.Context, userID, inventoryID string) (bool, error) {
	return p.owns(userID, inventoryID)
}

func (p *OwnerPermissions) IsOwner(_ context.Context, userID, inventoryID string) (bool, error) {
	return p.owns(userID, inventoryID)
}

// OpenAgenda agenda permisiva: asume que toda cita referida existe y registra
// la confirmación de materiales solo en el log. Útil mientras el módulo de
// citas no expone verificación.
type OpenAgenda struct {
	log *logger.Logger
}

// NewOpenAgenda construye el adaptador permisivo de agenda.
func NewOpenAgenda(log *logger.Logger) *OpenAgenda {
	return &OpenAgenda{log: log}
}

func (a *OpenAgenda) Exists(_ context.Context, appointmentID string) (bool, error) {
	return appointmentID != "", nil
}

func (a *OpenAgenda) MarkMaterialsConfirmed(_ context.Context, appointmentID string) error {
	a.log.Info().Str("appointment_id", appointmentID).Msg("materiales de cita confirmados")
	return nil
}

var (
	_ ports.PermissionService  = (*OwnerPermissions)(nil)
	_ ports.AppointmentService = (*OpenAgenda)(nil)
)
