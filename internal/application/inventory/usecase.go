// Package inventory implementa el orquestador de inventario: CRUD de
// inventarios y productos (con chequeo de permisos externo) y las
// operaciones que mutan stock — entradas, salidas, ajustes y ventas —
// componiendo catálogo, kardex, bitácora y auditoría.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/application/auditoria"
	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/application/ports"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
	"github.com/odontosys/inventario-api/pkg/logger"
	"github.com/odontosys/inventario-api/pkg/metrics"
)

// Actor identidad y contexto de red del usuario que ejecuta la operación,
// para firmar kardex y auditoría.
type Actor struct {
	UserID    string
	IP        string
	UserAgent string
}

// UseCase orquestador de inventario.
type UseCase struct {
	txRunner     TxRunner
	invRepo      repository.InventoryRepository
	productRepo  repository.ProductRepository
	materialRepo repository.MaterialRepository
	assetRepo    repository.AssetRepository
	permissions  ports.PermissionService
	finance      ports.FinanceService
	log          *logger.Logger
	metrics      *metrics.Metrics
}

// NewUseCase construye el orquestador. finance puede ser nil (sin módulo de
// finanzas conectado).
func NewUseCase(
	txRunner TxRunner,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
	materialRepo repository.MaterialRepository,
	assetRepo repository.AssetRepository,
	permissions ports.PermissionService,
	finance ports.FinanceService,
	log *logger.Logger,
	m *metrics.Metrics,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		invRepo:      invRepo,
		productRepo:  productRepo,
		materialRepo: materialRepo,
		assetRepo:    assetRepo,
		permissions:  permissions,
		finance:      finance,
		log:          log,
		metrics:      m,
	}
}

func (uc *UseCase) requireRead(ctx context.Context, userID, inventoryID string) error {
	ok, err := uc.permissions.CanRead(ctx, userID, inventoryID)
	if err != nil {
		return fmt.Errorf("verificar permiso de lectura: %w", err)
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *UseCase) requireWrite(ctx context.Context, userID, inventoryID string) error {
	ok, err := uc.permissions.CanWrite(ctx, userID, inventoryID)
	if err != nil {
		return fmt.Errorf("verificar permiso de escritura: %w", err)
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

func (uc *UseCase) requireOwner(ctx context.Context, userID, inventoryID string) error {
	ok, err := uc.permissions.IsOwner(ctx, userID, inventoryID)
	if err != nil {
		return fmt.Errorf("verificar propiedad: %w", err)
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// ── Inventarios ──────────────────────────────────────────────────────────────

// CrearInventario crea un inventario propiedad del actor, con su fila de auditoría.
func (uc *UseCase) CrearInventario(ctx context.Context, actor Actor, in dto.CreateInventoryRequest) (*entity.Inventory, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	inv := &entity.Inventory{
		ID:          uuid.New().String(),
		OwnerID:     actor.UserID,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		if err := r.Inventories.Create(inv); err != nil {
			return err
		}
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: inv.ID,
			Action:      entity.AuditActionInventoryCreated,
			After:       inv,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ObtenerInventario devuelve un inventario si el actor puede leerlo.
func (uc *UseCase) ObtenerInventario(ctx context.Context, actor Actor, inventoryID string) (*entity.Inventory, error) {
	if err := uc.requireRead(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	inv, err := uc.invRepo.GetByID(inventoryID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// ListarInventarios lista los inventarios del actor.
func (uc *UseCase) ListarInventarios(ctx context.Context, actor Actor, limit, offset int) ([]*entity.Inventory, int, error) {
	return uc.invRepo.ListByOwner(actor.UserID, limit, offset)
}

// ActualizarInventario actualiza nombre y descripción, con auditoría antes/después.
func (uc *UseCase) ActualizarInventario(ctx context.Context, actor Actor, inventoryID string, in dto.UpdateInventoryRequest) (*entity.Inventory, error) {
	if err := uc.requireWrite(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	var updated *entity.Inventory
	now := time.Now()
	err := uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		inv, err := r.Inventories.GetByID(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		before := *inv
		inv.Name = in.Name
		inv.Description = in.Description
		inv.UpdatedAt = now
		if err := r.Inventories.Update(inv); err != nil {
			return err
		}
		updated = inv
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: inv.ID,
			Action:      entity.AuditActionInventoryUpdated,
			Before:      before,
			After:       inv,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// EliminarInventario borra un inventario (solo el dueño). El borrado es
// lógico: la fila sigue existiendo porque kardex, bitácora y auditoría la
// referencian por FK, pero deja de aparecer en lecturas.
func (uc *UseCase) EliminarInventario(ctx context.Context, actor Actor, inventoryID string) error {
	if err := uc.requireOwner(ctx, actor.UserID, inventoryID); err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		inv, err := r.Inventories.GetByID(inventoryID)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := uc.audit(r, auditoria.RecordInput{
			InventoryID: inv.ID,
			Action:      entity.AuditActionInventoryDeleted,
			Before:      inv,
			Motive:      "eliminación de inventario",
		}, actor, now); err != nil {
			return err
		}
		return r.Inventories.SoftDelete(inventoryID, now)
	})
}

// ── Productos ────────────────────────────────────────────────────────────────

// CrearProducto da de alta la definición de un producto en el inventario.
func (uc *UseCase) CrearProducto(ctx context.Context, actor Actor, inventoryID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if err := uc.requireWrite(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	if in.Name == "" || in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	p := &entity.Product{
		ID:          uuid.New().String(),
		InventoryID: inventoryID,
		Name:        in.Name,
		Kind:        in.Kind,
		Subtype:     in.Subtype,
		MinStock:    in.MinStock,
		Unit:        in.Unit,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !p.ValidSubtype() {
		return nil, domain.ErrInvalidInput
	}
	err := uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		if err := r.Products.Create(p); err != nil {
			return err
		}
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: inventoryID,
			Action:      entity.AuditActionProductCreated,
			ProductID:   &p.ID,
			After:       p,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ObtenerProducto devuelve un producto si el actor puede leer su inventario.
func (uc *UseCase) ObtenerProducto(ctx context.Context, actor Actor, productID string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.requireRead(ctx, actor.UserID, p.InventoryID); err != nil {
		return nil, err
	}
	return p, nil
}

// ListarProductos lista los productos de un inventario.
func (uc *UseCase) ListarProductos(ctx context.Context, actor Actor, inventoryID string, onlyActive bool, limit, offset int) ([]*entity.Product, int, error) {
	if err := uc.requireRead(ctx, actor.UserID, inventoryID); err != nil {
		return nil, 0, err
	}
	return uc.productRepo.ListByInventory(inventoryID, onlyActive, limit, offset)
}

// ActualizarProducto actualiza la definición, con auditoría antes/después.
func (uc *UseCase) ActualizarProducto(ctx context.Context, actor Actor, productID string, in dto.UpdateProductRequest) (*entity.Product, error) {
	var updated *entity.Product
	now := time.Now()
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.requireWrite(ctx, actor.UserID, p.InventoryID); err != nil {
		return nil, err
	}
	err = uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		p, err := r.Products.GetByID(productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		before := *p
		if in.Name != "" {
			p.Name = in.Name
		}
		if !in.MinStock.IsNegative() {
			p.MinStock = in.MinStock
		}
		if in.Unit != "" {
			p.Unit = in.Unit
		}
		if in.Active != nil {
			p.Active = *in.Active
		}
		p.UpdatedAt = now
		if err := r.Products.Update(p); err != nil {
			return err
		}
		updated = p
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: p.InventoryID,
			Action:      entity.AuditActionProductUpdated,
			ProductID:   &p.ID,
			Before:      before,
			After:       p,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// EliminarProducto desactiva un producto (solo el dueño del inventario).
// Nunca se borra físicamente: el kardex lo referencia.
func (uc *UseCase) EliminarProducto(ctx context.Context, actor Actor, productID string, motive string) error {
	p, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	if err := uc.requireOwner(ctx, actor.UserID, p.InventoryID); err != nil {
		return err
	}
	now := time.Now()
	return uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		if err := uc.audit(r, auditoria.RecordInput{
			InventoryID: p.InventoryID,
			Action:      entity.AuditActionProductDeleted,
			ProductID:   &p.ID,
			Before:      p,
			Motive:      motive,
		}, actor, now); err != nil {
			return err
		}
		return r.Products.Deactivate(productID)
	})
}

// ── Consultas de stock ──────────────────────────────────────────────────────

// NivelesDeStock devuelve el stock agregado por producto del inventario.
func (uc *UseCase) NivelesDeStock(ctx context.Context, actor Actor, inventoryID string) ([]dto.StockLevelDTO, error) {
	if err := uc.requireRead(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	products, _, err := uc.productRepo.ListByInventory(inventoryID, true, 0, 0)
	if err != nil {
		return nil, err
	}
	var out []dto.StockLevelDTO
	for _, p := range products {
		if p.Kind != entity.ProductKindMaterial {
			continue
		}
		onHand, reserved, err := uc.sumStock(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.StockLevelDTO{
			ProductID:   p.ID,
			ProductName: p.Name,
			Unit:        p.Unit,
			OnHand:      onHand,
			Reserved:    reserved,
			Available:   onHand.Sub(reserved),
			MinStock:    p.MinStock,
		})
	}
	return out, nil
}

// ProductosBajoStock devuelve los productos cuyo stock en mano agregado está
// por debajo de su umbral mínimo.
func (uc *UseCase) ProductosBajoStock(ctx context.Context, actor Actor, inventoryID string) ([]dto.StockLevelDTO, error) {
	levels, err := uc.NivelesDeStock(ctx, actor, inventoryID)
	if err != nil {
		return nil, err
	}
	var low []dto.StockLevelDTO
	for _, l := range levels {
		if l.OnHand.LessThan(l.MinStock) {
			low = append(low, l)
		}
	}
	return low, nil
}

// MaterialesPorVencer lista materiales con vencimiento dentro de los
// próximos days días y stock en mano positivo.
func (uc *UseCase) MaterialesPorVencer(ctx context.Context, actor Actor, inventoryID string, days int) ([]dto.ExpiringMaterialDTO, error) {
	if err := uc.requireRead(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}
	mats, err := uc.materialRepo.ListExpiring(inventoryID, time.Now().AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpiringMaterialDTO, 0, len(mats))
	for _, m := range mats {
		d := dto.ExpiringMaterialDTO{
			MaterialID: m.ID,
			ProductID:  m.ProductID,
			Lot:        m.Lot,
			Serial:     m.Serial,
			OnHand:     m.QuantityOnHand,
		}
		if m.ExpiresAt != nil {
			d.ExpiresAt = *m.ExpiresAt
		}
		out = append(out, d)
	}
	return out, nil
}

func (uc *UseCase) sumStock(productID string) (onHand, reserved decimal.Decimal, err error) {
	mats, err := uc.materialRepo.ListActiveByProduct(productID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	onHand, reserved = decimal.Zero, decimal.Zero
	for _, m := range mats {
		onHand = onHand.Add(m.QuantityOnHand)
		reserved = reserved.Add(m.QuantityReserved)
	}
	return onHand, reserved, nil
}

// audit construye y persiste la fila de auditoría dentro de la transacción.
func (uc *UseCase) audit(r TxRepos, in auditoria.RecordInput, actor Actor, now time.Time) error {
	in.CreatedBy = actor.UserID
	in.IP = actor.IP
	in.UserAgent = actor.UserAgent
	in.At = now
	entry, err := auditoria.NewEntry(in)
	if err != nil {
		return err
	}
	return r.Audit.Create(entry)
}
