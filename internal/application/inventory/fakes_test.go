package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/application/inventory"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
	"github.com/odontosys/inventario-api/pkg/logger"
	"github.com/odontosys/inventario-api/pkg/metrics"
)

// Fakes en memoria para el orquestador de inventario. Sin atomicidad real:
// los tests validan estados finales de los caminos felices y los rechazos
// que ocurren antes de mutar nada.

type memTxRunner struct {
	repos inventory.TxRepos
}

func (r *memTxRunner) RunInventory(_ context.Context, fn func(inventory.TxRepos) error) error {
	return fn(r.repos)
}

type memInventories struct {
	byID map[string]*entity.Inventory
}

func (m *memInventories) Create(inv *entity.Inventory) error {
	cp := *inv
	m.byID[inv.ID] = &cp
	return nil
}

func (m *memInventories) GetByID(id string) (*entity.Inventory, error) {
	inv, ok := m.byID[id]
	if !ok || inv.DeletedAt != nil {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (m *memInventories) ListByOwner(ownerID string, limit, offset int) ([]*entity.Inventory, int, error) {
	var out []*entity.Inventory
	for _, inv := range m.byID {
		if inv.OwnerID == ownerID && inv.DeletedAt == nil {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *memInventories) Update(inv *entity.Inventory) error {
	cp := *inv
	m.byID[inv.ID] = &cp
	return nil
}

// SoftDelete conserva la fila, igual que PostgreSQL: otras tablas la
// referencian por FK.
func (m *memInventories) SoftDelete(id string, at time.Time) error {
	inv, ok := m.byID[id]
	if !ok || inv.DeletedAt != nil {
		return domain.ErrNotFound
	}
	inv.DeletedAt = &at
	return nil
}

type memProducts struct {
	byID map[string]*entity.Product
}

func (m *memProducts) Create(p *entity.Product) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) Update(p *entity.Product) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProducts) Deactivate(id string) error {
	if p, ok := m.byID[id]; ok {
		p.Active = false
	}
	return nil
}

func (m *memProducts) ListByInventory(inventoryID string, onlyActive bool, limit, offset int) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range m.byID {
		if p.InventoryID != inventoryID {
			continue
		}
		if onlyActive && !p.Active {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

type memMaterials struct {
	byID map[string]*entity.Material
}

func (m *memMaterials) Create(mat *entity.Material) error {
	cp := *mat
	m.byID[mat.ID] = &cp
	return nil
}

func (m *memMaterials) GetByID(id string) (*entity.Material, error) {
	mat, ok := m.byID[id]
	if !ok || mat.DeletedAt != nil {
		return nil, nil
	}
	cp := *mat
	return &cp, nil
}

func (m *memMaterials) GetForUpdate(id string) (*entity.Material, error) {
	return m.GetByID(id)
}

func (m *memMaterials) Update(mat *entity.Material) error {
	cp := *mat
	m.byID[mat.ID] = &cp
	return nil
}

func (m *memMaterials) SoftDelete(id string, at time.Time) error {
	if mat, ok := m.byID[id]; ok {
		mat.DeletedAt = &at
	}
	return nil
}

func (m *memMaterials) ListActiveByProduct(productID string) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, mat := range m.byID {
		if mat.ProductID == productID && mat.DeletedAt == nil {
			cp := *mat
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.ExpiresAt != nil && b.ExpiresAt != nil && !a.ExpiresAt.Equal(*b.ExpiresAt):
			return a.ExpiresAt.Before(*b.ExpiresAt)
		case a.ExpiresAt != nil && b.ExpiresAt == nil:
			return true
		case a.ExpiresAt == nil && b.ExpiresAt != nil:
			return false
		}
		return a.IngestedAt.Before(b.IngestedAt)
	})
	return out, nil
}

func (m *memMaterials) ListActiveByProductForUpdate(productID string) ([]*entity.Material, error) {
	return m.ListActiveByProduct(productID)
}

func (m *memMaterials) ListExpiring(inventoryID string, before time.Time) ([]*entity.Material, error) {
	var out []*entity.Material
	for _, mat := range m.byID {
		if mat.InventoryID == inventoryID && mat.DeletedAt == nil &&
			mat.ExpiresAt != nil && !mat.ExpiresAt.After(before) && mat.QuantityOnHand.IsPositive() {
			cp := *mat
			out = append(out, &cp)
		}
	}
	return out, nil
}

type memAssets struct {
	byID map[string]*entity.Asset
}

func (m *memAssets) Create(a *entity.Asset) error {
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memAssets) GetByID(id string) (*entity.Asset, error) {
	a, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *memAssets) GetForUpdate(id string) (*entity.Asset, error) {
	return m.GetByID(id)
}

func (m *memAssets) Update(a *entity.Asset) error {
	cp := *a
	m.byID[a.ID] = &cp
	return nil
}

func (m *memAssets) ListByInventory(inventoryID string, limit, offset int) ([]*entity.Asset, int, error) {
	var out []*entity.Asset
	for _, a := range m.byID {
		if a.InventoryID == inventoryID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *memAssets) ListByInventoryAndStates(inventoryID string, states []string) ([]*entity.Asset, error) {
	allowed := map[string]bool{}
	for _, s := range states {
		allowed[s] = true
	}
	var out []*entity.Asset
	for _, a := range m.byID {
		if a.InventoryID == inventoryID && allowed[a.State] {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAssets) CountActiveByProduct(productID string) (int, error) {
	n := 0
	for _, a := range m.byID {
		if a.ProductID == productID && !entity.AssetStateTerminal(a.State) {
			n++
		}
	}
	return n, nil
}

type memKardex struct {
	entries []*entity.KardexEntry
}

func (m *memKardex) Create(e *entity.KardexEntry) error {
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memKardex) ListByProduct(productID string, _ repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	var out []*entity.KardexEntry
	for _, e := range m.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memKardex) ListByInventory(inventoryID string, _ repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	var out []*entity.KardexEntry
	for _, e := range m.entries {
		if e.InventoryID == inventoryID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memKardex) ListRange(inventoryID string, from, to time.Time) ([]*entity.KardexEntry, error) {
	var out []*entity.KardexEntry
	for _, e := range m.entries {
		if e.InventoryID == inventoryID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memBitacora struct {
	entries []*entity.BitacoraEntry
}

func (m *memBitacora) Create(e *entity.BitacoraEntry) error {
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memBitacora) ListByAsset(assetID string, _ repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	var out []*entity.BitacoraEntry
	for _, e := range m.entries {
		if e.AssetID == assetID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memBitacora) ListByInventory(inventoryID string, _ repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	var out []*entity.BitacoraEntry
	for _, e := range m.entries {
		if e.InventoryID == inventoryID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memBitacora) ListRecent(inventoryID string, limit int) ([]*entity.BitacoraEntry, error) {
	out, _, _ := m.ListByInventory(inventoryID, repository.BitacoraFilter{})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memBitacora) ListRange(inventoryID string, from, to time.Time) ([]*entity.BitacoraEntry, error) {
	var out []*entity.BitacoraEntry
	for _, e := range m.entries {
		if e.InventoryID == inventoryID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

type memAudit struct {
	entries []*entity.AuditEntry
}

func (m *memAudit) Create(e *entity.AuditEntry) error {
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memAudit) Search(inventoryID string, _ repository.AuditFilter) ([]*entity.AuditEntry, int, error) {
	var out []*entity.AuditEntry
	for _, e := range m.entries {
		if e.InventoryID == inventoryID {
			out = append(out, e)
		}
	}
	return out, len(out), nil
}

func (m *memAudit) ListRange(inventoryID string, from, to time.Time) ([]*entity.AuditEntry, error) {
	var out []*entity.AuditEntry
	for _, e := range m.entries {
		if e.InventoryID == inventoryID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

// allowAll concede todos los permisos salvo a los usuarios listados en denied.
type allowAll struct {
	denied map[string]bool
}

func (p *allowAll) CanRead(_ context.Context, userID, _ string) (bool, error) {
	return !p.denied[userID], nil
}

func (p *allowAll) CanWrite(_ context.Context, userID, _ string) (bool, error) {
	return !p.denied[userID], nil
}

func (p *allowAll) IsOwner(_ context.Context, userID, _ string) (bool, error) {
	return !p.denied[userID], nil
}

// financeRecorder acumula las llamadas best-effort a finanzas.
type financeRecorder struct {
	expenses []decimal.Decimal
	incomes  []decimal.Decimal
}

func (f *financeRecorder) RegisterExpense(_ context.Context, _, _ string, amount decimal.Decimal, _ time.Time) error {
	f.expenses = append(f.expenses, amount)
	return nil
}

func (f *financeRecorder) RegisterIncome(_ context.Context, _, _ string, amount decimal.Decimal, _ time.Time) error {
	f.incomes = append(f.incomes, amount)
	return nil
}

type fixture struct {
	uc          *inventory.UseCase
	inventories *memInventories
	products    *memProducts
	materials   *memMaterials
	assets      *memAssets
	kardex      *memKardex
	bitacora    *memBitacora
	audit       *memAudit
	permissions *allowAll
	finance     *financeRecorder
}

func newFixture() *fixture {
	f := &fixture{
		inventories: &memInventories{byID: map[string]*entity.Inventory{}},
		products:    &memProducts{byID: map[string]*entity.Product{}},
		materials:   &memMaterials{byID: map[string]*entity.Material{}},
		assets:      &memAssets{byID: map[string]*entity.Asset{}},
		kardex:      &memKardex{},
		bitacora:    &memBitacora{},
		audit:       &memAudit{},
		permissions: &allowAll{denied: map[string]bool{}},
		finance:     &financeRecorder{},
	}
	runner := &memTxRunner{repos: inventory.TxRepos{
		Inventories: f.inventories,
		Products:    f.products,
		Materials:   f.materials,
		Assets:      f.assets,
		Kardex:      f.kardex,
		Bitacora:    f.bitacora,
		Audit:       f.audit,
	}}
	f.uc = inventory.NewUseCase(
		runner, f.inventories, f.products, f.materials, f.assets,
		f.permissions, f.finance, logger.Nop(), metrics.Nop(),
	)
	return f
}

func (f *fixture) seedProduct(id, kind, subtype string) *entity.Product {
	p := &entity.Product{
		ID:          id,
		InventoryID: "inv-1",
		Name:        "producto " + id,
		Kind:        kind,
		Subtype:     subtype,
		MinStock:    decimal.NewFromInt(5),
		Unit:        "unidad",
		Active:      true,
	}
	_ = f.products.Create(p)
	return p
}

func (f *fixture) seedMaterial(id, productID, onHand string, expires *time.Time, ingested time.Time) *entity.Material {
	m := &entity.Material{
		ID:             id,
		InventoryID:    "inv-1",
		ProductID:      productID,
		ExpiresAt:      expires,
		QuantityOnHand: decimal.RequireFromString(onHand),
		UnitCost:       decimal.RequireFromString("2"),
		IngestedAt:     ingested,
	}
	_ = f.materials.Create(m)
	return m
}
