package reservation_test

import (
	"context"
	"sort"
	"time"

	"github.com/odontosys/inventario-api/internal/application/reservation"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
	"github.com/odontosys/inventario-api/pkg/logger"
	"github.com/odontosys/inventario-api/pkg/metrics"
)

// Fakes en memoria para ejercitar el motor de reservas sin PostgreSQL.
// El TxRunner falso no aporta atomicidad: cada test valida estados finales,
// no caminos de rollback.

type memTxRunner struct {
	repos reservation.TxRepos
}

func (r *memTxRunner) RunReservation(_ context.Context, fn func(reservation.TxRepos) error) error {
	return fn(r.repos)
}

// ── Materiales ───────────────────────────────────────────────────────────────

type memMaterials struct {
	byID map[string]*entity.Material
}

func newMemMaterials() *memMaterials {
	return &memMaterials{byID: map[string]*entity.Material{}}
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
	sortFIFO(out)
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

func sortFIFO(mats []*entity.Material) {
	sort.SliceStable(mats, func(i, j int) bool {
		a, b := mats[i], mats[j]
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
}

// ── Reservas de material ─────────────────────────────────────────────────────

type memMaterialReservations struct {
	byID map[string]*entity.MaterialReservation
}

func newMemMaterialReservations() *memMaterialReservations {
	return &memMaterialReservations{byID: map[string]*entity.MaterialReservation{}}
}

func (m *memMaterialReservations) Create(r *entity.MaterialReservation) error {
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *memMaterialReservations) GetByID(id string) (*entity.MaterialReservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memMaterialReservations) GetForUpdate(id string) (*entity.MaterialReservation, error) {
	return m.GetByID(id)
}

func (m *memMaterialReservations) Update(r *entity.MaterialReservation) error {
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *memMaterialReservations) list(keep func(*entity.MaterialReservation) bool) []*entity.MaterialReservation {
	var out []*entity.MaterialReservation
	for _, r := range m.byID {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memMaterialReservations) ListByAppointment(appointmentID string) ([]*entity.MaterialReservation, error) {
	return m.list(func(r *entity.MaterialReservation) bool {
		return r.AppointmentID != nil && *r.AppointmentID == appointmentID
	}), nil
}

func (m *memMaterialReservations) ListPendingByAppointment(appointmentID string) ([]*entity.MaterialReservation, error) {
	return m.list(func(r *entity.MaterialReservation) bool {
		return r.AppointmentID != nil && *r.AppointmentID == appointmentID &&
			r.State == entity.ReservationStatePending
	}), nil
}

func (m *memMaterialReservations) ListByTreatmentPlan(treatmentPlanID string) ([]*entity.MaterialReservation, error) {
	return m.list(func(r *entity.MaterialReservation) bool {
		return r.TreatmentPlanID != nil && *r.TreatmentPlanID == treatmentPlanID
	}), nil
}

// ── Activos ──────────────────────────────────────────────────────────────────

type memAssets struct {
	byID map[string]*entity.Asset
}

func newMemAssets() *memAssets {
	return &memAssets{byID: map[string]*entity.Asset{}}
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
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
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

// ── Reservas de activo ───────────────────────────────────────────────────────

type memAssetReservations struct {
	byID map[string]*entity.AssetReservation
}

func newMemAssetReservations() *memAssetReservations {
	return &memAssetReservations{byID: map[string]*entity.AssetReservation{}}
}

func (m *memAssetReservations) Create(r *entity.AssetReservation) error {
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *memAssetReservations) GetByID(id string) (*entity.AssetReservation, error) {
	r, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (m *memAssetReservations) GetForUpdate(id string) (*entity.AssetReservation, error) {
	return m.GetByID(id)
}

func (m *memAssetReservations) Update(r *entity.AssetReservation) error {
	cp := *r
	m.byID[r.ID] = &cp
	return nil
}

func (m *memAssetReservations) list(keep func(*entity.AssetReservation) bool) []*entity.AssetReservation {
	var out []*entity.AssetReservation
	for _, r := range m.byID {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return out
}

func (m *memAssetReservations) ListActiveByAsset(assetID string) ([]*entity.AssetReservation, error) {
	return m.list(func(r *entity.AssetReservation) bool {
		return r.AssetID == assetID && r.Active()
	}), nil
}

func (m *memAssetReservations) ListByAppointment(appointmentID string) ([]*entity.AssetReservation, error) {
	return m.list(func(r *entity.AssetReservation) bool {
		return r.AppointmentID != nil && *r.AppointmentID == appointmentID
	}), nil
}

func (m *memAssetReservations) ListPendingByAppointment(appointmentID string) ([]*entity.AssetReservation, error) {
	return m.list(func(r *entity.AssetReservation) bool {
		return r.AppointmentID != nil && *r.AppointmentID == appointmentID &&
			r.State == entity.ReservationStatePending
	}), nil
}

func (m *memAssetReservations) ListPendingStartingBetween(from, to time.Time) ([]*entity.AssetReservation, error) {
	return m.list(func(r *entity.AssetReservation) bool {
		return r.State == entity.ReservationStatePending &&
			!r.StartAt.Before(from) && !r.StartAt.After(to)
	}), nil
}

func (m *memAssetReservations) ListConfirmedEndingBetween(from, to time.Time) ([]*entity.AssetReservation, error) {
	return m.list(func(r *entity.AssetReservation) bool {
		return r.State == entity.ReservationStateConfirmed &&
			!r.EndAt.Before(from) && !r.EndAt.After(to)
	}), nil
}

func (m *memAssetReservations) CountConfirmedEndingAfter(assetID string, t time.Time, excludeID string) (int, error) {
	n := 0
	for _, r := range m.byID {
		if r.AssetID == assetID && r.ID != excludeID &&
			r.State == entity.ReservationStateConfirmed && r.EndAt.After(t) {
			n++
		}
	}
	return n, nil
}

// ── Kardex y bitácora ────────────────────────────────────────────────────────

type memKardex struct {
	entries []*entity.KardexEntry
}

func (m *memKardex) Create(e *entity.KardexEntry) error {
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memKardex) listWhere(keep func(*entity.KardexEntry) bool) []*entity.KardexEntry {
	var out []*entity.KardexEntry
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (m *memKardex) ListByProduct(productID string, _ repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	out := m.listWhere(func(e *entity.KardexEntry) bool { return e.ProductID == productID })
	return out, len(out), nil
}

func (m *memKardex) ListByInventory(inventoryID string, _ repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	out := m.listWhere(func(e *entity.KardexEntry) bool { return e.InventoryID == inventoryID })
	return out, len(out), nil
}

func (m *memKardex) ListRange(inventoryID string, from, to time.Time) ([]*entity.KardexEntry, error) {
	return m.listWhere(func(e *entity.KardexEntry) bool {
		return e.InventoryID == inventoryID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to)
	}), nil
}

type memBitacora struct {
	entries []*entity.BitacoraEntry
}

func (m *memBitacora) Create(e *entity.BitacoraEntry) error {
	cp := *e
	m.entries = append(m.entries, &cp)
	return nil
}

func (m *memBitacora) listWhere(keep func(*entity.BitacoraEntry) bool) []*entity.BitacoraEntry {
	var out []*entity.BitacoraEntry
	for _, e := range m.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

func (m *memBitacora) ListByAsset(assetID string, _ repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	out := m.listWhere(func(e *entity.BitacoraEntry) bool { return e.AssetID == assetID })
	return out, len(out), nil
}

func (m *memBitacora) ListByInventory(inventoryID string, _ repository.BitacoraFilter) ([]*entity.BitacoraEntry, int, error) {
	out := m.listWhere(func(e *entity.BitacoraEntry) bool { return e.InventoryID == inventoryID })
	return out, len(out), nil
}

func (m *memBitacora) ListRecent(inventoryID string, limit int) ([]*entity.BitacoraEntry, error) {
	out := m.listWhere(func(e *entity.BitacoraEntry) bool { return e.InventoryID == inventoryID })
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memBitacora) ListRange(inventoryID string, from, to time.Time) ([]*entity.BitacoraEntry, error) {
	return m.listWhere(func(e *entity.BitacoraEntry) bool {
		return e.InventoryID == inventoryID && !e.CreatedAt.Before(from) && !e.CreatedAt.After(to)
	}), nil
}

// ── Agenda ───────────────────────────────────────────────────────────────────

type memAgenda struct {
	existing  map[string]bool
	confirmed []string
	failMark  error
}

func newMemAgenda(appointmentIDs ...string) *memAgenda {
	a := &memAgenda{existing: map[string]bool{}}
	for _, id := range appointmentIDs {
		a.existing[id] = true
	}
	return a
}

func (a *memAgenda) Exists(_ context.Context, appointmentID string) (bool, error) {
	return a.existing[appointmentID], nil
}

func (a *memAgenda) MarkMaterialsConfirmed(_ context.Context, appointmentID string) error {
	if a.failMark != nil {
		return a.failMark
	}
	a.confirmed = append(a.confirmed, appointmentID)
	return nil
}

// ── Armado del use case ──────────────────────────────────────────────────────

type fixture struct {
	uc        *reservation.UseCase
	materials *memMaterials
	matRes    *memMaterialReservations
	assets    *memAssets
	assetRes  *memAssetReservations
	kardex    *memKardex
	bitacora  *memBitacora
	agenda    *memAgenda
}

func newFixture() *fixture {
	f := &fixture{
		materials: newMemMaterials(),
		matRes:    newMemMaterialReservations(),
		assets:    newMemAssets(),
		assetRes:  newMemAssetReservations(),
		kardex:    &memKardex{},
		bitacora:  &memBitacora{},
		agenda:    newMemAgenda("cita-1", "cita-2"),
	}
	runner := &memTxRunner{repos: reservation.TxRepos{
		Materials:            f.materials,
		MaterialReservations: f.matRes,
		Assets:               f.assets,
		AssetReservations:    f.assetRes,
		Kardex:               f.kardex,
		Bitacora:             f.bitacora,
	}}
	f.uc = reservation.NewUseCase(
		runner, f.materials, f.matRes, f.assets, f.assetRes,
		f.agenda, logger.Nop(), metrics.Nop(),
	)
	return f
}
