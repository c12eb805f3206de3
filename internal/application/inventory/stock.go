package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/odontosys/inventario-api/internal/application/auditoria"
	"github.com/odontosys/inventario-api/internal/application/bitacora"
	"github.com/odontosys/inventario-api/internal/application/dto"
	"github.com/odontosys/inventario-api/internal/application/kardex"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/stock"
)

// ── Entradas ────────────────────────────────────────────────────────────────

// RegistrarEntradaMaterial da de alta un lote/serie/granel de un producto
// consumible. En una sola transacción crea la fila de material, la fila del
// kardex con la foto antes/después del stock total del producto y la fila de
// auditoría. El gasto en finanzas se registra tras el commit, best-effort.
func (uc *UseCase) RegistrarEntradaMaterial(ctx context.Context, actor Actor, inventoryID string, in dto.MaterialInflowRequest) (*entity.Material, error) {
	if err := uc.requireWrite(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() || in.UnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	// ADJUSTMENT no es una entrada manual: va por AjustarStock.
	if !entity.InflowMovementType(in.MovementType) || in.MovementType == entity.MovementTypeAdjustment {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var created *entity.Material
	var product *entity.Product
	err := uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		p, err := uc.materialProduct(r, inventoryID, in.ProductID)
		if err != nil {
			return err
		}
		product = p
		switch p.Subtype {
		case entity.MaterialSubtypeLot:
			if in.Lot == "" {
				return fmt.Errorf("producto con lote exige número de lote: %w", domain.ErrInvalidInput)
			}
		case entity.MaterialSubtypeSerial:
			if in.Serial == "" {
				return fmt.Errorf("producto serializado exige número de serie: %w", domain.ErrInvalidInput)
			}
			if !in.Quantity.Equal(decimal.NewFromInt(1)) {
				return fmt.Errorf("una serie es una sola unidad: %w", domain.ErrInvalidInput)
			}
		}

		lots, err := r.Materials.ListActiveByProductForUpdate(p.ID)
		if err != nil {
			return err
		}
		stockBefore, _ := sumLots(lots)

		m := &entity.Material{
			ID:             uuid.New().String(),
			InventoryID:    inventoryID,
			ProductID:      p.ID,
			Lot:            in.Lot,
			Serial:         in.Serial,
			ExpiresAt:      in.ExpiresAt,
			QuantityOnHand: in.Quantity,
			UnitCost:       in.UnitCost,
			IngestedAt:     now,
		}
		if err := r.Materials.Create(m); err != nil {
			return err
		}
		created = m

		amount := inflowAmount(in.Amount, in.Quantity, in.UnitCost)
		entry, err := kardex.NewEntrada(kardex.EntryInput{
			InventoryID:  inventoryID,
			ProductID:    p.ID,
			MaterialID:   &m.ID,
			MovementType: in.MovementType,
			Quantity:     in.Quantity,
			StockBefore:  stockBefore,
			StockAfter:   stockBefore.Add(in.Quantity),
			Amount:       &amount,
			UnitCost:     &in.UnitCost,
			Observations: in.Observations,
			CreatedBy:    actor.UserID,
			At:           now,
		})
		if err != nil {
			return err
		}
		if err := r.Kardex.Create(entry); err != nil {
			return err
		}
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: inventoryID,
			Action:      entity.AuditActionMaterialCreated,
			ProductID:   &p.ID,
			MaterialID:  &m.ID,
			After:       m,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovements.WithLabelValues(in.MovementType, entity.DirectionIn).Inc()
	uc.registerExpense(ctx, inventoryID, fmt.Sprintf("entrada de %s", product.Name),
		inflowAmount(in.Amount, in.Quantity, in.UnitCost), now)
	return created, nil
}

// RegistrarEntradaActivo da de alta una unidad de activo fijo. La unidad nace
// AVAILABLE; su "stock" para el kardex es el conteo de unidades no terminales
// del producto.
func (uc *UseCase) RegistrarEntradaActivo(ctx context.Context, actor Actor, inventoryID string, in dto.AssetInflowRequest) (*entity.Asset, error) {
	if err := uc.requireWrite(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	if in.Cost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if !entity.InflowMovementType(in.MovementType) || in.MovementType == entity.MovementTypeAdjustment {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var created *entity.Asset
	var product *entity.Product
	err := uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		p, err := uc.assetProduct(r, inventoryID, in.ProductID)
		if err != nil {
			return err
		}
		product = p

		count, err := r.Assets.CountActiveByProduct(p.ID)
		if err != nil {
			return err
		}
		stockBefore := decimal.NewFromInt(int64(count))

		name := in.Name
		if name == "" {
			name = p.Name
		}
		a := &entity.Asset{
			ID:           uuid.New().String(),
			InventoryID:  inventoryID,
			ProductID:    p.ID,
			InternalCode: in.InternalCode,
			Serial:       in.Serial,
			Name:         name,
			Location:     in.Location,
			PurchaseCost: in.Cost,
			PurchasedAt:  in.PurchasedAt,
			State:        entity.AssetStateAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := r.Assets.Create(a); err != nil {
			return err
		}
		created = a

		one := decimal.NewFromInt(1)
		entry, err := kardex.NewEntrada(kardex.EntryInput{
			InventoryID:  inventoryID,
			ProductID:    p.ID,
			MovementType: in.MovementType,
			Quantity:     one,
			StockBefore:  stockBefore,
			StockAfter:   stockBefore.Add(one),
			Amount:       &in.Cost,
			UnitCost:     &in.Cost,
			Observations: in.Observations,
			CreatedBy:    actor.UserID,
			At:           now,
		})
		if err != nil {
			return err
		}
		if err := r.Kardex.Create(entry); err != nil {
			return err
		}
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: inventoryID,
			Action:      entity.AuditActionAssetCreated,
			ProductID:   &p.ID,
			AssetID:     &a.ID,
			After:       a,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovements.WithLabelValues(in.MovementType, entity.DirectionIn).Inc()
	uc.registerExpense(ctx, inventoryID, fmt.Sprintf("compra de activo %s", product.Name), in.Cost, now)
	return created, nil
}

// ── Salidas ─────────────────────────────────────────────────────────────────

// RegistrarSalidaMaterial consume stock de un producto. Sin MaterialID la
// cantidad se reparte entre los lotes en orden FIFO (vencimiento primero);
// con MaterialID se descuenta solo de esa fila. Todo o nada: si el disponible
// no alcanza no se consume nada y se devuelve ErrInsufficientStock. Produce
// una sola fila del kardex con el total.
func (uc *UseCase) RegistrarSalidaMaterial(ctx context.Context, actor Actor, inventoryID string, in dto.MaterialOutflowRequest) (*entity.KardexEntry, error) {
	if err := uc.requireWrite(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if !manualOutflow(in.MovementType) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var written *entity.KardexEntry
	err := uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		p, err := uc.materialProduct(r, inventoryID, in.ProductID)
		if err != nil {
			return err
		}
		lots, err := r.Materials.ListActiveByProductForUpdate(p.ID)
		if err != nil {
			return err
		}
		stockBefore, _ := sumLots(lots)

		scope := lots
		if in.MaterialID != "" {
			scope = nil
			for _, m := range lots {
				if m.ID == in.MaterialID {
					scope = []*entity.Material{m}
					break
				}
			}
			if scope == nil {
				return fmt.Errorf("material %s: %w", in.MaterialID, domain.ErrNotFound)
			}
		}
		draws, err := stock.PlanDepletion(lotViews(scope), in.Quantity)
		if err != nil {
			return fmt.Errorf("salida de %s: %w", p.Name, err)
		}
		if err := applyDraws(r, scope, draws); err != nil {
			return err
		}

		var materialID *string
		if in.MaterialID != "" {
			materialID = &in.MaterialID
		}
		entry, err := kardex.NewSalida(kardex.EntryInput{
			InventoryID:  inventoryID,
			ProductID:    p.ID,
			MaterialID:   materialID,
			MovementType: in.MovementType,
			Quantity:     in.Quantity,
			StockBefore:  stockBefore,
			StockAfter:   stockBefore.Sub(in.Quantity),
			Observations: in.Observations,
			CreatedBy:    actor.UserID,
			At:           now,
		})
		if err != nil {
			return err
		}
		if err := r.Kardex.Create(entry); err != nil {
			return err
		}
		written = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovements.WithLabelValues(in.MovementType, entity.DirectionOut).Inc()
	return written, nil
}

// ── Ajustes ─────────────────────────────────────────────────────────────────

// AjustarStock corrige el stock de un producto a raíz de un conteo físico.
// El motivo es obligatorio. INCREMENT suma al lote más reciente; DECREMENT y
// SET hacia abajo consumen en orden FIFO sin tocar lo reservado: el objetivo
// se recorta al total reservado si haría falta romper una reserva vigente.
// Un ajuste sin delta efectivo no escribe fila del kardex.
func (uc *UseCase) AjustarStock(ctx context.Context, actor Actor, inventoryID string, in dto.AdjustStockRequest) (*entity.KardexEntry, error) {
	if err := uc.requireWrite(ctx, actor.UserID, inventoryID); err != nil {
		return nil, err
	}
	if in.Motive == "" {
		return nil, fmt.Errorf("un ajuste de stock exige motivo: %w", domain.ErrInvalidInput)
	}
	switch in.Mode {
	case dto.AdjustModeIncrement, dto.AdjustModeDecrement:
		if !in.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	case dto.AdjustModeSet:
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var written *entity.KardexEntry
	err := uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		p, err := uc.materialProduct(r, inventoryID, in.ProductID)
		if err != nil {
			return err
		}
		lots, err := r.Materials.ListActiveByProductForUpdate(p.ID)
		if err != nil {
			return err
		}
		scope := lots
		if in.MaterialID != "" {
			scope = nil
			for _, m := range lots {
				if m.ID == in.MaterialID {
					scope = []*entity.Material{m}
					break
				}
			}
			if scope == nil {
				return fmt.Errorf("material %s: %w", in.MaterialID, domain.ErrNotFound)
			}
		}
		onHand, reserved := sumLots(scope)

		var target decimal.Decimal
		switch in.Mode {
		case dto.AdjustModeIncrement:
			target = onHand.Add(in.Quantity)
		case dto.AdjustModeDecrement:
			target = onHand.Sub(in.Quantity)
		case dto.AdjustModeSet:
			target = in.Quantity
		}
		// Lo reservado es intocable: el piso del ajuste es el total con
		// reserva vigente (con reservado cero, el piso es cero).
		if target.LessThan(reserved) {
			target = reserved
		}
		delta := target.Sub(onHand)
		if delta.IsZero() {
			return nil
		}

		if delta.IsPositive() {
			if len(scope) == 0 {
				return fmt.Errorf("producto sin lotes que ajustar, registre una entrada: %w", domain.ErrInvalidInput)
			}
			newest := scope[0]
			for _, m := range scope[1:] {
				if m.IngestedAt.After(newest.IngestedAt) {
					newest = m
				}
			}
			newest.QuantityOnHand = newest.QuantityOnHand.Add(delta)
			if err := r.Materials.Update(newest); err != nil {
				return err
			}
		} else {
			draws, err := stock.PlanDepletion(lotViews(scope), delta.Neg())
			if err != nil {
				return err
			}
			if err := applyDraws(r, scope, draws); err != nil {
				return err
			}
		}

		var materialID *string
		if in.MaterialID != "" {
			materialID = &in.MaterialID
		}
		input := kardex.EntryInput{
			InventoryID:  inventoryID,
			ProductID:    p.ID,
			MaterialID:   materialID,
			MovementType: entity.MovementTypeAdjustment,
			Quantity:     delta.Abs(),
			StockBefore:  onHand,
			StockAfter:   target,
			Observations: in.Motive,
			CreatedBy:    actor.UserID,
			At:           now,
		}
		var entry *entity.KardexEntry
		if delta.IsPositive() {
			entry, err = kardex.NewEntrada(input)
		} else {
			entry, err = kardex.NewSalida(input)
		}
		if err != nil {
			return err
		}
		if err := r.Kardex.Create(entry); err != nil {
			return err
		}
		written = entry

		return uc.audit(r, auditoria.RecordInput{
			InventoryID: inventoryID,
			Action:      entity.AuditActionStockAdjusted,
			ProductID:   &p.ID,
			MaterialID:  materialID,
			Before:      map[string]decimal.Decimal{"stock": onHand},
			After:       map[string]decimal.Decimal{"stock": target},
			Motive:      in.Motive,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	if written != nil {
		uc.metrics.StockMovements.WithLabelValues(entity.MovementTypeAdjustment, written.Direction).Inc()
	}
	return written, nil
}

// ── Activos: venta y cambio de estado ───────────────────────────────────────

// VenderActivo pasa el activo a SOLD (terminal), dejando bitácora, fila SALE
// en el kardex, auditoría y, si hay precio, un ingreso best-effort en
// finanzas. Un activo ya terminal no puede venderse.
func (uc *UseCase) VenderActivo(ctx context.Context, actor Actor, assetID string, in dto.SellAssetRequest) (*entity.Asset, error) {
	seed, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.requireWrite(ctx, actor.UserID, seed.InventoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	var sold *entity.Asset
	err = uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		a, err := r.Assets.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if entity.AssetStateTerminal(a.State) {
			return fmt.Errorf("el activo %s ya está en estado terminal %s: %w", a.Name, a.State, domain.ErrInvalidInput)
		}
		before := *a

		count, err := r.Assets.CountActiveByProduct(a.ProductID)
		if err != nil {
			return err
		}
		stockBefore := decimal.NewFromInt(int64(count))

		log, err := bitacora.NewEntry(bitacora.EntryInput{
			InventoryID: a.InventoryID,
			AssetID:     a.ID,
			StateBefore: a.State,
			StateAfter:  entity.AssetStateSold,
			Motive:      in.Observations,
			CreatedBy:   actor.UserID,
			At:          now,
		})
		if err != nil {
			return err
		}
		if err := r.Bitacora.Create(log); err != nil {
			return err
		}

		a.State = entity.AssetStateSold
		a.UpdatedAt = now
		if err := r.Assets.Update(a); err != nil {
			return err
		}
		sold = a

		one := decimal.NewFromInt(1)
		entry, err := kardex.NewSalida(kardex.EntryInput{
			InventoryID:  a.InventoryID,
			ProductID:    a.ProductID,
			MovementType: entity.MovementTypeSale,
			Quantity:     one,
			StockBefore:  stockBefore,
			StockAfter:   stockBefore.Sub(one),
			Amount:       in.SalePrice,
			Observations: in.Observations,
			CreatedBy:    actor.UserID,
			At:           now,
		})
		if err != nil {
			return err
		}
		if err := r.Kardex.Create(entry); err != nil {
			return err
		}
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: a.InventoryID,
			Action:      entity.AuditActionAssetSold,
			ProductID:   &a.ProductID,
			AssetID:     &a.ID,
			Before:      before,
			After:       a,
			Motive:      in.Observations,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.StockMovements.WithLabelValues(entity.MovementTypeSale, entity.DirectionOut).Inc()
	if in.SalePrice != nil && in.SalePrice.IsPositive() {
		uc.registerIncome(ctx, sold.InventoryID, fmt.Sprintf("venta de activo %s", sold.Name), *in.SalePrice, now)
	}
	return sold, nil
}

// CambiarEstadoActivo aplica una transición manual de estado con su fila de
// bitácora. Mismo estado es no-op. Un estado terminal no admite transiciones;
// la venta tiene su propia operación. Descartar (DISCARDED) además escribe la
// salida DISCARD en el kardex porque reduce el conteo de unidades.
func (uc *UseCase) CambiarEstadoActivo(ctx context.Context, actor Actor, assetID string, in dto.ChangeAssetStateRequest) (*entity.Asset, error) {
	if !entity.ValidAssetState(in.NewState) || in.NewState == entity.AssetStateSold {
		return nil, domain.ErrInvalidInput
	}
	seed, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.requireWrite(ctx, actor.UserID, seed.InventoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	var updated *entity.Asset
	discarded := false
	err = uc.txRunner.RunInventory(ctx, func(r TxRepos) error {
		a, err := r.Assets.GetForUpdate(assetID)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if a.State == in.NewState {
			updated = a
			return nil
		}
		if entity.AssetStateTerminal(a.State) {
			return fmt.Errorf("el activo %s no puede salir del estado %s: %w", a.Name, a.State, domain.ErrInvalidInput)
		}
		before := *a

		var stockBefore decimal.Decimal
		if in.NewState == entity.AssetStateDiscarded {
			count, err := r.Assets.CountActiveByProduct(a.ProductID)
			if err != nil {
				return err
			}
			stockBefore = decimal.NewFromInt(int64(count))
		}

		log, err := bitacora.NewEntry(bitacora.EntryInput{
			InventoryID: a.InventoryID,
			AssetID:     a.ID,
			StateBefore: a.State,
			StateAfter:  in.NewState,
			Motive:      in.Motive,
			CreatedBy:   actor.UserID,
			At:          now,
		})
		if err != nil {
			return err
		}
		if err := r.Bitacora.Create(log); err != nil {
			return err
		}

		a.State = in.NewState
		a.UpdatedAt = now
		if err := r.Assets.Update(a); err != nil {
			return err
		}
		updated = a

		if in.NewState == entity.AssetStateDiscarded {
			discarded = true
			one := decimal.NewFromInt(1)
			entry, err := kardex.NewSalida(kardex.EntryInput{
				InventoryID:  a.InventoryID,
				ProductID:    a.ProductID,
				MovementType: entity.MovementTypeDiscard,
				Quantity:     one,
				StockBefore:  stockBefore,
				StockAfter:   stockBefore.Sub(one),
				Observations: in.Motive,
				CreatedBy:    actor.UserID,
				At:           now,
			})
			if err != nil {
				return err
			}
			if err := r.Kardex.Create(entry); err != nil {
				return err
			}
		}
		return uc.audit(r, auditoria.RecordInput{
			InventoryID: a.InventoryID,
			Action:      entity.AuditActionAssetStateChanged,
			ProductID:   &a.ProductID,
			AssetID:     &a.ID,
			Before:      before,
			After:       a,
			Motive:      in.Motive,
		}, actor, now)
	})
	if err != nil {
		return nil, err
	}
	if discarded {
		uc.metrics.StockMovements.WithLabelValues(entity.MovementTypeDiscard, entity.DirectionOut).Inc()
	}
	return updated, nil
}

// ── Ayudantes ───────────────────────────────────────────────────────────────

func (uc *UseCase) materialProduct(r TxRepos, inventoryID, productID string) (*entity.Product, error) {
	return productOfKind(r, inventoryID, productID, entity.ProductKindMaterial)
}

func (uc *UseCase) assetProduct(r TxRepos, inventoryID, productID string) (*entity.Product, error) {
	return productOfKind(r, inventoryID, productID, entity.ProductKindFixedAsset)
}

func productOfKind(r TxRepos, inventoryID, productID, kind string) (*entity.Product, error) {
	p, err := r.Products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.InventoryID != inventoryID {
		return nil, domain.ErrNotFound
	}
	if !p.Active {
		return nil, fmt.Errorf("producto %s inactivo: %w", p.Name, domain.ErrInvalidInput)
	}
	if p.Kind != kind {
		return nil, fmt.Errorf("producto %s no es de clase %s: %w", p.Name, kind, domain.ErrInvalidInput)
	}
	return p, nil
}

func sumLots(mats []*entity.Material) (onHand, reserved decimal.Decimal) {
	onHand, reserved = decimal.Zero, decimal.Zero
	for _, m := range mats {
		onHand = onHand.Add(m.QuantityOnHand)
		reserved = reserved.Add(m.QuantityReserved)
	}
	return onHand, reserved
}

func lotViews(mats []*entity.Material) []stock.Lot {
	lots := make([]stock.Lot, 0, len(mats))
	for _, m := range mats {
		lots = append(lots, stock.Lot{
			MaterialID: m.ID,
			ExpiresAt:  m.ExpiresAt,
			IngestedAt: m.IngestedAt,
			Available:  m.Available(),
		})
	}
	return lots
}

// applyDraws descuenta cada consumo planificado de su fila de material.
func applyDraws(r TxRepos, mats []*entity.Material, draws []stock.Draw) error {
	byID := make(map[string]*entity.Material, len(mats))
	for _, m := range mats {
		byID[m.ID] = m
	}
	for _, d := range draws {
		m := byID[d.MaterialID]
		if m == nil {
			return fmt.Errorf("material %s del plan de consumo: %w", d.MaterialID, domain.ErrNotFound)
		}
		m.QuantityOnHand = m.QuantityOnHand.Sub(d.Quantity)
		if err := r.Materials.Update(m); err != nil {
			return err
		}
	}
	return nil
}

func inflowAmount(amount *decimal.Decimal, quantity, unitCost decimal.Decimal) decimal.Decimal {
	if amount != nil {
		return *amount
	}
	return quantity.Mul(unitCost)
}

func manualOutflow(t string) bool {
	switch t {
	case entity.MovementTypeSale, entity.MovementTypeDiscard, entity.MovementTypeTheft:
		return true
	}
	return false
}

func (uc *UseCase) registerExpense(ctx context.Context, inventoryID, concept string, amount decimal.Decimal, at time.Time) {
	if uc.finance == nil || !amount.IsPositive() {
		return
	}
	if err := uc.finance.RegisterExpense(ctx, inventoryID, concept, amount, at); err != nil {
		uc.log.Warn().Err(err).Str("inventario", inventoryID).Msg("no se pudo registrar el gasto en finanzas")
	}
}

func (uc *UseCase) registerIncome(ctx context.Context, inventoryID, concept string, amount decimal.Decimal, at time.Time) {
	if uc.finance == nil || !amount.IsPositive() {
		return
	}
	if err := uc.finance.RegisterIncome(ctx, inventoryID, concept, amount, at); err != nil {
		uc.log.Warn().Err(err).Str("inventario", inventoryID).Msg("no se pudo registrar el ingreso en finanzas")
	}
}
