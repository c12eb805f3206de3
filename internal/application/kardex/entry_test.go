package kardex_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontosys/inventario-api/internal/application/kardex"
	"github.com/odontosys/inventario-api/internal/domain"
	"github.com/odontosys/inventario-api/internal/domain/entity"
	"github.com/odontosys/inventario-api/internal/domain/repository"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entrada(qty, before, after string) kardex.EntryInput {
	return kardex.EntryInput{
		InventoryID: "inv-1",
		ProductID:   "prod-1",
		Quantity:    d(qty),
		StockBefore: d(before),
		StockAfter:  d(after),
		CreatedBy:   "dra-gomez",
	}
}

func TestNewEntrada(t *testing.T) {
	in := entrada("10", "5", "15")
	in.MovementType = entity.MovementTypePurchase

	e, err := kardex.NewEntrada(in)
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, entity.DirectionIn, e.Direction)
	assert.False(t, e.CreatedAt.IsZero(), "sin At explícito se sella la hora actual")
}

func TestNewEntrada_FotoInconsistente(t *testing.T) {
	in := entrada("10", "5", "14")
	in.MovementType = entity.MovementTypePurchase

	_, err := kardex.NewEntrada(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "stock_after debe ser stock_before + cantidad")
}

func TestNewEntrada_TipoDeSalida(t *testing.T) {
	in := entrada("10", "5", "15")
	in.MovementType = entity.MovementTypeSale

	_, err := kardex.NewEntrada(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewSalida(t *testing.T) {
	in := entrada("4", "10", "6")
	in.MovementType = entity.MovementTypeDiscard

	e, err := kardex.NewSalida(in)
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionOut, e.Direction)
}

func TestNewSalida_Invalidas(t *testing.T) {
	base := func() kardex.EntryInput {
		in := entrada("4", "10", "6")
		in.MovementType = entity.MovementTypeSale
		return in
	}

	in := base()
	in.StockAfter = d("7")
	_, err := kardex.NewSalida(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "foto inconsistente")

	in = base()
	in.Quantity = decimal.Zero
	in.StockAfter = d("10")
	_, err = kardex.NewSalida(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad no positiva")

	in = base()
	in.CreatedBy = ""
	_, err = kardex.NewSalida(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "autor obligatorio")

	in = base()
	in.MovementType = entity.MovementTypePurchase
	_, err = kardex.NewSalida(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo de entrada en una salida")
}

// ── Informe de rango ────────────────────────────────────────────────────────

type memRepo struct {
	entries []*entity.KardexEntry
}

func (r *memRepo) Create(e *entity.KardexEntry) error { r.entries = append(r.entries, e); return nil }

func (r *memRepo) ListByProduct(string, repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	return r.entries, len(r.entries), nil
}

func (r *memRepo) ListByInventory(string, repository.KardexFilter) ([]*entity.KardexEntry, int, error) {
	return r.entries, len(r.entries), nil
}

func (r *memRepo) ListRange(string, time.Time, time.Time) ([]*entity.KardexEntry, error) {
	return r.entries, nil
}

func row(t *testing.T, productID, movType, qty, before, after string, build func(kardex.EntryInput) (*entity.KardexEntry, error)) *entity.KardexEntry {
	t.Helper()
	e, err := build(kardex.EntryInput{
		InventoryID:  "inv-1",
		ProductID:    productID,
		MovementType: movType,
		Quantity:     d(qty),
		StockBefore:  d(before),
		StockAfter:   d(after),
		CreatedBy:    "dra-gomez",
	})
	require.NoError(t, err)
	return e
}

func TestReporteRango(t *testing.T) {
	repo := &memRepo{}
	repo.entries = []*entity.KardexEntry{
		row(t, "prod-1", entity.MovementTypePurchase, "100", "0", "100", kardex.NewEntrada),
		row(t, "prod-1", entity.MovementTypeSale, "30", "100", "70", kardex.NewSalida),
		row(t, "prod-2", entity.MovementTypeDonation, "5", "0", "5", kardex.NewEntrada),
		row(t, "prod-1", entity.MovementTypeSale, "10", "70", "60", kardex.NewSalida),
	}
	uc := kardex.NewUseCase(repo)

	report, err := uc.ReporteRango(context.Background(), "inv-1", time.Time{}, time.Now())
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalRows)
	assert.True(t, report.TotalIn.Equal(d("105")))
	assert.True(t, report.TotalOut.Equal(d("40")))

	require.Len(t, report.ByType, 3, "las dos ventas se agregan en una fila")
	for _, tt := range report.ByType {
		if tt.MovementType == entity.MovementTypeSale {
			assert.Equal(t, 2, tt.Entries)
			assert.True(t, tt.Quantity.Equal(d("40")))
		}
	}

	require.Len(t, report.ByProduct, 2)
	assert.Equal(t, "prod-1", report.ByProduct[0].ProductID, "productos ordenados por id")
	assert.True(t, report.ByProduct[0].In.Equal(d("100")))
	assert.True(t, report.ByProduct[0].Out.Equal(d("40")))
}
