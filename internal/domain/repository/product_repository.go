package repository

import "github.com/odontosys/inventario-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// Los listados devuelven también el total sin paginar para respuestas
// {records, total}.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// Deactivate marca el producto como inactivo; nunca se borra físicamente
	// una vez que el kardex lo referencia.
	Deactivate(id string) error
	ListByInventory(inventoryID string, onlyActive bool, limit, offset int) ([]*entity.Product, int, error)
}
