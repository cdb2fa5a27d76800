package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// CorteRepository puerto de persistencia para cortes de caja y retiros.
// La unicidad de "un corte ABIERTO por número de caja" la garantiza el
// almacenamiento (índice parcial único), no el dominio.
type CorteRepository interface {
	Create(c *entity.CorteCaja) error
	GetByID(id string) (*entity.CorteCaja, error)
	// GetAbierto corte ABIERTO de la caja; (nil, nil) si no hay.
	GetAbierto(numeroCaja int) (*entity.CorteCaja, error)
	// GetAbiertoForUpdate igual que GetAbierto pero bloqueando la fila (tx).
	GetAbiertoForUpdate(numeroCaja int) (*entity.CorteCaja, error)
	Update(c *entity.CorteCaja) error
	// Historial cortes cerrados, el más reciente primero.
	Historial(limit, offset int) ([]*entity.CorteCaja, error)

	CreateRetiro(r *entity.RetiroEfectivo) error
	ListRetiros(corteID string) ([]*entity.RetiroEfectivo, error)
}
