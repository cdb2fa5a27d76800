package repository

import "github.com/tu-usuario/farmacia-pos/internal/domain/entity"

// ClienteRepository puerto de persistencia para clientes.
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	Update(c *entity.Cliente) error
	List(limit, offset int) ([]*entity.Cliente, error)
	// Search búsqueda por nombre, apellido, teléfono, RFC o email
	// (texto ya normalizado).
	Search(texto string, limit int) ([]*entity.Cliente, error)
}
