package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

const clienteColumns = `id, nombre, apellido, email, telefono, direccion, rfc,
	codigo_postal, regimen_fiscal, razon_social, tipo_cliente, descuento,
	activo, fecha_creacion, fecha_actualizacion`

// ClienteRepo implementación del puerto ClienteRepository sobre PostgreSQL (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un cliente nuevo.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, c.Apellido, c.Email, c.Telefono, c.Direccion, c.RFC,
		c.CodigoPostal, c.RegimenFiscal, c.RazonSocial, c.TipoCliente, c.Descuento,
		c.Activo, c.FechaCreacion, c.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	var c entity.Cliente
	err := r.q.QueryRow(context.Background(),
		`SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id).Scan(
		&c.ID, &c.Nombre, &c.Apellido, &c.Email, &c.Telefono, &c.Direccion, &c.RFC,
		&c.CodigoPostal, &c.RegimenFiscal, &c.RazonSocial, &c.TipoCliente, &c.Descuento,
		&c.Activo, &c.FechaCreacion, &c.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}

// Update actualiza un cliente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre = $2, apellido = $3, email = $4, telefono = $5,
			direccion = $6, rfc = $7, codigo_postal = $8, regimen_fiscal = $9,
			razon_social = $10, tipo_cliente = $11, descuento = $12, activo = $13,
			fecha_actualizacion = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Nombre, c.Apellido, c.Email, c.Telefono,
		c.Direccion, c.RFC, c.CodigoPostal, c.RegimenFiscal,
		c.RazonSocial, c.TipoCliente, c.Descuento, c.Activo,
		c.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// List lista clientes activos con paginación.
func (r *ClienteRepo) List(limit, offset int) ([]*entity.Cliente, error) {
	query := `SELECT ` + clienteColumns + ` FROM clientes WHERE activo ORDER BY nombre, apellido LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Search busca por nombre, apellido, teléfono, RFC o email (texto ya normalizado).
func (r *ClienteRepo) Search(texto string, limit int) ([]*entity.Cliente, error) {
	query := `
		SELECT ` + clienteColumns + `
		FROM clientes
		WHERE activo AND (
			lower(unaccent(nombre)) LIKE '%' || $1 || '%'
			OR lower(unaccent(apellido)) LIKE '%' || $1 || '%'
			OR telefono LIKE '%' || $1 || '%'
			OR lower(rfc) LIKE '%' || $1 || '%'
			OR lower(email) LIKE '%' || $1 || '%'
		)
		ORDER BY nombre, apellido LIMIT $2`
	return r.list(query, texto, limit)
}

func (r *ClienteRepo) list(query string, args ...any) ([]*entity.Cliente, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(
			&c.ID, &c.Nombre, &c.Apellido, &c.Email, &c.Telefono, &c.Direccion, &c.RFC,
			&c.CodigoPostal, &c.RegimenFiscal, &c.RazonSocial, &c.TipoCliente, &c.Descuento,
			&c.Activo, &c.FechaCreacion, &c.FechaActualizacion,
		); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
