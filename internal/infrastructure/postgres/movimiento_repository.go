package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

const movimientoColumns = `id, producto_id, producto_nombre, lote_id, numero_lote, tipo,
	cantidad, stock_anterior, stock_nuevo, motivo, referencia, usuario_id,
	usuario_nombre, fecha, observaciones, fecha_creacion`

// MovimientoRepo implementación del puerto MovimientoRepository sobre PostgreSQL (usable con pool o tx).
// El kardex es de solo inserción: los movimientos no se actualizan ni borran.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create persiste un registro de kardex.
func (r *MovimientoRepo) Create(m *entity.MovimientoInventario) error {
	query := `
		INSERT INTO movimientos_inventario (` + movimientoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.ProductoID, m.ProductoNombre, nullableString(m.LoteID), m.NumeroLote, string(m.Tipo),
		m.Cantidad, m.StockAnterior, m.StockNuevo, m.Motivo, m.Referencia, nullableString(m.UsuarioID),
		m.UsuarioNombre, m.Fecha, m.Observaciones,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// List kardex general, el más reciente primero.
func (r *MovimientoRepo) List(limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByProducto kardex de un producto.
func (r *MovimientoRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.MovimientoInventario, error) {
	query := `SELECT ` + movimientoColumns + ` FROM movimientos_inventario WHERE producto_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	return r.list(query, productoID, limit, offset)
}

func (r *MovimientoRepo) list(query string, args ...any) ([]*entity.MovimientoInventario, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()

	var list []*entity.MovimientoInventario
	for rows.Next() {
		var m entity.MovimientoInventario
		var loteID, usuarioID *string
		if err := rows.Scan(
			&m.ID, &m.ProductoID, &m.ProductoNombre, &loteID, &m.NumeroLote, &m.Tipo,
			&m.Cantidad, &m.StockAnterior, &m.StockNuevo, &m.Motivo, &m.Referencia, &usuarioID,
			&m.UsuarioNombre, &m.Fecha, &m.Observaciones, &m.FechaCreacion,
		); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		if loteID != nil {
			m.LoteID = *loteID
		}
		if usuarioID != nil {
			m.UsuarioID = *usuarioID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
