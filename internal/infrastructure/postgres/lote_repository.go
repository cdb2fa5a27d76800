package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

const loteColumns = `id, producto_id, numero_lote, fecha_vencimiento, fecha_ingreso,
	cantidad_inicial, cantidad_disponible, precio_compra, proveedor,
	ubicacion_anaquel, activo, fecha_creacion, fecha_actualizacion`

// LoteRepo implementación del puerto LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

// Create persiste un lote nuevo. Fecha de vencimiento cero se guarda como NULL.
func (r *LoteRepo) Create(l *entity.Lote) error {
	query := `
		INSERT INTO lotes (` + loteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ProductoID, l.NumeroLote, nullableTime(l.FechaVencimiento), l.FechaIngreso,
		l.CantidadInicial, l.CantidadDisponible, l.PrecioCompra, l.Proveedor,
		l.UbicacionAnaquel, l.Activo, l.FechaCreacion, l.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("lote duplicado para el producto: %w", err)
		}
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *LoteRepo) GetByID(id string) (*entity.Lote, error) {
	return r.getOne(`SELECT `+loteColumns+` FROM lotes WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del lote dentro de una transacción.
func (r *LoteRepo) GetForUpdate(id string) (*entity.Lote, error) {
	return r.getOne(`SELECT `+loteColumns+` FROM lotes WHERE id = $1 FOR UPDATE`, id)
}

// Update actualiza el lote (cantidad disponible incluida).
func (r *LoteRepo) Update(l *entity.Lote) error {
	query := `
		UPDATE lotes SET numero_lote = $2, fecha_vencimiento = $3,
			cantidad_inicial = $4, cantidad_disponible = $5, precio_compra = $6,
			proveedor = $7, ubicacion_anaquel = $8, activo = $9, fecha_actualizacion = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.NumeroLote, nullableTime(l.FechaVencimiento),
		l.CantidadInicial, l.CantidadDisponible, l.PrecioCompra,
		l.Proveedor, l.UbicacionAnaquel, l.Activo, l.FechaActualizacion,
	)
	if err != nil {
		return fmt.Errorf("update lote: %w", err)
	}
	return nil
}

// ListByProducto lotes activos de un producto, primero los que vencen antes
// (los sin fecha de vencimiento al final).
func (r *LoteRepo) ListByProducto(productoID string) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM lotes WHERE producto_id = $1 AND activo
		ORDER BY fecha_vencimiento ASC NULLS LAST, fecha_ingreso ASC`
	return r.list(query, productoID)
}

// ListPorCaducar lotes activos con stock que vencen dentro del umbral de días.
func (r *LoteRepo) ListPorCaducar(dias int) ([]*entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM lotes
		WHERE activo AND cantidad_disponible > 0
			AND fecha_vencimiento IS NOT NULL
			AND fecha_vencimiento <= now() + ($1 || ' days')::interval
		ORDER BY fecha_vencimiento ASC`
	return r.list(query, dias)
}

func (r *LoteRepo) getOne(query string, args ...any) (*entity.Lote, error) {
	l, err := scanLote(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lote: %w", err)
	}
	return l, nil
}

func (r *LoteRepo) list(query string, args ...any) ([]*entity.Lote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Lote
	for rows.Next() {
		l, err := scanLote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLote(row pgx.Row) (*entity.Lote, error) {
	var l entity.Lote
	var fechaVencimiento *time.Time
	err := row.Scan(
		&l.ID, &l.ProductoID, &l.NumeroLote, &fechaVencimiento, &l.FechaIngreso,
		&l.CantidadInicial, &l.CantidadDisponible, &l.PrecioCompra, &l.Proveedor,
		&l.UbicacionAnaquel, &l.Activo, &l.FechaCreacion, &l.FechaActualizacion,
	)
	if err != nil {
		return nil, err
	}
	if fechaVencimiento != nil {
		l.FechaVencimiento = *fechaVencimiento
	}
	return &l, nil
}

// nullableTime convierte la fecha cero en NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
