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

var _ repository.VentaRepository = (*VentaRepo)(nil)

const ventaColumns = `id, cliente_id, cliente_nombre, fecha, subtotal, descuento_total,
	impuesto, total, metodo_pago, monto_pagado, cambio, estado, observaciones, fecha_creacion`

// VentaRepo implementación del puerto VentaRepository sobre PostgreSQL (usable con pool o tx).
// Create se invoca dentro de la transacción de finalización de venta, junto
// con las salidas de inventario y la acumulación en el corte.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

// Create persiste la venta con sus detalles y recetas.
func (r *VentaRepo) Create(v *entity.Venta) error {
	ctx := context.Background()
	query := `
		INSERT INTO ventas (` + ventaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		v.ID, nullableString(v.ClienteID), v.ClienteNombre, v.Fecha, v.Subtotal, v.DescuentoTotal,
		v.Impuesto, v.Total, string(v.MetodoPago), v.MontoPagado, v.Cambio, string(v.Estado),
		v.Observaciones, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}

	for i := range v.Detalles {
		d := &v.Detalles[i]
		_, err := r.q.Exec(ctx, `
			INSERT INTO venta_detalles (id, venta_id, producto_id, producto_nombre, sustancia_activa,
				lote_id, numero_lote, fecha_vencimiento_lote, cantidad, precio_unitario,
				descuento, tasa_impuesto, subtotal, tipo_regulacion, grupo_interaccion)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			d.ID, v.ID, d.ProductoID, d.ProductoNombre, d.SustanciaActiva,
			nullableString(d.LoteID), d.NumeroLote, nullableTime(d.FechaVencimientoLote),
			d.Cantidad, d.PrecioUnitario, d.Descuento, d.TasaImpuesto, d.Subtotal,
			string(d.TipoRegulacion), string(d.GrupoInteraccion),
		)
		if err != nil {
			return fmt.Errorf("insert detalle venta: %w", err)
		}

		if d.Receta != nil {
			rec := d.Receta
			_, err := r.q.Exec(ctx, `
				INSERT INTO recetas_medicas (id, venta_id, producto_id, producto_nombre, tipo_regulacion,
					cedula_medico, nombre_medico, folio_receta, fecha_receta, institucion,
					diagnostico, verificada, observaciones, fecha_creacion)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
				rec.ID, v.ID, d.ProductoID, d.ProductoNombre, string(d.TipoRegulacion),
				rec.CedulaMedico, rec.NombreMedico, rec.FolioReceta, nullableTime(rec.FechaReceta),
				rec.Institucion, rec.Diagnostico, rec.Verificada, rec.Observaciones, time.Now(),
			)
			if err != nil {
				return fmt.Errorf("insert receta: %w", err)
			}
		}
	}
	return nil
}

// GetByID obtiene una venta con sus detalles y recetas.
func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	ctx := context.Background()
	v, err := scanVenta(r.q.QueryRow(ctx, `SELECT `+ventaColumns+` FROM ventas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	if err := r.cargarDetalles(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// List historial de ventas, la más reciente primero (sin detalles).
func (r *VentaRepo) List(limit, offset int) ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas ORDER BY fecha DESC LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// ListByCliente ventas de un cliente (sin detalles).
func (r *VentaRepo) ListByCliente(clienteID string, limit, offset int) ([]*entity.Venta, error) {
	query := `SELECT ` + ventaColumns + ` FROM ventas WHERE cliente_id = $1 ORDER BY fecha DESC LIMIT $2 OFFSET $3`
	return r.list(query, clienteID, limit, offset)
}

func (r *VentaRepo) cargarDetalles(ctx context.Context, v *entity.Venta) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, producto_id, producto_nombre, sustancia_activa, lote_id, numero_lote,
			fecha_vencimiento_lote, cantidad, precio_unitario, descuento, tasa_impuesto,
			subtotal, tipo_regulacion, grupo_interaccion
		FROM venta_detalles WHERE venta_id = $1 ORDER BY id`, v.ID)
	if err != nil {
		return fmt.Errorf("list detalles venta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d entity.DetalleVenta
		var loteID *string
		var fvLote *time.Time
		if err := rows.Scan(
			&d.ID, &d.ProductoID, &d.ProductoNombre, &d.SustanciaActiva, &loteID, &d.NumeroLote,
			&fvLote, &d.Cantidad, &d.PrecioUnitario, &d.Descuento, &d.TasaImpuesto,
			&d.Subtotal, &d.TipoRegulacion, &d.GrupoInteraccion,
		); err != nil {
			return fmt.Errorf("scan detalle venta: %w", err)
		}
		if loteID != nil {
			d.LoteID = *loteID
		}
		if fvLote != nil {
			d.FechaVencimientoLote = *fvLote
		}
		v.Detalles = append(v.Detalles, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return r.cargarRecetas(ctx, v)
}

func (r *VentaRepo) cargarRecetas(ctx context.Context, v *entity.Venta) error {
	rows, err := r.q.Query(ctx, `
		SELECT id, producto_id, producto_nombre, tipo_regulacion, cedula_medico, nombre_medico,
			folio_receta, fecha_receta, institucion, diagnostico, verificada, observaciones
		FROM recetas_medicas WHERE venta_id = $1`, v.ID)
	if err != nil {
		return fmt.Errorf("list recetas venta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec entity.RecetaMedica
		var fecha *time.Time
		if err := rows.Scan(
			&rec.ID, &rec.ProductoID, &rec.ProductoNombre, &rec.TipoRegulacion,
			&rec.CedulaMedico, &rec.NombreMedico, &rec.FolioReceta, &fecha,
			&rec.Institucion, &rec.Diagnostico, &rec.Verificada, &rec.Observaciones,
		); err != nil {
			return fmt.Errorf("scan receta: %w", err)
		}
		if fecha != nil {
			rec.FechaReceta = *fecha
		}
		rec.VentaID = v.ID
		for i := range v.Detalles {
			if v.Detalles[i].ProductoID == rec.ProductoID && v.Detalles[i].Receta == nil {
				recCopy := rec
				v.Detalles[i].Receta = &recCopy
				break
			}
		}
	}
	return rows.Err()
}

func (r *VentaRepo) list(query string, args ...any) ([]*entity.Venta, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Venta
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	var clienteID *string
	err := row.Scan(
		&v.ID, &clienteID, &v.ClienteNombre, &v.Fecha, &v.Subtotal, &v.DescuentoTotal,
		&v.Impuesto, &v.Total, &v.MetodoPago, &v.MontoPagado, &v.Cambio, &v.Estado,
		&v.Observaciones, &v.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	if clienteID != nil {
		v.ClienteID = *clienteID
	}
	return &v, nil
}

// nullableString convierte la cadena vacía en NULL (claves foráneas opcionales).
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
