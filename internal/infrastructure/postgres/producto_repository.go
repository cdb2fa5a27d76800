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

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

const productoColumns = `id, nombre, descripcion, categoria, precio_venta, precio_compra,
	porcentaje_iva, porcentaje_ieps, stock_total, stock_minimo, stock_optimo,
	codigo_barras, sku, laboratorio, sustancia_activa, presentacion,
	tipo_regulacion, grupo_interaccion, ubicacion_anaquel, activo,
	fecha_creacion, fecha_actualizacion`

// ProductoRepo implementación del puerto ProductoRepository sobre PostgreSQL (usable con pool o tx).
type ProductoRepo struct {
	q Querier
}

// NewProductoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductoRepository(q Querier) *ProductoRepo {
	return &ProductoRepo{q: q}
}

// Create persiste un producto nuevo. El stock total inicia en 0.
func (r *ProductoRepo) Create(p *entity.Producto) error {
	query := `
		INSERT INTO productos (` + productoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Descripcion, p.Categoria, p.PrecioVenta, p.PrecioCompra,
		p.PorcentajeIVA, p.PorcentajeIEPS, p.StockTotal, p.StockMinimo, p.StockOptimo,
		p.CodigoBarras, p.SKU, p.Laboratorio, p.SustanciaActiva, p.Presentacion,
		string(p.TipoRegulacion), string(p.GrupoInteraccion), p.UbicacionAnaquel, p.Activo,
		p.FechaCreacion, p.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	return r.getOne(`SELECT `+productoColumns+` FROM productos WHERE id = $1`, id)
}

// GetByCodigoBarras obtiene un producto activo por código de barras.
func (r *ProductoRepo) GetByCodigoBarras(codigo string) (*entity.Producto, error) {
	return r.getOne(`SELECT `+productoColumns+` FROM productos WHERE codigo_barras = $1 AND activo`, codigo)
}

// GetForUpdate bloquea la fila del producto dentro de una transacción.
func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	return r.getOne(`SELECT `+productoColumns+` FROM productos WHERE id = $1 FOR UPDATE`, id)
}

// GetConLotes obtiene el producto con sus lotes activos ordenados por vencimiento.
func (r *ProductoRepo) GetConLotes(id string) (*entity.Producto, error) {
	p, err := r.GetByID(id)
	if err != nil || p == nil {
		return p, err
	}
	lotes, err := NewLoteRepository(r.q).ListByProducto(id)
	if err != nil {
		return nil, err
	}
	p.Lotes = make([]entity.Lote, 0, len(lotes))
	for _, l := range lotes {
		p.Lotes = append(p.Lotes, *l)
	}
	return p, nil
}

// Update actualiza los datos del catálogo. El stock total no se toca aquí.
func (r *ProductoRepo) Update(p *entity.Producto) error {
	query := `
		UPDATE productos SET nombre = $2, descripcion = $3, categoria = $4,
			precio_venta = $5, precio_compra = $6, porcentaje_iva = $7, porcentaje_ieps = $8,
			stock_minimo = $9, stock_optimo = $10, codigo_barras = $11, sku = $12,
			laboratorio = $13, sustancia_activa = $14, presentacion = $15,
			tipo_regulacion = $16, grupo_interaccion = $17, ubicacion_anaquel = $18,
			activo = $19, fecha_actualizacion = $20
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Nombre, p.Descripcion, p.Categoria,
		p.PrecioVenta, p.PrecioCompra, p.PorcentajeIVA, p.PorcentajeIEPS,
		p.StockMinimo, p.StockOptimo, p.CodigoBarras, p.SKU,
		p.Laboratorio, p.SustanciaActiva, p.Presentacion,
		string(p.TipoRegulacion), string(p.GrupoInteraccion), p.UbicacionAnaquel,
		p.Activo, p.FechaActualizacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStockTotal actualiza solo el stock derivado (lo usa el motor de inventario).
func (r *ProductoRepo) UpdateStockTotal(productoID string, stockTotal int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock_total = $2, fecha_actualizacion = now() WHERE id = $1`,
		productoID, stockTotal,
	)
	if err != nil {
		return fmt.Errorf("update stock producto: %w", err)
	}
	return nil
}

// List lista productos activos con paginación.
func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	query := `SELECT ` + productoColumns + ` FROM productos WHERE activo ORDER BY nombre LIMIT $1 OFFSET $2`
	return r.list(query, limit, offset)
}

// Search busca por nombre, sustancia activa, código de barras, SKU o laboratorio.
// El texto llega normalizado (minúsculas, sin acentos); los campos se comparan
// con unaccent para que la búsqueda no distinga acentos en BD.
func (r *ProductoRepo) Search(texto string, limit int) ([]*entity.Producto, error) {
	query := `
		SELECT ` + productoColumns + `
		FROM productos
		WHERE activo AND (
			lower(unaccent(nombre)) LIKE '%' || $1 || '%'
			OR lower(unaccent(sustancia_activa)) LIKE '%' || $1 || '%'
			OR lower(unaccent(laboratorio)) LIKE '%' || $1 || '%'
			OR lower(codigo_barras) LIKE '%' || $1 || '%'
			OR lower(sku) LIKE '%' || $1 || '%'
		)
		ORDER BY nombre LIMIT $2`
	return r.list(query, texto, limit)
}

func (r *ProductoRepo) getOne(query string, args ...any) (*entity.Producto, error) {
	var p entity.Producto
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&p.ID, &p.Nombre, &p.Descripcion, &p.Categoria, &p.PrecioVenta, &p.PrecioCompra,
		&p.PorcentajeIVA, &p.PorcentajeIEPS, &p.StockTotal, &p.StockMinimo, &p.StockOptimo,
		&p.CodigoBarras, &p.SKU, &p.Laboratorio, &p.SustanciaActiva, &p.Presentacion,
		&p.TipoRegulacion, &p.GrupoInteraccion, &p.UbicacionAnaquel, &p.Activo,
		&p.FechaCreacion, &p.FechaActualizacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

func (r *ProductoRepo) list(query string, args ...any) ([]*entity.Producto, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Producto
	for rows.Next() {
		var p entity.Producto
		if err := rows.Scan(
			&p.ID, &p.Nombre, &p.Descripcion, &p.Categoria, &p.PrecioVenta, &p.PrecioCompra,
			&p.PorcentajeIVA, &p.PorcentajeIEPS, &p.StockTotal, &p.StockMinimo, &p.StockOptimo,
			&p.CodigoBarras, &p.SKU, &p.Laboratorio, &p.SustanciaActiva, &p.Presentacion,
			&p.TipoRegulacion, &p.GrupoInteraccion, &p.UbicacionAnaquel, &p.Activo,
			&p.FechaCreacion, &p.FechaActualizacion,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
