package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
)

var _ repository.CorteRepository = (*CorteRepo)(nil)

const corteColumns = `id, numero_caja, cajero_id, cajero_nombre, supervisor_id, supervisor_nombre,
	fecha_apertura, fecha_cierre, ventas_efectivo, ventas_tarjeta, ventas_transferencia,
	total_ventas, total_devoluciones, retiros_efectivo, fondo_inicial,
	cantidad_ventas, cantidad_cancelaciones, efectivo_declarado, efectivo_esperado,
	diferencia, estado, observaciones, desglose, fecha_creacion`

// CorteRepo implementación del puerto CorteRepository sobre PostgreSQL (usable con pool o tx).
// El desglose de denominaciones se guarda como JSONB; un índice parcial único
// sobre (numero_caja) WHERE estado = 'ABIERTO' garantiza un corte abierto por caja.
type CorteRepo struct {
	q Querier
}

// NewCorteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCorteRepository(q Querier) *CorteRepo {
	return &CorteRepo{q: q}
}

// Create persiste un corte recién abierto.
func (r *CorteRepo) Create(c *entity.CorteCaja) error {
	desglose, err := marshalDesglose(c.Desglose)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO cortes_caja (` + corteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, now())`
	_, err = r.q.Exec(context.Background(), query,
		c.ID, c.NumeroCaja, nullableString(c.CajeroID), c.CajeroNombre,
		nullableString(c.SupervisorID), c.SupervisorNombre,
		c.FechaApertura, nullableTime(c.FechaCierre),
		c.VentasEfectivo, c.VentasTarjeta, c.VentasTransferencia,
		c.TotalVentas, c.TotalDevoluciones, c.RetirosEfectivo, c.FondoInicial,
		c.CantidadVentas, c.CantidadCancelaciones,
		c.EfectivoDeclarado, c.EfectivoEsperado, c.Diferencia,
		string(c.Estado), c.Observaciones, desglose,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ya hay un corte abierto en esta caja: %w", domain.ErrConflict)
		}
		return fmt.Errorf("insert corte: %w", err)
	}
	return nil
}

// GetByID obtiene un corte por ID.
func (r *CorteRepo) GetByID(id string) (*entity.CorteCaja, error) {
	return r.getOne(`SELECT `+corteColumns+` FROM cortes_caja WHERE id = $1`, id)
}

// GetAbierto corte ABIERTO de la caja; (nil, nil) si no hay.
func (r *CorteRepo) GetAbierto(numeroCaja int) (*entity.CorteCaja, error) {
	return r.getOne(`SELECT `+corteColumns+` FROM cortes_caja WHERE numero_caja = $1 AND estado = 'ABIERTO'`, numeroCaja)
}

// GetAbiertoForUpdate igual que GetAbierto pero bloqueando la fila (dentro de tx).
func (r *CorteRepo) GetAbiertoForUpdate(numeroCaja int) (*entity.CorteCaja, error) {
	return r.getOne(`SELECT `+corteColumns+` FROM cortes_caja WHERE numero_caja = $1 AND estado = 'ABIERTO' FOR UPDATE`, numeroCaja)
}

// Update persiste acumulados, cierre y reconciliación del corte.
func (r *CorteRepo) Update(c *entity.CorteCaja) error {
	desglose, err := marshalDesglose(c.Desglose)
	if err != nil {
		return err
	}
	query := `
		UPDATE cortes_caja SET cajero_nombre = $2, supervisor_nombre = $3,
			fecha_cierre = $4, ventas_efectivo = $5, ventas_tarjeta = $6,
			ventas_transferencia = $7, total_ventas = $8, total_devoluciones = $9,
			retiros_efectivo = $10, cantidad_ventas = $11, cantidad_cancelaciones = $12,
			efectivo_declarado = $13, efectivo_esperado = $14, diferencia = $15,
			estado = $16, observaciones = $17, desglose = $18
		WHERE id = $1`
	_, err = r.q.Exec(context.Background(), query,
		c.ID, c.CajeroNombre, c.SupervisorNombre,
		nullableTime(c.FechaCierre), c.VentasEfectivo, c.VentasTarjeta,
		c.VentasTransferencia, c.TotalVentas, c.TotalDevoluciones,
		c.RetirosEfectivo, c.CantidadVentas, c.CantidadCancelaciones,
		c.EfectivoDeclarado, c.EfectivoEsperado, c.Diferencia,
		string(c.Estado), c.Observaciones, desglose,
	)
	if err != nil {
		return fmt.Errorf("update corte: %w", err)
	}
	return nil
}

// Historial cortes cerrados, el más reciente primero.
func (r *CorteRepo) Historial(limit, offset int) ([]*entity.CorteCaja, error) {
	query := `
		SELECT ` + corteColumns + `
		FROM cortes_caja WHERE estado = 'CERRADO'
		ORDER BY fecha_cierre DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("historial cortes: %w", err)
	}
	defer rows.Close()

	var list []*entity.CorteCaja
	for rows.Next() {
		c, err := scanCorte(rows)
		if err != nil {
			return nil, fmt.Errorf("scan corte: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CreateRetiro persiste un retiro de efectivo.
func (r *CorteRepo) CreateRetiro(ret *entity.RetiroEfectivo) error {
	query := `
		INSERT INTO retiros_efectivo (id, corte_caja_id, monto, motivo, autorizado_por,
			pin_supervisor, fecha, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		ret.ID, ret.CorteCajaID, ret.Monto, ret.Motivo, ret.AutorizadoPor,
		ret.PinSupervisor, ret.Fecha, ret.Observaciones,
	)
	if err != nil {
		return fmt.Errorf("insert retiro: %w", err)
	}
	return nil
}

// ListRetiros retiros de un corte en orden cronológico.
func (r *CorteRepo) ListRetiros(corteID string) ([]*entity.RetiroEfectivo, error) {
	query := `
		SELECT id, corte_caja_id, monto, motivo, autorizado_por, pin_supervisor, fecha, observaciones
		FROM retiros_efectivo WHERE corte_caja_id = $1 ORDER BY fecha`
	rows, err := r.q.Query(context.Background(), query, corteID)
	if err != nil {
		return nil, fmt.Errorf("list retiros: %w", err)
	}
	defer rows.Close()

	var list []*entity.RetiroEfectivo
	for rows.Next() {
		var ret entity.RetiroEfectivo
		if err := rows.Scan(
			&ret.ID, &ret.CorteCajaID, &ret.Monto, &ret.Motivo, &ret.AutorizadoPor,
			&ret.PinSupervisor, &ret.Fecha, &ret.Observaciones,
		); err != nil {
			return nil, fmt.Errorf("scan retiro: %w", err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}

func (r *CorteRepo) getOne(query string, args ...any) (*entity.CorteCaja, error) {
	c, err := scanCorte(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get corte: %w", err)
	}
	return c, nil
}

func scanCorte(row pgx.Row) (*entity.CorteCaja, error) {
	var c entity.CorteCaja
	var cajeroID, supervisorID *string
	var fechaCierre *time.Time
	var desglose []byte
	err := row.Scan(
		&c.ID, &c.NumeroCaja, &cajeroID, &c.CajeroNombre, &supervisorID, &c.SupervisorNombre,
		&c.FechaApertura, &fechaCierre, &c.VentasEfectivo, &c.VentasTarjeta, &c.VentasTransferencia,
		&c.TotalVentas, &c.TotalDevoluciones, &c.RetirosEfectivo, &c.FondoInicial,
		&c.CantidadVentas, &c.CantidadCancelaciones, &c.EfectivoDeclarado, &c.EfectivoEsperado,
		&c.Diferencia, &c.Estado, &c.Observaciones, &desglose, &c.FechaCreacion,
	)
	if err != nil {
		return nil, err
	}
	if cajeroID != nil {
		c.CajeroID = *cajeroID
	}
	if supervisorID != nil {
		c.SupervisorID = *supervisorID
	}
	if fechaCierre != nil {
		c.FechaCierre = *fechaCierre
	}
	if len(desglose) > 0 {
		var d entity.DesgloseDenominaciones
		if err := json.Unmarshal(desglose, &d); err != nil {
			return nil, fmt.Errorf("unmarshal desglose: %w", err)
		}
		c.Desglose = &d
	}
	return &c, nil
}

func marshalDesglose(d *entity.DesgloseDenominaciones) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal desglose: %w", err)
	}
	return b, nil
}
