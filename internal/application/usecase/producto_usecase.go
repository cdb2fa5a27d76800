package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/farmacia-pos/internal/application/dto"
	"github.com/tu-usuario/farmacia-pos/internal/domain"
	"github.com/tu-usuario/farmacia-pos/internal/domain/entity"
	"github.com/tu-usuario/farmacia-pos/internal/domain/repository"
	"github.com/tu-usuario/farmacia-pos/pkg/texto"
)

// ProductoUseCase casos de uso CRUD del catálogo. El stock no se modifica
// aquí: lo alimentan los movimientos de inventario y las ventas.
type ProductoUseCase struct {
	repo repository.ProductoRepository
}

// NewProductoUseCase construye el caso de uso.
func NewProductoUseCase(repo repository.ProductoRepository) *ProductoUseCase {
	return &ProductoUseCase{repo: repo}
}

// Create da de alta un producto. El código de barras es único en el catálogo.
func (uc *ProductoUseCase) Create(in dto.CreateProductoRequest) (*dto.ProductoResponse, error) {
	existente, err := uc.repo.GetByCodigoBarras(in.CodigoBarras)
	if err != nil {
		return nil, err
	}
	if existente != nil {
		return nil, fmt.Errorf("ya existe un producto con ese código de barras: %w", domain.ErrDuplicate)
	}

	tipo, err := parseTipoRegulacion(in.TipoRegulacion)
	if err != nil {
		return nil, err
	}
	grupo, err := parseGrupoInteraccion(in.GrupoInteraccion)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	producto := &entity.Producto{
		ID:                 uuid.New().String(),
		Nombre:             in.Nombre,
		Descripcion:        in.Descripcion,
		Categoria:          in.Categoria,
		PrecioVenta:        in.PrecioVenta,
		PrecioCompra:       in.PrecioCompra,
		PorcentajeIVA:      in.PorcentajeIVA,
		PorcentajeIEPS:     in.PorcentajeIEPS,
		StockMinimo:        in.StockMinimo,
		StockOptimo:        in.StockOptimo,
		CodigoBarras:       in.CodigoBarras,
		SKU:                in.SKU,
		Laboratorio:        in.Laboratorio,
		SustanciaActiva:    in.SustanciaActiva,
		Presentacion:       in.Presentacion,
		TipoRegulacion:     tipo,
		GrupoInteraccion:   grupo,
		UbicacionAnaquel:   in.UbicacionAnaquel,
		Activo:             true,
		FechaCreacion:      now,
		FechaActualizacion: now,
	}
	if err := domain.NuevaValidacion(producto.Validar()); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(producto); err != nil {
		return nil, err
	}
	return dto.ToProductoResponse(producto), nil
}

// GetByID obtiene un producto con sus lotes.
func (uc *ProductoUseCase) GetByID(id string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetConLotes(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return dto.ToProductoResponse(producto), nil
}

// GetByCodigoBarras busca por código de barras (escaneo en caja).
func (uc *ProductoUseCase) GetByCodigoBarras(codigo string) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByCodigoBarras(codigo)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}
	return dto.ToProductoResponse(producto), nil
}

// Update actualiza un producto. El stock total no se toca aquí.
func (uc *ProductoUseCase) Update(id string, in dto.UpdateProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if producto == nil {
		return nil, nil
	}

	if in.Nombre != nil {
		producto.Nombre = *in.Nombre
	}
	if in.Descripcion != nil {
		producto.Descripcion = *in.Descripcion
	}
	if in.Categoria != nil {
		producto.Categoria = *in.Categoria
	}
	if in.PrecioVenta != nil {
		producto.PrecioVenta = *in.PrecioVenta
	}
	if in.PrecioCompra != nil {
		producto.PrecioCompra = *in.PrecioCompra
	}
	if in.PorcentajeIVA != nil {
		producto.PorcentajeIVA = *in.PorcentajeIVA
	}
	if in.PorcentajeIEPS != nil {
		producto.PorcentajeIEPS = *in.PorcentajeIEPS
	}
	if in.StockMinimo != nil {
		producto.StockMinimo = *in.StockMinimo
	}
	if in.StockOptimo != nil {
		producto.StockOptimo = *in.StockOptimo
	}
	if in.CodigoBarras != nil && *in.CodigoBarras != producto.CodigoBarras {
		existente, err := uc.repo.GetByCodigoBarras(*in.CodigoBarras)
		if err != nil {
			return nil, err
		}
		if existente != nil {
			return nil, fmt.Errorf("ya existe un producto con ese código de barras: %w", domain.ErrDuplicate)
		}
		producto.CodigoBarras = *in.CodigoBarras
	}
	if in.SKU != nil {
		producto.SKU = *in.SKU
	}
	if in.Laboratorio != nil {
		producto.Laboratorio = *in.Laboratorio
	}
	if in.SustanciaActiva != nil {
		producto.SustanciaActiva = *in.SustanciaActiva
	}
	if in.Presentacion != nil {
		producto.Presentacion = *in.Presentacion
	}
	if in.TipoRegulacion != nil {
		tipo, err := parseTipoRegulacion(*in.TipoRegulacion)
		if err != nil {
			return nil, err
		}
		producto.TipoRegulacion = tipo
	}
	if in.GrupoInteraccion != nil {
		grupo, err := parseGrupoInteraccion(*in.GrupoInteraccion)
		if err != nil {
			return nil, err
		}
		producto.GrupoInteraccion = grupo
	}
	if in.UbicacionAnaquel != nil {
		producto.UbicacionAnaquel = *in.UbicacionAnaquel
	}
	if in.Activo != nil {
		producto.Activo = *in.Activo
	}

	if err := domain.NuevaValidacion(producto.Validar()); err != nil {
		return nil, err
	}
	producto.FechaActualizacion = time.Now()
	if err := uc.repo.Update(producto); err != nil {
		return nil, err
	}
	return dto.ToProductoResponse(producto), nil
}

// List lista productos con paginación.
func (uc *ProductoUseCase) List(page dto.PageRequest) (*dto.ProductoListResponse, error) {
	page.DefaultPage()
	productos, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return toProductoList(productos, page), nil
}

// Search busca por nombre, sustancia activa, código de barras, SKU o
// laboratorio, sin distinguir mayúsculas ni acentos.
func (uc *ProductoUseCase) Search(consulta string, page dto.PageRequest) (*dto.ProductoListResponse, error) {
	page.DefaultPage()
	normalizada := texto.Normalizar(consulta)
	if normalizada == "" {
		return uc.List(page)
	}
	productos, err := uc.repo.Search(normalizada, page.Limit)
	if err != nil {
		return nil, err
	}
	return toProductoList(productos, page), nil
}

func toProductoList(productos []*entity.Producto, page dto.PageRequest) *dto.ProductoListResponse {
	items := make([]dto.ProductoResponse, 0, len(productos))
	for _, p := range productos {
		items = append(items, *dto.ToProductoResponse(p))
	}
	return &dto.ProductoListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
}

func parseTipoRegulacion(s string) (entity.TipoRegulacion, error) {
	if s == "" {
		return entity.RegulacionVentaLibre, nil
	}
	for _, t := range entity.TiposRegulacion {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("tipo de regulación no válido %q: %w", s, domain.ErrInvalidInput)
}

func parseGrupoInteraccion(s string) (entity.GrupoInteraccion, error) {
	if s == "" {
		return entity.GrupoNinguno, nil
	}
	grupos := []entity.GrupoInteraccion{
		entity.GrupoAnticoagulantes,
		entity.GrupoAINES,
		entity.GrupoAntibioticos,
		entity.GrupoAntidepresivos,
		entity.GrupoAntihipertensivos,
		entity.GrupoOpioides,
		entity.GrupoBenzodiacepinas,
		entity.GrupoAlcohol,
		entity.GrupoNinguno,
	}
	for _, g := range grupos {
		if string(g) == s {
			return g, nil
		}
	}
	return "", fmt.Errorf("grupo de interacción no válido %q: %w", s, domain.ErrInvalidInput)
}
