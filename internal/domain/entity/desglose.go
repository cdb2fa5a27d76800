package entity

import "github.com/shopspring/decimal"

// Denominaciones MXN válidas para el conteo ciego. Conjunto cerrado: el
// desglose no admite valores faciales fuera de estas listas.
var (
	DenominacionesBilletes = []string{"1000", "500", "200", "100", "50", "20"}
	DenominacionesMonedas  = []string{"20", "10", "5", "2", "1", "0.50"}
)

// DesgloseDenominaciones conteo físico del cajón: valor facial -> piezas.
// Las llaves son las denominaciones canónicas ("1000"..."0.50").
type DesgloseDenominaciones struct {
	Billetes map[string]int `json:"billetes"`
	Monedas  map[string]int `json:"monedas"`
}

// NuevoDesglose crea un desglose con todas las denominaciones en cero.
func NuevoDesglose() *DesgloseDenominaciones {
	d := &DesgloseDenominaciones{
		Billetes: make(map[string]int, len(DenominacionesBilletes)),
		Monedas:  make(map[string]int, len(DenominacionesMonedas)),
	}
	for _, v := range DenominacionesBilletes {
		d.Billetes[v] = 0
	}
	for _, v := range DenominacionesMonedas {
		d.Monedas[v] = 0
	}
	return d
}

// Validar verifica que las denominaciones pertenezcan al conjunto cerrado y
// que no haya conteos negativos.
func (d *DesgloseDenominaciones) Validar() []string {
	var errores []string
	errores = append(errores, validarGrupo(d.Billetes, DenominacionesBilletes, "billete")...)
	errores = append(errores, validarGrupo(d.Monedas, DenominacionesMonedas, "moneda")...)
	return errores
}

func validarGrupo(conteos map[string]int, validas []string, etiqueta string) []string {
	var errores []string
	for denom, cantidad := range conteos {
		if !contiene(validas, denom) {
			errores = append(errores, "Denominación de "+etiqueta+" no válida: "+denom)
		}
		if cantidad < 0 {
			errores = append(errores, "El conteo de "+etiqueta+"s de "+denom+" no puede ser negativo")
		}
	}
	return errores
}

func contiene(lista []string, v string) bool {
	for _, s := range lista {
		if s == v {
			return true
		}
	}
	return false
}

// Total suma valor facial × piezas de todo el desglose.
// Es el "efectivo declarado" del conteo ciego.
func (d *DesgloseDenominaciones) Total() decimal.Decimal {
	total := decimal.Zero
	total = total.Add(sumarGrupo(d.Billetes))
	total = total.Add(sumarGrupo(d.Monedas))
	return total
}

func sumarGrupo(conteos map[string]int) decimal.Decimal {
	total := decimal.Zero
	for denom, cantidad := range conteos {
		valor, err := decimal.NewFromString(denom)
		if err != nil {
			continue // denominación inválida; Validar la reporta
		}
		total = total.Add(valor.Mul(decimal.NewFromInt(int64(cantidad))))
	}
	return total
}
