package entity

// Product representa un ítem del cadastro maestro (planilla base o tabla products).
// KnownLots es informativo: el conteo acepta lotes nuevos no listados.
type Product struct {
	Code        string // código único, sin espacios laterales
	Description string
	Category    string // Insumo, Embalagem
	KnownLots   []string
}

// Categorías de material conocidas en el cadastro.
const (
	CategoryInsumo    = "Insumo"
	CategoryEmbalagem = "Embalagem"
)

// MaterialTypes lista las etiquetas de tipo de material ofrecidas al operador.
var MaterialTypes = []string{CategoryInsumo, CategoryEmbalagem}
