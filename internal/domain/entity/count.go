package entity

// LedgerKey identifica un par producto/lote dentro del libro de conteo.
type LedgerKey struct {
	ProductCode string
	Lot         string
}

// HistoryEntry es el delta exacto aplicado por un lanzamiento.
type HistoryEntry struct {
	ProductCode string `json:"code"`
	Lot         string `json:"lot"`
	Quantity    int    `json:"quantity"`
}

// CountLine es una fila agregada del libro (cantidad siempre > 0).
type CountLine struct {
	ProductCode string
	Lot         string
	Quantity    int
}

// Rodadas de contagem.
const (
	RoundFirst  = "Primeira"
	RoundSecond = "Segunda"
	RoundThird  = "Terceira"
)

// CountRounds lista las rodadas en orden.
var CountRounds = []string{RoundFirst, RoundSecond, RoundThird}

// ExportMetadata identifica la organización y etiqueta la planilla exportada.
// Round y MaterialType solo nombran el archivo; no filtran filas.
type ExportMetadata struct {
	CompanyCode   string
	BranchCode    string
	WarehouseCode string
	Round         string
	MaterialType  string
}
