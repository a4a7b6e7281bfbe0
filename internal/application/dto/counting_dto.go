package dto

// ProductResponse datos del cadastro mostrados al buscar un código.
type ProductResponse struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	KnownLots   []string `json:"known_lots"`
}

// RecordCountRequest body para POST /api/counts.
// SelectedLot (lote de la lista) tiene prioridad sobre NewLot (lote digitado).
// Quantity llega como texto, igual que en el campo de la pantalla.
type RecordCountRequest struct {
	Code        string `json:"code"`
	SelectedLot string `json:"selected_lot,omitempty"`
	NewLot      string `json:"new_lot,omitempty"`
	Quantity    string `json:"quantity"`
}

// RecordCountResponse resultado de un lanzamiento.
type RecordCountResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Lot         string `json:"lot"`
	Quantity    int    `json:"quantity"`
	Total       int    `json:"total"`
}

// HistoryEntryResponse lanzamiento deshecho.
type HistoryEntryResponse struct {
	Code     string `json:"code"`
	Lot      string `json:"lot"`
	Quantity int    `json:"quantity"`
}

// CountLineResponse fila agregada con descripción para la lista de registros.
type CountLineResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Lot         string `json:"lot"`
	Quantity    int    `json:"quantity"`
}

// CountListResponse registros contados de la sesión.
type CountListResponse struct {
	Lines   []CountLineResponse `json:"lines"`
	Entries int                 `json:"entries"` // lanzamientos que pueden corregirse
}

// ExportRequest body para exportar: rodada y tipo de material (solo nombran el archivo).
type ExportRequest struct {
	Round        string `json:"round"`
	MaterialType string `json:"material_type"`
}
