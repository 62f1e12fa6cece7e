package dto

import "time"

// StockReport projeção de leitura do estoque: snapshot dos equipamentos e,
// opcionalmente, o histórico de movimentações do período. Um conjunto vazio
// é um relatório válido.
type StockReport struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Items       []EquipmentResponse `json:"items"`
	Movements   []MovementResponse  `json:"movements,omitempty"`
}

// TransferReport projeção de leitura das transferências entre setores,
// ordenadas por data ascendente.
type TransferReport struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Transfers   []TransferResponse `json:"transfers"`
}

// DashboardResponse os quatro cartões do painel da tela inicial.
type DashboardResponse struct {
	TotalUnits         int `json:"total_units"`
	UniqueItems        int `json:"unique_items"`
	LowStockItems      int `json:"low_stock_items"`
	MovementsThisMonth int `json:"movements_this_month"`
}
