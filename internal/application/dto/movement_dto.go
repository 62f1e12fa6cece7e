package dto

import (
	"time"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
)

// RecordMovementRequest entrada de uma movimentação de estoque. Sector é o
// destino (Saída) ou a origem (Entrada); Reason é obrigatório em Descarte.
type RecordMovementRequest struct {
	EquipmentID int64  `json:"equipment_id"`
	Type        string `json:"type"`
	Quantity    int    `json:"quantity"`
	Sector      string `json:"sector"`
	Requester   string `json:"requester"`
	Handler     string `json:"handler"`
	Ticket      string `json:"ticket"`
	Reason      string `json:"reason"`
}

// MovementResponse corpo de resposta de um lançamento do ledger.
type MovementResponse struct {
	ID          int64     `json:"id"`
	EquipmentID int64     `json:"equipment_id"`
	Type        string    `json:"type"`
	Quantity    int       `json:"quantity"`
	Sector      string    `json:"sector,omitempty"`
	Requester   string    `json:"requester,omitempty"`
	Ticket      string    `json:"ticket,omitempty"`
	Handler     string    `json:"handler"`
	Date        time.Time `json:"date"`
	Reason      string    `json:"reason,omitempty"`
}

// FromMovement monta a resposta a partir da entidade.
func FromMovement(m *entity.StockMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		EquipmentID: m.EquipmentID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		Sector:      m.Sector,
		Requester:   m.Requester,
		Ticket:      m.Ticket,
		Handler:     m.Handler,
		Date:        m.Date,
		Reason:      m.Reason,
	}
}

// FromMovements converte a lista preservando a ordem.
func FromMovements(movs []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, FromMovement(m))
	}
	return out
}

// LastExitResponse sugestão de origem para devolução, derivada da última
// saída registrada do equipamento.
type LastExitResponse struct {
	Sector    string `json:"sector"`
	Requester string `json:"requester"`
}
