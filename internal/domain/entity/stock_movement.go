package entity

import "time"

// Tipos de movimentação de estoque. Os valores são os gravados na planilha
// desde a primeira versão do sistema; mudá-los quebra o histórico.
const (
	MovementExit     = "Saída"
	MovementReturn   = "Entrada"
	MovementDisposal = "Descarte"
)

// StockMovement é um lançamento imutável do ledger de estoque. Correções são
// movimentações compensatórias novas, nunca edição de linha.
type StockMovement struct {
	ID          int64
	EquipmentID int64
	Type        string
	Quantity    int    // sempre positivo; o sinal vem do tipo
	Sector      string // destino (Saída) ou origem (Entrada); vazio em Descarte
	Requester   string
	Ticket      string // nº do chamado, opcional
	Handler     string // responsável pela movimentação
	Date        time.Time
	Reason      string // motivo/laudo, obrigatório em Descarte
}

// SignedQuantity devolve o delta que o lançamento aplica à quantidade do
// equipamento: Entrada soma, Saída e Descarte subtraem.
func (m *StockMovement) SignedQuantity() int {
	if m.Type == MovementReturn {
		return m.Quantity
	}
	return -m.Quantity
}

// SumByEquipment agrega o delta assinado dos lançamentos por equipamento.
// É a derivação canônica da quantidade atual: a célula quantidade da tabela
// de equipamentos é só cache desta soma.
func SumByEquipment(movs []*StockMovement) map[int64]int {
	totals := make(map[int64]int)
	for _, m := range movs {
		totals[m.EquipmentID] += m.SignedQuantity()
	}
	return totals
}

// ValidMovementType informa se o tipo é um dos três aceitos pelo ledger.
func ValidMovementType(t string) bool {
	switch t {
	case MovementExit, MovementReturn, MovementDisposal:
		return true
	}
	return false
}
