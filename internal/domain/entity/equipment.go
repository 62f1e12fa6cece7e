package entity

import "time"

// Status de um equipamento no registro.
const (
	EquipmentActive  = "Ativo"
	EquipmentRetired = "Baixado"
)

// Equipment representa um item de inventário registrado na tabela de
// equipamentos. Quantity é a célula de exibição: a quantidade real é sempre
// derivada do ledger de movimentações (ver caso de uso do registro).
type Equipment struct {
	ID           int64
	Name         string
	SerialNumber string // SKU/nº de série, opcional; único quando presente
	Description  string
	Quantity     int // cache validado contra o ledger
	Status       string
	RegisteredAt time.Time
	MinStock     int
	Category     string
}

// Active indica se o equipamento aceita novas movimentações.
func (e *Equipment) Active() bool {
	return e.Status == EquipmentActive
}
