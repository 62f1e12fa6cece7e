package dto

import (
	"time"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
)

// RegisterEquipmentRequest entrada do cadastro de equipamento. MinStock nulo
// usa o default da tabela config.
type RegisterEquipmentRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Description     string `json:"description"`
	InitialQuantity int    `json:"initial_quantity"`
	MinStock        *int   `json:"min_stock"`
	SerialNumber    string `json:"serial_number"`
	RegisteredBy    string `json:"registered_by"`
}

// EditEquipmentRequest atualização parcial: só os campos não nulos mudam.
// Quantidade e status ficam de fora por construção — quantidade é derivada
// do ledger e status só muda pela baixa.
type EditEquipmentRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Description  *string `json:"description"`
	MinStock     *int    `json:"min_stock"`
	SerialNumber *string `json:"serial_number"`
}

// EquipmentResponse corpo de resposta de equipamento; Quantity é a
// quantidade derivada do ledger.
type EquipmentResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SerialNumber string    `json:"serial_number,omitempty"`
	Category     string    `json:"category"`
	Description  string    `json:"description,omitempty"`
	Quantity     int       `json:"quantity"`
	MinStock     int       `json:"min_stock"`
	LowStock     bool      `json:"low_stock"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

// FromEquipment monta a resposta a partir da entidade, com a quantidade
// derivada calculada pelo chamador.
func FromEquipment(eq *entity.Equipment, quantity int) EquipmentResponse {
	return EquipmentResponse{
		ID:           eq.ID,
		Name:         eq.Name,
		SerialNumber: eq.SerialNumber,
		Category:     eq.Category,
		Description:  eq.Description,
		Quantity:     quantity,
		MinStock:     eq.MinStock,
		LowStock:     quantity < eq.MinStock,
		Status:       eq.Status,
		RegisteredAt: eq.RegisteredAt,
	}
}

// OptionsResponse listas da tabela config para popular formulários.
type OptionsResponse struct {
	Destinations    []string `json:"destinations"`
	Categories      []string `json:"categories"`
	DefaultMinStock int      `json:"default_min_stock"`
}
