package dto

import (
	"time"

	"github.com/wpuckar/hexastock-api/internal/domain/entity"
)

// ComponentPayload um ativo dentro da transferência. Label identifica o
// componente dentro de um kit; opcional em item único.
type ComponentPayload struct {
	Label      string `json:"label,omitempty"`
	AssetTag   string `json:"asset_tag"`
	ServiceTag string `json:"service_tag,omitempty"`
}

// RecordTransferRequest entrada de uma transferência entre setores. Uma
// lista de componentes com mais de um item é um kit: tudo entra num único
// registro ou nada entra.
type RecordTransferRequest struct {
	EquipmentType string             `json:"equipment_type"`
	Components    []ComponentPayload `json:"components"`
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	Requester     string             `json:"requester"`
	Handler       string             `json:"handler"`
	Ticket        string             `json:"ticket"`
	Observation   string             `json:"observation"`
}

// TransferResponse corpo de resposta de uma transferência.
type TransferResponse struct {
	ID            int64              `json:"id"`
	Date          time.Time          `json:"date"`
	EquipmentType string             `json:"equipment_type"`
	Components    []ComponentPayload `json:"components"`
	Origin        string             `json:"origin"`
	Destination   string             `json:"destination"`
	Requester     string             `json:"requester,omitempty"`
	Handler       string             `json:"handler"`
	Ticket        string             `json:"ticket,omitempty"`
	Observation   string             `json:"observation,omitempty"`
	Status        string             `json:"status"`
}

// FromTransfer monta a resposta a partir da entidade.
func FromTransfer(t *entity.SectorTransfer) TransferResponse {
	comps := make([]ComponentPayload, 0, len(t.Components))
	for _, c := range t.Components {
		comps = append(comps, ComponentPayload{
			Label:      c.Label,
			AssetTag:   c.AssetTag,
			ServiceTag: c.ServiceTag,
		})
	}
	return TransferResponse{
		ID:            t.ID,
		Date:          t.Date,
		EquipmentType: t.EquipmentType,
		Components:    comps,
		Origin:        t.OriginSector,
		Destination:   t.DestinationSector,
		Requester:     t.Requester,
		Handler:       t.Handler,
		Ticket:        t.Ticket,
		Observation:   t.Observation,
		Status:        t.Status,
	}
}

// FromTransfers converte a lista preservando a ordem.
func FromTransfers(list []*entity.SectorTransfer) []TransferResponse {
	out := make([]TransferResponse, 0, len(list))
	for _, t := range list {
		out = append(out, FromTransfer(t))
	}
	return out
}

// TransferFilter filtro da listagem histórica; campos nulos/vazios não
// filtram e as datas são inclusivas.
type TransferFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
}
