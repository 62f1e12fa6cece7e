package entity

import "time"

// Status de regularização de uma transferência entre setores.
const (
	TransferPending     = "Pendente"
	TransferRegularized = "Regularizado"
)

// Component é um ativo individual dentro de uma transferência. Um kit agrega
// vários componentes num único registro; cada um é validado separadamente.
type Component struct {
	Label      string // rótulo dentro do kit ("Monitor 1", "Desktop"...); vazio em item único
	AssetTag   string // patrimônio, sempre obrigatório
	ServiceTag string // obrigatório conforme o tipo de equipamento
}

// SectorTransfer registra a movimentação de ativos já implantados entre
// setores. Não toca quantidade de estoque: é trilha de auditoria.
type SectorTransfer struct {
	ID                int64
	Date              time.Time
	Handler           string
	EquipmentType     string
	Components        []Component
	OriginSector      string
	DestinationSector string
	Observation       string
	Ticket            string
	Requester         string
	Status            string
}

// Pending indica se a transferência ainda aguarda regularização.
func (t *SectorTransfer) Pending() bool {
	return t.Status != TransferRegularized
}
