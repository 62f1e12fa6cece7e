package entity

import "strings"

// Tipos de equipamento que sempre exigem ServiceTag nas transferências entre
// setores, independentemente da configuração.
var baseTagRequired = []string{"Desktop", "Monitor"}

// ConfigSnapshot é a fotografia imutável da tabela config, carregada no
// início de cada operação para validar campos de texto livre. Listas vazias
// desativam a validação correspondente (planilha sem config continua usável).
type ConfigSnapshot struct {
	Destinations     []string // parâmetro "destino": setores permitidos
	Categories       []string // parâmetro "categoria"
	DefaultMinStock  int      // parâmetro "default_estoque_minimo"
	TagRequiredTypes []string // parâmetro "tipo_tag_obrigatoria", além de Desktop/Monitor
}

// RequiresServiceTag decide se o tipo de equipamento obriga ServiceTag em
// cada componente de uma transferência.
func (c *ConfigSnapshot) RequiresServiceTag(equipmentType string) bool {
	for _, t := range baseTagRequired {
		if strings.EqualFold(t, equipmentType) {
			return true
		}
	}
	for _, t := range c.TagRequiredTypes {
		if strings.EqualFold(t, equipmentType) {
			return true
		}
	}
	return false
}

// ValidDestination aceita qualquer setor quando a lista não foi configurada.
func (c *ConfigSnapshot) ValidDestination(sector string) bool {
	return containsFold(c.Destinations, sector)
}

// ValidCategory aceita qualquer categoria quando a lista não foi configurada.
func (c *ConfigSnapshot) ValidCategory(category string) bool {
	return containsFold(c.Categories, category)
}

func containsFold(list []string, v string) bool {
	if len(list) == 0 {
		return true
	}
	for _, item := range list {
		if strings.EqualFold(item, v) {
			return true
		}
	}
	return false
}
