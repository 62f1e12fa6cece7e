package rowstore

// Nomes das quatro tabelas lógicas, herdados das abas da planilha original.
const (
	TableEquipment       = "equipamentos"
	TableMovements       = "movimentacoes"
	TableSectorMovements = "movimentacoes_setores"
	TableConfig          = "config"
)

// Colunas fixas de cada tabela, na ordem da planilha. Os backends SQL criam
// as tabelas com exatamente estas colunas, todas textuais.
var Columns = map[string][]string{
	TableEquipment: {
		"id", "nome", "numero_serie", "descricao", "quantidade",
		"status", "data_cadastro", "estoque_minimo", "categoria",
	},
	TableMovements: {
		"id_movimentacao", "id_equipamento_fk", "tipo_movimentacao",
		"quantidade_movida", "destino_origem", "solicitante", "chamado",
		"responsavel_movimentacao", "data_movimentacao", "motivo_laudo",
	},
	TableSectorMovements: {
		"id", "data_movimentacao", "responsavel", "tipo_equipamento",
		"patrimonio", "servicetag", "setor_origem", "setor_destino",
		"observacao", "chamado", "solicitante", "status_regularizacao",
	},
	TableConfig: {
		"parametro", "valor",
	},
}

// KnownTable informa se o nome corresponde a uma das quatro tabelas.
func KnownTable(table string) bool {
	_, ok := Columns[table]
	return ok
}
