// Package rowstore define o contrato do gateway de persistência: quatro
// tabelas nomeadas de linhas, acessadas apenas por leitura integral, append e
// update de linha. Nenhum backend pode ser assumido capaz de filtrar no
// servidor, de transacionar ou de impor integridade referencial — toda a
// lógica de negócio fica acima, na camada tipada (internal/infrastructure/sheet).
package rowstore

import "context"

// Row é uma linha da tabela como células textuais, coluna→valor (o modelo da
// planilha compartilhada de origem). A coerção de tipos acontece na leitura,
// pela camada tipada.
type Row map[string]string

// TableStore é o gateway de persistência. Update aceita uma guarda de
// concorrência otimista: um conjunto de colunas cujos valores atuais devem
// coincidir com os esperados, senão a escrita falha com domain.ErrConflict.
type TableStore interface {
	// ReadAll devolve todas as linhas da tabela, na ordem de inserção.
	ReadAll(ctx context.Context, table string) ([]Row, error)

	// Append acrescenta uma linha ao fim da tabela.
	Append(ctx context.Context, table string, row Row) error

	// Update reescreve as colunas presentes em row na linha cujo idColumn
	// vale id. Devolve domain.ErrNotFound se a linha não existe e
	// domain.ErrConflict se alguma coluna da guarda divergiu.
	Update(ctx context.Context, table, idColumn, id string, row, guard Row) error
}

// Clone copia a linha; os backends devolvem cópias para que o chamador nunca
// compartilhe o mapa interno.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
