package domain

import "errors"

// Erros de domínio (sem dependências externas). As operações embrulham estes
// sentinelas com fmt.Errorf e os chamadores distinguem com errors.Is.
var (
	ErrValidation        = errors.New("entrada inválida")
	ErrNotFound          = errors.New("registro não encontrado")
	ErrInvalidState      = errors.New("operação não permitida no estado atual")
	ErrInsufficientStock = errors.New("estoque insuficiente")
	ErrConflict          = errors.New("conflito de escrita concorrente")
	ErrGateway           = errors.New("falha de acesso ao armazenamento")
)
