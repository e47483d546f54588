package model

import "errors"

// Erros padrão da aplicação
var (
	// Pipeline de geração de conteúdo
	ErrInvalidRequest      = errors.New("requisição inválida: dados de domínio ausentes ou malformados")
	ErrUpstreamTransient   = errors.New("falha transitória do gerador de conteúdo")
	ErrSchemaViolation     = errors.New("resposta do gerador viola o contrato de schema")
	ErrUpstreamUnavailable = errors.New("gerador de conteúdo indisponível")

	// Progressão
	ErrInvalidReward = errors.New("recompensa inválida: valores negativos violam o contrato do calculador")

	// Recursos
	ErrProfileNotFound  = errors.New("perfil de jogador não encontrado")
	ErrShopItemNotFound = errors.New("item da loja não encontrado")

	// Erros gerais de requisição/servidor
	ErrInternalServer = errors.New("internal server error")
)
