package authenticating

import "errors"

var (
	ErrInvalidToken   = errors.New("token inválido")
	ErrExpiredToken   = errors.New("token expirado")
	ErrMissingSubject = errors.New("nome do operador é obrigatório")
	ErrUnknownRole    = errors.New("papel desconhecido")
)
