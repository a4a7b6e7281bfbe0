package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrDuplicate    = errors.New("registro duplicado")

	// Rechazos del libro de conteo: ninguno altera el estado del libro.
	ErrUnknownProduct  = errors.New("código do produto inválido ou não encontrado")
	ErrEmptyLot        = errors.New("lote não pode estar vazio")
	ErrInvalidQuantity = errors.New("quantidade deve ser um inteiro positivo")
	ErrEmptyHistory    = errors.New("não há lançamentos para corrigir")
)
