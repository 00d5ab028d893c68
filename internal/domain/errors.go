package domain

import "github.com/cockroachdb/errors"

// Errores de dominio. Las capas inferiores los marcan con errors.Mark para que
// los handlers los reconozcan con errors.Is sin perder el mensaje original.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrRenderFailed = errors.New("no se pudo generar el documento")
)

// InvalidInputf crea un error de validación con detalle, marcado como ErrInvalidInput.
func InvalidInputf(format string, args ...any) error {
	return errors.Mark(errors.Newf(format, args...), ErrInvalidInput)
}
