package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya existe")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrInvalidRole           = errors.New("rol inválido")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrSelfDelete            = errors.New("un usuario no puede eliminar su propia cuenta")
	ErrNegativeRemaining     = errors.New("la cantidad vendida supera la cantidad en stock")
)
