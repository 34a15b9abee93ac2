package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotFound es "suave": los lectores lo tratan como estado vacío, no como fallo.
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidBatchData  = errors.New("lotes inválidos: ninguna entrada con talla y cantidad positivas")
	ErrInvalidOrder      = errors.New("pedido inválido: falta empresa, tienda o items")
	ErrDuplicateCartItem = errors.New("el carrito tiene dos líneas con el mismo artículo")
	ErrStoreUnavailable  = errors.New("almacén de lotes no disponible")
)
