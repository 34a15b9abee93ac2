package batches

// KeyResolver traduce el nombre legible de una empresa a su clave de
// almacenamiento. El almacén de lotes no necesita nada más del repositorio de
// empresas, así que solo pide esto.
type KeyResolver interface {
	ResolveKey(name string) (string, error)
}
