// Package cart implementa el área de preparación de pedidos del lado cliente:
// estado puro en memoria, propiedad de la sesión de UI, sin contraparte en el
// servidor hasta que se envía.
package cart

import (
	"sync"

	"github.com/cochin-traders/trader-api/internal/domain"
	"github.com/cochin-traders/trader-api/internal/domain/entity"
)

// State es el estado del carrito: Empty → Populated → Submitting →
// (éxito → Empty | fallo → Populated, conservando las líneas para reintentar).
type State int

const (
	StateEmpty State = iota
	StatePopulated
	StateSubmitting
)

// Line es una línea mutable del carrito. ID es la identidad (la UI añade
// sufijos de timestamp, por eso puede divergir del nombre); Name es el nombre
// legible del artículo con el que se construye la OrderLine.
type Line struct {
	ID     string
	Name   string
	Pieces map[int]int
}

// Cart acumula líneas antes del envío. Seguro para uso concurrente, aunque en
// la práctica lo muta un único hilo de UI.
type Cart struct {
	mu         sync.Mutex
	lines      []Line
	submitting bool
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{}
}

// Add incorpora una línea. Si ya existe una con la misma identidad, las piezas
// se funden clave a clave y la entrada nueva pisa a la vieja por talla (última
// escritura gana, no se suman): así se corrige una cantidad re-añadiendo el
// artículo. Si no, se añade al final.
func (c *Cart) Add(line Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.lines {
		if existing.ID == line.ID {
			merged := make(map[int]int, len(existing.Pieces)+len(line.Pieces))
			for size, qty := range existing.Pieces {
				merged[size] = qty
			}
			for size, qty := range line.Pieces {
				merged[size] = qty
			}
			c.lines[i].Pieces = merged
			return
		}
	}
	c.lines = append(c.lines, line)
}

// Remove elimina la línea con esa identidad; no-op si no existe.
func (c *Cart) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, line := range c.lines {
		if line.ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear vacía el carrito; se invoca tras un envío exitoso.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines devuelve una instantánea de las líneas actuales.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// HasDuplicateName detecta dos líneas distintas con el mismo nombre legible
// (puede pasar cuando las identidades difieren por sufijo de timestamp pero el
// nombre colisiona). Es la salvaguarda contra pedir dos veces el mismo
// artículo bajo dos entradas.
func (c *Cart) HasDuplicateName() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasDuplicateLocked()
}

func (c *Cart) hasDuplicateLocked() bool {
	seen := make(map[string]struct{}, len(c.lines))
	for _, line := range c.lines {
		if _, ok := seen[line.Name]; ok {
			return true
		}
		seen[line.Name] = struct{}{}
	}
	return false
}

// State devuelve el estado actual.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting {
		return StateSubmitting
	}
	if len(c.lines) == 0 {
		return StateEmpty
	}
	return StatePopulated
}

// BeginSubmit pasa a Submitting y devuelve las líneas como OrderLine listas
// para el procesador. Bloquea el envío si el carrito está vacío, si ya hay un
// envío en curso o si hay nombres duplicados sin resolver.
func (c *Cart) BeginSubmit() ([]entity.OrderLine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.submitting || len(c.lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if c.hasDuplicateLocked() {
		return nil, domain.ErrDuplicateCartItem
	}
	c.submitting = true

	items := make([]entity.OrderLine, 0, len(c.lines))
	for _, line := range c.lines {
		pieces := make(map[int]int, len(line.Pieces))
		for size, qty := range line.Pieces {
			pieces[size] = qty
		}
		items = append(items, entity.OrderLine{StockItem: line.Name, Pieces: pieces})
	}
	return items, nil
}

// FinishSubmit cierra el envío en curso: con éxito vacía el carrito; con fallo
// conserva las líneas para que el usuario reintente.
func (c *Cart) FinishSubmit(success bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if success {
		c.lines = nil
	}
}
