package entity

import "time"

// Company es una empresa sincronizada desde Tally. Key es la clave normalizada
// bajo la que viven sus documentos; DisplayName es el nombre legible.
type Company struct {
	Key          string     `json:"key"`
	DisplayName  string     `json:"companyName"`
	LastSyncedAt *time.Time `json:"lastSyncedAt"`
}
