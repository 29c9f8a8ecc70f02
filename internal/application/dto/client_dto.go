package dto

import "encoding/json"

// ClientResponse cliente de la agencia.
type ClientResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateClientRequest entrada para crear un cliente (solo admin).
type CreateClientRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RecordsResponse registros de la tabla externa, sin transformar.
type RecordsResponse struct {
	Records []json.RawMessage `json:"records"`
}
