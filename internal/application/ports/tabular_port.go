package ports

import (
	"context"
	"encoding/json"
)

// TabularSource puerto de salida hacia la tabla externa (Airtable u otro proveedor).
// El adaptador recorre todas las páginas y devuelve los registros tal como llegan.
type TabularSource interface {
	FetchAll(ctx context.Context) ([]json.RawMessage, error)
}
