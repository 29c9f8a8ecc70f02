package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/process-hub/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa TabularSource.
var _ ports.TabularSource = (*Client)(nil)

// maxPages corta el recorrido si el proveedor devolviera offsets sin fin.
const maxPages = 1000

// Client adaptador de la API REST de Airtable: lista todos los registros de una tabla.
type Client struct {
	baseURL    string
	token      string
	baseID     string
	tableID    string
	httpClient *http.Client
}

// NewClient construye el adaptador. apiURL suele ser "https://api.airtable.com/v0".
func NewClient(apiURL, token, baseID, tableID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(apiURL, "/"),
		token:   token,
		baseID:  baseID,
		tableID: tableID,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type listResponse struct {
	Records []json.RawMessage `json:"records"`
	Offset  string            `json:"offset"`
}

// FetchAll pide página tras página siguiendo el cursor offset hasta que no venga más.
func (c *Client) FetchAll(ctx context.Context) ([]json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(c.tableID))
	all := make([]json.RawMessage, 0)
	offset := ""
	for page := 0; page < maxPages; page++ {
		resp, err := c.page(ctx, endpoint, offset)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Records...)
		if resp.Offset == "" {
			log.Debug().Int("pages", page+1).Int("records", len(all)).Msg("airtable: tabla leída")
			return all, nil
		}
		offset = resp.Offset
	}
	return nil, fmt.Errorf("airtable: más de %d páginas", maxPages)
}

func (c *Client) page(ctx context.Context, endpoint, offset string) (*listResponse, error) {
	u := endpoint
	if offset != "" {
		u += "?" + url.Values{"offset": {offset}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("airtable: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("airtable: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("airtable: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
		return nil, fmt.Errorf("Airtable API error: %d", resp.StatusCode)
	}

	var out listResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("airtable: deserializar respuesta: %w", err)
	}
	return &out, nil
}
