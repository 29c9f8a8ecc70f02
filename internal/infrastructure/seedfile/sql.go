package seedfile

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteSQL escribe sentencias INSERT idempotentes (ON CONFLICT DO NOTHING) para el esquema de PostgreSQL.
// Las contraseñas se escriben tal como llegan; el llamador decide si van hasheadas.
func WriteSQL(w io.Writer, e Entities) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "-- Generado por cmd/seed_sop. No editar a mano.")
	fmt.Fprintln(bw)

	for _, c := range e.Categories {
		fmt.Fprintf(bw, "INSERT INTO process_categories (id, title, icon, description, created_at, updated_at) VALUES (%s, %s, %s, %s, %s, %s) ON CONFLICT DO NOTHING;\n",
			quote(c.ID), quote(c.Title), quote(c.Icon), quote(c.Description), stamp(c.CreatedAt), stamp(c.UpdatedAt))
	}
	for _, p := range e.Phases {
		fmt.Fprintf(bw, "INSERT INTO process_phases (id, category_id, title, phase_number, description, created_at, updated_at) VALUES (%s, %s, %s, %d, %s, %s, %s) ON CONFLICT DO NOTHING;\n",
			quote(p.ID), quote(p.CategoryID), quote(p.Title), p.PhaseNumber, quote(p.Description), stamp(p.CreatedAt), stamp(p.UpdatedAt))
	}
	for _, s := range e.Steps {
		fmt.Fprintf(bw, "INSERT INTO process_steps (id, phase_id, code, title, content, icon, status, notes, created_at, updated_at) VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s) ON CONFLICT DO NOTHING;\n",
			quote(s.ID), quote(s.PhaseID), quote(s.Code), quote(s.Title), quote(s.Content), quote(s.Icon),
			quote(string(s.Status)), quote(s.Notes), stamp(s.CreatedAt), stamp(s.UpdatedAt))
	}
	for _, c := range e.Clients {
		fmt.Fprintf(bw, "INSERT INTO process_clients (id, name) VALUES (%s, %s) ON CONFLICT DO NOTHING;\n",
			quote(c.ID), quote(c.Name))
	}
	for _, u := range e.Users {
		fmt.Fprintf(bw, "INSERT INTO process_users (id, name, email, password, role, client_id) VALUES (%s, %s, %s, %s, %s, %s) ON CONFLICT DO NOTHING;\n",
			quote(u.ID), quote(u.Name), quote(u.Email), quote(u.Password), quote(u.Role), quote(u.ClientID))
	}
	return bw.Flush()
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func stamp(t time.Time) string {
	return quote(t.UTC().Format(time.RFC3339))
}
