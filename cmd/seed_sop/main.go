// seed_sop genera el script SQL que carga el catálogo de procedimientos (categorías → fases → pasos),
// clientes y usuarios a partir de un archivo YAML.
//
// Uso: go run ./cmd/seed_sop [ruta/catalog.yaml]
// Por defecto busca catalog.yaml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/process-hub/internal/infrastructure/seedfile"
)

const outPath = "internal/infrastructure/postgres/migrations/002_seed_catalog.sql"

func main() {
	yamlPath := "catalog.yaml"
	if len(os.Args) > 1 {
		yamlPath = os.Args[1]
	}
	f, err := seedfile.Load(yamlPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Catálogo inválido:\n%v\n", err)
		os.Exit(1)
	}

	e := f.Entities(time.Now().UTC())
	for _, u := range e.Users {
		if strings.HasPrefix(u.Password, "$2") {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Hashear password de %s: %v\n", u.Email, err)
			os.Exit(1)
		}
		u.Password = string(hash)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear directorio: %v\n", err)
		os.Exit(1)
	}
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear %s: %v\n", outPath, err)
		os.Exit(1)
	}
	defer out.Close()

	if err := seedfile.WriteSQL(out, e); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito %s: %d categorías, %d fases, %d pasos, %d clientes, %d usuarios\n",
		outPath, len(e.Categories), len(e.Phases), len(e.Steps), len(e.Clients), len(e.Users))
}
