// Package seedfile lee el catálogo inicial en YAML (categorías → fases → pasos, clientes y usuarios).
// Lo usan el comando seed_sop y el arranque del almacén en memoria.
//
// Formato:
//
//	categories:
//	  - id: seo
//	    title: SEO
//	    icon: Search
//	    phases:
//	      - number: 1
//	        title: Learning Process
//	        steps:
//	          - code: "1.1"
//	            title: Questions
//	clients:
//	  - name: Acme Corp
//	users:
//	  - email: admin@agency.test
//	    password: secret
//	    role: admin
package seedfile

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/process"
	"github.com/jhoicas/process-hub/pkg/slug"
)

// File catálogo completo.
type File struct {
	Categories []Category `yaml:"categories"`
	Clients    []Client   `yaml:"clients"`
	Users      []User     `yaml:"users"`
}

// Category categoría con sus fases.
type Category struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Icon        string  `yaml:"icon"`
	Description string  `yaml:"description"`
	Phases      []Phase `yaml:"phases"`
}

// Phase fase con sus pasos.
type Phase struct {
	Number      int    `yaml:"number"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step paso de una fase.
type Step struct {
	Code    string `yaml:"code"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
	Icon    string `yaml:"icon"`
	Status  string `yaml:"status"`
	Notes   string `yaml:"notes"`
}

// Client cliente.
type Client struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// User usuario.
type User struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
	ClientID string `yaml:"client_id"`
}

// Entities catálogo convertido a entidades de dominio, con IDs resueltos.
type Entities struct {
	Categories []*entity.Category
	Phases     []*entity.Phase
	Steps      []*entity.Step
	Clients    []*entity.Client
	Users      []*entity.User
}

// Load lee y valida un archivo YAML.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: leer %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodifica y valida el YAML.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("seed: decodificar YAML: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate aplica las mismas reglas que la API: número de fase único por categoría,
// código de paso único por fase y con formato numérico.
func (f *File) Validate() error {
	var errs []error
	catIDs := make(map[string]bool)
	for _, c := range f.Categories {
		id := c.resolvedID()
		if id == "" {
			errs = append(errs, fmt.Errorf("categoría sin id ni título utilizable"))
			continue
		}
		if catIDs[id] {
			errs = append(errs, fmt.Errorf("categoría %q duplicada", id))
		}
		catIDs[id] = true
		numbers := make(map[int]bool)
		for _, p := range c.Phases {
			if p.Number < 1 {
				errs = append(errs, fmt.Errorf("categoría %q: número de fase inválido %d", id, p.Number))
			}
			if numbers[p.Number] {
				errs = append(errs, fmt.Errorf("categoría %q: fase %d duplicada", id, p.Number))
			}
			numbers[p.Number] = true
			codes := make(map[string]bool)
			for _, s := range p.Steps {
				if !process.ValidCode(s.Code) {
					errs = append(errs, fmt.Errorf("categoría %q fase %d: código inválido %q", id, p.Number, s.Code))
				}
				if codes[s.Code] {
					errs = append(errs, fmt.Errorf("categoría %q fase %d: código %q duplicado", id, p.Number, s.Code))
				}
				codes[s.Code] = true
				if s.Status != "" && !entity.StepStatus(s.Status).Valid() {
					errs = append(errs, fmt.Errorf("paso %q: status inválido %q", s.Code, s.Status))
				}
			}
		}
	}
	for _, u := range f.Users {
		if strings.TrimSpace(u.Email) == "" {
			errs = append(errs, fmt.Errorf("usuario sin email"))
		}
	}
	return errors.Join(errs...)
}

func (c Category) resolvedID() string {
	if c.ID != "" {
		return c.ID
	}
	return slug.Make(c.Title)
}

// Entities convierte el archivo en entidades. Los IDs siguen las convenciones de la API:
// fase "<categoría>-p<n>", paso = código (o "<fase>-<código>" si el código ya se usó).
func (f *File) Entities(now time.Time) Entities {
	var out Entities
	stepIDs := make(map[string]bool)
	for _, c := range f.Categories {
		catID := c.resolvedID()
		out.Categories = append(out.Categories, &entity.Category{
			ID: catID, Title: c.Title, Icon: c.Icon, Description: c.Description,
			CreatedAt: now, UpdatedAt: now,
		})
		for _, p := range c.Phases {
			phaseID := fmt.Sprintf("%s-p%d", catID, p.Number)
			out.Phases = append(out.Phases, &entity.Phase{
				ID: phaseID, CategoryID: catID, Title: p.Title, PhaseNumber: p.Number,
				Description: p.Description, CreatedAt: now, UpdatedAt: now,
			})
			for _, s := range p.Steps {
				id := s.Code
				if stepIDs[id] {
					id = phaseID + "-" + s.Code
				}
				stepIDs[id] = true
				status := entity.StepStatus(s.Status)
				if status == "" {
					status = entity.StepPending
				}
				out.Steps = append(out.Steps, &entity.Step{
					ID: id, PhaseID: phaseID, Code: s.Code, Title: s.Title, Content: s.Content,
					Icon: s.Icon, Status: status, Notes: s.Notes, CreatedAt: now, UpdatedAt: now,
				})
			}
		}
	}
	for _, c := range f.Clients {
		id := c.ID
		if id == "" {
			id = slug.Make(c.Name)
		}
		out.Clients = append(out.Clients, &entity.Client{ID: id, Name: c.Name})
	}
	for _, u := range f.Users {
		id := u.ID
		if id == "" {
			id = slug.Make(u.Email)
		}
		role := u.Role
		if role == "" {
			role = entity.RoleMember
		}
		out.Users = append(out.Users, &entity.User{
			ID: id, Name: u.Name, Email: u.Email, Password: u.Password, Role: role, ClientID: u.ClientID,
		})
	}
	return out
}
