package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/process-hub/internal/domain/entity"
)

// docID lee _id escrito como string o como ObjectID (documentos insertados sin _id explícito).
func docID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case primitive.ObjectID:
		return id.Hex()
	case nil:
		return ""
	default:
		return fmt.Sprint(id)
	}
}

type categoryDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Icon        string    `bson:"icon,omitempty"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d categoryDoc) entity() *entity.Category {
	return &entity.Category{ID: d.ID, Title: d.Title, Icon: d.Icon, Description: d.Description, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt}
}

type phaseDoc struct {
	ID          string    `bson:"_id"`
	CategoryID  string    `bson:"categoryId"`
	Title       string    `bson:"title"`
	PhaseNumber int       `bson:"phaseNumber"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d phaseDoc) entity() *entity.Phase {
	return &entity.Phase{
		ID: d.ID, CategoryID: d.CategoryID, Title: d.Title, PhaseNumber: d.PhaseNumber,
		Description: d.Description, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type stepDoc struct {
	ID        string    `bson:"_id"`
	PhaseID   string    `bson:"phaseId"`
	Code      string    `bson:"code"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Icon      string    `bson:"icon,omitempty"`
	Status    string    `bson:"status"`
	Notes     string    `bson:"notes"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d stepDoc) entity() *entity.Step {
	status := entity.StepStatus(d.Status)
	if status == "" {
		status = entity.StepPending
	}
	return &entity.Step{
		ID: d.ID, PhaseID: d.PhaseID, Code: d.Code, Title: d.Title, Content: d.Content, Icon: d.Icon,
		Status: status, Notes: d.Notes, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

type clientDoc struct {
	ID   any    `bson:"_id"`
	Name string `bson:"name"`
}

type timeLogDoc struct {
	ID            any       `bson:"_id"`
	UserID        string    `bson:"userId"`
	ClientID      string    `bson:"clientId,omitempty"`
	CategoryID    string    `bson:"categoryId"`
	CategoryTitle string    `bson:"categoryTitle"`
	PhaseID       string    `bson:"phaseId"`
	PhaseTitle    string    `bson:"phaseTitle"`
	StepID        string    `bson:"stepId"`
	StepTitle     string    `bson:"stepTitle"`
	StepCode      string    `bson:"stepCode"`
	Seconds       int       `bson:"seconds"`
	Date          string    `bson:"date"`
	CreatedAt     time.Time `bson:"createdAt"`
}

func newTimeLogDoc(e *entity.TimeLogEntry) timeLogDoc {
	return timeLogDoc{
		ID: e.ID, UserID: e.UserID, ClientID: e.ClientID,
		CategoryID: e.CategoryID, CategoryTitle: e.CategoryTitle,
		PhaseID: e.PhaseID, PhaseTitle: e.PhaseTitle,
		StepID: e.StepID, StepTitle: e.StepTitle, StepCode: e.StepCode,
		Seconds: e.Seconds, Date: e.Date, CreatedAt: e.CreatedAt,
	}
}

func (d timeLogDoc) entity() *entity.TimeLogEntry {
	return &entity.TimeLogEntry{
		ID: docID(d.ID), UserID: d.UserID, ClientID: d.ClientID,
		CategoryID: d.CategoryID, CategoryTitle: d.CategoryTitle,
		PhaseID: d.PhaseID, PhaseTitle: d.PhaseTitle,
		StepID: d.StepID, StepTitle: d.StepTitle, StepCode: d.StepCode,
		Seconds: d.Seconds, Date: d.Date, CreatedAt: d.CreatedAt,
	}
}

type userDoc struct {
	ID       any    `bson:"_id"`
	Name     string `bson:"name"`
	Email    string `bson:"email"`
	Password string `bson:"password"`
	Role     string `bson:"role"`
	ClientID string `bson:"clientId,omitempty"`
}

func (d clientDoc) entity() *entity.Client {
	return &entity.Client{ID: docID(d.ID), Name: d.Name}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{ID: docID(d.ID), Name: d.Name, Email: d.Email, Password: d.Password, Role: d.Role, ClientID: d.ClientID}
}
