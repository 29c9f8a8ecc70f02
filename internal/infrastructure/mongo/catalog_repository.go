package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.PhaseRepository    = (*PhaseRepo)(nil)
	_ repository.StepRepository     = (*StepRepo)(nil)
)

// CategoryRepo categorías en process_categories.
type CategoryRepo struct{ coll *mongo.Collection }

// Create inserta; ErrDuplicate si el _id existe.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.coll.InsertOne(ctx, categoryDoc{
		ID: c.ID, Title: c.Title, Icon: c.Icon, Description: c.Description,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	})
	return insertErr("category", err)
}

// GetByID (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	var d categoryDoc
	ok, err := findOne(ctx, r.coll, bson.M{"_id": id}, &d)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity(), nil
}

// List todas las categorías.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	var docs []categoryDoc
	if err := findAll(ctx, r.coll, bson.M{}, &docs); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]*entity.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// Touch actualiza updatedAt.
func (r *CategoryRepo) Touch(ctx context.Context, id string, at time.Time) error {
	_, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"updatedAt": at}})
	if err != nil {
		return fmt.Errorf("touch category: %w", err)
	}
	return nil
}

// PhaseRepo fases en process_phases.
type PhaseRepo struct{ coll *mongo.Collection }

// Create inserta; el índice único (categoryId, phaseNumber) produce ErrDuplicate.
func (r *PhaseRepo) Create(ctx context.Context, p *entity.Phase) error {
	_, err := r.coll.InsertOne(ctx, phaseDoc{
		ID: p.ID, CategoryID: p.CategoryID, Title: p.Title, PhaseNumber: p.PhaseNumber,
		Description: p.Description, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	})
	return insertErr("phase", err)
}

// GetByID (nil, nil) si no existe.
func (r *PhaseRepo) GetByID(ctx context.Context, id string) (*entity.Phase, error) {
	return r.one(ctx, bson.M{"_id": id})
}

// GetByCategoryAndNumber busca la fase con ese número dentro de la categoría.
func (r *PhaseRepo) GetByCategoryAndNumber(ctx context.Context, categoryID string, number int) (*entity.Phase, error) {
	return r.one(ctx, bson.M{"categoryId": categoryID, "phaseNumber": number})
}

// List todas las fases.
func (r *PhaseRepo) List(ctx context.Context) ([]*entity.Phase, error) {
	return r.many(ctx, bson.M{})
}

// ListByCategory fases de una categoría.
func (r *PhaseRepo) ListByCategory(ctx context.Context, categoryID string) ([]*entity.Phase, error) {
	return r.many(ctx, bson.M{"categoryId": categoryID})
}

func (r *PhaseRepo) one(ctx context.Context, filter bson.M) (*entity.Phase, error) {
	var d phaseDoc
	ok, err := findOne(ctx, r.coll, filter, &d)
	if err != nil {
		return nil, fmt.Errorf("get phase: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity(), nil
}

func (r *PhaseRepo) many(ctx context.Context, filter bson.M) ([]*entity.Phase, error) {
	var docs []phaseDoc
	if err := findAll(ctx, r.coll, filter, &docs); err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	out := make([]*entity.Phase, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// StepRepo pasos en process_steps.
type StepRepo struct{ coll *mongo.Collection }

// Create inserta; el índice único (phaseId, code) o un _id repetido producen ErrDuplicate.
func (r *StepRepo) Create(ctx context.Context, st *entity.Step) error {
	_, err := r.coll.InsertOne(ctx, stepDoc{
		ID: st.ID, PhaseID: st.PhaseID, Code: st.Code, Title: st.Title, Content: st.Content,
		Icon: st.Icon, Status: string(st.Status), Notes: st.Notes,
		CreatedAt: st.CreatedAt, UpdatedAt: st.UpdatedAt,
	})
	return insertErr("step", err)
}

// GetByID (nil, nil) si no existe.
func (r *StepRepo) GetByID(ctx context.Context, id string) (*entity.Step, error) {
	return r.one(ctx, bson.M{"_id": id})
}

// GetByPhaseAndCode busca el paso con ese código dentro de la fase.
func (r *StepRepo) GetByPhaseAndCode(ctx context.Context, phaseID, code string) (*entity.Step, error) {
	return r.one(ctx, bson.M{"phaseId": phaseID, "code": code})
}

// List todos los pasos.
func (r *StepRepo) List(ctx context.Context) ([]*entity.Step, error) {
	return r.many(ctx, bson.M{})
}

// ListByPhases pasos de las fases indicadas.
func (r *StepRepo) ListByPhases(ctx context.Context, phaseIDs []string) ([]*entity.Step, error) {
	if len(phaseIDs) == 0 {
		return nil, nil
	}
	return r.many(ctx, bson.M{"phaseId": bson.M{"$in": phaseIDs}})
}

// Update aplica $set solo cuando algún campo difiere; así updatedAt no cambia en escrituras vacías.
func (r *StepRepo) Update(ctx context.Context, id string, patch repository.StepPatch) (bool, bool, error) {
	set := bson.M{}
	var differs bson.A
	add := func(field string, v *string) {
		if v == nil {
			return
		}
		set[field] = *v
		differs = append(differs, bson.M{field: bson.M{"$ne": *v}})
	}
	add("title", patch.Title)
	add("content", patch.Content)
	if patch.Status != nil {
		s := string(*patch.Status)
		add("status", &s)
	}
	add("notes", patch.Notes)

	if len(differs) > 0 {
		set["updatedAt"] = patch.UpdatedAt
		res, err := r.coll.UpdateOne(ctx, bson.M{"_id": id, "$or": differs}, bson.M{"$set": set})
		if err != nil {
			return false, false, fmt.Errorf("update step: %w", err)
		}
		if res.MatchedCount > 0 {
			return true, res.ModifiedCount > 0, nil
		}
	}
	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, false, fmt.Errorf("check step: %w", err)
	}
	return n > 0, false, nil
}

func (r *StepRepo) one(ctx context.Context, filter bson.M) (*entity.Step, error) {
	var d stepDoc
	ok, err := findOne(ctx, r.coll, filter, &d)
	if err != nil {
		return nil, fmt.Errorf("get step: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity(), nil
}

func (r *StepRepo) many(ctx context.Context, filter bson.M) ([]*entity.Step, error) {
	var docs []stepDoc
	if err := findAll(ctx, r.coll, filter, &docs); err != nil {
		return nil, fmt.Errorf("list steps: %w", err)
	}
	out := make([]*entity.Step, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}
