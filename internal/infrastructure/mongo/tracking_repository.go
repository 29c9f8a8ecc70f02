package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/process-hub/internal/domain/entity"
	"github.com/jhoicas/process-hub/internal/domain/repository"
)

var (
	_ repository.ClientRepository  = (*ClientRepo)(nil)
	_ repository.TimeLogRepository = (*TimeLogRepo)(nil)
	_ repository.UserRepository    = (*UserRepo)(nil)
)

// ClientRepo clientes en process_clients.
type ClientRepo struct{ coll *mongo.Collection }

// Create inserta; ErrDuplicate si el _id existe.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	_, err := r.coll.InsertOne(ctx, clientDoc{ID: c.ID, Name: c.Name})
	return insertErr("client", err)
}

// GetByID (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var d clientDoc
	ok, err := findOne(ctx, r.coll, idFilter(id), &d)
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity(), nil
}

// List ordenados por nombre.
func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	var docs []clientDoc
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	if err := findAll(ctx, r.coll, bson.M{}, &docs, opts); err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	out := make([]*entity.Client, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

// TimeLogRepo registros en process_time_logs.
type TimeLogRepo struct{ coll *mongo.Collection }

// Append inserta un registro.
func (r *TimeLogRepo) Append(ctx context.Context, e *entity.TimeLogEntry) error {
	_, err := r.coll.InsertOne(ctx, newTimeLogDoc(e))
	return insertErr("time log", err)
}

// List filtra por usuario y rango de fechas (strings YYYY-MM-DD), más recientes primero.
func (r *TimeLogRepo) List(ctx context.Context, f repository.TimeLogFilter) ([]*entity.TimeLogEntry, error) {
	var docs []timeLogDoc
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if err := findAll(ctx, r.coll, timeLogQuery(f), &docs, opts); err != nil {
		return nil, fmt.Errorf("list time logs: %w", err)
	}
	out := make([]*entity.TimeLogEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.entity())
	}
	return out, nil
}

func timeLogQuery(f repository.TimeLogFilter) bson.M {
	q := bson.M{}
	if f.UserID != "" {
		q["userId"] = f.UserID
	}
	if f.StartDate != "" || f.EndDate != "" {
		date := bson.M{}
		if f.StartDate != "" {
			date["$gte"] = f.StartDate
		}
		if f.EndDate != "" {
			date["$lte"] = f.EndDate
		}
		q["date"] = date
	}
	return q
}

// UserRepo usuarios en process_users.
type UserRepo struct{ coll *mongo.Collection }

// FindByEmail búsqueda exacta sin distinguir mayúsculas; (nil, nil) si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var d userDoc
	filter := bson.M{"email": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(email) + "$", Options: "i"}}
	ok, err := findOne(ctx, r.coll, filter, &d)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return d.entity(), nil
}

// idFilter acepta IDs string o el hex de un ObjectID.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{id, oid}}}
	}
	return bson.M{"_id": id}
}
