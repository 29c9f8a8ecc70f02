// Package mongo implementa los puertos de persistencia sobre MongoDB, usando las colecciones
// process_* con el ID de cada entidad en _id.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/process-hub/internal/domain"
	"github.com/jhoicas/process-hub/pkg/config"
)

// Nombres de colección.
const (
	collCategories = "process_categories"
	collPhases     = "process_phases"
	collSteps      = "process_steps"
	collClients    = "process_clients"
	collTimeLogs   = "process_time_logs"
	collUsers      = "process_users"
)

// Store conexión compartida por los repositorios.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore conecta, verifica con ping y asegura los índices únicos.
func NewStore(ctx context.Context, cfg config.MongoConfig) (*Store, error) {
	if cfg.URI == "" || cfg.Database == "" {
		return nil, fmt.Errorf("%w: MongoDB", domain.ErrNotConfigured)
	}
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("conectar MongoDB: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	s := &Store{client: client, db: client.Database(cfg.Database)}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// Close cierra la conexión.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string]mongo.IndexModel{
		collPhases:   {Keys: bson.D{{Key: "categoryId", Value: 1}, {Key: "phaseNumber", Value: 1}}, Options: unique},
		collSteps:    {Keys: bson.D{{Key: "phaseId", Value: 1}, {Key: "code", Value: 1}}, Options: unique},
		collTimeLogs: {Keys: bson.D{{Key: "date", Value: 1}, {Key: "userId", Value: 1}}},
	}
	for coll, model := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("índice %s: %w", coll, err)
		}
	}
	return nil
}

// Repositorios sobre la misma base.
func (s *Store) Categories() *CategoryRepo {
	return &CategoryRepo{coll: s.db.Collection(collCategories)}
}
func (s *Store) Phases() *PhaseRepo     { return &PhaseRepo{coll: s.db.Collection(collPhases)} }
func (s *Store) Steps() *StepRepo       { return &StepRepo{coll: s.db.Collection(collSteps)} }
func (s *Store) Clients() *ClientRepo   { return &ClientRepo{coll: s.db.Collection(collClients)} }
func (s *Store) TimeLogs() *TimeLogRepo { return &TimeLogRepo{coll: s.db.Collection(collTimeLogs)} }
func (s *Store) Users() *UserRepo       { return &UserRepo{coll: s.db.Collection(collUsers)} }

// insertErr traduce claves duplicadas a domain.ErrDuplicate.
func insertErr(what string, err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return fmt.Errorf("insert %s: %w", what, err)
}

// findOne decodifica un documento; (false, nil) si no existe.
func findOne(ctx context.Context, coll *mongo.Collection, filter any, out any, opts ...*options.FindOneOptions) (bool, error) {
	err := coll.FindOne(ctx, filter, opts...).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func findAll(ctx context.Context, coll *mongo.Collection, filter any, out any, opts ...*options.FindOptions) error {
	cur, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
