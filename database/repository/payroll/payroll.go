package payrollRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tidyhive/database"
	"tidyhive/models"
)

// PayrollRepository abstracts payroll run persistence.
type PayrollRepository interface {
	Create(ctx context.Context, run *models.PayrollRun) error
	List(ctx context.Context, limit int64) ([]models.PayrollRun, error)
	ListByCrew(ctx context.Context, crewID string) ([]models.PayrollRun, error)
}

// MongoPayrollRepo implements PayrollRepository using MongoDB.
type MongoPayrollRepo struct {
	coll *mongo.Collection
}

// NewMongoPayrollRepo constructs a new instance of MongoPayrollRepo.
func NewMongoPayrollRepo() PayrollRepository {
	return &MongoPayrollRepo{
		coll: database.DB().Collection("payroll_runs"),
	}
}

func (repo *MongoPayrollRepo) Create(ctx context.Context, run *models.PayrollRun) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, run)
	if err != nil {
		return fmt.Errorf("error saving payroll run: %w", err)
	}
	return nil
}

func (repo *MongoPayrollRepo) List(ctx context.Context, limit int64) ([]models.PayrollRun, error) {
	return repo.find(ctx, bson.M{}, limit)
}

// ListByCrew returns runs that include a pay item for the given crew member.
func (repo *MongoPayrollRepo) ListByCrew(ctx context.Context, crewID string) ([]models.PayrollRun, error) {
	return repo.find(ctx, bson.M{"items.crew_id": crewID}, 0)
}

func (repo *MongoPayrollRepo) find(ctx context.Context, filter bson.M, limit int64) ([]models.PayrollRun, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching payroll runs: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var runs []models.PayrollRun
	if err := cursor.All(ctxWithTimeout, &runs); err != nil {
		return nil, fmt.Errorf("error decoding payroll runs: %w", err)
	}
	return runs, nil
}
