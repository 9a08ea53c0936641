package timeentryRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"tidyhive/database"
	"tidyhive/models"
	"tidyhive/utils"
)

// MongoTimeEntryRepo implements TimeEntryRepository using MongoDB.
type MongoTimeEntryRepo struct {
	coll *mongo.Collection
}

// NewMongoTimeEntryRepo constructs a new instance of MongoTimeEntryRepo.
func NewMongoTimeEntryRepo() TimeEntryRepository {
	repo := &MongoTimeEntryRepo{
		coll: database.DB().Collection("time_entries"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create time entry indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates indexes for fields frequently used in queries.
func (repo *MongoTimeEntryRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "crew_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "clock_in", Value: 1}}},
	}
	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create time entry indexes: %w", err)
	}
	return nil
}

func (repo *MongoTimeEntryRepo) Create(ctx context.Context, entry *models.TimeEntry) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, entry)
	if err != nil {
		return fmt.Errorf("error creating time entry: %w", err)
	}
	return nil
}

// GetActiveByCrew returns the crew member's currently open entry, if any.
func (repo *MongoTimeEntryRepo) GetActiveByCrew(ctx context.Context, crewID string) (*models.TimeEntry, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var entry models.TimeEntry
	filter := bson.M{"crew_id": crewID, "status": models.TimeEntryStatusActive}
	err := repo.coll.FindOne(ctxWithTimeout, filter).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching active time entry: %w", err)
	}
	return &entry, nil
}

// Close completes an active entry with the given clock-out time.
func (repo *MongoTimeEntryRepo) Close(ctx context.Context, entryID string, clockOut time.Time) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": entryID, "status": models.TimeEntryStatusActive}
	update := bson.M{"$set": bson.M{
		"clock_out": clockOut,
		"status":    models.TimeEntryStatusCompleted,
	}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, filter, update)
	if err != nil {
		return fmt.Errorf("error closing time entry %s: %w", entryID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no active time entry %s", entryID)
	}
	return nil
}

func (repo *MongoTimeEntryRepo) ListActive(ctx context.Context) ([]models.TimeEntry, error) {
	return repo.find(ctx, bson.M{"status": models.TimeEntryStatusActive})
}

// ListCompletedInRange returns completed entries whose clock-in falls inside [from, to).
func (repo *MongoTimeEntryRepo) ListCompletedInRange(ctx context.Context, from, to time.Time) ([]models.TimeEntry, error) {
	return repo.find(ctx, bson.M{
		"status":   models.TimeEntryStatusCompleted,
		"clock_in": bson.M{"$gte": from, "$lt": to},
	})
}

func (repo *MongoTimeEntryRepo) find(ctx context.Context, filter bson.M) ([]models.TimeEntry, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching time entries: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var entries []models.TimeEntry
	if err := cursor.All(ctxWithTimeout, &entries); err != nil {
		return nil, fmt.Errorf("error decoding time entries: %w", err)
	}
	return entries, nil
}

// utilizationPipeline coerces per-entry minutes to an integer so rows decode
// into CrewUtilization's int field; entries are rarely exact minute multiples.
func utilizationPipeline(from, to time.Time) []bson.M {
	return []bson.M{
		{"$match": bson.M{
			"status":   models.TimeEntryStatusCompleted,
			"clock_in": bson.M{"$gte": from, "$lt": to},
		}},
		{"$project": bson.M{
			"crew_id": 1,
			"minutes": bson.M{"$toInt": bson.M{"$floor": bson.M{"$divide": []interface{}{
				bson.M{"$subtract": []interface{}{"$clock_out", "$clock_in"}},
				60000,
			}}}},
		}},
		{"$group": bson.M{
			"_id":            "$crew_id",
			"minutes_worked": bson.M{"$sum": "$minutes"},
			"jobs":           bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"minutes_worked": -1}},
	}
}

// UtilizationByCrew aggregates worked minutes per crew member for a period.
func (repo *MongoTimeEntryRepo) UtilizationByCrew(ctx context.Context, from, to time.Time) ([]models.CrewUtilization, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := repo.coll.Aggregate(ctxWithTimeout, utilizationPipeline(from, to))
	if err != nil {
		return nil, fmt.Errorf("utilization aggregation failed: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var rows []models.CrewUtilization
	if err := cursor.All(ctxWithTimeout, &rows); err != nil {
		return nil, fmt.Errorf("error decoding utilization rows: %w", err)
	}
	return rows, nil
}
