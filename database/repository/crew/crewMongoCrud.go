package crewRepo

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

// MongoCrewRepo implements CrewRepository using MongoDB.
type MongoCrewRepo struct {
	coll *mongo.Collection
}

// NewMongoCrewRepo constructs a new instance of MongoCrewRepo.
func NewMongoCrewRepo() CrewRepository {
	repo := &MongoCrewRepo{
		coll: database.DB().Collection("crew_members"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create crew indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates indexes for fields frequently used in queries.
func (repo *MongoCrewRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create crew indexes: %w", err)
	}
	return nil
}

func (repo *MongoCrewRepo) Create(ctx context.Context, member *models.CrewMember) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, member)
	if err != nil {
		return fmt.Errorf("error creating crew member: %w", err)
	}
	return nil
}

func (repo *MongoCrewRepo) GetByID(ctx context.Context, crewID string) (*models.CrewMember, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.CrewMember
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": crewID}).Decode(&member); err != nil {
		return nil, fmt.Errorf("crew member not found: %w", err)
	}
	return &member, nil
}

func (repo *MongoCrewRepo) GetByEmail(ctx context.Context, email string) (*models.CrewMember, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var member models.CrewMember
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"email": email}).Decode(&member); err != nil {
		return nil, fmt.Errorf("crew member not found: %w", err)
	}
	return &member, nil
}

func (repo *MongoCrewRepo) List(ctx context.Context) ([]models.CrewMember, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := repo.coll.Find(ctxWithTimeout, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("error fetching crew members: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var members []models.CrewMember
	if err := cursor.All(ctxWithTimeout, &members); err != nil {
		return nil, fmt.Errorf("error decoding crew members: %w", err)
	}
	return members, nil
}

// SetStatus updates the live crew status shown on the dispatch board.
func (repo *MongoCrewRepo) SetStatus(ctx context.Context, crewID, status string) error {
	return repo.set(ctx, crewID, bson.M{"status": status})
}

// SetLocation stores the latest GPS fix from the mobile app.
func (repo *MongoCrewRepo) SetLocation(ctx context.Context, crewID string, loc *models.GeoLocation) error {
	return repo.set(ctx, crewID, bson.M{"location": loc})
}

func (repo *MongoCrewRepo) SetFCMToken(ctx context.Context, crewID, token string) error {
	return repo.set(ctx, crewID, bson.M{"fcm_token": token})
}

func (repo *MongoCrewRepo) Update(ctx context.Context, crewID string, member *models.CrewMember) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	member.UpdatedAt = time.Now()
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": crewID}, bson.M{"$set": member})
	if err != nil {
		return fmt.Errorf("error updating crew member %s: %w", crewID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("crew member %s not found", crewID)
	}
	return nil
}

func (repo *MongoCrewRepo) set(ctx context.Context, crewID string, fields bson.M) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": crewID}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("error updating crew member %s: %w", crewID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("crew member %s not found", crewID)
	}
	return nil
}
