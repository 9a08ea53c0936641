package customerRepo

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

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

// NewMongoCustomerRepo constructs a new instance of MongoCustomerRepo.
func NewMongoCustomerRepo() CustomerRepository {
	repo := &MongoCustomerRepo{
		coll: database.DB().Collection("customers"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create customer indexes", zap.Error(err))
	}
	return repo
}

// EnsureIndexes creates indexes for fields frequently used in queries.
func (repo *MongoCustomerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}},
	}
	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create customer indexes: %w", err)
	}
	return nil
}

func (repo *MongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctxWithTimeout, customer)
	if err != nil {
		return fmt.Errorf("error creating customer: %w", err)
	}
	return nil
}

func (repo *MongoCustomerRepo) GetByID(ctx context.Context, customerID string) (*models.Customer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"id": customerID}).Decode(&customer); err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	return &customer, nil
}

func (repo *MongoCustomerRepo) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var customer models.Customer
	if err := repo.coll.FindOne(ctxWithTimeout, bson.M{"phone": phone}).Decode(&customer); err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}
	return &customer, nil
}

// SetPreferences replaces the whole preference list.
func (repo *MongoCustomerRepo) SetPreferences(ctx context.Context, customerID string, prefs []models.Preference) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"preferences": prefs, "updated_at": time.Now()}}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": customerID}, update)
	if err != nil {
		return fmt.Errorf("error setting preferences for customer %s: %w", customerID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}

// UpsertPreference inserts or replaces a single preference by key.
func (repo *MongoCustomerRepo) UpsertPreference(ctx context.Context, customerID string, pref models.Preference) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Pull any existing preference with the same key, then push the new one.
	pull := bson.M{"$pull": bson.M{"preferences": bson.M{"key": pref.Key}}}
	if _, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": customerID}, pull); err != nil {
		return fmt.Errorf("error clearing preference %s: %w", pref.Key, err)
	}
	push := bson.M{
		"$push": bson.M{"preferences": pref},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := repo.coll.UpdateOne(ctxWithTimeout, bson.M{"id": customerID}, push)
	if err != nil {
		return fmt.Errorf("error upserting preference %s: %w", pref.Key, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}
