package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tidyhive/models"
)

var activeStatuses = []string{
	models.BookingStatusScheduled,
	models.BookingStatusConfirmed,
	models.BookingStatusInProgress,
}

func (repo *MongoBookingRepo) findBookings(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ListActive returns every booking that still occupies a time slot.
func (repo *MongoBookingRepo) ListActive(ctx context.Context) ([]models.Booking, error) {
	return repo.findBookings(ctx, bson.M{"status": bson.M{"$in": activeStatuses}})
}

// ListByDate returns active bookings scheduled on the given date.
func (repo *MongoBookingRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return repo.findBookings(ctx, bson.M{
		"date":   date,
		"status": bson.M{"$in": activeStatuses},
	})
}

// ListByDateRange returns active bookings with date in [startDate, endDate] inclusive.
func (repo *MongoBookingRepo) ListByDateRange(ctx context.Context, startDate, endDate string) ([]models.Booking, error) {
	return repo.findBookings(ctx, bson.M{
		"date":   bson.M{"$gte": startDate, "$lte": endDate},
		"status": bson.M{"$in": activeStatuses},
	})
}

// ListByCrewAndDate returns a crew member's active bookings for one day.
func (repo *MongoBookingRepo) ListByCrewAndDate(ctx context.Context, crewID, date string) ([]models.Booking, error) {
	return repo.findBookings(ctx, bson.M{
		"crew_id": crewID,
		"date":    date,
		"status":  bson.M{"$in": activeStatuses},
	})
}

// RevenueByDay aggregates completed-booking revenue per calendar day.
func (repo *MongoBookingRepo) RevenueByDay(ctx context.Context, startDate, endDate string) ([]models.RevenuePoint, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"status": models.BookingStatusCompleted,
			"date":   bson.M{"$gte": startDate, "$lte": endDate},
		}},
		{"$group": bson.M{
			"_id":      "$date",
			"revenue":  bson.M{"$sum": "$total_price"},
			"bookings": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"_id": 1}},
	}
	cursor, err := repo.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("revenue aggregation failed: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var points []models.RevenuePoint
	if err := cursor.All(ctxWithTimeout, &points); err != nil {
		return nil, fmt.Errorf("error decoding revenue points: %w", err)
	}
	return points, nil
}

// RatingsByCrew aggregates customer ratings per assigned crew member.
func (repo *MongoBookingRepo) RatingsByCrew(ctx context.Context) ([]models.CrewRating, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{
			"rating":  bson.M{"$gt": 0},
			"crew_id": bson.M{"$ne": ""},
		}},
		{"$group": bson.M{
			"_id":            "$crew_id",
			"average_rating": bson.M{"$avg": "$rating"},
			"ratings":        bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"average_rating": -1}},
	}
	cursor, err := repo.coll.Aggregate(ctxWithTimeout, pipeline)
	if err != nil {
		return nil, fmt.Errorf("ratings aggregation failed: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var ratings []models.CrewRating
	if err := cursor.All(ctxWithTimeout, &ratings); err != nil {
		return nil, fmt.Errorf("error decoding crew ratings: %w", err)
	}
	return ratings, nil
}
