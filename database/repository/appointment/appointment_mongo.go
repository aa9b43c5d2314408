package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo(db *mongo.Database) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: db.Collection("appointments")}
}

func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salonId", Value: 1}, {Key: "startTime", Value: -1}}},
		{Keys: bson.D{{Key: "customerId", Value: 1}, {Key: "startTime", Value: -1}}},
		{Keys: bson.D{{Key: "staffId", Value: 1}, {Key: "startTime", Value: 1}, {Key: "endTime", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "startTime", Value: 1}}},
	})
}

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	return mongoutil.InsertOne(ctx, r.coll, appt)
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	return mongoutil.FindOne[models.Appointment](ctx, r.coll, bson.M{"id": id})
}

func (r *MongoAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	appt.UpdatedAt = time.Now()
	return mongoutil.ReplaceByID(ctx, r.coll, appt.ID, appt, false)
}

var newestFirst = bson.D{{Key: "startTime", Value: -1}}

func (r *MongoAppointmentRepo) ListByCustomer(ctx context.Context, customerID string, q models.PageQuery) ([]models.Appointment, int64, error) {
	return mongoutil.FindPage[models.Appointment](ctx, r.coll, bson.M{"customerId": customerID}, newestFirst, q)
}

func (r *MongoAppointmentRepo) ListBySalon(ctx context.Context, salonID, status string, q models.PageQuery) ([]models.Appointment, int64, error) {
	filter := bson.M{"salonId": salonID}
	if status != "" {
		filter["status"] = status
	}
	return mongoutil.FindPage[models.Appointment](ctx, r.coll, filter, newestFirst, q)
}

func (r *MongoAppointmentRepo) ListByStaff(ctx context.Context, staffID string, q models.PageQuery) ([]models.Appointment, int64, error) {
	return mongoutil.FindPage[models.Appointment](ctx, r.coll, bson.M{"staffId": staffID}, newestFirst, q)
}

func (r *MongoAppointmentRepo) HasOverlap(ctx context.Context, staffID string, start, end time.Time, excludeID string) (bool, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, mongoutil.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"staffId":   staffID,
		"status":    bson.M{"$in": BlockingStatuses},
		"startTime": bson.M{"$lt": end},
		"endTime":   bson.M{"$gt": start},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	count, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check staff %s availability: %w", staffID, err)
	}
	return count > 0, nil
}

func (r *MongoAppointmentRepo) RevenueBySalon(ctx context.Context, from, to time.Time) ([]models.SalonRevenue, error) {
	completed := bson.M{"$eq": bson.A{"$status", models.AppointmentCompleted}}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"startTime": bson.M{"$gte": from, "$lt": to},
			"status": bson.M{"$in": bson.A{
				models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow,
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":              "$salonId",
			"revenue":          bson.M{"$sum": bson.M{"$cond": bson.A{completed, "$totalAmount", 0}}},
			"appointments":     bson.M{"$sum": bson.M{"$cond": bson.A{completed, 1, 0}}},
			"cancellationFees": bson.M{"$sum": "$cancellationFee"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	return mongoutil.Aggregate[models.SalonRevenue](ctx, r.coll, pipeline)
}

func (r *MongoAppointmentRepo) MonthlyRevenue(ctx context.Context, salonID string, since time.Time) ([]models.MonthlyRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"salonId":   salonID,
			"status":    models.AppointmentCompleted,
			"startTime": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$startTime"}},
			"revenue": bson.M{"$sum": "$totalAmount"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	return mongoutil.Aggregate[models.MonthlyRevenue](ctx, r.coll, pipeline)
}
