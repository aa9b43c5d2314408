package scheduleRepo

import (
	"context"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScheduleRequestRepo implements ScheduleRequestRepository using MongoDB.
type MongoScheduleRequestRepo struct {
	coll *mongo.Collection
}

func NewMongoScheduleRequestRepo(db *mongo.Database) *MongoScheduleRequestRepo {
	return &MongoScheduleRequestRepo{coll: db.Collection("schedule_requests")}
}

func (r *MongoScheduleRequestRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salonId", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "staffId", Value: 1}, {Key: "status", Value: 1}, {Key: "startDate", Value: 1}}},
	})
}

func (r *MongoScheduleRequestRepo) Create(ctx context.Context, req *models.ScheduleRequest) error {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	return mongoutil.InsertOne(ctx, r.coll, req)
}

func (r *MongoScheduleRequestRepo) GetByID(ctx context.Context, id string) (*models.ScheduleRequest, error) {
	return mongoutil.FindOne[models.ScheduleRequest](ctx, r.coll, bson.M{"id": id})
}

func (r *MongoScheduleRequestRepo) Update(ctx context.Context, req *models.ScheduleRequest) error {
	req.UpdatedAt = time.Now()
	return mongoutil.ReplaceByID(ctx, r.coll, req.ID, req, false)
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoScheduleRequestRepo) ListByStaff(ctx context.Context, staffID string) ([]models.ScheduleRequest, error) {
	return mongoutil.FindMany[models.ScheduleRequest](ctx, r.coll, bson.M{"staffId": staffID}, newestFirst())
}

func (r *MongoScheduleRequestRepo) ListPendingBySalon(ctx context.Context, salonID string) ([]models.ScheduleRequest, error) {
	filter := bson.M{"salonId": salonID, "status": models.SchedulePending}
	return mongoutil.FindMany[models.ScheduleRequest](ctx, r.coll, filter, newestFirst())
}

func (r *MongoScheduleRequestRepo) ListPendingByStaffIDs(ctx context.Context, staffIDs []string) ([]models.ScheduleRequest, error) {
	if len(staffIDs) == 0 {
		return []models.ScheduleRequest{}, nil
	}
	filter := bson.M{"staffId": bson.M{"$in": staffIDs}, "status": models.SchedulePending}
	return mongoutil.FindMany[models.ScheduleRequest](ctx, r.coll, filter, newestFirst())
}

func (r *MongoScheduleRequestRepo) ListApprovedLeave(ctx context.Context, staffIDs []string, from, to time.Time) ([]models.ScheduleRequest, error) {
	if len(staffIDs) == 0 {
		return []models.ScheduleRequest{}, nil
	}
	filter := bson.M{
		"staffId":   bson.M{"$in": staffIDs},
		"type":      models.ScheduleLeave,
		"status":    models.ScheduleApproved,
		"startDate": bson.M{"$lte": to},
		"endDate":   bson.M{"$gte": from},
	}
	return mongoutil.FindMany[models.ScheduleRequest](ctx, r.coll, filter)
}
