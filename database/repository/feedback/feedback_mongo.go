package feedbackRepo

import (
	"context"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFeedbackRepo implements FeedbackRepository using MongoDB.
type MongoFeedbackRepo struct {
	coll *mongo.Collection
}

func NewMongoFeedbackRepo(db *mongo.Database) *MongoFeedbackRepo {
	return &MongoFeedbackRepo{coll: db.Collection("internal_staff_feedback")}
}

func (r *MongoFeedbackRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salonId", Value: 1}, {Key: "staffId", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
}

func (r *MongoFeedbackRepo) Create(ctx context.Context, fb *models.InternalStaffFeedback) error {
	fb.CreatedAt = time.Now()
	return mongoutil.InsertOne(ctx, r.coll, fb)
}

func (r *MongoFeedbackRepo) ListBySalon(ctx context.Context, salonID, staffID string, q models.PageQuery) ([]models.InternalStaffFeedback, int64, error) {
	filter := bson.M{"salonId": salonID}
	if staffID != "" {
		filter["staffId"] = staffID
	}
	return mongoutil.FindPage[models.InternalStaffFeedback](ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: -1}}, q)
}

func (r *MongoFeedbackRepo) SummaryForStaff(ctx context.Context, salonID, staffID string) (*models.FeedbackSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"salonId": salonID, "staffId": staffID}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$staffId",
			"count":         bson.M{"$sum": 1},
			"averageRating": bson.M{"$avg": "$rating"},
		}}},
	}
	rows, err := mongoutil.Aggregate[models.FeedbackSummary](ctx, r.coll, pipeline)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &models.FeedbackSummary{StaffID: staffID}, nil
	}
	summary := rows[0]
	summary.AverageRating = models.RoundMoney(summary.AverageRating)
	return &summary, nil
}
