package staffRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStaffRepo implements StaffRepository using MongoDB.
type MongoStaffRepo struct {
	coll *mongo.Collection
}

func NewMongoStaffRepo(db *mongo.Database) *MongoStaffRepo {
	return &MongoStaffRepo{coll: db.Collection("staff")}
}

func (r *MongoStaffRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salonId", Value: 1}, {Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	})
}

func (r *MongoStaffRepo) Create(ctx context.Context, staff *models.Staff) error {
	now := time.Now()
	staff.Email = strings.ToLower(strings.TrimSpace(staff.Email))
	staff.CreatedAt = now
	staff.UpdatedAt = now
	return mongoutil.InsertOne(ctx, r.coll, staff)
}

func (r *MongoStaffRepo) GetByID(ctx context.Context, id string) (*models.Staff, error) {
	return mongoutil.FindOne[models.Staff](ctx, r.coll, bson.M{"id": id})
}

func (r *MongoStaffRepo) GetByUserID(ctx context.Context, userID string) (*models.Staff, error) {
	if userID == "" {
		return nil, nil
	}
	return mongoutil.FindOne[models.Staff](ctx, r.coll, bson.M{"userId": userID})
}

func (r *MongoStaffRepo) GetByEmail(ctx context.Context, email string) (*models.Staff, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return mongoutil.FindOne[models.Staff](ctx, r.coll, bson.M{"email": email})
}

func (r *MongoStaffRepo) LinkUser(ctx context.Context, id, userID string) (bool, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, mongoutil.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"id":  id,
		"$or": bson.A{bson.M{"userId": ""}, bson.M{"userId": bson.M{"$exists": false}}},
	}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"userId": userID, "updatedAt": time.Now()}})
	if err != nil {
		return false, fmt.Errorf("failed to link user to staff %s: %w", id, err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoStaffRepo) Update(ctx context.Context, staff *models.Staff) error {
	staff.UpdatedAt = time.Now()
	return mongoutil.ReplaceByID(ctx, r.coll, staff.ID, staff, false)
}

func (r *MongoStaffRepo) Delete(ctx context.Context, id string) error {
	return mongoutil.DeleteByID(ctx, r.coll, id)
}

func (r *MongoStaffRepo) ListBySalon(ctx context.Context, salonID string, activeOnly bool) ([]models.Staff, error) {
	filter := bson.M{"salonId": salonID}
	if activeOnly {
		filter["status"] = bson.M{"$in": bson.A{models.StaffStatusActive, ""}}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return mongoutil.FindMany[models.Staff](ctx, r.coll, filter, opts)
}

func (r *MongoStaffRepo) ListIDsBySalon(ctx context.Context, salonID string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1})
	staff, err := mongoutil.FindMany[models.Staff](ctx, r.coll, bson.M{"salonId": salonID}, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(staff))
	for _, s := range staff {
		ids = append(ids, s.ID)
	}
	return ids, nil
}
