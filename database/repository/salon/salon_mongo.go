package salonRepo

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

// MongoSalonRepo implements SalonRepository using MongoDB.
type MongoSalonRepo struct {
	coll *mongo.Collection
}

func NewMongoSalonRepo(db *mongo.Database) *MongoSalonRepo {
	return &MongoSalonRepo{coll: db.Collection("salons")}
}

func (r *MongoSalonRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "ownerId", Value: 1}}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
	})
}

func (r *MongoSalonRepo) Create(ctx context.Context, salon *models.Salon) error {
	now := time.Now()
	salon.Email = strings.ToLower(strings.TrimSpace(salon.Email))
	salon.CreatedAt = now
	salon.UpdatedAt = now
	return mongoutil.InsertOne(ctx, r.coll, salon)
}

func (r *MongoSalonRepo) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	return mongoutil.FindOne[models.Salon](ctx, r.coll, bson.M{"id": id})
}

func (r *MongoSalonRepo) GetByOwnerID(ctx context.Context, ownerID string) (*models.Salon, error) {
	if ownerID == "" {
		return nil, nil
	}
	return mongoutil.FindOne[models.Salon](ctx, r.coll, bson.M{"ownerId": ownerID})
}

func (r *MongoSalonRepo) GetByEmail(ctx context.Context, email string) (*models.Salon, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	return mongoutil.FindOne[models.Salon](ctx, r.coll, bson.M{"email": email})
}

func (r *MongoSalonRepo) Update(ctx context.Context, salon *models.Salon) error {
	salon.UpdatedAt = time.Now()
	return mongoutil.ReplaceByID(ctx, r.coll, salon.ID, salon, false)
}

func (r *MongoSalonRepo) LinkOwner(ctx context.Context, id, ownerID string) (bool, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, mongoutil.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"id":  id,
		"$or": bson.A{bson.M{"ownerId": ""}, bson.M{"ownerId": bson.M{"$exists": false}}},
	}
	update := bson.M{"$set": bson.M{"ownerId": ownerID, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to link owner to salon %s: %w", id, err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoSalonRepo) List(ctx context.Context, status string, q models.PageQuery) ([]models.Salon, int64, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return mongoutil.FindPage[models.Salon](ctx, r.coll, filter, bson.D{{Key: "createdAt", Value: -1}}, q)
}

func (r *MongoSalonRepo) ListByStatus(ctx context.Context, status string) ([]models.Salon, error) {
	return mongoutil.FindMany[models.Salon](ctx, r.coll, bson.M{"status": status})
}
