package serviceRepo

import (
	"context"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoServiceRepo implements ServiceRepository using MongoDB.
type MongoServiceRepo struct {
	coll *mongo.Collection
}

func NewMongoServiceRepo(db *mongo.Database) *MongoServiceRepo {
	return &MongoServiceRepo{coll: db.Collection("services")}
}

func (r *MongoServiceRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salonId", Value: 1}, {Key: "category", Value: 1}}},
	})
}

func (r *MongoServiceRepo) Create(ctx context.Context, service *models.Service) error {
	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now
	return mongoutil.InsertOne(ctx, r.coll, service)
}

func (r *MongoServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	return mongoutil.FindOne[models.Service](ctx, r.coll, bson.M{"id": id})
}

func (r *MongoServiceRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Service, error) {
	if len(ids) == 0 {
		return []models.Service{}, nil
	}
	return mongoutil.FindMany[models.Service](ctx, r.coll, bson.M{"id": bson.M{"$in": ids}})
}

func (r *MongoServiceRepo) ListBySalon(ctx context.Context, salonID string, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{"salonId": salonID}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}})
	return mongoutil.FindMany[models.Service](ctx, r.coll, filter, opts)
}

func (r *MongoServiceRepo) Update(ctx context.Context, service *models.Service) error {
	service.UpdatedAt = time.Now()
	return mongoutil.ReplaceByID(ctx, r.coll, service.ID, service, false)
}

func (r *MongoServiceRepo) Delete(ctx context.Context, id string) error {
	return mongoutil.DeleteByID(ctx, r.coll, id)
}
