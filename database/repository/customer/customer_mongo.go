package customerRepo

import (
	"context"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCustomerRepo implements CustomerRepository using MongoDB.
type MongoCustomerRepo struct {
	coll *mongo.Collection
}

func NewMongoCustomerRepo(db *mongo.Database) *MongoCustomerRepo {
	return &MongoCustomerRepo{coll: db.Collection("customers")}
}

func (r *MongoCustomerRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
}

func (r *MongoCustomerRepo) Create(ctx context.Context, customer *models.Customer) error {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return mongoutil.InsertOne(ctx, r.coll, customer)
}

func (r *MongoCustomerRepo) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return mongoutil.FindOne[models.Customer](ctx, r.coll, bson.M{"id": id})
}

func (r *MongoCustomerRepo) GetByUserID(ctx context.Context, userID string) (*models.Customer, error) {
	return mongoutil.FindOne[models.Customer](ctx, r.coll, bson.M{"userId": userID})
}
