package giftCardRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoGiftCardRepo implements GiftCardRepository using MongoDB.
type MongoGiftCardRepo struct {
	coll *mongo.Collection
}

func NewMongoGiftCardRepo(db *mongo.Database) *MongoGiftCardRepo {
	return &MongoGiftCardRepo{coll: db.Collection("gift_cards")}
}

func (r *MongoGiftCardRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "salonId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "purchaserId", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expiresAt", Value: 1}}},
	})
}

func (r *MongoGiftCardRepo) Create(ctx context.Context, card *models.GiftCard) error {
	now := time.Now()
	card.CreatedAt = now
	card.UpdatedAt = now
	if card.Redemptions == nil {
		card.Redemptions = []models.GiftCardRedemption{}
	}
	return mongoutil.InsertOne(ctx, r.coll, card)
}

func (r *MongoGiftCardRepo) GetByCode(ctx context.Context, code string) (*models.GiftCard, error) {
	return mongoutil.FindOne[models.GiftCard](ctx, r.coll, bson.M{"code": code})
}

func newestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}

func (r *MongoGiftCardRepo) ListBySalon(ctx context.Context, salonID string) ([]models.GiftCard, error) {
	return mongoutil.FindMany[models.GiftCard](ctx, r.coll, bson.M{"salonId": salonID}, newestFirst())
}

func (r *MongoGiftCardRepo) ListByPurchaser(ctx context.Context, purchaserID string) ([]models.GiftCard, error) {
	return mongoutil.FindMany[models.GiftCard](ctx, r.coll, bson.M{"purchaserId": purchaserID}, newestFirst())
}

func (r *MongoGiftCardRepo) Redeem(ctx context.Context, code string, redemption models.GiftCardRedemption) (*models.GiftCard, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, mongoutil.WriteTimeout)
	defer cancel()

	filter := bson.M{
		"code":      code,
		"status":    models.GiftCardActive,
		"expiresAt": bson.M{"$gt": redemption.At},
		"balance":   bson.M{"$gte": redemption.Amount},
	}
	update := bson.M{
		"$inc":  bson.M{"balance": -redemption.Amount},
		"$push": bson.M{"redemptions": redemption},
		"$set":  bson.M{"updatedAt": redemption.At},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var card models.GiftCard
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&card); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to redeem gift card %s: %w", code, err)
	}
	return &card, nil
}

func (r *MongoGiftCardRepo) SetStatus(ctx context.Context, code, from, to string) (bool, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, mongoutil.WriteTimeout)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx,
		bson.M{"code": code, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to set gift card %s status: %w", code, err)
	}
	return result.ModifiedCount == 1, nil
}

func (r *MongoGiftCardRepo) ExpireBefore(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := mongoutil.WithTimeout(ctx, mongoutil.ListTimeout)
	defer cancel()

	result, err := r.coll.UpdateMany(ctx,
		bson.M{"status": models.GiftCardActive, "expiresAt": bson.M{"$lte": now}},
		bson.M{"$set": bson.M{"status": models.GiftCardExpired, "updatedAt": now}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire gift cards: %w", err)
	}
	return result.ModifiedCount, nil
}

func (r *MongoGiftCardRepo) ActiveLiability(ctx context.Context) (models.Money, error) {
	type total struct {
		Balance models.Money `bson:"balance"`
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.GiftCardActive}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "balance": bson.M{"$sum": "$balance"}}}},
	}
	rows, err := mongoutil.Aggregate[total](ctx, r.coll, pipeline)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Balance, nil
}
