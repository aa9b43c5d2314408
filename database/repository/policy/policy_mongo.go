package policyRepo

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

// MongoPolicyRepo implements CancellationPolicyRepository using MongoDB.
type MongoPolicyRepo struct {
	coll *mongo.Collection
}

func NewMongoPolicyRepo(db *mongo.Database) *MongoPolicyRepo {
	return &MongoPolicyRepo{coll: db.Collection("cancellation_policies")}
}

func (r *MongoPolicyRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "salonId", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
}

func (r *MongoPolicyRepo) GetBySalon(ctx context.Context, salonID string) (*models.CancellationPolicy, error) {
	return mongoutil.FindOne[models.CancellationPolicy](ctx, r.coll, bson.M{"salonId": salonID})
}

// Upsert keys on salonId so a salon never ends up with two policies.
func (r *MongoPolicyRepo) Upsert(ctx context.Context, policy *models.CancellationPolicy) error {
	ctx, cancel := mongoutil.WithTimeout(ctx, mongoutil.WriteTimeout)
	defer cancel()

	now := time.Now()
	if policy.CreatedAt.IsZero() {
		policy.CreatedAt = now
	}
	policy.UpdatedAt = now

	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"salonId": policy.SalonID}, policy, opts); err != nil {
		return fmt.Errorf("failed to save cancellation policy for salon %s: %w", policy.SalonID, err)
	}
	return nil
}
