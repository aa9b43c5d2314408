package payrollRepo

import (
	"context"
	"time"

	"auracare/database/mongoutil"
	"auracare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPayrollRepo implements PayrollRepository using MongoDB.
type MongoPayrollRepo struct {
	coll *mongo.Collection
}

func NewMongoPayrollRepo(db *mongo.Database) *MongoPayrollRepo {
	return &MongoPayrollRepo{coll: db.Collection("payrolls")}
}

func (r *MongoPayrollRepo) EnsureIndexes(ctx context.Context) error {
	return mongoutil.EnsureIndexes(ctx, r.coll, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys:    bson.D{{Key: "salonId", Value: 1}, {Key: "staffId", Value: 1}, {Key: "period", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
}

func (r *MongoPayrollRepo) GetByID(ctx context.Context, id string) (*models.Payroll, error) {
	return mongoutil.FindOne[models.Payroll](ctx, r.coll, bson.M{"id": id})
}

func (r *MongoPayrollRepo) GetForStaff(ctx context.Context, salonID, staffID, period string) (*models.Payroll, error) {
	return mongoutil.FindOne[models.Payroll](ctx, r.coll, bson.M{"salonId": salonID, "staffId": staffID, "period": period})
}

func (r *MongoPayrollRepo) Save(ctx context.Context, p *models.Payroll) error {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	return mongoutil.ReplaceByID(ctx, r.coll, p.ID, p, true)
}

func (r *MongoPayrollRepo) ListBySalon(ctx context.Context, salonID, period string) ([]models.Payroll, error) {
	filter := bson.M{"salonId": salonID}
	if period != "" {
		filter["period"] = period
	}
	opts := options.Find().SetSort(bson.D{{Key: "period", Value: -1}, {Key: "staffName", Value: 1}})
	return mongoutil.FindMany[models.Payroll](ctx, r.coll, filter, opts)
}
