package appointmentRepo

import (
	"context"
	"testing"
	"time"

	"auracare/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func sentPipeline(t *testing.T, mt *mtest.T) []bson.M {
	t.Helper()
	evt := mt.GetStartedEvent()
	require.NotNil(t, evt)
	require.Equal(t, "aggregate", evt.CommandName)
	var pipeline []bson.M
	require.NoError(t, evt.Command.Lookup("pipeline").Unmarshal(&pipeline))
	return pipeline
}

func TestMongoAppointmentRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(45 * time.Minute)

	mt.Run("overlap counts open appointments crossing the slot", func(mt *mtest.T) {
		repo := NewMongoAppointmentRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "auracare.appointments", mtest.FirstBatch, bson.D{
			{Key: "n", Value: int64(1)},
		}))

		busy, err := repo.HasOverlap(context.Background(), "st1", start, end, "a1")
		require.NoError(t, err)
		assert.True(t, busy)

		match := sentPipeline(t, mt)[0]["$match"].(bson.M)
		assert.Equal(t, "st1", match["staffId"])
		assert.Equal(t, bson.M{"$in": bson.A{models.AppointmentPending, models.AppointmentConfirmed}}, match["status"])
		assert.Equal(t, bson.M{"$lt": primitive.NewDateTimeFromTime(end)}, match["startTime"])
		assert.Equal(t, bson.M{"$gt": primitive.NewDateTimeFromTime(start)}, match["endTime"])
		assert.Equal(t, bson.M{"$ne": "a1"}, match["id"])
	})

	mt.Run("no overlap and no excluded id", func(mt *mtest.T) {
		repo := NewMongoAppointmentRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "auracare.appointments", mtest.FirstBatch))

		busy, err := repo.HasOverlap(context.Background(), "st1", start, end, "")
		require.NoError(t, err)
		assert.False(t, busy)

		match := sentPipeline(t, mt)[0]["$match"].(bson.M)
		assert.NotContains(t, match, "id")
	})

	mt.Run("revenue by salon decodes grouped rows", func(mt *mtest.T) {
		repo := NewMongoAppointmentRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "auracare.appointments", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "s1"},
				{Key: "revenue", Value: 130.5},
				{Key: "appointments", Value: int64(3)},
				{Key: "cancellationFees", Value: 20.0},
			},
			bson.D{
				{Key: "_id", Value: "s2"},
				{Key: "revenue", Value: 0.0},
				{Key: "appointments", Value: int64(0)},
				{Key: "cancellationFees", Value: 12.5},
			},
		))

		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		rows, err := repo.RevenueBySalon(context.Background(), from, from.AddDate(0, 1, 0))
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, models.SalonRevenue{SalonID: "s1", Revenue: 130.5, Appointments: 3, CancellationFees: 20}, rows[0])
		assert.Equal(t, 12.5, rows[1].CancellationFees)

		pipeline := sentPipeline(t, mt)
		require.Len(t, pipeline, 3)
		match := pipeline[0]["$match"].(bson.M)
		assert.Equal(t, bson.M{
			"$gte": primitive.NewDateTimeFromTime(from),
			"$lt":  primitive.NewDateTimeFromTime(from.AddDate(0, 1, 0)),
		}, match["startTime"])
		assert.Equal(t, bson.M{"$in": bson.A{
			models.AppointmentCompleted, models.AppointmentCancelled, models.AppointmentNoShow,
		}}, match["status"])
		group := pipeline[1]["$group"].(bson.M)
		assert.Equal(t, "$salonId", group["_id"])
		assert.Equal(t, bson.M{"$sum": "$cancellationFee"}, group["cancellationFees"])
	})

	mt.Run("monthly revenue groups completed appointments by month", func(mt *mtest.T) {
		repo := NewMongoAppointmentRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "auracare.appointments", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "2026-07"}, {Key: "revenue", Value: 400.0}},
		))

		history, err := repo.MonthlyRevenue(context.Background(), "s1", start.AddDate(-1, 0, 0))
		require.NoError(t, err)
		assert.Equal(t, []models.MonthlyRevenue{{Month: "2026-07", Revenue: 400}}, history)

		match := sentPipeline(t, mt)[0]["$match"].(bson.M)
		assert.Equal(t, "s1", match["salonId"])
		assert.Equal(t, models.AppointmentCompleted, match["status"])
	})
}
