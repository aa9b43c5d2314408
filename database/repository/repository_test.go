package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSet_EnsureIndexes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("all collections indexed", func(mt *mtest.T) {
		set := NewMongoSet(mt.DB)
		for range set.indexers {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		core, logs := observer.New(zapcore.ErrorLevel)

		require.NoError(t, set.EnsureIndexes(context.Background(), zap.New(core)))
		assert.Zero(t, logs.Len())
	})

	mt.Run("failures are logged and reported", func(mt *mtest.T) {
		set := NewMongoSet(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    85,
			Name:    "IndexOptionsConflict",
			Message: "index already exists with different options",
		}))
		for range set.indexers[1:] {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}
		core, logs := observer.New(zapcore.ErrorLevel)

		err := set.EnsureIndexes(context.Background(), zap.New(core))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create indexes")
		assert.Equal(t, 1, logs.FilterMessage("failed to create indexes").Len())
	})
}
