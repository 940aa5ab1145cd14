package doctorRepo

import (
	"context"
	"testing"

	"medibook/database"
	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestReserveSlot(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reserves a free slot", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		reserved, err := repo.ReserveSlot(context.Background(), "D1", "01_01_2025 10:00 AM")
		require.NoError(mt, err)
		assert.True(mt, reserved)
	})

	mt.Run("reports a taken slot", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		reserved, err := repo.ReserveSlot(context.Background(), "D1", "01_01_2025 10:00 AM")
		require.NoError(mt, err)
		assert.False(mt, reserved)
	})

	mt.Run("surfaces write errors", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11600,
			Message: "interrupted at shutdown",
			Name:    "InterruptedAtShutdown",
		}))

		_, err := repo.ReserveSlot(context.Background(), "D1", "01_01_2025 10:00 AM")
		assert.Error(mt, err)
	})
}

func TestFindOne(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("decodes the doctor", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "id", Value: "D1"},
			{Key: "name", Value: "Dr. Grey"},
			{Key: "availability", Value: true},
			{Key: "bookedSlots", Value: bson.A{"01_01_2025 10:00 AM"}},
		}))

		doc, err := repo.GetByID(context.Background(), "D1")
		require.NoError(mt, err)
		require.NotNil(mt, doc)
		assert.Equal(mt, "Dr. Grey", doc.Name)
		assert.True(mt, doc.HasSlot("01_01_2025 10:00 AM"))
	})

	mt.Run("missing doctor is nil", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		doc, err := repo.GetByEmail(context.Background(), "nobody@clinic.test")
		require.NoError(mt, err)
		assert.Nil(mt, doc)
	})
}

func TestCreateDuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("maps duplicate key to ErrDuplicate", func(mt *mtest.T) {
		repo := &MongoDoctorRepo{coll: mt.Coll}
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error collection: doctors index: email_1",
		}))

		err := repo.Create(context.Background(), &models.Doctor{ID: "D2", Email: "grey@clinic.test"})
		assert.ErrorIs(mt, err, database.ErrDuplicate)
	})
}
