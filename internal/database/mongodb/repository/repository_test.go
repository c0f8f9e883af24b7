package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestShiftFilterQuery(t *testing.T) {
	day := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	query := shiftFilterQuery(core.ShiftFilter{EmployeeID: "E1", Day: &day})

	assert.Equal(t, "E1", query["employeeId"])
	dateRange := query["date"].(bson.M)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), dateRange["$gte"])
	assert.Equal(t, time.Date(2024, 5, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC), dateRange["$lte"])

	assert.Empty(t, shiftFilterQuery(core.ShiftFilter{}))
}

func TestAttendanceFilterQuery(t *testing.T) {
	from := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	query := attendanceFilterQuery(core.AttendanceFilter{EmployeeID: "E1", From: &from, Status: core.AttendanceStatusLate})

	assert.Equal(t, bson.M{"$gte": from}, query["date"])
	assert.Equal(t, core.AttendanceStatusLate, query["status"])
	assert.Equal(t, "E1", query["employeeId"])
}

func TestMarkUpdateOnlyOverwritesSuppliedFields(t *testing.T) {
	now := time.Now().UTC()
	checkIn := time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC)

	update := markUpdate(&model.AttendanceMark{EmployeeID: "E1", CheckIn: checkIn, ShiftID: "S1"}, now)
	set := update["$set"].(bson.M)
	onInsert := update["$setOnInsert"].(bson.M)

	assert.Equal(t, bson.M{"checkIn": checkIn}, set)
	assert.Equal(t, core.AttendanceStatusPresent, onInsert["status"])
	assert.Equal(t, "S1", onInsert["shiftId"])
	assert.Equal(t, bson.M{"updatedAt": true}, update["$currentDate"])

	checkOut := checkIn.Add(8 * time.Hour)
	update = markUpdate(&model.AttendanceMark{CheckIn: checkIn, CheckOut: &checkOut, Status: core.AttendanceStatusLate, Notes: "bus"}, now)
	set = update["$set"].(bson.M)
	onInsert = update["$setOnInsert"].(bson.M)

	assert.Equal(t, checkOut, set["checkOut"])
	assert.Equal(t, core.AttendanceStatusLate, set["status"])
	assert.Equal(t, "bus", set["notes"])
	assert.NotContains(t, onInsert, "status")
}

func TestSetUpdateWithoutFields(t *testing.T) {
	update := setUpdate(bson.M{})
	assert.NotContains(t, update, "$set")
	assert.Contains(t, update, "$currentDate")
}

func TestMongoRoundTrips(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("employee get missing", func(mt *mtest.T) {
		repo := newEmployeeRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.employees", mtest.FirstBatch))

		_, err := repo.GetByID(context.Background(), primitive.NewObjectID())
		assert.True(mt, errors.Is(err, mongo.ErrNoDocuments))
	})

	mt.Run("employee delete missing", func(mt *mtest.T) {
		repo := newEmployeeRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 0}})

		err := repo.DeleteByID(context.Background(), primitive.NewObjectID())
		assert.True(mt, errors.Is(err, mongo.ErrNoDocuments))
	})

	mt.Run("shift delete existing", func(mt *mtest.T) {
		repo := newShiftRepository(mt.Coll)
		mt.AddMockResponses(bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}})

		assert.NoError(mt, repo.DeleteByID(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("employee duplicate email", func(mt *mtest.T) {
		repo := newEmployeeRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := repo.Create(context.Background(), &model.Employee{Name: "Ann Lee", Email: "Ann@X.io"})
		assert.ErrorIs(mt, err, ErrDuplicate)
	})

	mt.Run("employee create defaults", func(mt *mtest.T) {
		repo := newEmployeeRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.Create(context.Background(), &model.Employee{Name: "Ann Lee", Email: " Ann@X.io "})
		require.NoError(mt, err)
		assert.Equal(mt, core.EmployeeStatusActive, created.Status)
		assert.Equal(mt, "ann@x.io", created.Email)
		assert.False(mt, created.ID.IsZero())
	})

	mt.Run("attendance upsert created", func(mt *mtest.T) {
		repo := newAttendanceRepository(mt.Coll)
		id := primitive.NewObjectID()
		date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		checkIn := time.Date(2024, 5, 1, 9, 5, 0, 0, time.UTC)

		mt.AddMockResponses(
			bson.D{
				{Key: "ok", Value: 1},
				{Key: "n", Value: 1},
				{Key: "nModified", Value: 0},
				{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: id}}}},
			},
			mtest.CreateCursorResponse(0, "db.attendances", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "employeeId", Value: "E1"},
				{Key: "date", Value: date},
				{Key: "checkIn", Value: checkIn},
				{Key: "status", Value: "present"},
			}),
		)

		doc, created, err := repo.Upsert(context.Background(), &model.AttendanceMark{EmployeeID: "E1", Date: date, CheckIn: checkIn})
		require.NoError(mt, err)
		assert.True(mt, created)
		assert.Equal(mt, id, doc.ID)
		assert.Equal(mt, core.AttendanceStatusPresent, doc.Status)
	})

	mt.Run("attendance upsert updated", func(mt *mtest.T) {
		repo := newAttendanceRepository(mt.Coll)
		id := primitive.NewObjectID()
		date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
		checkOut := time.Date(2024, 5, 1, 17, 0, 0, 0, time.UTC)

		mt.AddMockResponses(
			bson.D{{Key: "ok", Value: 1}, {Key: "n", Value: 1}, {Key: "nModified", Value: 1}},
			mtest.CreateCursorResponse(0, "db.attendances", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: id},
				{Key: "employeeId", Value: "E1"},
				{Key: "date", Value: date},
				{Key: "checkOut", Value: checkOut},
				{Key: "status", Value: "present"},
			}),
		)

		doc, created, err := repo.Upsert(context.Background(), &model.AttendanceMark{EmployeeID: "E1", Date: date, CheckOut: &checkOut})
		require.NoError(mt, err)
		assert.False(mt, created)
		require.NotNil(mt, doc.CheckOut)
		assert.True(mt, checkOut.Equal(*doc.CheckOut))
	})

	mt.Run("shift count", func(mt *mtest.T) {
		repo := newShiftRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.shifts", mtest.FirstBatch, bson.D{{Key: "n", Value: int32(3)}}))

		n, err := repo.Count(context.Background(), core.ShiftFilter{Status: core.ShiftStatusScheduled})
		require.NoError(mt, err)
		assert.EqualValues(mt, 3, n)
	})

	mt.Run("employee list", func(mt *mtest.T) {
		repo := newEmployeeRepository(mt.Coll)
		first := mtest.CreateCursorResponse(0, "db.employees", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Ann Lee"},
			{Key: "email", Value: "ann@x.io"},
			{Key: "status", Value: "active"},
		})
		mt.AddMockResponses(first)

		employees, err := repo.List(context.Background(), core.EmployeeFilter{})
		require.NoError(mt, err)
		require.Len(mt, employees, 1)
		assert.Equal(mt, "Ann Lee", employees[0].Name)
	})

	mt.Run("employee get by email", func(mt *mtest.T) {
		repo := newEmployeeRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.employees", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "ann@x.io"},
		}))

		employee, err := repo.GetByEmail(context.Background(), " Ann@X.io ")
		require.NoError(mt, err)
		assert.Equal(mt, "ann@x.io", employee.Email)
	})

	mt.Run("index build failure is logged", func(mt *mtest.T) {
		observed, logs := observer.New(zap.WarnLevel)
		repo := newEmployeeRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: "E11000 duplicate key error collection: db.employees index: uniq_email",
		}))

		err := repo.ensureIndexes(context.Background(), zap.New(observed))
		require.Error(mt, err)
		require.Equal(mt, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(mt, "mongodb create indexes failed", entry.Message)
		assert.Equal(mt, mt.Coll.Name(), entry.ContextMap()["collection"])
	})

	mt.Run("index build success is silent", func(mt *mtest.T) {
		observed, logs := observer.New(zap.WarnLevel)
		repo := newShiftRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		require.NoError(mt, repo.ensureIndexes(context.Background(), zap.New(observed)))
		assert.Zero(mt, logs.Len())
	})
}
