package repository

import (
	"context"
	"time"

	"shiftboard/internal/core"
	client "shiftboard/internal/database/client"
	"shiftboard/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ShiftRepository struct {
	collection *mongo.Collection
}

func NewShiftRepository(logger *zap.Logger, mongoClient *client.MongoClient) *ShiftRepository {
	repository := newShiftRepository(mongoClient.Database().Collection(string(core.MongoCollectionShifts)))
	_ = repository.ensureIndexes(context.Background(), logger)
	return repository
}

func newShiftRepository(collection *mongo.Collection) *ShiftRepository {
	return &ShiftRepository{collection: collection}
}

func (repository *ShiftRepository) ensureIndexes(contextValue context.Context, logger *zap.Logger) error {
	return createIndexes(contextValue, logger, repository.collection, model.ShiftIndexes)
}

func shiftFilterQuery(filter core.ShiftFilter) bson.M {
	query := bson.M{}
	if filter.EmployeeID != "" {
		query["employeeId"] = filter.EmployeeID
	}
	dateRange := bson.M{}
	if filter.Day != nil {
		start, end := core.DayWindow(*filter.Day)
		dateRange["$gte"] = start
		dateRange["$lte"] = end
	}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

func (repository *ShiftRepository) Create(contextValue context.Context, shift *model.Shift) (_ *model.Shift, returnedError error) {
	nowUTC := time.Now().UTC()
	if shift.ID.IsZero() {
		shift.ID = primitive.NewObjectID()
	}
	if shift.Status == "" {
		shift.Status = core.ShiftStatusScheduled
	}
	shift.CreatedAt = nowUTC
	shift.UpdatedAt = nowUTC

	if _, insertError := repository.collection.InsertOne(contextValue, shift); insertError != nil {
		return nil, translateWriteError(insertError)
	}
	return shift, nil
}

func (repository *ShiftRepository) GetByID(contextValue context.Context, shiftIdentifier primitive.ObjectID) (_ *model.Shift, returnedError error) {
	var shift model.Shift
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": shiftIdentifier}).Decode(&shift); returnedError != nil {
		return nil, returnedError
	}
	return &shift, nil
}

// List 依日期新到舊、同日依開始時間排序
func (repository *ShiftRepository) List(contextValue context.Context, filter core.ShiftFilter) (_ []*model.Shift, returnedError error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: 1}})
	cursor, findError := repository.collection.Find(contextValue, shiftFilterQuery(filter), findOptions)
	if findError != nil {
		return nil, findError
	}
	return decodeAll[model.Shift](contextValue, cursor)
}

func (repository *ShiftRepository) UpdateByID(contextValue context.Context, shiftIdentifier primitive.ObjectID, set bson.M) (_ *model.Shift, returnedError error) {
	var shift model.Shift
	returnedError = repository.collection.FindOneAndUpdate(
		contextValue,
		bson.M{"_id": shiftIdentifier},
		setUpdate(set),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&shift)
	if returnedError != nil {
		return nil, translateWriteError(returnedError)
	}
	return &shift, nil
}

func (repository *ShiftRepository) DeleteByID(contextValue context.Context, shiftIdentifier primitive.ObjectID) (returnedError error) {
	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": shiftIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repository *ShiftRepository) Count(contextValue context.Context, filter core.ShiftFilter) (int64, error) {
	return repository.collection.CountDocuments(contextValue, shiftFilterQuery(filter))
}

// CompletePast 將已結束但仍為 scheduled 的班表標記為 completed
func (repository *ShiftRepository) CompletePast(contextValue context.Context, now time.Time) (int64, error) {
	result, err := repository.collection.UpdateMany(
		contextValue,
		bson.M{"status": core.ShiftStatusScheduled, "endTime": bson.M{"$lt": now.UTC()}},
		withUpdatedAt(bson.M{"$set": bson.M{"status": core.ShiftStatusCompleted}}),
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
