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

type AttendanceRepository struct {
	collection *mongo.Collection
}

func NewAttendanceRepository(logger *zap.Logger, mongoClient *client.MongoClient) *AttendanceRepository {
	repository := newAttendanceRepository(mongoClient.Database().Collection(string(core.MongoCollectionAttendance)))
	_ = repository.ensureIndexes(context.Background(), logger)
	return repository
}

func newAttendanceRepository(collection *mongo.Collection) *AttendanceRepository {
	return &AttendanceRepository{collection: collection}
}

func (repository *AttendanceRepository) ensureIndexes(contextValue context.Context, logger *zap.Logger) error {
	return createIndexes(contextValue, logger, repository.collection, model.AttendanceIndexes)
}

func attendanceFilterQuery(filter core.AttendanceFilter) bson.M {
	query := bson.M{}
	if filter.EmployeeID != "" {
		query["employeeId"] = filter.EmployeeID
	}
	dateRange := bson.M{}
	if filter.From != nil {
		dateRange["$gte"] = *filter.From
	}
	if filter.To != nil {
		dateRange["$lte"] = *filter.To
	}
	if len(dateRange) > 0 {
		query["date"] = dateRange
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

// markUpdate 以 (employeeId, date) 為鍵的 upsert 內容：
// checkIn 一律覆寫，其餘欄位有提供才覆寫；shiftId 與預設狀態只在新增時寫入
func markUpdate(mark *model.AttendanceMark, now time.Time) bson.M {
	set := bson.M{"checkIn": mark.CheckIn}
	if mark.CheckOut != nil {
		set["checkOut"] = *mark.CheckOut
	}
	if mark.Notes != "" {
		set["notes"] = mark.Notes
	}
	setOnInsert := bson.M{
		"_id":       primitive.NewObjectID(),
		"createdAt": now,
	}
	if mark.Status != "" {
		set["status"] = mark.Status
	} else {
		setOnInsert["status"] = core.AttendanceStatusPresent
	}
	if mark.ShiftID != "" {
		setOnInsert["shiftId"] = mark.ShiftID
	}
	return withUpdatedAt(bson.M{"$set": set, "$setOnInsert": setOnInsert})
}

// Upsert 單一條件式 upsert，回傳寫入後的文件與是否為新增
func (repository *AttendanceRepository) Upsert(contextValue context.Context, mark *model.AttendanceMark) (_ *model.Attendance, created bool, returnedError error) {
	key := bson.M{"employeeId": mark.EmployeeID, "date": mark.Date.UTC()}
	updateOptions := options.Update().SetUpsert(true)

	result, updateError := repository.collection.UpdateOne(contextValue, key, markUpdate(mark, time.Now().UTC()), updateOptions)
	if updateError != nil && mongo.IsDuplicateKeyError(updateError) {
		// 同時插入的競爭：另一筆已建立，改以更新重試一次
		result, updateError = repository.collection.UpdateOne(contextValue, key, markUpdate(mark, time.Now().UTC()), updateOptions)
	}
	if updateError != nil {
		return nil, false, translateWriteError(updateError)
	}

	var attendance model.Attendance
	if returnedError = repository.collection.FindOne(contextValue, key).Decode(&attendance); returnedError != nil {
		return nil, false, returnedError
	}
	return &attendance, result.UpsertedCount > 0, nil
}

// List 依日期、簽到時間新到舊，筆數上限由 filter.Limit 決定
func (repository *AttendanceRepository) List(contextValue context.Context, filter core.AttendanceFilter) (_ []*model.Attendance, returnedError error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "checkIn", Value: -1}})
	if filter.Limit > 0 {
		findOptions.SetLimit(filter.Limit)
	}
	cursor, findError := repository.collection.Find(contextValue, attendanceFilterQuery(filter), findOptions)
	if findError != nil {
		return nil, findError
	}
	return decodeAll[model.Attendance](contextValue, cursor)
}

func (repository *AttendanceRepository) Count(contextValue context.Context, filter core.AttendanceFilter) (int64, error) {
	return repository.collection.CountDocuments(contextValue, attendanceFilterQuery(filter))
}
