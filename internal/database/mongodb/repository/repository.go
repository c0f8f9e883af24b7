package repository

import (
	"context"
	"errors"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrDuplicate 唯一索引衝突
var ErrDuplicate = errors.New("duplicate key")

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewUserRepository,
	NewEmployeeRepository,
	NewShiftRepository,
	NewAttendanceRepository,
)

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

// setUpdate 只有在有欄位時才帶 $set
func setUpdate(set bson.M) bson.M {
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	return withUpdatedAt(update)
}

// createIndexes 冪等建立索引，失敗時記錄 warn 並回傳錯誤
func createIndexes(contextValue context.Context, logger *zap.Logger, collection *mongo.Collection, indexes []mongo.IndexModel) error {
	if _, err := collection.Indexes().CreateMany(contextValue, indexes); err != nil {
		logger.Warn("mongodb create indexes failed",
			zap.String("collection", collection.Name()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func translateWriteError(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}

// decodeAll 讀完 cursor，空結果回傳空 slice
func decodeAll[T any](contextValue context.Context, cursor *mongo.Cursor) ([]*T, error) {
	defer cursor.Close(contextValue)

	results := make([]*T, 0)
	for cursor.Next(contextValue) {
		var item T
		if decodeError := cursor.Decode(&item); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &item)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}
	return results, nil
}
