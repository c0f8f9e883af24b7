package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"shiftboard/internal/core"
	client "shiftboard/internal/database/client"
	"shiftboard/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(logger *zap.Logger, mongoClient *client.MongoClient) *UserRepository {
	repository := newUserRepository(mongoClient.Database().Collection(string(core.MongoCollectionUsers)))
	// 啟動時建立索引（冪等、存在即跳過）
	_ = repository.ensureIndexes(context.Background(), logger)
	return repository
}

func newUserRepository(collection *mongo.Collection) *UserRepository {
	return &UserRepository{collection: collection}
}

func (repository *UserRepository) ensureIndexes(contextValue context.Context, logger *zap.Logger) error {
	return createIndexes(contextValue, logger, repository.collection, model.UserIndexes)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Create：單文件插入，email 重複回傳 ErrDuplicate
func (repository *UserRepository) Create(
	contextValue context.Context,
	user *model.User,
) (_ *model.User, returnedError error) {

	nowUTC := time.Now().UTC()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = normalizeEmail(user.Email)
	user.CreatedAt = nowUTC
	user.UpdatedAt = nowUTC

	if _, insertError := repository.collection.InsertOne(contextValue, user); insertError != nil {
		return nil, translateWriteError(insertError)
	}
	return user, nil
}

// GetByID：單文件讀取
func (repository *UserRepository) GetByID(
	contextValue context.Context,
	userIdentifier primitive.ObjectID,
) (_ *model.User, returnedError error) {

	var user model.User
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": userIdentifier}).Decode(&user); returnedError != nil {
		return nil, returnedError
	}
	return &user, nil
}

// GetByEmail：不分大小寫
func (repository *UserRepository) GetByEmail(
	contextValue context.Context,
	email string,
) (_ *model.User, returnedError error) {

	var user model.User
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"email": normalizeEmail(email)}).Decode(&user); returnedError != nil {
		return nil, returnedError
	}
	return &user, nil
}

func (repository *UserRepository) ExistsByEmail(contextValue context.Context, email string) (bool, error) {
	_, err := repository.GetByEmail(contextValue, email)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
