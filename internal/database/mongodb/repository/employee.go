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

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(logger *zap.Logger, mongoClient *client.MongoClient) *EmployeeRepository {
	repository := newEmployeeRepository(mongoClient.Database().Collection(string(core.MongoCollectionEmployees)))
	_ = repository.ensureIndexes(context.Background(), logger)
	return repository
}

func newEmployeeRepository(collection *mongo.Collection) *EmployeeRepository {
	return &EmployeeRepository{collection: collection}
}

func (repository *EmployeeRepository) ensureIndexes(contextValue context.Context, logger *zap.Logger) error {
	return createIndexes(contextValue, logger, repository.collection, model.EmployeeIndexes)
}

func employeeFilterQuery(filter core.EmployeeFilter) bson.M {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	return query
}

func (repository *EmployeeRepository) Create(contextValue context.Context, employee *model.Employee) (_ *model.Employee, returnedError error) {
	nowUTC := time.Now().UTC()
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	if employee.Status == "" {
		employee.Status = core.EmployeeStatusActive
	}
	employee.Email = normalizeEmail(employee.Email)
	employee.CreatedAt = nowUTC
	employee.UpdatedAt = nowUTC

	if _, insertError := repository.collection.InsertOne(contextValue, employee); insertError != nil {
		return nil, translateWriteError(insertError)
	}
	return employee, nil
}

func (repository *EmployeeRepository) GetByID(contextValue context.Context, employeeIdentifier primitive.ObjectID) (_ *model.Employee, returnedError error) {
	var employee model.Employee
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": employeeIdentifier}).Decode(&employee); returnedError != nil {
		return nil, returnedError
	}
	return &employee, nil
}

func (repository *EmployeeRepository) GetByEmail(contextValue context.Context, email string) (_ *model.Employee, returnedError error) {
	var employee model.Employee
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"email": normalizeEmail(email)}).Decode(&employee); returnedError != nil {
		return nil, returnedError
	}
	return &employee, nil
}

// List 依建立時間新到舊
func (repository *EmployeeRepository) List(contextValue context.Context, filter core.EmployeeFilter) (_ []*model.Employee, returnedError error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, findError := repository.collection.Find(contextValue, employeeFilterQuery(filter), findOptions)
	if findError != nil {
		return nil, findError
	}
	return decodeAll[model.Employee](contextValue, cursor)
}

// UpdateByID 回傳更新後的文件；找不到時回傳 mongo.ErrNoDocuments
func (repository *EmployeeRepository) UpdateByID(contextValue context.Context, employeeIdentifier primitive.ObjectID, set bson.M) (_ *model.Employee, returnedError error) {
	if email, ok := set["email"].(string); ok {
		set["email"] = normalizeEmail(email)
	}
	var employee model.Employee
	returnedError = repository.collection.FindOneAndUpdate(
		contextValue,
		bson.M{"_id": employeeIdentifier},
		setUpdate(set),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&employee)
	if returnedError != nil {
		return nil, translateWriteError(returnedError)
	}
	return &employee, nil
}

func (repository *EmployeeRepository) DeleteByID(contextValue context.Context, employeeIdentifier primitive.ObjectID) (returnedError error) {
	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": employeeIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repository *EmployeeRepository) Count(contextValue context.Context, filter core.EmployeeFilter) (int64, error) {
	return repository.collection.CountDocuments(contextValue, employeeFilterQuery(filter))
}
