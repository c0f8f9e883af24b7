package service

import (
	"context"
	"errors"
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"
	"shiftboard/internal/database/mongodb/repository"
	cErr "shiftboard/internal/pkg/error"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 服務層只依賴以下介面，實作為 mongodb/repository

type UserStore interface {
	Create(ctx context.Context, user *model.User) (*model.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) (*model.Employee, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Employee, error)
	GetByEmail(ctx context.Context, email string) (*model.Employee, error)
	List(ctx context.Context, filter core.EmployeeFilter) ([]*model.Employee, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Employee, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context, filter core.EmployeeFilter) (int64, error)
}

type ShiftStore interface {
	Create(ctx context.Context, shift *model.Shift) (*model.Shift, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*model.Shift, error)
	List(ctx context.Context, filter core.ShiftFilter) ([]*model.Shift, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (*model.Shift, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context, filter core.ShiftFilter) (int64, error)
	CompletePast(ctx context.Context, now time.Time) (int64, error)
}

type AttendanceStore interface {
	Upsert(ctx context.Context, mark *model.AttendanceMark) (*model.Attendance, bool, error)
	List(ctx context.Context, filter core.AttendanceFilter) ([]*model.Attendance, error)
	Count(ctx context.Context, filter core.AttendanceFilter) (int64, error)
}

var (
	_ UserStore       = (*repository.UserRepository)(nil)
	_ EmployeeStore   = (*repository.EmployeeRepository)(nil)
	_ ShiftStore      = (*repository.ShiftRepository)(nil)
	_ AttendanceStore = (*repository.AttendanceRepository)(nil)
)

// storeError 將 store 錯誤轉成對外錯誤：不存在→404、唯一鍵衝突→400、其餘→500
func storeError(err error, notFoundDesc, conflictDesc, operation string) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return cErr.NotFound(notFoundDesc)
	case errors.Is(err, repository.ErrDuplicate) && conflictDesc != "":
		return cErr.Conflict(conflictDesc)
	}
	return cErr.DatabaseError("database " + operation + " error")
}
