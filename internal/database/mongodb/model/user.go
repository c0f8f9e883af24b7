package model

import (
	"time"

	"shiftboard/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`              // 使用者唯一識別碼
	Email        string             `json:"email" bson:"email"`         // 小寫後儲存
	PasswordHash string             `json:"-" bson:"passwordHash"`      // bcrypt
	Role         core.Role          `json:"role" bson:"role"`           // admin / employee
	Name         string             `json:"name" bson:"name"`           // 顯示名稱
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"` // 建立時間
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"` // 更新時間
}

func (u *User) Caller() *core.Caller {
	return &core.Caller{
		ID:    u.ID.Hex(),
		Email: u.Email,
		Role:  u.Role,
		Name:  u.Name,
	}
}

var UserIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
}
