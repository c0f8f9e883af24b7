package model

import (
	"time"

	"shiftboard/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Employee struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id"`
	Name       string              `json:"name" bson:"name"`
	Email      string              `json:"email" bson:"email"`
	Phone      string              `json:"phone" bson:"phone"`
	Position   string              `json:"position" bson:"position"`
	Department string              `json:"department" bson:"department"`
	HireDate   time.Time           `json:"hireDate" bson:"hireDate"`
	Status     core.EmployeeStatus `json:"status" bson:"status"`
	UserID     string              `json:"userId,omitempty" bson:"userId,omitempty"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt" bson:"updatedAt"`
}

var EmployeeIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("uniq_email").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_createdAt_desc"),
	},
}
