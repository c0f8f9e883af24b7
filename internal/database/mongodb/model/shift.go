package model

import (
	"time"

	"shiftboard/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Shift struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeID string             `json:"employeeId" bson:"employeeId"`
	Date       time.Time          `json:"date" bson:"date"`
	StartTime  time.Time          `json:"startTime" bson:"startTime"`
	EndTime    time.Time          `json:"endTime" bson:"endTime"`
	Location   string             `json:"location" bson:"location"`
	Notes      string             `json:"notes,omitempty" bson:"notes,omitempty"`
	Status     core.ShiftStatus   `json:"status" bson:"status"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var ShiftIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("idx_employeeId_date"),
	},
	{
		Keys:    bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: 1}},
		Options: options.Index().SetName("idx_date_desc_startTime"),
	},
	{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_status"),
	},
}
