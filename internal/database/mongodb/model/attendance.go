package model

import (
	"time"

	"shiftboard/internal/core"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Attendance struct {
	ID         primitive.ObjectID    `json:"id" bson:"_id"`
	EmployeeID string                `json:"employeeId" bson:"employeeId"`
	ShiftID    string                `json:"shiftId,omitempty" bson:"shiftId,omitempty"`
	Date       time.Time             `json:"date" bson:"date"`
	CheckIn    time.Time             `json:"checkIn" bson:"checkIn"`
	CheckOut   *time.Time            `json:"checkOut,omitempty" bson:"checkOut,omitempty"`
	Status     core.AttendanceStatus `json:"status" bson:"status"`
	Notes      string                `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time             `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt" bson:"updatedAt"`
}

// AttendanceMark 一次打卡寫入；nil / 空值欄位代表未提供，不覆寫既有資料
type AttendanceMark struct {
	EmployeeID string
	ShiftID    string
	Date       time.Time
	CheckIn    time.Time
	CheckOut   *time.Time
	Status     core.AttendanceStatus
	Notes      string
}

var AttendanceIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "employeeId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetName("uniq_employeeId_date").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "date", Value: -1}, {Key: "checkIn", Value: -1}},
		Options: options.Index().SetName("idx_date_desc_checkIn_desc"),
	},
	{
		Keys:    bson.D{{Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_status"),
	},
}
