// Package servicetest 提供服務層 store 介面的記憶體實作，供 service / handler 測試使用
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"
	"shiftboard/internal/database/mongodb/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserStore struct {
	mu    sync.Mutex
	users []*model.User
}

func (s *UserStore) Create(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, repository.ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	s.users = append(s.users, &copied)
	return user, nil
}

func (s *UserStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.GetByEmail(ctx, email)
	return err == nil, nil
}

func (s *UserStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type EmployeeStore struct {
	mu        sync.Mutex
	employees []*model.Employee
	// Err 不為 nil 時所有操作回傳此錯誤
	Err error
	// Unindexed 模擬 email 唯一索引不存在
	Unindexed bool
}

func (s *EmployeeStore) Create(_ context.Context, employee *model.Employee) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, e := range s.employees {
		if !s.Unindexed && e.Email == employee.Email {
			return nil, repository.ErrDuplicate
		}
	}
	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	if employee.Status == "" {
		employee.Status = core.EmployeeStatusActive
	}
	employee.CreatedAt = time.Now().UTC()
	employee.UpdatedAt = employee.CreatedAt
	copied := *employee
	s.employees = append(s.employees, &copied)
	return employee, nil
}

func (s *EmployeeStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, e := range s.employees {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *EmployeeStore) GetByEmail(_ context.Context, email string) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, e := range s.employees {
		if e.Email == email {
			copied := *e
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *EmployeeStore) List(_ context.Context, filter core.EmployeeFilter) ([]*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]*model.Employee, 0, len(s.employees))
	for i := len(s.employees) - 1; i >= 0; i-- {
		e := s.employees[i]
		if filter.Status != "" && e.Status != filter.Status {
			continue
		}
		copied := *e
		result = append(result, &copied)
	}
	return result, nil
}

func (s *EmployeeStore) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*model.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, e := range s.employees {
		if e.ID != id {
			continue
		}
		if email, ok := set["email"].(string); ok && !s.Unindexed {
			for _, other := range s.employees {
				if other.ID != id && other.Email == email {
					return nil, repository.ErrDuplicate
				}
			}
		}
		applyEmployeeSet(e, set)
		e.UpdatedAt = time.Now().UTC()
		copied := *e
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func applyEmployeeSet(e *model.Employee, set bson.M) {
	for key, value := range set {
		switch key {
		case "name":
			e.Name = value.(string)
		case "email":
			e.Email = value.(string)
		case "phone":
			e.Phone = value.(string)
		case "position":
			e.Position = value.(string)
		case "department":
			e.Department = value.(string)
		case "hireDate":
			e.HireDate = value.(time.Time)
		case "status":
			e.Status = value.(core.EmployeeStatus)
		case "userId":
			e.UserID = value.(string)
		}
	}
}

func (s *EmployeeStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for i, e := range s.employees {
		if e.ID == id {
			s.employees = append(s.employees[:i], s.employees[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *EmployeeStore) Count(ctx context.Context, filter core.EmployeeFilter) (int64, error) {
	list, err := s.List(ctx, filter)
	return int64(len(list)), err
}

type ShiftStore struct {
	mu     sync.Mutex
	shifts []*model.Shift
}

func (s *ShiftStore) Create(_ context.Context, shift *model.Shift) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shift.ID.IsZero() {
		shift.ID = primitive.NewObjectID()
	}
	if shift.Status == "" {
		shift.Status = core.ShiftStatusScheduled
	}
	shift.CreatedAt = time.Now().UTC()
	shift.UpdatedAt = shift.CreatedAt
	copied := *shift
	s.shifts = append(s.shifts, &copied)
	return shift, nil
}

func (s *ShiftStore) GetByID(_ context.Context, id primitive.ObjectID) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, shift := range s.shifts {
		if shift.ID == id {
			copied := *shift
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func matchShift(shift *model.Shift, filter core.ShiftFilter) bool {
	if filter.EmployeeID != "" && shift.EmployeeID != filter.EmployeeID {
		return false
	}
	if filter.Day != nil {
		start, end := core.DayWindow(*filter.Day)
		if shift.Date.Before(start) || shift.Date.After(end) {
			return false
		}
	}
	if filter.From != nil && shift.Date.Before(*filter.From) {
		return false
	}
	if filter.Status != "" && shift.Status != filter.Status {
		return false
	}
	return true
}

func (s *ShiftStore) List(_ context.Context, filter core.ShiftFilter) ([]*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*model.Shift, 0)
	for _, shift := range s.shifts {
		if matchShift(shift, filter) {
			copied := *shift
			result = append(result, &copied)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].StartTime.Before(result[j].StartTime)
	})
	return result, nil
}

func (s *ShiftStore) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (*model.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, shift := range s.shifts {
		if shift.ID != id {
			continue
		}
		for key, value := range set {
			switch key {
			case "employeeId":
				shift.EmployeeID = value.(string)
			case "date":
				shift.Date = value.(time.Time)
			case "startTime":
				shift.StartTime = value.(time.Time)
			case "endTime":
				shift.EndTime = value.(time.Time)
			case "location":
				shift.Location = value.(string)
			case "notes":
				shift.Notes = value.(string)
			case "status":
				shift.Status = value.(core.ShiftStatus)
			}
		}
		shift.UpdatedAt = time.Now().UTC()
		copied := *shift
		return &copied, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (s *ShiftStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, shift := range s.shifts {
		if shift.ID == id {
			s.shifts = append(s.shifts[:i], s.shifts[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (s *ShiftStore) Count(ctx context.Context, filter core.ShiftFilter) (int64, error) {
	list, err := s.List(ctx, filter)
	return int64(len(list)), err
}

func (s *ShiftStore) CompletePast(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var affected int64
	for _, shift := range s.shifts {
		if shift.Status == core.ShiftStatusScheduled && shift.EndTime.Before(now) {
			shift.Status = core.ShiftStatusCompleted
			affected++
		}
	}
	return affected, nil
}

func (s *ShiftStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.shifts)
}

// AttendanceStore 與 mongo 版本相同的 upsert 語意：(employeeId, date) 唯一
type AttendanceStore struct {
	mu      sync.Mutex
	records []*model.Attendance
}

func (s *AttendanceStore) Upsert(_ context.Context, mark *model.AttendanceMark) (*model.Attendance, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	for _, record := range s.records {
		if record.EmployeeID == mark.EmployeeID && record.Date.Equal(mark.Date) {
			record.CheckIn = mark.CheckIn
			if mark.CheckOut != nil {
				checkOut := *mark.CheckOut
				record.CheckOut = &checkOut
			}
			if mark.Status != "" {
				record.Status = mark.Status
			}
			if mark.Notes != "" {
				record.Notes = mark.Notes
			}
			record.UpdatedAt = now
			copied := *record
			return &copied, false, nil
		}
	}
	record := &model.Attendance{
		ID:         primitive.NewObjectID(),
		EmployeeID: mark.EmployeeID,
		ShiftID:    mark.ShiftID,
		Date:       mark.Date,
		CheckIn:    mark.CheckIn,
		CheckOut:   mark.CheckOut,
		Status:     mark.Status,
		Notes:      mark.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if record.Status == "" {
		record.Status = core.AttendanceStatusPresent
	}
	s.records = append(s.records, record)
	copied := *record
	return &copied, true, nil
}

func (s *AttendanceStore) List(_ context.Context, filter core.AttendanceFilter) ([]*model.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]*model.Attendance, 0)
	for _, record := range s.records {
		if filter.EmployeeID != "" && record.EmployeeID != filter.EmployeeID {
			continue
		}
		if filter.From != nil && record.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && record.Date.After(*filter.To) {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		copied := *record
		result = append(result, &copied)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].CheckIn.After(result[j].CheckIn)
	})
	if filter.Limit > 0 && int64(len(result)) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (s *AttendanceStore) Count(ctx context.Context, filter core.AttendanceFilter) (int64, error) {
	filter.Limit = 0
	list, err := s.List(ctx, filter)
	return int64(len(list)), err
}

func (s *AttendanceStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Revoker 記憶體版 token 黑名單
type Revoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func (r *Revoker) Revoke(_ context.Context, tokenID string, until time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.revoked == nil {
		r.revoked = map[string]time.Time{}
	}
	r.revoked[tokenID] = until
	return nil
}

func (r *Revoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	until, ok := r.revoked[tokenID]
	return ok && time.Now().Before(until), nil
}
