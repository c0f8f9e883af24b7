package service

import (
	"context"
	"errors"
	"strings"

	"shiftboard/internal/core"
	"shiftboard/internal/database/mongodb/model"
	"shiftboard/internal/dto"
	cErr "shiftboard/internal/pkg/error"
	"shiftboard/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	employeeNotFound  = "Employee not found"
	employeeDuplicate = "Employee with this email already exists"
)

type EmployeeService struct {
	trace     *telemetry.Trace
	employees EmployeeStore
}

func NewEmployeeService(trace *telemetry.Trace, employees EmployeeStore) *EmployeeService {
	return &EmployeeService{trace: trace, employees: employees}
}

// List 全部員工，新建立的在前
func (s *EmployeeService) List(ctx context.Context) ([]*dto.EmployeeResponseDto, error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employees, err := s.employees.List(ctx, core.EmployeeFilter{})
	if err != nil {
		return nil, cErr.DatabaseError("database ListEmployees error")
	}
	s.trace.ApplyTraceAttributes(span, core.TraceListMeta{Resource: "employee", ResultCount: len(employees)})

	resp := make([]*dto.EmployeeResponseDto, len(employees))
	for i, e := range employees {
		resp[i] = modelToEmployeeResponseDto(e)
	}
	return resp, nil
}

func (s *EmployeeService) Create(ctx context.Context, req *dto.CreateEmployeeDto) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	hireDate, err := core.ParseDate(req.HireDate)
	if err != nil {
		return nil, cErr.Validation("Invalid date format", map[string]string{"hireDate": "Invalid date format"})
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.ensureEmailAvailable(ctx, email, primitive.NilObjectID); err != nil {
		return nil, err
	}
	created, err := s.employees.Create(ctx, &model.Employee{
		Name:       req.Name,
		Email:      email,
		Phone:      req.Phone,
		Position:   req.Position,
		Department: req.Department,
		HireDate:   hireDate,
		Status:     req.Status,
		UserID:     req.UserID,
	})
	if err != nil {
		return nil, storeError(err, employeeNotFound, employeeDuplicate, "CreateEmployee")
	}
	return modelToEmployeeResponseDto(created), nil
}

func (s *EmployeeService) Get(ctx context.Context, id primitive.ObjectID) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, employeeNotFound, "", "GetEmployee")
	}
	return modelToEmployeeResponseDto(employee), nil
}

// Update 只覆寫有提供的欄位，回傳更新後的文件
func (s *EmployeeService) Update(ctx context.Context, id primitive.ObjectID, req *dto.UpdateEmployeeDto) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	set := bson.M{}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if err := s.ensureEmailAvailable(ctx, email, id); err != nil {
			return nil, err
		}
		set["email"] = email
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.Position != nil {
		set["position"] = *req.Position
	}
	if req.Department != nil {
		set["department"] = *req.Department
	}
	if req.HireDate != nil {
		hireDate, err := core.ParseDate(*req.HireDate)
		if err != nil {
			return nil, cErr.Validation("Invalid date format", map[string]string{"hireDate": "Invalid date format"})
		}
		set["hireDate"] = hireDate
	}
	if req.Status != nil {
		set["status"] = *req.Status
	}
	if req.UserID != nil {
		set["userId"] = *req.UserID
	}

	updated, err := s.employees.UpdateByID(ctx, id, set)
	if err != nil {
		return nil, storeError(err, employeeNotFound, employeeDuplicate, "UpdateEmployee")
	}
	return modelToEmployeeResponseDto(updated), nil
}

func (s *EmployeeService) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if err := s.employees.DeleteByID(ctx, id); err != nil {
		return storeError(err, employeeNotFound, "", "DeleteEmployee")
	}
	return nil
}

// ensureEmailAvailable email 已屬於其他員工時回傳 Conflict；self 為本人時放行
func (s *EmployeeService) ensureEmailAvailable(ctx context.Context, email string, self primitive.ObjectID) error {
	existing, err := s.employees.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil
	case err != nil:
		return cErr.DatabaseError("database GetEmployeeByEmail error")
	case existing.ID == self:
		return nil
	}
	return cErr.Conflict(employeeDuplicate)
}

func modelToEmployeeResponseDto(e *model.Employee) *dto.EmployeeResponseDto {
	return &dto.EmployeeResponseDto{
		ID:         e.ID.Hex(),
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Position:   e.Position,
		Department: e.Department,
		HireDate:   e.HireDate,
		Status:     e.Status,
		UserID:     e.UserID,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}
