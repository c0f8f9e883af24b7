package service

import (
	"shiftboard/internal/auth"
	"shiftboard/internal/database/mongodb/repository"
	redisRepo "shiftboard/internal/database/redis/repository"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	auth.NewTokenManager,
	wire.Bind(new(UserStore), new(*repository.UserRepository)),
	wire.Bind(new(EmployeeStore), new(*repository.EmployeeRepository)),
	wire.Bind(new(ShiftStore), new(*repository.ShiftRepository)),
	wire.Bind(new(AttendanceStore), new(*repository.AttendanceRepository)),
	wire.Bind(new(auth.Revoker), new(*redisRepo.TokenBlacklistRepository)),
	NewAuthService,
	NewEmployeeService,
	NewShiftService,
	NewAttendanceService,
	NewDashboardService,
	NewHealthService,
)
