package dto

type DashboardStatsDto struct {
	TotalEmployees  int64 `json:"totalEmployees"`
	TotalShifts     int64 `json:"totalShifts"`
	TodayAttendance int64 `json:"todayAttendance"`
	UpcomingShifts  int64 `json:"upcomingShifts"`
}
