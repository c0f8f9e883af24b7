package core

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────

// 資料庫名稱由 MONGODB__DATABASE 決定，這裡只定義 collection
const (
	MongoCollectionUsers      MongoCollection = "users"
	MongoCollectionEmployees  MongoCollection = "employees"
	MongoCollectionShifts     MongoCollection = "shifts"
	MongoCollectionAttendance MongoCollection = "attendances"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyBlacklist    RedisKey = "blacklist_token" // 已登出的 token (jti)
	RedisKeyLoginAttempt RedisKey = "login_attempt"   // /api/auth 節流計數
	RedisKeyServerName   RedisKey = "shiftboard"      // key 前綴
)

const (
	FluentdRequest  FluentdSubTag = "request_log"
	FluentdResponse FluentdSubTag = "response_log"
)
