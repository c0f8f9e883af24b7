package error

const (
	// 0 ~ 999: 成功類別
	SUCCESS = 0 // 200 OK

	// 40000 ~ 49999: 用戶請求錯誤 (400 系列)
	BAD_REQUEST_BODY     = 40000 // 400 - 無效的請求體（欄位驗證失敗）
	BAD_REQUEST_PARAMS   = 40001 // 400 - 無效的請求參數
	BAD_REQUEST_HEADERS  = 40002 // 400 - 無效的請求標頭
	UNSUPPORTED_ENCODING = 40003 // 400 - 不支援的 Content-Encoding
	INVALID_ACTION       = 40004 // 400 - 未知的 auth action
	CONFLICT             = 40006 // 400 - 唯一欄位重複

	// 40100 ~ 40399: 驗證與權限錯誤 (401 403 系列)
	UNAUTHORIZED        = 40100 // 401 - 未授權
	INVALID_SESSION     = 40101 // 401 - 會話失效
	INVALID_CREDENTIALS = 40102 // 401 - 帳號或密碼錯誤
	FORBIDDEN           = 40301 // 403 - 角色不允許
	FORBIDDEN_OWNER     = 40302 // 403 - 非本人資料

	// 40400 ~ 40499: 資源錯誤 (404 系列)
	NOT_FOUND = 40400 // 404 - 資源未找到

	// 42900 ~ 42999: 流量限制錯誤 (429 系列)
	RATE_LIMIT_EXCEEDED = 42900 // 429 - 速率限制超過

	// 50000 ~ 50199: 伺服器內部錯誤 (500 系列)
	INTERNAL_ERROR      = 50000 // 500 - 內部錯誤
	DATABASE_ERROR      = 50001 // 500 - 資料庫錯誤
	SERVICE_UNAVAILABLE = 50002 // 503 - 服務暫停 (維護模式)
)
