package path

import (
	"os"
	"path/filepath"
	"runtime"
)

// RootPath 傳回專案根目錄：工作目錄下有 conf/ 時用工作目錄，否則回推原始碼位置
func RootPath() string {
	if wd, err := os.Getwd(); err == nil {
		if ok, _ := Exists(filepath.Join(wd, "conf")); ok {
			return wd
		}
	}
	// /project/utils/path/path.go → /project
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("❌ 無法取得 caller 位置")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

// Resolve 相對路徑依序嘗試 root/dirs...，再退回 root；絕對路徑原樣回傳
func Resolve(root, name string, dirs ...string) string {
	if filepath.IsAbs(name) {
		return name
	}
	for _, dir := range dirs {
		candidate := filepath.Join(root, dir, name)
		if ok, _ := Exists(candidate); ok {
			return candidate
		}
	}
	return filepath.Join(root, name)
}

// Exists 路径是否存在
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
