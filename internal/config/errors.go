package config

import "fmt"

// FieldError 提供字段路径与错误原因，便于 CLI 向用户反馈。
type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// newFieldError 创建包含字段路径与原因的 error，便于 CLI 定位。
func newFieldError(field, reason string) error {
	return FieldError{Field: field, Reason: reason}
}

// logField 用于拼接日志源级字段路径，方便输出 Logs[xxx].Field 形式。
func logField(name, field string) string {
	if name == "" {
		return fmt.Sprintf("Logs[].%s", field)
	}
	return fmt.Sprintf("Logs[%s].%s", name, field)
}
