package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// 列表类字段统一序列化成 json 列存储（mysql/postgres 均可）

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dst any, src any) error {
	switch s := src.(type) {
	case nil:
		return nil
	case []byte:
		if len(s) == 0 {
			return nil
		}
		return json.Unmarshal(s, dst)
	case string:
		if s == "" {
			return nil
		}
		return json.Unmarshal([]byte(s), dst)
	default:
		return fmt.Errorf("unsupported json column source %T", src)
	}
}

// StringList 如 product tags、附件路径列表
type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonValue([]string(l)) }
func (l *StringList) Scan(src any) error          { return jsonScan(l, src) }

// JSONMap 自由结构（如收货地址）
type JSONMap map[string]any

func (m JSONMap) Value() (driver.Value, error) { return jsonValue(map[string]any(m)) }
func (m *JSONMap) Scan(src any) error          { return jsonScan(m, src) }
