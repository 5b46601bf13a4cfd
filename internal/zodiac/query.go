package zodiac

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultName：姓名为空时的称呼
const DefaultName = "there"

// Query：一次查询的输入，仅存活于请求内
type Query struct {
	Name  string
	DOB   string
	Year  int
	Month int
	Day   int
}

// Reading：查询结果，同时作为 JSON 成功响应体
type Reading struct {
	Name    string `json:"name"`
	DOB     string `json:"dob"`
	Western string `json:"western"`
	Chinese string `json:"chinese"`
}

var errPartCount = errors.New("want 3 parts")

// ParseDOB：按 "-" 切分为年、月、日三段整数
// 约束：不校验日历合法性（如 2-30 可通过）；负数年份无法表达，"-" 即分隔符
func ParseDOB(dob string) (Query, error) {
	parts := strings.Split(dob, "-")
	if len(parts) != 3 {
		return Query{}, &InputError{DOB: dob, Err: fmt.Errorf("%w, got %d", errPartCount, len(parts))}
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Query{}, &InputError{DOB: dob, Err: err}
		}
		nums[i] = n
	}
	return Query{DOB: dob, Year: nums[0], Month: nums[1], Day: nums[2]}, nil
}

// DisplayName：去除首尾空白，空值回退为 DefaultName
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultName
	}
	return name
}

// Reading：对已解析的查询执行两个查表
func (q Query) Reading() Reading {
	return Reading{
		Name:    q.Name,
		DOB:     q.DOB,
		Western: Western(q.Month, q.Day),
		Chinese: Chinese(q.Year),
	}
}

// Resolve：解析日期并计算星座与生肖；name 原样写入结果，调用方负责规范化
func Resolve(name, dob string) (Reading, error) {
	q, err := ParseDOB(dob)
	if err != nil {
		return Reading{}, err
	}
	q.Name = name
	return q.Reading(), nil
}
