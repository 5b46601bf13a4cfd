package api

// errorBody：400 等错误响应
type errorBody struct {
	Error string `json:"error"`
}

// dobHint：日期格式错误时返回给调用方的固定提示
const dobHint = "Use dob=YYYY-MM-DD"

type healthBody struct {
	Status string `json:"status"`
	Commit string `json:"commit"`
}

type statsDisabledBody struct {
	Enabled bool `json:"enabled"`
}
