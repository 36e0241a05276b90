package ecode

// 错误码定义，0表示成功，非0由response层转换为http应答
const (
	Success = 0

	Unknown          = 10001
	ValidateErr      = 10002
	NotFoundErr      = 10003
	RequireAuthErr   = 10004
	TooManyRequests  = 10005
	PermissionDenied = 20001 // 策略/方向/品种不允许执行，属于预期内拒绝
	SizingErr        = 20002 // 无法得出有效下单数量
	ExchangeErr      = 20003 // 交易所拒绝请求
	TransportErr     = 20004 // 网络/超时
	StorageErr       = 20005 // 持久化失败
)

var messages = map[int]string{
	Success:          "success",
	Unknown:          "unknown error",
	ValidateErr:      "invalid request parameter",
	NotFoundErr:      "record not found",
	RequireAuthErr:   "authentication required",
	TooManyRequests:  "too many requests",
	PermissionDenied: "execution not permitted",
	SizingErr:        "no valid quantity derivable",
	ExchangeErr:      "exchange rejected the request",
	TransportErr:     "exchange unreachable",
	StorageErr:       "storage write failed",
}

// Message 返回错误码的默认文案
func Message(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[Unknown]
}
