package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 响应体 code 字段。0 成功；业务拒绝和参数错误在 1~499；>=500 是技术错误。
const (
	OK           = 0
	Rejected     = 200
	InvalidParam = 400
	SystemError  = 500
	Unavailable  = 503
	Timeout      = 504
)
