package errx

// 跨模块共用的系统类错误码。
//
// 约束：
// - 这里只放技术类错误（存储不可用、超时、参数错误等），用于告警和排障
// - 领域错误码（例如 CORRUPTED_STATE）由各领域包自己定义，不在 kit 里集中

const (
	// CodeInternal 兜底的内部错误。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（kv 存储、数据库、actor 运行时）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 调用方等待超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeReqParamError 请求参数错误。
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
)

var (
	ErrInternal    = NewSys(CodeInternal, "内部错误")
	ErrUnavailable = NewSys(CodeUnavailable, "存储不可用")
	ErrTimeout     = NewSys(CodeTimeout, "请求超时")
	ErrReqParamERR = NewSys(CodeReqParamError, "请求参数错误")
)
