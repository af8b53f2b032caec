package dto

// Response HTTP 和 WS 共用的响应体，code 见 transport 包。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(code int, data any) Response {
	return Response{Code: code, Data: data}
}

func Error(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

// ErrorWithData 失败但仍带上当前状态（例如落盘失败时内存里已经移动了）。
func ErrorWithData(code int, msg string, data any) Response {
	return Response{Code: code, Msg: msg, Data: data}
}

// LocateReq 定位更新，HTTP body 和 WS msg 共用。
type LocateReq struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lng *float64 `json:"lng" binding:"required"`
}
