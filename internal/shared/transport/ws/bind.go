package ws

import (
	"errors"

	"github.com/go-viper/mapstructure/v2"
)

// Bind 把 ReqBody.Msg（json 解出来的 map）解到目标结构体，按 json tag 对字段。
// 数字写成字符串也能接受（定位源有时会这么发）。
func Bind(req *WsMsgReq, dst any) error {
	if req == nil || req.Body == nil {
		return errors.New("ws request body is nil")
	}
	if req.Body.Msg == nil {
		return errors.New("ws request msg is empty")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(req.Body.Msg)
}
