package ws

import (
	"context"
	"strings"

	"GeoCoin/internal/shared/logs"
	"GeoCoin/internal/shared/transport"
	"GeoCoin/modules/kit/logx"
)

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

type Group struct {
	prefix   string
	handlers map[string]HandlerFunc
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.handlers[name] = h
}

// Router 按 "组.处理器" 分发，例如 geo.locate。
type Router struct {
	groups map[string]*Group
	log    logx.Logger
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{
		groups: make(map[string]*Group),
		log:    l,
	}
}

func (r *Router) Group(prefix string) *Group {
	group := r.groups[prefix]
	if group == nil {
		group = &Group{prefix: prefix, handlers: make(map[string]HandlerFunc)}
		r.groups[prefix] = group
	}
	return group
}

func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.NewContext(action)
	defer r.writeAccessLog(ctx, resp)

	if req == nil || req.Body == nil || resp == nil || resp.Body == nil {
		setError(resp, transport.InvalidParam, "参数有误")
		return
	}
	// 先置系统错误，避免 handler 漏设时出现成功假象
	resp.Body.Code = transport.SystemError
	resp.Body.Msg = nil

	prefix, name, ok := parseRouteName(req.Body.Name)
	if !ok {
		setError(resp, transport.InvalidParam, "路由参数有误")
		return
	}
	group := r.groups[prefix]
	if group == nil {
		setError(resp, transport.InvalidParam, "路由组不存在")
		return
	}
	h := group.handlers[name]
	if h == nil {
		setError(resp, transport.InvalidParam, "路由处理器不存在")
		return
	}
	h(ctx, req, resp)
}

func parseRouteName(name string) (string, string, bool) {
	prefix, handler, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || handler == "" || strings.Contains(handler, ".") {
		return "", "", false
	}
	return prefix, handler, true
}

func setError(resp *WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	resp.Body.Msg = msg
}

func (r *Router) writeAccessLog(ctx context.Context, resp *WsMsgResp) {
	bizCode := transport.SystemError
	if resp != nil && resp.Body != nil {
		bizCode = resp.Body.Code
		if bizCode != transport.OK {
			if s, ok := resp.Body.Msg.(string); ok {
				transport.SetErrorReason(ctx, s)
			}
		}
	}
	transport.SetBizCode(ctx, transport.BizCode(bizCode))
	transport.WriteAccessLog(ctx, r.log)
}

// Registrar 往 ws 路由上挂处理器的模块。
type Registrar interface {
	WsRegister(r *Router)
}
