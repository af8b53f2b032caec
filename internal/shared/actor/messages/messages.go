package messages

// 发给 GameActor 的请求。每种请求对应 actors 包里注册的一个 handler。

type Move struct {
	Direction string
}

type Locate struct {
	Lat, Lng float64
}

type Poke struct {
	I, J int
}

type Deposit struct {
	I, J int
}

type Reset struct{}

type View struct{}

// Reply 统一回包。Err 非空时 Result 仍可能有效（例如内存状态已更新但落盘失败）。
type Reply struct {
	Result any
	Err    error
}
