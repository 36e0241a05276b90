package consts

const (
	// RequestId 请求id名称
	RequestId = "request_id"

	DateLayout   = "2006-01-02"
	TimeLayout   = "2006-01-02 15:04:05"
	TimeLayoutMs = "2006-01-02 15:04:05.000"
)

// 信号方向限制模式
const (
	DirectionAllowLongShort = "allow_long_short"
	DirectionAllowLongOnly  = "allow_long_only"
	DirectionAllowShortOnly = "allow_short_only"
)

// 信号动作
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

// 执行记录状态
const (
	ExecStatusSuccess = "success"
	ExecStatusFailed  = "failed"
	ExecStatusIgnored = "ignored"
)

// 杠杆的合法区间，交易所侧的硬限制
const (
	LeverageMin = 1
	LeverageMax = 125
)

// 资金分配比例范围
const (
	CapitalMin = 1
	CapitalMax = 100
)
