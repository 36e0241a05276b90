package model

// 策略偏好，控制面板配置的交易策略，流水线每次处理信号时读一次，只读不改

type Preference struct {
	Product                  *string  `json:"product"`
	Strategy                 *string  `json:"strategy"`
	DirectionMode            *string  `json:"direction_mode"`
	Leverage                 *float64 `json:"leverage"`
	CapitalAllocationPercent *float64 `json:"capital_allocation_percent"`
}

// 控制面板的可选项，和前端下拉框一一对应
var (
	ProductOptions = []string{
		"BTC", "ETH", "XRP", "SOL", "BNB", "DOGE",
		"NIFTY", "BANKNIFTY", "NASDAQ", "S&P", "DJ 30", "OPTIONS",
	}

	StrategyOptions = []string{
		"ALSAPRO 1", "ALSAPRO 2", "ALSAPRO 3", "ALSAPRO 4", "ALSAPRO 5",
	}

	DirectionOptions = []string{
		"allow_long_short", "allow_long_only", "allow_short_only",
	}

	LeverageOptions = []float64{0.5, 1.0, 2.0, 3.0, 4.0, 5.0}
)

// GetProduct 取值，nil时返回空串
func (p *Preference) GetProduct() string {
	if p == nil || p.Product == nil {
		return ""
	}
	return *p.Product
}

func (p *Preference) GetStrategy() string {
	if p == nil || p.Strategy == nil {
		return ""
	}
	return *p.Strategy
}

func (p *Preference) GetDirectionMode() string {
	if p == nil || p.DirectionMode == nil {
		return ""
	}
	return *p.DirectionMode
}

func (p *Preference) GetLeverage() float64 {
	if p == nil || p.Leverage == nil {
		return 0
	}
	return *p.Leverage
}

func (p *Preference) GetCapitalPercent() float64 {
	if p == nil || p.CapitalAllocationPercent == nil {
		return 0
	}
	return *p.CapitalAllocationPercent
}

// 偏好更新请求，枚举校验在boundary做，见handler/preference

type ProductSelection struct {
	Product string `json:"product" binding:"required"`
}

type StrategySelection struct {
	Strategy string `json:"strategy" binding:"required"`
}

type DirectionSelection struct {
	DirectionMode string `json:"direction_mode" binding:"required"`
}

type LeverageSelection struct {
	Leverage float64 `json:"leverage" binding:"required"`
}

type CapitalSelection struct {
	CapitalAllocationPercent float64 `json:"capital_allocation_percent" binding:"required,gte=1,lte=100"`
}
