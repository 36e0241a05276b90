package pipeline

import (
	"fmt"
	"strings"

	"tradebridge/internal/consts"
	"tradebridge/internal/model"
	"tradebridge/pkg/utils"
)

// 信号准入过滤：策略、方向、品种三项全过才允许下单
// 拒绝属于预期内的no-op，不是错误

type Decision struct {
	Allowed bool
	Reasons []string
}

// Reason 多条拒绝原因合并成一条提示
func (d Decision) Reason() string {
	return strings.Join(d.Reasons, "; ")
}

type PermissionFilter struct{}

func NewPermissionFilter() *PermissionFilter {
	return &PermissionFilter{}
}

// Evaluate 校验信号和偏好是否允许执行
func (f *PermissionFilter) Evaluate(alert model.Alert, pref *model.Preference) Decision {
	var reasons []string

	if pref == nil {
		reasons = append(reasons, "No strategy preferences configured")
		return Decision{Allowed: false, Reasons: reasons}
	}

	if reason := f.checkStrategy(alert, pref); reason != "" {
		reasons = append(reasons, reason)
	}
	if reason := f.checkDirection(alert, pref); reason != "" {
		reasons = append(reasons, reason)
	}
	if reason := f.checkProduct(alert, pref); reason != "" {
		reasons = append(reasons, reason)
	}

	return Decision{Allowed: len(reasons) == 0, Reasons: reasons}
}

// checkStrategy 信号策略必须和控制面板选中的策略一致（忽略大小写）
func (f *PermissionFilter) checkStrategy(alert model.Alert, pref *model.Preference) string {
	selected := strings.TrimSpace(pref.GetStrategy())
	incoming := strings.TrimSpace(alert.Strategy)

	if selected == "" {
		return "No strategy selected in control panel"
	}
	if incoming == "" {
		return "Signal missing strategy value"
	}
	if !strings.EqualFold(incoming, selected) {
		return fmt.Sprintf("Strategy mismatch (selected %s, signal %s)", selected, incoming)
	}
	return ""
}

// checkDirection 方向限制：long-only只放行buy，short-only只放行sell
func (f *PermissionFilter) checkDirection(alert model.Alert, pref *model.Preference) string {
	mode := strings.ToLower(strings.TrimSpace(pref.GetDirectionMode()))
	if mode == "" || mode == consts.DirectionAllowLongShort {
		return ""
	}

	action := alert.NormalizedAction()
	if action == "" {
		return "Signal missing action value"
	}
	if mode == consts.DirectionAllowLongOnly && action != consts.ActionBuy {
		return "Blocked short signal: long-only mode enabled"
	}
	if mode == consts.DirectionAllowShortOnly && action != consts.ActionSell {
		return "Blocked long signal: short-only mode enabled"
	}
	return ""
}

// checkProduct 信号symbol归一化成基础币种后和选中的品种比较
func (f *PermissionFilter) checkProduct(alert model.Alert, pref *model.Preference) string {
	selected := strings.TrimSpace(pref.GetProduct())
	if selected == "" {
		return ""
	}
	base := utils.BaseAsset(alert.Symbol)
	if base == "" {
		return "Signal missing tradable symbol"
	}
	if !strings.EqualFold(base, selected) {
		return fmt.Sprintf("Product mismatch (selected %s, signal %s)", selected, base)
	}
	return ""
}
