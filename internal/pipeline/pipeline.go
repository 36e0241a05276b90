package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"tradebridge/internal/consts"
	"tradebridge/internal/dao"
	"tradebridge/internal/exchange"
	"tradebridge/internal/model"
	"tradebridge/internal/model/entity"
	"tradebridge/pkg/errors/ecode"
	"tradebridge/pkg/logger"
	"tradebridge/pkg/utils"
)

// 信号处理流水线：过滤 -> 杠杆 -> 数量计算 -> 精度对齐 -> 下单
// 落库失败只记日志不影响应答，交易结果优先于审计记录

// 同时在途的交易所下单上限，防止信号风暴打爆交易所限频
const maxInflight = 8

type SignalPipeline struct {
	gw         exchange.Gateway
	filter     *PermissionFilter
	sizer      *PositionSizer
	normalizer *PrecisionNormalizer
	leverage   *LeverageController
	executor   *OrderExecutor

	prefDao   dao.PreferenceDao
	signalDao dao.SignalDao
	execDao   dao.ExecutionDao

	userRef string
	sem     chan struct{}
}

func NewSignalPipeline(
	gw exchange.Gateway,
	prefDao dao.PreferenceDao,
	signalDao dao.SignalDao,
	execDao dao.ExecutionDao,
	userRef string,
) *SignalPipeline {
	return &SignalPipeline{
		gw:         gw,
		filter:     NewPermissionFilter(),
		sizer:      NewPositionSizer(gw),
		normalizer: NewPrecisionNormalizer(gw),
		leverage:   NewLeverageController(gw),
		executor:   NewOrderExecutor(gw),
		prefDao:    prefDao,
		signalDao:  signalDao,
		execDao:    execDao,
		userRef:    userRef,
		sem:        make(chan struct{}, maxInflight),
	}
}

// Process 处理一条webhook信号，任何情况下都返回带timing的应答
// panic被就地恢复并降级成error应答，webhook端点不允许把500语义留给调用方猜
func (p *SignalPipeline) Process(ctx context.Context, alert model.Alert) (result *model.WebhookResult) {
	trace := model.NewTimingTrace()
	if st, ok := alert.SignalTime(); ok {
		trace.MarkSignalSent(st)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("pipeline panic recovered", logger.Pair("panic", fmt.Sprintf("%v", r)))
			result = &model.WebhookResult{
				Status:  model.StatusError,
				Message: fmt.Sprintf("Internal error: %v", r),
				Timing:  trace,
			}
		}
	}()

	select {
	case p.sem <- struct{}{}:
		defer func() { <-p.sem }()
	case <-ctx.Done():
		return &model.WebhookResult{
			Status:  model.StatusError,
			Message: "Request cancelled while waiting for execution slot",
			Timing:  trace,
		}
	}

	// 每个请求都重新读偏好，控制面板的修改立即生效
	var pref *model.Preference
	var denyReason string
	if row, err := p.prefDao.GetOrCreate(ctx, p.userRef); err != nil {
		logger.Error("preference load failed", logger.Pair("user_ref", p.userRef), logger.Pair("err", err.Error()))
		denyReason = fmt.Sprintf("Failed to load strategy preference: %v", err)
	} else {
		pref = row.ToModel()
	}

	allowed := false
	if denyReason == "" {
		switch {
		case alert.IsZero():
			denyReason = "Empty signal payload"
		case p.gw == nil:
			denyReason = "Exchange client not configured"
		default:
			decision := p.filter.Evaluate(alert, pref)
			allowed = decision.Allowed
			if !allowed {
				denyReason = decision.Reason()
			}
		}
	}
	trace.MarkProcessed()

	var outcome *model.ExecutionOutcome
	if allowed {
		trace.MarkSentToExchange()
		outcome = p.execute(ctx, alert, pref)
		trace.MarkExecuted()
		p.recordExecution(ctx, alert, outcome, "", trace)
	} else if denyReason != "" && !alert.IsZero() {
		logger.Info("signal ignored",
			logger.Pair("symbol", alert.Symbol),
			logger.Pair("strategy", alert.Strategy),
			logger.Pair("reason", denyReason))
		p.recordExecution(ctx, alert, nil, denyReason, trace)
	}

	p.recordSignal(ctx, alert)

	return p.buildResult(alert, pref, outcome, denyReason, trace)
}

// execute 走完允许之后的下单链路，每一步失败都转成结构化失败结果
func (p *SignalPipeline) execute(ctx context.Context, alert model.Alert, pref *model.Preference) *model.ExecutionOutcome {
	action := alert.NormalizedAction()
	symbol := cleanOrderSymbol(alert.Symbol)
	if symbol == "" {
		return model.FailureOutcome(ecode.ValidateErr, "Signal missing tradable symbol")
	}

	appliedLeverage, err := p.leverage.Apply(ctx, symbol, pref.GetLeverage())
	if err != nil {
		return model.FailureOutcome(ecode.ExchangeErr, err.Error())
	}

	rawQty, appliedPercent, err := p.sizer.ComputeRawQuantity(ctx, alert, pref, nil)
	if err != nil {
		return sizingFailure(err)
	}

	decision, err := p.normalizer.Normalize(ctx, rawQty, symbol)
	if err != nil {
		return sizingFailure(err)
	}

	outcome := p.executor.Submit(ctx, symbol, action, decision.NormalizedQuantityString)
	outcome.AppliedLeverage = appliedLeverage
	outcome.AppliedCapitalPercent = appliedPercent
	return outcome
}

// buildResult 组装webhook应答
func (p *SignalPipeline) buildResult(
	alert model.Alert,
	pref *model.Preference,
	outcome *model.ExecutionOutcome,
	denyReason string,
	trace *model.TimingTrace,
) *model.WebhookResult {
	result := &model.WebhookResult{
		SelectedStrategy: pref.GetStrategy(),
		SelectedProduct:  pref.GetProduct(),
		SignalStrategy:   alert.Strategy,
		SignalProduct:    utils.BaseAsset(alert.Symbol),
		Timing:           trace,
	}

	if outcome != nil {
		result.Status = model.StatusSuccess
		result.Result = outcome
		if outcome.Success {
			result.Message = "Trade executed"
		} else {
			result.Message = "Trade execution failed"
		}
		return result
	}

	result.Status = model.StatusIgnored
	result.Message = denyReason
	return result
}

// recordSignal 原始信号落库，失败只告警
func (p *SignalPipeline) recordSignal(ctx context.Context, alert model.Alert) {
	if p.signalDao == nil || alert.IsZero() {
		return
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		payload = []byte("{}")
	}

	row := &entity.Signal{
		Timestamp:  time.Now(),
		Action:     alert.NormalizedAction(),
		Symbol:     alert.Symbol,
		Quantity:   decimalPtrToFloat(alert.QuantityValue()),
		Price:      decimalPtrToFloat(alert.PriceValue()),
		Strategy:   optionalString(alert.Strategy),
		RawPayload: string(payload),
		Source:     "tradingview",
	}
	if st, ok := alert.SignalTime(); ok {
		row.SignalTime = &st
	}

	if err := p.signalDao.SaveSignal(ctx, row); err != nil {
		logger.Warnf("signal record failed: %v", err)
	}
}

// recordExecution 执行结果落库，失败只告警
func (p *SignalPipeline) recordExecution(
	ctx context.Context,
	alert model.Alert,
	outcome *model.ExecutionOutcome,
	denyReason string,
	trace *model.TimingTrace,
) {
	if p.execDao == nil {
		return
	}

	row := &entity.Execution{
		Timestamp:          time.Now(),
		Action:             alert.NormalizedAction(),
		Symbol:             alert.Symbol,
		Quantity:           decimalPtrToFloat(alert.QuantityValue()),
		SignalSentTime:     trace.SignalSent,
		ReceivedTime:       trace.Received,
		ProcessedTime:      trace.Processed,
		SentToExchangeTime: trace.SentToExchange,
		ExecutedTime:       trace.Executed,
	}

	switch {
	case outcome != nil && outcome.Success:
		row.Status = consts.ExecStatusSuccess
		row.OrderId = optionalString(outcome.OrderId)
		row.AppliedLeverage = outcome.AppliedLeverage
		row.CapitalPercent = outcome.AppliedCapitalPercent
	case outcome != nil:
		row.Status = consts.ExecStatusFailed
		row.ErrorMessage = optionalString(outcome.Error)
		row.AppliedLeverage = outcome.AppliedLeverage
		row.CapitalPercent = outcome.AppliedCapitalPercent
	default:
		row.Status = consts.ExecStatusIgnored
		row.ErrorMessage = optionalString(denyReason)
	}

	if err := p.execDao.SaveExecution(ctx, row); err != nil {
		logger.Warnf("execution record failed: %v", err)
	}
}

func sizingFailure(err error) *model.ExecutionOutcome {
	return model.FailureOutcome(ecode.SizingErr, err.Error())
}

func decimalPtrToFloat(d decimal.Decimal, ok bool) *float64 {
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
