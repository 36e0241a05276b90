package execution

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"tradebridge/internal/dao"
	"tradebridge/internal/exchange"
	"tradebridge/internal/model"
	"tradebridge/internal/model/entity"
	"tradebridge/pkg/errors"
	"tradebridge/pkg/errors/ecode"
	"tradebridge/pkg/response"
)

// 执行记录和账户接口，给控制面板展示用

type Handler struct {
	execDao dao.ExecutionDao
	gw      exchange.Gateway
}

func NewHandler(execDao dao.ExecutionDao, gw exchange.Gateway) *Handler {
	return &Handler{execDao: execDao, gw: gw}
}

// executionItem 单条执行记录的应答结构，timing展开成和webhook应答一致的格式
type executionItem struct {
	Id              uint64             `json:"id"`
	Timestamp       string             `json:"timestamp"`
	Action          string             `json:"action"`
	Symbol          string             `json:"symbol"`
	Quantity        *float64           `json:"quantity"`
	Status          string             `json:"status"`
	OrderId         *string            `json:"order_id"`
	ErrorMessage    *string            `json:"error_message"`
	AppliedLeverage *int               `json:"applied_leverage"`
	CapitalPercent  *float64           `json:"capital_percent"`
	Timing          *model.TimingTrace `json:"timing"`
}

func toItem(row entity.Execution) executionItem {
	return executionItem{
		Id:              row.ID,
		Timestamp:       row.Timestamp.UTC().Format("2006-01-02T15:04:05.999999"),
		Action:          row.Action,
		Symbol:          row.Symbol,
		Quantity:        row.Quantity,
		Status:          row.Status,
		OrderId:         row.OrderId,
		ErrorMessage:    row.ErrorMessage,
		AppliedLeverage: row.AppliedLeverage,
		CapitalPercent:  row.CapitalPercent,
		Timing: &model.TimingTrace{
			SignalSent:     row.SignalSentTime,
			Received:       row.ReceivedTime,
			Processed:      row.ProcessedTime,
			SentToExchange: row.SentToExchangeTime,
			Executed:       row.ExecutedTime,
		},
	}
}

// Recent 最近的执行记录，limit默认20，dao侧钳制到[1,100]
func (h *Handler) Recent() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		limit := cast.ToInt(ctx.DefaultQuery("limit", "20"))

		rows, err := h.execDao.GetRecent(ctx, limit)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.StorageErr, "接口调用失败"), nil)
			return
		}

		items := make([]executionItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, toItem(row))
		}
		response.JSON(ctx, nil, gin.H{"executions": items, "count": len(items)})
	}
}

// AccountSummary 实时查询交易所账户余额
func (h *Handler) AccountSummary() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if h.gw == nil {
			response.JSON(ctx, errors.WithCode(ecode.ExchangeErr, "Exchange client not configured"), nil)
			return
		}
		summary, err := h.gw.AccountSummary(ctx.Request.Context())
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ExchangeErr, "接口调用失败"), nil)
			return
		}
		response.JSON(ctx, nil, summary)
	}
}
