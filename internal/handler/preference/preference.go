package preference

import (
	"strings"

	"github.com/gin-gonic/gin"
	"tradebridge/internal/dao"
	"tradebridge/internal/model"
	"tradebridge/pkg/errors"
	"tradebridge/pkg/errors/ecode"
	"tradebridge/pkg/response"
	"tradebridge/pkg/validator"
)

// 控制面板偏好接口，每个维度单独一个端点，改一项不影响其他项

type Handler struct {
	prefDao dao.PreferenceDao
	userRef string
}

func NewHandler(prefDao dao.PreferenceDao, userRef string) *Handler {
	return &Handler{prefDao: prefDao, userRef: userRef}
}

// Options 返回前端下拉框的全部可选项
func (h *Handler) Options() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		response.JSON(ctx, nil, gin.H{
			"products":   model.ProductOptions,
			"strategies": model.StrategyOptions,
			"directions": model.DirectionOptions,
			"leverages":  model.LeverageOptions,
		})
	}
}

// Current 返回当前保存的偏好
func (h *Handler) Current() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pref, err := h.prefDao.GetOrCreate(ctx, h.userRef)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.StorageErr, "接口调用失败"), nil)
			return
		}
		response.JSON(ctx, nil, pref.ToModel())
	}
}

// SelectProduct 选择交易品种
func (h *Handler) SelectProduct() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.ProductSelection
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if !containsFold(model.ProductOptions, req.Product) {
			response.JSON(ctx, errors.WithCodef(ecode.ValidateErr, "invalid product: %s", req.Product), nil)
			return
		}
		h.update(ctx, map[string]interface{}{"product": req.Product})
	}
}

// SelectStrategy 选择策略
func (h *Handler) SelectStrategy() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.StrategySelection
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		if !containsFold(model.StrategyOptions, req.Strategy) {
			response.JSON(ctx, errors.WithCodef(ecode.ValidateErr, "invalid strategy: %s", req.Strategy), nil)
			return
		}
		h.update(ctx, map[string]interface{}{"strategy": req.Strategy})
	}
}

// SelectDirection 选择方向限制模式
func (h *Handler) SelectDirection() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.DirectionSelection
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		mode := strings.ToLower(req.DirectionMode)
		if !containsFold(model.DirectionOptions, mode) {
			response.JSON(ctx, errors.WithCodef(ecode.ValidateErr, "invalid direction mode: %s", req.DirectionMode), nil)
			return
		}
		h.update(ctx, map[string]interface{}{"direction_mode": mode})
	}
}

// SelectLeverage 选择杠杆倍数
func (h *Handler) SelectLeverage() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.LeverageSelection
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		valid := false
		for _, opt := range model.LeverageOptions {
			if req.Leverage == opt {
				valid = true
				break
			}
		}
		if !valid {
			response.JSON(ctx, errors.WithCodef(ecode.ValidateErr, "invalid leverage: %v", req.Leverage), nil)
			return
		}
		h.update(ctx, map[string]interface{}{"leverage": req.Leverage})
	}
}

// SelectCapital 选择资金分配比例，合法区间由binding校验
func (h *Handler) SelectCapital() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.CapitalSelection
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, validator.Translate(err)), nil)
			return
		}
		h.update(ctx, map[string]interface{}{"capital_allocation_percent": req.CapitalAllocationPercent})
	}
}

func (h *Handler) update(ctx *gin.Context, updates map[string]interface{}) {
	pref, err := h.prefDao.Update(ctx, h.userRef, updates)
	if err != nil {
		response.JSON(ctx, errors.Wrap(err, ecode.StorageErr, "接口调用失败"), nil)
		return
	}
	response.JSON(ctx, nil, pref.ToModel())
}

func containsFold(options []string, v string) bool {
	for _, opt := range options {
		if strings.EqualFold(opt, v) {
			return true
		}
	}
	return false
}
