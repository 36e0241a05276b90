package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Retry 尝试执行 fn，如果失败则重试，最多 retries 次
// delay 是两次重试之间的间隔，backoff=true 表示指数退避
func Retry(retries int, delay time.Duration, backoff bool, fn func() error) error {
	var err error
	for i := 0; i < retries; i++ {
		err = fn()
		if err == nil {
			return nil
		}

		if i < retries-1 { // 最后一次就不用 sleep 了
			sleep := delay
			if backoff {
				sleep = delay * time.Duration(1<<i) // 1x,2x,4x,8x...
			}
			time.Sleep(sleep)
		}
	}
	return fmt.Errorf("after %d attempts, last error: %w", retries, err)
}

// quote 币种后缀，按优先级匹配，命中一个即停
var quoteSuffixes = []string{"USDT", "USD", "PERP", "USDC"}

// CleanSymbol 把 TradingView ticker 还原为交易所可下单的合约名
// 去掉交易所前缀（冒号之前）和合约装饰后缀（点之后），如
// "BINANCE:BTCUSDT.P" -> "BTCUSDT"
func CleanSymbol(tvSymbol string) string {
	s := strings.ToUpper(strings.TrimSpace(tvSymbol))
	if idx := strings.Index(s, ":"); idx >= 0 {
		s = s[idx+1:]
	}
	if idx := strings.Index(s, "."); idx >= 0 {
		s = s[:idx]
	}
	return s
}

// BaseAsset 提取信号symbol里的基础币种代码，用于和偏好里的品种比较
// "BINANCE:ETH_USDT.P" -> "ETH"
func BaseAsset(tvSymbol string) string {
	cleaned := CleanSymbol(tvSymbol)
	cleaned = strings.ReplaceAll(cleaned, "_", "")
	for _, q := range quoteSuffixes {
		if strings.HasSuffix(cleaned, q) {
			cleaned = strings.TrimSuffix(cleaned, q)
			break
		}
	}
	var b strings.Builder
	for _, ch := range cleaned {
		if unicode.IsLetter(ch) {
			b.WriteRune(ch)
		}
	}
	return b.String()
}
