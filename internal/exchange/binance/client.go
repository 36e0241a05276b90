package binance

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"tradebridge/internal/exchange"
)

// Binance USDⓈ-M 合约REST客户端
// 签名方式：对url-encoded参数串（含毫秒时间戳）做HMAC-SHA256，
// 结果以signature参数追加，apiKey放在X-MBX-APIKEY请求头

const (
	mainnetBaseURL = "https://fapi.binance.com"
	testnetBaseURL = "https://testnet.binancefuture.com"

	// 每个交易所调用的超时上限，超时按网络错误处理
	requestTimeout = 5 * time.Second
)

type Client struct {
	apiKey     string
	apiSecret  string
	baseURL    string
	httpClient *http.Client
	node       *snowflake.Node // 生成newClientOrderId
}

func NewClient(apiKey, apiSecret string, testnet bool) (*Client, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("binance client requires api key and secret")
	}
	baseURL := mainnetBaseURL
	if testnet {
		baseURL = testnetBaseURL
	}
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("init snowflake node: %w", err)
	}
	return &Client{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   baseURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		node: node,
	}, nil
}

// sign 对参数串做HMAC-SHA256签名
func (c *Client) sign(query string) string {
	mac := hmac.New(sha256.New, []byte(c.apiSecret))
	mac.Write([]byte(query))
	return hex.EncodeToString(mac.Sum(nil))
}

// newClientOrderId 每笔订单带一个本地可追踪的id
func (c *Client) newClientOrderId() string {
	return "tb-" + c.node.Generate().String()
}

// apiErrorBody 交易所拒绝时的应答体
type apiErrorBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// doRequest 执行一次API调用，signed=true时追加时间戳并签名
// 应答body原样返回，由调用方解码
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, signed bool) ([]byte, error) {
	if params == nil {
		params = url.Values{}
	}
	query := params.Encode()
	if signed {
		params.Set("timestamp", fmt.Sprintf("%d", time.Now().UnixMilli()))
		query = params.Encode()
		// signature必须追加在参数串末尾，签名内容不含signature本身
		query += "&signature=" + c.sign(query)
	}

	reqURL := c.baseURL + path
	if query != "" {
		reqURL += "?" + query
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("X-MBX-APIKEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &exchange.TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &exchange.TransportError{Op: "read " + path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// binance的错误应答固定是 {"code":-xxxx,"msg":"..."}
		var apiErr apiErrorBody
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
			return nil, &exchange.APIError{HttpStatus: resp.StatusCode, Code: apiErr.Code, Msg: apiErr.Msg}
		}
		return nil, &exchange.APIError{
			HttpStatus: resp.StatusCode,
			Msg:        strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}
