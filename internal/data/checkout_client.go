package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/biz"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/conf"

	"github.com/go-kratos/kratos/v2/log"
)

// checkoutClient 支付服务商客户端实现 (防腐层)
// 只暴露创建结账会话一个能力，服务商报文结构不泄漏到业务层
type checkoutClient struct {
	endpoint string
	apiKey   string
	client   *http.Client
	log      *log.Helper
}

// NewCheckoutClient 创建支付服务商客户端
func NewCheckoutClient(c *conf.Bootstrap, logger log.Logger) biz.CheckoutClient {
	timeout := 10 * time.Second
	if c.Provider.Timeout != "" {
		if d, err := time.ParseDuration(c.Provider.Timeout); err == nil {
			timeout = d
		}
	}
	return &checkoutClient{
		endpoint: strings.TrimRight(c.Provider.Endpoint, "/"),
		apiKey:   c.Provider.ApiKey,
		client:   &http.Client{Timeout: timeout},
		log:      log.NewHelper(logger),
	}
}

type createSessionRequest struct {
	AmountCents int64             `json:"amount_cents"`
	Currency    string            `json:"currency"`
	ProductName string            `json:"product_name"`
	SuccessURL  string            `json:"success_url"`
	Metadata    map[string]string `json:"metadata"`
}

type createSessionResponse struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expires_at"`
}

// CreateSession 向服务商创建结账会话
// 订单号写入 metadata，回调时用于定位订单
func (c *checkoutClient) CreateSession(ctx context.Context, order *biz.PaymentOrder, plan *biz.Plan, successURL string) (*biz.CheckoutSession, error) {
	body, err := json.Marshal(&createSessionRequest{
		AmountCents: order.AmountCents,
		Currency:    order.Currency,
		ProductName: plan.Title,
		SuccessURL:  successURL,
		Metadata: map[string]string{
			"order_no":  order.OrderNo,
			"player_id": order.PlayerID,
			"plan_id":   order.PlanID,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/checkout/sessions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("Checkout session request failed for order %s: %v", order.OrderNo, err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Errorf("Checkout session rejected for order %s: status=%d body=%s", order.OrderNo, resp.StatusCode, respBody)
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var out createSessionResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("invalid provider response: %w", err)
	}
	if out.ID == "" || out.URL == "" {
		return nil, fmt.Errorf("provider response missing session id or url")
	}

	return &biz.CheckoutSession{
		SessionID:   out.ID,
		CheckoutURL: out.URL,
		ExpiresAt:   time.Unix(out.ExpiresAt, 0).UTC(),
	}, nil
}
