package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/twilio/twilio-go"
	twilioclient "github.com/twilio/twilio-go/client"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const defaultTwilioTimeout = 15 * time.Second

// ErrSenderNotConfigured 表示缺少发送消息所需的凭据或号码。
var ErrSenderNotConfigured = errors.New("未配置消息发送所需的凭据或号码")

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MessageSender 抽象一次 WhatsApp 消息发送，返回服务商的消息 ID。
type MessageSender interface {
	Send(ctx context.Context, to, body string) (string, error)
}

// TwilioCredentials 描述调用 Twilio Messages API 所需的信息。
type TwilioCredentials struct {
	AccountSID string
	AuthToken  string
	From       string
}

// TwilioClient 基于 twilio-go SDK 发送 WhatsApp 消息。
type TwilioClient struct {
	creds   TwilioCredentials
	http    httpDoer
	baseURL *url.URL
}

// NewTwilioClient 构造 TwilioClient，发送号码统一补全 whatsapp: 前缀。
func NewTwilioClient(creds TwilioCredentials) *TwilioClient {
	creds.AccountSID = strings.TrimSpace(creds.AccountSID)
	creds.AuthToken = strings.TrimSpace(creds.AuthToken)
	creds.From = normalizeWhatsAppAddress(creds.From)

	return &TwilioClient{
		creds: creds,
		http:  &http.Client{Timeout: defaultTwilioTimeout},
	}
}

// SetHTTPClient 替换 SDK 使用的底层 HTTP 客户端，主要面向测试场景。
func (c *TwilioClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: defaultTwilioTimeout}
		return
	}
	c.http = client
}

// SetBaseURL 覆盖 Twilio API 的地址，为空或无法解析时使用 SDK 默认地址。
func (c *TwilioClient) SetBaseURL(base string) {
	trimmed := strings.TrimRight(strings.TrimSpace(base), "/")
	if trimmed == "" {
		c.baseURL = nil
		return
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		c.baseURL = nil
		return
	}
	c.baseURL = parsed
}

// Send 发送一条消息
func (c *TwilioClient) Send(ctx context.Context, to, body string) (string, error) {
	recipient := normalizeWhatsAppAddress(to)
	if c.creds.AccountSID == "" || c.creds.AuthToken == "" || c.creds.From == "" || recipient == "" {
		return "", ErrSenderNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: c.creds.AccountSID,
		Password: c.creds.AuthToken,
		Client:   c.sdkClient(ctx),
	})

	params := &openapi.CreateMessageParams{}
	params.SetPathAccountSid(c.creds.AccountSID)
	params.SetFrom(c.creds.From)
	params.SetTo(recipient)
	params.SetBody(body)

	message, err := rest.Api.CreateMessage(params)
	if err != nil {
		var apiErr *twilioclient.TwilioRestError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("Twilio 返回错误 (%d): %w", apiErr.Code, err)
		}
		return "", fmt.Errorf("请求 Twilio 接口失败: %w", err)
	}
	if message == nil || message.Sid == nil {
		return "", errors.New("Twilio 接口未返回消息 ID")
	}

	return *message.Sid, nil
}

// sdkClient 为单次发送构造 SDK 客户端，请求绑定到 ctx。
func (c *TwilioClient) sdkClient(ctx context.Context) *twilioclient.Client {
	client := &twilioclient.Client{
		Credentials: twilioclient.NewCredentials(c.creds.AccountSID, c.creds.AuthToken),
		HTTPClient: &http.Client{Transport: &twilioTransport{
			ctx:  ctx,
			base: c.baseURL,
			next: c.http,
		}},
	}
	client.SetAccountSid(c.creds.AccountSID)
	return client
}

// twilioTransport 把 SDK 的请求交给 httpDoer 执行。
type twilioTransport struct {
	ctx  context.Context
	base *url.URL
	next httpDoer
}

func (t *twilioTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(t.ctx)
	if t.base != nil {
		out.URL.Scheme = t.base.Scheme
		out.URL.Host = t.base.Host
		out.Host = t.base.Host
	}

	resp, err := t.next.Do(out)
	if err != nil {
		return nil, err
	}
	if resp.Request == nil {
		resp.Request = out
	}
	return resp, nil
}
