package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"EditorialSync/internal/config"
	"EditorialSync/internal/interfaces"
	"EditorialSync/internal/model"
	"EditorialSync/internal/utils/httpclient"

	"github.com/sirupsen/logrus"
)

// maxResponseSize 限制生成服务响应体大小，防止异常响应耗尽内存
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// 错误原因枚举
const (
	ReasonTimeout   = "timeout"   // 外部服务超时
	ReasonHTTP      = "http"      // 非2xx响应
	ReasonMalformed = "malformed" // 响应格式不符合预期schema
)

// GenerationError 生成服务边界的类型化错误。调用方按条目记录并继续，不中断批次
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("生成服务错误（%s）: %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// IsGenerationError 判断并提取类型化生成错误
func IsGenerationError(err error) (*GenerationError, bool) {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge, true
	}
	return nil, false
}

// Ensure Client implements interfaces.GenerationClient
var _ interfaces.GenerationClient = (*Client)(nil)

// Client 外部生成服务客户端（chat/completions 兼容）。不做内部重试——重试策略属于调用方
type Client struct {
	cfg        *config.GenerationConfig
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewClient 创建生成服务客户端
func NewClient(cfg *config.GenerationConfig, logger *logrus.Logger) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: httpclient.New(httpclient.Options{Timeout: cfg.Timeout, Proxy: cfg.Proxy}, logger),
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// GenerateSlot 生成单槽位自由文本
func (c *Client) GenerateSlot(ctx context.Context, systemPrompt string, payload *model.Payload) (string, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", &GenerationError{Reason: ReasonMalformed, Err: fmt.Errorf("序列化payload失败: %w", err)}
	}
	return c.complete(ctx, systemPrompt, string(payloadJSON))
}

// GenerateValueFind 生成页面级价值发现产物并校验固定schema
func (c *Client) GenerateValueFind(ctx context.Context, systemPrompt string, payloads []*model.Payload) (*model.ValueFindArtifact, error) {
	payloadJSON, err := json.Marshal(payloads)
	if err != nil {
		return nil, &GenerationError{Reason: ReasonMalformed, Err: fmt.Errorf("序列化payload失败: %w", err)}
	}
	content, err := c.complete(ctx, systemPrompt, string(payloadJSON))
	if err != nil {
		return nil, err
	}

	var artifact model.ValueFindArtifact
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &artifact); err != nil {
		return nil, &GenerationError{Reason: ReasonMalformed, Err: fmt.Errorf("解析产物JSON失败: %w", err)}
	}
	if err := artifact.Validate(); err != nil {
		return nil, &GenerationError{Reason: ReasonMalformed, Err: err}
	}
	return &artifact, nil
}

// complete 发起一次chat补全请求，返回首条消息文本
func (c *Client) complete(ctx context.Context, systemPrompt, userContent string) (string, error) {
	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userContent},
		},
	}
	bodyJSON, err := json.Marshal(reqBody)
	if err != nil {
		return "", &GenerationError{Reason: ReasonMalformed, Err: err}
	}

	u := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(bodyJSON))
	if err != nil {
		return "", &GenerationError{Reason: ReasonHTTP, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// 超时（客户端超时或ctx截止）与其他网络错误区分上报
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return "", &GenerationError{Reason: ReasonTimeout, Err: err}
		}
		return "", &GenerationError{Reason: ReasonHTTP, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Errorf("关闭生成服务响应体失败: %v", err)
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", &GenerationError{Reason: ReasonHTTP, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &GenerationError{Reason: ReasonHTTP, Err: fmt.Errorf("生成服务返回 %d: %s", resp.StatusCode, truncate(string(body), 256))}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", &GenerationError{Reason: ReasonMalformed, Err: fmt.Errorf("解析响应失败: %w", err)}
	}
	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return "", &GenerationError{Reason: ReasonMalformed, Err: fmt.Errorf("响应无有效choice")}
	}
	return chatResp.Choices[0].Message.Content, nil
}

// stripCodeFence 模型偶尔把JSON包在```json围栏里，剥掉后再解析
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

func isTimeout(err error) bool {
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
