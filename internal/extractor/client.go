package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"AttendSheet/config"
	"AttendSheet/internal/sheet"
	"AttendSheet/pkg/errors"
)

// pdfMagic PDF 文件头，准入检查在发起网络调用前完成
const pdfMagic = "%PDF-"

// Result 提取服务的成功载荷
type Result struct {
	Employee Employee            `json:"employee"`
	Logs     []sheet.RawLogEntry `json:"logs"`
}

type Employee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type errorPayload struct {
	Error string `json:"error"`
}

// Client 考勤 PDF 提取服务的 HTTP 客户端
type Client struct {
	baseURL    string
	maxBytes   int64
	httpClient *http.Client
}

func New() *Client {
	return &Client{
		baseURL:  config.Cfg.ExtractorURL,
		maxBytes: config.Cfg.UploadMaxBytes,
		httpClient: &http.Client{
			Timeout: time.Duration(config.Cfg.ExtractorTimeoutSeconds) * time.Second,
		},
	}
}

// NewWithOptions 测试用构造
func NewWithOptions(baseURL string, maxBytes int64, client *http.Client) *Client {
	return &Client{baseURL: baseURL, maxBytes: maxBytes, httpClient: client}
}

// Validate 上传准入：大小上限 + PDF 类型（扩展名和文件头都查）
func (c *Client) Validate(filename string, size int64, head []byte) error {
	if size > c.maxBytes {
		return errors.FileTooLarge
	}

	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return errors.FileTypeInvalid
	}

	if !bytes.HasPrefix(head, []byte(pdfMagic)) {
		return errors.FileTypeInvalid
	}

	return nil
}

// Extract 转发 PDF 给提取服务并解析响应。
// 非 2xx 且带 {error} 体时原样透传服务端信息；传输失败或响应不可解析
// 归为服务不可用。不做重试，由用户重新发起。
func (c *Client) Extract(ctx context.Context, filename string, content []byte) (*Result, error) {
	if err := c.Validate(filename, int64(len(content)), content); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upload: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("failed to write upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.ExtractionUnavailable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.ExtractionUnavailable
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload errorPayload
		if err := json.Unmarshal(respBody, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			return nil, errors.ExtractionFailed.WithMessage(payload.Error)
		}
		return nil, errors.ExtractionFailed
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, errors.ExtractionUnavailable
	}

	return &result, nil
}
