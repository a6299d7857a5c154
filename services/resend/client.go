package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opentracing/opentracing-go"
	tracingLog "github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/inboxd/inboxd/config"
	"github.com/inboxd/inboxd/interfaces"
	"github.com/inboxd/inboxd/internal/tracing"
)

const defaultBaseURL = "https://api.resend.com"

type resendClient struct {
	cfg        *config.ResendConfig
	httpClient *http.Client
}

func NewResendClient(cfg *config.ResendConfig) interfaces.EmailProviderClient {
	return &resendClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *resendClient) baseURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return defaultBaseURL
}

// SendMessage submits the message to Resend and returns the provider-assigned
// message id.
func (c *resendClient) SendMessage(ctx context.Context, request interfaces.SendMessageRequest) (string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ResendClient.SendMessage")
	defer span.Finish()
	span.LogKV("from", request.From)

	if c.cfg.APIKey == "" {
		err := errors.New("Resend API configuration is missing")
		tracing.TraceErr(span, err)
		return "", err
	}

	body, err := json.Marshal(request)
	if err != nil {
		tracing.TraceErr(span, err)
		return "", errors.Wrap(err, "failed to encode send request")
	}

	var response struct {
		ID string `json:"id"`
	}
	if err := c.do(ctx, http.MethodPost, c.baseURL()+"/emails", bytes.NewReader(body), &response); err != nil {
		tracing.TraceErr(span, err)
		return "", err
	}

	span.LogFields(tracingLog.String("resendId", response.ID))
	return response.ID, nil
}

// FetchMessageContent retrieves the stored body of a message from Resend.
func (c *resendClient) FetchMessageContent(ctx context.Context, resendID string) (*interfaces.MessageContent, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ResendClient.FetchMessageContent")
	defer span.Finish()
	span.LogKV("resendId", resendID)

	var response struct {
		HTML string `json:"html"`
		Text string `json:"text"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/emails/%s", c.baseURL(), resendID), nil, &response); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &interfaces.MessageContent{
		HTML: response.HTML,
		Text: response.Text,
	}, nil
}

// FetchAttachment resolves attachment metadata and a short-lived download
// location; attachment bytes never transit this service.
func (c *resendClient) FetchAttachment(ctx context.Context, resendID, attachmentID string) (*interfaces.AttachmentContent, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ResendClient.FetchAttachment")
	defer span.Finish()
	span.LogKV("resendId", resendID, "attachmentId", attachmentID)

	var response struct {
		DownloadURL string `json:"download_url"`
		Filename    string `json:"filename"`
		ContentType string `json:"content_type"`
		Size        int64  `json:"size"`
	}
	url := fmt.Sprintf("%s/emails/%s/attachments/%s", c.baseURL(), resendID, attachmentID)
	if err := c.do(ctx, http.MethodGet, url, nil, &response); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	return &interfaces.AttachmentContent{
		DownloadURL: response.DownloadURL,
		Filename:    response.Filename,
		ContentType: response.ContentType,
		Size:        response.Size,
	}, nil
}

func (c *resendClient) do(ctx context.Context, method, url string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to call Resend API")
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read Resend response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("Resend API returned %d: %s", resp.StatusCode, string(responseBody))
	}

	if out != nil {
		if err := json.Unmarshal(responseBody, out); err != nil {
			return errors.Wrap(err, "failed to parse Resend response")
		}
	}

	return nil
}
