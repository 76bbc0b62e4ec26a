// Package notify provides the outbound message channels used by the
// notification dispatcher: a bulk SMS gateway and the WhatsApp Cloud API.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/ports"
	"mparcel/internal/pkg/errs"
)

// SMSConfig carries the bulk SMS gateway credentials.
type SMSConfig struct {
	BaseURL     string
	APIKey      string
	Username    string
	SenderID    string
	HTTPTimeout time.Duration
}

// SMSChannel sends plain text messages through an Africa's Talking style
// messaging endpoint.
type SMSChannel struct {
	config     SMSConfig
	httpClient *http.Client
}

func NewSMSChannel(config SMSConfig) (*SMSChannel, error) {
	if config.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if config.APIKey == "" || config.Username == "" {
		return nil, errs.NewValueIsRequiredError("smsCredentials")
	}

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &SMSChannel{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *SMSChannel) Channel() ports.Channel {
	return ports.ChannelSMS
}

type smsResponse struct {
	SMSMessageData struct {
		Recipients []struct {
			Number     string `json:"number"`
			Status     string `json:"status"`
			StatusCode int    `json:"statusCode"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

func (c *SMSChannel) Send(ctx context.Context, recipient kernel.Phone, message string) error {
	form := url.Values{}
	form.Set("username", c.config.Username)
	form.Set("to", "+"+recipient.String())
	form.Set("message", message)
	if c.config.SenderID != "" {
		form.Set("from", c.config.SenderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+"/version1/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apiKey", c.config.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewUpstreamErrorWithCause("sms send", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewUpstreamErrorWithCause("sms send", "", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errs.NewUpstreamError("sms send", string(body))
	}

	var parsed smsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return errs.NewUpstreamErrorWithCause("sms send", string(body), err)
	}

	for _, r := range parsed.SMSMessageData.Recipients {
		// 1xx codes mean the gateway accepted the message
		if r.StatusCode >= 200 {
			return errs.NewUpstreamError("sms send",
				fmt.Sprintf("recipient %s rejected: %s", r.Number, r.Status))
		}
	}

	return nil
}
