package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mparcel/internal/core/domain/model/kernel"
	"mparcel/internal/core/ports"
	"mparcel/internal/pkg/errs"
)

// WhatsAppConfig carries the Meta Cloud API credentials.
type WhatsAppConfig struct {
	BaseURL       string
	PhoneNumberID string
	AccessToken   string
	HTTPTimeout   time.Duration
}

// WhatsAppChannel sends text messages through the WhatsApp Cloud API.
type WhatsAppChannel struct {
	config     WhatsAppConfig
	httpClient *http.Client
}

func NewWhatsAppChannel(config WhatsAppConfig) (*WhatsAppChannel, error) {
	if config.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if config.PhoneNumberID == "" {
		return nil, errs.NewValueIsRequiredError("phoneNumberID")
	}
	if config.AccessToken == "" {
		return nil, errs.NewValueIsRequiredError("accessToken")
	}

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &WhatsAppChannel{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *WhatsAppChannel) Channel() ports.Channel {
	return ports.ChannelWhatsApp
}

type whatsAppMessage struct {
	MessagingProduct string       `json:"messaging_product"`
	To               string       `json:"to"`
	Type             string       `json:"type"`
	Text             whatsAppText `json:"text"`
}

type whatsAppText struct {
	Body string `json:"body"`
}

func (c *WhatsAppChannel) Send(ctx context.Context, recipient kernel.Phone, message string) error {
	payload := whatsAppMessage{
		MessagingProduct: "whatsapp",
		To:               recipient.String(),
		Type:             "text",
		Text:             whatsAppText{Body: message},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/messages", c.config.BaseURL, c.config.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewUpstreamErrorWithCause("whatsapp send", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return errs.NewUpstreamError("whatsapp send", string(respBody))
	}

	return nil
}
