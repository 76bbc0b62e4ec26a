// Package mpesa talks to the Safaricom Daraja API: it requests OAuth access
// tokens, initiates STK push prompts and decodes the asynchronous payment
// callbacks Safaricom posts back.
package mpesa

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mparcel/internal/core/ports"
	"mparcel/internal/pkg/errs"
)

const (
	authPath    = "/oauth/v1/generate?grant_type=client_credentials"
	stkPushPath = "/mpesa/stkpush/v1/processrequest"

	// Daraja issues tokens valid for 3599 seconds; refresh a minute early.
	tokenTTLMargin = time.Minute

	timestampLayout = "20060102150405"
)

// Config carries the Daraja credentials and endpoints.
type Config struct {
	BaseURL     string
	ConsumerKey string
	ConsumerSec string
	Shortcode   string
	Passkey     string
	CallbackURL string
	HTTPTimeout time.Duration
}

// Client implements ports.PaymentGateway against the Daraja sandbox or
// production environment.
type Client struct {
	config     Config
	httpClient *http.Client
	tokens     TokenStore
	now        func() time.Time
}

func NewClient(config Config, tokens TokenStore) (*Client, error) {
	if config.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	if config.ConsumerKey == "" || config.ConsumerSec == "" {
		return nil, errs.NewValueIsRequiredError("consumerCredentials")
	}
	if config.Shortcode == "" || config.Passkey == "" {
		return nil, errs.NewValueIsRequiredError("shortcodeCredentials")
	}
	if config.CallbackURL == "" {
		return nil, errs.NewValueIsRequiredError("callbackURL")
	}
	if tokens == nil {
		return nil, errs.NewValueIsRequiredError("tokens")
	}

	timeout := config.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		now:        time.Now,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	cached, err := c.tokens.Get(ctx)
	if err == nil && cached != "" {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+authPath, nil)
	if err != nil {
		return "", err
	}

	credentials := base64.StdEncoding.EncodeToString(
		[]byte(c.config.ConsumerKey + ":" + c.config.ConsumerSec))
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errs.NewUpstreamErrorWithCause("mpesa auth", "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewUpstreamErrorWithCause("mpesa auth", "", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", errs.NewUpstreamError("mpesa auth", string(body))
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", errs.NewUpstreamErrorWithCause("mpesa auth", string(body), err)
	}
	if token.AccessToken == "" {
		return "", errs.NewUpstreamError("mpesa auth", string(body))
	}

	ttl := time.Hour - tokenTTLMargin
	if err := c.tokens.Set(ctx, token.AccessToken, ttl); err != nil {
		// a cold cache only costs an extra auth round trip
		return token.AccessToken, nil
	}

	return token.AccessToken, nil
}

type stkPushRequest struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

type stkPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// InitiateSTKPush asks Safaricom to pop a payment prompt on the customer's
// phone. The returned CheckoutRequestID correlates the later callback.
func (c *Client) InitiateSTKPush(ctx context.Context, request ports.STKPushRequest) (ports.STKPushAck, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return ports.STKPushAck{}, err
	}

	timestamp := c.now().Format(timestampLayout)
	password := base64.StdEncoding.EncodeToString(
		[]byte(c.config.Shortcode + c.config.Passkey + timestamp))

	payload := stkPushRequest{
		BusinessShortCode: c.config.Shortcode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            request.Amount.Amount(),
		PartyA:            request.Phone.String(),
		PartyB:            c.config.Shortcode,
		PhoneNumber:       request.Phone.String(),
		CallBackURL:       c.config.CallbackURL,
		AccountReference:  request.OrderID.String(),
		TransactionDesc:   fmt.Sprintf("Delivery %s", request.OrderID.String()),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.STKPushAck{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.config.BaseURL+stkPushPath, bytes.NewReader(body))
	if err != nil {
		return ports.STKPushAck{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.STKPushAck{}, errs.NewUpstreamErrorWithCause("mpesa stkpush", "", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return ports.STKPushAck{}, errs.NewUpstreamErrorWithCause("mpesa stkpush", "", err)
	}

	if resp.StatusCode != http.StatusOK {
		return ports.STKPushAck{}, errs.NewUpstreamError("mpesa stkpush", string(respBody))
	}

	var ack stkPushResponse
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return ports.STKPushAck{}, errs.NewUpstreamErrorWithCause("mpesa stkpush", string(respBody), err)
	}

	if ack.ResponseCode != "0" {
		return ports.STKPushAck{}, errs.NewUpstreamError("mpesa stkpush", string(respBody))
	}

	return ports.STKPushAck{
		MerchantRequestID:   ack.MerchantRequestID,
		CheckoutRequestID:   ack.CheckoutRequestID,
		ResponseCode:        ack.ResponseCode,
		ResponseDescription: ack.ResponseDescription,
		CustomerMessage:     ack.CustomerMessage,
	}, nil
}
