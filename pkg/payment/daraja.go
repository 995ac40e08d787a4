package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// placeholderCallbackURL is sent when no usable callback URL is configured.
// The gateway insists on an https URL but a placeholder is enough for
// sandbox testing where no callback delivery is expected.
const placeholderCallbackURL = "https://mydomain.com/mpesa/callback"

// DarajaProvider talks to the Safaricom Daraja STK push API. Every call
// fetches a fresh OAuth bearer token; there is no caching or retry.
type DarajaProvider struct {
	BaseURL           string
	ConsumerKey       string
	ConsumerSecret    string
	BusinessShortCode string
	Passkey           string
	CallbackURL       string
	client            *http.Client
}

func NewDarajaProvider(baseURL, consumerKey, consumerSecret, shortCode, passkey, callbackURL string) *DarajaProvider {
	if baseURL == "" {
		baseURL = "https://sandbox.safaricom.co.ke"
	}
	return &DarajaProvider{
		BaseURL:           baseURL,
		ConsumerKey:       consumerKey,
		ConsumerSecret:    consumerSecret,
		BusinessShortCode: shortCode,
		Passkey:           passkey,
		CallbackURL:       callbackURL,
		client:            &http.Client{Timeout: 30 * time.Second},
	}
}

// GatewayError is a non-2xx answer from Daraja, carrying the gateway's own
// error envelope when it could be parsed.
type GatewayError struct {
	StatusCode   int
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func (e *GatewayError) Error() string {
	if e.ErrorMessage != "" {
		return fmt.Sprintf("gateway: %d %s %s", e.StatusCode, e.ErrorCode, e.ErrorMessage)
	}
	return fmt.Sprintf("gateway: %d", e.StatusCode)
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// getAccessToken exchanges the consumer key/secret for a bearer token via
// the client-credentials endpoint (basic auth GET).
func (p *DarajaProvider) getAccessToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		p.BaseURL+"/oauth/v1/generate?grant_type=client_credentials", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	req.SetBasicAuth(p.ConsumerKey, p.ConsumerSecret)
	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get access token: status %d", resp.StatusCode)
	}
	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("failed to get access token: empty token")
	}
	return out.AccessToken, nil
}

// timestamp is the Daraja request timestamp, UTC to the second.
func (p *DarajaProvider) timestamp() string {
	return time.Now().UTC().Format("20060102150405")
}

// password derives the request password: base64(shortcode + passkey + timestamp).
func (p *DarajaProvider) password(ts string) string {
	return base64.StdEncoding.EncodeToString([]byte(p.BusinessShortCode + p.Passkey + ts))
}

// resolveCallbackURL returns the configured callback URL, replacing an unset
// value or a webhook.site test echo with a placeholder the gateway accepts.
func (p *DarajaProvider) resolveCallbackURL() string {
	if p.CallbackURL == "" || strings.Contains(p.CallbackURL, "webhook.site") {
		log.Printf("[MPESA] WARNING: using placeholder callback URL %s; set MPESA_CALLBACK_URL to a public endpoint", placeholderCallbackURL)
		return placeholderCallbackURL
	}
	return p.CallbackURL
}

type stkPushPayload struct {
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

// STKPush sends a push-payment prompt to the payer's phone.
func (p *DarajaProvider) STKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	ts := p.timestamp()
	payload := stkPushPayload{
		BusinessShortCode: p.BusinessShortCode,
		Password:          p.password(ts),
		Timestamp:         ts,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            req.Amount,
		PartyA:            req.PhoneNumber,
		PartyB:            p.BusinessShortCode,
		PhoneNumber:       req.PhoneNumber,
		CallBackURL:       p.resolveCallbackURL(),
		AccountReference:  req.AccountReference,
		TransactionDesc:   req.Description,
	}
	if payload.AccountReference == "" {
		payload.AccountReference = "SurveyPro"
	}
	if payload.TransactionDesc == "" {
		payload.TransactionDesc = "Survey Access Fee"
	}
	log.Printf("[MPESA] STK push phone=%s amount=%d callback=%s", req.PhoneNumber, req.Amount, payload.CallBackURL)
	var out STKPushResponse
	if err := p.post(ctx, "/mpesa/stkpush/v1/processrequest", token, payload, &out); err != nil {
		return nil, err
	}
	log.Printf("[MPESA] STK push response code=%s checkout_request_id=%s", out.ResponseCode, out.CheckoutRequestID)
	return &out, nil
}

type stkQueryPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

// STKQuery asks the gateway for the outcome of an earlier push prompt.
func (p *DarajaProvider) STKQuery(ctx context.Context, checkoutRequestID string) (*STKQueryResponse, error) {
	token, err := p.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	ts := p.timestamp()
	payload := stkQueryPayload{
		BusinessShortCode: p.BusinessShortCode,
		Password:          p.password(ts),
		Timestamp:         ts,
		CheckoutRequestID: checkoutRequestID,
	}
	log.Printf("[MPESA] STK query checkout_request_id=%s", checkoutRequestID)
	var out STKQueryResponse
	if err := p.post(ctx, "/mpesa/stkpushquery/v1/query", token, payload, &out); err != nil {
		return nil, err
	}
	log.Printf("[MPESA] STK query result code=%s desc=%s", out.ResultCode, out.ResultDesc)
	return &out, nil
}

func (p *DarajaProvider) post(ctx context.Context, path, token string, payload, out any) error {
	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[MPESA] %s error status=%d body=%s", path, resp.StatusCode, string(respBody))
		gwErr := &GatewayError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(respBody, gwErr)
		return gwErr
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	return nil
}
