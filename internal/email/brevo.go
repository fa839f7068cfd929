package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"solarquote_backend/platform/config"
)

// Sender delivers the quote summary email to the respondent.
type Sender interface {
	SendQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error
}

// ContactSyncer pushes the respondent's contact details to the marketing
// platform. Implementations must treat an already-known contact as an update,
// not a failure.
type ContactSyncer interface {
	UpsertContact(ctx context.Context, contact Contact) error
}

// Contact is the subset of lead data shared with the marketing platform.
type Contact struct {
	Email    string
	Name     string
	Phone    string
	Postcode string
}

// NoopSender is used when email is not configured; every operation succeeds
// without doing anything.
type NoopSender struct{}

func (NoopSender) SendQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
	return nil
}

func (NoopSender) UpsertContact(ctx context.Context, contact Contact) error {
	return nil
}

// BrevoSender talks to the Brevo transactional and contacts APIs.
type BrevoSender struct {
	apiKey    string
	baseURL   string
	listID    int64
	fromName  string
	fromEmail string
	client    *http.Client
}

type brevoEmailRequest struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

type brevoContactRequest struct {
	Email         string         `json:"email"`
	Attributes    map[string]any `json:"attributes,omitempty"`
	ListIDs       []int64        `json:"listIds,omitempty"`
	UpdateEnabled bool           `json:"updateEnabled,omitempty"`
}

type brevoErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewBrevoSender creates a Brevo client from the email configuration. Returns
// NoopSender behaviour at the caller's discretion; this constructor assumes
// email is enabled.
func NewBrevoSender(cfg config.EmailConfig) *BrevoSender {
	return &BrevoSender{
		apiKey:    cfg.GetBrevoAPIKey(),
		baseURL:   cfg.GetBrevoAPIURL(),
		listID:    cfg.GetBrevoListID(),
		fromName:  cfg.GetEmailFromName(),
		fromEmail: cfg.GetEmailFromAddress(),
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SendQuoteEmail renders the quote summary template and delivers it through
// the transactional endpoint.
func (b *BrevoSender) SendQuoteEmail(ctx context.Context, toEmail string, data QuoteEmailData) error {
	content, err := renderEmailTemplate("quote.html", data)
	if err != nil {
		return err
	}

	payload := brevoEmailRequest{
		Subject:     subjectQuoteSummary,
		HTMLContent: content,
	}
	payload.Sender.Name = b.fromName
	payload.Sender.Email = b.fromEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: toEmail}}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := b.do(ctx, http.MethodPost, "/v3/smtp/email", body)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo send failed: status %d: %s", resp.StatusCode, string(data))
	}
	return nil
}

// UpsertContact creates the contact on the configured list. A
// duplicate_parameter response means the contact already exists and becomes
// an attribute update instead.
func (b *BrevoSender) UpsertContact(ctx context.Context, contact Contact) error {
	payload := brevoContactRequest{
		Email:      contact.Email,
		Attributes: contactAttributes(contact),
	}
	if b.listID > 0 {
		payload.ListIDs = []int64{b.listID}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := b.do(ctx, http.MethodPost, "/v3/contacts", body)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	data, _ := io.ReadAll(resp.Body)
	var brevoErr brevoErrorResponse
	if json.Unmarshal(data, &brevoErr) == nil && brevoErr.Code == "duplicate_parameter" {
		return b.updateContact(ctx, contact)
	}
	return fmt.Errorf("brevo contact create failed: status %d: %s", resp.StatusCode, string(data))
}

func (b *BrevoSender) updateContact(ctx context.Context, contact Contact) error {
	payload := brevoContactRequest{
		Attributes: contactAttributes(contact),
	}
	if b.listID > 0 {
		payload.ListIDs = []int64{b.listID}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := b.do(ctx, http.MethodPut, "/v3/contacts/"+url.PathEscape(contact.Email), body)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("brevo contact update failed: status %d: %s", resp.StatusCode, string(data))
	}
	return nil
}

func contactAttributes(contact Contact) map[string]any {
	attrs := map[string]any{}
	if contact.Name != "" {
		attrs["FIRSTNAME"] = contact.Name
	}
	if contact.Phone != "" {
		attrs["SMS"] = contact.Phone
	}
	if contact.Postcode != "" {
		attrs["POSTCODE"] = contact.Postcode
	}
	return attrs
}

func (b *BrevoSender) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("api-key", b.apiKey)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("accept", "application/json")
	return b.client.Do(req)
}
