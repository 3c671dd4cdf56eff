package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/toolbelt/toolbelt/internal/domain/entities"
	"github.com/toolbelt/toolbelt/internal/domain/errors"
	"github.com/toolbelt/toolbelt/internal/domain/interfaces"

	"go.uber.org/zap"
)

// MailchimpTool wraps the Mailchimp marketing API. Creating a campaign is
// the one two-call operation in the catalog: the campaign shell is POSTed
// first, then its HTML content is PUT against the returned id.
type MailchimpTool struct {
	toolBase
	client interfaces.HTTPClient
}

func NewMailchimpTool(name, description string, configuration map[string]string, client interfaces.HTTPClient, logger *zap.Logger) *MailchimpTool {
	return &MailchimpTool{
		toolBase: toolBase{
			name:          name,
			description:   description,
			configuration: configuration,
			logger:        logger,
		},
		client: httpClientOrDefault(client),
	}
}

func (t *MailchimpTool) Parameters() []entities.Parameter {
	return []entities.Parameter{
		{
			Name:        "operation",
			Type:        "string",
			Enum:        []string{"list_campaigns", "create_campaign"},
			Description: "The Mailchimp operation to perform (default: list_campaigns)",
			Required:    false,
		},
		{
			Name:        "count",
			Type:        "integer",
			Description: "Number of campaigns to list, between 1 and 100 (default: 10)",
			Required:    false,
		},
		{
			Name:        "list_id",
			Type:        "string",
			Description: "Audience list id, required for create_campaign",
			Required:    false,
		},
		{
			Name:        "title",
			Type:        "string",
			MaxLength:   150,
			Description: "Internal campaign title, required for create_campaign",
			Required:    false,
		},
		{
			Name:        "subject",
			Type:        "string",
			MaxLength:   150,
			Description: "Email subject line, required for create_campaign",
			Required:    false,
		},
		{
			Name:        "from_name",
			Type:        "string",
			Description: "Sender name shown in the inbox (default: the configured sender)",
			Required:    false,
		},
		{
			Name:        "reply_to",
			Type:        "string",
			Description: "Reply-to address (default: the configured address)",
			Required:    false,
		},
		{
			Name:        "html",
			Type:        "string",
			Description: "HTML body set on the campaign after creation",
			Required:    false,
		},
	}
}

type mailchimpCampaign struct {
	ID         string `json:"id"`
	WebID      int    `json:"web_id"`
	Title      string `json:"title"`
	Subject    string `json:"subject"`
	Status     string `json:"status"`
	EmailsSent int    `json:"emails_sent"`
	SendTime   string `json:"send_time"`
}

func (t *MailchimpTool) Execute(arguments string) (string, error) {
	t.logger.Debug("Executing Mailchimp tool", zap.String("arguments", arguments))

	if err := validateArguments(t.Parameters(), arguments); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	var args struct {
		Operation string `json:"operation"`
		Count     int    `json:"count"`
		ListID    string `json:"list_id"`
		Title     string `json:"title"`
		Subject   string `json:"subject"`
		FromName  string `json:"from_name"`
		ReplyTo   string `json:"reply_to"`
		HTML      string `json:"html"`
	}
	if err := unmarshalArgs(arguments, &args); err != nil {
		return entities.Failed(err, nil).JSON(), nil
	}

	switch args.Operation {
	case "", "list_campaigns":
		return t.listCampaigns(args.Count)
	case "create_campaign":
		return t.createCampaign(args.ListID, args.Title, args.Subject, args.FromName, args.ReplyTo, args.HTML)
	default:
		err := errors.InvalidInputErrorf("unknown operation %q", args.Operation)
		return entities.Failed(err, nil).JSON(), nil
	}
}

// baseURL derives the datacenter from the API key suffix ("…-us14" means
// us14.api.mailchimp.com) unless an explicit base URL is configured.
func (t *MailchimpTool) baseURL() string {
	if base := t.configuration["mailchimp_base_url"]; base != "" {
		return strings.TrimRight(base, "/")
	}
	key := t.configuration["mailchimp_api_key"]
	dc := "us1"
	if idx := strings.LastIndex(key, "-"); idx >= 0 && idx < len(key)-1 {
		dc = key[idx+1:]
	}
	return fmt.Sprintf("https://%s.api.mailchimp.com", dc)
}

func (t *MailchimpTool) newRequest(method, path string, body []byte) (*http.Request, error) {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, t.baseURL()+path, reader)
	if err != nil {
		return nil, errors.TransportErrorf("failed to create request: %v", err)
	}
	setBearer(req, t.configuration["mailchimp_api_key"])
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (t *MailchimpTool) listCampaigns(count int) (string, error) {
	if count == 0 {
		count = 10
	}
	count = clamp(count, 1, 100)

	query := url.Values{}
	query.Set("count", strconv.Itoa(count))

	req, err := t.newRequest(http.MethodGet, "/3.0/campaigns?"+query.Encode(), nil)
	if err != nil {
		return entities.Failed(err, []mailchimpCampaign{}).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, []mailchimpCampaign{}).JSON(), nil
	}

	var payload struct {
		Campaigns []struct {
			ID         string `json:"id"`
			WebID      int    `json:"web_id"`
			Status     string `json:"status"`
			EmailsSent int    `json:"emails_sent"`
			SendTime   string `json:"send_time"`
			Settings   struct {
				Title       string `json:"title"`
				SubjectLine string `json:"subject_line"`
			} `json:"settings"`
		} `json:"campaigns"`
	}
	if err := decodeJSON(body, &payload); err != nil {
		return entities.Failed(err, []mailchimpCampaign{}).JSON(), nil
	}

	campaigns := make([]mailchimpCampaign, 0, len(payload.Campaigns))
	for _, c := range payload.Campaigns {
		campaigns = append(campaigns, mailchimpCampaign{
			ID:         c.ID,
			WebID:      c.WebID,
			Title:      c.Settings.Title,
			Subject:    c.Settings.SubjectLine,
			Status:     c.Status,
			EmailsSent: c.EmailsSent,
			SendTime:   c.SendTime,
		})
	}
	return entities.OK(campaigns).JSON(), nil
}

func (t *MailchimpTool) createCampaign(listID, title, subject, fromName, replyTo, html string) (string, error) {
	if listID == "" || title == "" || subject == "" {
		err := errors.InvalidInputErrorf("list_id, title and subject are required")
		return entities.Failed(err, nil).JSON(), nil
	}
	if fromName == "" {
		fromName = t.configuration["mailchimp_from_name"]
	}
	if replyTo == "" {
		replyTo = t.configuration["mailchimp_reply_to"]
	}

	echo := map[string]any{"list_id": listID, "title": title, "subject": subject}

	createBody, _ := json.Marshal(map[string]any{
		"type": "regular",
		"recipients": map[string]string{
			"list_id": listID,
		},
		"settings": map[string]string{
			"title":        title,
			"subject_line": subject,
			"from_name":    fromName,
			"reply_to":     replyTo,
		},
	})
	req, err := t.newRequest(http.MethodPost, "/3.0/campaigns", createBody)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	body, err := doRequest(t.client, req, t.logger)
	if err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}

	var created struct {
		ID         string `json:"id"`
		WebID      int    `json:"web_id"`
		Status     string `json:"status"`
		ArchiveURL string `json:"archive_url"`
	}
	if err := decodeJSON(body, &created); err != nil {
		return entities.Failed(err, echo).JSON(), nil
	}
	if created.Status == "" {
		created.Status = "save"
	}

	result := map[string]any{
		"id":          created.ID,
		"web_id":      created.WebID,
		"title":       title,
		"subject":     subject,
		"list_id":     listID,
		"status":      created.Status,
		"archive_url": created.ArchiveURL,
	}

	// Second leg: set the content on the campaign we just created. If it
	// fails the campaign still exists upstream, so the envelope keeps the
	// id the caller needs to retry or clean up.
	if html != "" {
		contentBody, _ := json.Marshal(map[string]string{"html": html})
		contentReq, err := t.newRequest(http.MethodPut, "/3.0/campaigns/"+url.PathEscape(created.ID)+"/content", contentBody)
		if err != nil {
			return entities.Failed(err, result).JSON(), nil
		}
		if _, err := doRequest(t.client, contentReq, t.logger); err != nil {
			return entities.Failed(err, result).JSON(), nil
		}
	}

	return entities.OK(result).JSON(), nil
}
