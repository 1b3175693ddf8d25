package jira

import (
	"context"
	"fmt"
	"net/http"

	gojira "github.com/andygrunwald/go-jira"
	"github.com/younsl/ebsreaper/pkg/lifecycle"
)

// internalCommentProperty keeps Service Desk comments hidden from customers
const internalCommentProperty = "sd.public.comment"

// Client opens cleanup tickets and comments on them through the Jira REST API
type Client struct {
	client *gojira.Client
}

// NewClient creates a Client for baseURL authenticating with basic auth
func NewClient(baseURL, username, token string) (*Client, error) {
	tp := gojira.BasicAuthTransport{
		Username: username,
		Password: token,
	}
	return NewClientWithHTTP(tp.Client(), baseURL)
}

// NewClientWithHTTP creates a Client using httpClient for every request
func NewClientWithHTTP(httpClient *http.Client, baseURL string) (*Client, error) {
	c, err := gojira.NewClient(httpClient, baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client for %s: %w", baseURL, err)
	}
	return &Client{client: c}, nil
}

// CreateIssue opens a ticket and returns its key
func (c *Client) CreateIssue(ctx context.Context, ticket lifecycle.Ticket) (string, error) {
	fields := &gojira.IssueFields{
		Project:     gojira.Project{Key: ticket.Project},
		Summary:     ticket.Summary,
		Description: ticket.Description,
		Type:        gojira.IssueType{Name: ticket.IssueType},
	}
	if ticket.PriorityID != "" {
		fields.Priority = &gojira.Priority{ID: ticket.PriorityID}
	}

	issue, resp, err := c.client.Issue.CreateWithContext(ctx, &gojira.Issue{Fields: fields})
	if err != nil {
		return "", fmt.Errorf("failed to create issue in %s: %w", ticket.Project, responseError(resp, err))
	}
	if issue == nil || issue.Key == "" {
		return "", fmt.Errorf("failed to create issue in %s: response carried no issue key", ticket.Project)
	}
	return issue.Key, nil
}

type commentProperty struct {
	Key   string         `json:"key"`
	Value map[string]any `json:"value"`
}

type commentAdd struct {
	Body       string            `json:"body"`
	Properties []commentProperty `json:"properties"`
}

type commentUpdate struct {
	Update struct {
		Comment []map[string]commentAdd `json:"comment"`
	} `json:"update"`
}

// AddComment posts body as an internal comment on issueID
func (c *Client) AddComment(ctx context.Context, issueID, body string) error {
	var payload commentUpdate
	payload.Update.Comment = []map[string]commentAdd{
		{
			"add": {
				Body: body,
				Properties: []commentProperty{
					{Key: internalCommentProperty, Value: map[string]any{"internal": true}},
				},
			},
		},
	}

	req, err := c.client.NewRequestWithContext(ctx, http.MethodPut, "rest/api/2/issue/"+issueID, payload)
	if err != nil {
		return fmt.Errorf("failed to build comment request for %s: %w", issueID, err)
	}
	resp, err := c.client.Do(req, nil)
	if err != nil {
		return fmt.Errorf("failed to comment on %s: %w", issueID, responseError(resp, err))
	}
	return nil
}

// responseError folds the Jira error body into err when one is available
func responseError(resp *gojira.Response, err error) error {
	if resp == nil {
		return err
	}
	return gojira.NewJiraError(resp, err)
}
