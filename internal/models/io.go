// Package models provides the wire payloads exchanged with the hiring API.
package models

// WebhookRequest is the candidate profile sent when asking for a webhook.
type WebhookRequest struct {
	Name  string `json:"name" yaml:"name" validate:"required"`
	RegNo string `json:"regNo" yaml:"regNo" validate:"required"`
	Email string `json:"email" yaml:"email" validate:"required"`
}

// WebhookResponse carries the webhook URL and the access token issued for it.
type WebhookResponse struct {
	Webhook     string `json:"webhook" validate:"required"`
	AccessToken string `json:"accessToken" validate:"required"`
}

// FinalQueryRequest is the body submitted to the webhook.
type FinalQueryRequest struct {
	FinalQuery string `json:"finalQuery"`
}
