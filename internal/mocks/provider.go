package mocks

import (
	"context"
	"fmt"

	"github.com/inboxd/inboxd/interfaces"
)

// FakeEmailProviderClient records send requests and serves canned content.
type FakeEmailProviderClient struct {
	SentRequests []interfaces.SendMessageRequest
	NextID       string
	Content      *interfaces.MessageContent
	Attachment   *interfaces.AttachmentContent
	Err          error
}

func (f *FakeEmailProviderClient) SendMessage(ctx context.Context, request interfaces.SendMessageRequest) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	f.SentRequests = append(f.SentRequests, request)
	if f.NextID != "" {
		return f.NextID, nil
	}
	return fmt.Sprintf("resend-%d", len(f.SentRequests)), nil
}

func (f *FakeEmailProviderClient) FetchMessageContent(ctx context.Context, resendID string) (*interfaces.MessageContent, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Content != nil {
		return f.Content, nil
	}
	return &interfaces.MessageContent{}, nil
}

func (f *FakeEmailProviderClient) FetchAttachment(ctx context.Context, resendID, attachmentID string) (*interfaces.AttachmentContent, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Attachment != nil {
		return f.Attachment, nil
	}
	return &interfaces.AttachmentContent{}, nil
}
