package notify

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/google/uuid"
)

// SESNotifier delivers lifecycle notifications as plain-text email
// through AWS SES.
type SESNotifier struct {
	client *ses.Client
	sender string
}

func NewSESNotifier(ctx context.Context, region, sender string) (*SESNotifier, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESNotifier{client: ses.NewFromConfig(cfg), sender: sender}, nil
}

var _ Notifier = (*SESNotifier)(nil)

func (n *SESNotifier) Notify(ctx context.Context, event Event) error {
	if event.Recipient == "" {
		return fmt.Errorf("notification %s for job %d has no recipient", event.Type, event.JobID)
	}

	subject, body := render(event)
	messageID := uuid.NewString()

	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: &n.sender,
		Destination: &types.Destination{
			ToAddresses: []string{event.Recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: &subject},
			Body: &types.Body{
				Text: &types.Content{Data: &body},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("ses send %s (message %s): %w", event.Type, messageID, err)
	}
	return nil
}

func render(event Event) (subject, body string) {
	switch event.Type {
	case EventOfferReceived:
		subject = "You have a new offer"
		body = fmt.Sprintf("A hustler applied to your job #%d.", event.JobID)
	case EventJobAssigned:
		subject = "Your job is booked"
		body = fmt.Sprintf("Job #%d is assigned. Share the start code with your hustler when they arrive.", event.JobID)
	case EventJobStarted:
		subject = "Work has started"
		body = fmt.Sprintf("The hustler checked in on job #%d.", event.JobID)
	case EventJobCompleted:
		subject = "Work marked complete"
		body = fmt.Sprintf("Job #%d is done. Enter the completion code to release payment.", event.JobID)
	case EventJobConfirmed, EventAutoReleased:
		subject = "Payment released"
		body = fmt.Sprintf("Payment for job #%d has been released.", event.JobID)
	case EventJobCancelled:
		subject = "Job cancelled"
		body = fmt.Sprintf("Job #%d was cancelled.", event.JobID)
	case EventDisputeOpened:
		subject = "Issue reported"
		body = fmt.Sprintf("An issue was reported on job #%d. Payment release is paused while we review.", event.JobID)
	case EventStartCodeReset:
		subject = "New start code"
		body = fmt.Sprintf("A new start code was generated for job #%d.", event.JobID)
	default:
		subject = "HustleHub update"
		body = fmt.Sprintf("There is an update on job #%d.", event.JobID)
	}
	return subject, body
}
