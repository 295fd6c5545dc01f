package sms

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/rs/zerolog"
)

// SNSSender delivers SMS messages via AWS SNS. When no region is
// configured the sender runs disabled: messages are logged, not sent, so
// local and CI environments need no AWS credentials.
type SNSSender struct {
	client   *sns.Client
	senderID string
	log      zerolog.Logger
}

// NewSNSSender builds the sender. region == "" yields a disabled sender.
func NewSNSSender(ctx context.Context, region, senderID string, log zerolog.Logger) (*SNSSender, error) {
	s := &SNSSender{senderID: senderID, log: log}
	if region == "" {
		return s, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	s.client = sns.NewFromConfig(awsCfg)
	return s, nil
}

func (s *SNSSender) SendSMS(ctx context.Context, to, message string) error {
	if s.client == nil {
		s.log.Info().Str("phone", to).Str("message", message).Msg("sms sender disabled, logging instead")
		return nil
	}

	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.senderID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish: %w", err)
	}
	return nil
}
