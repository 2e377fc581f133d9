package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/google/uuid"

	"github.com/Dykstra-Hamel/DH-portal-sub000/internal/config"
	edomain "github.com/Dykstra-Hamel/DH-portal-sub000/internal/email/domain"
)

// Ensure SES implements domain.Transport
var _ edomain.Transport = (*SES)(nil)

// SES sends via Amazon SES v2. The client is initialized lazily so that
// constructing the transport never requires AWS credentials.
type SES struct {
	cfg config.Config

	once    sync.Once
	client  *sesv2.Client
	initErr error
}

func NewSES(cfg config.Config) *SES { return &SES{cfg: cfg} }

func (s *SES) init(ctx context.Context) {
	ac, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(s.cfg.AWSRegion))
	if err != nil {
		s.initErr = fmt.Errorf("load aws config: %w", err)
		return
	}
	s.client = sesv2.NewFromConfig(ac)
}

func (s *SES) Send(ctx context.Context, companyID uuid.UUID, msg edomain.Message) (edomain.Result, error) {
	s.once.Do(func() { s.init(ctx) })
	if s.initErr != nil {
		return edomain.Result{}, s.initErr
	}

	from := msg.From
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, msg.From)
	}

	body := &types.Body{}
	if msg.HTML != "" {
		body.Html = &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")}
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	in := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: []string{msg.To}},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
	}
	if s.cfg.SESConfigurationSet != "" {
		in.ConfigurationSetName = aws.String(s.cfg.SESConfigurationSet)
	}
	if msg.RoutingNamespace != "" {
		in.TenantName = aws.String(msg.RoutingNamespace)
	}
	for k, v := range msg.Tags {
		in.EmailTags = append(in.EmailTags, types.MessageTag{Name: aws.String(k), Value: aws.String(v)})
	}

	out, err := s.client.SendEmail(ctx, in)
	if err != nil {
		return edomain.Result{}, err
	}
	id := ""
	if out.MessageId != nil {
		id = *out.MessageId
	}
	return edomain.Result{MessageID: id}, nil
}
