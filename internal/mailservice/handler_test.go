package mailservice

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSendWelcomeEmail(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	consumer := new(MockMessageConsumer)
	mailer := new(MockMailer)

	ctx, cancel := context.WithCancel(context.Background())
	s := &MailService{
		mb:     consumer,
		m:      mailer,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	defer s.Close()

	s.SendWelcomeEmail()

	assert.Eventually(t, func() bool {
		sent, _ := mailer.Sent()
		return sent
	}, 2*time.Second, 10*time.Millisecond)

	_, email := mailer.Sent()
	assert.Equal(t, "test@example.com", email)
}
