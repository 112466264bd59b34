package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
	"github.com/Spok95/geosites/internal/domain/users"
	"github.com/Spok95/geosites/internal/infra/logger"
)

type fakeSender struct {
	mu   sync.Mutex
	msgs []tgbotapi.MessageConfig
	err  error
	sent chan struct{}
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	f.msgs = append(f.msgs, c.(tgbotapi.MessageConfig))
	f.mu.Unlock()
	f.sent <- struct{}{}
	return tgbotapi.Message{}, f.err
}

func (f *fakeSender) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("no message sent")
	}
}

func TestSubmissionCreated(t *testing.T) {
	fs := &fakeSender{sent: make(chan struct{}, 1)}
	tg := &Telegram{api: fs, log: logger.Discard(), adminChat: 100}

	tg.SubmissionCreated(context.Background(), &submissions.Submission{
		ID:            1,
		SiteData:      submissions.SiteData{Name: "Beautiful Mountain View"},
		SubmittedByID: 7,
		SubmittedBy:   &users.Ref{ID: 7, Email: "hiker@example.com"},
	})
	fs.wait(t)

	require.Len(t, fs.msgs, 1)
	assert.Equal(t, int64(100), fs.msgs[0].ChatID)
	assert.Contains(t, fs.msgs[0].Text, "Submission #1 awaits review")
	assert.Contains(t, fs.msgs[0].Text, "Beautiful Mountain View")
	assert.Contains(t, fs.msgs[0].Text, "hiker@example.com")
}

func TestSubmissionReviewed(t *testing.T) {
	fs := &fakeSender{sent: make(chan struct{}, 1), err: errors.New("telegram down")}
	tg := &Telegram{api: fs, log: logger.Discard(), adminChat: 100}

	reviewer := int64(2)
	tg.SubmissionReviewed(context.Background(), &submissions.Submission{
		ID:           1,
		SiteData:     submissions.SiteData{Name: "Beautiful Mountain View"},
		Status:       submissions.StatusApproved,
		ReviewedByID: &reviewer,
	}, &sites.Site{ID: 12})
	fs.wait(t)

	text := fs.msgs[0].Text
	assert.Contains(t, text, "Submission #1 approved by user #2")
	assert.Contains(t, text, "Published as site #12")
}

func TestReviewedTextRejected(t *testing.T) {
	text := reviewedText(&submissions.Submission{
		ID:         3,
		SiteData:   submissions.SiteData{Name: "Swamp"},
		Status:     submissions.StatusRejected,
		ReviewedBy: &users.Ref{ID: 2, Email: "admin@example.com"},
	}, nil)
	assert.Contains(t, text, "rejected by admin@example.com")
	assert.NotContains(t, text, "Published")
}
