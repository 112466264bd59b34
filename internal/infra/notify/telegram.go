// Package notify posts moderation events to the admin Telegram chat.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	api       sender
	log       *slog.Logger
	adminChat int64
}

func NewTelegram(token string, adminChatID int64, log *slog.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, log: log, adminChat: adminChatID}, nil
}

// SubmissionCreated and SubmissionReviewed send in the background; a failed
// notice is logged and never fails the request that caused it.
func (t *Telegram) SubmissionCreated(_ context.Context, s *submissions.Submission) {
	go t.send(createdText(s))
}

func (t *Telegram) SubmissionReviewed(_ context.Context, s *submissions.Submission, site *sites.Site) {
	go t.send(reviewedText(s, site))
}

func (t *Telegram) send(text string) {
	if _, err := t.api.Send(tgbotapi.NewMessage(t.adminChat, text)); err != nil {
		t.log.Error("send failed", "err", err)
	}
}

func who(email string, id int64) string {
	if email != "" {
		return email
	}
	return fmt.Sprintf("user #%d", id)
}

func createdText(s *submissions.Submission) string {
	email := ""
	if s.SubmittedBy != nil {
		email = s.SubmittedBy.Email
	}
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 Submission #%d awaits review\n", s.ID)
	fmt.Fprintf(&b, "Site: %s\n", s.SiteData.Name)
	fmt.Fprintf(&b, "From: %s", who(email, s.SubmittedByID))
	return b.String()
}

func reviewedText(s *submissions.Submission, site *sites.Site) string {
	email := ""
	if s.ReviewedBy != nil {
		email = s.ReviewedBy.Email
	}
	var reviewerID int64
	if s.ReviewedByID != nil {
		reviewerID = *s.ReviewedByID
	}
	badge := "🚫"
	if s.Status == submissions.StatusApproved {
		badge = "🟢"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Submission #%d %s by %s\n", badge, s.ID, strings.ToLower(string(s.Status)), who(email, reviewerID))
	fmt.Fprintf(&b, "Site: %s", s.SiteData.Name)
	if site != nil {
		fmt.Fprintf(&b, "\nPublished as site #%d", site.ID)
	}
	return b.String()
}
