// Package sharing simulates sharing stored files. Nothing leaves the process:
// invitations are only validated and acknowledged, and the share link is a
// fixed string.
package sharing

import (
	"context"
	"slices"
	"strings"

	"github.com/dmitrijs2005/dropvault/internal/client/models"
	"github.com/dmitrijs2005/dropvault/internal/client/notify"
	"github.com/dmitrijs2005/dropvault/internal/common"
	"github.com/dmitrijs2005/dropvault/internal/logging"
)

type Service struct {
	shared   []models.SharedFile
	link     string
	notifier notify.Notifier
	logger   logging.Logger
}

func NewService(shared []models.SharedFile, link string, n notify.Notifier, l logging.Logger) *Service {
	return &Service{
		shared:   slices.Clone(shared),
		link:     link,
		notifier: n,
		logger:   l.With("component", "sharing"),
	}
}

// Shared returns the files already shared with others.
func (s *Service) Shared() []models.SharedFile {
	return slices.Clone(s.shared)
}

// Share sends a (simulated) invitation for fileID to email. The address must
// be non-empty and contain '@'; otherwise common.ErrInvalidEmail is returned.
func (s *Service) Share(ctx context.Context, fileID, email string) error {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		s.logger.Warn(ctx, "share rejected", "file_id", fileID, "reason", common.ErrInvalidEmail)
		s.notifier.Notify(ctx, notify.Event{Kind: notify.ShareRejectedInvalidEmail, FileID: fileID})
		return common.ErrInvalidEmail
	}

	s.logger.Info(ctx, "share invitation sent", "file_id", fileID, "recipient", email)
	s.notifier.Notify(ctx, notify.Event{Kind: notify.ShareSent, FileID: fileID, Recipient: email})
	return nil
}

// CopyLink returns the share link.
func (s *Service) CopyLink(ctx context.Context) string {
	s.notifier.Notify(ctx, notify.Event{Kind: notify.ShareLinkCopied})
	return s.link
}
