package mailbox

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/config"
	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/Veraticus/daily-problems/internal/parse"
	"github.com/emersion/go-imap"
)

// Source yields problem emails from one mailbox, oldest first.
type Source struct {
	dial   DialFunc
	auth   Authenticator
	logger *slog.Logger
	cfg    config.MailConfig
}

// NewSource creates a source for the mailbox described by cfg.
func NewSource(cfg config.MailConfig, logger *slog.Logger) (*Source, error) {
	auth, err := NewAuthenticator(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}

	return &Source{
		cfg:    cfg,
		dial:   DialTLS,
		auth:   auth,
		logger: common.LoggerOrDefault(logger),
	}, nil
}

// WithDialer replaces how sessions are opened.
func (s *Source) WithDialer(dial DialFunc) *Source {
	s.dial = dial
	return s
}

// WithAuthenticator replaces how sessions are logged in.
func (s *Source) WithAuthenticator(auth Authenticator) *Source {
	s.auth = auth
	return s
}

// Fetch returns a single-use sequence of problem emails. The session is
// opened when iteration starts and is closed and logged out when it ends,
// whether the mailbox is exhausted, the consumer stops early, or a fatal
// error is yielded.
//
// Per-message failures are yielded as recoverable errors alongside a
// MailItem carrying the UID; fatal errors are yielded once and end the
// sequence.
func (s *Source) Fetch(ctx context.Context) iter.Seq2[model.MailItem, error] {
	return func(yield func(model.MailItem, error) bool) {
		c, err := s.dial(ctx, s.cfg)
		if err != nil {
			yield(model.MailItem{}, common.NewFatal(common.KindMailbox, "connect", err))
			return
		}
		defer func() {
			if err := c.Logout(); err != nil {
				s.logger.Warn("Failed to log out of mailbox", "error", err)
				return
			}
			s.logger.Debug("Logged out of mailbox")
		}()

		if err := s.auth(ctx, c); err != nil {
			yield(model.MailItem{}, common.NewFatal(common.KindAuth, s.cfg.Username, err))
			return
		}

		if _, err := c.Select(s.cfg.Mailbox, true); err != nil {
			yield(model.MailItem{}, common.NewFatal(common.KindMailbox, "select "+s.cfg.Mailbox, err))
			return
		}
		defer func() {
			if err := c.Close(); err != nil {
				s.logger.Warn("Failed to close mailbox", "mailbox", s.cfg.Mailbox, "error", err)
			}
		}()

		criteria := imap.NewSearchCriteria()
		criteria.Header.Add("Subject", parse.SearchSubject)

		uids, err := c.UidSearch(criteria)
		if err != nil {
			yield(model.MailItem{}, common.NewFatal(common.KindMailbox, "search", err))
			return
		}

		uids = oldestFirst(uids)
		s.logger.Info("Found problem emails", "mailbox", s.cfg.Mailbox, "count", len(uids))

		for _, uid := range uids {
			if err := ctx.Err(); err != nil {
				yield(model.MailItem{}, common.NewFatal(common.KindMailbox, "canceled", err))
				return
			}

			item, err := s.fetchOne(c, uid)
			if !yield(item, err) {
				return
			}
			if err != nil && common.IsFatal(err) {
				return
			}
		}
	}
}

// oldestFirst orders UIDs by arrival. UIDs grow as messages are appended to
// a mailbox, so a server answering newest-first is reversed here.
func oldestFirst(uids []uint32) []uint32 {
	sorted := slices.Clone(uids)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

func (s *Source) fetchOne(c Client, uid uint32) (model.MailItem, error) {
	seqset := new(imap.SeqSet)
	seqset.AddNum(uid)

	section := &imap.BodySectionName{Peek: true}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchUid}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.UidFetch(seqset, items, messages)
	}()

	var msg *imap.Message
	for m := range messages {
		if msg == nil {
			msg = m
		}
	}
	if err := <-done; err != nil {
		return model.MailItem{UID: uid}, common.NewFatal(common.KindMailbox, fmt.Sprintf("fetch uid %d", uid), err)
	}

	if msg == nil {
		return model.MailItem{UID: uid}, common.NewRecoverable(common.KindExtraction,
			fmt.Sprintf("uid %d", uid), fmt.Errorf("message disappeared before fetch"))
	}

	body := msg.GetBody(section)
	if body == nil {
		return model.MailItem{UID: uid}, common.NewRecoverable(common.KindExtraction,
			fmt.Sprintf("uid %d", uid), fmt.Errorf("server returned no message body"))
	}

	s.logger.Debug("Fetched message", "uid", uid, "size", body.Len())

	return readMessage(uid, body)
}
