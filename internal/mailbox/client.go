// Package mailbox reads problem emails from an IMAP inbox. Each call to
// Source.Fetch opens its own session and closes it when iteration stops.
package mailbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"

	"github.com/Veraticus/daily-problems/internal/config"
	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-sasl"
)

// Client is the subset of an IMAP session the source uses. *client.Client
// satisfies it.
type Client interface {
	Login(username, password string) error
	Authenticate(auth sasl.Client) error
	Select(name string, readOnly bool) (*imap.MailboxStatus, error)
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
	UidFetch(seqset *imap.SeqSet, items []imap.FetchItem, ch chan *imap.Message) error
	Close() error
	Logout() error
}

// DialFunc opens a new, unauthenticated session.
type DialFunc func(ctx context.Context, cfg config.MailConfig) (Client, error)

// DialTLS connects to cfg.Addr() over implicit TLS. cfg.Timeout bounds both
// the dial and each subsequent IMAP command.
func DialTLS(ctx context.Context, cfg config.MailConfig) (Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dialer := &net.Dialer{Timeout: cfg.Timeout}
	c, err := client.DialWithDialerTLS(dialer, cfg.Addr(), &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Addr(), err)
	}
	c.Timeout = cfg.Timeout

	return c, nil
}
