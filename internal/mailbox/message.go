package mailbox

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/daily-problems/internal/common"
	"github.com/Veraticus/daily-problems/internal/model"
	"github.com/Veraticus/daily-problems/internal/parse"
	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset" // registers non-UTF-8 charsets for headers and bodies
	"github.com/emersion/go-message/mail"
)

var errNoTextPart = errors.New("message has no text/plain or text/html part")

// readMessage decodes one RFC 5322 message into a MailItem. A subject
// without the problem marker is fatal: it means the search filter can no
// longer be trusted.
func readMessage(uid uint32, r io.Reader) (model.MailItem, error) {
	mr, err := mail.CreateReader(r)
	if err != nil && !message.IsUnknownCharset(err) {
		return model.MailItem{UID: uid}, common.NewRecoverable(common.KindExtraction,
			fmt.Sprintf("uid %d", uid), fmt.Errorf("malformed message: %w", err))
	}

	subject, err := mr.Header.Subject()
	if err != nil {
		subject = mr.Header.Get("Subject")
	}
	subject = strings.TrimSpace(subject)

	if !parse.HasMarker(subject) {
		return model.MailItem{UID: uid, Subject: subject}, common.NewFatal(common.KindProtocol,
			fmt.Sprintf("uid %d subject %q", uid, subject), nil)
	}

	body, err := textBody(mr)
	if err != nil {
		return model.MailItem{UID: uid, Subject: subject}, common.NewRecoverable(common.KindExtraction,
			fmt.Sprintf("uid %d", uid), err)
	}

	return model.MailItem{UID: uid, Subject: subject, RawBody: body}, nil
}

// textBody returns the first text/plain part. When there is none, the
// first text/html part is rendered as text instead.
func textBody(mr *mail.Reader) (string, error) {
	var htmlBody []byte

	for {
		p, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil && (p == nil || !message.IsUnknownCharset(err)) {
			return "", fmt.Errorf("failed to read message part: %w", err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := h.ContentType()
		if contentType == "" {
			contentType = "text/plain"
		}
		switch contentType {
		case "text/plain":
			b, err := io.ReadAll(p.Body)
			if err != nil {
				return "", fmt.Errorf("failed to read text/plain part: %w", err)
			}
			return string(b), nil
		case "text/html":
			if htmlBody == nil {
				b, err := io.ReadAll(p.Body)
				if err != nil {
					return "", fmt.Errorf("failed to read text/html part: %w", err)
				}
				htmlBody = b
			}
		}
	}

	if htmlBody != nil {
		return parse.HTMLToText(strings.NewReader(string(htmlBody)))
	}
	return "", errNoTextPart
}
