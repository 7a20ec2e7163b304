package model

// MailItem is one fetched email reduced to its subject and plain-text body.
// It lives for a single pass of the ingestion loop.
type MailItem struct {
	Subject string
	RawBody string
	UID     uint32
}
