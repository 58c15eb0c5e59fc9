package ticket

import (
	"time"

	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

// Attachment is metadata for a file stored outside the helpdesk.
type Attachment struct {
	id       string
	ownerID  uint
	name     string
	path     string
	mimeType string
	date     time.Time
}

func ReconstructAttachment(id string, ownerID uint, name, path, mimeType string, date time.Time) *Attachment {
	return &Attachment{
		id:       id,
		ownerID:  ownerID,
		name:     name,
		path:     path,
		mimeType: mimeType,
		date:     date,
	}
}

func newAttachment(id string, ownerID uint, name, path, mimeType string) *Attachment {
	return ReconstructAttachment(id, ownerID, name, path, mimeType, biztime.NowUTC())
}

func (a *Attachment) ID() string       { return a.id }
func (a *Attachment) OwnerID() uint    { return a.ownerID }
func (a *Attachment) Name() string     { return a.name }
func (a *Attachment) Path() string     { return a.path }
func (a *Attachment) MimeType() string { return a.mimeType }
func (a *Attachment) Date() time.Time  { return a.date }
