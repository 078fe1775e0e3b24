package order

import (
	"errors"
	"strings"
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/pkg/errs"
)

// WorkLog is an append-only progress note written by the assigned developer.
// A zero ID means the entry has not been persisted yet.
type WorkLog struct {
	id        kernel.ID
	authorID  kernel.ID
	content   string
	createdAt time.Time
}

// RestoreWorkLog rebuilds a persisted work log.
func RestoreWorkLog(id, authorID kernel.ID, content string, createdAt time.Time) (WorkLog, error) {
	if err := errors.Join(id.Validate(), authorID.Validate()); err != nil {
		return WorkLog{}, err
	}
	return WorkLog{
		id:        id,
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func newWorkLog(authorID kernel.ID, content string, createdAt time.Time) (WorkLog, error) {
	if err := authorID.Validate(); err != nil {
		return WorkLog{}, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return WorkLog{}, errs.NewValueIsRequiredError("content")
	}
	return WorkLog{
		authorID:  authorID,
		content:   content,
		createdAt: createdAt,
	}, nil
}

func (w WorkLog) ID() kernel.ID {
	return w.id
}

func (w WorkLog) AuthorID() kernel.ID {
	return w.authorID
}

func (w WorkLog) Content() string {
	return w.content
}

func (w WorkLog) CreatedAt() time.Time {
	return w.createdAt
}

// IsPersisted reports whether storage has assigned the entry an identity.
func (w WorkLog) IsPersisted() bool {
	return !w.id.IsZero()
}
