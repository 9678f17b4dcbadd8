package content

import (
	"regexp"
	"strings"
	"time"

	"github.com/atelier/storefront/internal/domain/shared"
)

var pageIDPattern = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// PageContent is an editable block of text shown on a public page
type PageContent struct {
	shared.BaseAggregateRoot
	PageID      string
	Title       string
	Content     string
	LastUpdated time.Time
}

// NewPageContent creates the content of a page
func NewPageContent(pageID, title, body string) (*PageContent, error) {
	if err := ValidatePageID(pageID); err != nil {
		return nil, err
	}
	if err := validatePageFields(title, body); err != nil {
		return nil, err
	}

	page := &PageContent{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PageID:            pageID,
		Title:             title,
		Content:           body,
	}
	page.LastUpdated = page.CreatedAt
	return page, nil
}

// Edit replaces title and content
func (p *PageContent) Edit(title, body string) error {
	if err := validatePageFields(title, body); err != nil {
		return err
	}
	now := time.Now()
	p.Title = title
	p.Content = body
	p.LastUpdated = now
	p.UpdatedAt = now
	p.IncrementVersion()
	return nil
}

// ValidatePageID checks a page slug
func ValidatePageID(pageID string) error {
	if !pageIDPattern.MatchString(pageID) {
		return shared.NewDomainError("INVALID_PAGE_ID",
			"Page ID may only contain lowercase letters, digits, dashes and underscores")
	}
	return nil
}

func validatePageFields(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Title is required")
	}
	if strings.TrimSpace(body) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Content is required")
	}
	return nil
}
