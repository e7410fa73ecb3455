package email

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// DispositionInline marks an attachment for inline display.
const DispositionInline = "inline"

// Attachment is the wire form of a file attached to an email.
type Attachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"` // base64-encoded file content
	ContentType string `json:"type"`
	Disposition string `json:"disposition"`
	ContentID   string `json:"content_id"`
}

// NewInlineAttachment reads the file at path and encodes it as an inline
// attachment referenced by contentID.
func NewInlineAttachment(path, contentType, contentID string) (Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("%w: %s: %v", ErrAttachment, path, err)
	}
	return Attachment{
		Filename:    filepath.Base(path),
		Content:     base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
		Disposition: DispositionInline,
		ContentID:   contentID,
	}, nil
}
