package fluxcrystal

// Attachment is a file attached to a message, as returned by the server.
type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	URL         string `json:"url"`
	ProxyURL    string `json:"proxy_url,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Ephemeral   bool   `json:"ephemeral,omitempty"`
}

// IsImage reports whether the attachment's content type is an image/* MIME
// type.
func (a Attachment) IsImage() bool {
	return hasPrefix(a.ContentType, "image/")
}

// IsVideo reports whether the attachment's content type is a video/* MIME
// type.
func (a Attachment) IsVideo() bool {
	return hasPrefix(a.ContentType, "video/")
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// AttachmentUpload is an outbound attachment for CreateMessage. It is the
// counterpart to Attachment: a file the caller is sending, not one the
// server has already stored.
type AttachmentUpload struct {
	// Content is the raw file bytes.
	Content []byte
	// Filename defaults to "file_<index>" if empty; see assembleMultipart.
	Filename string
	Title       string
	Description string
	// ContentType defaults to "application/octet-stream" if empty.
	ContentType string
}
