package fluxcrystal

// RichEmbed is an immutable builder for message embeds. Each With* method
// returns a new RichEmbed with the mutation applied; the receiver is left
// untouched, so intermediate values can be reused as shared bases for
// several derived embeds.
type RichEmbed struct {
	title       string
	description string
	url         string
	timestamp   string
	color       int
	hasColor    bool
	footer      *embedFooter
	image       *embedMedia
	thumbnail   *embedMedia
	video       *embedMedia
	provider    *embedProvider
	author      *embedAuthor
	fields      []EmbedField
}

type embedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

type embedMedia struct {
	URL    string `json:"url"`
	Height int    `json:"height,omitempty"`
	Width  int    `json:"width,omitempty"`
}

type embedProvider struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`
}

type embedAuthor struct {
	Name    string `json:"name"`
	URL     string `json:"url,omitempty"`
	IconURL string `json:"icon_url,omitempty"`
}

// NewRichEmbed returns an empty embed builder with type "rich".
func NewRichEmbed() RichEmbed {
	return RichEmbed{}
}

// clone copies the receiver; fields that are pointers are deep-copied so
// derived builders never alias their parent's nested state.
func (e RichEmbed) clone() RichEmbed {
	out := e
	out.fields = append([]EmbedField(nil), e.fields...)
	if e.footer != nil {
		f := *e.footer
		out.footer = &f
	}
	if e.image != nil {
		m := *e.image
		out.image = &m
	}
	if e.thumbnail != nil {
		m := *e.thumbnail
		out.thumbnail = &m
	}
	if e.video != nil {
		m := *e.video
		out.video = &m
	}
	if e.provider != nil {
		p := *e.provider
		out.provider = &p
	}
	if e.author != nil {
		a := *e.author
		out.author = &a
	}
	return out
}

// WithTitle sets the embed's title.
func (e RichEmbed) WithTitle(title string) RichEmbed {
	out := e.clone()
	out.title = title
	return out
}

// WithDescription sets the embed's description.
func (e RichEmbed) WithDescription(description string) RichEmbed {
	out := e.clone()
	out.description = description
	return out
}

// WithURL sets the embed's URL (makes the title clickable).
func (e RichEmbed) WithURL(url string) RichEmbed {
	out := e.clone()
	out.url = url
	return out
}

// WithTimestamp sets the embed's timestamp (ISO 8601 / RFC3339).
func (e RichEmbed) WithTimestamp(timestamp string) RichEmbed {
	out := e.clone()
	out.timestamp = timestamp
	return out
}

// WithColor sets the embed's accent color, as a decimal RGB value.
func (e RichEmbed) WithColor(color int) RichEmbed {
	out := e.clone()
	out.color = color
	out.hasColor = true
	return out
}

// WithFooter sets the embed's footer text and optional icon.
func (e RichEmbed) WithFooter(text string, iconURL string) RichEmbed {
	out := e.clone()
	out.footer = &embedFooter{Text: text, IconURL: iconURL}
	return out
}

// WithImage sets the embed's image. height and width of 0 are omitted.
func (e RichEmbed) WithImage(url string, height, width int) RichEmbed {
	out := e.clone()
	out.image = &embedMedia{URL: url, Height: height, Width: width}
	return out
}

// WithThumbnail sets the embed's thumbnail. height and width of 0 are
// omitted.
func (e RichEmbed) WithThumbnail(url string, height, width int) RichEmbed {
	out := e.clone()
	out.thumbnail = &embedMedia{URL: url, Height: height, Width: width}
	return out
}

// WithVideo sets the embed's video. height and width of 0 are omitted.
func (e RichEmbed) WithVideo(url string, height, width int) RichEmbed {
	out := e.clone()
	out.video = &embedMedia{URL: url, Height: height, Width: width}
	return out
}

// WithProvider sets the embed's provider name/url.
func (e RichEmbed) WithProvider(name, url string) RichEmbed {
	out := e.clone()
	out.provider = &embedProvider{Name: name, URL: url}
	return out
}

// WithAuthor sets the embed's author line.
func (e RichEmbed) WithAuthor(name, url, iconURL string) RichEmbed {
	out := e.clone()
	out.author = &embedAuthor{Name: name, URL: url, IconURL: iconURL}
	return out
}

// WithField appends a field to the embed.
func (e RichEmbed) WithField(name, value string, inline bool) RichEmbed {
	out := e.clone()
	out.fields = append(out.fields, EmbedField{Name: name, Value: value, Inline: inline})
	return out
}

// wireEmbed is the JSON shape sent to the server.
type wireEmbed struct {
	Type        string         `json:"type"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Color       *int           `json:"color,omitempty"`
	Footer      *embedFooter   `json:"footer,omitempty"`
	Image       *embedMedia    `json:"image,omitempty"`
	Thumbnail   *embedMedia    `json:"thumbnail,omitempty"`
	Video       *embedMedia    `json:"video,omitempty"`
	Provider    *embedProvider `json:"provider,omitempty"`
	Author      *embedAuthor   `json:"author,omitempty"`
	Fields      []EmbedField   `json:"fields,omitempty"`
}

// toWire serializes the builder's current state into the JSON shape the
// REST API expects.
func (e RichEmbed) toWire() wireEmbed {
	w := wireEmbed{
		Type:        "rich",
		Title:       e.title,
		Description: e.description,
		URL:         e.url,
		Timestamp:   e.timestamp,
		Footer:      e.footer,
		Image:       e.image,
		Thumbnail:   e.thumbnail,
		Video:       e.video,
		Provider:    e.provider,
		Author:      e.author,
		Fields:      e.fields,
	}
	if e.hasColor {
		c := e.color
		w.Color = &c
	}
	return w
}
