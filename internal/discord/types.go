package discord

// Shapes da API do Discord (v10); somente os campos que o frontend consome.

type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	GlobalName    string `json:"global_name"`
	Avatar        string `json:"avatar"`
	Bot           bool   `json:"bot,omitempty"`
}

type GuildMember struct {
	User     User     `json:"user"`
	Nick     *string  `json:"nick"`
	Avatar   *string  `json:"avatar"` // avatar especifico da guild, pode ser null
	Roles    []string `json:"roles,omitempty"`
	JoinedAt string   `json:"joined_at,omitempty"`
}

type Attachment struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type,omitempty"`
	Size        int    `json:"size"`
	URL         string `json:"url"`
	ProxyURL    string `json:"proxy_url"`
	Width       *int   `json:"width,omitempty"`
	Height      *int   `json:"height,omitempty"`
}

type StickerItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	FormatType int    `json:"format_type"`
}

type Emoji struct {
	ID       *string `json:"id"`
	Name     string  `json:"name"`
	Animated bool    `json:"animated,omitempty"`
}

type Reaction struct {
	Emoji Emoji `json:"emoji"`
	Count int   `json:"count"`
	Me    bool  `json:"me"`
}

type Message struct {
	ID                string        `json:"id"`
	ChannelID         string        `json:"channel_id"`
	Author            User          `json:"author"`
	Member            *GuildMember  `json:"member,omitempty"`
	Content           string        `json:"content"`
	Timestamp         string        `json:"timestamp"`
	EditedTimestamp   *string       `json:"edited_timestamp,omitempty"`
	Attachments       []Attachment  `json:"attachments,omitempty"`
	StickerItems      []StickerItem `json:"sticker_items,omitempty"`
	Mentions          []User        `json:"mentions,omitempty"`
	Reactions         []Reaction    `json:"reactions,omitempty"`
	ReferencedMessage *Message      `json:"referenced_message,omitempty"`
}
