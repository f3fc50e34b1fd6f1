// Package normalize projeta as shapes da API do Discord no formato que o
// frontend espera. Funções puras; nada aqui toca rede ou banco.
package normalize

import (
	"fmt"
	"math/big"
	"strconv"

	"streamfront/internal/discord"
)

const cdnBase = "https://cdn.discordapp.com"

// Owner é o perfil do dono do site exibido na home.
type Owner struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	GlobalName    string  `json:"global_name"`
	Discriminator string  `json:"discriminator"`
	Nick          *string `json:"nick"`
	AvatarURL     string  `json:"avatar_url"`
	Status        string  `json:"status"`
}

type Reaction struct {
	Emoji discord.Emoji `json:"emoji"`
	Count int           `json:"count"`
	Me    bool          `json:"me"`
}

type Message struct {
	ID                string                `json:"id"`
	Content           string                `json:"content"`
	Timestamp         string                `json:"timestamp"`
	Author            discord.User          `json:"author"`
	Member            *discord.GuildMember  `json:"member,omitempty"`
	Attachments       []discord.Attachment  `json:"attachments"`
	StickerItems      []discord.StickerItem `json:"sticker_items"`
	Mentions          []discord.User        `json:"mentions"`
	Reactions         []Reaction            `json:"reactions"`
	ReferencedMessage *Message              `json:"referenced_message,omitempty"`
}

// NewOwner monta o perfil normalizado. Presence não está disponível sem
// conexão de gateway, então status é sempre "offline".
func NewOwner(guildID string, m *discord.GuildMember) Owner {
	return Owner{
		ID:            m.User.ID,
		Username:      m.User.Username,
		GlobalName:    m.User.GlobalName,
		Discriminator: m.User.Discriminator,
		Nick:          m.Nick,
		AvatarURL:     AvatarURL(guildID, m),
		Status:        "offline",
	}
}

// AvatarURL resolve a URL do avatar em três níveis:
// avatar da guild > avatar global > avatar default do embed.
func AvatarURL(guildID string, m *discord.GuildMember) string {
	if m.Avatar != nil && *m.Avatar != "" {
		return fmt.Sprintf("%s/guilds/%s/users/%s/avatars/%s.png", cdnBase, guildID, m.User.ID, *m.Avatar)
	}
	if m.User.Avatar != "" {
		return fmt.Sprintf("%s/avatars/%s/%s.png", cdnBase, m.User.ID, m.User.Avatar)
	}
	return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBase, DefaultAvatarIndex(m.User.ID, m.User.Discriminator))
}

// DefaultAvatarIndex cobre os dois esquemas históricos do Discord:
// contas novas (discriminator "0") usam (id >> 22) mod 6 com o id tratado
// como inteiro de precisão arbitrária; contas legadas usam discriminator mod 5.
func DefaultAvatarIndex(userID, discriminator string) int {
	if discriminator == "0" {
		id, ok := new(big.Int).SetString(userID, 10)
		if !ok {
			return 0
		}
		id.Rsh(id, 22)
		return int(id.Mod(id, big.NewInt(6)).Int64())
	}

	n, err := strconv.Atoi(discriminator)
	if err != nil {
		return 0
	}
	return n % 5
}

// Messages normaliza a página vinda do upstream (mais novas primeiro) e
// devolve em ordem cronológica, pronta para exibição sem sort no cliente.
func Messages(upstream []discord.Message) []Message {
	out := make([]Message, 0, len(upstream))
	for i := len(upstream) - 1; i >= 0; i-- {
		out = append(out, newMessage(&upstream[i], true))
	}
	return out
}

func newMessage(m *discord.Message, withReference bool) Message {
	nm := Message{
		ID:           m.ID,
		Content:      m.Content,
		Timestamp:    m.Timestamp,
		Author:       m.Author,
		Member:       m.Member,
		Attachments:  m.Attachments,
		StickerItems: m.StickerItems,
		Mentions:     m.Mentions,
		Reactions:    make([]Reaction, 0, len(m.Reactions)),
	}

	// arrays opcionais viram sequências vazias, nunca null
	if nm.Attachments == nil {
		nm.Attachments = []discord.Attachment{}
	}
	if nm.StickerItems == nil {
		nm.StickerItems = []discord.StickerItem{}
	}
	if nm.Mentions == nil {
		nm.Mentions = []discord.User{}
	}

	for _, r := range m.Reactions {
		nm.Reactions = append(nm.Reactions, Reaction{Emoji: r.Emoji, Count: r.Count, Me: r.Me})
	}

	// reply projetada um nível só; a referência da referência é descartada
	if withReference && m.ReferencedMessage != nil {
		ref := newMessage(m.ReferencedMessage, false)
		nm.ReferencedMessage = &ref
	}

	return nm
}
