package clients

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"GoRagServer/app/rag"
)

var _ Interface = &DiscordClient{}

// DiscordClient answers `!ask <question>` messages through the grounded
// query pipeline. When channelID is set, messages from other channels are
// ignored.
type DiscordClient struct {
	Client
	session   *discordgo.Session
	channelID string
}

func NewDiscordClient(token, channelID string) (*DiscordClient, error) {
	if token == "" {
		return nil, fmt.Errorf("discord token is empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}

	dc := &DiscordClient{
		session:   session,
		channelID: channelID,
	}

	session.AddHandler(dc.onMessageCreate)
	session.Identify.Intents = discordgo.IntentsGuildMessages

	return dc, nil
}

func (c *DiscordClient) Subscribe(answerer Answerer) {
	c.answerer = answerer

	if err := c.session.Open(); err != nil {
		log.Printf("🚨 Discord client failed to start: %v", err)
		return
	}
	log.Println("Discord client started. Listening for !ask messages...")
}

func (c *DiscordClient) Close() error {
	return c.session.Close()
}

func (c *DiscordClient) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}
	if c.channelID != "" && m.ChannelID != c.channelID {
		return
	}
	if !strings.HasPrefix(m.Content, "!ask") {
		return
	}

	question := strings.TrimSpace(strings.TrimPrefix(m.Content, "!ask"))
	if question == "" {
		s.ChannelMessageSend(m.ChannelID, "Usage: !ask <question>")
		return
	}

	answer, err := c.answerer.Answer(context.Background(), question)
	if err != nil {
		s.ChannelMessageSend(m.ChannelID, replyForError(err))
		return
	}

	s.ChannelMessageSend(m.ChannelID, formatAnswer(answer))
}

func replyForError(err error) string {
	if errors.Is(err, rag.ErrNoRelevantContext) {
		return "I couldn't find anything relevant in the embedded documents."
	}
	log.Printf("❌ Discord query failed: %v", err)
	return "Something went wrong while answering, try again later."
}

func formatAnswer(answer *rag.GroundedAnswer) string {
	var sb strings.Builder
	sb.WriteString(answer.Response)
	if len(answer.Sources) > 0 {
		sb.WriteString("\n")
		for _, src := range answer.Sources {
			sb.WriteString("\n> ")
			sb.WriteString(src)
		}
	}
	// Discord rejects messages over 2000 characters, counted as characters
	// rather than bytes, so the cut must not land inside a rune.
	msg := sb.String()
	if runes := []rune(msg); len(runes) > 2000 {
		msg = string(runes[:1997]) + "..."
	}
	return msg
}
