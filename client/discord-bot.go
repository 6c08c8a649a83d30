package client

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// WorldRecord describes a run that just took rank 1 of its category.
type WorldRecord struct {
	Username     string
	GamemodeName string
	CategoryName string
	MetricLabel  string
	DisplayValue string
	EvidenceUrl  string
}

type ChannelMessenger interface {
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

type DiscordNotifier struct {
	session   ChannelMessenger
	channelId string
}

func NewDiscordNotifier(token string, channelId string) (*DiscordNotifier, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}
	return &DiscordNotifier{session: session, channelId: channelId}, nil
}

func NewDiscordNotifierWithSession(session ChannelMessenger, channelId string) *DiscordNotifier {
	return &DiscordNotifier{session: session, channelId: channelId}
}

func (n *DiscordNotifier) NotifyWorldRecord(ctx context.Context, record WorldRecord) error {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("New world record in %s / %s", record.GamemodeName, record.CategoryName),
		Description: fmt.Sprintf("%s set a %s of **%s**", record.Username, record.MetricLabel, record.DisplayValue),
		URL:         record.EvidenceUrl,
		Color:       0xf5c542,
	}
	_, err := n.session.ChannelMessageSendEmbed(n.channelId, embed, discordgo.WithContext(ctx))
	return err
}

type NoopNotifier struct{}

func (NoopNotifier) NotifyWorldRecord(context.Context, WorldRecord) error {
	return nil
}
