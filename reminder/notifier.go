package reminder

import (
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// ChannelNotifier posts to the reminder channel through a Discord
// session. The channel is resolved per send so /setreminderchannel
// takes effect without a restart.
type ChannelNotifier struct {
	Session *discordgo.Session
	Channel func() int64
}

func (n *ChannelNotifier) Send(content string, embed *discordgo.MessageEmbed) error {
	channelID := strconv.FormatInt(n.Channel(), 10)
	_, err := n.Session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		Embed:   embed,
	})
	return err
}
