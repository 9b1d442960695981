package meme

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

// LatestImage finds the newest message whose last attachment is a png or
// jpg file. Messages are expected newest first, as Discord returns them.
func LatestImage(messages []*discordgo.Message) (*discordgo.MessageAttachment, bool) {
	for _, msg := range messages {
		if msg == nil || len(msg.Attachments) == 0 {
			continue
		}

		last := msg.Attachments[len(msg.Attachments)-1]
		name := strings.ToLower(last.Filename)
		if strings.HasSuffix(name, ".png") || strings.HasSuffix(name, ".jpg") {
			return last, true
		}
	}

	return nil, false
}
