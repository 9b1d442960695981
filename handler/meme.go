package handler

import (
	"bytes"
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"helyi-torpe/meme"
	"helyi-torpe/metrics"
)

const memeTimeout = time.Minute

func followup(s Session, i *discordgo.InteractionCreate, params *discordgo.WebhookParams) error {
	_, err := s.FollowupMessageCreate(i.Interaction, true, params)
	return errors.WrapIf(err, "sending followup")
}

func (r *Router) meme(s Session, i *discordgo.InteractionCreate, log *logrus.Entry) (string, error) {
	if i.GuildID == "" {
		return metrics.ResultRejected, reply(s, i, "Ez a parancs még csak szerveren használható")
	}

	// Downloading and drawing can take longer than the interaction deadline.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return "", errors.WrapIf(err, "deferring reply")
	}

	messages, err := s.ChannelMessages(i.ChannelID, r.HistoryLimit, "", "", "")
	if err != nil {
		err = errors.WrapIf(err, "reading channel history")
		return "", errors.Combine(err, followup(s, i, &discordgo.WebhookParams{Content: "Hiba: " + err.Error()}))
	}

	attachment, ok := meme.LatestImage(messages)
	if !ok {
		return metrics.ResultRejected, followup(s, i, &discordgo.WebhookParams{Content: "Nem találtam képet :("})
	}

	log = log.WithField("attachment", attachment.Filename)

	start := time.Now()
	result, err := r.render(attachment.URL, option(i, "text"))
	if err != nil {
		// The user gets the reason, it is not a bot failure.
		log.WithError(err).Info("Meme rendering failed")
		return metrics.ResultRejected, followup(s, i, &discordgo.WebhookParams{Content: "Hiba: " + err.Error()})
	}
	metrics.MemeRenderSeconds.Observe(time.Since(start).Seconds())

	return metrics.ResultOK, followup(s, i, &discordgo.WebhookParams{
		Files: []*discordgo.File{
			{
				Name:        "result.png",
				ContentType: "image/png",
				Reader:      bytes.NewReader(result),
			},
		},
	})
}

func (r *Router) render(url, caption string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), memeTimeout)
	defer cancel()

	data, err := r.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	picture, err := meme.Decode(data)
	if err != nil {
		return nil, err
	}

	return r.Composer.Compose(picture, caption)
}
