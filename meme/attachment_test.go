package meme

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func msg(files ...string) *discordgo.Message {
	m := &discordgo.Message{}
	for _, f := range files {
		m.Attachments = append(m.Attachments, &discordgo.MessageAttachment{
			Filename: f,
			URL:      "https://cdn.example/" + f,
		})
	}
	return m
}

func TestLatestImage(t *testing.T) {
	cases := []struct {
		name     string
		messages []*discordgo.Message
		want     string
	}{
		{"newest wins", []*discordgo.Message{msg(), msg("uj.png"), msg("regi.jpg")}, "uj.png"},
		{"upper case extension", []*discordgo.Message{msg("KEP.JPG")}, "KEP.JPG"},
		{"only last attachment counts", []*discordgo.Message{msg("a.png", "b.txt"), msg("c.jpg")}, "c.jpg"},
		{"last attachment returned", []*discordgo.Message{msg("a.jpg", "b.png")}, "b.png"},
		{"jpeg and gif skipped", []*discordgo.Message{msg("a.jpeg"), msg("b.gif"), msg("c.png")}, "c.png"},
		{"nil messages skipped", []*discordgo.Message{nil, msg("d.png")}, "d.png"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := LatestImage(tc.messages)
			if assert.True(t, ok) {
				assert.Equal(t, tc.want, a.Filename)
				assert.Equal(t, "https://cdn.example/"+tc.want, a.URL)
			}
		})
	}
}

func TestLatestImageNone(t *testing.T) {
	_, ok := LatestImage([]*discordgo.Message{msg(), msg("notes.txt")})
	assert.False(t, ok)

	_, ok = LatestImage(nil)
	assert.False(t, ok)
}
