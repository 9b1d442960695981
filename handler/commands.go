package handler

import (
	"emperror.dev/errors"
	"github.com/bwmarrin/discordgo"
)

const helpText = "**A Helyi Törpe parancsai**\n```\n" +
	"/help                                  parancsok listája\n" +
	"/source                                link a forráskódhoz\n" +
	"/minesweeper                           aknakereső\n" +
	"/meme <szöveg>                         a legutóbb feltöltött képhez felirat\n" +
	"/poll <kérdés> <válasz1,válasz2,...>   szavazás```"

// Commands are the slash commands the bot answers.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "help",
			Description: "parancsok listája",
		},
		{
			Name:        "source",
			Description: "link a forráskódhoz",
		},
		{
			Name:        "minesweeper",
			Description: "aknakereső",
		},
		{
			Name:        "meme",
			Description: "a legutóbb feltöltött képhez felirat",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "szöveg",
					Required:    true,
				},
			},
		},
		{
			Name:        "poll",
			Description: "szavazás",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "question",
					Description: "kérdés",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "answers",
					Description: "válasz1,...",
					Required:    true,
				},
			},
		},
	}
}

// Register overwrites the application's commands. An empty guildID
// registers them globally, which can take up to an hour to show up.
func Register(s *discordgo.Session, appID, guildID string) ([]*discordgo.ApplicationCommand, error) {
	cmds, err := s.ApplicationCommandBulkOverwrite(appID, guildID, Commands())
	if err != nil {
		return nil, errors.WrapIfWithDetails(err, "registering slash commands", "guild", guildID)
	}
	return cmds, nil
}
