package handler

import (
	"math/rand/v2"

	"emperror.dev/errors"
	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"

	"helyi-torpe/config"
	"helyi-torpe/meme"
	"helyi-torpe/metrics"
	"helyi-torpe/minesweeper"
	"helyi-torpe/poll"
)

// Session is the part of *discordgo.Session the commands talk to.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponse(interaction *discordgo.Interaction, options ...discordgo.RequestOption) (*discordgo.Message, error)
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	ChannelMessages(channelID string, limit int, beforeID, afterID, aroundID string, options ...discordgo.RequestOption) ([]*discordgo.Message, error)
}

type commandFunc func(r *Router, s Session, i *discordgo.InteractionCreate, log *logrus.Entry) (string, error)

var commandHandlers = map[string]commandFunc{
	"help":        (*Router).help,
	"source":      (*Router).source,
	"minesweeper": (*Router).minesweeper,
	"poll":        (*Router).poll,
	"meme":        (*Router).meme,
}

// Router dispatches slash command interactions.
type Router struct {
	SourceURL    string
	BoardSize    int
	BoardMines   int
	HistoryLimit int

	Composer *meme.Composer
	Fetcher  *meme.Fetcher

	// NewSource returns the random source for one board.
	NewSource func() minesweeper.Source

	Log *logrus.Logger
}

func NewRouter(cfg *config.Config, log *logrus.Logger) (*Router, error) {
	composer, err := meme.NewComposer()
	if err != nil {
		return nil, err
	}

	return &Router{
		SourceURL:    cfg.SourceURL,
		BoardSize:    cfg.MinesweeperSize,
		BoardMines:   cfg.MinesweeperMines,
		HistoryLimit: cfg.MemeHistoryLimit,
		Composer:     composer,
		Fetcher:      meme.NewFetcher(),
		NewSource:    NewSource,
		Log:          log,
	}, nil
}

// NewSource seeds an independent generator so concurrent boards share no state.
func NewSource() minesweeper.Source {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// InteractionCreate is registered with discordgo.Session.AddHandler.
func (r *Router) InteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	r.Handle(s, i)
}

func (r *Router) Handle(s Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	log := r.Log.WithFields(logrus.Fields{
		"command": name,
		"guild":   i.GuildID,
		"channel": i.ChannelID,
	})

	run, ok := commandHandlers[name]
	if !ok {
		log.Warn("Ignoring unknown command")
		return
	}

	log.Debug("Running command")
	result, err := run(r, s, i, log)
	if err != nil {
		log.WithError(err).Error("Command failed")
		result = metrics.ResultError
	}
	metrics.CountCommand(name, result)
}

func reply(s Session, i *discordgo.InteractionCreate, content string) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
	return errors.WrapIf(err, "sending reply")
}

func option(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func (r *Router) help(s Session, i *discordgo.InteractionCreate, _ *logrus.Entry) (string, error) {
	return metrics.ResultOK, reply(s, i, helpText)
}

func (r *Router) source(s Session, i *discordgo.InteractionCreate, _ *logrus.Entry) (string, error) {
	return metrics.ResultOK, reply(s, i, r.SourceURL)
}

func (r *Router) minesweeper(s Session, i *discordgo.InteractionCreate, _ *logrus.Entry) (string, error) {
	board, err := minesweeper.Generate(r.BoardSize, r.BoardMines, r.NewSource())
	if err != nil {
		return "", errors.Combine(err, reply(s, i, "Hiba: "+err.Error()))
	}

	txt, err := minesweeper.Render(board)
	if err != nil {
		return "", errors.Combine(err, reply(s, i, "Hiba: "+err.Error()))
	}

	return metrics.ResultOK, reply(s, i, txt)
}

func (r *Router) poll(s Session, i *discordgo.InteractionCreate, log *logrus.Entry) (string, error) {
	p, err := poll.Parse(option(i, "question"), option(i, "answers"))
	if err != nil {
		log.WithError(err).Debug("Rejected poll")
		return metrics.ResultRejected, reply(s, i, "Legalább egy válasz kell a szavazáshoz")
	}

	if err := reply(s, i, p.Content()); err != nil {
		return "", err
	}

	msg, err := s.InteractionResponse(i.Interaction)
	if err != nil {
		return "", errors.WrapIf(err, "fetching poll message")
	}

	for _, emoji := range p.Emojis() {
		if err := s.MessageReactionAdd(msg.ChannelID, msg.ID, emoji); err != nil {
			return "", errors.WrapIfWithDetails(err, "adding poll reaction", "emoji", emoji)
		}
	}

	log.WithField("answers", len(p.Answers)).Debug("Poll created")
	return metrics.ResultOK, nil
}
