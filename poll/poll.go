package poll

import (
	"strings"

	"emperror.dev/errors"
)

const ErrNoAnswers = errors.Sentinel("poll needs at least one answer")

// Reactions are the regional indicators A–K, one per answer slot.
var Reactions = [...]string{"🇦", "🇧", "🇨", "🇩", "🇪", "🇫", "🇬", "🇭", "🇮", "🇯", "🇰"}

// MaxAnswers is how many answers a single poll can offer.
const MaxAnswers = len(Reactions)

type Poll struct {
	Question string
	Answers  []string
}

// Parse splits a comma separated answer list. Blank answers are dropped and
// anything past MaxAnswers is ignored.
func Parse(question, answers string) (*Poll, error) {
	p := &Poll{Question: strings.TrimSpace(question)}
	for _, a := range strings.Split(answers, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if len(p.Answers) == MaxAnswers {
			break
		}
		p.Answers = append(p.Answers, a)
	}

	if len(p.Answers) == 0 {
		return nil, ErrNoAnswers
	}
	return p, nil
}

// Content is the message body announcing the poll.
func (p *Poll) Content() string {
	var sb strings.Builder
	sb.WriteString("__Szavazás: **" + p.Question + "**__\n")
	for i, a := range p.Answers {
		sb.WriteString(Reactions[i] + ":" + a + "\n")
	}
	return sb.String()
}

// Emojis returns the reactions to add, in answer order.
func (p *Poll) Emojis() []string {
	return Reactions[:len(p.Answers)]
}
