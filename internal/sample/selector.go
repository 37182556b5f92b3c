// Package sample picks a few donated conversations whose opening exchange
// survived the donor's review, for the follow-up questionnaire.
package sample

import (
	"log/slog"

	"github.com/MikeSquared-Agency/donor/internal/chatgpt"
)

// openingSize is the number of is_first records an intact opening has.
const openingSize = 2

// Selector picks the first, middle and last eligible conversations. It is
// deterministic and never fails; bad input shrinks the sample.
type Selector struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Selector {
	return &Selector{logger: logger}
}

// Select returns, for each sampled conversation, its opening message texts
// in donated order.
func (s *Selector) Select(donated []map[string]any) [][]string {
	groups, dropped := groupOpenings(donated)
	if dropped > 0 {
		s.logger.Debug("dropped malformed opening records", "count", dropped)
	}

	var eligible []*group
	for _, g := range groups {
		switch {
		case g.malformed:
			s.logger.Debug("dropping malformed conversation group", "conversation_id", g.id)
		case len(g.messages) != openingSize:
			s.logger.Debug("opening exchange not intact", "conversation_id", g.id, "records", len(g.messages))
		default:
			eligible = append(eligible, g)
		}
	}

	idx := Indices(len(eligible))
	out := make([][]string, 0, len(idx))
	for _, i := range idx {
		msgs := make([]string, len(eligible[i].messages))
		copy(msgs, eligible[i].messages)
		out = append(out, msgs)
	}

	s.logger.Info("sample selected",
		"records", len(donated),
		"eligible_conversations", len(eligible),
		"selected", len(out),
	)
	return out
}

// Eligible returns the donated records that belong to an intact opening
// exchange, in their original order. Running it on its own output returns
// the same records.
func Eligible(records []map[string]any) []map[string]any {
	groups, _ := groupOpenings(records)
	var out []map[string]any
	for _, g := range groups {
		if g.malformed || len(g.records) != openingSize {
			continue
		}
		out = append(out, g.records...)
	}
	return out
}

// Indices returns the positions sampled out of n eligible conversations:
// none, the only one, both, or first/middle/last.
func Indices(n int) []int {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []int{0}
	case n == 2:
		return []int{0, 1}
	default:
		return []int{0, n / 2, n - 1}
	}
}

// Pair splits a sampled opening into its question and answer.
func Pair(opening []string) (question, answer string, ok bool) {
	if len(opening) < openingSize {
		return "", "", false
	}
	return opening[0], opening[1], true
}

type group struct {
	id        string
	records   []map[string]any
	messages  []string
	malformed bool
}

// groupOpenings groups is_first records by conversation id in order of
// first appearance. Records without a usable conversation id cannot be
// grouped and are counted as dropped.
func groupOpenings(records []map[string]any) ([]*group, int) {
	var groups []*group
	byID := make(map[string]*group)
	dropped := 0

	for _, rec := range records {
		if rec == nil || !isFirst(rec[chatgpt.ColIsFirst]) {
			continue
		}
		id, ok := rec[chatgpt.ColConversationID].(string)
		if !ok || id == "" {
			dropped++
			continue
		}

		g, seen := byID[id]
		if !seen {
			g = &group{id: id}
			byID[id] = g
			groups = append(groups, g)
		}
		g.records = append(g.records, rec)

		msg, ok := rec[chatgpt.ColMessage].(string)
		if !ok {
			g.malformed = true
			continue
		}
		g.messages = append(g.messages, msg)
	}
	return groups, dropped
}

// isFirst accepts a JSON boolean or the literal string "true", which is
// how the donation layer may serialise the flag. Nothing else counts.
func isFirst(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b == "true"
	default:
		return false
	}
}
