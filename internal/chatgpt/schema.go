package chatgpt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

var errNoMapping = errors.New("conversation has no mapping")

// exportConversation is one element of conversations.json.
type exportConversation struct {
	Title          string         `json:"title"`
	ID             string         `json:"id"`
	ConversationID string         `json:"conversation_id"`
	Mapping        orderedMapping `json:"mapping"`
}

type exportNode struct {
	ID       string         `json:"id"`
	Message  *exportMessage `json:"message"`
	Parent   *string        `json:"parent"`
	Children []string       `json:"children"`
}

type exportMessage struct {
	Author struct {
		Role string `json:"role"`
	} `json:"author"`
	CreateTime *float64 `json:"create_time"`
	Content    struct {
		ContentType string            `json:"content_type"`
		Parts       []json.RawMessage `json:"parts"`
	} `json:"content"`
	Metadata struct {
		ModelSlug      string `json:"model_slug"`
		VisuallyHidden bool   `json:"is_visually_hidden_from_conversation"`
	} `json:"metadata"`
}

// orderedMapping decodes the node map while keeping the source key order,
// which a Go map would lose.
type orderedMapping struct {
	keys  []string
	nodes map[string]exportNode
}

func (m *orderedMapping) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("mapping: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("mapping: expected object, got %v", tok)
	}

	m.nodes = make(map[string]exportNode)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("mapping key: %w", err)
		}
		key, _ := tok.(string)

		var n exportNode
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("node %s: %w", key, err)
		}
		if _, dup := m.nodes[key]; !dup {
			m.keys = append(m.keys, key)
		}
		m.nodes[key] = n
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("mapping end: %w", err)
	}
	return nil
}

// parseConversation decodes one raw conversation into domain nodes.
func parseConversation(raw json.RawMessage) (Conversation, error) {
	var ec exportConversation
	if err := json.Unmarshal(raw, &ec); err != nil {
		return Conversation{}, fmt.Errorf("decode conversation: %w", err)
	}

	c := Conversation{
		ID:    ec.ConversationID,
		Title: ec.Title,
	}
	// Older exports only carry "id".
	if c.ID == "" {
		c.ID = ec.ID
	}
	if ec.Mapping.nodes == nil {
		return c, errNoMapping
	}

	c.Nodes = make([]Node, 0, len(ec.Mapping.keys))
	for _, key := range ec.Mapping.keys {
		c.Nodes = append(c.Nodes, toNode(key, ec.Mapping.nodes[key]))
	}
	return c, nil
}

func toNode(key string, en exportNode) Node {
	n := Node{
		ID:       en.ID,
		ChildIDs: en.Children,
	}
	if n.ID == "" {
		n.ID = key
	}
	if en.Parent != nil {
		n.ParentID = *en.Parent
	}

	msg := en.Message
	if msg == nil {
		return n
	}
	n.Role = msg.Author.Role
	n.ContentType = msg.Content.ContentType
	n.Hidden = msg.Metadata.VisuallyHidden
	n.Model = msg.Metadata.ModelSlug
	n.Text = joinParts(msg.Content.Parts)
	if msg.CreateTime != nil {
		n.CreatedAt = epochToTime(*msg.CreateTime)
	}
	return n
}

// joinParts concatenates the string parts of a message. Non-string parts
// (asset pointers and the like) are skipped.
func joinParts(parts []json.RawMessage) string {
	var sb bytes.Buffer
	for _, p := range parts {
		var s string
		if err := json.Unmarshal(p, &s); err != nil {
			continue
		}
		sb.WriteString(s)
	}
	return sb.String()
}

// maxEpoch is 9999-12-31T23:59:59Z. Later values cannot be formatted with a
// four-digit year.
const maxEpoch = 253402300799

func epochToTime(epoch float64) time.Time {
	if epoch <= 0 || epoch > maxEpoch || math.IsNaN(epoch) || math.IsInf(epoch, 0) {
		return time.Time{}
	}
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC()
}
