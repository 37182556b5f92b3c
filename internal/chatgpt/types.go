package chatgpt

import "time"

// Column names of the extracted table. Donated records come back keyed by
// these exact strings.
const (
	ColConversationTitle = "conversation_title"
	ColRole              = "role"
	ColMessage           = "message"
	ColModel             = "model"
	ColTime              = "time"
	ColConversationID    = "conversation_id"
	ColIsFirst           = "is_first"
)

// Columns lists the table columns in display order.
var Columns = []string{
	ColConversationTitle,
	ColRole,
	ColMessage,
	ColModel,
	ColTime,
	ColConversationID,
	ColIsFirst,
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Record is one retained message, flattened for the donation table.
type Record struct {
	ConversationTitle string `json:"conversation_title" parquet:"conversation_title"`
	Role              string `json:"role" parquet:"role"`
	Message           string `json:"message" parquet:"message"`
	Model             string `json:"model" parquet:"model"`
	Time              string `json:"time" parquet:"time"`
	ConversationID    string `json:"conversation_id" parquet:"conversation_id"`
	IsFirst           bool   `json:"is_first" parquet:"is_first"`
}

// Map returns the record in the generic shape the donation step hands back.
func (r Record) Map() map[string]any {
	return map[string]any{
		ColConversationTitle: r.ConversationTitle,
		ColRole:              r.Role,
		ColMessage:           r.Message,
		ColModel:             r.Model,
		ColTime:              r.Time,
		ColConversationID:    r.ConversationID,
		ColIsFirst:           r.IsFirst,
	}
}

// Node is a message node of a conversation mapping. Relationships to other
// nodes are plain ids.
type Node struct {
	ID          string
	ParentID    string
	ChildIDs    []string
	Role        string
	ContentType string
	Hidden      bool
	Text        string
	Model       string
	CreatedAt   time.Time
}

// Retained reports whether the node survives the text/visibility/role filter.
func (n Node) Retained() bool {
	if n.ContentType != "text" || n.Hidden {
		return false
	}
	return n.Role == RoleUser || n.Role == RoleAssistant
}

// FirstChild is the successor on the main branch, or "" for a leaf.
func (n Node) FirstChild() string {
	if len(n.ChildIDs) == 0 {
		return ""
	}
	return n.ChildIDs[0]
}

// Conversation holds a conversation's nodes in source mapping order.
type Conversation struct {
	ID    string
	Title string
	Nodes []Node
}

// isoTime renders t the way the donation table expects: second precision,
// UTC with an explicit offset. The zero time renders as "".
func isoTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Truncate(time.Second).Format("2006-01-02T15:04:05-07:00")
}
