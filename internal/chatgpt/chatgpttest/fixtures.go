// Package chatgpttest builds ChatGPT export fixtures for tests. Mapping
// entries are written in the order given so tests control source order.
package chatgpttest

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

// Node describes one mapping entry.
type Node struct {
	ID          string
	Parent      string
	Children    []string
	Role        string
	Text        string
	Parts       []string // overrides Text when set
	Model       string
	ContentType string // defaults to "text"
	Hidden      bool
	CreateTime  float64
	NoMessage   bool
}

// JSON renders the node payload.
func (n Node) JSON() string {
	parent := "null"
	if n.Parent != "" {
		parent = quote(n.Parent)
	}
	children := n.Children
	if children == nil {
		children = []string{}
	}
	childJSON, _ := json.Marshal(children)

	msg := "null"
	if !n.NoMessage {
		ct := n.ContentType
		if ct == "" {
			ct = "text"
		}
		parts := n.Parts
		if parts == nil {
			parts = []string{n.Text}
		}
		meta := map[string]any{}
		if n.Model != "" {
			meta["model_slug"] = n.Model
		}
		if n.Hidden {
			meta["is_visually_hidden_from_conversation"] = true
		}
		m := map[string]any{
			"id":       n.ID,
			"author":   map[string]any{"role": n.Role},
			"content":  map[string]any{"content_type": ct, "parts": parts},
			"metadata": meta,
		}
		if n.CreateTime > 0 {
			m["create_time"] = n.CreateTime
		} else {
			m["create_time"] = nil
		}
		b, _ := json.Marshal(m)
		msg = string(b)
	}

	return fmt.Sprintf(`{"id":%s,"message":%s,"parent":%s,"children":%s}`,
		quote(n.ID), msg, parent, childJSON)
}

// Conversation renders a conversation object with its mapping in node order.
func Conversation(title, id string, nodes ...Node) string {
	entries := make([]string, len(nodes))
	for i, n := range nodes {
		entries[i] = quote(n.ID) + ":" + n.JSON()
	}
	return fmt.Sprintf(`{"title":%s,"conversation_id":%s,"mapping":{%s}}`,
		quote(title), quote(id), strings.Join(entries, ","))
}

// Chat renders a linear conversation the way exports shape them: an empty
// root, a hidden system message, then turns alternating user and assistant.
// Node ids are "<id>-root", "<id>-sys", "<id>-0", "<id>-1", ...
func Chat(title, id string, turns ...string) string {
	nodes := ChatNodes(id, turns...)
	return Conversation(title, id, nodes...)
}

// ChatNodes returns the nodes Chat would render.
func ChatNodes(id string, turns ...string) []Node {
	rootID, sysID := id+"-root", id+"-sys"
	nodes := []Node{
		{ID: rootID, Children: []string{sysID}, NoMessage: true},
		{ID: sysID, Parent: rootID, Role: "system", Hidden: true},
	}
	prev := sysID
	for i, text := range turns {
		nid := fmt.Sprintf("%s-%d", id, i)
		nodes[len(nodes)-1].Children = []string{nid}
		role, model := "user", ""
		if i%2 == 1 {
			role, model = "assistant", "gpt-4o"
		}
		nodes = append(nodes, Node{
			ID:         nid,
			Parent:     prev,
			Role:       role,
			Text:       text,
			Model:      model,
			CreateTime: 1700000000 + float64(i*60),
		})
		prev = nid
	}
	return nodes
}

// Export renders a conversations.json array.
func Export(conversations ...string) []byte {
	return []byte("[" + strings.Join(conversations, ",") + "]")
}

// Zip packs files into an in-memory zip archive.
func Zip(t testing.TB, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write(body); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	return buf.Bytes()
}

func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
