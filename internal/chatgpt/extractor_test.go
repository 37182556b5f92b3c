package chatgpt

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/donor/internal/chatgpt/chatgpttest"
)

func testExtractor() *Extractor {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), "")
}

func TestExtract_BasicConversation(t *testing.T) {
	data := chatgpttest.Export(
		chatgpttest.Chat("Trip planning", "c1", "Plan a trip", "Sure, where to?", "Lisbon"),
	)

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 3)

	assert.Equal(t, Record{
		ConversationTitle: "Trip planning",
		Role:              "user",
		Message:           "Plan a trip",
		Model:             "",
		Time:              "2023-11-14T22:13:20+00:00",
		ConversationID:    "c1",
		IsFirst:           true,
	}, recs[0])
	assert.Equal(t, "assistant", recs[1].Role)
	assert.Equal(t, "Sure, where to?", recs[1].Message)
	assert.Equal(t, "gpt-4o", recs[1].Model)
	assert.Equal(t, "2023-11-14T22:14:20+00:00", recs[1].Time)
	assert.True(t, recs[1].IsFirst)
	assert.Equal(t, "Lisbon", recs[2].Message)
	assert.False(t, recs[2].IsFirst)
}

func TestExtract_SingleUserNode(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Conversation("Solo", "c1",
		chatgpttest.Node{ID: "u", Role: "user", Parts: []string{"hello ", "", "world"}},
	))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 1)
	assert.True(t, recs[0].IsFirst)
	assert.Equal(t, "hello world", recs[0].Message)
	assert.Equal(t, "", recs[0].Time)
}

func TestExtract_HiddenAssistantExcluded(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Conversation("Hidden", "c1",
		chatgpttest.Node{ID: "u", Role: "user", Text: "Q", Children: []string{"h"}},
		chatgpttest.Node{ID: "h", Parent: "u", Role: "assistant", Text: "secret", Hidden: true, Children: []string{"a"}},
		chatgpttest.Node{ID: "a", Parent: "h", Role: "assistant", Text: "A"},
	))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 2)
	for _, r := range recs {
		assert.NotEqual(t, "secret", r.Message)
	}
	assert.Equal(t, "Q", recs[0].Message)
	assert.Equal(t, "A", recs[1].Message)
}

func TestExtract_RetentionFilter(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Conversation("Mixed", "c1",
		chatgpttest.Node{ID: "u", Role: "user", Text: "Q", Children: []string{"code"}},
		chatgpttest.Node{ID: "code", Parent: "u", Role: "assistant", Text: "print(1)", ContentType: "code", Children: []string{"tool"}},
		chatgpttest.Node{ID: "tool", Parent: "code", Role: "tool", Text: "1", Children: []string{"a"}},
		chatgpttest.Node{ID: "a", Parent: "tool", Role: "assistant", Text: "Done"},
	))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"Q", "Done"}, []string{recs[0].Message, recs[1].Message})
	for _, r := range recs {
		assert.Contains(t, []string{"user", "assistant"}, r.Role)
	}
}

func TestExtract_SourceOrderDiffersFromTree(t *testing.T) {
	nodes := chatgpttest.ChatNodes("c1", "Q", "A", "Q2", "A2")
	// Reverse the mapping order.
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	data := chatgpttest.Export(chatgpttest.Conversation("Reversed", "c1", nodes...))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 4)
	assert.Equal(t, []string{"Q", "A", "Q2", "A2"}, messages(recs))
	assert.Equal(t, []bool{true, true, false, false}, firstFlags(recs))
}

func TestExtract_AlternateBranchFollowsMain(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Conversation("Regenerated", "c1",
		chatgpttest.Node{ID: "u", Role: "user", Text: "Q", Children: []string{"a1", "a2"}},
		chatgpttest.Node{ID: "a2", Parent: "u", Role: "assistant", Text: "second try"},
		chatgpttest.Node{ID: "a1", Parent: "u", Role: "assistant", Text: "first try"},
	))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"Q", "first try", "second try"}, messages(recs))
	assert.Equal(t, []bool{true, true, false}, firstFlags(recs))
}

func TestExtract_ImageOpeningNotMarked(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Conversation("Picture", "c1",
		chatgpttest.Node{ID: "root", NoMessage: true, Children: []string{"u0"}},
		chatgpttest.Node{ID: "u0", Parent: "root", Role: "user", ContentType: "multimodal_text", Text: "what is this?", Children: []string{"a0"}},
		chatgpttest.Node{ID: "a0", Parent: "u0", Role: "assistant", Text: "A cat.", Children: []string{"u1"}},
		chatgpttest.Node{ID: "u1", Parent: "a0", Role: "user", Text: "thanks", Children: []string{"a1"}},
		chatgpttest.Node{ID: "a1", Parent: "u1", Role: "assistant", Text: "You're welcome."},
	))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"A cat.", "thanks", "You're welcome."}, messages(recs))
	assert.Equal(t, []bool{false, false, false}, firstFlags(recs))
}

func TestExtract_OpeningWithoutAssistantReply(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Conversation("Two questions", "c1",
		chatgpttest.Node{ID: "u0", Role: "user", Text: "Q", Children: []string{"img"}},
		chatgpttest.Node{ID: "img", Parent: "u0", Role: "assistant", ContentType: "multimodal_text", Children: []string{"u1"}},
		chatgpttest.Node{ID: "u1", Parent: "img", Role: "user", Text: "Q again", Children: []string{"a1"}},
		chatgpttest.Node{ID: "a1", Parent: "u1", Role: "assistant", Text: "A"},
	))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 3)
	assert.Equal(t, []bool{true, false, false}, firstFlags(recs))
}

func TestExtract_MalformedConversationSkipped(t *testing.T) {
	data := chatgpttest.Export(
		chatgpttest.Chat("Good", "c1", "Q1", "A1"),
		`{"title": 42, "conversation_id": "bad", "mapping": {}}`,
		`{"title": "no mapping", "conversation_id": "c3"}`,
		`{"title": "broken node", "conversation_id": "c4", "mapping": {"x": {"children": "nope"}}}`,
		chatgpttest.Chat("Also good", "c5", "Q5", "A5"),
	)

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 4)
	assert.Equal(t, "c1", recs[0].ConversationID)
	assert.Equal(t, "c5", recs[3].ConversationID)
}

func TestExtract_NotAnArray(t *testing.T) {
	assert.Empty(t, testExtractor().ExtractJSON([]byte(`{"title":"x"}`)))
	assert.Empty(t, testExtractor().ExtractJSON([]byte(`not json`)))
	assert.Empty(t, testExtractor().ExtractJSON(nil))
}

func TestExtract_FallbackConversationID(t *testing.T) {
	data := []byte(`[{"title":"Old","id":"legacy-1","mapping":{` +
		`"u":` + chatgpttest.Node{ID: "u", Role: "user", Text: "Q"}.JSON() + `}}]`)

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 1)
	assert.Equal(t, "legacy-1", recs[0].ConversationID)
}

func TestExtract_AtMostTwoFirstPerConversation(t *testing.T) {
	data := chatgpttest.Export(
		chatgpttest.Chat("A", "a", "1", "2", "3", "4", "5"),
		chatgpttest.Chat("B", "b", "1"),
		chatgpttest.Chat("C", "c"),
		chatgpttest.Chat("D", "d", "1", "2"),
	)

	recs := testExtractor().ExtractJSON(data)
	counts := map[string]int{}
	for _, r := range recs {
		if r.IsFirst {
			counts[r.ConversationID]++
		}
	}
	assert.Equal(t, map[string]int{"a": 2, "b": 1, "d": 2}, counts)
}

func TestExtract_EmptyPartsAndNoMessage(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Conversation("Empty", "c1",
		chatgpttest.Node{ID: "root", NoMessage: true, Children: []string{"u"}},
		chatgpttest.Node{ID: "u", Parent: "root", Role: "user", Parts: []string{}, Children: []string{"a"}},
		chatgpttest.Node{ID: "a", Parent: "u", Role: "assistant", Text: ""},
	))

	recs := testExtractor().ExtractJSON(data)
	require.Len(t, recs, 2)
	assert.Equal(t, "", recs[0].Message)
	assert.Equal(t, "", recs[1].Message)
}

func TestExtractFile(t *testing.T) {
	zipData := chatgpttest.Zip(t, map[string][]byte{
		"conversations.json": chatgpttest.Export(chatgpttest.Chat("T", "c1", "Q", "A")),
		"user.json":          []byte(`{}`),
	})
	path := filepath.Join(t.TempDir(), "export.zip")
	require.NoError(t, os.WriteFile(path, zipData, 0o644))

	recs := testExtractor().ExtractFile(path)
	require.Len(t, recs, 2)

	recs = testExtractor().ExtractArchive(bytes.NewReader(zipData), int64(len(zipData)))
	require.Len(t, recs, 2)
}

func TestExtractFile_MissingEntry(t *testing.T) {
	zipData := chatgpttest.Zip(t, map[string][]byte{"user.json": []byte(`{}`)})

	recs := testExtractor().ExtractArchive(bytes.NewReader(zipData), int64(len(zipData)))
	assert.Empty(t, recs)
	assert.Empty(t, testExtractor().ExtractFile("/nonexistent/export.zip"))
}

func TestExtractConversations_Reader(t *testing.T) {
	data := chatgpttest.Export(chatgpttest.Chat("T", "c1", "Q", "A"))

	recs := testExtractor().ExtractConversations(strings.NewReader(string(data)))
	assert.Len(t, recs, 2)
}

func TestRecordMap_ColumnNames(t *testing.T) {
	m := Record{ConversationID: "c1", IsFirst: true}.Map()

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, Columns, keys)
	assert.Equal(t, true, m[ColIsFirst])
}

func messages(recs []Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Message
	}
	return out
}

func firstFlags(recs []Record) []bool {
	out := make([]bool, len(recs))
	for i, r := range recs {
		out[i] = r.IsFirst
	}
	return out
}
