package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"mycloud-drive/internal/constant"
	"mycloud-drive/internal/dto"
	"mycloud-drive/internal/entity"
	"mycloud-drive/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatFixture struct {
	svc   IChatbotService
	store *memStore
	blobs *DiskBlobStore
	llm   *fakeLLM
	user  uuid.UUID
}

func newChatFixture(t *testing.T, maxBytes int) *chatFixture {
	t.Helper()
	blobs, err := NewDiskBlobStore(t.TempDir())
	require.NoError(t, err)
	f := &chatFixture{
		store: newMemStore(),
		blobs: blobs,
		llm:   &fakeLLM{reply: "Here is a summary..."},
		user:  uuid.New(),
	}
	f.svc = NewChatbotService(f.store, blobs, f.llm, maxBytes, 0.3, testLogger)
	return f
}

func (f *chatFixture) put(t *testing.T, owner uuid.UUID, name string, content []byte) {
	t.Helper()
	_, err := f.blobs.Save(owner, name, bytes.NewReader(content))
	require.NoError(t, err)
	f.store.files = append(f.store.files, &entity.File{Id: uuid.New(), OwnerId: owner, Filename: name})
}

func (f *chatFixture) prompt(t *testing.T) string {
	t.Helper()
	require.Len(t, f.llm.history, 2)
	assert.Equal(t, llm.RoleSystem, f.llm.history[0].Role)
	return f.llm.history[1].Content
}

func TestChatWithoutFiles(t *testing.T) {
	f := newChatFixture(t, 1024)

	res, err := f.svc.Chat(context.Background(), f.user, &dto.ChatbotRequest{Query: "Summarize", Files: []string{}})
	require.NoError(t, err)
	assert.Equal(t, "Here is a summary...", res.Response)

	prompt := f.prompt(t)
	assert.Contains(t, prompt, constant.ChatbotNoFilesNote)
	assert.True(t, strings.HasSuffix(prompt, "Summarize"))
}

func TestChatIncludesOwnedExcerptsInRequestOrder(t *testing.T) {
	f := newChatFixture(t, 1024)
	f.put(t, f.user, "a.txt", []byte("alpha contents"))
	f.put(t, f.user, "b.md", []byte("# beta"))
	f.put(t, uuid.New(), "theirs.txt", []byte("not yours"))

	_, err := f.svc.Chat(context.Background(), f.user, &dto.ChatbotRequest{
		Query: "compare",
		Files: []string{"b.md", "theirs.txt", "a.txt", "b.md", "ghost.txt"},
	})
	require.NoError(t, err)

	prompt := f.prompt(t)
	assert.Contains(t, prompt, "--- b.md ---\n# beta")
	assert.Contains(t, prompt, "--- a.txt ---\nalpha contents")
	assert.Less(t, strings.Index(prompt, "b.md"), strings.Index(prompt, "a.txt"))
	assert.Equal(t, 1, strings.Count(prompt, "--- b.md ---"))
	assert.NotContains(t, prompt, "not yours")
	assert.NotContains(t, prompt, "ghost.txt")
}

func TestChatTruncatesLongFiles(t *testing.T) {
	f := newChatFixture(t, 10)
	f.put(t, f.user, "long.txt", []byte("0123456789abcdef"))

	_, err := f.svc.Chat(context.Background(), f.user, &dto.ChatbotRequest{Query: "q", Files: []string{"long.txt"}})
	require.NoError(t, err)

	prompt := f.prompt(t)
	assert.Contains(t, prompt, "0123456789\n"+constant.ChatbotTruncatedMarker)
	assert.NotContains(t, prompt, "abcdef")
}

func TestChatNamesBinaryFilesWithoutContent(t *testing.T) {
	f := newChatFixture(t, 1024)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01")
	f.put(t, f.user, "pic.png", png)

	_, err := f.svc.Chat(context.Background(), f.user, &dto.ChatbotRequest{Query: "what is this", Files: []string{"pic.png"}})
	require.NoError(t, err)
	assert.Contains(t, f.prompt(t), "--- pic.png --- (no text excerpt available)")
}

func TestChatErrors(t *testing.T) {
	f := newChatFixture(t, 1024)

	_, err := f.svc.Chat(context.Background(), f.user, &dto.ChatbotRequest{Query: "   "})
	assert.ErrorIs(t, err, ErrEmptyChatQuery)

	f.llm.err = errors.New("model offline")
	_, err = f.svc.Chat(context.Background(), f.user, &dto.ChatbotRequest{Query: "hi"})
	assert.ErrorContains(t, err, "model offline")
}

func TestTrimPartialRune(t *testing.T) {
	euro := []byte("ab€")
	assert.Equal(t, "ab", string(trimPartialRune(euro[:len(euro)-1])))
	assert.Equal(t, "ab€", string(trimPartialRune(euro)))
}
