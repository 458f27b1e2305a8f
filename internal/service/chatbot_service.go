package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"mycloud-drive/internal/constant"
	"mycloud-drive/internal/dto"
	"mycloud-drive/internal/pkg/logger"
	"mycloud-drive/internal/repository/specification"
	"mycloud-drive/internal/repository/unitofwork"
	"mycloud-drive/pkg/llm"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type IChatbotService interface {
	Chat(ctx context.Context, userID uuid.UUID, req *dto.ChatbotRequest) (*dto.ChatbotResponse, error)
}

type chatbotService struct {
	uowFactory      unitofwork.RepositoryFactory
	blobs           BlobStore
	llmProvider     llm.LLMProvider
	maxContextBytes int
	temperature     float64
	logger          logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	blobs BlobStore,
	llmProvider llm.LLMProvider,
	maxContextBytes int,
	temperature float64,
	log logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory:      uowFactory,
		blobs:           blobs,
		llmProvider:     llmProvider,
		maxContextBytes: maxContextBytes,
		temperature:     temperature,
		logger:          log,
	}
}

type fileExcerpt struct {
	name      string
	text      string
	hasText   bool
	truncated bool
}

func (s *chatbotService) Chat(ctx context.Context, userID uuid.UUID, req *dto.ChatbotRequest) (*dto.ChatbotResponse, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyChatQuery
	}

	names, err := s.ownedSelection(ctx, userID, req.Files)
	if err != nil {
		return nil, err
	}

	excerpts := make([]fileExcerpt, 0, len(names))
	for _, name := range names {
		excerpts = append(excerpts, s.excerpt(userID, name))
	}

	history := []llm.Message{
		{Role: llm.RoleSystem, Content: constant.ChatbotSystemPromptV1},
		{Role: llm.RoleUser, Content: buildUserPrompt(req.Query, excerpts)},
	}

	answer, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(s.temperature))
	if err != nil {
		return nil, fmt.Errorf("llm chat: %w", err)
	}

	s.logger.Info("ChatbotService", "Answered query", map[string]interface{}{
		"user_id":        userID.String(),
		"selected_files": len(names),
		"ignored_files":  len(req.Files) - len(names),
	})
	return &dto.ChatbotResponse{Response: answer}, nil
}

// ownedSelection keeps requested names the user owns, in request order, without
// duplicates. Unknown names are dropped silently.
func (s *chatbotService) ownedSelection(ctx context.Context, userID uuid.UUID, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.FileRepository().FindAll(ctx,
		specification.FileOwnedBy{OwnerID: userID},
		specification.ByFilenames{Filenames: requested},
	)
	if err != nil {
		return nil, fmt.Errorf("resolve selected files: %w", err)
	}

	owned := make(map[string]bool, len(rows))
	for _, row := range rows {
		owned[row.Filename] = true
	}

	out := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, name := range requested {
		if owned[name] && !seen[name] && s.blobs.Exists(userID, name) {
			seen[name] = true
			out = append(out, name)
		}
	}
	return out, nil
}

func (s *chatbotService) excerpt(userID uuid.UUID, name string) fileExcerpt {
	out := fileExcerpt{name: name}

	f, err := s.blobs.Open(userID, name)
	if err != nil {
		s.logger.Warn("ChatbotService", "Selected file unreadable", map[string]interface{}{
			"filename": name,
			"error":    err.Error(),
		})
		return out
	}
	defer f.Close()

	buf, err := io.ReadAll(io.LimitReader(f, int64(s.maxContextBytes)+1))
	if err != nil || len(buf) == 0 {
		return out
	}
	if !isText(buf) {
		return out
	}

	if len(buf) > s.maxContextBytes {
		buf = buf[:s.maxContextBytes]
		out.truncated = true
	}
	out.text = strings.ToValidUTF8(string(trimPartialRune(buf)), "\uFFFD")
	out.hasText = true
	return out
}

// trimPartialRune drops a multi-byte sequence cut off by truncation.
func trimPartialRune(buf []byte) []byte {
	for i := 0; i < utf8.UTFMax-1 && len(buf) > 0; i++ {
		r, size := utf8.DecodeLastRune(buf)
		if r != utf8.RuneError || size != 1 {
			break
		}
		buf = buf[:len(buf)-1]
	}
	return buf
}

func isText(buf []byte) bool {
	for m := mimetype.Detect(buf); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

func buildUserPrompt(query string, excerpts []fileExcerpt) string {
	var b strings.Builder

	if len(excerpts) == 0 {
		b.WriteString(constant.ChatbotNoFilesNote)
		b.WriteString("\n\n")
	} else {
		b.WriteString(constant.ChatbotSelectedFilesHead)
		b.WriteString("\n")
		for _, ex := range excerpts {
			if !ex.hasText {
				fmt.Fprintf(&b, constant.ChatbotNoExcerptFormat+"\n", ex.name)
				continue
			}
			fmt.Fprintf(&b, constant.ChatbotFileHeaderFormat+"\n", ex.name)
			b.WriteString(ex.text)
			if !strings.HasSuffix(ex.text, "\n") {
				b.WriteString("\n")
			}
			if ex.truncated {
				b.WriteString(constant.ChatbotTruncatedMarker)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(constant.ChatbotQuestionHeader)
	b.WriteString("\n")
	b.WriteString(query)
	return b.String()
}
