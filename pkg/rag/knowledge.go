package rag

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/vector"
)

// Section is one question/answer entry parsed from the knowledge file.
type Section struct {
	Question string
	Answer   string
}

// ParseFAQ splits markdown content into question/answer sections. Each
// "## " heading starts a new section; the lines until the next heading
// form its answer.
func ParseFAQ(content string) []Section {
	var sections []Section
	var current Section
	var answer strings.Builder

	flush := func() {
		if current.Question != "" {
			current.Answer = strings.TrimSpace(answer.String())
			sections = append(sections, current)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(line, "## ") {
			flush()
			current = Section{Question: strings.TrimSpace(line[3:])}
			answer.Reset()
			continue
		}
		answer.WriteString(line)
		answer.WriteString("\n")
	}
	flush()

	return sections
}

// FormatDocument renders a section as the stored document text.
func FormatDocument(s Section) string {
	return fmt.Sprintf("问题：%s\n答案：%s", s.Question, s.Answer)
}

// LoadKnowledgeFile reads and ingests a FAQ markdown file, then marks the
// engine ready. When the index already holds documents (a shared remote
// index populated by an earlier run), ingestion is skipped.
func (e *Engine) LoadKnowledgeFile(ctx context.Context, path string) error {
	count, err := e.vectors.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting index documents: %w", err)
	}
	if count > 0 {
		e.logger.Info("index already populated, skipping ingestion",
			zap.Int("documents", count),
		)
		e.ready.Store(true)
		return nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading knowledge file: %w", err)
	}

	sections := ParseFAQ(string(content))
	texts := make([]string, 0, len(sections))
	for _, section := range sections {
		texts = append(texts, FormatDocument(section))
	}

	if err := e.LoadDocuments(ctx, texts); err != nil {
		return err
	}

	e.logger.Info("loaded knowledge base",
		zap.String("path", path),
		zap.Int("sections", len(sections)),
	)

	return nil
}

// LoadDocuments embeds and indexes the given document texts, then marks
// the engine ready. Document IDs are content-derived, so re-ingesting the
// same texts updates in place rather than duplicating.
func (e *Engine) LoadDocuments(ctx context.Context, texts []string) error {
	docs := make([]vector.Document, 0, len(texts))
	for _, text := range texts {
		embedding, err := e.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embedding document: %w", err)
		}

		sum := md5.Sum([]byte(text))
		docs = append(docs, vector.Document{
			ID:        hex.EncodeToString(sum[:]),
			Text:      text,
			Embedding: embedding,
		})
	}

	if len(docs) > 0 {
		if err := e.vectors.Add(ctx, docs); err != nil {
			return fmt.Errorf("indexing documents: %w", err)
		}
	}

	e.ready.Store(true)
	return nil
}
