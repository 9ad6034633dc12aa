package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/llm"
)

// Degraded answers returned when generation fails. End users always get a
// textual response; no generation error ever crosses this boundary.
const (
	answerMalformed  = "抱歉，模型返回格式异常，无法生成答案。"
	answerTimeout    = "抱歉，模型响应超时，请稍后再试。"
	answerBadData    = "抱歉，模型返回数据格式异常。"
	answerConnectFmt = "抱歉，连接模型服务失败：%v"
	answerUnknownFmt = "抱歉，生成答案时发生未知错误：%v"
)

// Generate composes the instruction prompt from the query and retrieved
// context and asks the chat client for an answer. It never fails: every
// error from the client is mapped onto a fixed degraded-answer string.
func (e *Engine) Generate(ctx context.Context, query string, contexts []string) string {
	prompt := buildPrompt(query, contexts)

	content, err := e.chat.Chat(ctx, prompt)
	if err != nil {
		e.logger.Warn("generation degraded",
			zap.Error(err),
		)
		return degradedAnswer(err)
	}

	return strings.TrimSpace(content)
}

// degradedAnswer maps a classified chat error onto its user-facing text.
// The mapping is exhaustive over the llm sentinels; anything unclassified
// falls through to the unknown-error message with the cause embedded.
func degradedAnswer(err error) string {
	switch {
	case errors.Is(err, llm.ErrMalformed):
		return answerMalformed
	case errors.Is(err, llm.ErrTimeout):
		return answerTimeout
	case errors.Is(err, llm.ErrDecode):
		return answerBadData
	case errors.Is(err, llm.ErrConnection):
		return fmt.Sprintf(answerConnectFmt, err)
	default:
		return fmt.Sprintf(answerUnknownFmt, err)
	}
}
