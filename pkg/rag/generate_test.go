package rag_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/llm"
	"github.com/primefold/ragd/pkg/rag"
	testutils "github.com/primefold/ragd/pkg/utils/test"
)

var _ = Describe("Generate", func() {
	var (
		ctx    context.Context
		chat   *testutils.MockChatClient
		engine *rag.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		chat = testutils.NewMockChatClient("")
		engine = rag.NewEngine(
			rag.Config{},
			testutils.NewMockEmbedder(),
			testutils.NewMockVectorDriver(),
			chat,
			testutils.NewMockCache(),
			zap.NewNop(),
		)
	})

	It("returns the model reply trimmed", func() {
		chat.Response = "  不可以。  "

		answer := engine.Generate(ctx, "可以绑定多个手机号吗？", []string{"问题：可以绑定多个手机号吗？\n答案：不可以。"})
		Expect(answer).To(Equal("不可以。"))
	})

	It("embeds the context and query into the prompt", func() {
		chat.Response = "ok"

		engine.Generate(ctx, "用户的问题", []string{"资料一", "资料二"})

		Expect(chat.Prompts).To(HaveLen(1))
		prompt := chat.Prompts[0]
		Expect(prompt).To(ContainSubstring("资料一\n\n资料二"))
		Expect(prompt).To(ContainSubstring("用户问题：用户的问题"))
		Expect(prompt).To(ContainSubstring("专业客服助手"))
	})

	It("builds a prompt with an empty reference block when no context was found", func() {
		chat.Response = "抱歉，我无法回答该问题"

		answer := engine.Generate(ctx, "无关问题", nil)
		Expect(answer).To(Equal("抱歉，我无法回答该问题"))
		Expect(chat.Prompts[0]).To(ContainSubstring("参考资料：\n\n"))
	})

	DescribeTable("degraded answers",
		func(chatErr error, want string) {
			chat.Err = chatErr

			answer := engine.Generate(ctx, "问题", []string{"资料"})
			Expect(answer).To(Equal(want))
		},
		Entry("malformed reply",
			llm.ErrMalformed,
			"抱歉，模型返回格式异常，无法生成答案。"),
		Entry("timeout",
			fmt.Errorf("%w: context deadline exceeded", llm.ErrTimeout),
			"抱歉，模型响应超时，请稍后再试。"),
		Entry("undecodable body",
			fmt.Errorf("%w: unexpected end of JSON input", llm.ErrDecode),
			"抱歉，模型返回数据格式异常。"),
	)

	It("embeds the cause in the connection-failure answer", func() {
		chat.Err = fmt.Errorf("%w: dial tcp: connection refused", llm.ErrConnection)

		answer := engine.Generate(ctx, "问题", []string{"资料"})
		Expect(answer).To(HavePrefix("抱歉，连接模型服务失败："))
		Expect(answer).To(ContainSubstring("connection refused"))
	})

	It("embeds the cause in the unknown-error answer", func() {
		chat.Err = errors.New("ollama status 500: internal error")

		answer := engine.Generate(ctx, "问题", []string{"资料"})
		Expect(answer).To(HavePrefix("抱歉，生成答案时发生未知错误："))
		Expect(answer).To(ContainSubstring("status 500"))
	})
})
