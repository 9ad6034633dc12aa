package rag_test

import (
	"context"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/rag"
	testutils "github.com/primefold/ragd/pkg/utils/test"
)

var _ = Describe("ParseFAQ", func() {
	It("splits sections on second-level headings", func() {
		sections := rag.ParseFAQ("# 常见问题\n\n## 如何重置密码？\n在登录页点击忘记密码。\n\n## 可以绑定多个手机号吗？\n不可以。\n")
		Expect(sections).To(HaveLen(2))

		Expect(sections[0].Question).To(Equal("如何重置密码？"))
		Expect(sections[0].Answer).To(Equal("在登录页点击忘记密码。"))

		Expect(sections[1].Question).To(Equal("可以绑定多个手机号吗？"))
		Expect(sections[1].Answer).To(Equal("不可以。"))
	})

	It("keeps multi-line answers intact", func() {
		sections := rag.ParseFAQ("## 如何联系客服？\n工作日 9:00-18:00。\n节假日请留言。\n")
		Expect(sections).To(HaveLen(1))
		Expect(sections[0].Answer).To(Equal("工作日 9:00-18:00。\n节假日请留言。"))
	})

	It("ignores content before the first heading", func() {
		sections := rag.ParseFAQ("前言文字\n\n## 问题一\n答案一\n")
		Expect(sections).To(HaveLen(1))
		Expect(sections[0].Question).To(Equal("问题一"))
	})

	It("returns nothing for content without headings", func() {
		Expect(rag.ParseFAQ("只有普通段落。")).To(BeEmpty())
		Expect(rag.ParseFAQ("")).To(BeEmpty())
	})
})

var _ = Describe("FormatDocument", func() {
	It("renders the stored question/answer layout", func() {
		doc := rag.FormatDocument(rag.Section{Question: "如何重置密码？", Answer: "在登录页点击忘记密码。"})
		Expect(doc).To(Equal("问题：如何重置密码？\n答案：在登录页点击忘记密码。"))
	})
})

var _ = Describe("LoadKnowledgeFile", func() {
	var (
		ctx      context.Context
		embedder *testutils.MockEmbedder
		vectors  *testutils.MockVectorDriver
		engine   *rag.Engine
		faqPath  string
	)

	BeforeEach(func() {
		ctx = context.Background()
		embedder = testutils.NewMockEmbedder()
		vectors = testutils.NewMockVectorDriver()
		engine = rag.NewEngine(
			rag.Config{},
			embedder,
			vectors,
			testutils.NewMockChatClient("ok"),
			testutils.NewMockCache(),
			zap.NewNop(),
		)

		faqPath = filepath.Join(GinkgoT().TempDir(), "faq.md")
		content := "## 如何重置密码？\n在登录页点击忘记密码。\n\n## 可以绑定多个手机号吗？\n不可以。\n"
		Expect(os.WriteFile(faqPath, []byte(content), 0o644)).To(Succeed())
	})

	It("embeds and indexes every section, then marks the engine ready", func() {
		Expect(engine.Ready()).To(BeFalse())

		Expect(engine.LoadKnowledgeFile(ctx, faqPath)).To(Succeed())

		Expect(engine.Ready()).To(BeTrue())
		Expect(vectors.Documents).To(HaveLen(2))
		Expect(embedder.Calls()).To(Equal(2))
		Expect(vectors.Documents[0].Text).To(ContainSubstring("问题：如何重置密码？"))
	})

	It("derives document IDs from content", func() {
		Expect(engine.LoadKnowledgeFile(ctx, faqPath)).To(Succeed())

		Expect(vectors.Documents[0].ID).To(HaveLen(32))
		Expect(vectors.Documents[0].ID).NotTo(Equal(vectors.Documents[1].ID))
	})

	It("skips ingestion when the index is already populated", func() {
		Expect(engine.LoadDocuments(ctx, []string{"existing document"})).To(Succeed())
		indexed := len(vectors.Documents)

		Expect(engine.LoadKnowledgeFile(ctx, faqPath)).To(Succeed())

		Expect(vectors.Documents).To(HaveLen(indexed))
		Expect(engine.Ready()).To(BeTrue())
	})

	It("leaves the engine not-ready when the file is missing", func() {
		err := engine.LoadKnowledgeFile(ctx, filepath.Join(GinkgoT().TempDir(), "missing.md"))
		Expect(err).To(HaveOccurred())
		Expect(engine.Ready()).To(BeFalse())
	})

	It("leaves the engine not-ready when embedding fails", func() {
		embedder.FailAll = true

		err := engine.LoadKnowledgeFile(ctx, faqPath)
		Expect(err).To(HaveOccurred())
		Expect(engine.Ready()).To(BeFalse())
	})

	It("leaves the engine not-ready when the index is unreachable", func() {
		vectors.FailCount = true

		err := engine.LoadKnowledgeFile(ctx, faqPath)
		Expect(err).To(HaveOccurred())
		Expect(engine.Ready()).To(BeFalse())
	})
})
