package rag_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/primefold/ragd/pkg/cache"
	"github.com/primefold/ragd/pkg/llm"
	"github.com/primefold/ragd/pkg/rag"
	testutils "github.com/primefold/ragd/pkg/utils/test"
	"github.com/primefold/ragd/pkg/vector"
)

func TestRag(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RAG Engine Suite")
}

var _ = Describe("Engine", func() {
	var (
		ctx      context.Context
		embedder *testutils.MockEmbedder
		vectors  *testutils.MockVectorDriver
		chat     *testutils.MockChatClient
		store    *testutils.MockCache
		engine   *rag.Engine
	)

	BeforeEach(func() {
		ctx = context.Background()
		embedder = testutils.NewMockEmbedder()
		vectors = testutils.NewMockVectorDriver()
		chat = testutils.NewMockChatClient("不可以，一个账号只能绑定一个手机号。")
		store = testutils.NewMockCache()

		vectors.Results = []vector.QueryResult{
			{Document: vector.Document{ID: "d1", Text: "问题：可以绑定多个手机号吗？\n答案：不可以。"}, Score: 0.92},
			{Document: vector.Document{ID: "d2", Text: "问题：如何修改手机号？\n答案：在设置页操作。"}, Score: 0.71},
		}

		engine = rag.NewEngine(rag.Config{}, embedder, vectors, chat, store, zap.NewNop())
	})

	// markReady runs ingestion over an empty text set so the engine
	// starts serving without touching the mock counters meaningfully.
	markReady := func() {
		Expect(engine.LoadDocuments(ctx, nil)).To(Succeed())
	}

	Describe("Ask", func() {
		It("refuses to answer before ingestion completes", func() {
			_, err := engine.Ask(ctx, "测试可以绑定多个手机号吗？")
			Expect(err).To(MatchError(rag.ErrNotReady))
			Expect(embedder.Calls()).To(BeZero())
			Expect(chat.Calls()).To(BeZero())
		})

		It("generates an answer grounded in retrieved context", func() {
			markReady()

			answer, err := engine.Ask(ctx, "测试可以绑定多个手机号吗？")
			Expect(err).NotTo(HaveOccurred())
			Expect(answer.Answer).To(ContainSubstring("不可以"))

			Expect(chat.Prompts).To(HaveLen(1))
			Expect(chat.Prompts[0]).To(ContainSubstring("问题：可以绑定多个手机号吗？"))
			Expect(chat.Prompts[0]).To(ContainSubstring("测试可以绑定多个手机号吗？"))
		})

		It("serves the second identical query from cache without re-running the pipeline", func() {
			markReady()
			query := "测试可以绑定多个手机号吗？"

			first, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())

			embedsAfterFirst := embedder.Calls()
			chatsAfterFirst := chat.Calls()

			second, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))

			Expect(embedder.Calls()).To(Equal(embedsAfterFirst))
			Expect(chat.Calls()).To(Equal(chatsAfterFirst))
		})

		It("stores the answer under the content-addressed key with the JSON envelope", func() {
			markReady()
			query := "测试可以绑定多个手机号吗？"

			answer, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())

			stored, ok := store.Entries[cache.Key(query)]
			Expect(ok).To(BeTrue())

			var cached rag.Answer
			Expect(json.Unmarshal([]byte(stored), &cached)).To(Succeed())
			Expect(cached).To(Equal(answer))
		})

		It("treats cache read failures as misses", func() {
			markReady()
			store.FailGet = true
			query := "测试可以绑定多个手机号吗？"

			first, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())

			// Every Ask regenerates because the read path never hits,
			// but writes still land and answers stay correct.
			second, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))

			Expect(chat.Calls()).To(Equal(2))
			Expect(store.Sets()).To(Equal(2))
		})

		It("treats corrupt cache entries as misses", func() {
			markReady()
			query := "测试可以绑定多个手机号吗？"
			store.Entries[cache.Key(query)] = "{not valid json"

			answer, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())
			Expect(answer.Answer).To(ContainSubstring("不可以"))
			Expect(chat.Calls()).To(Equal(1))
		})

		It("answers normally when cache writes fail", func() {
			markReady()
			store.FailSet = true

			answer, err := engine.Ask(ctx, "测试可以绑定多个手机号吗？")
			Expect(err).NotTo(HaveOccurred())
			Expect(answer.Answer).To(ContainSubstring("不可以"))
		})

		It("fails hard when embedding is unavailable", func() {
			markReady()
			embedder.FailAll = true

			_, err := engine.Ask(ctx, "测试可以绑定多个手机号吗？")
			Expect(err).To(MatchError(rag.ErrRetrievalUnavailable))
			Expect(chat.Calls()).To(BeZero())
			Expect(store.Sets()).To(BeZero())
		})

		It("fails hard when the vector index is unavailable", func() {
			markReady()
			vectors.FailQuery = true

			_, err := engine.Ask(ctx, "测试可以绑定多个手机号吗？")
			Expect(err).To(MatchError(rag.ErrRetrievalUnavailable))
			Expect(chat.Calls()).To(BeZero())
		})

		It("still generates when retrieval finds nothing", func() {
			markReady()
			vectors.Results = nil
			chat.Response = "抱歉，我无法回答该问题"

			answer, err := engine.Ask(ctx, "完全无关的问题")
			Expect(err).NotTo(HaveOccurred())
			Expect(answer.Answer).To(Equal("抱歉，我无法回答该问题"))
			Expect(chat.Calls()).To(Equal(1))
		})

		It("produces different cache keys for byte-different queries", func() {
			markReady()

			_, err := engine.Ask(ctx, "问题A")
			Expect(err).NotTo(HaveOccurred())
			_, err = engine.Ask(ctx, "问题A ")
			Expect(err).NotTo(HaveOccurred())

			Expect(store.Entries).To(HaveLen(2))
			Expect(chat.Calls()).To(Equal(2))
		})
	})

	Describe("Retrieve", func() {
		It("returns context texts in similarity order", func() {
			markReady()

			contexts, err := engine.Retrieve(ctx, "手机号", 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(contexts).To(HaveLen(2))
			Expect(contexts[0]).To(ContainSubstring("可以绑定多个手机号吗"))
			Expect(contexts[1]).To(ContainSubstring("如何修改手机号"))
		})

		It("respects the requested topK", func() {
			markReady()

			contexts, err := engine.Retrieve(ctx, "手机号", 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(contexts).To(HaveLen(1))
		})

		It("wraps embedder failures", func() {
			embedder.FailAll = true

			_, err := engine.Retrieve(ctx, "手机号", 2)
			Expect(err).To(MatchError(rag.ErrRetrievalUnavailable))
		})
	})

	Describe("Generate", func() {
		It("passes the degraded answer through the cache like any other", func() {
			markReady()
			chat.Err = llm.ErrTimeout
			query := "测试可以绑定多个手机号吗？"

			first, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())
			Expect(first.Answer).To(Equal("抱歉，模型响应超时，请稍后再试。"))

			// The degraded answer was cached; recovery of the model does
			// not change the reply until the entry expires.
			chat.Err = nil
			second, err := engine.Ask(ctx, query)
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
			Expect(chat.Calls()).To(Equal(1))
		})
	})
})

var _ = Describe("NewEngine", func() {
	It("applies topK and TTL defaults", func() {
		embedder := testutils.NewMockEmbedder()
		vectors := testutils.NewMockVectorDriver()
		for i := 0; i < 5; i++ {
			vectors.Results = append(vectors.Results, vector.QueryResult{
				Document: vector.Document{ID: fmt.Sprintf("d%d", i), Text: fmt.Sprintf("text %d", i)},
				Score:    1 - float32(i)/10,
			})
		}
		engine := rag.NewEngine(rag.Config{}, embedder, vectors, testutils.NewMockChatClient("ok"), testutils.NewMockCache(), zap.NewNop())
		Expect(engine.LoadDocuments(context.Background(), nil)).To(Succeed())

		_, err := engine.Ask(context.Background(), "anything")
		Expect(err).NotTo(HaveOccurred())

		// Default topK caps context at two documents.
		contexts, err := engine.Retrieve(context.Background(), "anything", rag.DefaultTopK)
		Expect(err).NotTo(HaveOccurred())
		Expect(contexts).To(HaveLen(2))
	})
})
