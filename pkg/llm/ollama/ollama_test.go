package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/primefold/ragd/pkg/llm"
	"github.com/primefold/ragd/pkg/llm/ollama"
)

func TestOllama(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ollama Chat Suite")
}

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	newClient := func(url string) *ollama.Client {
		client, err := ollama.NewClient(ollama.Config{
			BaseURL: url,
			Model:   "gemma3:4b",
		})
		Expect(err).NotTo(HaveOccurred())
		return client
	}

	It("sends a single non-streaming user message and trims the reply", func() {
		var gotRequest map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.URL.Path).To(Equal("/api/chat"))
			Expect(json.NewDecoder(r.Body).Decode(&gotRequest)).To(Succeed())

			json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]string{"role": "assistant", "content": "  不可以。\n"},
				"done":    true,
			})
		}))
		defer server.Close()

		answer, err := newClient(server.URL).Chat(ctx, "测试可以绑定多个手机号吗？")
		Expect(err).NotTo(HaveOccurred())
		Expect(answer).To(Equal("不可以。"))

		Expect(gotRequest["model"]).To(Equal("gemma3:4b"))
		Expect(gotRequest["stream"]).To(BeFalse())
		messages := gotRequest["messages"].([]any)
		Expect(messages).To(HaveLen(1))
		Expect(messages[0].(map[string]any)["role"]).To(Equal("user"))
	})

	It("reports a missing message as malformed", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"done": true})
		}))
		defer server.Close()

		_, err := newClient(server.URL).Chat(ctx, "hello")
		Expect(err).To(MatchError(llm.ErrMalformed))
	})

	It("reports blank message content as malformed", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]string{"role": "assistant", "content": "   "},
				"done":    true,
			})
		}))
		defer server.Close()

		_, err := newClient(server.URL).Chat(ctx, "hello")
		Expect(err).To(MatchError(llm.ErrMalformed))
	})

	It("reports undecodable bodies as decode failures", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := newClient(server.URL).Chat(ctx, "hello")
		Expect(err).To(MatchError(llm.ErrDecode))
	})

	It("reports unreachable servers as connection failures", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		_, err := newClient(server.URL).Chat(ctx, "hello")
		Expect(err).To(MatchError(llm.ErrConnection))
	})

	It("reports exhausted deadlines as timeouts", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client, err := ollama.NewClient(ollama.Config{
			BaseURL: server.URL,
			Timeout: 20 * time.Millisecond,
		})
		Expect(err).NotTo(HaveOccurred())

		_, err = client.Chat(ctx, "hello")
		Expect(err).To(MatchError(llm.ErrTimeout))
	})

	It("leaves non-200 statuses unclassified", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model not found", http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newClient(server.URL).Chat(ctx, "hello")
		Expect(err).To(HaveOccurred())
		Expect(err).NotTo(MatchError(llm.ErrTimeout))
		Expect(err).NotTo(MatchError(llm.ErrConnection))
		Expect(err).NotTo(MatchError(llm.ErrDecode))
		Expect(err).NotTo(MatchError(llm.ErrMalformed))
		Expect(err.Error()).To(ContainSubstring("status 404"))
	})
})
