package insight

import (
	"context"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NewOllamaLLM", func() {
	It("posts the prompt to /api/chat and returns the message content", func() {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"message": {"role": "assistant", "content": "{\"primary_goal\": \"grow\"}"}, "done": true}`))
		}))
		DeferCleanup(server.Close)

		llm := NewOllamaLLM(server.URL, "llama3.2")
		response, err := llm(context.Background(), "analyze this")
		Expect(err).NotTo(HaveOccurred())
		Expect(gotPath).To(Equal("/api/chat"))
		Expect(response).To(Equal(`{"primary_goal": "grow"}`))
	})

	It("surfaces upstream error payloads", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"error": "model not found"}`))
		}))
		DeferCleanup(server.Close)

		llm := NewOllamaLLM(server.URL, "nope")
		_, err := llm(context.Background(), "analyze this")
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("model not found"))
	})

	It("errors on non-200 responses", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		DeferCleanup(server.Close)

		llm := NewOllamaLLM(server.URL, "llama3.2")
		_, err := llm(context.Background(), "analyze this")
		Expect(err).To(HaveOccurred())
	})
})
