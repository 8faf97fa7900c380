package ollama_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/coachlens/coachlens/pkg/embeddings/ollama"
	"github.com/coachlens/coachlens/pkg/vector"
)

func TestOllama(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ollama Embedder Suite")
}

var _ = Describe("Embedder", func() {
	It("applies defaults for an empty config", func() {
		embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{})
		Expect(err).NotTo(HaveOccurred())
		Expect(embedder).NotTo(BeNil())
	})

	It("posts to /api/embed and returns the first embedding", func() {
		var gotPath string
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			Expect(json.NewDecoder(r.Body).Decode(&gotBody)).To(Succeed())
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"embeddings": [[0.1, 0.2, 0.3]]}`))
		}))
		DeferCleanup(server.Close)

		embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{
			BaseURL: server.URL,
			Model:   "nomic-embed-text",
		})
		Expect(err).NotTo(HaveOccurred())

		embedding, err := embedder.Embed(context.Background(), "hello")
		Expect(err).NotTo(HaveOccurred())
		Expect(embedding).To(Equal([]float32{0.1, 0.2, 0.3}))
		Expect(gotPath).To(Equal("/api/embed"))
		Expect(gotBody["model"]).To(Equal("nomic-embed-text"))
		Expect(gotBody["input"]).To(Equal("hello"))
	})

	It("wraps upstream errors with ErrEmbedding", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		DeferCleanup(server.Close)

		embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{BaseURL: server.URL})
		Expect(err).NotTo(HaveOccurred())

		_, err = embedder.Embed(context.Background(), "hello")
		Expect(err).To(MatchError(vector.ErrEmbedding))
	})

	It("errors when no embeddings are returned", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"embeddings": []}`))
		}))
		DeferCleanup(server.Close)

		embedder, err := ollama.NewEmbedder(ollama.EmbedderConfig{BaseURL: server.URL})
		Expect(err).NotTo(HaveOccurred())

		_, err = embedder.Embed(context.Background(), "hello")
		Expect(err).To(MatchError(vector.ErrEmbedding))
	})
})
