package embeddings_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/embeddings"
	testutils "github.com/coachlens/coachlens/pkg/utils/test"
)

func TestEmbeddings(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Embeddings Suite")
}

var _ = Describe("Fallback", func() {
	var (
		inner    *testutils.MockEmbedder
		fallback *embeddings.Fallback
		ctx      context.Context
	)

	BeforeEach(func() {
		inner = testutils.NewMockEmbedder()
		fallback = embeddings.NewFallback(inner, 4, zap.NewNop())
		ctx = context.Background()
	})

	Describe("EmbedOrZero", func() {
		It("passes through the inner embedding", func() {
			inner.Embeddings["hello"] = []float32{1, 2, 3, 4}

			embedding, degraded := fallback.EmbedOrZero(ctx, "hello")
			Expect(degraded).To(BeFalse())
			Expect(embedding).To(Equal([]float32{1, 2, 3, 4}))
		})

		It("returns a zero vector when the inner embedder fails", func() {
			inner.FailAll = true

			embedding, degraded := fallback.EmbedOrZero(ctx, "hello")
			Expect(degraded).To(BeTrue())
			Expect(embedding).To(Equal(make([]float32, 4)))
		})
	})

	Describe("Embed", func() {
		It("never returns an error", func() {
			inner.FailAll = true

			embedding, err := fallback.Embed(ctx, "hello")
			Expect(err).NotTo(HaveOccurred())
			Expect(embedding).To(HaveLen(4))
		})
	})
})
