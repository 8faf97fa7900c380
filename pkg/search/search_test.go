package search_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/embeddings"
	"github.com/coachlens/coachlens/pkg/search"
	testutils "github.com/coachlens/coachlens/pkg/utils/test"
	"github.com/coachlens/coachlens/pkg/vector"
)

func TestSearch(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Search Suite")
}

func sessionRecord(id, participant, goal, blocker, focus, mindset string, urgency int) vector.Record {
	return vector.Record{
		ID:          id,
		Participant: participant,
		Embedding:   []float32{0.1, 0.2, 0.3},
		Metadata: vector.Metadata{
			PrimaryGoal:    goal,
			MainBlocker:    blocker,
			BusinessFocus:  focus,
			MindsetPattern: mindset,
			UrgencyLevel:   urgency,
		},
	}
}

var _ = Describe("Searcher", func() {
	var (
		embedder *testutils.MockEmbedder
		store    *testutils.MockStore
		searcher *search.Searcher
		ctx      context.Context
	)

	BeforeEach(func() {
		embedder = testutils.NewMockEmbedder()
		store = testutils.NewMockStore()
		fallback := embeddings.NewFallback(embedder, 3, zap.NewNop())
		searcher = search.NewSearcher(fallback, store, zap.NewNop())
		ctx = context.Background()
	})

	Describe("Search", func() {
		BeforeEach(func() {
			err := store.Upsert(ctx, []vector.Record{
				sessionRecord("s1", "Alice", "find more customers", "no marketing budget", "SaaS", "self-doubt", 4),
				sessionRecord("s2", "Bob", "raise a seed round", "no network", "fintech", "imposter syndrome", 2),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns results with explanations attached", func() {
			out, err := searcher.Search(ctx, "customers", 5, vector.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(2))
			Expect(out.Results[0].Explanation).NotTo(BeEmpty())
			Expect(out.Degraded).To(BeFalse())
		})

		It("defaults topK when non-positive", func() {
			out, err := searcher.Search(ctx, "customers", 0, vector.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(2))
		})

		It("applies the filter", func() {
			out, err := searcher.Search(ctx, "customers", 5, vector.Filter{MinUrgency: 3})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(1))
			Expect(out.Results[0].Participant).To(Equal("Alice"))
		})

		It("sets Degraded when the embedder is unavailable", func() {
			embedder.FailAll = true

			out, err := searcher.Search(ctx, "customers", 5, vector.Filter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Degraded).To(BeTrue())
			Expect(out.Count).To(Equal(2))
		})
	})

	Describe("SearchByBusinessTypes", func() {
		BeforeEach(func() {
			err := store.Upsert(ctx, []vector.Record{
				sessionRecord("s1", "Alice", "grow", "customers", "SaaS", "doubt", 3),
				sessionRecord("s2", "Bob", "grow", "customers", "e-commerce", "doubt", 3),
				sessionRecord("s3", "Carol", "grow", "customers", "consulting", "doubt", 3),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("unions per-type result pools", func() {
			out, err := searcher.SearchByBusinessTypes(ctx, "growth", []string{"saas", "E-Commerce"}, 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(2))

			ids := []string{out.Results[0].ID, out.Results[1].ID}
			Expect(ids).To(ConsistOf("s1", "s2"))
		})

		It("truncates the merged pool to topK", func() {
			out, err := searcher.SearchByBusinessTypes(ctx, "growth", []string{"saas", "e-commerce", "consulting"}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(2))
		})
	})

	Describe("SimilarTo", func() {
		BeforeEach(func() {
			err := store.Upsert(ctx, []vector.Record{
				sessionRecord("s1", "Alice", "find more customers", "no marketing budget", "SaaS", "doubt", 3),
				sessionRecord("s2", "Bob", "find customers too", "budget issues", "SaaS", "doubt", 3),
				sessionRecord("s3", "Carol", "hire engineers", "salary costs", "fintech", "doubt", 3),
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("excludes the named participant from the results", func() {
			out, err := searcher.SimilarTo(ctx, "Alice", 5)
			Expect(err).NotTo(HaveOccurred())
			for _, res := range out.Results {
				Expect(res.Participant).NotTo(Equal("Alice"))
			}
			Expect(out.Count).To(Equal(2))
		})

		It("matches the participant case-insensitively", func() {
			out, err := searcher.SimilarTo(ctx, "alice", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(2))
		})

		It("returns an empty output for an unknown participant", func() {
			out, err := searcher.SimilarTo(ctx, "Nobody", 5)
			Expect(err).NotTo(HaveOccurred())
			Expect(out.Count).To(Equal(0))
			Expect(out.Results).To(BeEmpty())
		})
	})
})

var _ = Describe("Explain", func() {
	result := func(goal, blocker, mindset, focus string) vector.Result {
		return vector.Result{Metadata: vector.Metadata{
			PrimaryGoal:    goal,
			MainBlocker:    blocker,
			MindsetPattern: mindset,
			BusinessFocus:  focus,
		}}
	}

	It("reports a similar goal", func() {
		res := result("find more customers", "", "", "")
		Expect(search.Explain("customers", res)).To(Equal("Similar goal"))
	})

	It("reports a similar challenge", func() {
		res := result("", "no marketing budget", "", "")
		Expect(search.Explain("budget", res)).To(Equal("Similar challenge"))
	})

	It("reports a similar mindset", func() {
		res := result("", "", "imposter syndrome", "")
		Expect(search.Explain("imposter", res)).To(Equal("Similar mindset"))
	})

	It("reports a matching business type as a query substring", func() {
		res := result("", "", "", "SaaS")
		Expect(search.Explain("growing a saas company", res)).To(Equal("Same business type"))
	})

	It("joins multiple reasons with a plus", func() {
		res := result("find customers", "losing customers to churn", "", "")
		Expect(search.Explain("customers", res)).To(Equal("Similar goal + Similar challenge"))
	})

	It("falls back to semantic similarity", func() {
		res := result("scale the team", "hiring", "overwhelm", "fintech")
		Expect(search.Explain("unrelated words entirely", res)).To(Equal("Semantic similarity"))
	})

	It("never reports a business match for an empty focus", func() {
		res := result("", "", "", "")
		Expect(search.Explain("any query at all", res)).To(Equal("Semantic similarity"))
	})

	It("is case-insensitive", func() {
		res := result("Find More Customers", "", "", "")
		Expect(search.Explain("CUSTOMERS", res)).To(Equal("Similar goal"))
	})
})
