package api

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/coachlens/coachlens/pkg/embeddings"
	"github.com/coachlens/coachlens/pkg/search"
	testutils "github.com/coachlens/coachlens/pkg/utils/test"
	"github.com/coachlens/coachlens/pkg/vector"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Suite")
}

var _ = Describe("Server", func() {
	var (
		server *Server
		store  *testutils.MockStore
	)

	BeforeEach(func() {
		logger := zap.NewNop()
		store = testutils.NewMockStore()
		embedder := testutils.NewMockEmbedder()
		fallback := embeddings.NewFallback(embedder, 3, logger)
		searcher := search.NewSearcher(fallback, store, logger)

		server = NewServer(Config{ListenAddr: ":0"}, searcher, store, logger)

		store.Records = []vector.Record{
			{
				ID:          "session_001",
				Participant: "Alice",
				Embedding:   []float32{1, 0, 0},
				Metadata: vector.Metadata{
					PrimaryGoal:   "find customers",
					BusinessFocus: "SaaS",
					UrgencyLevel:  4,
				},
			},
			{
				ID:          "session_002",
				Participant: "Bob",
				Embedding:   []float32{0, 1, 0},
				Metadata: vector.Metadata{
					PrimaryGoal:   "raise funding",
					BusinessFocus: "fintech",
					UrgencyLevel:  2,
				},
			},
		}
	})

	Describe("GET /ping", func() {
		It("returns pong", func() {
			req, err := http.NewRequest(http.MethodGet, "/ping", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(Equal(`"pong"`))
		})
	})

	Describe("GET /v1/search", func() {
		It("returns 400 when the query parameter is missing", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))

			var errResp ErrorResponse
			Expect(json.NewDecoder(resp.Body).Decode(&errResp)).To(Succeed())
			Expect(errResp.Error).To(ContainSubstring("query parameter is required"))
		})

		It("returns 400 for a non-positive top_k", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=test&top_k=0", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})

		It("returns 400 for an out-of-range min_urgency", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=test&min_urgency=7", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusBadRequest))
		})

		It("returns ranked results", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=customers", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var output search.Output
			Expect(json.NewDecoder(resp.Body).Decode(&output)).To(Succeed())
			Expect(output.Query).To(Equal("customers"))
			Expect(output.Count).To(Equal(2))
			Expect(output.Results[0].Explanation).NotTo(BeEmpty())
		})

		It("applies the min_urgency filter", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=customers&min_urgency=3", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var output search.Output
			Expect(json.NewDecoder(resp.Body).Decode(&output)).To(Succeed())
			Expect(output.Count).To(Equal(1))
			Expect(output.Results[0].Participant).To(Equal("Alice"))
		})

		It("applies the business_focus filter case-insensitively", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?query=growth&business_focus=saas", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())

			var output search.Output
			Expect(json.NewDecoder(resp.Body).Decode(&output)).To(Succeed())
			Expect(output.Count).To(Equal(1))
			Expect(output.Results[0].ID).To(Equal("session_001"))
		})

		It("handles similar_to lookups", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/search?similar_to=Alice", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var output search.Output
			Expect(json.NewDecoder(resp.Body).Decode(&output)).To(Succeed())
			for _, res := range output.Results {
				Expect(res.Participant).NotTo(Equal("Alice"))
			}
		})
	})

	Describe("GET /v1/stats", func() {
		It("returns index statistics", func() {
			req, err := http.NewRequest(http.MethodGet, "/v1/stats", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))

			var stats vector.Stats
			Expect(json.NewDecoder(resp.Body).Decode(&stats)).To(Succeed())
			Expect(stats.Backend).To(Equal("mock"))
			Expect(stats.TotalVectors).To(Equal(2))
			Expect(stats.Dimension).To(Equal(3))
		})
	})

	Describe("DELETE /v1/records/:id", func() {
		It("deletes the record and reports the ID", func() {
			req, err := http.NewRequest(http.MethodDelete, "/v1/records/session_001", nil)
			Expect(err).NotTo(HaveOccurred())

			resp, err := server.app.Test(req)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(fiber.StatusOK))
			Expect(store.Deleted).To(ContainElement("session_001"))
		})
	})
})
