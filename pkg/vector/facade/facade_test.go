package facade

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	testutils "github.com/coachlens/coachlens/pkg/utils/test"
	"github.com/coachlens/coachlens/pkg/vector"
	"github.com/coachlens/coachlens/pkg/vector/localstore"
)

func TestFacade(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Facade Suite")
}

var _ = Describe("New", func() {
	var localPath string

	BeforeEach(func() {
		dir, err := os.MkdirTemp("", "facade-test-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)
		localPath = filepath.Join(dir, "embeddings.json")
	})

	It("selects the local backend by default", func() {
		store := New(Config{Local: localstore.Config{Path: localPath}}, zap.NewNop())
		Expect(store.ActiveBackend()).To(Equal("local"))
	})

	It("selects the local backend when remote is requested without an address", func() {
		store := New(Config{UseRemote: true, Local: localstore.Config{Path: localPath}}, zap.NewNop())
		Expect(store.ActiveBackend()).To(Equal("local"))
	})

	It("round-trips records through the local backend", func() {
		store := New(Config{Local: localstore.Config{Path: localPath}}, zap.NewNop())
		ctx := context.Background()

		err := store.Upsert(ctx, []vector.Record{{
			ID:          "s1",
			Participant: "Alice",
			Embedding:   []float32{1, 0},
			Metadata:    vector.Metadata{UrgencyLevel: 3},
		}})
		Expect(err).NotTo(HaveOccurred())

		results, err := store.Search(ctx, []float32{1, 0}, 5, vector.Filter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(1))
		Expect(results[0].ID).To(Equal("s1"))

		stats, err := store.Stats(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(stats.Backend).To(Equal("local"))
	})
})

var _ = Describe("Search degradation", func() {
	It("converts a backend failure into empty results", func() {
		backend := testutils.NewMockStore()
		backend.FailSearch = true
		store := &Store{backend: backend, name: "mock", logger: zap.NewNop()}

		results, err := store.Search(context.Background(), []float32{1, 0}, 5, vector.Filter{})
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(BeEmpty())
	})
})
