package nop_test

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/primefold/ragd/pkg/cache/nop"
)

func TestNop(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Nop Cache Suite")
}

var _ = Describe("Store", func() {
	var store *nop.Store

	BeforeEach(func() {
		store = nop.NewStore()
	})

	It("always misses", func() {
		value, found, err := store.Get(context.Background(), "rag:abc")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
		Expect(value).To(BeEmpty())
	})

	It("accepts writes without storing them", func() {
		err := store.Set(context.Background(), "rag:abc", "value", time.Hour)
		Expect(err).NotTo(HaveOccurred())

		_, found, err := store.Get(context.Background(), "rag:abc")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeFalse())
	})

	It("closes without error", func() {
		Expect(store.Close()).To(Succeed())
	})
})
