package value_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/restful/pkg/value"
)

var _ = Describe("Resolve", func() {
	It("walks nested object keys", func() {
		root := value.NewObject().Set("a",
			value.NewObject().Set("b", value.Int(1)).Value(),
		)

		v, ok := value.Resolve(root, "a.b")
		Expect(ok).To(BeTrue())
		Expect(v.Equal(value.Int(1))).To(BeTrue())
	})

	It("indexes arrays with integer segments", func() {
		root := value.NewObject().Set("items",
			value.Array(value.String("x"), value.String("y")),
		)

		v, ok := value.Resolve(root, "items.1")
		Expect(ok).To(BeTrue())
		Expect(v.Equal(value.String("y"))).To(BeTrue())
	})

	It("misses on out-of-range indexes", func() {
		root := value.NewObject().Set("items", value.Array(value.String("x")))

		_, ok := value.Resolve(root, "items.5")
		Expect(ok).To(BeFalse())
	})

	It("rejects negative indexes instead of wrapping", func() {
		root := value.NewObject().Set("items", value.Array(value.String("x")))

		_, ok := value.Resolve(root, "items.-1")
		Expect(ok).To(BeFalse())
	})

	It("misses on an empty path", func() {
		_, ok := value.Resolve(value.NewObject(), "")
		Expect(ok).To(BeFalse())
	})

	It("returns a present null, reserving a miss for unresolved paths", func() {
		root := value.NewObject().Set("a", value.Null())

		v, ok := value.Resolve(root, "a")
		Expect(ok).To(BeTrue())
		Expect(v.IsNull()).To(BeTrue())
	})

	It("misses when an integer segment hits a non-array", func() {
		root := value.NewObject().Set("a",
			value.NewObject().Set("0", value.Int(1)).Value(),
		)

		// "0" parses as an index, so the object under "a" cannot satisfy it
		// even though it has a literal "0" key.
		_, ok := value.Resolve(root, "a.0")
		Expect(ok).To(BeFalse())
	})

	It("misses when a key segment hits a non-object", func() {
		root := value.NewObject().Set("a", value.Array(value.Int(1)))

		_, ok := value.Resolve(root, "a.first")
		Expect(ok).To(BeFalse())
	})

	It("misses on absent keys at any depth", func() {
		root := value.NewObject().Set("a",
			value.NewObject().Set("b", value.Int(1)).Value(),
		)

		_, ok := value.Resolve(root, "a.c")
		Expect(ok).To(BeFalse())
		_, ok = value.Resolve(root, "missing.b")
		Expect(ok).To(BeFalse())
	})

	It("is deterministic across repeated calls", func() {
		root := value.NewObject().Set("a",
			value.NewObject().Set("b", value.Array(value.Int(7))).Value(),
		)

		for range 3 {
			v, ok := value.Resolve(root, "a.b.0")
			Expect(ok).To(BeTrue())
			Expect(v.Equal(value.Int(7))).To(BeTrue())
		}
	})
})
