package value_test

import (
	"encoding/json"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/restful/pkg/value"
)

var _ = Describe("codec", func() {
	Describe("Decode", func() {
		It("keeps integral and floating numbers distinct", func() {
			v, err := value.Decode([]byte(`{"count": 3, "ratio": 0.5}`))
			Expect(err).NotTo(HaveOccurred())

			obj, ok := v.AsObject()
			Expect(ok).To(BeTrue())

			count, _ := obj.Get("count")
			_, isInt := count.AsInt()
			Expect(isInt).To(BeTrue())

			ratio, _ := obj.Get("ratio")
			_, isDouble := ratio.AsDouble()
			Expect(isDouble).To(BeTrue())
		})

		It("preserves wire key order on objects", func() {
			v, err := value.Decode([]byte(`{"z": 1, "a": 2, "m": 3}`))
			Expect(err).NotTo(HaveOccurred())

			obj, _ := v.AsObject()
			Expect(obj.Keys()).To(Equal([]string{"z", "a", "m"}))
		})

		It("decodes nested arrays and nulls", func() {
			v, err := value.Decode([]byte(`{"items": [1, null, "x"]}`))
			Expect(err).NotTo(HaveOccurred())

			obj, _ := v.AsObject()
			items, _ := obj.Get("items")
			arr, ok := items.AsArray()
			Expect(ok).To(BeTrue())
			Expect(arr).To(HaveLen(3))
			Expect(arr[1].IsNull()).To(BeTrue())
		})

		It("rejects malformed input", func() {
			_, err := value.Decode([]byte(`{"broken":`))
			Expect(err).To(HaveOccurred())
		})

		It("rejects trailing data after the first value", func() {
			_, err := value.Decode([]byte(`{} {}`))
			Expect(err).To(HaveOccurred())
		})

		It("decodes a top-level array as an array, not an object", func() {
			v, err := value.Decode([]byte(`[1, 2]`))
			Expect(err).NotTo(HaveOccurred())

			_, isObject := v.AsObject()
			Expect(isObject).To(BeFalse())
			_, isArray := v.AsArray()
			Expect(isArray).To(BeTrue())
		})
	})

	Describe("MarshalJSON", func() {
		It("serializes objects with keys in insertion order", func() {
			obj := value.NewObject().
				Set("model", value.String("m1")).
				Set("stream", value.Bool(true)).
				Set("max_tokens", value.Int(128))

			data, err := json.Marshal(obj)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal(`{"model":"m1","stream":true,"max_tokens":128}`))
		})

		It("fails on non-finite doubles", func() {
			obj := value.NewObject().Set("bad", value.Double(math.NaN()))

			_, err := json.Marshal(obj)
			Expect(err).To(HaveOccurred())
		})

		It("round-trips through Decode preserving structure", func() {
			obj := value.NewObject().
				Set("a", value.Array(value.Int(1), value.Double(2.5))).
				Set("b", value.Null())

			data, err := json.Marshal(obj)
			Expect(err).NotTo(HaveOccurred())

			decoded, err := value.Decode(data)
			Expect(err).NotTo(HaveOccurred())
			Expect(decoded.Equal(obj.Value())).To(BeTrue())
		})
	})
})
