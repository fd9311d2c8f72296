package value_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/restful/pkg/value"
)

var _ = Describe("Value", func() {
	Describe("accessors", func() {
		It("returns the payload only for the matching variant", func() {
			s, ok := value.String("hello").AsString()
			Expect(ok).To(BeTrue())
			Expect(s).To(Equal("hello"))

			i, ok := value.Int(42).AsInt()
			Expect(ok).To(BeTrue())
			Expect(i).To(Equal(int64(42)))

			d, ok := value.Double(1.5).AsDouble()
			Expect(ok).To(BeTrue())
			Expect(d).To(Equal(1.5))
		})

		It("does not coerce across variants", func() {
			_, ok := value.String("42").AsInt()
			Expect(ok).To(BeFalse())

			_, ok = value.Int(42).AsString()
			Expect(ok).To(BeFalse())

			_, ok = value.Int(1).AsDouble()
			Expect(ok).To(BeFalse())

			_, ok = value.Double(1.0).AsInt()
			Expect(ok).To(BeFalse())
		})

		It("treats the zero Value as null", func() {
			var v value.Value
			Expect(v.IsNull()).To(BeTrue())
			Expect(v.Kind()).To(Equal(value.KindNull))
		})
	})

	Describe("Equal", func() {
		It("compares arrays elementwise", func() {
			a := value.Array(value.Int(1), value.String("x"))
			b := value.Array(value.Int(1), value.String("x"))
			c := value.Array(value.Int(1), value.String("y"))

			Expect(a.Equal(b)).To(BeTrue())
			Expect(a.Equal(c)).To(BeFalse())
		})

		It("ignores object key insertion order", func() {
			a := value.NewObject().Set("x", value.Int(1)).Set("y", value.Int(2))
			b := value.NewObject().Set("y", value.Int(2)).Set("x", value.Int(1))

			Expect(a.Value().Equal(b.Value())).To(BeTrue())
		})

		It("never equates values of different kinds", func() {
			Expect(value.Int(1).Equal(value.Double(1))).To(BeFalse())
			Expect(value.Null().Equal(value.Bool(false))).To(BeFalse())
		})
	})

	Describe("Object", func() {
		It("keeps insertion order and replaces in place on re-set", func() {
			obj := value.NewObject().
				Set("a", value.Int(1)).
				Set("b", value.Int(2)).
				Set("a", value.Int(3))

			Expect(obj.Keys()).To(Equal([]string{"a", "b"}))
			Expect(obj.Len()).To(Equal(2))

			v, ok := obj.Get("a")
			Expect(ok).To(BeTrue())
			Expect(v.Equal(value.Int(3))).To(BeTrue())
		})

		It("is safe to read through a nil receiver", func() {
			var obj *value.Object
			_, ok := obj.Get("missing")
			Expect(ok).To(BeFalse())
			Expect(obj.Len()).To(Equal(0))
		})
	})
})
