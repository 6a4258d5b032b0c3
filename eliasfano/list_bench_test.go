package eliasfano

import (
	"math/rand"
	"testing"

	"github.com/arloliu/intlist/format"
)

func benchValues(n int) []uint64 {
	rng := rand.New(rand.NewSource(1))

	return ascendingValues(rng, n, 128)
}

func BenchmarkEncode(b *testing.B) {
	values := benchValues(10_000)
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := Encode(values); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGet(b *testing.B) {
	values := benchValues(10_000)
	list, err := Encode(values)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = list.Get(i % len(values))
	}
}

func BenchmarkValues(b *testing.B) {
	values := benchValues(10_000)
	list, err := Encode(values)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		sum := uint64(0)
		for v := range list.Values(0) {
			sum += v
		}
		_ = sum
	}
}

func BenchmarkSerialize(b *testing.B) {
	values := benchValues(10_000)
	list, err := Encode(values)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := list.Serialize(format.CompressionNone); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDeserialize(b *testing.B) {
	values := benchValues(10_000)
	list, err := Encode(values)
	if err != nil {
		b.Fatal(err)
	}
	data, err := list.Serialize(format.CompressionNone)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := Deserialize(data); err != nil {
			b.Fatal(err)
		}
	}
}
