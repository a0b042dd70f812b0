// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package skeleton

import (
	"fmt"
	"testing"
)

func BenchmarkNew(b *testing.B) {
	for _, x := range [...][2]int{
		{15, 7},
		{255, 127},
		{65535, 32767},
	} {
		in := dummyNodes(x[0], x[1])
		b.Run(fmt.Sprintf("{len=%d,dep=%d}", x[0], x[1]), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := New(in); err != nil {
					b.Fatalf("New failed:\n%#v", err)
				}
			}
		})
	}
}

func BenchmarkSortReversed(b *testing.B) {
	for _, x := range [...]int{0, 15, 255, 8192, 65534} {
		in := dummyNodesRev(x)
		b.Run(fmt.Sprintf("{depth=%d}", x), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, _, err := Sort(in); err != nil {
					b.Fatalf("Sort failed:\n%#v", err)
				}
			}
		})
	}
}
