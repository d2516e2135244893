// rand/rand_test.go
// Copyright(c) 2026 apron contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package rand

import (
	"testing"
)

func TestPermutationElement(t *testing.T) {
	for _, n := range []int{8, 31, 10523} {
		for _, h := range []uint32{0, 0xff, 0xfeedface} {
			m := make(map[int]int)

			for i := 0; i < n; i++ {
				perm := PermutationElement(i, n, h)
				if _, ok := m[perm]; ok {
					t.Errorf("%d: appeared multiple times", perm)
				}
				m[perm] = i
			}
		}
	}
}

func TestSeedReproducible(t *testing.T) {
	a, b := MakeWithSeed(12345), MakeWithSeed(12345)
	for i := 0; i < 100; i++ {
		if av, bv := a.Uint32(), b.Uint32(); av != bv {
			t.Fatalf("draw %d: %d != %d with identical seeds", i, av, bv)
		}
	}
}

func TestIntnBounds(t *testing.T) {
	r := MakeWithSeed(1)
	for _, n := range []int{1, 2, 10, 1000} {
		for i := 0; i < 1000; i++ {
			if v := r.Intn(n); v < 0 || v >= n {
				t.Errorf("Intn(%d) returned %d", n, v)
			}
		}
	}
}

func TestShuffleSlice(t *testing.T) {
	r := MakeWithSeed(6502)
	for _, n := range []int{0, 1, 5, 11, 42} {
		s := make([]int, n)
		for i := range n {
			s[i] = i
		}
		ShuffleSlice(s, r)

		got := make([]bool, n)
		for _, v := range s {
			if got[v] {
				t.Errorf("got %d repeatedly, slice %+v", v, s)
			}
			got[v] = true
		}
		for i, g := range got {
			if !g {
				t.Errorf("never got index %d", i)
			}
		}
	}
}

func TestSampleFiltered(t *testing.T) {
	r := Make()
	if SampleFiltered(r, []int{}, func(int) bool { return true }) != -1 {
		t.Errorf("Returned non-negative for empty slice")
	}
	if SampleFiltered(r, []int{0, 1, 2, 3, 4}, func(int) bool { return false }) != -1 {
		t.Errorf("Returned non-negative for fully filtered")
	}
	if idx := SampleFiltered(r, []int{0, 1, 2, 3, 4}, func(v int) bool { return v == 3 }); idx != 3 {
		t.Errorf("Returned index %d; expected 3", idx)
	}
}

func TestSampleWeighted(t *testing.T) {
	r := Make()
	if _, ok := SampleWeighted(r, []int{1, 2, 3}, func(int) int { return 0 }); ok {
		t.Errorf("Sampled an element even though all weights were zero")
	}
	if v, ok := SampleWeighted(r, []int{7, 8, 9}, func(v int) int {
		if v == 8 {
			return 5
		}
		return 0
	}); !ok || v != 8 {
		t.Errorf("Expected 8, got %d (ok %v)", v, ok)
	}
}
