package permutation

import (
	"fmt"
	"math/rand"
)

// Identity генерирует срез [0, 1, 2, ..., n-1].
// Используется как базовое состояние перед случайной перестановкой.
func Identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

// Shuffle выполняет случайную перестановку элементов на месте.
func Shuffle(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}

// Random возвращает новую случайную перестановку длины n.
func Random(n int, rng *rand.Rand) []int {
	p := Identity(n)
	Shuffle(p, rng)
	return p
}

// Validate проверяет, что perm — перестановка множества [0, n).
func Validate(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("permutation length must be %d (got %d)", n, len(perm))
	}
	seen := make([]bool, n)
	for i, v := range perm {
		if v < 0 || v >= n {
			return fmt.Errorf("perm[%d]=%d out of range [0,%d)", i, v, n)
		}
		if seen[v] {
			return fmt.Errorf("duplicate element %d in permutation", v)
		}
		seen[v] = true
	}
	return nil
}

// ReverseSegment возвращает копию p с обращённым отрезком [i, j]
// (оператор 2-opt). Порядок i и j не важен.
func ReverseSegment(p []int, i, j int) []int {
	if i > j {
		i, j = j, i
	}
	out := make([]int, len(p))
	copy(out, p)
	for i < j {
		out[i], out[j] = out[j], out[i]
		i++
		j--
	}
	return out
}
