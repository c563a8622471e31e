// Пакет binpack — одномерная упаковка в контейнеры (bin packing).
// Решается конструктивной эвристикой First Fit Decreasing с последующей
// локальной оптимизацией слиянием контейнеров; поисковые движки
// здесь не используются.
package binpack

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"npopt/internal/runio"
)

const (
	Number = 4
	Name   = "peu"
)

type Instance struct {
	Capacity int
	Sizes    []int
}

func NewInstance(capacity int, sizes []int) (*Instance, error) {
	inst := &Instance{Capacity: capacity, Sizes: sizes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0 (got %d)", inst.Capacity)
	}
	if len(inst.Sizes) == 0 {
		return errors.New("instance has no items")
	}
	for i, s := range inst.Sizes {
		if s <= 0 || s > inst.Capacity {
			return fmt.Errorf("sizes[%d]=%d out of range (0,%d]", i, s, inst.Capacity)
		}
	}
	return nil
}

// Parse разбирает входной файл упаковки: вместимость контейнера,
// число предметов, размеры предметов.
func Parse(lines []string) (*Instance, error) {
	if len(lines) < 3 {
		return nil, fmt.Errorf("ожидалось минимум 3 строки входа (получено %d)", len(lines))
	}
	capacity, err := runio.Int(lines[0])
	if err != nil {
		return nil, err
	}
	count, err := runio.Int(lines[1])
	if err != nil {
		return nil, err
	}
	sizes, err := runio.Ints(lines[2])
	if err != nil {
		return nil, err
	}
	if count != len(sizes) {
		return nil, fmt.Errorf("заявлено %d предметов, разобрано %d", count, len(sizes))
	}
	return NewInstance(capacity, sizes)
}

// FirstFitDecreasing размещает предметы в порядке убывания размера,
// каждый — в первый контейнер, куда он помещается.
// Возвращает контейнеры как списки индексов предметов.
func FirstFitDecreasing(inst *Instance) [][]int {
	order := lo.Range(len(inst.Sizes))
	sort.SliceStable(order, func(i, j int) bool {
		return inst.Sizes[order[i]] > inst.Sizes[order[j]]
	})

	var bins [][]int
	var remaining []int

	for _, item := range order {
		size := inst.Sizes[item]
		placed := false
		for b := range bins {
			if remaining[b] >= size {
				bins[b] = append(bins[b], item)
				remaining[b] -= size
				placed = true
				break
			}
		}
		if !placed {
			bins = append(bins, []int{item})
			remaining = append(remaining, inst.Capacity-size)
		}
	}
	return bins
}

// BinLoad возвращает суммарный размер предметов контейнера.
func BinLoad(inst *Instance, bin []int) int {
	return lo.SumBy(bin, func(item int) int {
		return inst.Sizes[item]
	})
}

// Consolidate — локальная оптимизация: пары контейнеров, чьё суммарное
// содержимое помещается в один, сливаются. Повторяется до тех пор,
// пока находятся такие пары (не более maxRounds раундов).
func Consolidate(inst *Instance, bins [][]int, maxRounds int) [][]int {
	out := make([][]int, len(bins))
	for i, bin := range bins {
		out[i] = append([]int(nil), bin...)
	}

	for round := 0; round < maxRounds; round++ {
		merged := false
		for i := 0; i < len(out) && !merged; i++ {
			for j := i + 1; j < len(out); j++ {
				if BinLoad(inst, out[i])+BinLoad(inst, out[j]) <= inst.Capacity {
					out[i] = append(out[i], out[j]...)
					out = append(out[:j], out[j+1:]...)
					merged = true
					break
				}
			}
		}
		if !merged {
			break
		}
	}
	return out
}

// Solve — FFD с последующей консолидацией.
func Solve(inst *Instance) ([][]int, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	bins := FirstFitDecreasing(inst)
	return Consolidate(inst, bins, 100), nil
}

// Format формирует содержимое выходного файла:
// число контейнеров и содержимое каждого с занятой вместимостью.
func Format(inst *Instance, bins [][]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Número de recipientes utilizados: %d\n\n", len(bins))
	for i, bin := range bins {
		items := lo.Map(bin, func(item int, _ int) string {
			return strconv.Itoa(item)
		})
		fmt.Fprintf(&b, "Recipiente %d: itens [%s]\n", i+1, strings.Join(items, ", "))
		fmt.Fprintf(&b, "  Capacidade usada: %d/%d\n", BinLoad(inst, bin), inst.Capacity)
	}
	return b.String()
}
