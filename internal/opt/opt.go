package opt

import "time"

// HistoryPoint — точка истории поиска: номер шага (итерации или поколения)
// и лучшее значение целевой функции, найденное к этому шагу.
// Последовательность Best монотонна в направлении оптимизации.
type HistoryPoint struct {
	Step int
	Best float64
}

// Result — результат одного запуска поискового движка.
// Best и BestValue отражают лучшее решение, встреченное за весь запуск,
// а не финальное текущее состояние поиска.
type Result[S any] struct {
	Best        S
	BestValue   float64
	Evaluations int
	Steps       int
	Duration    time.Duration
	History     []HistoryPoint
	Meta        map[string]any
}
