package sa

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"npopt/internal/opt"
)

// Problem — контракт задачи для алгоритма имитации отжига.
// Состояние S — непрозрачное для движка значение; движок работает с ним
// только через операторы задачи. Initial и Neighbor обязаны возвращать
// новое значение и не изменять аргумент: движок свободно сохраняет
// ссылки на текущее и лучшее состояния.
type Problem[S any] interface {
	// Initial возвращает допустимое начальное состояние.
	Initial(rng *rand.Rand) S
	// Cost возвращает значение целевой функции (меньше — лучше).
	// Штрафы за нарушение ограничений включаются здесь же.
	Cost(s S) float64
	// Neighbor возвращает одно структурно допустимое возмущение s.
	Neighbor(s S, rng *rand.Rand) S
}

// CandidateValidator — необязательное расширение Problem:
// структурная проверка кандидата. Движок вызывает её только при
// включённом Config.ValidateCandidates.
type CandidateValidator[S any] interface {
	ValidateCandidate(s S) error
}

// Solver — структура реализации алгоритма имитации отжига.
type Solver[S any] struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый SA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New[S any](cfg Config, rng *rand.Rand) (*Solver[S], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver[S]{Cfg: cfg, Rng: rng}, nil
}

// Solve — реализация эвристики.
// Лучшее найденное состояние и его стоимость отражают минимум за весь
// запуск, а не финальное текущее состояние (оно могло уйти вверх).
func (s *Solver[S]) Solve(ctx context.Context, p Problem[S]) (opt.Result[S], error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result[S]{}, err
	}
	if s.Rng == nil {
		return opt.Result[S]{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if p == nil {
		return opt.Result[S]{}, fmt.Errorf("задача не задана (nil)")
	}

	validator, _ := p.(CandidateValidator[S])

	reportEvery := s.Cfg.ReportEvery
	if reportEvery <= 0 {
		reportEvery = 1
	}

	curr := p.Initial(s.Rng)
	currCost := p.Cost(curr)
	best := curr
	bestCost := currCost
	evals := 1

	history := []opt.HistoryPoint{{Step: 0, Best: bestCost}}

	T := s.Cfg.InitialTemp
	iter := 0

	for ; iter < s.Cfg.Iterations; iter++ {
		if s.Cfg.FinalTemp > 0 && T <= s.Cfg.FinalTemp {
			break
		}
		if s.Cfg.StopAtTarget && bestCost <= s.Cfg.TargetCost {
			break
		}

		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := result(best, bestCost, evals, iter, history, start)
			res.Meta["stopped"] = "context"
			res.Meta["T"] = T
			return res, err
		}

		cand := p.Neighbor(curr, s.Rng)
		if s.Cfg.ValidateCandidates && validator != nil {
			if err := validator.ValidateCandidate(cand); err != nil {
				return opt.Result[S]{}, fmt.Errorf("оператор окрестности вернул недопустимого кандидата: %w", err)
			}
		}

		candCost := p.Cost(cand)
		evals++

		delta := candCost - currCost
		accept := false
		if delta <= 0 {
			// Улучшающее (или равное) решение принимаем всегда
			accept = true
		} else {
			// Критерий Метрополиса:
			// допускает принятие ухудшающих решений.
			// При очень малой T exp(-delta/T) уходит в 0 —
			// вероятность принятия просто обнуляется, без ошибки.
			prob := math.Exp(-delta / T)
			if s.Rng.Float64() < prob {
				accept = true
			}
		}

		if accept {
			curr = cand
			currCost = candCost

			// Обновление глобально лучшего решения
			if currCost < bestCost {
				bestCost = currCost
				best = curr
			}
		}

		if (iter+1)%reportEvery == 0 {
			history = append(history, opt.HistoryPoint{Step: iter + 1, Best: bestCost})
		}

		// Охлаждение температуры
		T *= s.Cfg.Alpha
	}

	res := result(best, bestCost, evals, iter, history, start)
	res.Meta["initial_temp"] = s.Cfg.InitialTemp
	res.Meta["final_temp"] = s.Cfg.FinalTemp
	res.Meta["alpha"] = s.Cfg.Alpha
	return res, nil
}

func result[S any](best S, bestCost float64, evals, iters int, history []opt.HistoryPoint, start time.Time) opt.Result[S] {
	return opt.Result[S]{
		Best:        best,
		BestValue:   bestCost,
		Evaluations: evals,
		Steps:       iters,
		Duration:    time.Since(start),
		History:     history,
		Meta:        map[string]any{},
	}
}
