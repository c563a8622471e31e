package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"
)

// Algorithm — один решатель над одним экземпляром задачи.
// Run выполняет полный запуск с заданным сидом и возвращает значение
// целевой функции лучшего найденного решения.
type Algorithm struct {
	Name string
	// Maximize — значение целевой функции максимизируется
	// (лучшим считается наибольшее, как у рюкзака).
	Maximize bool
	Run      func(ctx context.Context, seed int64) (float64, error)
}

type Record struct {
	Algo     string
	Instance string
	Runs     int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	ValueBest float64
	ValueMean float64
	ValueStd  float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = без ограничения
}

// RunCase выполняет серию запусков алгоритма с разными сидами
// и агрегирует статистику значений и времени.
func (r Runner) RunCase(ctx context.Context, instance string, algo Algorithm) (Record, error) {
	values := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		value, err := algo.Run(runCtx, runSeed)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("запуск %d: отменён или истекло время: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("запуск %d: ошибка решателя: %w", i, err)
		}

		values = append(values, value)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
	}

	vStats := CalcStats(values)
	tStats := CalcStats(timesMs)

	if algo.Maximize && len(values) > 0 {
		best := values[0]
		for _, v := range values {
			if v > best {
				best = v
			}
		}
		vStats.Best = best
	}

	return Record{
		Algo:     algo.Name,
		Instance: instance,
		Runs:     r.Runs,

		TimeBestMs: tStats.Best,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		ValueBest: vStats.Best,
		ValueMean: vStats.Mean,
		ValueStd:  vStats.Std,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if dir := dirOf(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"algo", "instance", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"value_best", "value_mean", "value_std",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			r.Instance,
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.ValueBest),
			ftoa(r.ValueMean),
			ftoa(r.ValueStd),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
