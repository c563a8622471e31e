package bench_test

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"npopt/internal/bench"
)

func TestRunCasePassesDistinctSeeds(t *testing.T) {
	var seeds []int64
	algo := bench.Algorithm{
		Name: "fake",
		Run: func(_ context.Context, seed int64) (float64, error) {
			seeds = append(seeds, seed)
			return float64(seed), nil
		},
	}

	r := bench.Runner{Runs: 3, BaseSeed: 100}
	rec, err := r.RunCase(context.Background(), "inst1", algo)
	require.NoError(t, err)

	require.Equal(t, []int64{100, 101, 102}, seeds)
	require.Equal(t, "fake", rec.Algo)
	require.Equal(t, "inst1", rec.Instance)
	require.Equal(t, 3, rec.Runs)
	require.Equal(t, 100.0, rec.ValueBest)
	require.Equal(t, 101.0, rec.ValueMean)
}

func TestRunCaseMaximizeTakesLargestValue(t *testing.T) {
	values := []float64{250, 295, 270}
	i := 0
	algo := bench.Algorithm{
		Name:     "ga",
		Maximize: true,
		Run: func(context.Context, int64) (float64, error) {
			v := values[i]
			i++
			return v, nil
		},
	}

	r := bench.Runner{Runs: 3, BaseSeed: 1}
	rec, err := r.RunCase(context.Background(), "mochila10", algo)
	require.NoError(t, err)
	require.Equal(t, 295.0, rec.ValueBest)
}

func TestRunCasePropagatesSolverError(t *testing.T) {
	algo := bench.Algorithm{
		Name: "broken",
		Run: func(context.Context, int64) (float64, error) {
			return 0, errors.New("нет решения")
		},
	}

	r := bench.Runner{Runs: 2, BaseSeed: 1}
	_, err := r.RunCase(context.Background(), "x", algo)
	require.ErrorContains(t, err, "нет решения")
}

func TestRunCasePerRunTimeout(t *testing.T) {
	algo := bench.Algorithm{
		Name: "slow",
		Run: func(ctx context.Context, _ int64) (float64, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		},
	}

	r := bench.Runner{Runs: 1, BaseSeed: 1, PerRunTimeout: 10 * time.Millisecond}
	_, err := r.RunCase(context.Background(), "x", algo)
	require.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results", "bench.csv")
	records := []bench.Record{
		{
			Algo: "sa", Instance: "tsp1", Runs: 5,
			TimeBestMs: 1.5, TimeMeanMs: 2.0, TimeStdMs: 0.5,
			ValueBest: 100, ValueMean: 110, ValueStd: 7,
		},
	}

	require.NoError(t, bench.WriteCSV(path, records))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{
		"algo", "instance", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"value_best", "value_mean", "value_std",
	}, rows[0])
	require.Equal(t, "sa", rows[1][0])
	require.Equal(t, "100.000000", rows[1][6])
}

func TestWriteCSVBareFileName(t *testing.T) {
	oldwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
	require.NoError(t, bench.WriteCSV("bench.csv", nil))
	_, err = os.Stat("bench.csv")
	require.NoError(t, err)
}
