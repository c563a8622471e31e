package sa

import "fmt"

type Config struct {
	// Iterations — бюджет итераций. 0 — допустимое граничное значение:
	// поиск не стартует и возвращается начальное состояние.
	Iterations int `mapstructure:"iterations"`

	InitialTemp float64 `mapstructure:"initial_temp"`
	// FinalTemp <= 0 отключает нижний порог температуры,
	// поиск останавливается только по бюджету итераций.
	FinalTemp float64 `mapstructure:"final_temp"`
	Alpha     float64 `mapstructure:"alpha"`

	// ReportEvery — шаг записи истории (0 => каждая итерация).
	ReportEvery int `mapstructure:"report_every"`

	// StopAtTarget включает ранний выход, когда лучшее значение
	// достигает TargetCost (например, ноль конфликтов у n ферзей).
	StopAtTarget bool    `mapstructure:"stop_at_target"`
	TargetCost   float64 `mapstructure:"target_cost"`

	// ValidateCandidates включает проверку каждого соседа через
	// CandidateValidator. Используется в тестах операторов.
	ValidateCandidates bool `mapstructure:"validate_candidates"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:  10_000,
		InitialTemp: 1000.0,
		FinalTemp:   0.01,
		Alpha:       0.995,
	}
}

func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf(
			"Iterations должно быть >= 0 (получено %d)",
			c.Iterations,
		)
	}
	if c.InitialTemp <= 0 {
		return fmt.Errorf(
			"InitialTemp должно быть > 0 (получено %f)",
			c.InitialTemp,
		)
	}
	if c.FinalTemp > 0 && c.FinalTemp >= c.InitialTemp {
		return fmt.Errorf(
			"FinalTemp должно быть < InitialTemp (получено %f >= %f)",
			c.FinalTemp,
			c.InitialTemp,
		)
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return fmt.Errorf(
			"alpha должно лежать в интервале (0,1) (получено %f)",
			c.Alpha,
		)
	}
	if c.ReportEvery < 0 {
		return fmt.Errorf(
			"ReportEvery должно быть >= 0 (получено %d)",
			c.ReportEvery,
		)
	}
	return nil
}
