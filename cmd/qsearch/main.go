package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/theapemachine/qsearch"
)

var (
	qubits  int
	targets int
	seed    int64
	shots   int
	runs    int
)

var rootCmd = &cobra.Command{
	Use:   "qsearch",
	Short: "Amplitude-amplification search with quantum counting",
}

var countCmd = &cobra.Command{
	Use:   "count",
	Short: "Estimate the number of solutions via quantum counting",
	RunE: func(cmd *cobra.Command, args []string) error {
		rng := rand.New(rand.NewSource(seed))
		for n := 3; n <= qubits; n++ {
			space, err := qsearch.NewSearchSpace(n)
			if err != nil {
				return err
			}
			size := space.Size()
			for m := 0; m <= int(math.Sqrt(float64(size))); m++ {
				answers := pickAnswers(rng, size, m)
				oracle := qsearch.IndexOracle(space, answers...)
				backend := qsearch.NewSeededSimulator(rng.Int63())
				estimator := qsearch.NewEstimator(backend, countingConfig())

				totalError := 0.0
				for run := 0; run < runs; run++ {
					estimate, err := estimator.Estimate(context.Background(), oracle)
					if err != nil {
						return err
					}
					totalError += math.Abs(float64(m) - estimate.M)
				}
				fmt.Printf("N=%d, M=%d: avg. error = %.4f\n", size, m, totalError/float64(runs))
			}
		}
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Find all solutions in a randomly generated search problem",
	RunE: func(cmd *cobra.Command, args []string) error {
		space, err := qsearch.NewSearchSpace(qubits)
		if err != nil {
			return err
		}
		rng := rand.New(rand.NewSource(seed))
		answers := pickAnswers(rng, space.Size(), targets)
		fmt.Printf("%d answers = %v\n", len(answers), answers)

		oracle := qsearch.IndexOracle(space, answers...)
		backend := qsearch.NewSeededSimulator(rng.Int63())
		driver := qsearch.NewDriver(oracle, backend, qsearch.WithCountingShots(shots))

		result, err := driver.Run(context.Background())
		if err != nil {
			return err
		}

		fmt.Printf("found %d/%d solutions in %d rounds: %v\n",
			len(result.Solutions), len(answers), result.Rounds, result.Solutions)
		if !result.Complete {
			fmt.Printf("incomplete: %s\n", result.Reason)
		}
		for name, value := range driver.Metrics().ExportMetrics() {
			fmt.Printf("    %s = %v\n", name, value)
		}
		return nil
	},
}

func countingConfig() *qsearch.Config {
	config := qsearch.NewConfig()
	config.CountingShots = shots
	return config
}

// pickAnswers draws distinct random targets from a space of the given size.
func pickAnswers(rng *rand.Rand, size, count int) []int {
	chosen := make(map[int]struct{}, count)
	answers := make([]int, 0, count)
	for len(answers) < count {
		x := rng.Intn(size)
		if _, ok := chosen[x]; ok {
			continue
		}
		chosen[x] = struct{}{}
		answers = append(answers, x)
	}
	return answers
}

func main() {
	rootCmd.PersistentFlags().IntVarP(&qubits, "qubits", "n", 4, "number of data qubits")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().IntVar(&shots, "shots", 32, "shots per counting execution")
	countCmd.Flags().IntVar(&runs, "runs", 20, "estimator runs per configuration")
	searchCmd.Flags().IntVarP(&targets, "targets", "m", 2, "number of solutions to plant")
	rootCmd.AddCommand(countCmd, searchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
