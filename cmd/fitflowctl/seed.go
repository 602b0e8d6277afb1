package main

import (
	"fmt"
	"io"
	"os"

	"github.com/2beens/fitflow/internal/training/exercises"
	"github.com/2beens/fitflow/internal/training/programs"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed reference data",
}

var seedExercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Insert or update the exercise library from a YAML file",
	Long: `Reads the exercise library from a YAML file and upserts every entry by name.

The default program of new accounts references exercises by name, so the
command warns when any of them is missing from the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return fmt.Errorf("open seed file: %w", err)
		}
		defer f.Close()

		library, err := loadExerciseSeed(f)
		if err != nil {
			return err
		}

		for _, name := range missingDefaultExercises(library) {
			color.Yellow("⚠ default program exercise missing from seed: %s", name)
		}

		ctx := cmd.Context()
		pool, err := openDBPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		service := exercises.NewService(exercises.NewRepo(pool), 1)
		faint := color.New(color.Faint)
		for i := range library {
			stored, err := service.Save(ctx, &library[i])
			if err != nil {
				return fmt.Errorf("save exercise %q: %w", library[i].Name, err)
			}
			fmt.Printf("%s %s\n", faint.Sprintf("%4d", stored.ID), stored.Name)
		}

		color.Green("✓ Seeded %d exercises", len(library))
		return nil
	},
}

func init() {
	seedExercisesCmd.Flags().StringVarP(&seedFile, "file", "f", "assets/exercises.yaml", "exercise library YAML file")
	seedCmd.AddCommand(seedExercisesCmd)
}

type exerciseSeed struct {
	Exercises []exercises.Exercise `yaml:"exercises"`
}

// loadExerciseSeed decodes and validates the library file. Entries are normalized
// the same way the service does before storing them.
func loadExerciseSeed(r io.Reader) ([]exercises.Exercise, error) {
	var seed exerciseSeed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	if len(seed.Exercises) == 0 {
		return nil, fmt.Errorf("seed file has no exercises")
	}

	seen := make(map[string]bool, len(seed.Exercises))
	for i := range seed.Exercises {
		e := &seed.Exercises[i]
		if seen[e.Name] {
			return nil, fmt.Errorf("duplicate exercise in seed: %s", e.Name)
		}
		seen[e.Name] = true

		e.Normalize()
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("exercise %q: %w", e.Name, err)
		}
	}

	return seed.Exercises, nil
}

func missingDefaultExercises(library []exercises.Exercise) []string {
	names := make(map[string]bool, len(library))
	for _, e := range library {
		names[e.Name] = true
	}

	var missing []string
	for _, name := range programs.DefaultExerciseNames() {
		if !names[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
