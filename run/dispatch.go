package run

import (
	"context"
	"fmt"
)

// Dispatch parses argv[0] as a subcommand name (generate, solve, or
// visualize) and the remaining arguments as that subcommand's flags,
// then runs it (§4.H). It is the single entry point cmd/ddtsp calls.
func Dispatch(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("run: missing subcommand (expected generate, solve, or visualize)")
	}

	command, args := argv[0], argv[1:]
	switch command {
	case "generate":
		cfg, err := fill[GenerateConfig]("generate", args)
		if err != nil {
			return err
		}
		return RunGenerate(ctx, cfg)
	case "solve":
		cfg, err := fill[SolveConfig]("solve", args)
		if err != nil {
			return err
		}
		return RunSolve(ctx, cfg)
	case "visualize":
		cfg, err := fill[VisualizeConfig]("visualize", args)
		if err != nil {
			return err
		}
		return RunVisualize(ctx, cfg)
	default:
		return fmt.Errorf("run: unknown subcommand %q (expected generate, solve, or visualize)", command)
	}
}
