package main

import (
	"errors"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jacoelho/crmarray/internal/config"
	"github.com/jacoelho/crmarray/internal/exit"
	"github.com/jacoelho/crmarray/internal/runner"
)

func main() {
	exitCode := run(os.Args, os.Stdin, os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Parse(args)
	if err != nil {
		result := parseResult(err)
		result.Print(stdout, stderr)
		return result.ExitCode
	}

	logger := newLogger(cfg.Debug, stderr)
	defer func() { _ = logger.Sync() }()

	if err := runner.New(cfg, logger, stdin).Run(stdout); err != nil {
		result := exit.Errorf("Error: %v\n", err)
		result.Print(stdout, stderr)
		return result.ExitCode
	}

	return exit.CodeSuccess
}

func parseResult(err error) *exit.Result {
	if errors.Is(err, config.ErrHelp) {
		return exit.Success(config.Usage() + "\n")
	}
	return exit.Usagef("Error: %v\n\n%s\n", err, config.Usage())
}

// newLogger builds a JSON logger on stderr, at debug level with -debug.
func newLogger(debug bool, stderr io.Writer) *zap.Logger {
	config := zap.NewProductionConfig()
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(config.EncoderConfig),
		zapcore.AddSync(stderr),
		config.Level,
	)
	return zap.New(core, zap.AddCaller())
}
