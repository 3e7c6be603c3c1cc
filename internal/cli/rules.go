package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
	"github.com/spf13/pflag"

	"github.com/termfx/sweeptext/internal/config"
	"github.com/termfx/sweeptext/internal/logging"
	"github.com/termfx/sweeptext/internal/model"
)

// Batch carries settings shared across all rules of a rules file:
// the folder given on the real command line and the outer --test
// flag, which forces every rule into dry-run mode.
type Batch struct {
	Env    *config.Config
	Folder string // overrides each rule's default folder when set
	Test   bool   // force dry run on every rule
}

// RunRulesFile executes a batch of runs, one per non-blank,
// non-comment line of the rules file. Each line is an independent
// argument set over the same option surface as the command line; the
// core engine knows nothing about batching. Fatal configuration
// errors in a rule abort the whole batch; per-file skips inside a
// rule are reported by the run itself and the batch continues.
func RunRulesFile(path string, batch Batch, out io.Writer) error {
	log := logging.GetLogger("rules")

	data, err := os.ReadFile(path)
	if err != nil {
		return model.Wrap(model.ECReadError, "reading rules file "+path,
			fmt.Errorf("%w: %v", model.ErrRead, err))
	}

	env := *batch.Env
	if batch.Folder != "" {
		env.Folder = batch.Folder
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		cfg, err := parseRule(line, &env)
		if err != nil {
			return model.Wrap(model.ECConfigError,
				fmt.Sprintf("rules file %s line %d", path, i+1), err)
		}
		if batch.Test {
			cfg.Test = true
		}

		log.Info().Int("rule", i+1).Str("mode", string(cfg.Mode)).
			Str("pattern", cfg.Pattern).Msg("running rule")
		if err := Execute(cfg, out); err != nil {
			if model.Fatal(err) {
				return model.Wrap(model.ECConfigError,
					fmt.Sprintf("rules file %s line %d", path, i+1), err)
			}
			log.Warn().Int("rule", i+1).Err(err).Msg("rule failed, continuing batch")
		}
	}
	return nil
}

// parseRule splits one rules-file line shell-style and runs it
// through the ordinary flag surface.
func parseRule(line string, env *config.Config) (model.RunConfig, error) {
	argv, err := shellwords.Parse(line)
	if err != nil {
		return model.RunConfig{}, err
	}

	var opts Options
	fs := pflag.NewFlagSet("rule", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts.Register(fs, env)
	if err := fs.Parse(argv); err != nil {
		return model.RunConfig{}, err
	}
	if fs.NArg() > 0 {
		return model.RunConfig{}, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return opts.BuildConfig(env)
}
