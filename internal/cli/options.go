// Package cli assembles RunConfigs from command-line options and
// executes runs. The same option surface backs the sweeptext command
// and each line of a rules file.
package cli

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/termfx/sweeptext/internal/config"
	"github.com/termfx/sweeptext/internal/model"
)

// Options is the raw option surface before mode presets resolve.
// Paired on/off booleans keep "flag was given" distinct from the
// mode's default for that option.
type Options struct {
	Refile  string
	Move    string
	Collect string
	Copy    string

	AddLinks     bool
	NoAddLinks   bool
	CleanMatch   bool
	NoCleanMatch bool
	AddHeaders   bool
	NoAddHeaders bool

	Insert  string
	Test    bool
	Folder  string
	From    string
	Exclude string
	To      string
}

// Register defines the run flags on fs, with defaults taken from the
// environment config.
func (o *Options) Register(fs *pflag.FlagSet, env *config.Config) {
	fs.StringVar(&o.Refile, "refile", "", "find lines matching pattern, move them from source to target")
	fs.StringVar(&o.Move, "move", "", "alias for --refile")
	fs.StringVar(&o.Collect, "collect", "", "find lines matching pattern, copy them to target (target is wiped each run)")
	fs.StringVar(&o.Copy, "copy", "", "alias for --collect")

	fs.BoolVar(&o.AddLinks, "addlinks", false, "append a [[sourcefile]] link to each moved line")
	fs.BoolVar(&o.NoAddLinks, "noaddlinks", false, "don't append source links")
	fs.BoolVar(&o.CleanMatch, "cleanmatch", false, "remove the matched text from each line")
	fs.BoolVar(&o.NoCleanMatch, "nocleanmatch", false, "keep the matched text in each line")
	fs.BoolVar(&o.AddHeaders, "addheaders", false, "precede each group of lines with a [[sourcefile]] header")
	fs.BoolVar(&o.NoAddHeaders, "noaddheaders", false, "don't add group headers")

	fs.StringVar(&o.Insert, "insert", "", "where to place lines in the target: afterblank|top|append|overwrite")
	fs.BoolVar(&o.Test, "test", false, "dry run: report planned changes, write nothing")
	fs.StringVar(&o.Folder, "folder", env.Folder, "folder to scan")
	fs.StringVar(&o.From, "from", env.From, `source file selector, glob or /regex/`)
	fs.StringVar(&o.Exclude, "exclude", "", "source files to skip, glob or /regex/")
	fs.StringVar(&o.To, "to", "", "target file template, may use {name} from the pattern")
}

// BuildConfig validates the options and resolves them into a
// RunConfig: mode presets first, explicit overrides on top.
func (o *Options) BuildConfig(env *config.Config) (model.RunConfig, error) {
	var cfg model.RunConfig

	mode, pat, err := o.modeAndPattern()
	if err != nil {
		return cfg, err
	}
	if o.To == "" {
		return cfg, model.Wrap(model.ECConfigError, "--to is required", nil)
	}
	if o.AddLinks && o.NoAddLinks {
		return cfg, model.Wrap(model.ECConfigError, "--addlinks and --noaddlinks are mutually exclusive", nil)
	}
	if o.CleanMatch && o.NoCleanMatch {
		return cfg, model.Wrap(model.ECConfigError, "--cleanmatch and --nocleanmatch are mutually exclusive", nil)
	}
	if o.AddHeaders && o.NoAddHeaders {
		return cfg, model.Wrap(model.ECConfigError, "--addheaders and --noaddheaders are mutually exclusive", nil)
	}
	if o.Insert != "" && !model.ValidInsertPolicy(o.Insert) {
		return cfg, model.Wrap(model.ECConfigError,
			fmt.Sprintf("--insert %q: must be afterblank, top, append or overwrite", o.Insert), nil)
	}

	cfg.Mode = mode
	cfg.Pattern = pat
	cfg.Folder = o.Folder
	cfg.From = o.From
	cfg.Exclude = o.Exclude
	cfg.To = o.To
	cfg.Test = o.Test
	cfg.Backups = env.Backups

	cfg.ApplyModeDefaults()
	if o.AddLinks {
		cfg.AddLinks = true
	}
	if o.NoAddLinks {
		cfg.AddLinks = false
	}
	if o.CleanMatch {
		cfg.CleanMatch = true
	}
	if o.NoCleanMatch {
		cfg.CleanMatch = false
	}
	if o.AddHeaders {
		cfg.AddHeaders = true
	}
	if o.NoAddHeaders {
		cfg.AddHeaders = false
	}
	if o.Insert != "" {
		cfg.Insert = model.InsertPolicy(o.Insert)
	}

	return cfg, nil
}

// modeAndPattern picks the run mode from the four mode flags, which
// are mutually exclusive; exactly one must carry the pattern.
func (o *Options) modeAndPattern() (model.Mode, string, error) {
	type pick struct {
		mode model.Mode
		pat  string
	}
	var picked []pick
	if o.Refile != "" {
		picked = append(picked, pick{model.ModeRefile, o.Refile})
	}
	if o.Move != "" {
		picked = append(picked, pick{model.ModeRefile, o.Move})
	}
	if o.Collect != "" {
		picked = append(picked, pick{model.ModeCollect, o.Collect})
	}
	if o.Copy != "" {
		picked = append(picked, pick{model.ModeCollect, o.Copy})
	}
	switch len(picked) {
	case 0:
		return "", "", model.Wrap(model.ECConfigError,
			"one of --refile, --move, --collect or --copy is required", nil)
	case 1:
		return picked[0].mode, picked[0].pat, nil
	default:
		return "", "", model.Wrap(model.ECConfigError,
			"--refile/--move and --collect/--copy are mutually exclusive", nil)
	}
}
