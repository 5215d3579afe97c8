package lint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/gnolang/jdlint/internal"
	"github.com/gnolang/jdlint/internal/javadoc"
	tt "github.com/gnolang/jdlint/internal/types"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is the configuration file looked up when none is given.
const DefaultConfigPath = ".jdlint.yaml"

// progressOutput receives the progress bar shown while walking directories.
var progressOutput io.Writer = os.Stderr

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte) ([]tt.Issue, error)
	IgnoreRule(rule string)
	IgnorePath(path string)
}

// New loads the configuration at configurationPath and creates an engine
// from it. A missing configuration file selects the defaults.
func New(rootDir string, configurationPath string) (*internal.Engine, error) {
	config, err := parseConfigurationFile(configurationPath)
	if err != nil {
		return nil, err
	}

	tags, err := config.TagRules()
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(rootDir, config.Rules, tags)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	if !info.IsDir() {
		if !hasDesiredExtension(path) {
			return nil, nil
		}
		return processor(engine, path)
	}

	files, err := collectFiles(path)
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", path, err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(progressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	// results are kept per file so the output order does not depend on scheduling
	results := make([][]tt.Issue, len(files))
	errs := make([]error, len(files))
	var barMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.NumCPU(), len(files)))

	for i, filePath := range files {
		i, filePath := i, filePath
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			fileIssues, err := processor(engine, filePath)
			if err != nil {
				// a broken file does not stop the others
				if logger != nil {
					logger.Error("Error processing file", zap.String("file", filePath), zap.Error(err))
				}
				errs[i] = fmt.Errorf("%s: %w", filePath, err)
			} else {
				results[i] = fileIssues
			}

			barMu.Lock()
			_ = bar.Add(1)
			barMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var issues []tt.Issue
	for _, r := range results {
		issues = append(issues, r...)
	}
	// issues of the files that succeeded are returned along with the errors
	return issues, errors.Join(errs...)
}

func collectFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(filePath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && hasDesiredExtension(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	return files, err
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source)
}

var desiredExtensions = map[string]bool{
	".java": true,
}

func hasDesiredExtension(path string) bool {
	return desiredExtensions[filepath.Ext(path)]
}

// Config represents the overall configuration: a name, per-rule settings and
// the tag to pattern table of the javadoc-tags rule.
type Config struct {
	Name  string                   `yaml:"name" toml:"name"`
	Rules map[string]tt.ConfigRule `yaml:"rules" toml:"rules"`
	Tags  map[string]string        `yaml:"tags,omitempty" toml:"tags,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	rules := make(map[string]tt.ConfigRule)
	for _, name := range internal.RuleNames() {
		rules[name] = tt.ConfigRule{Severity: tt.SeverityError}
	}
	return Config{
		Name:  "jdlint",
		Rules: rules,
		Tags:  javadoc.DefaultPatterns(),
	}
}

// TagRules compiles the configured tags, falling back to the defaults when
// none are configured.
func (c Config) TagRules() (*javadoc.TagRules, error) {
	if len(c.Tags) == 0 {
		return javadoc.DefaultTagRules(), nil
	}
	tags, err := javadoc.NewTagRules(c.Tags)
	if err != nil {
		return nil, fmt.Errorf("invalid tags configuration: %w", err)
	}
	return tags, nil
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// WriteConfig writes config to path, as TOML when path ends in .toml and as
// YAML otherwise.
func WriteConfig(path string, config Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if isTOML(path) {
		return toml.NewEncoder(f).Encode(config)
	}

	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	_, err = f.Write(d)
	return err
}

func parseConfigurationFile(configurationPath string) (Config, error) {
	if configurationPath == "" {
		configurationPath = DefaultConfigPath
	}

	// Read the configuration file
	f, err := os.Open(configurationPath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()

	// Parse the configuration file
	var config Config
	if isTOML(configurationPath) {
		if _, err := toml.NewDecoder(f).Decode(&config); err != nil {
			return config, fmt.Errorf("%s: failed to parse TOML: %w", configurationPath, err)
		}
		return config, nil
	}

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(&config)
	if err != nil && !errors.Is(err, io.EOF) {
		return config, fmt.Errorf("error parsing %s: %w", configurationPath, err)
	}

	return config, nil
}
