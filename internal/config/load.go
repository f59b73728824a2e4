package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"postsmith/internal/domain"
)

// ErrInvalid wraps every validation failure returned by Load
var ErrInvalid = errors.New("invalid config")

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("sortrule", validateSortRule)
}

func validateSortRule(fl validator.FieldLevel) bool {
	_, err := domain.ParseSortRule(fl.Field().String())
	return err == nil
}

// Load reads, defaults, resolves and validates the config at path. Comments
// and trailing commas are allowed. POSTSMITH_* environment variables
// override top-level keys (e.g. POSTSMITH_OUTPUTDIR).
func Load(path string) (*Config, error) {
	path = expandHome(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	cfg.Path = abs
	cfg.resolveDirs(filepath.Dir(abs))

	return cfg, nil
}

// Parse decodes config bytes without resolving directories
func Parse(data []byte) (*Config, error) {
	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadConfig(bytes.NewReader(jsonc.ToJSON(data))); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("baseUrl", "")
	v.SetDefault("inputDir", "")
	v.SetDefault("outputDir", "")
	v.SetDefault("postsDir", DefaultPostsDir)
	v.SetDefault("extensions", DefaultExtensions)
	v.SetDefault("ignoreFile", DefaultIgnoreFile)
	v.SetDefault("hashedNames", false)
	v.SetDefault("history", true)
}

func (c *Config) applyDefaults() {
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Collection != nil {
		c.Collection.fill("collection")
	}
	if c.Tag != nil {
		c.Tag.fill("tags")
		if c.Tag.PropName == "" {
			c.Tag.PropName = DefaultPropTags
		}
	}
	if c.Category != nil {
		c.Category.fill("categories")
		if c.Category.PropName == "" {
			c.Category.PropName = DefaultPropCategory
		}
		if c.Category.Rule == "" {
			c.Category.Rule = "frontmatter"
		}
	}
}

func (ic *IndexConfig) fill(dir string) {
	if ic.ItemsPerPage == 0 {
		ic.ItemsPerPage = DefaultItemsPerPage
	}
	if ic.Dir == "" {
		ic.Dir = dir
	}
	if ic.Excerpt.Rule == "" {
		ic.Excerpt.Rule = domain.ExcerptByLines.String()
	}
	if ic.Excerpt.Lines == 0 {
		ic.Excerpt.Lines = domain.DefaultExcerptLines
	}
	if ic.Excerpt.Tag == "" {
		ic.Excerpt.Tag = domain.DefaultExcerptTag
	}
	if ic.Excerpt.Format == "" {
		ic.Excerpt.Format = "markdown"
	}
}

func (c *Config) resolveDirs(base string) {
	c.InputDir = resolve(base, c.InputDir)
	c.OutputDir = resolve(base, c.OutputDir)
}

func resolve(base, dir string) string {
	dir = expandHome(dir)
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(base, dir)
}

// Validate checks struct tags and cross-field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("%w: %s failed %q", ErrInvalid, first.Namespace(), first.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	seen := map[string]string{c.PostsDir: "postsDir"}
	for name, dir := range c.indexDirs() {
		if other, clash := seen[dir]; clash {
			return fmt.Errorf("%w: %s dir %q collides with %s", ErrInvalid, name, dir, other)
		}
		seen[dir] = name
	}
	return nil
}

func (c *Config) indexDirs() map[string]string {
	dirs := make(map[string]string)
	if c.Collection != nil {
		dirs["collection"] = c.Collection.Dir
	}
	if c.Tag != nil {
		dirs["tag"] = c.Tag.Dir
	}
	if c.Category != nil {
		dirs["category"] = c.Category.Dir
	}
	return dirs
}
