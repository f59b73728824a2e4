// Package config loads posts.config.json into a validated Config.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultConfigFile = "posts.config.json"
	EnvConfigPath     = "POSTSMITH_CONFIG"
	EnvPrefix         = "POSTSMITH"

	DefaultPostsDir     = "posts"
	DefaultIgnoreFile   = ".postsignore"
	DefaultItemsPerPage = 10
	DefaultPropTags     = "tags"
	DefaultPropCategory = "categories"
)

// DefaultExtensions are the source file extensions picked up when the
// config does not name any
var DefaultExtensions = []string{".md", ".markdown"}

// ConfigPath returns the config path from the POSTSMITH_CONFIG env var,
// falling back to DefaultConfigFile in the working directory.
func ConfigPath() string {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultConfigFile
}

// Config is the effective build configuration
type Config struct {
	BaseURL     string   `mapstructure:"baseUrl" json:"baseUrl"`
	InputDir    string   `mapstructure:"inputDir" json:"inputDir" validate:"required"`
	OutputDir   string   `mapstructure:"outputDir" json:"outputDir" validate:"required"`
	PostsDir    string   `mapstructure:"postsDir" json:"postsDir" validate:"required,excludesall=/\\"`
	Extensions  []string `mapstructure:"extensions" json:"extensions" validate:"min=1,dive,startswith=."`
	IgnoreFile  string   `mapstructure:"ignoreFile" json:"ignoreFile"`
	HashedNames bool     `mapstructure:"hashedNames" json:"hashedNames"`
	History     bool     `mapstructure:"history" json:"history"`

	Collection *IndexConfig    `mapstructure:"collection" json:"collection,omitempty" validate:"omitempty"`
	Tag        *TagConfig      `mapstructure:"tag" json:"tag,omitempty" validate:"omitempty"`
	Category   *CategoryConfig `mapstructure:"category" json:"category,omitempty" validate:"omitempty"`

	// Path is the file the config was read from
	Path string `mapstructure:"-" json:"-"`
}

// IndexConfig holds the options shared by every index kind
type IndexConfig struct {
	ItemsPerPage int           `mapstructure:"itemsPerPage" json:"itemsPerPage" validate:"gte=1"`
	Sort         string        `mapstructure:"sort" json:"sort" validate:"sortrule"`
	Dir          string        `mapstructure:"dir" json:"dir" validate:"required,excludesall=/\\"`
	Excerpt      ExcerptConfig `mapstructure:"excerpt" json:"excerpt"`
}

// ExcerptConfig selects how an index summarizes post bodies
type ExcerptConfig struct {
	Rule   string `mapstructure:"rule" json:"rule" validate:"omitempty,oneof=ByLines CustomTag NoContent FullContent"`
	Lines  int    `mapstructure:"lines" json:"lines" validate:"gte=0"`
	Tag    string `mapstructure:"tag" json:"tag"`
	Format string `mapstructure:"format" json:"format" validate:"omitempty,oneof=markdown html"`
}

// TagConfig configures the tagger
type TagConfig struct {
	IndexConfig `mapstructure:",squash"`
	PropName    string `mapstructure:"propName" json:"propName" validate:"required"`
}

// CategoryConfig configures the classifier
type CategoryConfig struct {
	IndexConfig `mapstructure:",squash"`
	PropName    string `mapstructure:"propName" json:"propName" validate:"required"`
	Rule        string `mapstructure:"rule" json:"rule" validate:"omitempty,oneof=frontmatter path"`
}

// ArtifactRoot is the directory holding one JSON artifact per post
func (c *Config) ArtifactRoot() string {
	return filepath.Join(c.OutputDir, c.PostsDir)
}

// IgnorePath returns the ignore file location, or "" when disabled
func (c *Config) IgnorePath() string {
	if c.IgnoreFile == "" {
		return ""
	}
	return filepath.Join(c.InputDir, c.IgnoreFile)
}

// TagField returns the header field holding tags
func (c *Config) TagField() string {
	if c.Tag != nil && c.Tag.PropName != "" {
		return c.Tag.PropName
	}
	return DefaultPropTags
}

// HasIndex reports whether any index is enabled
func (c *Config) HasIndex() bool {
	return c.Collection != nil || c.Tag != nil || c.Category != nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[1:])
	}
	return path
}
