package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsawler/pdfwriter/font"
	"gopkg.in/yaml.v3"
)

// Config describes the document to generate.
type Config struct {
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
	Subject  string `yaml:"subject"`
	Keywords string `yaml:"keywords"`
	Font     string `yaml:"font"`
	Pages    []Page `yaml:"pages"`
}

// Page is one page of the document. Sizes are in points.
type Page struct {
	Width    float32  `yaml:"width"`
	Height   float32  `yaml:"height"`
	Margin   float32  `yaml:"margin"`
	FontSize float32  `yaml:"font_size"`
	Lines    []string `yaml:"lines"`
	Image    *Image   `yaml:"image"`
}

// Image places a picture on a page. Without a width the picture is drawn
// at one point per pixel; without a height it keeps its aspect ratio.
type Image struct {
	Path   string  `yaml:"path"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// A4 in points.
const (
	defaultFont     = "Helvetica"
	defaultWidth    = 595
	defaultHeight   = 842
	defaultMargin   = 72
	defaultFontSize = 12
)

var errNoPages = errors.New("document has no pages")

// LoadConfig reads a document description from a YAML file. The raw file
// contents are returned as well; they seed the file identifier.
func LoadConfig(path string) (*Config, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config, err := ParseConfig(data)
	if err != nil {
		return nil, nil, err
	}
	return config, data, nil
}

// ParseConfig decodes a document description, fills in defaults and
// validates it.
func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply defaults
	if config.Font == "" {
		config.Font = defaultFont
	}
	for i := range config.Pages {
		p := &config.Pages[i]
		if p.Width == 0 {
			p.Width = defaultWidth
		}
		if p.Height == 0 {
			p.Height = defaultHeight
		}
		if p.Margin == 0 {
			p.Margin = defaultMargin
		}
		if p.FontSize == 0 {
			p.FontSize = defaultFontSize
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

// Validate checks that the description can be rendered.
func (c *Config) Validate() error {
	if len(c.Pages) == 0 {
		return errNoPages
	}
	if m, ok := font.Standard(c.Font); !ok || m.Symbolic() {
		return fmt.Errorf("font %q is not a standard text font", c.Font)
	}

	for i, p := range c.Pages {
		if p.Width < 0 || p.Height < 0 {
			return fmt.Errorf("page %d: negative size %gx%g", i+1, p.Width, p.Height)
		}
		if p.FontSize < 0 {
			return fmt.Errorf("page %d: negative font_size %g", i+1, p.FontSize)
		}
		if p.Margin < 0 || 2*p.Margin >= p.Width || 2*p.Margin >= p.Height {
			return fmt.Errorf("page %d: margin %g does not fit a %gx%g page", i+1, p.Margin, p.Width, p.Height)
		}
		if img := p.Image; img != nil {
			if img.Path == "" {
				return fmt.Errorf("page %d: image path is required", i+1)
			}
			if img.Width < 0 || img.Height < 0 {
				return fmt.Errorf("page %d: negative image size %gx%g", i+1, img.Width, img.Height)
			}
		}
	}
	return nil
}
