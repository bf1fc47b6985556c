package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/studio27se/ehub/internal/article"
	"github.com/studio27se/ehub/internal/config"
	"github.com/studio27se/ehub/internal/foundation/errors"
	"github.com/studio27se/ehub/internal/frontmatter"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing files"`
}

const starterOutline = `version: "1.0.0"
modules:
  - id: getting-started
    title: Getting Started
    description: Everything you need to begin
    icon: rocket
    order: 1
    articles:
      - id: welcome
        title: Welcome
        file: getting-started/welcome.md
        order: 1
`

const starterBody = `
# Welcome

This is your first help center article. Edit it, add more articles under
the module directories, and list them in help-center-toc.yaml.
`

func (i *InitCmd) Run(g *Global, root *CLI) error {
	configPath := root.Config
	if configPath == "" {
		configPath = config.DefaultFile
	}

	_, _ = fmt.Fprintln(g.Stdout, "Initializing help center project")
	_, _ = fmt.Fprintf(g.Stdout, "Writing configuration to %s\n", configPath)
	if err := config.Init(configPath, i.Force); err != nil {
		_, _ = fmt.Fprintln(g.Stdout, "Initialization failed")
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	articleData, err := starterArticle()
	if err != nil {
		return err
	}

	files := []struct {
		path string
		data []byte
	}{
		{cfg.TOCPath(), []byte(starterOutline)},
		{article.NewLoader(cfg.Root).Resolve("getting-started/welcome.md"), articleData},
	}
	for _, f := range files {
		if err := writeStarterFile(f.path, f.data, i.Force); err != nil {
			_, _ = fmt.Fprintln(g.Stdout, "Initialization failed")
			return err
		}
		_, _ = fmt.Fprintf(g.Stdout, "Created %s\n", f.path)
	}

	_, _ = fmt.Fprintln(g.Stdout, "initialized successfully")
	return nil
}

// starterArticle renders the welcome article with a uid and a current
// content fingerprint.
func starterArticle() ([]byte, error) {
	fields := map[string]any{
		article.KeyID:       "welcome",
		article.KeyTitle:    "Welcome",
		article.KeyModuleID: "getting-started",
		article.KeyOrder:    1,
		"uid":               uuid.NewString(),
	}
	render := func() ([]byte, error) {
		fm, err := frontmatter.SerializeYAML(fields, frontmatter.Style{Newline: "\n"})
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryInternal, "serialize starter front matter").Build()
		}
		return frontmatter.Join(fm, []byte(starterBody), frontmatter.FormatYAML, frontmatter.Style{Newline: "\n"}), nil
	}

	data, err := render()
	if err != nil {
		return nil, err
	}
	doc, err := article.Decode("welcome.md", data)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "decode starter article").Build()
	}
	fp, err := doc.Fingerprint()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "fingerprint starter article").Build()
	}
	fields[article.KeyFingerprint] = fp
	return render()
}

func writeStarterFile(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("file already exists: %s (use --force to overwrite)", path)).Build()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create directory").
			WithContext("path", filepath.Dir(path)).
			Build()
	}
	// #nosec G306 -- documentation sources are meant to be readable.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write file").
			WithContext("path", path).
			Build()
	}
	return nil
}
