package commands

import (
	"fmt"

	"github.com/studio27se/ehub/internal/article"
	"github.com/studio27se/ehub/internal/foundation/errors"
	"github.com/studio27se/ehub/internal/outline"
	"github.com/studio27se/ehub/internal/validate"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Root          string `help:"Documentation root that article paths are relative to"`
	TOC           string `name:"toc" help:"Outline file, relative to the root unless absolute"`
	Format        string `short:"f" default:"text" help:"Output format (text or json)" enum:"text,json"`
	CheckLinks    bool   `help:"Report relative links whose target file does not exist"`
	AllowWarnings bool   `help:"Exit 0 when only warnings are found"`
}

// Run executes the validate command.
//
// Exit status: 0 passed, 1 warnings only, 2 errors present.
func (c *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	applyPathFlags(cfg, c.Root, c.TOC, "")

	o, err := outline.Load(cfg.TOCPath())
	if err != nil {
		return err
	}

	v := validate.New(article.NewLoader(cfg.Root), validate.Options{
		CheckLinks: c.CheckLinks || cfg.Validate.CheckLinks,
	})
	result, _ := v.Run(o, validate.NewSeen())

	if err := validate.NewFormatter(c.Format).Format(g.Stdout, result, cfg.TOCPath()); err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "formatting output").Build()
	}

	switch result.Status() {
	case validate.StatusFailed:
		return errors.NewError(errors.CategoryValidation, fmt.Sprintf("validation failed with %d errors", result.ErrorCount())).Build()
	case validate.StatusPassedWithWarnings:
		if c.AllowWarnings || cfg.Validate.AllowWarnings {
			return nil
		}
		return errors.NewError(errors.CategoryValidation, fmt.Sprintf("validation passed with %d warnings", result.WarningCount())).
			Warning().
			Build()
	default:
		return nil
	}
}
