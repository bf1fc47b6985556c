package outline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	ferrors "github.com/studio27se/ehub/internal/foundation/errors"
)

const sampleTOC = `version: "2.1.0"
modules:
  - id: getting-started
    title: Getting Started
    description: First steps
    icon: rocket
    order: 1
    articles:
      - id: intro
        title: Introduction
        file: docs/intro.md
        order: 5
      - id: setup
        title: Setup
        file: docs/setup.md
  - id: billing
    title: Billing
`

func TestParse_DecodesModulesAndArticles(t *testing.T) {
	o, err := Parse([]byte(sampleTOC))
	require.NoError(t, err)

	require.Equal(t, "2.1.0", o.VersionOrDefault())
	require.Len(t, o.Modules, 2)
	require.Equal(t, 2, o.ArticleCount())

	gs := o.Modules[0]
	require.Equal(t, "getting-started", gs.ID)
	require.Equal(t, "rocket", gs.IconOrDefault())
	require.Equal(t, 1, gs.Order)
	require.True(t, gs.HasArticles)
	require.Equal(t, "docs/intro.md", gs.Articles[0].File)
	require.Equal(t, 5, gs.Articles[0].OrderOrZero())
	require.Nil(t, gs.Articles[1].Order)
	require.Equal(t, 0, gs.Articles[1].OrderOrZero())

	billing := o.Modules[1]
	require.False(t, billing.HasArticles)
	require.Equal(t, DefaultIcon, billing.IconOrDefault())
	require.Empty(t, billing.Description)
}

func TestParse_DefaultVersion(t *testing.T) {
	o, err := Parse([]byte("modules: []\n"))
	require.NoError(t, err)
	require.Equal(t, DefaultVersion, o.VersionOrDefault())
	require.Empty(t, o.Modules)
}

func TestParse_MissingModules_IsFatal(t *testing.T) {
	cases := map[string]string{
		"absent key":     "version: 1.0.0\n",
		"null value":     "modules:\n",
		"empty document": "",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			o, err := Parse([]byte(input))
			require.Nil(t, o)
			require.ErrorIs(t, err, ErrMissingModules)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryOutline))
		})
	}
}

func TestParse_ModulesNotSequence_IsFatal(t *testing.T) {
	_, err := Parse([]byte("modules:\n  id: x\n"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryOutline))
	require.False(t, errors.Is(err, ErrMissingModules))
}

func TestParse_ArticlesNotSequence_IsTolerated(t *testing.T) {
	o, err := Parse([]byte("modules:\n  - id: a\n    title: A\n    articles: nope\n"))
	require.NoError(t, err)
	require.False(t, o.Modules[0].HasArticles)
	require.Empty(t, o.Modules[0].Articles)
}

func TestParse_InvalidYAML_IsFatal(t *testing.T) {
	_, err := Parse([]byte("modules: [\n"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryOutline))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "help-center-toc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTOC), 0o600))

	o, err := Load(path)
	require.NoError(t, err)
	require.Len(t, o.Modules, 2)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryOutline))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParse_MalformedEntriesAreTolerated(t *testing.T) {
	toc := `version: [not, a, string]
modules:
  - foo
  - ~
  - id: {x: 1}
    title: Typed
    order: first
    articles:
      - bar
      - id: a
        title: [A]
        file: a.md
        order: second
      - id: b
        file: b.md
        order: 3
`
	o, err := Parse([]byte(toc))
	require.NoError(t, err)
	require.Equal(t, DefaultVersion, o.VersionOrDefault())
	require.Len(t, o.Modules, 3)

	require.Equal(t, Module{}, o.Modules[0])
	require.Equal(t, Module{}, o.Modules[1])

	typed := o.Modules[2]
	require.Empty(t, typed.ID)
	require.Equal(t, "Typed", typed.Title)
	require.Equal(t, 0, typed.Order)
	require.Equal(t, []string{"id", "order"}, typed.Invalid)
	require.True(t, typed.HasArticles)
	require.Len(t, typed.Articles, 3)

	require.Equal(t, ArticleRef{}, typed.Articles[0])
	require.Equal(t, ArticleRef{ID: "a", File: "a.md", Invalid: []string{"title", "order"}}, typed.Articles[1])
	require.Equal(t, 3, typed.Articles[2].OrderOrZero())
	require.Empty(t, typed.Articles[2].Invalid)
}

func TestParse_ScalarsKeepTheirText(t *testing.T) {
	o, err := Parse([]byte("version: 2\nmodules:\n  - id: 1.10\n    title: 42\n    articles:\n      - {id: 007, file: a.md}\n"))
	require.NoError(t, err)
	require.Equal(t, "2", o.Version)
	require.Equal(t, "1.10", o.Modules[0].ID)
	require.Equal(t, "42", o.Modules[0].Title)
	require.Equal(t, "007", o.Modules[0].Articles[0].ID)
}
