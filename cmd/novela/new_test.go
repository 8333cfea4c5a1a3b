package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jordyvandomselaar/novela/config"
	"github.com/jordyvandomselaar/novela/content"
)

func TestToTitle(t *testing.T) {
	require.Equal(t, "My Blog", toTitle("my-blog"))
	require.Equal(t, "Myblog", toTitle("myblog"))
}

func TestRunNewWritesLoadableSite(t *testing.T) {
	parent := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, runNew(parent, "github.com/jordy/my-blog", &out))

	dir := filepath.Join(parent, "my-blog")
	require.FileExists(t, filepath.Join(dir, "config.yaml"))
	require.FileExists(t, filepath.Join(dir, ".gitignore"))
	require.FileExists(t, filepath.Join(dir, "content", "posts", "2020-02-20-hello-novela", "index.md"))
	require.NoFileExists(t, filepath.Join(dir, "config.yaml.tmpl"))
	require.Contains(t, out.String(), "created")

	t.Chdir(parent)
	cfg, err := config.Load(filepath.Join("my-blog", "config.yaml"))
	require.NoError(t, err)
	require.Equal(t, "My Blog", cfg.Site.Title)
	_, ok := cfg.CMS()
	require.True(t, ok)

	theme := cfg.Theme()
	set, err := content.Load(cfg.Path(theme.ContentPosts), cfg.Path(theme.ContentAuthors))
	require.NoError(t, err)
	require.Len(t, set.Posts, 1)
	require.Equal(t, "Hello from My Blog", set.Posts[0].Title)
	require.Contains(t, set.Posts[0].HTML, "Writing tips")
	require.Len(t, set.Authors, 1)
}

func TestRunNewRefusesExistingDir(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(parent, "taken"), 0o755))

	err := runNew(parent, "taken", &bytes.Buffer{})
	require.ErrorContains(t, err, "already exists")
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	require.Equal(t, "novela dev\n", out.String())
}
