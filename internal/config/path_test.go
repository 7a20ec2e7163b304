package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PROBLEMS_DIR", "/srv/problems")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "data", "p.db"), ExpandPath("~/data/p.db"))
	assert.Equal(t, "/srv/problems/p.db", ExpandPath("$PROBLEMS_DIR/p.db"))
	assert.Equal(t, "relative/p.db", ExpandPath("relative/p.db"))
}
