package targeting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marsson/sfdx-scanner/pkg/targeting"
)

func TestCompileGlobsEmptySetMatchesNothing(t *testing.T) {
	pred, err := targeting.CompileGlobs(nil)
	require.NoError(t, err)
	assert.False(t, pred("anything.ts"))
	assert.False(t, pred(""))
}

func TestCompileGlobsOrSemantics(t *testing.T) {
	pred, err := targeting.CompileGlobs([]string{"**/*.ts", "**/*.js"})
	require.NoError(t, err)

	assert.True(t, pred("src/index.ts"))
	assert.True(t, pred("lib/util.js"))
	assert.False(t, pred("src/main.go"))
}

func TestCompileGlobsInvalidPattern(t *testing.T) {
	_, err := targeting.CompileGlobs([]string{"[unclosed"})
	require.Error(t, err)
	assert.ErrorIs(t, err, targeting.ErrBadPattern)
}
