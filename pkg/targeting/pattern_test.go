package targeting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/marsson/sfdx-scanner/pkg/targeting"
)

func TestClassifyEmptyInput(t *testing.T) {
	cp := targeting.Classify(nil)
	assert.Empty(t, cp.Inclusion)
	assert.Empty(t, cp.Exclusion)
	assert.Empty(t, cp.Advanced)
}

func TestClassifyBuckets(t *testing.T) {
	adv := targeting.Advanced{
		BasePatterns: targeting.FromStrings([]string{"**/*.cls"}),
		Matcher: func(ctx context.Context, path string) (bool, error) {
			return true, nil
		},
	}
	patterns := []targeting.Pattern{
		targeting.Simple("**/*.ts"),
		targeting.Simple("!**/node_modules/**"),
		targeting.Simple("src/**/*.js"),
		adv,
		targeting.Simple("!**/dist/**"),
	}

	cp := targeting.Classify(patterns)

	assert.Equal(t, []string{"**/*.ts", "src/**/*.js"}, cp.Inclusion)
	assert.Equal(t, []string{"**/node_modules/**", "**/dist/**"}, cp.Exclusion,
		"negation marker must be stripped")
	assert.Len(t, cp.Advanced, 1)
}

func TestClassifyNormalizesSeparators(t *testing.T) {
	cp := targeting.Classify(targeting.FromStrings([]string{
		`src\main\**`,
		`!build\**`,
	}))
	assert.Equal(t, []string{"src/main/**"}, cp.Inclusion)
	assert.Equal(t, []string{"build/**"}, cp.Exclusion)
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already normalized", "src/main/Foo.cls", "src/main/Foo.cls"},
		{"windows separators", `src\main\Foo.cls`, "src/main/Foo.cls"},
		{"mixed separators", `src\main/Foo.cls`, "src/main/Foo.cls"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, targeting.NormalizePath(tc.in))
		})
	}
}
