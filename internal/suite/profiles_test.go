package suite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTags(t *testing.T) {
	tests := []struct {
		profile string
		extra   map[string]string
		want    string
	}{
		{"", nil, "~@ignore"},
		{"smoke", nil, "@smoke && ~@ignore"},
		{"regression", nil, "@regression && ~@ignore"},
		{"login", nil, "@login && ~@ignore"},
		{"contact-us", nil, "@contact-us && ~@ignore"},
		{"contactUs", nil, "@contact-us && ~@ignore"},
		{"nightly", map[string]string{"nightly": "@regression && ~@slow"}, "@regression && ~@slow && ~@ignore"},
		{"smoke", map[string]string{"smoke": "@smoke,@sanity"}, "@smoke,@sanity && ~@ignore"},
	}
	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			got, err := ResolveTags(tt.profile, tt.extra)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		_, err := ResolveTags("nope", nil)
		require.ErrorIs(t, err, ErrUnknownProfile)
		assert.Contains(t, err.Error(), "smoke")
	})
}

func TestProfileNames(t *testing.T) {
	names := ProfileNames(map[string]string{"nightly": "@nightly", "blank": " "})
	assert.Equal(t, []string{"contact-us", "contactUs", "login", "nightly", "regression", "smoke"}, names)
}

func TestCombineTags(t *testing.T) {
	assert.Equal(t, "", CombineTags())
	assert.Equal(t, "@a", CombineTags("", " @a ", "@a"))
	assert.Equal(t, "@a && ~@ignore", CombineTags("@a", "~@ignore"))
}

func TestFormatFor(t *testing.T) {
	t.Run("ConsoleOnly", func(t *testing.T) {
		f, err := formatFor("", "", 1)
		require.NoError(t, err)
		assert.Equal(t, "pretty", f)
	})

	t.Run("WithReports", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "reports")
		f, err := formatFor("progress", dir, 1)
		require.NoError(t, err)

		parts := strings.Split(f, ",")
		require.Len(t, parts, 3)
		assert.Equal(t, "progress", parts[0])
		assert.Equal(t, "cucumber:"+filepath.Join(dir, "cucumber-report.json"), parts[1])
		assert.Equal(t, "junit:"+filepath.Join(dir, "junit-report.xml"), parts[2])

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("RetryAttemptsGetTheirOwnFiles", func(t *testing.T) {
		dir := t.TempDir()
		f, err := formatFor("pretty", dir, 2)
		require.NoError(t, err)
		assert.Contains(t, f, "cucumber-report-attempt-2.json")
	})
}
