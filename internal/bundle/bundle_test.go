package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestBundle(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zhfst")
	require.NoError(t, os.WriteFile(path, buildTestZhfst(), 0o644))
	return path
}

func TestLoadSelectsDefaultPair(t *testing.T) {
	b, err := Load(writeTestBundle(t))
	require.NoError(t, err)
	require.True(t, b.canSpell, "expected an acceptor-backed bundle to be able to spell")
	require.True(t, b.CanCorrect(), "expected the default errmodel to be picked up, enabling correction")
	require.Equal(t, "en", b.Metadata.Locale)
}

func TestSpellAcceptsAndRejects(t *testing.T) {
	b, err := Load(writeTestBundle(t))
	require.NoError(t, err)
	require.True(t, b.Spell("ab"))
	require.False(t, b.Spell("xy"), "expected an out-of-alphabet word to be rejected")
}

func TestSuggestReturnsExactMatchThroughIdentityErrorModel(t *testing.T) {
	b, err := Load(writeTestBundle(t))
	require.NoError(t, err)
	results := b.Suggest("ab")
	require.Len(t, results, 1)
	require.Equal(t, "ab", results[0].Text)
}

func TestAnalyseReturnsAcceptedWord(t *testing.T) {
	b, err := Load(writeTestBundle(t))
	require.NoError(t, err)
	results := b.Analyse("ab", false)
	require.Len(t, results, 1)
	require.Equal(t, "ab", results[0].Text)
}

func TestSelectPairNoAutomataIsAnError(t *testing.T) {
	_, _, err := selectPair(nil, nil)
	require.Error(t, err)
}

func TestLoadRejectsAMalformedArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "not-a-zip.zhfst")
	require.NoError(t, os.WriteFile(path, []byte("not a zip file"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}
