package safety

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromFiles(t *testing.T) {
	dir := t.TempDir()

	policyPath := filepath.Join(dir, "policies.json")
	require.NoError(t, os.WriteFile(policyPath, []byte(`{
		"perf-stress": {"block": true, "template": "refuse_generic"}
	}`), 0o600))

	templatesPath := filepath.Join(dir, "templates.json")
	require.NoError(t, os.WriteFile(templatesPath, []byte(`{
		"refuse_generic": {
			"en": ["no can do"],
			"vi": ["không thể"]
		}
	}`), 0o600))

	opts, err := OptionsFromFiles(policyPath, templatesPath, "MARKER")
	require.NoError(t, err)
	assert.Equal(t, "MARKER", opts.Canary)
	assert.Equal(t, Policy{Block: true, Template: TemplateRefuseGeneric}, opts.Policies[CategoryPerfStress])

	e, err := New(opts)
	require.NoError(t, err)

	d := e.ApplyPolicies("run a load test")
	assert.True(t, d.Blocked)
	assert.Equal(t, "no can do", e.SafeReply(CategoryPerfStress, LocaleEN, ReplyContext{}))
}

func TestOptionsFromFilesEmptyPaths(t *testing.T) {
	opts, err := OptionsFromFiles("", "", "")
	require.NoError(t, err)
	assert.Nil(t, opts.Policies)
	assert.Nil(t, opts.Templates)
}

func TestOptionsFromFilesBadJSON(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0o600))

	_, err := OptionsFromFiles(bad, "", "")
	assert.Error(t, err)

	_, err = OptionsFromFiles("", bad, "")
	assert.Error(t, err)

	_, err = OptionsFromFiles(filepath.Join(dir, "missing.json"), "", "")
	assert.Error(t, err)
}
