package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsCommand_NoCredential(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DATA_GO_KR_API_KEY", "")
	t.Setenv("NTS_API_KEY", "")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tools"})
	require.NoError(t, cmd.ExecuteContext(t.Context()))

	text := out.String()
	assert.Contains(t, text, "check_business_status\n")
	assert.Contains(t, text, "get_korean_holidays\n")
	assert.Contains(t, text, "validate_business_registration\n")
	assert.Contains(t, text, "  - business_numbers (required)")
	assert.Contains(t, text, "  - businesses (required)")
	assert.Contains(t, text, "  - year (required)")
}

func TestServeCommand_InvalidTransport(t *testing.T) {
	t.Chdir(t.TempDir())

	cmd := newRootCmd()
	cmd.SetArgs([]string{"serve", "--transport", "carrier-pigeon"})
	err := cmd.ExecuteContext(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown transport")
}
