package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drennan/optmix/internal/figure"
	"github.com/drennan/optmix/internal/optics"
	"github.com/drennan/optmix/internal/recipe"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "render failed")))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))

	wrapped := fmt.Errorf("context: %w", NewExitError(ExitCommandError, "inner"))
	assert.Equal(t, ExitCommandError, GetExitCode(wrapped))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "UNSUPPORTED_RULE", errorCode(optics.NewUnsupportedRuleError("NotARule")))
	assert.Equal(t, "DATA_UNAVAILABLE", errorCode(optics.NewDataUnavailableError("unobtainium", nil)))
	assert.Equal(t, "PATH_NOT_FOUND", errorCode(&figure.Error{Code: figure.ErrCodePathNotFound, Path: "figures"}))
	assert.Equal(t, "BAD_ICE_MASS", errorCode(recipe.ValidateIceMass(2)))
	assert.Equal(t, errCodeGeneric, errorCode(errors.New("plain")))

	wrapped := fmt.Errorf("building: %w", optics.NewUnsupportedRuleError("NotARule"))
	assert.Equal(t, "UNSUPPORTED_RULE", errorCode(wrapped))
}

func TestFormatterSuccessJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Success(map[string]int{"points": 200}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Nil(t, resp.Error)
}

func TestFormatterErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &buf}

	require.NoError(t, f.Error("UNSUPPORTED_RULE", "unknown mixing rule", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNSUPPORTED_RULE", resp.Error.Code)
}

func TestFormatterErrorText(t *testing.T) {
	var buf bytes.Buffer
	f := &OutputFormatter{Format: "text", Writer: &buf}

	require.NoError(t, f.Error("PATH_NOT_FOUND", "no such directory", nil))
	assert.Equal(t, "Error [PATH_NOT_FOUND]: no such directory\n", buf.String())
}

func TestVerboseLogGoesToErrWriter(t *testing.T) {
	var out, errOut bytes.Buffer
	f := &OutputFormatter{Format: "json", Writer: &out, ErrWriter: &errOut, Verbose: true}

	f.VerboseLog("sampled %d wavelengths", 200)
	assert.Empty(t, out.String())
	assert.Equal(t, "sampled 200 wavelengths\n", errOut.String())

	f.Verbose = false
	errOut.Reset()
	f.VerboseLog("quiet")
	assert.Empty(t, errOut.String())
}
