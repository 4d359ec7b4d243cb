package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLCM_Text(t *testing.T) {
	out, err := execute(NewLCMCommand(testOpts("text")), "3733", "3793", "3947", "4057")
	require.NoError(t, err)
	assert.Equal(t, "226732077152351\n", out)
}

func TestLCM_JSON(t *testing.T) {
	out, err := execute(NewLCMCommand(testOpts("json")), "2", "4")
	require.NoError(t, err)

	var result LCMResult
	resp := decodeResponse(t, out, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, LCMResult{Periods: []uint64{2, 4}, LCM: 4}, result)
}

func TestLCM_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"not_a_number", []string{"3", "abc"}, ErrCodeInvalidArg},
		{"zero_period", []string{"0", "5"}, ErrCodeAnalysis},
		{"overflow", []string{"4294967296", "4294967297"}, ErrCodeAnalysis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(NewLCMCommand(testOpts("json")), tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decodeResponse(t, out, nil)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
