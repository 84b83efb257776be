package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := NotFound(`ROOT\SYSTEM\0000`, SearchNormal)
	require.ErrorIs(t, err, ErrDeviceNotFound)
	require.NotErrorIs(t, err, ErrTypeMismatch)

	wrapped := fmt.Errorf("resolve: %w", err)
	require.ErrorIs(t, wrapped, ErrDeviceNotFound)
	require.ErrorIs(t, wrapped, errdefs.ErrNotFound)
}

func TestError_IsMatchesCode(t *testing.T) {
	err := PlatformCall("CM_Setup_DevNode", CR_REMOVE_VETOED)

	require.ErrorIs(t, err, ErrPlatformCall)
	require.ErrorIs(t, err, &Error{Kind: ErrKindPlatform, Code: CR_REMOVE_VETOED})
	require.NotErrorIs(t, err, &Error{Kind: ErrKindPlatform, Code: CR_ACCESS_DENIED})

	var te *Error
	require.True(t, errors.As(err, &te))
	assert.Equal(t, CR_REMOVE_VETOED, te.Code)
	assert.Contains(t, err.Error(), "CR_REMOVE_VETOED")
}

func TestError_ErrdefsClasses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"type", ErrTypeMismatch, errdefs.ErrInvalidArgument},
		{"unsupported", ErrUnsupportedType, errdefs.ErrNotImplemented},
		{"platform", ErrPlatformCall, errdefs.ErrUnknown},
		{"registration", Registration(errors.New("boom")), errdefs.ErrUnavailable},
		{"state", ErrAlreadyStarted, errdefs.ErrFailedPrecondition},
		{"corrupt", ErrTruncated, errdefs.ErrDataLoss},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.target)
			require.NotErrorIs(t, tt.err, errdefs.ErrNotFound)
		})
	}
}

func TestError_UnwrapCause(t *testing.T) {
	cause := errors.New("access denied")
	err := Registration(cause)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "notification registration failed: access denied", err.Error())
}

func TestConfigRet_String(t *testing.T) {
	assert.Equal(t, "CR_SUCCESS", CR_SUCCESS.String())
	assert.Equal(t, "CR_NO_SUCH_DEVNODE", CR_NO_SUCH_DEVNODE.String())
	assert.Equal(t, "CR_0x7F", ConfigRet(0x7F).String())
	assert.True(t, CR_SUCCESS.Succeeded())
	assert.False(t, CR_FAILURE.Succeeded())
}

func TestParseSearchMode(t *testing.T) {
	tests := []struct {
		in   string
		want SearchMode
	}{
		{"", SearchNormal},
		{"Normal", SearchNormal},
		{"PHANTOM", SearchPhantom},
		{"cancel-remove", SearchCancelRemove},
		{"cancelremove", SearchCancelRemove},
	}
	for _, tt := range tests {
		got, err := ParseSearchMode(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		if tt.in != "" {
			assert.Equal(t, tt.want.String(), got.String())
		}
	}

	_, err := ParseSearchMode("bogus")
	require.Error(t, err)
}
