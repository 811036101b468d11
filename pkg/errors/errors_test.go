package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/piconlink/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := errors.New(errors.ErrDefsOpen, "cannot open defs file")
	assert.Equal(t, "[DEFS_OPEN] cannot open defs file", err.Error())
	assert.Equal(t, errors.ErrDefsOpen, err.Code)
}

func TestWrap(t *testing.T) {
	inner := stderrors.New("permission denied")
	err := errors.Wrap(inner, errors.ErrLinkCreate, "symlink failed")

	require.NotNil(t, err)
	assert.Equal(t, "[LINK_CREATE] symlink failed: permission denied", err.Error())
	assert.Equal(t, inner, stderrors.Unwrap(err))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, errors.Wrap(nil, errors.ErrLinkCreate, "ignored"))
	assert.Nil(t, errors.Wrapf(nil, errors.ErrLinkCreate, "ignored %d", 1))
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrRecordFields, "too many fields in %q", "a b c d")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRecordFields))
	assert.False(t, errors.IsErrorCode(err, errors.ErrRecordParse))
	assert.False(t, errors.IsErrorCode(stderrors.New("plain"), errors.ErrRecordFields))
}

func TestGetErrorCode(t *testing.T) {
	err := errors.New(errors.ErrInventoryScan, "scan failed")
	assert.Equal(t, errors.ErrInventoryScan, errors.GetErrorCode(err))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := errors.New(errors.ErrLinkCreate, "link failed").
		WithDetail("target", "1_0_1_4A_6_85_0_0_0_0.png")
	assert.Equal(t, "1_0_1_4A_6_85_0_0_0_0.png", err.Details["target"])
}

func TestErrorsIsMatchesCode(t *testing.T) {
	err := errors.Wrap(stderrors.New("boom"), errors.ErrLinkScan, "scan")
	assert.True(t, stderrors.Is(err, errors.New(errors.ErrLinkScan, "other message")))
}
