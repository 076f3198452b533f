package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildError_Error_IncludesCategoryAndSeverity(t *testing.T) {
	err := New(CategoryConfig, SeverityFatal, "site config directory not found")
	require.Contains(t, err.Error(), "config")
	require.Contains(t, err.Error(), "fatal")
	require.Contains(t, err.Error(), "site config directory not found")
}

func TestBuildError_Unwrap_ExposesCause(t *testing.T) {
	cause := stderrors.New("underlying")
	err := Wrap(cause, CategoryContent, SeverityError, "front matter parse failed")
	require.True(t, stderrors.Is(err, cause))
}

func TestBuildError_WithContext_AppearsInMessage(t *testing.T) {
	err := DuplicateURL("about", "pages", "About")
	require.Contains(t, err.Error(), "about")
	require.Contains(t, err.Error(), "pages")
}

func TestAggregate_Empty_ErrReturnsNil(t *testing.T) {
	agg := NewAggregate("document processing")
	require.NoError(t, agg.Err())
	require.Zero(t, agg.Len())
}

func TestAggregate_NonEmpty_EnumeratesAllErrors(t *testing.T) {
	agg := NewAggregate("document processing")
	agg.Add(MissingURL("posts", "First"))
	agg.Add(nil) // ignored
	agg.Addf("processing %s: %v", "second.md", stderrors.New("boom"))

	err := agg.Err()
	require.Error(t, err)
	require.Equal(t, 2, agg.Len())
	require.Contains(t, err.Error(), "2 error(s)")
	require.Contains(t, err.Error(), "[1]")
	require.Contains(t, err.Error(), "[2]")
	require.Contains(t, err.Error(), "second.md")
}

func TestAggregate_Unwrap_SupportsErrorsIs(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	agg := NewAggregate("phase")
	agg.Add(sentinel)
	require.True(t, stderrors.Is(agg.Err(), sentinel))
}
