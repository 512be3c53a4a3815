package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultLimit, NormalizeLimit(0))
	require.Equal(t, DefaultLimit, NormalizeLimit(-3))
	require.Equal(t, 10, NormalizeLimit(10))
	require.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+50))
	require.Equal(t, 11, LimitWithBuffer(10))
	require.Equal(t, DefaultLimit+1, LimitWithBuffer(0))
}

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	cursor := Cursor{
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 589000000, time.UTC),
		ID:        uuid.New(),
	}

	parsed, err := ParseCursor(EncodeCursor(cursor))
	require.NoError(t, err)
	require.NotNil(t, parsed)
	require.True(t, parsed.CreatedAt.Equal(cursor.CreatedAt))
	require.Equal(t, cursor.ID, parsed.ID)
}

func TestParseCursorEmpty(t *testing.T) {
	t.Parallel()

	parsed, err := ParseCursor("")
	require.NoError(t, err)
	require.Nil(t, parsed)

	parsed, err = ParseCursor("   ")
	require.NoError(t, err)
	require.Nil(t, parsed)
}

func TestParseCursorInvalid(t *testing.T) {
	t.Parallel()

	_, err := ParseCursor("not-base64!!")
	require.Error(t, err)

	// valid base64 but missing the separator
	_, err = ParseCursor("aGVsbG8=")
	require.Error(t, err)
}
