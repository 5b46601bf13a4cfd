package zodiac

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDOB(t *testing.T) {
	q, err := ParseDOB("2000-05-12")
	require.NoError(t, err)
	assert.Equal(t, Query{DOB: "2000-05-12", Year: 2000, Month: 5, Day: 12}, q)

	// 不校验日历合法性
	q, err = ParseDOB("1999-02-31")
	require.NoError(t, err)
	assert.Equal(t, 31, q.Day)
}

func TestParseDOB_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"not-a-date",
		"2000-05",
		"2000-05-12-01",
		"2000/05/12",
		"2000-May-12",
		"2000-05-",
		" 2000-05-12",
		"-2000-05-12",
	} {
		_, err := ParseDOB(in)
		require.Error(t, err, "input %q", in)
		assert.True(t, errors.Is(err, ErrInvalidDOB), "input %q", in)
		assert.True(t, IsInputError(err), "input %q", in)

		var ie *InputError
		require.True(t, errors.As(err, &ie))
		assert.Equal(t, in, ie.DOB)
	}
}

func TestInputError_Message(t *testing.T) {
	_, err := ParseDOB("2000-05")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"2000-05"`)
	assert.Contains(t, err.Error(), "want 3 parts, got 2")
	assert.False(t, IsInputError(errors.New("other")))
}

func TestResolve(t *testing.T) {
	r, err := Resolve("Ani", "2000-05-12")
	require.NoError(t, err)
	assert.Equal(t, Reading{Name: "Ani", DOB: "2000-05-12", Western: "Taurus", Chinese: "Dragon"}, r)

	_, err = Resolve("Ani", "not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDOB)
}

func TestResolve_Idempotent(t *testing.T) {
	a, err := Resolve("Ani", "1987-12-25")
	require.NoError(t, err)
	b, err := Resolve("Ani", "1987-12-25")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "there", DisplayName(""))
	assert.Equal(t, "there", DisplayName("   "))
	assert.Equal(t, "Ani", DisplayName("  Ani "))
}
