package line

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_StripsTerminator(t *testing.T) {
	r := NewReader(strings.NewReader("alpha\nbeta\n"))

	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "alpha", got)

	got, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "beta", got)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_FinalLineWithoutTerminator(t *testing.T) {
	r := NewReader(strings.NewReader("alpha\nbeta"))

	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "alpha", got)

	got, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "beta", got, "an unterminated final line is still a record")

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReader_CarriageReturnIsData(t *testing.T) {
	r := NewReader(strings.NewReader("alpha\r\n"))

	got, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "alpha\r", got)
}

func TestReadAll_PreservesOrder(t *testing.T) {
	r := NewReader(strings.NewReader("c\na\nb\n"))

	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, got)
}

func TestReadAll_Empty(t *testing.T) {
	r := NewReader(strings.NewReader(""))

	got, err := r.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriter_TerminatesEveryLine(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Emit("alpha"))
	require.NoError(t, w.Emit(""))
	require.NoError(t, w.Emit("beta"))
	require.NoError(t, w.Flush())

	assert.Equal(t, "alpha\n\nbeta\n", buf.String())
}

func TestRoundTrip_NormalizesTerminator(t *testing.T) {
	r := NewReader(strings.NewReader("alpha\nbeta"))
	var buf bytes.Buffer
	w := NewWriter(&buf)

	lines, err := r.ReadAll()
	require.NoError(t, err)
	for _, v := range lines {
		require.NoError(t, w.Emit(v))
	}
	require.NoError(t, w.Flush())

	assert.Equal(t, "alpha\nbeta\n", buf.String())
}
