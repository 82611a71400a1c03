package termio_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcorbin/gobasic/internal/termio"
)

func TestExpand(t *testing.T) {
	assert.Equal(t, "RUN\r\x03", termio.Expand("RUN<CR><ETX>"))
	assert.Equal(t, "IF A<>B THEN 10", termio.Expand("IF A<>B THEN 10"))
	assert.Equal(t, "X<Y OR Y>Z\x7f", termio.Expand("X<Y OR Y>Z<DEL>"))
	assert.Equal(t, `READY\r\n<ETX><DEL>`, termio.Quote("READY\r\n\x03\x7f"))
	assert.Equal(t, "^C", termio.CaretForm(termio.ETX))
	assert.Equal(t, "<BS>", termio.Name(termio.BS))
}

func TestTee(t *testing.T) {
	var a, b bytes.Buffer
	tee := termio.NewTee(nil, termio.NewWriteFlusher(&a), termio.NewTee(termio.NewWriteFlusher(&b)))
	_, err := io.WriteString(tee, "hello")
	require.NoError(t, err)
	require.NoError(t, tee.Flush())
	assert.Equal(t, "hello", a.String())
	assert.Equal(t, "hello", b.String())

	_, single := termio.NewTee(termio.NewWriteFlusher(&a)).(termio.Tee)
	assert.False(t, single, "a lone member is not wrapped")
}

func drain(t *testing.T, s *termio.Stream) string {
	var sb strings.Builder
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for {
		require.NoError(t, s.WaitInput(ctx))
		n, err := s.Available()
		if err == io.EOF {
			return sb.String()
		}
		require.NoError(t, err)
		for ; n > 0; n-- {
			b, err := s.ReadByte()
			require.NoError(t, err)
			sb.WriteByte(b)
		}
	}
}

func TestStream(t *testing.T) {
	var out bytes.Buffer
	s := termio.NewStream(&out)

	_, err := s.ReadByte()
	assert.ErrorIs(t, err, io.ErrNoProgress, "nothing pumped yet")

	go s.Pump(context.Background(), strings.NewReader("10 PRINT 1\r\nRUN\r\n"))
	assert.Equal(t, "10 PRINT 1\r\nRUN\r\n", drain(t, s))

	_, err = s.ReadByte()
	assert.Equal(t, io.EOF, err)

	require.NoError(t, s.WriteByte('>'))
	require.NoError(t, s.Flush())
	assert.Equal(t, ">", out.String())
}

func TestStream_eofByte(t *testing.T) {
	s := termio.NewStream(io.Discard)
	s.EOF = termio.EOT
	require.NoError(t, s.Pump(context.Background(), strings.NewReader("LIST\r\x04ignored")))
	assert.Equal(t, "LIST\r", drain(t, s))
}
