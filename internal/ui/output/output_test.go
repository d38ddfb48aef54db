package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/plink/internal/ui/output"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile())

	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestNew(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)
	_, _ = out.WriteString(out.String("plain").Foreground(termenv.ANSIRed).String())
	assert.Equal(t, "plain", buf.String())
}

func TestNew_Nil(t *testing.T) {
	assert.NotNil(t, output.New(nil))
}
