package console

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ttacon/chalk"

	"github.com/verte-zerg/cstrafe/internal/classifier"
)

func TestRenderPlain(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.Render(classifier.ShotClassification{Label: classifier.CounterStrafe, CSTime: classifier.Ms(45), ShotDelay: classifier.Ms(30)})
	r.Render(classifier.ShotClassification{Label: classifier.Bad})
	want := "Classification: Counter-strafe\nCS time: 45 ms\nShot delay: 30 ms\n\nClassification: Bad\n\n"
	assert.Equal(t, want, buf.String())
	assert.NoError(t, r.Err())
}

func TestRenderColor(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.SetColor(true)
	r.Render(classifier.ShotClassification{Label: classifier.Overlap, OverlapTime: classifier.Ms(12)})
	out := buf.String()
	assert.Contains(t, out, chalk.Yellow.Color("Classification: Overlap"))
	assert.Contains(t, out, "Overlap: 12 ms")
}

type failWriter struct{ n int }

func (f *failWriter) Write(p []byte) (int, error) {
	f.n++
	return 0, errors.New("closed")
}

func TestRenderStopsAfterError(t *testing.T) {
	w := &failWriter{}
	r := New(w)
	r.Render(classifier.ShotClassification{Label: classifier.Bad})
	r.Render(classifier.ShotClassification{Label: classifier.Bad})
	assert.Error(t, r.Err())
	assert.Equal(t, 1, w.n, "a single write attempt")
}
