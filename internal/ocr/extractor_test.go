package ocr

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine scripts one engine's behavior for fallback tests.
type fakeEngine struct {
	name      string
	available bool
	result    Result
	err       error
	calls     int
}

func (f *fakeEngine) Name() string                   { return f.name }
func (f *fakeEngine) Available(context.Context) bool { return f.available }
func (f *fakeEngine) Recognize(context.Context, image.Image, string) (Result, error) {
	f.calls++
	return f.result, f.err
}

func testImage() image.Image {
	return image.NewGray(image.Rect(0, 0, 8, 8))
}

func TestExtract_AutoPrimaryGoodResult(t *testing.T) {
	primary := &fakeEngine{name: "tesseract", available: true,
		result: Result{Text: "Vehicles: 3", Confidence: 0.9, Engine: "tesseract"}}
	secondary := &fakeEngine{name: "gosseract", available: true}
	e := NewExtractorWithEngines(testLogger(), primary, secondary)

	res, err := e.Extract(context.Background(), testImage(), "eng", "auto")
	require.NoError(t, err)
	assert.Equal(t, "tesseract", res.Engine)
	assert.Equal(t, 0, secondary.calls)
}

func TestExtract_AutoLowConfidenceFallsBack(t *testing.T) {
	primary := &fakeEngine{name: "tesseract", available: true,
		result: Result{Text: "garbage", Confidence: 0.2, Engine: "tesseract"}}
	secondary := &fakeEngine{name: "gosseract", available: true,
		result: Result{Text: "Vehicles: 3", Confidence: 0.1, Engine: "gosseract"}}
	e := NewExtractorWithEngines(testLogger(), primary, secondary)

	res, err := e.Extract(context.Background(), testImage(), "eng", "auto")
	require.NoError(t, err)
	// The last engine in the chain is accepted however weak its output.
	assert.Equal(t, "gosseract", res.Engine)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, secondary.calls)
}

func TestExtract_AutoPrimaryUnavailable(t *testing.T) {
	primary := &fakeEngine{name: "tesseract", available: false}
	secondary := &fakeEngine{name: "gosseract", available: true,
		result: Result{Text: "Vehicles: 3", Confidence: 0.6, Engine: "gosseract"}}
	e := NewExtractorWithEngines(testLogger(), primary, secondary)

	res, err := e.Extract(context.Background(), testImage(), "eng", "auto")
	require.NoError(t, err)
	assert.Equal(t, "gosseract", res.Engine)
	assert.Equal(t, 0, primary.calls)
}

func TestExtract_AutoPrimaryErrorFallsBack(t *testing.T) {
	primary := &fakeEngine{name: "tesseract", available: true, err: errors.New("crash")}
	secondary := &fakeEngine{name: "gosseract", available: true,
		result: Result{Text: "ok", Confidence: 0.5, Engine: "gosseract"}}
	e := NewExtractorWithEngines(testLogger(), primary, secondary)

	res, err := e.Extract(context.Background(), testImage(), "eng", "auto")
	require.NoError(t, err)
	assert.Equal(t, "gosseract", res.Engine)
}

func TestExtract_AutoAllEnginesOut(t *testing.T) {
	primary := &fakeEngine{name: "tesseract", available: false}
	secondary := &fakeEngine{name: "gosseract", available: true, err: errors.New("no lib")}
	e := NewExtractorWithEngines(testLogger(), primary, secondary)

	res, err := e.Extract(context.Background(), testImage(), "eng", "auto")
	require.NoError(t, err)
	assert.Equal(t, "none", res.Engine)
	assert.Zero(t, res.Confidence)
	assert.Empty(t, res.Text)
	assert.NotNil(t, res.LineConfidences)
}

func TestExtract_NamedEngineOnly(t *testing.T) {
	primary := &fakeEngine{name: "tesseract", available: true,
		result: Result{Text: "x", Confidence: 0.9, Engine: "tesseract"}}
	secondary := &fakeEngine{name: "gosseract", available: true,
		result: Result{Text: "y", Confidence: 0.1, Engine: "gosseract"}}
	e := NewExtractorWithEngines(testLogger(), primary, secondary)

	res, err := e.Extract(context.Background(), testImage(), "eng", "gosseract")
	require.NoError(t, err)
	assert.Equal(t, "gosseract", res.Engine)
	assert.Equal(t, 0, primary.calls)
}

func TestExtract_NamedEngineUnavailableDegrades(t *testing.T) {
	eng := &fakeEngine{name: "tesseract", available: false}
	e := NewExtractorWithEngines(testLogger(), eng)

	res, err := e.Extract(context.Background(), testImage(), "eng", "tesseract")
	require.NoError(t, err)
	assert.Equal(t, "tesseract", res.Engine)
	assert.Zero(t, res.Confidence)
}

func TestExtract_UnknownEngineIsAnError(t *testing.T) {
	e := NewExtractorWithEngines(testLogger(), &fakeEngine{name: "tesseract", available: true})

	_, err := e.Extract(context.Background(), testImage(), "eng", "easyocr")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "easyocr")
}

func TestClusterByTop_GroupsWordsIntoRows(t *testing.T) {
	words := []word{
		{text: "Dependents:", conf: 0.9, top: 12},
		{text: "Adult", conf: 0.9, top: 10},
		{text: "2", conf: 0.8, top: 14},
		{text: "Child", conf: 0.7, top: 52},
		{text: "Dependents:", conf: 0.7, top: 55},
		{text: "1", conf: 0.7, top: 50},
	}

	clusters := clusterByTop(words)
	require.Len(t, clusters, 2)
	// Stable sort by top keeps within-row insertion order on ties, so text
	// order follows the detection order inside each row.
	assert.Len(t, clusters[0].words, 3)
	assert.Len(t, clusters[1].words, 3)
}

func TestClusterByTop_FarApartWordsSplit(t *testing.T) {
	words := []word{
		{text: "a", top: 0},
		{text: "b", top: clusterThreshold},     // within threshold of anchor 0
		{text: "c", top: clusterThreshold + 1}, // beyond: new row
	}

	clusters := clusterByTop(words)
	require.Len(t, clusters, 2)
	assert.Len(t, clusters[0].words, 2)
	assert.Len(t, clusters[1].words, 1)
}
