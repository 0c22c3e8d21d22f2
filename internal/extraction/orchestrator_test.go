package extraction

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daehyun/grant-agent/internal/types"
)

type fakeStrategy struct {
	name      string
	available bool
	expensive bool
	result    *types.ExtractionResult
	err       error
	calls     int
}

func (f *fakeStrategy) Name() string    { return f.name }
func (f *fakeStrategy) Available() bool { return f.available }
func (f *fakeStrategy) Expensive() bool { return f.expensive }

func (f *fakeStrategy) Extract(_ context.Context, _ *Source) (*types.ExtractionResult, error) {
	f.calls++
	return f.result, f.err
}

func success(method types.ExtractionMethod, confidence float64) *types.ExtractionResult {
	return &types.ExtractionResult{
		Success:    true,
		Method:     method,
		Text:       "추출된 본문",
		Confidence: confidence,
	}
}

func TestExtract_FirstSuccessWins(t *testing.T) {
	first := &fakeStrategy{name: "first", available: true, result: success(types.MethodTemplate, 0.9)}
	second := &fakeStrategy{name: "second", available: true, result: success(types.MethodOfficeSuite, 0.8)}

	o := NewOrchestratorWith(first, second)
	result, err := o.Extract(context.Background(), &Source{Name: "form.hwp", Data: []byte("x")})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, types.MethodTemplate, result.Method)
	assert.Equal(t, "form.hwp", result.FileName)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestExtract_FailureFallsThrough(t *testing.T) {
	first := &fakeStrategy{name: "first", available: true, err: errors.New("tool crashed")}
	second := &fakeStrategy{name: "second", available: true, result: success(types.MethodOfficeSuite, 0.8)}

	o := NewOrchestratorWith(first, second)
	result, err := o.Extract(context.Background(), &Source{Name: "form.hwp", Data: []byte("x")})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, types.MethodOfficeSuite, result.Method)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
}

func TestExtract_UnavailableSkipped(t *testing.T) {
	offline := &fakeStrategy{name: "offline", available: false}
	online := &fakeStrategy{name: "online", available: true, result: success(types.MethodBinarySalvage, 0.5)}

	o := NewOrchestratorWith(offline, online)
	result, err := o.Extract(context.Background(), &Source{Name: "form.hwp", Data: []byte("x")})

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, offline.calls)
}

func TestExtract_LargeFileSkipsExpensive(t *testing.T) {
	expensive := &fakeStrategy{name: "online-service", available: true, expensive: true,
		result: success(types.MethodCloudConvert, 0.85)}
	cheap := &fakeStrategy{name: "salvage", available: true,
		result: success(types.MethodBinarySalvage, 0.5)}

	data := bytes.Repeat([]byte("a"), LargeFileThreshold+1)
	o := NewOrchestratorWith(expensive, cheap)
	result, err := o.Extract(context.Background(), &Source{Name: "big.hwp", Data: data})

	require.NoError(t, err)
	assert.Equal(t, types.MethodBinarySalvage, result.Method)
	assert.Equal(t, 0, expensive.calls)
	assert.Equal(t, 1, cheap.calls)
}

func TestExtract_SmallFileUsesExpensive(t *testing.T) {
	expensive := &fakeStrategy{name: "online-service", available: true, expensive: true,
		result: success(types.MethodCloudConvert, 0.85)}

	o := NewOrchestratorWith(expensive)
	result, err := o.Extract(context.Background(), &Source{Name: "small.hwp", Data: []byte("x")})

	require.NoError(t, err)
	assert.Equal(t, types.MethodCloudConvert, result.Method)
}

func TestExtract_AllStrategiesFail(t *testing.T) {
	first := &fakeStrategy{name: "first", available: true, err: errors.New("boom")}
	second := &fakeStrategy{name: "second", available: true, result: &types.ExtractionResult{Success: false}}

	o := NewOrchestratorWith(first, second)
	result, err := o.Extract(context.Background(), &Source{Name: "form.hwp", Data: []byte("x")})

	// Exhaustion is a representable outcome, not an error.
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "form.hwp", result.FileName)
	assert.Contains(t, result.Error, "HWP 파일에서 텍스트를 추출할 수 없습니다")
	assert.Contains(t, result.Error, "first: boom")
	assert.Contains(t, result.Error, "second: no usable text")
}

func TestExtract_EmptyInput(t *testing.T) {
	o := NewOrchestratorWith()

	_, err := o.Extract(context.Background(), &Source{Name: "empty.hwp"})
	assert.Error(t, err)

	_, err = o.Extract(context.Background(), nil)
	assert.Error(t, err)
}

func TestDefaultChainOrder(t *testing.T) {
	o := NewOrchestrator()

	var names []string
	for _, s := range o.strategies {
		names = append(names, s.Name())
	}

	assert.Equal(t, []string{"hwp5txt", "libreoffice", "libreoffice-html", "cloudconvert", "convertio", "binary-salvage"}, names)
	assert.Equal(t, "binary-salvage", names[len(names)-1], "salvage must be terminal: %s", strings.Join(names, ","))
}

func TestNewConfiguredOrchestrator_AppliesOverrides(t *testing.T) {
	o := NewConfiguredOrchestrator(ChainConfig{
		HWP5Binary:      "/opt/pyhwp/hwp5txt",
		OfficeBinary:    "/opt/libreoffice/soffice",
		CloudConvertKey: "cc-key",
		ConvertioKey:    "cv-key",
	})

	assert.Equal(t, "/opt/pyhwp/hwp5txt", o.strategies[0].(*HWP5Strategy).Binary)
	assert.Equal(t, "/opt/libreoffice/soffice", o.strategies[1].(*OfficeStrategy).Binary)
	assert.Equal(t, "/opt/libreoffice/soffice", o.strategies[2].(*HTMLStrategy).Binary)
	assert.Equal(t, "cc-key", o.strategies[3].(*CloudConvertStrategy).APIKey)
	assert.Equal(t, "cv-key", o.strategies[4].(*ConvertioStrategy).APIKey)
}

func TestNewConfiguredOrchestrator_ZeroKeepsDefaults(t *testing.T) {
	o := NewConfiguredOrchestrator(ChainConfig{})

	assert.Equal(t, "hwp5txt", o.strategies[0].(*HWP5Strategy).Binary)
	assert.Equal(t, "libreoffice", o.strategies[1].(*OfficeStrategy).Binary)
}
