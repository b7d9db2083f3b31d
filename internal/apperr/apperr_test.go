package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"configuration", Configuration("no key"), KindConfiguration},
		{"invalid parameter", InvalidParameter("bad %s", "year"), KindInvalidParameter},
		{"upstream", Upstream("failed", cause), KindUpstream},
		{"unknown tool", UnknownTool("nope"), KindUnknownTool},
		{"internal", Internal("encode request", cause), KindInternal},
		{"wrapped upstream", fmt.Errorf("month 3: %w", Upstream("failed", cause)), KindUpstream},
		{"plain error", cause, KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.True(t, Is(tt.err, tt.want))
		})
	}
}

func TestUpstreamHidesCause(t *testing.T) {
	cause := errors.New("HTTP 500: stack trace from upstream")
	err := Upstream("국세청 API 요청에 실패했습니다.", cause)

	assert.Equal(t, "국세청 API 요청에 실패했습니다.", err.Error())
	require.ErrorIs(t, err, cause)
}

func TestInvalidParameterFormats(t *testing.T) {
	err := InvalidParameter("사업자등록번호[%d]: 문자열이어야 합니다.", 3)
	assert.Equal(t, "사업자등록번호[3]: 문자열이어야 합니다.", err.Error())
}

func TestUnknownToolMessage(t *testing.T) {
	assert.Equal(t, "알 수 없는 도구입니다: get_weather", UnknownTool("get_weather").Error())
	assert.False(t, Is(nil, KindInternal))
}
