package tap

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildParams(t *testing.T) {
	t.Run("key-only stream", func(t *testing.T) {
		cfg := reportConfig(t)
		stream := &Stream{Name: "plain"}

		params, err := stream.BuildParams(cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, url.Values{"key": []string{"test-key"}}, params)
	})

	t.Run("stream params plus key", func(t *testing.T) {
		cfg := reportConfig(t)
		stream := &Stream{Name: "reports", Params: ReportParams}

		params, err := stream.BuildParams(cfg, nil)
		require.NoError(t, err)

		assert.Equal(t, "test-key", params.Get("key"))
		assert.Equal(t, "all", params.Get("campaignId"))
	})

	t.Run("token merges last and overrides", func(t *testing.T) {
		cfg := reportConfig(t)
		stream := &Stream{Name: "reports", Params: ReportParams}

		params, err := stream.BuildParams(cfg, Token{"page": "2", "from": "2024-06-01T00:00:00Z"})
		require.NoError(t, err)

		assert.Equal(t, "2", params.Get("page"))
		assert.Equal(t, "2024-06-01T00:00:00Z", params.Get("from"))
		assert.Equal(t, "test-key", params.Get("key"))
	})
}

func TestStreamRecordsPath(t *testing.T) {
	assert.Equal(t, DefaultRecordsPath, (&Stream{}).recordsPath())
	assert.Equal(t, "$[*]", (&Stream{RecordsPath: "$[*]"}).recordsPath())
}

func TestPostProcessDefault(t *testing.T) {
	row := map[string]interface{}{"id": 1}
	out, err := (&Stream{}).postProcess(row)
	require.NoError(t, err)
	assert.Equal(t, row, out)
}
