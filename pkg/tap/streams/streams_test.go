package streams

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	t.Run("all streams are well formed", func(t *testing.T) {
		names := map[string]bool{}
		for _, stream := range All() {
			assert.NotEmpty(t, stream.Name)
			assert.NotEmpty(t, stream.Path)
			assert.NotEmpty(t, stream.PrimaryKeys, "stream %s has no primary keys", stream.Name)
			require.NotNil(t, stream.Schema, "stream %s has no schema", stream.Name)
			assert.False(t, names[stream.Name], "duplicate stream name %s", stream.Name)
			names[stream.Name] = true
		}
		assert.Len(t, names, 12)
	})

	t.Run("primary keys are declared in schemas", func(t *testing.T) {
		for _, stream := range All() {
			for _, key := range stream.PrimaryKeys {
				assert.True(t, stream.Schema.HasField(key),
					"stream %s: primary key %s missing from schema", stream.Name, key)
			}
		}
	})

	t.Run("lookup", func(t *testing.T) {
		stream := Lookup("email_reports")
		require.NotNil(t, stream)
		assert.Equal(t, "/reports/email", stream.Path)

		assert.Nil(t, Lookup("nope"))
	})

	t.Run("bulk streams share the push report shape", func(t *testing.T) {
		bulk := BulkEmailReports()
		assert.Equal(t, "bulk_email_reports", bulk.Name)
		assert.Equal(t, "/reports/bulkemail", bulk.Path)
		assert.Equal(t, EmailReports().PrimaryKeys, bulk.PrimaryKeys)

		assert.Equal(t, "/reports/bulksms", BulkSmsReports().Path)
	})
}

func TestPushReportFlattening(t *testing.T) {
	row := map[string]interface{}{
		"campaign":  map[string]interface{}{"id": float64(11), "name": "C"},
		"responder": map[string]interface{}{"id": float64(22)},
		"supplier":  map[string]interface{}{"id": float64(33)},
		"push":      map[string]interface{}{"id": float64(44)},
		"sent":      "100",
	}

	out, err := EmailReports().PostProcess(row)
	require.NoError(t, err)

	assert.Equal(t, float64(11), out["campaign_id"])
	assert.Equal(t, float64(22), out["responder_id"])
	assert.Equal(t, float64(33), out["supplier_id"])
	assert.Equal(t, float64(44), out["push_id"])
	assert.Equal(t, "100", out["sent"])
}

func TestPushReportFlatteningMissingObject(t *testing.T) {
	row := map[string]interface{}{
		"campaign": map[string]interface{}{"id": float64(11)},
	}

	_, err := SmsReports().PostProcess(row)
	assert.Error(t, err)
}

func TestPushReportFlatteningMissingField(t *testing.T) {
	row := map[string]interface{}{
		"campaign":  map[string]interface{}{"name": "no id"},
		"responder": map[string]interface{}{"id": float64(22)},
		"supplier":  map[string]interface{}{"id": float64(33)},
		"push":      map[string]interface{}{"id": float64(44)},
	}

	_, err := EmailReports().PostProcess(row)
	assert.Error(t, err)
}

func TestBuyerReportFlattening(t *testing.T) {
	t.Run("supplier optional", func(t *testing.T) {
		row := map[string]interface{}{
			"campaign": map[string]interface{}{"id": "C1"},
			"buyer":    map[string]interface{}{"id": "B1"},
		}

		out, err := BuyerReports().PostProcess(row)
		require.NoError(t, err)

		assert.Equal(t, "C1", out["campaign_id"])
		assert.Equal(t, "B1", out["buyer_id"])
		assert.Equal(t, "", out["supplier_id"])
	})

	t.Run("supplier present", func(t *testing.T) {
		row := map[string]interface{}{
			"campaign": map[string]interface{}{"id": "C1"},
			"buyer":    map[string]interface{}{"id": "B1"},
			"supplier": map[string]interface{}{"id": "S1"},
		}

		out, err := BuyerReports().PostProcess(row)
		require.NoError(t, err)
		assert.Equal(t, "S1", out["supplier_id"])
	})

	t.Run("supplier present without id fails", func(t *testing.T) {
		row := map[string]interface{}{
			"campaign": map[string]interface{}{"id": "C1"},
			"buyer":    map[string]interface{}{"id": "B1"},
			"supplier": map[string]interface{}{"name": "S"},
		}

		_, err := BuyerReports().PostProcess(row)
		assert.Error(t, err)
	})

	t.Run("missing buyer fails", func(t *testing.T) {
		row := map[string]interface{}{
			"campaign": map[string]interface{}{"id": "C1"},
		}

		_, err := BuyerReports().PostProcess(row)
		assert.Error(t, err)
	})
}

func TestCampaignReportFlattening(t *testing.T) {
	row := map[string]interface{}{
		"campaign": map[string]interface{}{"id": "C1"},
		"date":     "2024-01-01",
	}

	out, err := CampaignReports().PostProcess(row)
	require.NoError(t, err)
	assert.Equal(t, "C1", out["campaign_id"])
}

func TestRecordsPaths(t *testing.T) {
	assert.Equal(t, "$[*]", Campaigns().RecordsPath)
	assert.Equal(t, "$.deliveries[*]", Deliveries().RecordsPath)
	assert.Equal(t, "$.buyers[*]", Buyers().RecordsPath)
	assert.Empty(t, Responders().RecordsPath)
	assert.Empty(t, EmailReports().RecordsPath)
}
