package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestIndexSpecsCoverEveryCollectionOnce(t *testing.T) {
	seen := make(map[string]bool)
	for _, ci := range indexSpecs() {
		assert.False(t, seen[ci.collection], "duplicate entry for %s", ci.collection)
		seen[ci.collection] = true

		require.NotEmpty(t, ci.models, ci.collection)
		first := ci.models[0]
		assert.Equal(t, bson.D{{Key: "id", Value: 1}}, first.Keys, "%s must be keyed by id first", ci.collection)
		require.NotNil(t, first.Options)
		require.NotNil(t, first.Options.Unique)
		assert.True(t, *first.Options.Unique)
	}
	assert.Len(t, seen, 19)
	assert.NotContains(t, seen, "counters")
}

func TestPendingReportIndexIsPartial(t *testing.T) {
	for _, ci := range indexSpecs() {
		if ci.collection != "reports" {
			continue
		}
		for _, m := range ci.models {
			if m.Options == nil || m.Options.Name == nil || *m.Options.Name != "uniq_pending_report" {
				continue
			}
			assert.True(t, *m.Options.Unique)
			assert.Equal(t, bson.M{"status": "PENDING"}, m.Options.PartialFilterExpression)
			return
		}
	}
	t.Fatal("pending report index missing")
}
