package view_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"product-detail-bff/internal/models"
	"product-detail-bff/internal/view"
)

// Golden files pin the exact view-model JSON the frontend consumes.
// Regenerate with: go test ./internal/view -update
func TestDetailViewGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	assertGolden := func(t *testing.T, name string, v models.DetailView) {
		t.Helper()
		data, err := json.MarshalIndent(v, "", "  ")
		require.NoError(t, err)
		g.Assert(t, name, data)
	}

	t.Run("Ready", func(t *testing.T) {
		c := view.NewController(staticFetcher(fixtureProduct()), "/products")
		c.Show(t.Context(), "1")
		c.NextImage()
		v := c.ToggleReviews()

		assertGolden(t, "detail_ready", v)
	})

	t.Run("Failed", func(t *testing.T) {
		c := view.NewController(failingFetcher(errors.New("upstream down")), "/products")
		v := c.Show(t.Context(), "1")

		assertGolden(t, "detail_failed", v)
	})
}
