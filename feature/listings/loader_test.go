package listings

import (
	"testing"

	"listing-manager/core/schema"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	feature := NewFeature(new(mockEngine), schema.NewCatalog(nil), zap.NewNop())

	assert.Equal(t, "listings", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}
