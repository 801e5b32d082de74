package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 85, c.Len())

	ids := make(map[string]bool)
	for _, tc := range c.Cases() {
		assert.False(t, ids[tc.ID], "duplicate case %s", tc.ID)
		ids[tc.ID] = true
	}
	assert.True(t, ids["rv64ui-p-add"])
	assert.True(t, ids["rv64ui-p-fence_i"])
	assert.False(t, ids["rv64ui-p-ma_data"])

	assert.Equal(t, []domain.Extension{
		domain.ExtensionI, domain.ExtensionZifencei, domain.ExtensionA, domain.ExtensionM,
	}, c.Groups())
}

func TestFilter(t *testing.T) {
	c := Default()

	m := c.Filter(domain.ExtensionM)
	assert.Equal(t, 13, m.Len())
	for _, tc := range m.Cases() {
		assert.Equal(t, domain.ExtensionM, tc.Group)
	}

	assert.Equal(t, 1, c.Filter(domain.ExtensionZifencei).Len())
	assert.Equal(t, c.Len(), c.Filter().Len())
	assert.Equal(t, 19+13, c.Filter(domain.ExtensionA, domain.ExtensionM).Len())
}

func TestCasesIsACopy(t *testing.T) {
	c := Default()
	cases := c.Cases()
	cases[0].ID = "mutated"
	assert.Equal(t, "rv64ui-p-add", c.Cases()[0].ID)
}

func TestParseGroups(t *testing.T) {
	c := Default()

	groups, err := c.ParseGroups("i, zifencei,M")
	require.NoError(t, err)
	assert.Equal(t, []domain.Extension{domain.ExtensionI, domain.ExtensionZifencei, domain.ExtensionM}, groups)

	groups, err = c.ParseGroups("")
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = c.ParseGroups("I,F")
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}
