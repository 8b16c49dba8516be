package payouts

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	managerA = uuid.MustParse("11111111-2222-4333-8444-555566667777")
	managerB = uuid.MustParse("88888888-9999-4aaa-8bbb-ccccddddeeee")
)

func TestComputeSplit(t *testing.T) {
	t.Run("percent of own revenue plus converted fixed part", func(t *testing.T) {
		lines := ComputeSplit([]ManagerRevenue{
			{ManagerID: managerA, Revenue: 2000},
			{ManagerID: managerB, Revenue: 500},
		}, 30, 150, 0.92)

		require.Len(t, lines, 2)

		// 30% of 2000 plus 150 USD at 0.92.
		assert.Equal(t, 600.0, lines[0].PercentPart)
		assert.Equal(t, 138.0, lines[0].FixedPart)
		assert.Equal(t, 738.0, lines[0].Total)

		assert.Equal(t, 150.0, lines[1].PercentPart)
		assert.Equal(t, 138.0, lines[1].FixedPart)
		assert.Equal(t, 288.0, lines[1].Total)
	})

	t.Run("zero revenue still earns the fixed part", func(t *testing.T) {
		lines := ComputeSplit([]ManagerRevenue{{ManagerID: managerA, Revenue: 0}}, 30, 150, 1)
		require.Len(t, lines, 1)
		assert.Equal(t, 0.0, lines[0].PercentPart)
		assert.Equal(t, 150.0, lines[0].Total)
	})

	t.Run("no managers produces no lines", func(t *testing.T) {
		assert.Empty(t, ComputeSplit(nil, 30, 150, 1))
	})

	t.Run("output ordered by manager for stable storage", func(t *testing.T) {
		lines := ComputeSplit([]ManagerRevenue{
			{ManagerID: managerB, Revenue: 100},
			{ManagerID: managerA, Revenue: 100},
		}, 10, 0, 1)
		require.Len(t, lines, 2)
		assert.Equal(t, managerA, lines[0].ManagerID)
		assert.Equal(t, managerB, lines[1].ManagerID)
	})
}
