package snowflake_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"alpine/translate/internal/snowflake"
)

func TestNextID_Increasing(t *testing.T) {
	require.NoError(t, snowflake.Init(3))

	prev := snowflake.NextID()
	for i := 0; i < 100; i++ {
		id := snowflake.NextID()
		require.Greater(t, id, prev)
		prev = id
	}
}

func TestInit_RejectsOutOfRangeNode(t *testing.T) {
	require.Error(t, snowflake.Init(4096))
}
