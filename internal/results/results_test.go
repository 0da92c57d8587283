package results

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendCreatesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results_ca.csv")

	require.NoError(t, Append(path, "sequential", 1000, 1000, 1, 0.5))
	require.NoError(t, Append(path, "parallel", 1000, 1000, 4, 0.125))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t,
		"sequential,1000,1000,1,0.500000000\nparallel,1000,1000,4,0.125000000\n",
		string(data))
}
