package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vertex-lab/pathflood/pkg/models"
)

func TestParseDOT(t *testing.T) {
	t.Run("undirected", func(t *testing.T) {
		topology, err := Load("testdata/line.dot")
		require.NoError(t, err)

		assert.Equal(t, []string{"A", "B", "C", "D"}, topology.Names())

		b, exists := topology.Node("B")
		require.True(t, exists)
		assert.Equal(t, models.NeighbourTable{"A": 1, "C": 1}, b.Neighbours)

		initiators := topology.Initiators()
		require.Len(t, initiators, 1)
		assert.Equal(t, "A", initiators[0].Name)
		assert.Equal(t, "D", initiators[0].Target)
	})

	t.Run("directed", func(t *testing.T) {
		topology, err := ParseDOT(`digraph g { A -> B [weight=3]; B -> C; }`)
		require.NoError(t, err)

		a, _ := topology.Node("A")
		b, _ := topology.Node("B")
		c, _ := topology.Node("C")
		assert.Equal(t, models.NeighbourTable{"B": 3}, a.Neighbours)
		assert.Equal(t, models.NeighbourTable{"C": 1}, b.Neighbours)
		assert.Empty(t, c.Neighbours)
	})

	t.Run("roles next to graphviz attributes", func(t *testing.T) {
		topology, err := ParseDOT(`graph g {
			A [label="start", initiator=true, target="C", color=red];
			"B" [shape=box];
			A -- B [weight=2, label="ab"];
			B -- C [weight=4];
		}`)
		require.NoError(t, err)

		a, exists := topology.Node("A")
		require.True(t, exists)
		assert.True(t, a.Initiator)
		assert.Equal(t, "C", a.Target)
		assert.Equal(t, models.NeighbourTable{"B": 2}, a.Neighbours)

		b, _ := topology.Node("B")
		assert.False(t, b.Initiator)
		assert.Equal(t, models.NeighbourTable{"A": 2, "C": 4}, b.Neighbours)
	})

	t.Run("roles in a subgraph", func(t *testing.T) {
		topology, err := ParseDOT(`digraph g {
			subgraph cluster_start { X [initiator=true, target=Y]; }
			X -> Y;
		}`)
		require.NoError(t, err)

		initiators := topology.Initiators()
		require.Len(t, initiators, 1)
		assert.Equal(t, "X", initiators[0].Name)
		assert.Equal(t, "Y", initiators[0].Target)
	})

	t.Run("initiator without target", func(t *testing.T) {
		_, err := ParseDOT(`graph g { A [initiator=true]; A -- B; }`)
		assert.ErrorIs(t, err, ErrMissingTarget)
	})

	t.Run("invalid initiator", func(t *testing.T) {
		_, err := ParseDOT(`graph g { A [initiator=often, target=B]; A -- B; }`)
		assert.Error(t, err)
	})

	t.Run("invalid weight", func(t *testing.T) {
		_, err := ParseDOT(`graph g { A -- B [weight=heavy]; }`)
		assert.Error(t, err)
	})

	t.Run("zero weight", func(t *testing.T) {
		_, err := ParseDOT(`graph g { A -- B [weight=0]; }`)
		assert.ErrorIs(t, err, models.ErrInvalidWeight)
	})

	t.Run("invalid DOT", func(t *testing.T) {
		_, err := ParseDOT(`graph g { A -- `)
		assert.Error(t, err)
	})
}
