package cad

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ths-rwth/carl-sub000/pkg/cad/bignum"
)

func TestLevelSamplesAlternatesRootsAndWitnesses(t *testing.T) {
	roots := []RAN{
		NewNumericRAN(bignum.FromInt64(1), true),
		NewNumericRAN(bignum.FromInt64(5), true),
	}
	samples, _ := LevelSamples(roots)
	// below-witness, root(1), between-witness, root(5), above-witness
	require.Len(t, samples, 5)
	require.False(t, samples[0].IsRoot())
	require.True(t, samples[1].IsRoot())
	require.True(t, samples[1].Equal(roots[0]))
	require.False(t, samples[2].IsRoot())
	require.True(t, samples[3].IsRoot())
	require.True(t, samples[3].Equal(roots[1]))
	require.False(t, samples[4].IsRoot())

	for i := 1; i < len(samples); i++ {
		require.True(t, samples[i-1].Less(samples[i]))
	}
}

func TestLevelSamplesEmptyRootsYieldsSingleWitness(t *testing.T) {
	samples, replaced := LevelSamples(nil)
	require.Len(t, samples, 1)
	require.False(t, samples[0].IsRoot())
	require.Equal(t, 0, replaced)
}

func TestSampleTreeStoreSamplePromotesIsRoot(t *testing.T) {
	tree := NewSampleTree()
	witness := tree.StoreSample(tree.Root, NewNumericRAN(bignum.FromInt64(4), false))
	require.False(t, witness.Sample.IsRoot())

	again := tree.StoreSample(tree.Root, NewNumericRAN(bignum.FromInt64(4), true))
	require.Same(t, witness, again)
	require.True(t, witness.Sample.IsRoot())
	require.Len(t, tree.Root.Children, 1)
}

func TestSampleTreeConstructPathAndPathValues(t *testing.T) {
	tree := NewSampleTree()
	values := []RAN{
		NewNumericRAN(bignum.FromInt64(1), true),
		NewNumericRAN(bignum.FromInt64(2), true),
	}
	node := tree.ConstructPath(values)
	require.Equal(t, 2, node.Depth)

	got := PathValues(node)
	require.Len(t, got, 2)
	require.True(t, got[0].Equal(values[0]))
	require.True(t, got[1].Equal(values[1]))
}

func TestPruneSubtreeDetachesChildren(t *testing.T) {
	tree := NewSampleTree()
	child := tree.StoreSample(tree.Root, NewNumericRAN(bignum.FromInt64(1), true))
	tree.StoreSample(child, NewNumericRAN(bignum.FromInt64(2), true))
	require.Len(t, child.Children, 1)

	PruneSubtree(child)
	require.Empty(t, child.Children)
}
