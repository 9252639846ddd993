package kdtree_test

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/katalvlaran/knnspace/bruteforce"
	"github.com/katalvlaran/knnspace/cloud"
	"github.com/katalvlaran/knnspace/kdtree"
	"github.com/katalvlaran/knnspace/searcher"
	"github.com/stretchr/testify/require"
)

// smallCloud is a small five-point worked cloud used across the scenario tests.
func smallCloud(t *testing.T) *cloud.Cloud[float64] {
	t.Helper()
	data := []float64{0, 0, 1, 0, 0, 1, 1, 1, 2, 2}
	m, err := cloud.NewMatrix[float64](2, 5, data)
	require.NoError(t, err)
	c, err := cloud.NewCloud(m)
	require.NoError(t, err)
	return c
}

// randomCloud builds a deterministic pseudo-random cloud of n points in
// d dimensions on the unit cube.
func randomCloud(t *testing.T, n, d int, seed int64) *cloud.Cloud[float64] {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	data := make([]float64, n*d)
	for i := range data {
		data[i] = r.Float64()
	}
	m, err := cloud.NewMatrix[float64](d, n, data)
	require.NoError(t, err)
	c, err := cloud.NewCloud(m)
	require.NoError(t, err)
	return c
}

// lineCloud builds n points collinear along one axis in 3-D, the
// degenerate distribution the collinear-points test exercises.
func lineCloud(t *testing.T, n int) *cloud.Cloud[float64] {
	t.Helper()
	data := make([]float64, n*3)
	for i := 0; i < n; i++ {
		data[3*i] = float64(i)
		data[3*i+1] = 0
		data[3*i+2] = 0
	}
	m, err := cloud.NewMatrix[float64](3, n, data)
	require.NoError(t, err)
	c, err := cloud.NewCloud(m)
	require.NoError(t, err)
	return c
}

// allVariants constructs every k-d tree searcher variant over c plus
// the brute-force oracle.
func allVariants(t *testing.T, c *cloud.Cloud[float64]) map[string]searcher.Interface[float64] {
	t.Helper()
	bf, err := bruteforce.New(c)
	require.NoError(t, err)
	pq, err := kdtree.NewBalancedPQ(c)
	require.NoError(t, err)
	stack, err := kdtree.NewBalancedStack(c)
	require.NoError(t, err)
	leaves, err := kdtree.NewBalancedLeaves(c)
	require.NoError(t, err)
	leavesVar, err := kdtree.NewBalancedLeaves(c, kdtree.WithBalanceVariance())
	require.NoError(t, err)
	ui, err := kdtree.NewUnbalancedImplicit(c)
	require.NoError(t, err)
	uiOpt, err := kdtree.NewUnbalancedImplicitOptimized(c)
	require.NoError(t, err)
	ue, err := kdtree.NewUnbalancedExplicit(c)
	require.NoError(t, err)

	return map[string]searcher.Interface[float64]{
		"bruteforce":                  bf,
		"BalancedPQ":                  pq,
		"BalancedStack":               stack,
		"BalancedLeaves":              leaves,
		"BalancedLeaves/variance":     leavesVar,
		"UnbalancedImplicit":          ui,
		"UnbalancedImplicitOptimized": uiOpt,
		"UnbalancedExplicit":          ue,
	}
}

func distances(c *cloud.Cloud[float64], q []float64, idxs []int) []float64 {
	out := make([]float64, len(idxs))
	for i, idx := range idxs {
		out[i] = cloud.SquaredDistance(q, c.Point(idx))
	}
	return out
}

// TestVariants_Scenario1 checks the single nearest neighbour of a query
// close to one cloud point.
func TestVariants_Scenario1(t *testing.T) {
	c := smallCloud(t)
	for name, s := range allVariants(t, c) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Knn([]float64{0.1, 0.1}, 1, 0, 0)
			require.NoError(t, err)
			require.Equal(t, []int{0}, got)
		})
	}
}

// TestVariants_Scenario2 checks sorted results with self-match allowed,
// including a tie between two equidistant points.
func TestVariants_Scenario2(t *testing.T) {
	c := smallCloud(t)
	for name, s := range allVariants(t, c) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Knn([]float64{0, 0}, 3, 0, searcher.SortResults|searcher.AllowSelfMatch)
			require.NoError(t, err)
			require.Len(t, got, 3)
			require.Equal(t, 0, got[0])
			require.ElementsMatch(t, []int{1, 2}, got[1:])
			require.Equal(t, []float64{0, 1, 1}, distances(c, []float64{0, 0}, got))
		})
	}
}

// TestVariants_Scenario3 checks sorted results with self-match disallowed.
func TestVariants_Scenario3(t *testing.T) {
	c := smallCloud(t)
	for name, s := range allVariants(t, c) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Knn([]float64{0, 0}, 3, 0, searcher.SortResults)
			require.NoError(t, err)
			require.NotContains(t, got, 0)
			require.Equal(t, []float64{1, 1, 2}, distances(c, []float64{0, 0}, got))
		})
	}
}

// TestVariants_CorrectnessVsOracle checks that every k-d tree variant
// returns the same distances as the brute-force oracle over a larger
// uniform random cloud.
func TestVariants_CorrectnessVsOracle(t *testing.T) {
	c := randomCloud(t, 1000, 3, 1)
	q := randomCloud(t, 1, 3, 2).Point(0)

	want := exactMultiset(t, c, q, 10)
	for name, s := range allVariants(t, c) {
		if name == "bruteforce" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			got, err := s.Knn(q, 10, 0, searcher.SortResults)
			require.NoError(t, err)
			require.Len(t, got, 10)
			require.Equal(t, want, distances(c, q, got))
		})
	}
}

// exactMultiset returns the k smallest squared distances from q to c,
// computed independently of any searcher under test.
func exactMultiset(t *testing.T, c *cloud.Cloud[float64], q []float64, k int) []float64 {
	t.Helper()
	all := make([]float64, c.Len())
	for i := 0; i < c.Len(); i++ {
		all[i] = cloud.SquaredDistance(q, c.Point(i))
	}
	sort.Float64s(all)
	return all[:k]
}

// TestVariants_DegenerateLine checks that a fully collinear point set
// does not defeat the sliding-midpoint guard against empty subtrees.
func TestVariants_DegenerateLine(t *testing.T) {
	c := lineCloud(t, 1000)
	q := []float64{503.2, 0, 0}

	want := exactMultiset(t, c, q, 5)
	for name, s := range allVariants(t, c) {
		if name == "bruteforce" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			got, err := s.Knn(q, 5, 0, searcher.SortResults)
			require.NoError(t, err)
			require.Len(t, got, 5)
			require.Equal(t, want, distances(c, q, got))
		})
	}
}

// TestVariants_ApproximationBound checks the (1+eps)^2 approximation
// bound and that approximate search visits fewer nodes than brute force.
func TestVariants_ApproximationBound(t *testing.T) {
	c := randomCloud(t, 10000, 7, 3)
	q := randomCloud(t, 1, 7, 4).Point(0)
	const k = 5
	const eps = 0.5

	exact := exactMultiset(t, c, q, k)
	bound := exact[k-1] * (1 + eps) * (1 + eps)

	bf, err := bruteforce.New(c)
	require.NoError(t, err)
	_, err = bf.Knn(q, k, 0, 0)
	require.NoError(t, err)
	bfVisits := bf.Stats().LastQueryVisitCount

	for name, s := range allVariants(t, c) {
		if name == "bruteforce" {
			continue
		}
		t.Run(name, func(t *testing.T) {
			got, err := s.Knn(q, k, eps, 0)
			require.NoError(t, err)
			require.Len(t, got, k)
			for _, d := range distances(c, q, got) {
				require.LessOrEqual(t, d, bound+1e-9)
			}
			require.Less(t, s.Stats().LastQueryVisitCount, bfVisits)
		})
	}
}

// TestVariants_VisitMonotonicity checks that TotalVisitCount after a
// query equals TotalVisitCount before plus that query's
// LastQueryVisitCount.
func TestVariants_VisitMonotonicity(t *testing.T) {
	c := randomCloud(t, 200, 4, 5)
	for name, s := range allVariants(t, c) {
		t.Run(name, func(t *testing.T) {
			before := s.Stats().TotalVisitCount
			_, err := s.Knn(c.Point(0), 3, 0, 0)
			require.NoError(t, err)
			after1 := s.Stats()
			require.GreaterOrEqual(t, after1.TotalVisitCount, before)
			require.Equal(t, before+after1.LastQueryVisitCount, after1.TotalVisitCount)

			_, err = s.Knn(c.Point(1), 3, 0, 0)
			require.NoError(t, err)
			after2 := s.Stats()
			require.Equal(t, after1.TotalVisitCount+after2.LastQueryVisitCount, after2.TotalVisitCount)
		})
	}
}

// TestVariants_InvalidQuery checks the shared query-validation errors.
func TestVariants_InvalidQuery(t *testing.T) {
	c := smallCloud(t)
	for name, s := range allVariants(t, c) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Knn([]float64{0}, 1, 0, 0)
			require.ErrorIs(t, err, searcher.ErrQueryDimMismatch)

			_, err = s.Knn([]float64{0, 0}, 0, 0, 0)
			require.ErrorIs(t, err, searcher.ErrInvalidK)

			_, err = s.Knn([]float64{0, 0}, 6, 0, 0)
			require.ErrorIs(t, err, searcher.ErrKExceedsN)

			_, err = s.Knn([]float64{0, 0}, 1, -1, 0)
			require.ErrorIs(t, err, searcher.ErrInvalidEpsilon)
		})
	}
}

// TestBalancedPQ_BuildDeterminism checks that building twice from the
// same cloud gives structurally identical search behaviour.
func TestBalancedPQ_BuildDeterminism(t *testing.T) {
	c := randomCloud(t, 300, 3, 7)
	q := c.Point(42)

	a, err := kdtree.NewBalancedPQ(c)
	require.NoError(t, err)
	b, err := kdtree.NewBalancedPQ(c)
	require.NoError(t, err)

	gotA, err := a.Knn(q, 5, 0, searcher.SortResults)
	require.NoError(t, err)
	gotB, err := b.Knn(q, 5, 0, searcher.SortResults)
	require.NoError(t, err)
	require.Equal(t, gotA, gotB)
	require.Equal(t, a.Stats().LastQueryVisitCount, b.Stats().LastQueryVisitCount)
}

// TestKnnM_BatchesColumns exercises the shared batched driver through a
// representative variant.
func TestKnnM_BatchesColumns(t *testing.T) {
	c := smallCloud(t)
	s, err := kdtree.NewBalancedStack(c)
	require.NoError(t, err)

	qData := []float64{0.1, 0.1, 2, 2}
	q, err := cloud.NewMatrix[float64](2, 2, qData)
	require.NoError(t, err)

	got, err := s.KnnM(q, 1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 3}, got)
}

// TestUnbalancedImplicitOptimized_SelfMatchDispatch exercises both the
// allow- and skip-self-match descent paths §4.6 splits at call time.
func TestUnbalancedImplicitOptimized_SelfMatchDispatch(t *testing.T) {
	c := smallCloud(t)
	s, err := kdtree.NewUnbalancedImplicitOptimized(c)
	require.NoError(t, err)

	got, err := s.Knn([]float64{0, 0}, 1, 0, searcher.AllowSelfMatch)
	require.NoError(t, err)
	require.Equal(t, []int{0}, got)

	got, err = s.Knn([]float64{0, 0}, 1, 0, 0)
	require.NoError(t, err)
	require.NotEqual(t, 0, got[0])
}
