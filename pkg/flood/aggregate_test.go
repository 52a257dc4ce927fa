package flood

import (
	"reflect"
	"testing"

	"github.com/vertex-lab/pathflood/pkg/models"
)

func newPath(weight int, visited ...string) models.PathRecord {
	return models.PathRecord{Visited: visited, Weight: weight, Target: visited[len(visited)-1]}
}

func TestWinners(t *testing.T) {
	testCases := []struct {
		name            string
		results         ResultSet
		expectedWinners [][]string
	}{
		{
			name:            "empty set",
			results:         nil,
			expectedWinners: nil,
		},
		{
			name:            "single path",
			results:         ResultSet{newPath(5, "A", "C")},
			expectedWinners: [][]string{{"A", "C"}},
		},
		{
			name:            "minimum wins",
			results:         ResultSet{newPath(5, "A", "C"), newPath(2, "A", "B", "C")},
			expectedWinners: [][]string{{"A", "B", "C"}},
		},
		{
			name: "all ties are kept",
			results: ResultSet{
				newPath(4, "A", "C", "D"),
				newPath(6, "A", "B", "C", "D"),
				newPath(4, "A", "B", "D"),
			},
			expectedWinners: [][]string{{"A", "B", "D"}, {"A", "C", "D"}},
		},
		{
			name:            "duplicates are kept",
			results:         ResultSet{newPath(2, "A", "B", "C"), newPath(2, "A", "B", "C")},
			expectedWinners: [][]string{{"A", "B", "C"}, {"A", "B", "C"}},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			winners := test.results.Winners()
			if len(winners) == 0 && len(test.expectedWinners) == 0 {
				return
			}

			if got := visitedOf(winners); !reflect.DeepEqual(got, test.expectedWinners) {
				t.Fatalf("Winners(): expected %v, got %v", test.expectedWinners, got)
			}
		})
	}
}

func TestWinnersIdempotent(t *testing.T) {
	results := ResultSet{
		newPath(4, "A", "C", "D"),
		newPath(9, "A", "D"),
		newPath(4, "A", "B", "D"),
	}
	frozen := append(ResultSet(nil), results...)

	first := results.Winners()
	second := results.Winners()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Winners(): expected %v, got %v", first, second)
	}

	if !reflect.DeepEqual(results, frozen) {
		t.Fatalf("Winners(): result set changed from %v to %v", frozen, results)
	}
}

func TestMinWeight(t *testing.T) {
	if _, ok := ResultSet(nil).MinWeight(); ok {
		t.Fatalf("MinWeight(): expected false on an empty set")
	}

	results := ResultSet{newPath(7, "A", "B"), newPath(3, "A", "C", "B")}
	if weight, ok := results.MinWeight(); !ok || weight != 3 {
		t.Fatalf("MinWeight(): expected 3, got %d", weight)
	}
}
