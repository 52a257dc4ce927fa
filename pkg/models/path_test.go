package models

import (
	"errors"
	"reflect"
	"testing"
)

func TestExtend(t *testing.T) {
	path := NewPathRecord("A", "C", "search")
	extended := path.Extend("B", 1).Extend("C", 4)

	expected := PathRecord{
		Visited:  []string{"A", "B", "C"},
		Weight:   5,
		Target:   "C",
		SearchID: "search",
	}

	if !reflect.DeepEqual(extended, expected) {
		t.Fatalf("Extend(): expected %v, got %v", expected, extended)
	}

	// check the original record hasn't changed
	if !reflect.DeepEqual(path.Visited, []string{"A"}) || path.Weight != 0 {
		t.Fatalf("Extend(): original record changed to %v", path)
	}
}

func TestExtendSharesNothing(t *testing.T) {
	// two siblings extended from the same parent must not overwrite each other,
	// even when the parent slice has spare capacity.
	parent := PathRecord{
		Visited: make([]string, 2, 10),
		Target:  "Z",
	}
	parent.Visited[0], parent.Visited[1] = "A", "B"

	left := parent.Extend("C", 1)
	right := parent.Extend("D", 2)

	if left.Last() != "C" {
		t.Errorf("Extend(): expected last node C, got %v", left.Last())
	}

	if right.Last() != "D" {
		t.Errorf("Extend(): expected last node D, got %v", right.Last())
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name          string
		path          PathRecord
		expectedError error
	}{
		{
			name:          "empty visited",
			path:          PathRecord{Target: "C"},
			expectedError: ErrEmptyPath,
		},
		{
			name:          "negative weight",
			path:          PathRecord{Visited: []string{"A"}, Weight: -1, Target: "C"},
			expectedError: ErrNegativeWeight,
		},
		{
			name:          "empty target",
			path:          PathRecord{Visited: []string{"A"}},
			expectedError: ErrEmptyTarget,
		},
		{
			name:          "empty node name",
			path:          PathRecord{Visited: []string{"A", ""}, Target: "C"},
			expectedError: ErrEmptyNodeName,
		},
		{
			name:          "valid",
			path:          NewPathRecord("A", "C", ""),
			expectedError: nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			err := test.path.Validate()
			if !errors.Is(err, test.expectedError) {
				t.Fatalf("Validate(): expected %v, got %v", test.expectedError, err)
			}
		})
	}
}

func TestDecodePath(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		path := NewPathRecord("A", "D", "2f1c").Extend("B", 1).Extend("C", 3)

		data, err := EncodePath(path)
		if err != nil {
			t.Fatalf("EncodePath(): expected nil, got %v", err)
		}

		decoded, err := DecodePath(data)
		if err != nil {
			t.Fatalf("DecodePath(): expected nil, got %v", err)
		}

		if !reflect.DeepEqual(decoded, path) {
			t.Fatalf("DecodePath(): expected %v, got %v", path, decoded)
		}
	})

	testCases := []struct {
		name string
		data string
	}{
		{name: "not json", data: "A,B,C"},
		{name: "wrong types", data: `{"visited":"A","weight":"one"}`},
		{name: "empty visited", data: `{"visited":[],"weight":0,"target":"C"}`},
		{name: "missing target", data: `{"visited":["A"],"weight":0}`},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodePath([]byte(test.data))
			if !errors.Is(err, ErrMalformedPath) {
				t.Fatalf("DecodePath(): expected %v, got %v", ErrMalformedPath, err)
			}
		})
	}
}

func TestString(t *testing.T) {
	path := NewPathRecord("A", "C", "").Extend("B", 1).Extend("C", 1)
	expected := "[A B C] (weight 2)"

	if path.String() != expected {
		t.Fatalf("String(): expected %v, got %v", expected, path.String())
	}
}
