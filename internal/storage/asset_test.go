package storage

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestAsset_Validate(t *testing.T) {
	cross := &Arena{Name: "Cross", GridSize: 20, Obstacles: [][2]int{{10, 3}}}

	tests := map[string]struct {
		asset  Asset[*Arena]
		expErr []string
	}{
		"valid": {
			asset: Asset[*Arena]{Version: 1, Identifier: "cross-1", Spec: cross},
		},
		"no version": {
			asset:  Asset[*Arena]{Identifier: "cross", Spec: cross},
			expErr: []string{"version must be set"},
		},
		"no id": {
			asset:  Asset[*Arena]{Version: 1, Spec: cross},
			expErr: []string{"id must be set"},
		},
		"id with spaces": {
			asset:  Asset[*Arena]{Version: 1, Identifier: "big cross", Spec: cross},
			expErr: []string{"id must be alphanumeric"},
		},
		"no arena": {
			asset:  Asset[*Arena]{Version: 1, Identifier: "cross"},
			expErr: []string{"spec must be set"},
		},
		"arena and envelope both broken": {
			asset: Asset[*Arena]{
				Identifier: "ring/2",
				Spec:       &Arena{Name: "Ring", GridSize: 10, Obstacles: [][2]int{{12, 1}}},
			},
			expErr: []string{"version must be set", "id must be alphanumeric", "outside the grid"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.asset.Validate()
			if len(tt.expErr) == 0 {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			for _, exp := range tt.expErr {
				testutil.AssertErrorContains(t, err, exp)
			}
		})
	}
}

func TestAsset_Id(t *testing.T) {
	a := &Asset[*Arena]{Identifier: "spiral"}
	testutil.AssertEqual(t, "id", a.Id(), "spiral")
}
