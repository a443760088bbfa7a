package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryList_UnmarshalJSON_PreservesOrder(t *testing.T) {
	var list CategoryList
	err := json.Unmarshal([]byte(`{"7": "Wonen", "2": "Boodschappen", "11": "Auto"}`), &list)
	require.NoError(t, err)

	assert.Equal(t, CategoryList{
		{ID: 7, Name: "Wonen"},
		{ID: 2, Name: "Boodschappen"},
		{ID: 11, Name: "Auto"},
	}, list)
}

func TestCategoryList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    CategoryList
		wantErr bool
	}{
		{name: "null", input: `null`, want: nil},
		{name: "empty object", input: `{}`, want: CategoryList{}},
		{name: "array rejected", input: `["a"]`, wantErr: true},
		{name: "non numeric key", input: `{"abc": "x"}`, wantErr: true},
		{name: "non string name", input: `{"1": 5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list CategoryList
			err := json.Unmarshal([]byte(tt.input), &list)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, list)
		})
	}
}

func TestCategoryList_MarshalJSON(t *testing.T) {
	list := CategoryList{{ID: 3, Name: "Zorg"}, {ID: 1, Name: "Auto \"oud\""}}

	data, err := json.Marshal(list)
	require.NoError(t, err)
	assert.Equal(t, `{"3":"Zorg","1":"Auto \"oud\""}`, string(data))

	var back CategoryList
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, list, back)
}

func TestCategoryList_Name(t *testing.T) {
	list := CategoryList{{ID: 3, Name: "Zorg"}}

	name, ok := list.Name(3)
	assert.True(t, ok)
	assert.Equal(t, "Zorg", name)

	_, ok = list.Name(4)
	assert.False(t, ok)
}

func TestAnalysis_Decode(t *testing.T) {
	raw := `{
		"totaal_ongecategoriseerd": 5,
		"totaal_gecategoriseerd": 100,
		"categoriseer_suggesties": [{
			"categorie": "Boodschappen",
			"suggested_category_id": 2,
			"patronen": ["JUMBO", "LIDL"],
			"voorbeelden": ["JUMBO", "LIDL"],
			"matched_namen": [{"naam": "JUMBO ZWOLLE", "aantal": 4, "gemiddeld": -23.5}],
			"totaal_transacties": 4,
			"totaal_bedrag": -94.0
		}, {
			"categorie": "Parkeren",
			"suggested_category_id": null,
			"patronen": ["Q-PARK"],
			"voorbeelden": ["Q-PARK"],
			"matched_namen": [],
			"totaal_transacties": 1,
			"totaal_bedrag": -3.5
		}],
		"potentiele_patronen": [{"naam": "NS GROEP", "aantal": 12, "gemiddeld_bedrag": -8.4}],
		"bestaande_categorien": {"2": "Boodschappen"}
	}`

	var a Analysis
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	assert.Equal(t, 5, a.Uncategorized)
	assert.Equal(t, 100, a.Categorized)
	require.Len(t, a.Suggestions, 2)
	assert.True(t, a.Suggestions[0].HasSuggestedCategory())
	assert.Equal(t, 2, *a.Suggestions[0].SuggestedCategoryID)
	assert.False(t, a.Suggestions[1].HasSuggestedCategory())
	assert.Equal(t, "NS GROEP", a.Potential[0].Name)
	assert.False(t, a.IsEmpty())
}

func TestSuggestion_TopMatches(t *testing.T) {
	s := Suggestion{MatchedNames: []MatchedName{{Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"}}}
	assert.Len(t, s.TopMatches(3), 3)
	assert.Equal(t, "c", s.TopMatches(3)[2].Name)

	short := Suggestion{MatchedNames: []MatchedName{{Name: "a"}}}
	assert.Len(t, short.TopMatches(3), 1)
}

func TestBulkAssignRequest_OmitsEmptyIDs(t *testing.T) {
	data, err := json.Marshal(BulkAssignRequest{Patterns: []string{"JUMBO"}, CategoryID: 2, CategoryName: "Boodschappen"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "transactie_ids")

	data, err = json.Marshal(BulkAssignRequest{Patterns: []string{"JUMBO"}, CategoryID: 2, TransactionIDs: []int{4, 9}})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"transactie_ids":[4,9]`)
}
