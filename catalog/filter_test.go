package catalog

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestListFilterQuery(t *testing.T) {
	if got := (ListFilter{}).filter(); len(got) != 0 {
		t.Errorf("empty filter should match everything, got %v", got)
	}

	got := ListFilter{Category: "Succulents"}.filter()
	if got["category"] != "Succulents" {
		t.Errorf("category filter missing: %v", got)
	}

	got = ListFilter{Search: "snake"}.filter()
	want := bson.M{"$regex": "snake", "$options": "i"}
	if !reflect.DeepEqual(got["name"], want) {
		t.Errorf("search must be a case-insensitive regex, got %v", got["name"])
	}

	got = ListFilter{Category: "Tropical", Search: "palm"}.filter()
	if len(got) != 2 {
		t.Errorf("category and search should combine, got %v", got)
	}
}

func TestListFilterSort(t *testing.T) {
	cases := []struct {
		sort string
		want bson.D
	}{
		{SortPriceAsc, bson.D{{Key: "price", Value: 1}}},
		{SortPriceDesc, bson.D{{Key: "price", Value: -1}}},
		{SortName, bson.D{{Key: "name", Value: 1}}},
		{"", bson.D{{Key: "created_at", Value: -1}}},
		{"bogus", bson.D{{Key: "created_at", Value: -1}}},
	}

	for _, c := range cases {
		got := ListFilter{Sort: c.sort}.sort()
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("sort(%q) = %v, want %v", c.sort, got, c.want)
		}
	}
}
