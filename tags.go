package cycleroute

import (
	"fmt"
	"sort"

	"github.com/paulmach/osm"
)

const (
	TAG_CYCLEWAY = "cycleway"
	TAG_ONEWAY   = "oneway"
	TAG_BICYCLE  = "bicycle"
)

var (
	trueTagValues = map[string]struct{}{
		"yes":  {},
		"true": {},
		"1":    {},
	}

	falseTagValues = map[string]struct{}{
		"no":    {},
		"false": {},
		"0":     {},
	}

	// Index into the ordered coefficients list for `bicycle` values which are not a plain passable road
	bicycleAccessRanks = map[string]int{
		"yes":        0,
		"designated": 0,
		"permitted":  1,
	}

	// Highway values which never carry traffic even if they are part of a route relation
	negligibleHighwayTags = map[string]struct{}{
		"construction": {},
		"proposed":     {},
		"planned":      {},
		"abandoned":    {},
		"dismantled":   {},
		"disused":      {},
		"razed":        {},
		"raceway":      {},
	}
)

func isTrueTag(value string) bool {
	_, ok := trueTagValues[value]
	return ok
}

func isFalseTag(value string) bool {
	_, ok := falseTagValues[value]
	return ok
}

// vehicleTag returns value of `name:vehicle` tag falling back to plain `name`
func vehicleTag(tags osm.Tags, name, vehicle string) string {
	if vehicle != "" {
		for _, tag := range tags {
			if tag.Key == name+":"+vehicle {
				return tag.Value
			}
		}
	}
	return tags.Find(name)
}

// TagsFromProperties converts GeoJSON-like properties into OSM tags.
// Keys are sorted so the result is deterministic; non-string values are formatted with %v.
func TagsFromProperties(properties map[string]interface{}) osm.Tags {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	tags := make(osm.Tags, 0, len(keys))
	for _, key := range keys {
		value := properties[key]
		if value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			tags = append(tags, osm.Tag{Key: key, Value: v})
		case bool:
			if v {
				tags = append(tags, osm.Tag{Key: key, Value: "yes"})
			} else {
				tags = append(tags, osm.Tag{Key: key, Value: "no"})
			}
		default:
			tags = append(tags, osm.Tag{Key: key, Value: fmt.Sprintf("%v", v)})
		}
	}
	return tags
}
