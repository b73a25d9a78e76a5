package cycleroute

import (
	"strings"

	"github.com/paulmach/osm"
)

// DefaultHighwayTags are `highway` values which may be ridden by bicycle
var DefaultHighwayTags = highwayTypesToStrings(cyclableHighways)

// OsmConfiguration Allows to filter ways by certain tags from OSM data
type OsmConfiguration struct {
	EntityName string // 'highway' in most of cases
	// Allowed values of entity tag. Empty list allows every value
	Tags []string
}

// DefaultOsmConfiguration returns configuration which keeps every way potentially usable by bicycle
func DefaultOsmConfiguration() *OsmConfiguration {
	tags := make([]string, len(DefaultHighwayTags))
	copy(tags, DefaultHighwayTags)
	return &OsmConfiguration{
		EntityName: "highway",
		Tags:       tags,
	}
}

// ParseTagsList splits comma separated list of tag values
func ParseTagsList(str string) []string {
	parts := strings.Split(str, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tags = append(tags, part)
	}
	return tags
}

// CheckTag Checks if incoming tag is represented in configuration
func (cfg *OsmConfiguration) CheckTag(tag string) bool {
	if len(cfg.Tags) == 0 {
		return true
	}
	for i := range cfg.Tags {
		if cfg.Tags[i] == tag {
			return true
		}
	}
	return false
}

// Accept checks whether way with given tags should be loaded
func (cfg *OsmConfiguration) Accept(tags osm.Tags) bool {
	value := tags.Find(cfg.EntityName)
	if value == "" {
		return false
	}
	if _, ok := negligibleHighwayTags[value]; ok {
		return false
	}
	// Closed areas (squares, parkings) are not ways to ride along
	if isTrueTag(tags.Find("area")) {
		return false
	}
	return cfg.CheckTag(value)
}

// UnknownTags returns configured values of 'highway' entity which are not known as cyclable
func (cfg *OsmConfiguration) UnknownTags() []string {
	unknown := []string{}
	if cfg.EntityName != "highway" {
		return unknown
	}
	for _, tag := range cfg.Tags {
		if getHighwayType(tag) == 0 {
			unknown = append(unknown, tag)
		}
	}
	return unknown
}
