package cycleroute

type HighwayType uint16

const (
	HIGHWAY_CYCLEWAY = HighwayType(iota + 1)
	HIGHWAY_PATH
	HIGHWAY_TRACK
	HIGHWAY_LIVING_STREET
	HIGHWAY_RESIDENTIAL
	HIGHWAY_SERVICE
	HIGHWAY_UNCLASSIFIED
	HIGHWAY_TERTIARY
	HIGHWAY_TERTIARY_LINK
	HIGHWAY_SECONDARY
	HIGHWAY_SECONDARY_LINK
	HIGHWAY_PRIMARY
	HIGHWAY_PRIMARY_LINK
	HIGHWAY_ROAD
	HIGHWAY_FOOTWAY
	HIGHWAY_PEDESTRIAN
	HIGHWAY_BRIDLEWAY
)

func (iotaIdx HighwayType) String() string {
	return [...]string{"cycleway", "path", "track", "living_street", "residential", "service", "unclassified", "tertiary", "tertiary_link", "secondary", "secondary_link", "primary", "primary_link", "road", "footway", "pedestrian", "bridleway"}[iotaIdx-1]
}

var (
	// Highways which may be ridden by bicycle, from the most to the least preferable
	cyclableHighways = []HighwayType{
		HIGHWAY_CYCLEWAY,
		HIGHWAY_PATH,
		HIGHWAY_TRACK,
		HIGHWAY_LIVING_STREET,
		HIGHWAY_RESIDENTIAL,
		HIGHWAY_SERVICE,
		HIGHWAY_UNCLASSIFIED,
		HIGHWAY_TERTIARY,
		HIGHWAY_TERTIARY_LINK,
		HIGHWAY_SECONDARY,
		HIGHWAY_SECONDARY_LINK,
		HIGHWAY_PRIMARY,
		HIGHWAY_PRIMARY_LINK,
		HIGHWAY_ROAD,
		HIGHWAY_FOOTWAY,
		HIGHWAY_PEDESTRIAN,
		HIGHWAY_BRIDLEWAY,
	}

	highwaysTypes = func() map[string]HighwayType {
		result := make(map[string]HighwayType, len(cyclableHighways))
		for _, highway := range cyclableHighways {
			result[highway.String()] = highway
		}
		return result
	}()
)

// getHighwayType returns 0 for values which are not known as cyclable
func getHighwayType(str string) HighwayType {
	if found, ok := highwaysTypes[str]; ok {
		return found
	}
	return 0
}

func highwayTypesToStrings(types []HighwayType) []string {
	result := make([]string, len(types))
	for i := range types {
		result[i] = types[i].String()
	}
	return result
}
