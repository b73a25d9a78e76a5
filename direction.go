package cycleroute

import (
	"fmt"
)

// Direction of travel along a segment relative to its native orientation
type Direction uint16

const (
	DIRECTION_FORWARD = Direction(iota + 1)
	DIRECTION_REVERSE
)

func (iotaIdx Direction) String() string {
	return [...]string{"forward", "reverse"}[iotaIdx-1]
}

// ParseDirection returns Direction for its string representation
func ParseDirection(str string) (Direction, error) {
	switch str {
	case "forward":
		return DIRECTION_FORWARD, nil
	case "reverse":
		return DIRECTION_REVERSE, nil
	default:
		return 0, fmt.Errorf("Direction '%s' is not handled. Expected values: forward / reverse", str)
	}
}

const (
	// VEHICLE_BICYCLE is the default vehicle used for vehicle-scoped tags (e.g. `oneway:bicycle`)
	VEHICLE_BICYCLE = "bicycle"
)
