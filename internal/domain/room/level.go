package room

// Floor labels stored in the level field.
const (
	GroundFloor = "PLANTA BAJA"
	floorPrefix = "PISO "
)

// GroundFloorToken is the path token selecting the ground floor.
const GroundFloorToken = "pb"

// LevelFromToken maps a URL level token to the stored label: "pb" is the ground floor,
// anything else t becomes "PISO t" verbatim.
func LevelFromToken(token string) string {
	if token == GroundFloorToken {
		return GroundFloor
	}
	return floorPrefix + token
}
