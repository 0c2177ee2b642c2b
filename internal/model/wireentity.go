package model

// Region identifies the client's publishing region. It must round-trip
// through CLoginArbiter/SLoginArbiter unchanged, since the client rejects
// a mismatched region.
type Region int32

const (
	RegionInternational Region = 0
	RegionKorea         Region = 1
	RegionUsa           Region = 2
	RegionJapan         Region = 3
	RegionGermany       Region = 4
	RegionFrance        Region = 5
	RegionEurope        Region = 6
	RegionTaiwan        Region = 7
	RegionRussia        Region = 8
)

// Gender is a character's gender.
type Gender int32

const (
	GenderMale   Gender = 0
	GenderFemale Gender = 1
)

// Race is a character's playable race.
type Race int32

const (
	RaceHuman      Race = 0
	RaceCastanic   Race = 1
	RaceAman       Race = 2
	RaceHighElf    Race = 3
	RaceElinPopori Race = 4
	RaceBaraka     Race = 5
)

// Class is a character's playable class.
type Class int32

const (
	ClassWarrior      Class = 0
	ClassLancer       Class = 1
	ClassSlayer       Class = 2
	ClassBerserker    Class = 3
	ClassSorcerer     Class = 4
	ClassArcher       Class = 5
	ClassPriest       Class = 6
	ClassElementalist Class = 7
	ClassSoulless     Class = 8
	ClassEngineer     Class = 9
	ClassFighter      Class = 10
	ClassNinja        Class = 11
	ClassValkyrie     Class = 12
)

// ServantType distinguishes the kinds of companion entries a login carries.
type ServantType int32

const (
	ServantTypePet    ServantType = 0
	ServantTypeMount  ServantType = 1
	ServantTypeSkill  ServantType = 2
)

// TemplateID identifies a character's race/gender/class template.
type TemplateID int32

// Angle is a 16-bit client-native rotation unit, wrapping a full circle
// across the int16 range.
type Angle int16

// AngleFromDegrees converts a degree value to the client's native unit.
func AngleFromDegrees(deg float64) Angle {
	return Angle(int32(deg/360*65536) % 65536)
}

// Vec3 is a 3D world position in floating-point client units.
type Vec3 struct {
	X, Y, Z float32
}

// Vec3a is a 3D vector in fixed-point client units (used for rotations
// layered onto cosmetic transforms).
type Vec3a struct {
	X, Y, Z int32
}

// Customization packs a character's appearance into the 8 raw bytes the
// client itself treats as an opaque blob.
type Customization [8]byte
