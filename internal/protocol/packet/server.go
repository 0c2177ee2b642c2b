package packet

import (
	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/protocol/wire"
)

// SCheckVersion answers CCheckVersion.
type SCheckVersion struct {
	OK bool
}

// SLoadingScreenControlInfo tells the client whether to show the custom
// loading screen.
type SLoadingScreenControlInfo struct {
	CustomScreenEnabled bool
}

// SRemainPlayTime reports the account's subscription type and remaining
// play time for the day.
type SRemainPlayTime struct {
	AccountType uint32
	MinutesLeft uint32
}

// SLoginArbiter answers CLoginArbiter.
type SLoginArbiter struct {
	Success     bool
	LoginQueue  bool
	Status      int32
	Unk1        uint32
	Region      model.Region
	PvpDisabled bool
	Unk2        uint16
	Unk3        uint16
}

// SLoginAccountInfo carries the account-level identity the client displays
// and the IV used by some client-side packet hashing.
type SLoginAccountInfo struct {
	ServerName  string
	AccountID   int64
	IntegrityIV uint32
}

// SGetUserListCharacter is one entry in the character selection list. Field
// set is trimmed to the subset with observable behavior (identity,
// appearance, progression, deletion state); the original carries many more
// purely cosmetic style/dye fields with no behavior attached.
type SGetUserListCharacter struct {
	Name              string
	DatabaseID        int32
	Gender            model.Gender
	Race              model.Race
	Class             model.Class
	Level             int32
	HP                int64
	MP                int32
	WorldID           int32
	Appearance        model.Customization
	IsDeleting        bool
	DeleteRemainSec   int32
	LobbySlot         int32
}

// SGetUserList answers CGetUserList.
type SGetUserList struct {
	Characters     []SGetUserListCharacter
	Veteran        bool
	BonusBuffSec   int32
	MaxCharacters  int32
	First          bool
	More           bool
}

// SCanCreateUser answers CCanCreateUser.
type SCanCreateUser struct {
	OK bool
}

// SCheckUserName answers CCheckUserName.
type SCheckUserName struct {
	OK bool
}

// SCreateUser answers CCreateUser.
type SCreateUser struct {
	OK bool
}

// SDeleteUser answers CDeleteUser.
type SDeleteUser struct {
	OK bool
}

// SLoginServantEntry is one pet/mount/skill companion entry carried by
// SLogin.
type SLoginServantEntry struct {
	DatabaseID   int64
	ID           int32
	ServantType  model.ServantType
	Energy       uint32
	Slot         int32
}

// SLogin is sent once the user enters the world, carrying the spawned
// character's identity and live state. Field set is trimmed to the subset
// with observable behavior; the original carries many more purely cosmetic
// style/dye fields with no behavior attached.
type SLogin struct {
	Servants     []SLoginServantEntry
	Name         string
	TemplateID   model.TemplateID
	ID           wire.EntityID
	ServerID     int32
	DatabaseID   int32
	Alive        bool
	Status       int32
	RunSpeed     int32
	Appearance   model.Customization
	Visible      bool
	Level        int16
	TotalExp     int64
	LevelExp     int64
}

// SLoadTopo tells the client which zone to load and where in it the
// character will appear.
type SLoadTopo struct {
	Zone                 int32
	Location             model.Vec3
	DisableLoadingScreen bool
}

// SLoadHint carries an opaque loading hint value the client expects between
// SLoadTopo and CLoadTopoFin.
type SLoadHint struct {
	Unk1 uint32
}

// SPing carries no payload; the client answers with CPong.
type SPing struct{}

// SSpawnMe places the character's avatar into the local world once
// CLoadTopoFin has been received.
type SSpawnMe struct {
	UserID   wire.EntityID
	Location model.Vec3
	Rotation model.Angle
	IsAlive  bool
	IsLord   bool
}
