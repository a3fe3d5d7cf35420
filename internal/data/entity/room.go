package entity

type RoomType string

const (
	RoomTypeSingle RoomType = "single"
	RoomTypeDouble RoomType = "double"
	RoomTypeTriple RoomType = "triple"
	RoomTypeFamily RoomType = "family"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTriple, RoomTypeFamily:
		return true
	}
	return false
}

type Room struct {
	Base
	Number      string   `db:"number"`
	Type        RoomType `db:"type"`
	Capacity    int      `db:"capacity"`
	NightlyRate Money    `db:"nightly_rate_cents"`
	Amenities   []string `db:"amenities"`
	Description string   `db:"description"`
}

// Label is the short human description used in notifications.
func (r *Room) Label() string {
	label := "Room " + r.Number + " (" + string(r.Type) + ")"
	if r.Description != "" {
		label += " - " + r.Description
	}
	return label
}
