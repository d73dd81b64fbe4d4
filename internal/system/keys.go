package system

// Linux input-event-codes.h
const (
	KeyF4    uint16 = 62
	KeyPower uint16 = 116
)

// KeyHandlers maps key codes to callbacks run on key press.
type KeyHandlers map[uint16]func()
