package keys

// MacOS maps Cocoa virtual key codes (kVK_*) to keys. Layout follows the
// GLFW table with the keypad operators filled in.
var MacOS = Table{
	/* 00 */ KeyA,
	/* 01 */ KeyS,
	/* 02 */ KeyD,
	/* 03 */ KeyF,
	/* 04 */ KeyH,
	/* 05 */ KeyG,
	/* 06 */ KeyZ,
	/* 07 */ KeyX,
	/* 08 */ KeyC,
	/* 09 */ KeyV,
	/* 0a */ KeyUnknown, // ISO section
	/* 0b */ KeyB,
	/* 0c */ KeyQ,
	/* 0d */ KeyW,
	/* 0e */ KeyE,
	/* 0f */ KeyR,
	/* 10 */ KeyY,
	/* 11 */ KeyT,
	/* 12 */ Key1,
	/* 13 */ Key2,
	/* 14 */ Key3,
	/* 15 */ Key4,
	/* 16 */ Key6,
	/* 17 */ Key5,
	/* 18 */ KeyEqual,
	/* 19 */ Key9,
	/* 1a */ Key7,
	/* 1b */ KeyMinus,
	/* 1c */ Key8,
	/* 1d */ Key0,
	/* 1e */ KeyRightBracket,
	/* 1f */ KeyO,
	/* 20 */ KeyU,
	/* 21 */ KeyLeftBracket,
	/* 22 */ KeyI,
	/* 23 */ KeyP,
	/* 24 */ KeyEnter,
	/* 25 */ KeyL,
	/* 26 */ KeyJ,
	/* 27 */ KeyApostrophe,
	/* 28 */ KeyK,
	/* 29 */ KeySemicolon,
	/* 2a */ KeyBackslash,
	/* 2b */ KeyComma,
	/* 2c */ KeySlash,
	/* 2d */ KeyN,
	/* 2e */ KeyM,
	/* 2f */ KeyPeriod,
	/* 30 */ KeyTab,
	/* 31 */ KeySpace,
	/* 32 */ KeyGraveAccent,
	/* 33 */ KeyBackspace,
	/* 34 */ KeyUnknown,
	/* 35 */ KeyEscape,
	/* 36 */ KeyRightSuper,
	/* 37 */ KeyLeftSuper,
	/* 38 */ KeyLeftShift,
	/* 39 */ KeyCapsLock,
	/* 3a */ KeyLeftAlt,
	/* 3b */ KeyLeftControl,
	/* 3c */ KeyRightShift,
	/* 3d */ KeyRightAlt,
	/* 3e */ KeyRightControl,
	/* 3f */ KeyUnknown, // Function
	/* 40 */ KeyUnknown, // F17
	/* 41 */ KeyNumpadDecimal,
	/* 42 */ KeyUnknown,
	/* 43 */ KeyNumpadMultiply,
	/* 44 */ KeyUnknown,
	/* 45 */ KeyNumpadAdd,
	/* 46 */ KeyUnknown,
	/* 47 */ KeyNumLock, // keypad clear
	/* 48 */ KeyUnknown, // VolumeUp
	/* 49 */ KeyUnknown, // VolumeDown
	/* 4a */ KeyUnknown, // Mute
	/* 4b */ KeyNumpadDivide,
	/* 4c */ KeyNumpadEnter,
	/* 4d */ KeyUnknown,
	/* 4e */ KeyNumpadSubtract,
	/* 4f */ KeyUnknown, // F18
	/* 50 */ KeyUnknown, // F19
	/* 51 */ KeyEqual, // keypad equals
	/* 52 */ KeyNumpad0,
	/* 53 */ KeyNumpad1,
	/* 54 */ KeyNumpad2,
	/* 55 */ KeyNumpad3,
	/* 56 */ KeyNumpad4,
	/* 57 */ KeyNumpad5,
	/* 58 */ KeyNumpad6,
	/* 59 */ KeyNumpad7,
	/* 5a */ KeyUnknown, // F20
	/* 5b */ KeyNumpad8,
	/* 5c */ KeyNumpad9,
	/* 5d */ KeyUnknown,
	/* 5e */ KeyUnknown,
	/* 5f */ KeyUnknown,
	/* 60 */ KeyF5,
	/* 61 */ KeyF6,
	/* 62 */ KeyF7,
	/* 63 */ KeyF3,
	/* 64 */ KeyF8,
	/* 65 */ KeyF9,
	/* 66 */ KeyUnknown,
	/* 67 */ KeyF11,
	/* 68 */ KeyUnknown,
	/* 69 */ KeyF13,
	/* 6a */ KeyUnknown, // F16
	/* 6b */ KeyF14,
	/* 6c */ KeyUnknown,
	/* 6d */ KeyF10,
	/* 6e */ KeyMenu,
	/* 6f */ KeyF12,
	/* 70 */ KeyUnknown,
	/* 71 */ KeyF15,
	/* 72 */ KeyInsert, // Help
	/* 73 */ KeyHome,
	/* 74 */ KeyPageUp,
	/* 75 */ KeyDelete,
	/* 76 */ KeyF4,
	/* 77 */ KeyEnd,
	/* 78 */ KeyF2,
	/* 79 */ KeyPageDown,
	/* 7a */ KeyF1,
	/* 7b */ KeyLeft,
	/* 7c */ KeyRight,
	/* 7d */ KeyDown,
	/* 7e */ KeyUp,
	/* 7f */ KeyUnknown,
}

// Raw codes above the ASCII range produced by the terminal surface for
// keys that arrive as escape sequences.
const (
	TermUp int32 = 0x80 + iota
	TermDown
	TermRight
	TermLeft
	TermHome
	TermEnd
	TermInsert
	TermDelete
	TermPageUp
	TermPageDown
	TermF1
	TermF2
	TermF3
	TermF4
	TermF5
	TermF6
	TermF7
	TermF8
	TermF9
	TermF10
	TermF11
	TermF12
)

// Terminal maps the raw codes emitted by the terminal surface. Codes below
// 0x80 are the bytes read from the tty; shifted symbols fold onto the key
// that produces them on a US layout.
var Terminal = Table{
	0x01: KeyA, 0x02: KeyB, 0x03: KeyC, 0x04: KeyD, 0x05: KeyE, 0x06: KeyF,
	0x07: KeyG, 0x0b: KeyK, 0x0c: KeyL, 0x0e: KeyN, 0x0f: KeyO, 0x10: KeyP,
	0x11: KeyQ, 0x12: KeyR, 0x13: KeyS, 0x14: KeyT, 0x15: KeyU, 0x16: KeyV,
	0x17: KeyW, 0x18: KeyX, 0x19: KeyY, 0x1a: KeyZ,

	0x08: KeyBackspace,
	0x09: KeyTab,
	0x0a: KeyEnter,
	0x0d: KeyEnter,
	0x1b: KeyEscape,
	0x7f: KeyBackspace,
	' ':  KeySpace,

	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE, 'f': KeyF, 'g': KeyG,
	'h': KeyH, 'i': KeyI, 'j': KeyJ, 'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN,
	'o': KeyO, 'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT, 'u': KeyU,
	'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY, 'z': KeyZ,

	'A': KeyA, 'B': KeyB, 'C': KeyC, 'D': KeyD, 'E': KeyE, 'F': KeyF, 'G': KeyG,
	'H': KeyH, 'I': KeyI, 'J': KeyJ, 'K': KeyK, 'L': KeyL, 'M': KeyM, 'N': KeyN,
	'O': KeyO, 'P': KeyP, 'Q': KeyQ, 'R': KeyR, 'S': KeyS, 'T': KeyT, 'U': KeyU,
	'V': KeyV, 'W': KeyW, 'X': KeyX, 'Y': KeyY, 'Z': KeyZ,

	'0': Key0, '1': Key1, '2': Key2, '3': Key3, '4': Key4,
	'5': Key5, '6': Key6, '7': Key7, '8': Key8, '9': Key9,

	')': Key0, '!': Key1, '@': Key2, '#': Key3, '$': Key4,
	'%': Key5, '^': Key6, '&': Key7, '*': Key8, '(': Key9,

	'`': KeyGraveAccent, '~': KeyGraveAccent,
	'-': KeyMinus, '_': KeyMinus,
	'=': KeyEqual, '+': KeyEqual,
	'[': KeyLeftBracket, '{': KeyLeftBracket,
	']': KeyRightBracket, '}': KeyRightBracket,
	'\\': KeyBackslash, '|': KeyBackslash,
	';': KeySemicolon, ':': KeySemicolon,
	'\'': KeyApostrophe, '"': KeyApostrophe,
	',': KeyComma, '<': KeyComma,
	'.': KeyPeriod, '>': KeyPeriod,
	'/': KeySlash, '?': KeySlash,

	TermUp:       KeyUp,
	TermDown:     KeyDown,
	TermRight:    KeyRight,
	TermLeft:     KeyLeft,
	TermHome:     KeyHome,
	TermEnd:      KeyEnd,
	TermInsert:   KeyInsert,
	TermDelete:   KeyDelete,
	TermPageUp:   KeyPageUp,
	TermPageDown: KeyPageDown,
	TermF1:       KeyF1,
	TermF2:       KeyF2,
	TermF3:       KeyF3,
	TermF4:       KeyF4,
	TermF5:       KeyF5,
	TermF6:       KeyF6,
	TermF7:       KeyF7,
	TermF8:       KeyF8,
	TermF9:       KeyF9,
	TermF10:      KeyF10,
	TermF11:      KeyF11,
	TermF12:      KeyF12,
}
