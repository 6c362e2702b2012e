package ui

// iconBytes is a 16x16 PNG used as the tray icon.
var iconBytes = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00, 0x10,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0xf3, 0xff, 0x61, 0x00, 0x00, 0x00,
	0x51, 0x49, 0x44, 0x41, 0x54, 0x78, 0xda, 0x63, 0x60, 0x80, 0x02, 0x65,
	0x75, 0xbd, 0xff, 0xa4, 0x60, 0x06, 0x74, 0x40, 0xb6, 0x01, 0xa4, 0x6a,
	0x84, 0x01, 0xb8, 0x41, 0xe4, 0x68, 0x26, 0xcb, 0x00, 0x6c, 0x9a, 0x89,
	0x36, 0x00, 0x97, 0x66, 0xa2, 0x0c, 0xc0, 0xa7, 0x99, 0xa0, 0x01, 0x84,
	0x34, 0xe3, 0x35, 0x80, 0x18, 0xcd, 0x38, 0x0d, 0x20, 0x56, 0x33, 0x56,
	0x03, 0x48, 0xd1, 0x8c, 0x61, 0x00, 0xa9, 0x9a, 0x51, 0x0c, 0x20, 0x47,
	0x33, 0x56, 0x03, 0xe8, 0x96, 0x27, 0xa8, 0x96, 0x1b, 0x01, 0x49, 0x7c,
	0xb5, 0x4a, 0x94, 0x58, 0x1c, 0xe9, 0x00, 0x00, 0x00, 0x00, 0x49, 0x45,
	0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}
