package config

// DefaultBindingsText is the built-in bindings file used when no bindings
// file exists or the existing one fails to parse.
const DefaultBindingsText = `# keynav default bindings
#
# KEY[+KEY...] action [args][, action [args]]...

# Narrow the active region, keeping the named edge fixed.
h cut-left
j cut-down
k cut-up
l cut-right

# Shift the region by its own size.
Shift+h move-left
Shift+j move-down
Shift+k move-up
Shift+l move-right

# Zoom to a 200x200 pixel box around the pointer.
semicolon cursorzoom 200 200

space warp
Return warp, click 1, end
Shift+Return warp, doubleclick 1, end
Control+Return warp, click 3, end
Mod1+Return warp, click 2, end
d warp, drag 1

Escape end
`

// Default returns the parsed built-in bindings.
func Default() RawConfig {
	raw, err := Parse(DefaultBindingsText)
	if err != nil {
		panic("config: built-in bindings do not parse: " + err.Error())
	}
	return raw
}
