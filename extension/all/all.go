// Package all imports all built-in socialposts extensions.
// Import this package to register all built-in commands.
package all

import (
	// Built-in extensions - each registers itself via init()
	_ "github.com/jpl-au/socialposts/extension/core"
	_ "github.com/jpl-au/socialposts/extension/social"
)
