package scenes

import (
	"github.com/decker502/birdsong/pkg/game"
)

// Scene is a type alias for game.Scene so scene constructors can be used
// without importing pkg/game.
type Scene = game.Scene
