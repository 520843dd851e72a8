package scenes

import (
	"github.com/decker502/showreel/pkg/game"
)

// Scene is a type alias for game.Scene so callers can depend on scenes alone.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// ShowcaseSceneName 展示页面在 SceneManager 中的名称
const ShowcaseSceneName = "showcase"
