package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a showreel scene (e.g., the showcase page).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// Closer 是一个可选接口，用于场景在被切换出去或程序退出时释放资源
//
// 实现此接口的场景会在以下时机被调用 Close()：
//   - SceneManager 切换到另一个场景
//   - 程序退出时 SceneManager.Close()
//
// 轮播场景借此停止所有动画与暂停计时，之后的事件都不再生效。
type Closer interface {
	Close()
}
