package game

import (
	"errors"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于根据脚本路径创建对话场景，避免循环依赖
type SceneFactory func(scriptPath string) (Scene, error)

var errNoSceneFactory = errors.New("scene factory not set")

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene gets a chance to save its state first.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene != nil && sm.currentScene != scene {
		sm.SaveOnExit()
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadScript 通过工厂函数为脚本创建场景并切换过去
// 创建失败时保持当前场景不变
func (sm *SceneManager) LoadScript(scriptPath string) error {
	log.Printf("[SceneManager] 加载脚本: %s", scriptPath)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return errNoSceneFactory
	}

	newScene, err := sm.sceneFactory(scriptPath)
	if err != nil {
		log.Printf("[SceneManager] 错误: 无法创建脚本场景 %s: %v", scriptPath, err)
		return err
	}

	sm.SwitchTo(newScene)
	log.Printf("[SceneManager] 成功切换到脚本: %s", scriptPath)
	return nil
}

// SaveOnExit 让当前场景保存状态（如果它实现了 Saveable）
//
// 返回：
//   - bool: 保存成功或无需保存时返回 true
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
