package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalled  bool
	drawCalled    bool
	deltaTime     float64
	disposed      int
	width, height int
	saved         bool
}

func (m *MockScene) Update(deltaTime float64) {
	m.updateCalled = true
	m.deltaTime = deltaTime
}

func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

func (m *MockScene) Dispose() {
	m.disposed++
}

func (m *MockScene) Resize(width, height int) {
	m.width, m.height = width, height
}

func (m *MockScene) SaveOnExit() bool {
	m.saved = true
	return true
}

// plainScene 只实现 Scene 接口
type plainScene struct{}

func (plainScene) Update(float64)     {}
func (plainScene) Draw(*ebiten.Image) {}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm.GetCurrentScene() != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016
	sm.Update(deltaTime)

	if !mockScene.updateCalled {
		t.Error("Scene's Update method was not called")
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerNoScene verifies that Update/Draw/Resize handle a nil scene gracefully.
func TestSceneManagerNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016)
	sm.Draw(ebiten.NewImage(64, 64))
	sm.Resize(800, 600)
	if !sm.SaveOnExit() {
		t.Error("SaveOnExit without a scene should succeed")
	}
}

// TestSceneManagerDraw verifies that Draw calls the current scene's Draw method.
func TestSceneManagerDraw(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	sm.Draw(ebiten.NewImage(64, 64))

	if !mockScene.drawCalled {
		t.Error("Scene's Draw method was not called")
	}
}

// TestSceneManagerDisposesPrevious 切换场景时释放旧场景
func TestSceneManagerDisposesPrevious(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	scene2 := &MockScene{}

	sm.SwitchTo(scene1)
	sm.SwitchTo(scene1)
	if scene1.disposed != 0 {
		t.Error("Switching to the same scene must not dispose it")
	}

	sm.SwitchTo(scene2)
	if scene1.disposed != 1 {
		t.Errorf("scene1 disposed %d times, want 1", scene1.disposed)
	}

	sm.SwitchTo(plainScene{})
	if scene2.disposed != 1 {
		t.Errorf("scene2 disposed %d times, want 1", scene2.disposed)
	}
}

// TestSceneManagerResize 新场景收到最近一次视口尺寸
func TestSceneManagerResize(t *testing.T) {
	sm := NewSceneManager()
	scene1 := &MockScene{}
	sm.SwitchTo(scene1)
	sm.Resize(1024, 640)

	if scene1.width != 1024 || scene1.height != 640 {
		t.Errorf("scene1 size = %dx%d", scene1.width, scene1.height)
	}

	scene2 := &MockScene{}
	sm.SwitchTo(scene2)
	if scene2.width != 1024 || scene2.height != 640 {
		t.Errorf("scene2 size = %dx%d, want 1024x640", scene2.width, scene2.height)
	}

	if !sm.SaveOnExit() || !scene2.saved {
		t.Error("SaveOnExit was not forwarded to the current scene")
	}
}

// ratioScene 记录渲染倍率
type ratioScene struct {
	plainScene
	ratioCap float64
	ratio    float64
}

func (r *ratioScene) PixelRatioCap() float64      { return r.ratioCap }
func (r *ratioScene) SetPixelRatio(ratio float64) { r.ratio = ratio }

// TestSceneManagerPixelRatio 像素比上限和渲染倍率转发给当前场景
func TestSceneManagerPixelRatio(t *testing.T) {
	sm := NewSceneManager()
	if sm.PixelRatioCap() != 1 {
		t.Errorf("Expected cap 1 without a scene, got %v", sm.PixelRatioCap())
	}

	sm.SwitchTo(plainScene{})
	if sm.PixelRatioCap() != 1 {
		t.Errorf("Expected cap 1 for a scene without ratio support, got %v", sm.PixelRatioCap())
	}
	sm.SetPixelRatio(2)

	scene := &ratioScene{ratioCap: 1.5}
	sm.SwitchTo(scene)
	if sm.PixelRatioCap() != 1.5 {
		t.Errorf("Expected cap 1.5, got %v", sm.PixelRatioCap())
	}
	sm.SetPixelRatio(1.25)
	if scene.ratio != 1.25 {
		t.Errorf("Expected ratio 1.25 forwarded, got %v", scene.ratio)
	}
}
