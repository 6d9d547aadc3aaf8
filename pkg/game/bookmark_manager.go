package game

import (
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Bookmark 阅读进度书签
//
// 记录某个脚本最后停留的条目。重新打开脚本时从该条目继续，
// 之前的设置条目和背景条目会被重放。
type Bookmark struct {
	Script     string    `yaml:"script"`     // 脚本的绝对路径
	EntryIndex int       `yaml:"entryIndex"` // 条目序号（0-based）
	SavedAt    time.Time `yaml:"savedAt"`    // 保存时间
}

// bookmarkFile gdata 中保存的全部书签
type bookmarkFile struct {
	Bookmarks map[string]Bookmark `yaml:"bookmarks"`
}

// 存储路径常量
const (
	bookmarkObject   = "progress"
	bookmarkProperty = "bookmarks"
)

// BookmarkManager 书签管理器
//
// 职责：
//   - 按脚本路径保存和读取阅读进度
//   - 读完的脚本清除书签，下次从头开始
//
// 所有书签保存在同一个 gdata 属性中（YAML 格式）。
// gdataManager 为 nil 时只在内存中保存（降级模式）。
type BookmarkManager struct {
	gdataManager *gdata.Manager
	bookmarks    map[string]Bookmark
	now          func() time.Time
}

// NewBookmarkManager 创建书签管理器并加载已保存的书签
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
//
// 返回：
//   - *BookmarkManager: 书签管理器实例
//   - error: 如果已保存的数据无法解析返回错误（管理器仍可用，书签为空）
func NewBookmarkManager(gdataManager *gdata.Manager) (*BookmarkManager, error) {
	bm := &BookmarkManager{
		gdataManager: gdataManager,
		bookmarks:    make(map[string]Bookmark),
		now:          time.Now,
	}
	if err := bm.Load(); err != nil {
		return bm, err
	}
	return bm, nil
}

// Load 从 gdata 重新加载书签
func (bm *BookmarkManager) Load() error {
	bm.bookmarks = make(map[string]Bookmark)

	if bm.gdataManager == nil {
		return nil
	}
	if !bm.gdataManager.ObjectPropExists(bookmarkObject, bookmarkProperty) {
		return nil
	}

	data, err := bm.gdataManager.LoadObjectProp(bookmarkObject, bookmarkProperty)
	if err != nil {
		return fmt.Errorf("failed to load bookmarks: %w", err)
	}

	var file bookmarkFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to unmarshal bookmarks: %w", err)
	}
	for key, b := range file.Bookmarks {
		bm.bookmarks[key] = b
	}
	return nil
}

// Save 把书签写入 gdata
func (bm *BookmarkManager) Save() error {
	if bm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(bookmarkFile{Bookmarks: bm.bookmarks})
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}
	if err := bm.gdataManager.SaveObjectProp(bookmarkObject, bookmarkProperty, data); err != nil {
		return fmt.Errorf("failed to save bookmarks: %w", err)
	}
	return nil
}

// Get 获取脚本的书签
//
// 返回：
//   - Bookmark: 书签
//   - bool: 是否存在
func (bm *BookmarkManager) Get(scriptPath string) (Bookmark, bool) {
	b, ok := bm.bookmarks[bookmarkKey(scriptPath)]
	return b, ok
}

// Set 记录脚本当前停留的条目（仅内存，需调用 Save 持久化）
func (bm *BookmarkManager) Set(scriptPath string, entryIndex int) {
	key := bookmarkKey(scriptPath)
	bm.bookmarks[key] = Bookmark{
		Script:     key,
		EntryIndex: entryIndex,
		SavedAt:    bm.now(),
	}
}

// Clear 删除脚本的书签（仅内存，需调用 Save 持久化）
func (bm *BookmarkManager) Clear(scriptPath string) {
	delete(bm.bookmarks, bookmarkKey(scriptPath))
}

// List 返回所有书签，最近保存的在前
func (bm *BookmarkManager) List() []Bookmark {
	list := make([]Bookmark, 0, len(bm.bookmarks))
	for _, b := range bm.bookmarks {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].SavedAt.Equal(list[j].SavedAt) {
			return list[i].SavedAt.After(list[j].SavedAt)
		}
		return list[i].Script < list[j].Script
	})
	return list
}

// bookmarkKey 把脚本路径规范为绝对路径，相对路径和绝对路径指向同一书签
func bookmarkKey(scriptPath string) string {
	abs, err := filepath.Abs(scriptPath)
	if err != nil {
		log.Printf("[BookmarkManager] Warning: cannot resolve %s: %v", scriptPath, err)
		return filepath.Clean(scriptPath)
	}
	return abs
}
