package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// FontCache 字体缓存
//
// 同一路径的字体源只解析一次，不同字号共享字体源。
// 路径为空或读取失败时回退到内置的 Go Regular 字体。
type FontCache struct {
	sources map[string]*text.GoTextFaceSource
	faces   map[string]*text.GoTextFace
}

// fallbackFontKey 内置字体在缓存中的键
const fallbackFontKey = "builtin:goregular"

// NewFontCache 创建字体缓存
func NewFontCache() *FontCache {
	return &FontCache{
		sources: make(map[string]*text.GoTextFaceSource),
		faces:   make(map[string]*text.GoTextFace),
	}
}

// Face 返回指定字体文件和字号的 face
//
// 参数:
//   - path: 字体文件路径，为空时直接使用内置字体
//   - size: 字号
//
// 返回:
//   - *text.GoTextFace: 字体 face（加载失败时为内置字体）
//   - error: 指定字体加载失败的原因（此时返回的 face 仍然可用）
func (fc *FontCache) Face(path string, size float64) (*text.GoTextFace, error) {
	key := path
	if key == "" {
		key = fallbackFontKey
	}
	cacheKey := fmt.Sprintf("%s:%.1f", key, size)
	if face, ok := fc.faces[cacheKey]; ok {
		return face, nil
	}

	source, err := fc.source(path)
	if err != nil {
		log.Printf("[Font] %v, falling back to Go Regular", err)
		fallback, fbErr := fc.source("")
		if fbErr != nil {
			return nil, fbErr
		}
		source = fallback
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	// 回退的 face 不缓存在原路径下，以便之后重试
	if err == nil {
		fc.faces[cacheKey] = face
	}
	return face, err
}

func (fc *FontCache) source(path string) (*text.GoTextFaceSource, error) {
	key := path
	if key == "" {
		key = fallbackFontKey
	}
	if src, ok := fc.sources[key]; ok {
		return src, nil
	}

	var data []byte
	if path == "" {
		data = goregular.TTF
	} else {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
	}

	src, err := text.NewGoTextFaceSource(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", key, err)
	}
	fc.sources[key] = src
	return src, nil
}
