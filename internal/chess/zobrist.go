package chess

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

const keysPerSquare = 12 // 6 种棋子 × 2 方

// Keys 每个格子 12 个随机数，下标见 keyIndex
type Keys [NumSquares][keysPerSquare]uint64

var (
	defaultKeysOnce sync.Once
	defaultKeys     *Keys
)

// DefaultKeys 进程内只生成一次的键表，不落盘
func DefaultKeys() *Keys {
	defaultKeysOnce.Do(func() {
		defaultKeys = GenerateKeys()
	})
	return defaultKeys
}

func GenerateKeys() *Keys {
	var k Keys
	for sq := range k {
		for i := range k[sq] {
			k[sq][i] = frand.Uint64n(math.MaxUint64)
		}
	}
	return &k
}

// keyIndex = 棋子序号(兵1..王6) + 阵营序号(白1黑0)*6 - 1
func keyIndex(p Piece) int {
	return int(p.Type) + p.Side.keyOrdinal()*6 - 1
}

// ZobristHash 全量异或，不做增量更新
func (b *Board) ZobristHash() uint64 {
	var h uint64
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			p := b.tiles[r][c].Piece
			if p.Empty() {
				continue
			}
			h ^= b.keys[r*Cols+c][keyIndex(p)]
		}
	}
	return h
}

// 文件格式：8 字节小端记录数(64)，随后 64 条记录，每条 12 个小端 uint64
const keyFileSize = 8 + NumSquares*keysPerSquare*8

// EncodeKeys 按键文件格式序列化
func EncodeKeys(k *Keys) []byte {
	buf := make([]byte, 0, keyFileSize)
	buf = binary.LittleEndian.AppendUint64(buf, NumSquares)
	for sq := range k {
		for _, v := range k[sq] {
			buf = binary.LittleEndian.AppendUint64(buf, v)
		}
	}
	return buf
}

// DecodeKeys 解析键文件内容
func DecodeKeys(data []byte) (*Keys, error) {
	if len(data) != keyFileSize {
		return nil, fmt.Errorf("%w: size %d, want %d", ErrKeyFile, len(data), keyFileSize)
	}
	r := bytes.NewReader(data)
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFile, err)
	}
	if n != NumSquares {
		return nil, fmt.Errorf("%w: %d records, want %d", ErrKeyFile, n, NumSquares)
	}
	var k Keys
	if err := binary.Read(r, binary.LittleEndian, &k); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyFile, err)
	}
	return &k, nil
}

// LoadOrCreateKeys 读取 path 上的键表；文件不存在时生成并写入，
// 文件损坏时记一条警告后重新生成并覆盖。只有读写失败会返回错误。
func LoadOrCreateKeys(path string) (*Keys, error) {
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		k, derr := DecodeKeys(data)
		if derr == nil {
			log.Debug().Str("path", path).Msg("position-keys-loaded")
			return k, nil
		}
		log.Warn().Err(derr).Str("path", path).Msg("position-keys-regenerated")
	case errors.Is(err, fs.ErrNotExist):
		log.Info().Str("path", path).Msg("position-keys-created")
	default:
		return nil, fmt.Errorf("read position keys: %w", err)
	}

	k := GenerateKeys()
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create key dir: %w", err)
		}
	}
	if err := os.WriteFile(path, EncodeKeys(k), 0o644); err != nil {
		return nil, fmt.Errorf("write position keys: %w", err)
	}
	return k, nil
}
