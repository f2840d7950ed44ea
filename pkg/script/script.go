package script

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/zurustar/pendraw/pkg/fileutil"
)

// Encoding names reported in Script.Encoding.
const (
	EncodingUTF8     = "UTF-8"
	EncodingUTF8BOM  = "UTF-8 (BOM)"
	EncodingUTF16LE  = "UTF-16LE"
	EncodingUTF16BE  = "UTF-16BE"
	EncodingShiftJIS = "Shift_JIS"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Script はスクリプトファイルを表す
type Script struct {
	FileName string // ファイル名
	Path     string // 実際に読み込んだパス
	Content  string // UTF-8に変換され、改行がLFに正規化された内容
	Size     int64  // ファイルサイズ
	Encoding string // 検出したエンコーディング
}

// Load 単一のスクリプトファイルを読み込む
// ファイル名の大文字小文字は区別しない
func Load(path string) (*Script, error) {
	actualPath, err := fileutil.ResolvePath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find script: %w", err)
	}

	// ファイル情報を取得
	info, err := os.Stat(actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", actualPath)
	}

	// ファイルを読み込む
	data, err := os.ReadFile(actualPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	content, enc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to convert encoding: %w", err)
	}

	return &Script{
		FileName: filepath.Base(actualPath),
		Path:     actualPath,
		Content:  content,
		Size:     info.Size(),
		Encoding: enc,
	}, nil
}

// Extension はディレクトリ指定時に読み込むスクリプトの拡張子
const Extension = ".pd"

// LoadAll 指定されたすべてのスクリプトを読み込む
// ディレクトリが指定された場合は、その直下の .pd ファイルを名前順にすべて読み込む
func LoadAll(paths []string) ([]Script, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no script files specified")
	}

	files, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}

	scripts := make([]Script, 0, len(files))
	for _, path := range files {
		s, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load script %s: %w", path, err)
		}
		scripts = append(scripts, *s)
	}
	return scripts, nil
}

// expandPaths ディレクトリをその中のスクリプトファイルに展開する
func expandPaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			// ファイルの存在確認はLoadで行う
			files = append(files, path)
			continue
		}

		found, err := fileutil.ListFilesWithExt(path, Extension)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, fmt.Errorf("no %s files found in %s", Extension, path)
		}
		files = append(files, found...)
	}
	return files, nil
}

// Decode バイト列をUTF-8文字列に変換し、検出したエンコーディング名を返す
// BOM付きUTF-8/UTF-16、BOMなしUTF-8、Shift-JISの順に判定する
func Decode(data []byte) (string, string, error) {
	var (
		text string
		enc  string
		err  error
	)

	switch {
	case bytes.HasPrefix(data, bomUTF8):
		text, enc = string(data[len(bomUTF8):]), EncodingUTF8BOM
	case bytes.HasPrefix(data, bomUTF16LE):
		text, err = decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), data)
		enc = EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		text, err = decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), data)
		enc = EncodingUTF16BE
	case utf8.Valid(data):
		text, enc = string(data), EncodingUTF8
	default:
		// Shift-JISからUTF-8に変換
		text, err = decodeWith(japanese.ShiftJIS, data)
		enc = EncodingShiftJIS
	}
	if err != nil {
		return "", "", fmt.Errorf("failed to decode %s: %w", enc, err)
	}

	return normalizeNewlines(text), enc, nil
}

func decodeWith(e encoding.Encoding, data []byte) (string, error) {
	out, _, err := transform.Bytes(e.NewDecoder(), data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// normalizeNewlines CRLFとCRをLFに揃える
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Save 行のリストをUTF-8のテキストファイルとして保存する
func Save(path string, lines []string) error {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to save script %s: %w", path, err)
	}
	return nil
}

// Lines スクリプトの内容を行に分割する（末尾の空行は除く）
func Lines(content string) []string {
	content = strings.TrimSuffix(normalizeNewlines(content), "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
